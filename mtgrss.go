// Package mtgrss generates an RSS feed of the magic.wizards.com news
// listing.
package mtgrss

import (
	"context"

	"github.com/styler3/mtg-rss/config"
	"github.com/styler3/mtg-rss/logging"
	"github.com/styler3/mtg-rss/pipeline"
)

// GenerateFeed runs one feed generation with the default configuration and
// writes the feed to outputPath. An empty outputPath writes feed.xml in the
// working directory.
func GenerateFeed(ctx context.Context, outputPath string) error {
	_, err := Generate(ctx, config.Default(), outputPath)
	return err
}

// Generate runs one feed generation with cfg, logging as cfg.Log
// describes.
func Generate(ctx context.Context, cfg *config.Config, outputPath string) (*pipeline.Result, error) {
	if cfg == nil {
		cfg = config.Default()
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return nil, err
	}

	p, err := pipeline.New(cfg, pipeline.Deps{Logger: logger})
	if err != nil {
		return nil, err
	}

	return p.Run(ctx, outputPath)
}
