// Package pipeline drives one feed generation run: listing page, article
// references, article records, feed document, output file.
package pipeline

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/styler3/mtg-rss/article"
	"github.com/styler3/mtg-rss/config"
	"github.com/styler3/mtg-rss/feed"
	"github.com/styler3/mtg-rss/scraper"
)

// Deps overrides the collaborators of a Pipeline. Nil fields get the
// production implementation.
type Deps struct {
	Fetcher   scraper.Fetcher
	Extractor article.Extractor
	Sanitizer article.Sanitizer
	Logger    *logrus.Logger
	// Now returns the feed build time.
	Now func() time.Time
}

// ArticleError records an article that was skipped. Link is the resolved
// article URL, empty when Href could not be resolved.
type ArticleError struct {
	Href string
	Link string
	Err  error
}

func (e ArticleError) Error() string {
	if e.Link != "" {
		return fmt.Sprintf("%s: %v", e.Link, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Href, e.Err)
}

func (e ArticleError) Unwrap() error {
	return e.Err
}

// Result summarizes a completed run.
type Result struct {
	RunID      uuid.UUID
	ListingURL string
	OutputPath string
	// References is the number of linkable articles on the listing page.
	References int
	// Items is the number of items in the written feed.
	Items    int
	Failures []ArticleError
	Bytes    int
	Duration time.Duration
}

// Pipeline generates the feed document.
type Pipeline struct {
	config     *config.Config
	base       *url.URL
	listingURL *url.URL
	fetcher    scraper.Fetcher
	builder    *article.Builder
	assembler  *feed.Assembler
	logger     *logrus.Logger
	now        func() time.Time
}

// New creates a pipeline from cfg. A nil cfg means config.Default().
func New(cfg *config.Config, deps Deps) (*Pipeline, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	base, err := cfg.BaseURL()
	if err != nil {
		return nil, err
	}
	listingURL, err := cfg.ListingURL()
	if err != nil {
		return nil, err
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	format, err := feed.ParseFormat(cfg.Feed.Format)
	if err != nil {
		return nil, err
	}

	if deps.Fetcher == nil {
		deps.Fetcher = scraper.NewHTTPFetcher(cfg.Fetch.Timeout, cfg.Fetch.UserAgent)
	}
	if deps.Logger == nil {
		deps.Logger = logrus.StandardLogger()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}

	return &Pipeline{
		config:     cfg,
		base:       base,
		listingURL: listingURL,
		fetcher:    deps.Fetcher,
		builder: article.NewBuilder(article.BuilderConfig{
			BaseURL:   base,
			Fetcher:   deps.Fetcher,
			Extractor: deps.Extractor,
			Sanitizer: deps.Sanitizer,
			Selectors: cfg.Scraper.Article,
			Location:  loc,
			Logger:    deps.Logger,
		}),
		assembler: feed.NewAssembler(format),
		logger:    deps.Logger,
		now:       deps.Now,
	}, nil
}

// Run generates the feed and writes it to outputPath, replacing any previous
// file. An empty outputPath uses the configured output.
//
// Articles that cannot be fetched or extracted are skipped and listed in
// Result.Failures. A failure to fetch the listing page, to serialize the
// feed, or to write the output ends the run with an error and leaves the
// previous output untouched.
func (p *Pipeline) Run(ctx context.Context, outputPath string) (*Result, error) {
	start := time.Now()
	if outputPath == "" {
		outputPath = p.config.Feed.Output
	}

	result := &Result{
		RunID:      uuid.New(),
		ListingURL: p.listingURL.String(),
		OutputPath: outputPath,
		Failures:   []ArticleError{},
	}
	log := p.logger.WithField("run_id", result.RunID.String())

	log.WithFields(logrus.Fields{
		"url":    result.ListingURL,
		"format": p.assembler.Format(),
	}).Info("Fetching listing page")
	body, err := p.fetcher.Fetch(ctx, result.ListingURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch listing page: %w", err)
	}

	// Listing hrefs resolve against the site root, not the listing path
	listing := scraper.Parse(body, p.base)
	refs := scraper.ExtractReferences(listing, p.config.Scraper.List)
	result.References = len(refs)
	log.WithField("references", len(refs)).Info("Found article references")

	records := make([]article.Record, 0, len(refs))
	for _, ref := range refs {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("run cancelled: %w", err)
		}

		record, err := p.builder.Build(ctx, ref)
		if err != nil {
			// A cancelled run is not an article failure
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, fmt.Errorf("run cancelled: %w", ctxErr)
			}
			failure := ArticleError{Href: ref.Href, Err: err}
			if link, resolveErr := scraper.ResolveURL(p.base, ref.Href); resolveErr == nil {
				failure.Link = link.String()
			}
			log.WithError(err).WithFields(logrus.Fields{
				"href": failure.Href,
				"link": failure.Link,
			}).Warn("Skipping article")
			result.Failures = append(result.Failures, failure)
			continue
		}

		log.WithFields(logrus.Fields{
			"link":  record.Link,
			"title": record.Title,
		}).Debug("Built article record")
		records = append(records, *record)
	}

	meta := feed.Metadata{
		Title:       p.config.Feed.Title,
		Description: p.config.Feed.Description,
		Link:        result.ListingURL,
		Language:    p.config.Site.Language,
		Generator:   p.config.Feed.Generator,
		Updated:     p.now(),
	}
	data, err := p.assembler.Assemble(meta, records)
	if err != nil {
		return nil, fmt.Errorf("failed to assemble feed: %w", err)
	}
	if _, err := feed.VerifyItems(data, len(records)); err != nil {
		return nil, fmt.Errorf("generated feed failed verification: %w", err)
	}

	if err := feed.WriteFile(outputPath, data); err != nil {
		return nil, fmt.Errorf("failed to write feed: %w", err)
	}

	result.Items = len(records)
	result.Bytes = len(data)
	result.Duration = time.Since(start)

	log.WithFields(logrus.Fields{
		"output":   outputPath,
		"items":    result.Items,
		"skipped":  len(result.Failures),
		"bytes":    result.Bytes,
		"duration": result.Duration,
	}).Info("Wrote feed")

	return result, nil
}
