package article

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/styler3/mtg-rss/scraper"
)

// BuilderConfig holds the collaborators of a Builder. Nil Extractor,
// Sanitizer, Location and Logger fall back to readability, the UGC policy,
// UTC and the standard logrus logger.
type BuilderConfig struct {
	// BaseURL is the site base URL references are resolved against.
	BaseURL   *url.URL
	Fetcher   scraper.Fetcher
	Extractor Extractor
	Sanitizer Sanitizer
	Selectors scraper.ArticleConfig
	Location  *time.Location
	Logger    logrus.FieldLogger
}

// Builder builds one Record per article reference.
type Builder struct {
	base      *url.URL
	fetcher   scraper.Fetcher
	extractor Extractor
	sanitizer Sanitizer
	selectors scraper.ArticleConfig
	location  *time.Location
	log       logrus.FieldLogger
}

// NewBuilder creates a record builder.
func NewBuilder(cfg BuilderConfig) *Builder {
	b := &Builder{
		base:      cfg.BaseURL,
		fetcher:   cfg.Fetcher,
		extractor: cfg.Extractor,
		sanitizer: cfg.Sanitizer,
		selectors: cfg.Selectors,
		location:  cfg.Location,
		log:       cfg.Logger,
	}

	if b.extractor == nil {
		b.extractor = NewReadability()
	}
	if b.sanitizer == nil {
		b.sanitizer = NewSanitizer()
	}
	if b.selectors.DateSelector == "" {
		b.selectors = scraper.DefaultScraperConfig().Article
	}
	if b.location == nil {
		b.location = time.UTC
	}
	if b.log == nil {
		b.log = logrus.StandardLogger()
	}

	return b
}

// Build fetches the referenced article page and turns it into a Record.
//
// Fetch and extraction failures are returned as errors; extraction failures
// wrap ErrUnextractable. A missing or unparseable publish date is not an
// error: it is logged and the record is returned with a zero PublishDate.
func (b *Builder) Build(ctx context.Context, ref scraper.Reference) (*Record, error) {
	link, err := scraper.ResolveURL(b.base, ref.Href)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve article link: %w", err)
	}

	body, err := b.fetcher.Fetch(ctx, link.String())
	if err != nil {
		return nil, fmt.Errorf("failed to fetch article: %w", err)
	}

	doc := scraper.Parse(body, link)
	log := b.log.WithField("link", link.String())

	// Read the date before extraction, which rewrites the document
	publishDate, err := b.publishDate(doc)
	if err != nil {
		log.WithError(err).Warn("Article has no usable publish date")
	}

	extract, err := b.extractor.Extract(doc)
	if err != nil {
		if !errors.Is(err, ErrUnextractable) {
			err = fmt.Errorf("%w: %v", ErrUnextractable, err)
		}
		return nil, fmt.Errorf("failed to extract article: %w", err)
	}

	return &Record{
		Link:        link.String(),
		Title:       extract.Title,
		Byline:      extract.Byline,
		PublishDate: publishDate,
		Excerpt:     extract.Excerpt,
		Content:     b.sanitizer.Sanitize(extract.Content),
	}, nil
}

// publishDate parses the first date marker of doc.
func (b *Builder) publishDate(doc *scraper.Document) (time.Time, error) {
	text, err := findPublishDate(doc, b.selectors.DateSelector)
	if err != nil {
		return time.Time{}, err
	}
	return ParsePublishDate(text, b.location)
}
