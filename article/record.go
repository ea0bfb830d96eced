// Package article turns one article reference into a syndication-ready
// record: fetch, parse, publish date, readability extraction, sanitization.
package article

import (
	"errors"
	"time"
)

var (
	// ErrUnextractable means the page has no recognizable article body.
	ErrUnextractable = errors.New("no readable article content")
	// ErrMissingPublishDate means the page has no publish date marker.
	ErrMissingPublishDate = errors.New("no publish date marker")
	// ErrInvalidPublishDate means the publish date marker text could not be
	// parsed as a point in time.
	ErrInvalidPublishDate = errors.New("unparseable publish date")
)

// Record is the unit of syndication built from one article page.
type Record struct {
	// Link is the absolute article URL and the feed item identifier.
	Link   string
	Title  string
	Byline string
	// PublishDate is zero when the page had no parseable date marker.
	PublishDate time.Time
	Excerpt     string
	// Content is sanitized HTML.
	Content string
}

// HasPublishDate reports whether the record carries a publish date.
func (r Record) HasPublishDate() bool {
	return !r.PublishDate.IsZero()
}
