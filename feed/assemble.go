// Package feed assembles article records into a syndication document and
// persists it.
package feed

import (
	"fmt"
	"strings"
	"time"

	"github.com/gorilla/feeds"
	"github.com/styler3/mtg-rss/article"
)

// Format is a serialization format for the feed document.
type Format string

// Supported formats.
const (
	FormatRSS  Format = "rss"
	FormatAtom Format = "atom"
	FormatJSON Format = "json"
)

// ParseFormat converts a configuration value to a Format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatRSS, FormatAtom, FormatJSON:
		return f, nil
	case "":
		return FormatRSS, nil
	default:
		return "", fmt.Errorf("unsupported feed format: %s", s)
	}
}

// Metadata describes the feed as a whole.
type Metadata struct {
	Title       string
	Description string
	// Link is the canonical page the feed syndicates.
	Link      string
	Language  string
	Generator string
	// Updated is the build time of the document.
	Updated time.Time
}

// Assembler serializes records in a fixed format.
type Assembler struct {
	format Format
}

// NewAssembler creates an assembler for format.
func NewAssembler(format Format) *Assembler {
	return &Assembler{format: format}
}

// Format returns the serialization format.
func (a *Assembler) Format() Format {
	return a.format
}

// Assemble maps records 1:1 to feed items, in input order, and serializes
// the result. Records are neither sorted nor deduplicated.
func (a *Assembler) Assemble(meta Metadata, records []article.Record) ([]byte, error) {
	f := NewFeed(meta, records)

	var (
		out string
		err error
	)
	switch a.format {
	case FormatRSS, "":
		rss := (&feeds.Rss{Feed: f}).RssFeed()
		rss.Language = meta.Language
		rss.Generator = meta.Generator
		out, err = feeds.ToXML(rss)
	case FormatAtom:
		out, err = f.ToAtom()
	case FormatJSON:
		out, err = f.ToJSON()
	default:
		return nil, fmt.Errorf("unsupported feed format: %s", a.format)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to serialize %s feed: %w", a.format, err)
	}

	return []byte(out), nil
}

// NewFeed builds the gorilla/feeds representation of the feed.
func NewFeed(meta Metadata, records []article.Record) *feeds.Feed {
	f := &feeds.Feed{
		Title:       xmlText(meta.Title),
		Link:        &feeds.Link{Href: xmlText(meta.Link)},
		Description: xmlText(meta.Description),
		Id:          xmlText(meta.Link),
		Created:     meta.Updated,
		Updated:     meta.Updated,
		Items:       make([]*feeds.Item, 0, len(records)),
	}

	for _, r := range records {
		f.Items = append(f.Items, newItem(r))
	}

	return f
}

// newItem maps one record to a feed item. Undated records get no date.
func newItem(r article.Record) *feeds.Item {
	link := xmlText(r.Link)
	item := &feeds.Item{
		Id:          link,
		Title:       xmlText(r.Title),
		Link:        &feeds.Link{Href: link},
		Description: xmlText(r.Excerpt),
		Content:     xmlText(r.Content),
	}

	if r.HasPublishDate() {
		item.Created = r.PublishDate
	}
	if byline := xmlText(r.Byline); byline != "" {
		item.Author = &feeds.Author{Name: byline}
	}

	return item
}

// xmlText drops the runes XML 1.0 cannot carry, escaped or not. Content is
// written as CDATA, which escapes nothing.
func xmlText(s string) string {
	if strings.IndexFunc(s, isIllegalXMLRune) < 0 {
		return s
	}
	return strings.Map(func(r rune) rune {
		if isIllegalXMLRune(r) {
			return -1
		}
		return r
	}, s)
}

// isIllegalXMLRune reports runes outside the XML 1.0 Char production.
// Decoding a Go string never yields surrogates.
func isIllegalXMLRune(r rune) bool {
	switch {
	case r == '\t', r == '\n', r == '\r':
		return false
	case r < 0x20:
		return true
	}
	return r == 0xFFFE || r == 0xFFFF
}
