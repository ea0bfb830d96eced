package article

import (
	"fmt"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/styler3/mtg-rss/scraper"
)

// ParsePublishDate parses free-form date text without a fixed layout. Text
// without an offset or zone is interpreted in loc.
func ParsePublishDate(text string, loc *time.Location) (time.Time, error) {
	text = strings.Join(strings.Fields(text), " ")
	if text == "" {
		return time.Time{}, ErrMissingPublishDate
	}
	if loc == nil {
		loc = time.UTC
	}

	t, err := dateparse.ParseIn(text, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w %q: %v", ErrInvalidPublishDate, text, err)
	}

	return t, nil
}

// findPublishDate returns the text of the first element matching selector.
// Later matches (e.g. "last updated" markers) are ignored.
func findPublishDate(doc *scraper.Document, selector string) (string, error) {
	marker := doc.Find(selector).First()
	if marker.Length() == 0 {
		return "", ErrMissingPublishDate
	}

	return strings.TrimSpace(marker.Text()), nil
}
