package article

import (
	"fmt"
	"strings"

	readability "github.com/go-shiori/go-readability"
	"github.com/styler3/mtg-rss/scraper"
)

// Extract is the readable representation of an article page.
type Extract struct {
	Title   string
	Byline  string
	Content string
	Excerpt string
}

// Extractor isolates the main article content of a page from surrounding
// navigation and boilerplate.
type Extractor interface {
	Extract(doc *scraper.Document) (Extract, error)
}

// Readability extracts content with the Mozilla Readability algorithm.
type Readability struct{}

// NewReadability returns a readability extractor.
func NewReadability() *Readability {
	return &Readability{}
}

// Extract runs readability over doc. The document tree is modified in the
// process, so anything else needed from doc must be read first. A page with
// no article body returns an error wrapping ErrUnextractable.
func (r *Readability) Extract(doc *scraper.Document) (extract Extract, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("%w: readability panic: %v", ErrUnextractable, rec)
		}
	}()

	if len(doc.Nodes) == 0 {
		return Extract{}, ErrUnextractable
	}

	parsed, err := readability.FromDocument(doc.Nodes[0], doc.Base())
	if err != nil {
		return Extract{}, fmt.Errorf("%w: %v", ErrUnextractable, err)
	}

	if strings.TrimSpace(parsed.TextContent) == "" || strings.TrimSpace(parsed.Content) == "" {
		return Extract{}, ErrUnextractable
	}

	return Extract{
		Title:   strings.TrimSpace(parsed.Title),
		Byline:  strings.TrimSpace(parsed.Byline),
		Content: parsed.Content,
		Excerpt: strings.TrimSpace(parsed.Excerpt),
	}, nil
}
