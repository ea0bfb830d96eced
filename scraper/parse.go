package scraper

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// linkAttributes lists the attributes rewritten to absolute URLs when a
// document is parsed, keyed by CSS selector.
var linkAttributes = []struct {
	selector string
	attr     string
}{
	{"a[href]", "href"},
	{"link[href]", "href"},
	{"img[src]", "src"},
}

// Document is a parsed HTML page together with the URL its relative links
// resolve against.
type Document struct {
	*goquery.Document
	base *url.URL
}

// Parse parses html into a Document and rewrites relative links against
// base. HTML parsing is permissive, so Parse never fails: malformed markup
// yields a best-effort tree, and unreadable input yields an empty document.
func Parse(htmlText string, base *url.URL) *Document {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlText))
	if err != nil {
		doc = goquery.NewDocumentFromNode(&html.Node{Type: html.DocumentNode})
	}
	doc.Url = base

	d := &Document{Document: doc, base: base}
	d.resolveLinks()
	return d
}

// Base returns the URL the document's links are resolved against.
func (d *Document) Base() *url.URL {
	return d.base
}

// Resolve returns href as an absolute URL relative to the document base.
func (d *Document) Resolve(href string) (*url.URL, error) {
	return ResolveURL(d.base, href)
}

// resolveLinks rewrites every link attribute in the document that can be
// resolved. Attributes that fail to parse are left untouched.
func (d *Document) resolveLinks() {
	if d.base == nil {
		return
	}

	for _, la := range linkAttributes {
		d.Find(la.selector).Each(func(_ int, s *goquery.Selection) {
			val, _ := s.Attr(la.attr)
			val = strings.TrimSpace(val)
			if val == "" || strings.HasPrefix(val, "#") {
				return
			}
			if abs, err := d.Resolve(val); err == nil {
				s.SetAttr(la.attr, abs.String())
			}
		})
	}
}

// ResolveURL resolves href against base and checks that the result is an
// absolute http or https URL.
func ResolveURL(base *url.URL, href string) (*url.URL, error) {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return nil, fmt.Errorf("invalid URL %q: %w", href, err)
	}

	abs := ref
	if base != nil {
		abs = base.ResolveReference(ref)
	}

	if !abs.IsAbs() || abs.Host == "" {
		return nil, fmt.Errorf("invalid URL %q: not absolute", href)
	}
	if abs.Scheme != "http" && abs.Scheme != "https" {
		return nil, fmt.Errorf("invalid URL %q: must use http or https scheme", href)
	}

	return abs, nil
}
