package scraper

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Reference identifies one article on the listing page by the href of its
// navigation anchor. The href may be relative.
type Reference struct {
	Href string
}

// ExtractReferences returns one Reference per article element that holds a
// navigation anchor, in document order. Article elements without an anchor,
// or whose anchor has no href, are not linkable and are skipped.
func ExtractReferences(doc *Document, config ListConfig) []Reference {
	refs := []Reference{}

	doc.Find(config.ArticleSelector).Each(func(_ int, article *goquery.Selection) {
		link := article.Find(config.LinkSelector).First()
		if link.Length() == 0 {
			return
		}

		href, ok := link.Attr("href")
		href = strings.TrimSpace(href)
		if !ok || href == "" {
			return
		}

		refs = append(refs, Reference{Href: href})
	})

	return refs
}
