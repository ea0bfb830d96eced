package scraper

// ScraperConfig defines how articles are located on the listing page and
// which elements of an article page carry metadata.
type ScraperConfig struct {
	List    ListConfig    `yaml:"list"`
	Article ArticleConfig `yaml:"article"`
}

// ListConfig defines how to discover article links on the listing page.
type ListConfig struct {
	// ArticleSelector matches one element per listed article.
	ArticleSelector string `yaml:"article_selector"`
	// LinkSelector matches the navigation anchor inside an article element.
	// Only the first match is used.
	LinkSelector string `yaml:"link_selector"`
}

// ArticleConfig defines how to extract metadata from individual article
// pages that the readability pass does not provide.
type ArticleConfig struct {
	// DateSelector matches the publish date marker. The first match is the
	// publish date; later matches (e.g. "last updated") are ignored.
	DateSelector string `yaml:"date_selector"`
}

// DefaultScraperConfig returns the selectors used by magic.wizards.com.
func DefaultScraperConfig() ScraperConfig {
	return ScraperConfig{
		List: ListConfig{
			ArticleSelector: "article",
			LinkSelector:    `a[data-navigation-type="client-side"]`,
		},
		Article: ArticleConfig{
			DateSelector: "time",
		},
	}
}
