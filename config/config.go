package config

import (
	"errors"
	"fmt"
	"net/url"
	"path"
	"time"
	_ "time/tzdata"

	"github.com/styler3/mtg-rss/feed"
	"github.com/styler3/mtg-rss/scraper"
)

// Defaults for the magic.wizards.com news feed.
const (
	DefaultBaseURL     = "https://magic.wizards.com"
	DefaultLanguage    = "en"
	DefaultNewsPath    = "news"
	DefaultOutputPath  = "feed.xml"
	DefaultFeedTitle   = "MTG News"
	DefaultDescription = "News articles from magic.wizards.com"
	DefaultGenerator   = "https://github.com/styler3/mtg-rss"
	DefaultFormat      = "rss"
	DefaultTimezone    = "UTC"

	DefaultFetchTimeout = 30 * time.Second
)

// Config holds everything a feed generation run needs. The zero value is
// not usable; start from Default.
type Config struct {
	Site    SiteConfig            `yaml:"site"`
	Feed    FeedConfig            `yaml:"feed"`
	Fetch   FetchConfig           `yaml:"fetch"`
	Scraper scraper.ScraperConfig `yaml:"scraper"`
	Log     LogConfig             `yaml:"log"`
}

// SiteConfig locates the listing page.
type SiteConfig struct {
	BaseURL  string `yaml:"base_url"`
	Language string `yaml:"language"`
	NewsPath string `yaml:"news_path"`
	// Timezone is the IANA location used to interpret publish dates that
	// carry no offset.
	Timezone string `yaml:"timezone"`
}

// FeedConfig describes the generated feed document.
type FeedConfig struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Generator   string `yaml:"generator"`
	Format      string `yaml:"format"`
	Output      string `yaml:"output"`
}

// FetchConfig controls outbound HTTP requests.
type FetchConfig struct {
	Timeout   time.Duration `yaml:"timeout"`
	UserAgent string        `yaml:"user_agent"`
}

// LogConfig controls the logger.
type LogConfig struct {
	Level     string `yaml:"level"`
	Formatter string `yaml:"formatter"`
	// File is a log file path, or "-" for stderr.
	File string `yaml:"file"`
}

// Default returns the fixed configuration of the magic.wizards.com feed.
func Default() *Config {
	return &Config{
		Site: SiteConfig{
			BaseURL:  DefaultBaseURL,
			Language: DefaultLanguage,
			NewsPath: DefaultNewsPath,
			Timezone: DefaultTimezone,
		},
		Feed: FeedConfig{
			Title:       DefaultFeedTitle,
			Description: DefaultDescription,
			Generator:   DefaultGenerator,
			Format:      DefaultFormat,
			Output:      DefaultOutputPath,
		},
		Fetch: FetchConfig{
			Timeout:   DefaultFetchTimeout,
			UserAgent: scraper.DefaultUserAgent,
		},
		Scraper: scraper.DefaultScraperConfig(),
		Log: LogConfig{
			Level:     "info",
			Formatter: "text",
			File:      "-",
		},
	}
}

// BaseURL returns the parsed site base URL.
func (c *Config) BaseURL() (*url.URL, error) {
	u, err := url.Parse(c.Site.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base_url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid base_url %q: must be an absolute http or https URL", c.Site.BaseURL)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("invalid base_url %q: missing host", c.Site.BaseURL)
	}
	return u, nil
}

// ListingURL returns {base}/{language}/{news_path}.
func (c *Config) ListingURL() (*url.URL, error) {
	base, err := c.BaseURL()
	if err != nil {
		return nil, err
	}

	rel := path.Join(c.Site.Language, c.Site.NewsPath)
	return base.ResolveReference(&url.URL{Path: rel}), nil
}

// Location returns the time zone publish dates are interpreted in.
func (c *Config) Location() (*time.Location, error) {
	if c.Site.Timezone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(c.Site.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Site.Timezone, err)
	}
	return loc, nil
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error

	if _, err := c.BaseURL(); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.Location(); err != nil {
		errs = append(errs, err)
	}
	if c.Site.NewsPath == "" {
		errs = append(errs, errors.New("news_path must not be empty"))
	}

	if _, err := feed.ParseFormat(c.Feed.Format); err != nil {
		errs = append(errs, fmt.Errorf("invalid feed format %q: %w", c.Feed.Format, err))
	}
	if c.Feed.Title == "" {
		errs = append(errs, errors.New("feed title must not be empty"))
	}
	if c.Feed.Output == "" {
		errs = append(errs, errors.New("feed output path must not be empty"))
	}

	if c.Fetch.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("invalid fetch timeout %s: must be positive", c.Fetch.Timeout))
	}

	if c.Scraper.List.ArticleSelector == "" || c.Scraper.List.LinkSelector == "" {
		errs = append(errs, errors.New("scraper list selectors must not be empty"))
	}
	if c.Scraper.Article.DateSelector == "" {
		errs = append(errs, errors.New("scraper date selector must not be empty"))
	}

	return errors.Join(errs...)
}
