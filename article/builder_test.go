package article

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/styler3/mtg-rss/scraper"
)

// fakeFetcher serves canned pages keyed by URL
type fakeFetcher struct {
	pages     map[string]string
	errs      map[string]error
	requested []string
}

func (f *fakeFetcher) Fetch(_ context.Context, url string) (string, error) {
	f.requested = append(f.requested, url)
	if err, ok := f.errs[url]; ok {
		return "", err
	}
	body, ok := f.pages[url]
	if !ok {
		return "", &scraper.StatusError{URL: url, StatusCode: 404}
	}
	return body, nil
}

// selectorExtractor is a deterministic stand-in for readability
type selectorExtractor struct{}

func (selectorExtractor) Extract(doc *scraper.Document) (Extract, error) {
	body := doc.Find(".body").First()
	if body.Length() == 0 {
		return Extract{}, ErrUnextractable
	}
	content, err := body.Html()
	if err != nil {
		return Extract{}, err
	}
	excerpt, _ := doc.Find(`meta[name="description"]`).Attr("content")
	return Extract{
		Title:   strings.TrimSpace(doc.Find("h1").First().Text()),
		Byline:  strings.TrimSpace(doc.Find(".byline").First().Text()),
		Content: content,
		Excerpt: excerpt,
	}, nil
}

// Test helper: create a builder over canned pages
func setupTestBuilder(t *testing.T, fetcher *fakeFetcher) (*Builder, *logtest.Hook) {
	t.Helper()
	base, err := url.Parse("https://magic.wizards.com")
	require.NoError(t, err)

	logger, hook := logtest.NewNullLogger()
	builder := NewBuilder(BuilderConfig{
		BaseURL:   base,
		Fetcher:   fetcher,
		Extractor: selectorExtractor{},
		Logger:    logger,
	})
	return builder, hook
}

const articlePage = `
<html>
	<head>
		<meta name="description" content="A short summary.">
	</head>
	<body>
		<h1>Foundations Release Notes</h1>
		<span class="byline">Jess Dunks</span>
		<time>2024-03-01</time>
		<div class="body">
			<p onclick="track()">First paragraph.</p>
			<script>steal()</script>
			<a href="/en/news/other">Related</a>
		</div>
		<footer>Updated <time>2024-04-15</time></footer>
	</body>
</html>
`

// TestBuild_Complete verifies every record field is populated
func TestBuild_Complete(t *testing.T) {
	fetcher := &fakeFetcher{pages: map[string]string{
		"https://magic.wizards.com/en/news/release-notes": articlePage,
	}}
	builder, hook := setupTestBuilder(t, fetcher)

	record, err := builder.Build(context.Background(), scraper.Reference{Href: "/en/news/release-notes"})
	require.NoError(t, err)
	require.NotNil(t, record)

	assert.Equal(t, "https://magic.wizards.com/en/news/release-notes", record.Link)
	assert.Equal(t, "Foundations Release Notes", record.Title)
	assert.Equal(t, "Jess Dunks", record.Byline)
	assert.Equal(t, "A short summary.", record.Excerpt)
	assert.True(t, record.HasPublishDate())
	assert.Equal(t, 2024, record.PublishDate.Year())
	assert.Equal(t, time.March, record.PublishDate.Month())
	assert.Equal(t, 1, record.PublishDate.Day(), "first time marker is the publish date")
	assert.Equal(t, []string{"https://magic.wizards.com/en/news/release-notes"}, fetcher.requested)
	assert.Empty(t, hook.AllEntries(), "nothing to warn about")
}

// TestBuild_SanitizesContent verifies unsafe markup never reaches the record
func TestBuild_SanitizesContent(t *testing.T) {
	fetcher := &fakeFetcher{pages: map[string]string{
		"https://magic.wizards.com/en/news/release-notes": articlePage,
	}}
	builder, _ := setupTestBuilder(t, fetcher)

	record, err := builder.Build(context.Background(), scraper.Reference{Href: "/en/news/release-notes"})
	require.NoError(t, err)

	assert.NotContains(t, record.Content, "<script")
	assert.NotContains(t, record.Content, "steal()")
	assert.NotContains(t, record.Content, "onclick")
	assert.Contains(t, record.Content, "First paragraph.")
	assert.Contains(t, record.Content, `href="https://magic.wizards.com/en/news/other"`, "relative links resolve against the article URL")
}

// TestBuild_AbsoluteReference verifies absolute hrefs are used as is
func TestBuild_AbsoluteReference(t *testing.T) {
	fetcher := &fakeFetcher{pages: map[string]string{
		"https://magic.wizards.com/en/news/feature/abc": articlePage,
	}}
	builder, _ := setupTestBuilder(t, fetcher)

	record, err := builder.Build(context.Background(), scraper.Reference{Href: "https://magic.wizards.com/en/news/feature/abc"})
	require.NoError(t, err)
	assert.Equal(t, "https://magic.wizards.com/en/news/feature/abc", record.Link)
}

// TestBuild_MissingPublishDate verifies the record is still emitted
func TestBuild_MissingPublishDate(t *testing.T) {
	page := strings.ReplaceAll(articlePage, "<time>2024-03-01</time>", "")
	page = strings.ReplaceAll(page, "<time>2024-04-15</time>", "")
	fetcher := &fakeFetcher{pages: map[string]string{
		"https://magic.wizards.com/en/news/undated": page,
	}}
	builder, hook := setupTestBuilder(t, fetcher)

	record, err := builder.Build(context.Background(), scraper.Reference{Href: "/en/news/undated"})
	require.NoError(t, err)

	assert.False(t, record.HasPublishDate())
	assert.Equal(t, "Foundations Release Notes", record.Title)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.WarnLevel, entry.Level)
	assert.Equal(t, "https://magic.wizards.com/en/news/undated", entry.Data["link"])
	assert.True(t, errors.Is(entry.Data[logrus.ErrorKey].(error), ErrMissingPublishDate))
}

// TestBuild_InvalidPublishDate verifies garbage dates give a zero date
func TestBuild_InvalidPublishDate(t *testing.T) {
	page := strings.ReplaceAll(articlePage, "<time>2024-03-01</time>", "<time>sometime soon</time>")
	fetcher := &fakeFetcher{pages: map[string]string{
		"https://magic.wizards.com/en/news/soon": page,
	}}
	builder, hook := setupTestBuilder(t, fetcher)

	record, err := builder.Build(context.Background(), scraper.Reference{Href: "/en/news/soon"})
	require.NoError(t, err)

	assert.False(t, record.HasPublishDate(), "the later marker is not used as a fallback")

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.True(t, errors.Is(entry.Data[logrus.ErrorKey].(error), ErrInvalidPublishDate))
}

// TestBuild_FetchFailure verifies fetch errors are returned
func TestBuild_FetchFailure(t *testing.T) {
	fetcher := &fakeFetcher{errs: map[string]error{
		"https://magic.wizards.com/en/news/down": errors.New("connection reset"),
	}}
	builder, _ := setupTestBuilder(t, fetcher)

	record, err := builder.Build(context.Background(), scraper.Reference{Href: "/en/news/down"})
	require.Error(t, err)
	assert.Nil(t, record)
	assert.Contains(t, err.Error(), "failed to fetch article")
	assert.Contains(t, err.Error(), "connection reset")
}

// TestBuild_NotFound verifies status errors stay inspectable
func TestBuild_NotFound(t *testing.T) {
	builder, _ := setupTestBuilder(t, &fakeFetcher{})

	_, err := builder.Build(context.Background(), scraper.Reference{Href: "/en/news/gone"})
	require.Error(t, err)

	var statusErr *scraper.StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, 404, statusErr.StatusCode)
}

// TestBuild_Unextractable verifies pages without a body are rejected
func TestBuild_Unextractable(t *testing.T) {
	fetcher := &fakeFetcher{pages: map[string]string{
		"https://magic.wizards.com/en/news/empty": `<html><body><time>2024-03-01</time><nav>Menu</nav></body></html>`,
	}}
	builder, _ := setupTestBuilder(t, fetcher)

	record, err := builder.Build(context.Background(), scraper.Reference{Href: "/en/news/empty"})
	require.Error(t, err)
	assert.Nil(t, record)
	assert.True(t, errors.Is(err, ErrUnextractable))
}

// TestBuild_ExtractorErrorWrapped verifies any extractor error counts as
// unextractable
func TestBuild_ExtractorErrorWrapped(t *testing.T) {
	base, err := url.Parse("https://magic.wizards.com")
	require.NoError(t, err)
	logger, _ := logtest.NewNullLogger()

	builder := NewBuilder(BuilderConfig{
		BaseURL: base,
		Fetcher: &fakeFetcher{pages: map[string]string{"https://magic.wizards.com/a": "<p>x</p>"}},
		Extractor: extractorFunc(func(*scraper.Document) (Extract, error) {
			return Extract{}, errors.New("boom")
		}),
		Logger: logger,
	})

	_, err = builder.Build(context.Background(), scraper.Reference{Href: "/a"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnextractable))
	assert.Contains(t, err.Error(), "boom")
}

// TestBuild_InvalidReference verifies unresolvable hrefs fail before fetching
func TestBuild_InvalidReference(t *testing.T) {
	fetcher := &fakeFetcher{}
	builder, _ := setupTestBuilder(t, fetcher)

	_, err := builder.Build(context.Background(), scraper.Reference{Href: "javascript:void(0)"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to resolve article link")
	assert.Empty(t, fetcher.requested)
}

type extractorFunc func(*scraper.Document) (Extract, error)

func (f extractorFunc) Extract(doc *scraper.Document) (Extract, error) {
	return f(doc)
}
