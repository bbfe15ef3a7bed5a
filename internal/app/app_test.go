package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/claimsift/claimsift/internal/types"
)

type fakeScraper struct {
	result types.ScrapeResult
	calls  int
}

func (f *fakeScraper) Scrape(_ context.Context, _ string) types.ScrapeResult {
	f.calls++
	return f.result
}

type fakeExtractor struct {
	result types.AnalysisResult
	text   string
	url    string
	calls  int
}

func (f *fakeExtractor) ExtractAndClassify(_ context.Context, text, url string) types.AnalysisResult {
	f.calls++
	f.text = text
	f.url = url
	return f.result
}

func newTestApp(scraper *fakeScraper, extractor *fakeExtractor) *App {
	return New(scraper, extractor, zap.NewNop())
}

func TestAnalyzeURLHappyPath(t *testing.T) {
	t.Parallel()

	scraper := &fakeScraper{result: types.ScrapeResult{
		Platform:  types.PlatformReddit,
		Text:      "the post body",
		Author:    "u/someone",
		ImageURLs: []string{"https://i.example/a.jpg", "https://i.example/b.jpg"},
		VideoURLs: []string{},
	}}
	extractor := &fakeExtractor{result: types.AnalysisResult{
		Claims:  []types.Claim{{ClaimText: "a claim"}},
		Summary: "one claim found",
	}}
	a := newTestApp(scraper, extractor)

	result := a.Analyze(context.Background(), types.AnalyzeRequest{URL: "https://reddit.com/r/x/1"})

	assert.Empty(t, result.Error)
	require.Len(t, result.Claims, 1)
	require.NotNil(t, result.Scraped)
	assert.Equal(t, "u/someone", result.Scraped.Author)

	assert.Equal(t, "the post body\n\n[Note: this post contains 2 image(s)]", extractor.text)
	assert.Equal(t, "https://reddit.com/r/x/1", extractor.url)
}

func TestAnalyzeURLTakesPrecedenceOverText(t *testing.T) {
	t.Parallel()

	scraper := &fakeScraper{result: types.ScrapeResult{
		Platform:  types.PlatformTwitter,
		Text:      "tweet body",
		ImageURLs: []string{},
		VideoURLs: []string{},
	}}
	extractor := &fakeExtractor{result: types.AnalysisResult{Claims: []types.Claim{}}}
	a := newTestApp(scraper, extractor)

	a.Analyze(context.Background(), types.AnalyzeRequest{
		Text: "pasted text that should be ignored",
		URL:  "https://x.com/u/status/1",
	})

	assert.Equal(t, 1, scraper.calls)
	assert.Equal(t, "tweet body", extractor.text)
}

func TestAnalyzeScrapeFailureShortCircuits(t *testing.T) {
	t.Parallel()

	scraper := &fakeScraper{result: types.ErrorResult(types.PlatformTwitter, "Tweet content not found.")}
	extractor := &fakeExtractor{}
	a := newTestApp(scraper, extractor)

	result := a.Analyze(context.Background(), types.AnalyzeRequest{URL: "https://x.com/u/status/1"})

	assert.Equal(t, "Tweet content not found.", result.Error)
	require.NotNil(t, result.Claims)
	assert.Empty(t, result.Claims)
	assert.Empty(t, result.Summary)
	require.NotNil(t, result.Scraped)
	assert.Equal(t, types.PlatformTwitter, result.Scraped.Platform)
	assert.Zero(t, extractor.calls)
}

func TestAnalyzeTextOnly(t *testing.T) {
	t.Parallel()

	scraper := &fakeScraper{}
	extractor := &fakeExtractor{result: types.AnalysisResult{
		Claims:  []types.Claim{},
		Summary: "nothing checkable",
	}}
	a := newTestApp(scraper, extractor)

	result := a.Analyze(context.Background(), types.AnalyzeRequest{Text: "just an opinion"})

	assert.Zero(t, scraper.calls)
	assert.Equal(t, "just an opinion", extractor.text)
	assert.Empty(t, extractor.url)
	assert.Nil(t, result.Scraped)
	assert.Equal(t, "nothing checkable", result.Summary)
}

func TestAnalyzeNoInput(t *testing.T) {
	t.Parallel()

	scraper := &fakeScraper{}
	extractor := &fakeExtractor{}
	a := newTestApp(scraper, extractor)

	result := a.Analyze(context.Background(), types.AnalyzeRequest{})

	assert.Equal(t, missingInputMsg, result.Error)
	require.NotNil(t, result.Claims)
	assert.Empty(t, result.Claims)
	assert.Zero(t, scraper.calls)
	assert.Zero(t, extractor.calls)
}

func TestAnalyzeWhitespaceText(t *testing.T) {
	t.Parallel()

	scraper := &fakeScraper{}
	extractor := &fakeExtractor{}
	a := newTestApp(scraper, extractor)

	result := a.Analyze(context.Background(), types.AnalyzeRequest{Text: "   \n\t "})

	assert.Equal(t, emptyContentMsg, result.Error)
	assert.Zero(t, extractor.calls)
}

func TestWithMediaNotes(t *testing.T) {
	t.Parallel()

	r := types.ScrapeResult{
		Text:      "body",
		ImageURLs: []string{"a"},
		VideoURLs: []string{"b", "c"},
	}
	assert.Equal(t,
		"body\n\n[Note: this post contains 1 image(s)]\n\n[Note: this post contains 2 video(s)]",
		withMediaNotes(r))

	bare := types.ScrapeResult{Text: "body", ImageURLs: []string{}, VideoURLs: []string{}}
	assert.Equal(t, "body", withMediaNotes(bare))
}
