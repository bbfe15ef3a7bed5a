package scrape

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/claimsift/claimsift/internal/types"
)

type fakeURLRetriever struct {
	calls  []string
	result types.ScrapeResult
}

func (f *fakeURLRetriever) Scrape(_ context.Context, url string) types.ScrapeResult {
	f.calls = append(f.calls, url)
	return f.result
}

type fakePlatformRetriever struct {
	urls      []string
	platforms []types.Platform
	result    types.ScrapeResult
}

func (f *fakePlatformRetriever) Scrape(_ context.Context, url string, p types.Platform) types.ScrapeResult {
	f.urls = append(f.urls, url)
	f.platforms = append(f.platforms, p)
	return f.result
}

func TestDispatcherUnknownPlatform(t *testing.T) {
	t.Parallel()

	reddit := &fakeURLRetriever{}
	youtube := &fakeURLRetriever{}
	browser := &fakePlatformRetriever{}
	d := NewDispatcher(reddit, youtube, browser, zap.NewNop())

	result := d.Scrape(context.Background(), "https://example.com/post/1")

	assert.Equal(t, types.PlatformUnknown, result.Platform)
	assert.Contains(t, result.Error, "Unrecognized URL")
	assert.Contains(t, result.Error, "Reddit")

	// No retriever is invoked and all content fields are empty.
	assert.Empty(t, reddit.calls)
	assert.Empty(t, youtube.calls)
	assert.Empty(t, browser.urls)
	assert.Empty(t, result.Text)
	assert.Empty(t, result.Author)
	assert.Equal(t, []string{}, result.ImageURLs)
	assert.Equal(t, []string{}, result.VideoURLs)
}

func TestDispatcherRoutesByPlatform(t *testing.T) {
	t.Parallel()

	reddit := &fakeURLRetriever{result: types.ScrapeResult{Platform: types.PlatformReddit, Text: "r"}}
	youtube := &fakeURLRetriever{result: types.ScrapeResult{Platform: types.PlatformYouTube, Text: "y"}}
	browser := &fakePlatformRetriever{result: types.ScrapeResult{Text: "b"}}
	d := NewDispatcher(reddit, youtube, browser, zap.NewNop())

	ctx := context.Background()

	assert.Equal(t, "r", d.Scrape(ctx, "https://reddit.com/r/a/comments/1/t/").Text)
	assert.Equal(t, []string{"https://reddit.com/r/a/comments/1/t/"}, reddit.calls)

	assert.Equal(t, "y", d.Scrape(ctx, "https://youtu.be/abc").Text)
	assert.Equal(t, []string{"https://youtu.be/abc"}, youtube.calls)

	d.Scrape(ctx, "https://x.com/user/status/1")
	d.Scrape(ctx, "https://instagram.com/p/abc/")
	d.Scrape(ctx, "https://facebook.com/user/posts/1")
	assert.Equal(t, []types.Platform{
		types.PlatformTwitter,
		types.PlatformInstagram,
		types.PlatformFacebook,
	}, browser.platforms)
}
