// Package scrape normalizes wildly different content-retrieval strategies
// behind one result shape: a public JSON API for Reddit, external extraction
// tools for YouTube, and an authenticated browser session for the rest.
package scrape

import (
	"context"

	"go.uber.org/zap"

	"github.com/claimsift/claimsift/internal/platform"
	"github.com/claimsift/claimsift/internal/types"
)

const unsupportedMessage = "Unrecognized URL. Supported: X/Twitter, Reddit, YouTube, Instagram, Facebook."

// urlRetriever fetches one post by URL. Implementations never return a Go
// error: failures are reported through the result's Error field so the
// dispatcher has a single output shape.
type urlRetriever interface {
	Scrape(ctx context.Context, url string) types.ScrapeResult
}

// platformRetriever is shared across platforms and selects its extraction
// strategy from the platform argument.
type platformRetriever interface {
	Scrape(ctx context.Context, url string, p types.Platform) types.ScrapeResult
}

// Dispatcher routes a URL to the retriever registered for its platform.
type Dispatcher struct {
	reddit  urlRetriever
	youtube urlRetriever
	browser platformRetriever
	log     *zap.Logger
}

// NewDispatcher creates a dispatcher over the three retrievers.
func NewDispatcher(reddit, youtube urlRetriever, browser platformRetriever, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{
		reddit:  reddit,
		youtube: youtube,
		browser: browser,
		log:     logger,
	}
}

// Scrape detects the platform and invokes the matching retriever. Unknown
// platforms are refused immediately, before any network access.
func (d *Dispatcher) Scrape(ctx context.Context, url string) types.ScrapeResult {
	p := platform.Detect(url)
	d.log.Info("dispatching scrape",
		zap.String("url", url),
		zap.String("platform", string(p)))

	switch p {
	case types.PlatformReddit:
		return d.reddit.Scrape(ctx, url)
	case types.PlatformYouTube:
		return d.youtube.Scrape(ctx, url)
	case types.PlatformTwitter, types.PlatformInstagram, types.PlatformFacebook:
		return d.browser.Scrape(ctx, url, p)
	default:
		return types.ErrorResult(types.PlatformUnknown, unsupportedMessage)
	}
}
