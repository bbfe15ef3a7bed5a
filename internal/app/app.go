// Package app wires scraping and classification into the analysis pipeline.
package app

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/claimsift/claimsift/internal/types"
)

const (
	missingInputMsg = "Please provide either a URL or some post text."
	emptyContentMsg = "No text content could be extracted from this post."
)

// Scraper resolves a URL to post content.
type Scraper interface {
	Scrape(ctx context.Context, url string) types.ScrapeResult
}

// ClaimExtractor turns post text into classified claims.
type ClaimExtractor interface {
	ExtractAndClassify(ctx context.Context, text, url string) types.AnalysisResult
}

// App runs the scrape-then-classify pipeline for one request.
type App struct {
	scraper   Scraper
	extractor ClaimExtractor
	log       *zap.Logger
}

// New creates the pipeline over a scraper and an extractor.
func New(scraper Scraper, extractor ClaimExtractor, logger *zap.Logger) *App {
	return &App{
		scraper:   scraper,
		extractor: extractor,
		log:       logger,
	}
}

// Analyze handles one request. A URL takes precedence over pasted text;
// scrape failures short-circuit with the scrape error and metadata attached,
// and everything else flows into the classifier.
func (a *App) Analyze(ctx context.Context, req types.AnalyzeRequest) types.AnalysisResult {
	var scraped *types.ScrapeResult
	var text string

	switch {
	case req.URL != "":
		result := a.scraper.Scrape(ctx, req.URL)
		scraped = &result

		if result.Failed() {
			a.log.Info("scrape failed",
				zap.String("url", req.URL),
				zap.String("error", result.Error))
			return types.AnalysisResult{
				Claims:  []types.Claim{},
				Error:   result.Error,
				Scraped: scraped,
			}
		}
		text = withMediaNotes(result)

	case req.Text != "":
		text = req.Text

	default:
		return types.AnalysisResult{
			Claims: []types.Claim{},
			Error:  missingInputMsg,
		}
	}

	if strings.TrimSpace(text) == "" {
		return types.AnalysisResult{
			Claims: []types.Claim{},
			Error:  emptyContentMsg,
		}
	}

	result := a.extractor.ExtractAndClassify(ctx, text, req.URL)
	result.Scraped = scraped
	return result
}

// withMediaNotes appends image/video counts to the text so the classifier
// can weigh media the scraper saw but cannot inline.
func withMediaNotes(r types.ScrapeResult) string {
	text := r.Text
	if n := len(r.ImageURLs); n > 0 {
		text += fmt.Sprintf("\n\n[Note: this post contains %d image(s)]", n)
	}
	if n := len(r.VideoURLs); n > 0 {
		text += fmt.Sprintf("\n\n[Note: this post contains %d video(s)]", n)
	}
	return text
}
