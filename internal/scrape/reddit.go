package scrape

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"net/http"
	"regexp"
	"slices"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/claimsift/claimsift/internal/types"
)

const (
	redditTimeout   = 15 * time.Second
	redditUserAgent = "claimsift/1.0 (fact-checking research tool)"

	// Reddit attaches several downscaled previews per post; two is plenty
	// for the classifier's media notes.
	maxPreviewImages = 2
)

var directImageRe = regexp.MustCompile(`(?i)\.(jpg|jpeg|png|gif|webp)(\?|$)`)

// RedditRetriever fetches posts through Reddit's public JSON API: appending
// .json to any post URL returns the listing as structured data, no login or
// browser needed.
type RedditRetriever struct {
	client *http.Client
	log    *zap.Logger
}

// NewRedditRetriever creates a retriever with a bounded-timeout client.
func NewRedditRetriever(logger *zap.Logger) *RedditRetriever {
	return &RedditRetriever{
		client: &http.Client{Timeout: redditTimeout},
		log:    logger,
	}
}

// redditListing mirrors the slice of wrappers Reddit returns for a post URL:
// the post itself is the first child of the first listing.
type redditListing struct {
	Data struct {
		Children []struct {
			Data redditPost `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

type redditPost struct {
	Title      string      `json:"title"`
	Selftext   string      `json:"selftext"`
	Author     string      `json:"author"`
	URL        string      `json:"url"`
	IsVideo    bool        `json:"is_video"`
	CreatedUTC json.Number `json:"created_utc"`
	Media      struct {
		RedditVideo struct {
			FallbackURL string `json:"fallback_url"`
		} `json:"reddit_video"`
	} `json:"media"`
	Preview struct {
		Images []struct {
			Source struct {
				URL string `json:"url"`
			} `json:"source"`
		} `json:"images"`
	} `json:"preview"`
}

// Scrape fetches and normalizes a single Reddit post.
func (r *RedditRetriever) Scrape(ctx context.Context, rawURL string) types.ScrapeResult {
	// Strip query parameters and trailing slashes, then ask for JSON.
	clean := strings.TrimRight(strings.SplitN(rawURL, "?", 2)[0], "/") + ".json"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, clean, nil)
	if err != nil {
		return types.ErrorResult(types.PlatformReddit, fmt.Sprintf("Could not fetch Reddit post: %v", err))
	}
	req.Header.Set("User-Agent", redditUserAgent)

	resp, err := r.client.Do(req)
	if err != nil {
		return types.ErrorResult(types.PlatformReddit, fmt.Sprintf("Could not fetch Reddit post: %v", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return types.ErrorResult(types.PlatformReddit, fmt.Sprintf("Could not fetch Reddit post: unexpected status %s", resp.Status))
	}

	var listings []redditListing
	if err := json.NewDecoder(resp.Body).Decode(&listings); err != nil ||
		len(listings) == 0 || len(listings[0].Data.Children) == 0 {
		return types.ErrorResult(types.PlatformReddit,
			"Could not parse Reddit response - the URL may not point to a specific post.")
	}
	post := listings[0].Data.Children[0].Data

	text := strings.TrimSpace(post.Title + "\n\n" + post.Selftext)

	images := []string{}
	videos := []string{}

	// Posts that link straight to an image file.
	if directImageRe.MatchString(post.URL) {
		images = append(images, post.URL)
	}

	// Reddit-hosted video.
	if post.IsVideo && post.Media.RedditVideo.FallbackURL != "" {
		videos = append(videos, post.Media.RedditVideo.FallbackURL)
	}

	// CDN preview images arrive with HTML-escaped ampersands.
	previews := post.Preview.Images
	if len(previews) > maxPreviewImages {
		previews = previews[:maxPreviewImages]
	}
	for _, img := range previews {
		src := html.UnescapeString(img.Source.URL)
		if src != "" && !slices.Contains(images, src) {
			images = append(images, src)
		}
	}

	r.log.Debug("reddit post scraped",
		zap.Int("text_len", len(text)),
		zap.Int("images", len(images)),
		zap.Int("videos", len(videos)))

	return types.ScrapeResult{
		Platform:  types.PlatformReddit,
		Text:      text,
		Author:    post.Author,
		ImageURLs: images,
		VideoURLs: videos,
		Timestamp: post.CreatedUTC.String(),
	}
}
