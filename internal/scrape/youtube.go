package scrape

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/claimsift/claimsift/internal/types"
)

const (
	// Caps keep the classifier prompt within budget for long uploads.
	descriptionLimit = 2000
	transcriptLimit  = 4000

	noTranscriptNote = "[No captions or transcript available for this video]"
)

// VideoMetadata is the subset of extractor output the retriever consumes.
type VideoMetadata struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Uploader    string `json:"uploader"`
	Thumbnail   string `json:"thumbnail"`
	UploadDate  string `json:"upload_date"`
}

// MetadataFetcher returns video metadata for a URL.
type MetadataFetcher interface {
	Fetch(ctx context.Context, url string) (*VideoMetadata, error)
}

// TranscriptFetcher returns the caption text for a video id.
type TranscriptFetcher interface {
	Fetch(ctx context.Context, videoID string) (string, error)
}

// YouTubeRetriever combines two independent external extraction tools:
// metadata first, then captions keyed by the extracted video id. Metadata
// failure is fatal; a missing transcript only degrades the text.
type YouTubeRetriever struct {
	metadata   MetadataFetcher
	transcript TranscriptFetcher
	log        *zap.Logger
}

// NewYouTubeRetriever creates a retriever over the two fetchers.
func NewYouTubeRetriever(metadata MetadataFetcher, transcript TranscriptFetcher, logger *zap.Logger) *YouTubeRetriever {
	return &YouTubeRetriever{
		metadata:   metadata,
		transcript: transcript,
		log:        logger,
	}
}

// Scrape fetches and normalizes a single YouTube video.
func (r *YouTubeRetriever) Scrape(ctx context.Context, rawURL string) types.ScrapeResult {
	info, err := r.metadata.Fetch(ctx, rawURL)
	if err != nil {
		return types.ErrorResult(types.PlatformYouTube, fmt.Sprintf("Could not fetch YouTube video info: %v", err))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Title: %s\n\nDescription:\n%s", info.Title, truncate(info.Description, descriptionLimit))

	transcript, err := r.transcript.Fetch(ctx, info.ID)
	if err != nil || strings.TrimSpace(transcript) == "" {
		if err != nil {
			r.log.Debug("transcript unavailable", zap.String("video_id", info.ID), zap.Error(err))
		}
		b.WriteString("\n\n" + noTranscriptNote)
	} else {
		fmt.Fprintf(&b, "\n\nVideo transcript:\n%s", truncate(transcript, transcriptLimit))
	}

	images := []string{}
	if info.Thumbnail != "" {
		images = append(images, info.Thumbnail)
	}

	return types.ScrapeResult{
		Platform:  types.PlatformYouTube,
		Text:      strings.TrimSpace(b.String()),
		Author:    info.Uploader,
		ImageURLs: images,
		VideoURLs: []string{rawURL},
		Timestamp: info.UploadDate,
	}
}

// truncate caps s at limit characters, never splitting a multibyte rune.
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
