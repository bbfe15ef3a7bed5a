package types

// Platform identifies a supported social-media source.
type Platform string

const (
	PlatformReddit    Platform = "reddit"
	PlatformYouTube   Platform = "youtube"
	PlatformTwitter   Platform = "twitter"
	PlatformInstagram Platform = "instagram"
	PlatformFacebook  Platform = "facebook"
	PlatformUnknown   Platform = "unknown"
)

// BrowserBacked reports whether the platform can only be scraped through a
// logged-in browser session.
func (p Platform) BrowserBacked() bool {
	switch p {
	case PlatformTwitter, PlatformInstagram, PlatformFacebook:
		return true
	}
	return false
}

// Claim categories. The classifier is instructed to use exactly these values.
const (
	CategoryOutOfContext = "out-of-context"
	CategoryFabricated   = "fabricated"
	CategoryManipulated  = "manipulated/doctored"
	CategoryUnclassified = "unclassified"
)

// Media labels a claim may carry.
const (
	MediaImage = "contains image"
	MediaVideo = "contains video"
	MediaAudio = "contains audio"
)

// Confidence levels.
const (
	ConfidenceHigh   = "high"
	ConfidenceMedium = "medium"
	ConfidenceLow    = "low"
)

// ScrapeResult is the normalized output of every retriever. Error and
// content are mutually exclusive: a failed result carries only the error
// message, with all content fields at their empty values.
type ScrapeResult struct {
	Platform  Platform `json:"platform"`
	Text      string   `json:"text"`
	Author    string   `json:"author"`
	ImageURLs []string `json:"image_urls"`
	VideoURLs []string `json:"video_urls"`
	Timestamp string   `json:"timestamp"`
	Error     string   `json:"error,omitempty"`
}

// Failed reports whether the retrieval failed.
func (r ScrapeResult) Failed() bool { return r.Error != "" }

// ErrorResult builds the standard failure shape for a platform.
func ErrorResult(p Platform, msg string) ScrapeResult {
	return ScrapeResult{
		Platform:  p,
		ImageURLs: []string{},
		VideoURLs: []string{},
		Error:     msg,
	}
}

// Claim is a single factual assertion extracted from post text.
type Claim struct {
	ClaimText   string   `json:"claim_text"`
	Category    string   `json:"category"`
	Reasoning   string   `json:"reasoning"`
	MediaLabels []string `json:"media_labels"`
	Confidence  string   `json:"confidence"`
}

// AnalysisResult is the full response for one analyze request.
type AnalysisResult struct {
	Claims  []Claim       `json:"claims"`
	Summary string        `json:"summary"`
	Error   string        `json:"error,omitempty"`
	Scraped *ScrapeResult `json:"scraped,omitempty"`
}

// AnalyzeRequest is the single-endpoint input. URL takes precedence over
// Text when both are set.
type AnalyzeRequest struct {
	Text string `json:"text"`
	URL  string `json:"url"`
}
