package scrape

// X.com DOM selectors. These are isolated here because X changes their DOM
// frequently; update these when tweet extraction breaks.
const (
	TweetArticle  = `article[data-testid="tweet"]`
	TweetText     = `[data-testid="tweetText"]`
	TweetAuthor   = `[data-testid="User-Name"]`
	TweetPhotoImg = `[data-testid="tweetPhoto"] img`
	TweetVideo    = `[data-testid="videoComponent"]`
)

// Close buttons for X's "sign in to continue" modal, tried in order. The
// first one that clicks wins.
var dismissSelectors = []string{
	`[data-testid="sheetDialog"] [aria-label="Close"]`,
	`[aria-label="Close"]`,
	`[data-testid="app-bar-close"]`,
}

// twitterImageHost is the CDN that serves tweet photos.
const twitterImageHost = "pbs.twimg.com"

// Open Graph meta tag properties read by the metadata-based strategies.
const (
	ogTitle       = "og:title"
	ogDescription = "og:description"
	ogImage       = "og:image"
	ogType        = "og:type"
)
