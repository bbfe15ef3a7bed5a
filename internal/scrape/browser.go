package scrape

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/claimsift/claimsift/internal/session"
	"github.com/claimsift/claimsift/internal/types"
)

const (
	navigateTimeout    = 30 * time.Second
	settleDelay        = 3 * time.Second
	loginWaitTimeout   = 90 * time.Second
	loginPollInterval  = 2 * time.Second
	contentWaitTimeout = 15 * time.Second
	overlayDelay       = 2 * time.Second
	postClickDelay     = time.Second
)

// URL substrings that mark a login wall or sign-in interstitial.
var loginIndicators = []string{"login", "signin", "sign-in", "accounts/login", "/auth", "session/new"}

// isLoginWall reports whether the current URL looks like a login page.
func isLoginWall(url string) bool {
	lower := strings.ToLower(url)
	for _, indicator := range loginIndicators {
		if strings.Contains(lower, indicator) {
			return true
		}
	}
	return false
}

// BrowserRetriever scrapes platforms that hide content behind a logged-in
// session. It drives a visible browser bound to a persistent per-platform
// profile, so a login completed once is reused on every later run.
//
// The flow is a small state machine: launch, navigate, settle and check for
// a login wall, optionally wait for the user to log in, extract with the
// platform's strategy, and tear the browser down on every exit path.
type BrowserRetriever struct {
	sessions   *session.Store
	serverMode bool
	newPage    pageFactory
	log        *zap.Logger

	// Wait knobs, shrunk in tests.
	settle      time.Duration
	loginWait   time.Duration
	loginPoll   time.Duration
	contentWait time.Duration
	overlayWait time.Duration
	clickWait   time.Duration
}

// NewBrowserRetriever creates a retriever over the session store. When
// serverMode is set, every scrape is refused before a browser is launched:
// there is no display to show a login window on.
func NewBrowserRetriever(sessions *session.Store, serverMode bool, logger *zap.Logger) *BrowserRetriever {
	return &BrowserRetriever{
		sessions:    sessions,
		serverMode:  serverMode,
		newPage:     newChromePage,
		log:         logger,
		settle:      settleDelay,
		loginWait:   loginWaitTimeout,
		loginPoll:   loginPollInterval,
		contentWait: contentWaitTimeout,
		overlayWait: overlayDelay,
		clickWait:   postClickDelay,
	}
}

// Scrape fetches and normalizes a single post from a browser-backed
// platform. It never returns a Go error; every failure becomes an
// error-bearing result.
func (r *BrowserRetriever) Scrape(ctx context.Context, url string, p types.Platform) types.ScrapeResult {
	if r.serverMode {
		return types.ErrorResult(p, fmt.Sprintf(
			"Scraping %s requires a logged-in browser session, which only works in the desktop version of this tool. Please copy and paste the post text manually.",
			cases.Title(language.English).String(string(p))))
	}

	profileDir, err := r.sessions.ProfileDir(p)
	if err != nil {
		return types.ErrorResult(p, fmt.Sprintf("Could not prepare browser session: %v", err))
	}

	pg, err := r.newPage(ctx, profileDir)
	if err != nil {
		return types.ErrorResult(p, fmt.Sprintf("Could not launch browser: %v", err))
	}
	// The browser is released on every exit path, including extraction
	// failures.
	defer pg.Close()

	if err := pg.Navigate(url, navigateTimeout); err != nil {
		return types.ErrorResult(p, fmt.Sprintf("Page failed to load: %v", err))
	}

	// Give the page a moment to redirect, e.g. to a login wall.
	time.Sleep(r.settle)

	if loc, err := pg.Location(); err == nil && isLoginWall(loc) {
		r.log.Info("login wall detected, waiting for interactive login",
			zap.String("platform", string(p)),
			zap.Duration("timeout", r.loginWait))

		if err := r.waitForLogin(ctx, pg); err != nil {
			return types.ErrorResult(p, "Login timed out (90 seconds). Please try again.")
		}

		// Logged in now; go back to the post.
		if err := pg.Navigate(url, navigateTimeout); err != nil {
			return types.ErrorResult(p, fmt.Sprintf("Page failed to load after login: %v", err))
		}
		time.Sleep(r.settle)
	}

	ext, err := r.extract(pg, url, p)
	if err != nil {
		return types.ErrorResult(p, fmt.Sprintf("Content extraction failed: %v", err))
	}
	if ext.errMsg != "" {
		return types.ErrorResult(p, ext.errMsg)
	}
	if ext.images == nil {
		ext.images = []string{}
	}
	if ext.videos == nil {
		ext.videos = []string{}
	}

	r.log.Info("browser scrape complete",
		zap.String("platform", string(p)),
		zap.Int("text_len", len(ext.text)))

	return types.ScrapeResult{
		Platform:  p,
		Text:      ext.text,
		Author:    ext.author,
		ImageURLs: ext.images,
		VideoURLs: ext.videos,
	}
}

// waitForLogin polls the page location on a fixed interval until it no
// longer looks like a login page, or the deadline passes. The user is
// expected to complete the login by hand in the visible window.
func (r *BrowserRetriever) waitForLogin(ctx context.Context, pg page) error {
	deadline := time.After(r.loginWait)
	ticker := time.NewTicker(r.loginPoll)
	defer ticker.Stop()

	for {
		select {
		case <-deadline:
			return fmt.Errorf("login wait exceeded %s", r.loginWait)
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			loc, err := pg.Location()
			if err != nil {
				continue
			}
			if !isLoginWall(loc) {
				// Let the post-login redirect finish before moving on.
				time.Sleep(r.settle)
				return nil
			}
		}
	}
}
