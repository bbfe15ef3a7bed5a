package scrape

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/claimsift/claimsift/internal/types"
)

// extraction is the platform-strategy output before it is folded into a
// ScrapeResult. errMsg carries failures that are expected page states
// (content deleted, private, behind login) rather than browser errors.
type extraction struct {
	text   string
	author string
	images []string
	videos []string
	errMsg string
}

// extract dispatches to the platform-specific extraction strategy.
func (r *BrowserRetriever) extract(pg page, url string, p types.Platform) (extraction, error) {
	switch p {
	case types.PlatformTwitter:
		return r.extractTweet(pg, url)
	case types.PlatformInstagram:
		return r.extractOpenGraph(pg, url, false)
	case types.PlatformFacebook:
		return r.extractOpenGraph(pg, url, true)
	default:
		return extraction{}, fmt.Errorf("no extraction strategy for platform %s", p)
	}
}

var tweetImageSizeRe = regexp.MustCompile(`&name=\w+$`)

// upgradeTweetImageURL swaps the thumbnail size parameter for the large
// variant the CDN serves.
func upgradeTweetImageURL(src string) string {
	return tweetImageSizeRe.ReplaceAllString(src, "&name=large")
}

// extractTweet pulls text, author and media out of a tweet's DOM.
func (r *BrowserRetriever) extractTweet(pg page, url string) (extraction, error) {
	// X sometimes lays a "sign in to continue" modal over public tweets
	// without changing the URL, so the login-wall check never sees it.
	// Try the known close buttons; the first that clicks wins, and none
	// matching is fine.
	time.Sleep(r.overlayWait)
	for _, selector := range dismissSelectors {
		if err := pg.Click(selector); err == nil {
			time.Sleep(r.clickWait)
			break
		}
	}

	if err := pg.WaitVisible(TweetArticle, r.contentWait); err != nil {
		return extraction{errMsg: "Tweet content not found. The post may be deleted, private, or require login."}, nil
	}

	text, err := pg.Text(TweetText)
	if err != nil {
		return extraction{}, err
	}

	author, err := pg.Text(TweetAuthor)
	if err != nil {
		return extraction{}, err
	}
	// The name element stacks display name, handle and timestamp; the
	// display name is the first line.
	author = strings.SplitN(author, "\n", 2)[0]

	srcs, err := pg.Attributes(TweetPhotoImg, "src")
	if err != nil {
		return extraction{}, err
	}
	var images []string
	for _, src := range srcs {
		if strings.Contains(src, twitterImageHost) {
			images = append(images, upgradeTweetImageURL(src))
		}
	}

	var videos []string
	hasVideo, err := pg.Exists(TweetVideo)
	if err != nil {
		return extraction{}, err
	}
	if hasVideo {
		videos = append(videos, url)
	}

	return extraction{text: text, author: author, images: images, videos: videos}, nil
}

// openGraph holds the meta tags read from a page head.
type openGraph struct {
	Title       string
	Description string
	Image       string
	Type        string
}

// parseOpenGraph reads og: meta tags out of a page's HTML. When a property
// appears more than once, the first occurrence wins.
func parseOpenGraph(pageHTML string) (openGraph, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(pageHTML))
	if err != nil {
		return openGraph{}, fmt.Errorf("parse page html: %w", err)
	}

	var og openGraph
	doc.Find(`meta[property]`).Each(func(_ int, s *goquery.Selection) {
		content := s.AttrOr("content", "")
		switch s.AttrOr("property", "") {
		case ogTitle:
			if og.Title == "" {
				og.Title = content
			}
		case ogDescription:
			if og.Description == "" {
				og.Description = content
			}
		case ogImage:
			if og.Image == "" {
				og.Image = content
			}
		case ogType:
			if og.Type == "" {
				og.Type = content
			}
		}
	})
	return og, nil
}

// extractOpenGraph is the metadata-tag strategy for platforms whose DOM is
// too unstable to scrape directly. Instagram posts carry the caption in
// og:description; Facebook additionally puts the poster in og:title.
func (r *BrowserRetriever) extractOpenGraph(pg page, url string, includeTitle bool) (extraction, error) {
	// Instagram and Facebook inject meta tags client-side; reading the
	// head straight after navigation can miss them.
	time.Sleep(r.overlayWait)

	pageHTML, err := pg.HTML()
	if err != nil {
		return extraction{}, err
	}

	og, err := parseOpenGraph(pageHTML)
	if err != nil {
		return extraction{}, err
	}

	text := og.Description
	if includeTitle {
		text = strings.TrimSpace(og.Title + "\n\n" + og.Description)
	}

	var images []string
	if og.Image != "" {
		images = append(images, og.Image)
	}
	var videos []string
	if strings.Contains(og.Type, "video") {
		videos = append(videos, url)
	}

	return extraction{text: text, images: images, videos: videos}, nil
}
