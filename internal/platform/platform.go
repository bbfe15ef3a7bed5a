// Package platform maps post URLs to the platform that hosts them.
package platform

import (
	"net/url"
	"strings"

	"github.com/claimsift/claimsift/internal/types"
)

// Detect infers the platform from a post URL. It is pure and total: input
// that matches no known host maps to PlatformUnknown rather than erroring.
func Detect(raw string) types.Platform {
	u, err := url.Parse(strings.ToLower(strings.TrimSpace(raw)))
	if err != nil {
		return types.PlatformUnknown
	}
	host := strings.TrimPrefix(u.Hostname(), "www.")

	switch host {
	case "twitter.com", "x.com", "mobile.twitter.com":
		return types.PlatformTwitter
	case "youtube.com", "youtu.be", "m.youtube.com":
		return types.PlatformYouTube
	case "fb.com":
		return types.PlatformFacebook
	}

	switch {
	case strings.Contains(host, "reddit.com"):
		return types.PlatformReddit
	case strings.Contains(host, "instagram.com"):
		return types.PlatformInstagram
	case strings.Contains(host, "facebook.com"):
		return types.PlatformFacebook
	}

	return types.PlatformUnknown
}
