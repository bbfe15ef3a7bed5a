package platform

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/claimsift/claimsift/internal/types"
)

func TestDetect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		url  string
		want types.Platform
	}{
		{"twitter", "https://twitter.com/user/status/123", types.PlatformTwitter},
		{"x dot com", "https://x.com/user/status/123", types.PlatformTwitter},
		{"mobile twitter", "https://mobile.twitter.com/user/status/123", types.PlatformTwitter},
		{"x with www", "https://www.x.com/user/status/123", types.PlatformTwitter},
		{"reddit", "https://www.reddit.com/r/news/comments/abc/title/", types.PlatformReddit},
		{"old reddit", "https://old.reddit.com/r/news/comments/abc/title/", types.PlatformReddit},
		{"youtube", "https://youtube.com/watch?v=abc", types.PlatformYouTube},
		{"youtube short link", "https://youtu.be/abc", types.PlatformYouTube},
		{"youtube mobile", "https://m.youtube.com/watch?v=abc", types.PlatformYouTube},
		{"instagram", "https://www.instagram.com/p/abc/", types.PlatformInstagram},
		{"facebook", "https://www.facebook.com/user/posts/123", types.PlatformFacebook},
		{"fb short domain", "https://fb.com/user/posts/123", types.PlatformFacebook},
		{"uppercase host", "HTTPS://X.COM/user/status/123", types.PlatformTwitter},
		{"unknown host", "https://example.com/post/1", types.PlatformUnknown},
		{"lookalike host", "https://notreddit.example.com/post/1", types.PlatformUnknown},
		{"empty", "", types.PlatformUnknown},
		{"no scheme", "twitter.com/user/status/123", types.PlatformUnknown},
		{"garbage", "::::not a url::::", types.PlatformUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Detect(tt.url))
		})
	}
}
