package preview

import (
	"net/url"
	"path"
	"strings"

	"curate/internal/service"
)

var youtubeHosts = map[string]bool{
	"youtube.com":              true,
	"www.youtube.com":          true,
	"m.youtube.com":            true,
	"music.youtube.com":        true,
	"youtu.be":                 true,
	"www.youtube-nocookie.com": true,
}

var imageExts = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true,
	".webp": true, ".svg": true, ".avif": true, ".bmp": true,
}

// Classify returns the source type for rawURL: youtube, image or website.
func Classify(rawURL string) string {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return service.SourceWebsite
	}
	if youtubeHosts[strings.ToLower(u.Hostname())] {
		return service.SourceYouTube
	}
	if imageExts[strings.ToLower(path.Ext(u.Path))] {
		return service.SourceImage
	}
	return service.SourceWebsite
}

// classifyContentType refines a website classification using the response type.
func classifyContentType(source, contentType string) string {
	if source == service.SourceWebsite && strings.HasPrefix(strings.ToLower(contentType), "image/") {
		return service.SourceImage
	}
	return source
}
