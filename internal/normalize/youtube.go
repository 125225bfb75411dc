package normalize

import (
	"net/url"
	"regexp"
	"strings"
)

var (
	youTubeURL = regexp.MustCompile(`https?://(?:www\.|m\.)?(?:youtube\.com/(?:watch\?[^\s)\]>"']*v=|embed/|shorts/|live/|v/)|youtu\.be/)[A-Za-z0-9_-]{11}[^\s)\]>"']*`)
	youTubeID  = regexp.MustCompile(`(?:youtu\.be/|/embed/|/shorts/|/live/|/v/|[?&]v=)([A-Za-z0-9_-]{11})(?:[^A-Za-z0-9_-]|$)`)
)

// FindYouTubeURL returns the first YouTube video URL in text, or "".
func FindYouTubeURL(text string) string {
	return strings.TrimRight(youTubeURL.FindString(text), ".,;")
}

// YouTubeID returns the 11 character video id of a YouTube URL, or "".
func YouTubeID(u string) string {
	m := youTubeID.FindStringSubmatch(strings.TrimSpace(u))
	if m == nil {
		return ""
	}
	return m[1]
}

func EmbedURL(id string) string {
	return "https://www.youtube.com/embed/" + id
}

func ThumbnailURL(id string) string {
	return "https://img.youtube.com/vi/" + id + "/maxresdefault.jpg"
}

// YouTubeSearchURL links to a YouTube results page for query.
func YouTubeSearchURL(query string) string {
	return "https://www.youtube.com/results?search_query=" + url.QueryEscape(strings.TrimSpace(query))
}
