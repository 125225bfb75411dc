package normalize

import (
	"fmt"
	"strings"
)

// Placeholder texts used when a pattern reply lacks a field.
const (
	PlaceholderRationale = "Bridging the gap with industry standards."
	PlaceholderSummary   = "No summary was returned for this lecture."
)

// PlaceholderTitle is the title shown when a reply has none.
func PlaceholderTitle(input string) string {
	return fmt.Sprintf("Industrial Focus: %s", strings.TrimSpace(input))
}

// VideoFields is what a "find a video" reply is read into. No field is
// ever empty; Found reports whether URL came from the reply.
type VideoFields struct {
	Title     string
	Rationale string
	URL       string
	Found     bool
}

// ExtractVideo reads Title, URL and Rationale lines from text, falling back
// to the first YouTube URL anywhere in it and then to placeholders.
func ExtractVideo(text, input string) VideoFields {
	fields := ExtractLabeled(text, "Title", "URL", "Rationale")

	v := VideoFields{
		Title:     fields["Title"],
		Rationale: fields["Rationale"],
	}
	if u := FindYouTubeURL(fields["URL"]); u != "" {
		v.URL, v.Found = u, true
	} else if u := FindYouTubeURL(text); u != "" {
		v.URL, v.Found = u, true
	}

	if v.Title == "" {
		v.Title = PlaceholderTitle(input)
	}
	if v.Rationale == "" {
		v.Rationale = PlaceholderRationale
	}
	if v.URL == "" {
		v.URL = YouTubeSearchURL(input)
	}
	return v
}

// LectureFields is what a lecture analysis reply is read into.
type LectureFields struct {
	Title          string
	Summary        string
	Concepts       []string
	RecoveryPoints []string
}

// ExtractLecture reads Title, Summary, Concepts and Recovery lines from text.
// Title and Summary fall back to placeholders; the lists may be empty.
func ExtractLecture(text, url string) LectureFields {
	fields := ExtractLabeled(text, "Title", "Summary", "Concepts", "Recovery")

	l := LectureFields{
		Title:          fields["Title"],
		Summary:        fields["Summary"],
		Concepts:       SplitList(fields["Concepts"]),
		RecoveryPoints: SplitList(fields["Recovery"]),
	}
	if l.Title == "" {
		l.Title = PlaceholderTitle(url)
	}
	if l.Summary == "" {
		l.Summary = PlaceholderSummary
	}
	return l
}
