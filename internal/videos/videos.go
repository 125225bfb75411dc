// Package videos finds industry videos for a skill, analyzes lecture videos
// and turns either into a playable virtual course.
package videos

import (
	"context"
	"fmt"

	"github.com/skillboost/skillboost/internal/llm"
	"github.com/skillboost/skillboost/internal/logger"
	"github.com/skillboost/skillboost/internal/normalize"
	"github.com/skillboost/skillboost/internal/prompt"
)

// DeepDive is a video picked to close the gap for one skill or course.
// Found is false when the reply named no video and URL is a search link.
type DeepDive struct {
	CourseID  string `json:"courseId,omitempty"`
	Query     string `json:"query"`
	Title     string `json:"title"`
	URL       string `json:"url"`
	VideoID   string `json:"videoId,omitempty"`
	Rationale string `json:"rationale"`
	Found     bool   `json:"found"`
}

// LectureAnalysis is the industry reading of a lecture video.
type LectureAnalysis struct {
	URL             string   `json:"url"`
	VideoID         string   `json:"videoId,omitempty"`
	IndustrialTitle string   `json:"industrialTitle"`
	Summary         string   `json:"summary"`
	Concepts        []string `json:"concepts"`
	RecoveryPoints  []string `json:"recoveryPoints"`
}

// VideoFinder is what DeepDives needs from a Finder.
type VideoFinder interface {
	Find(ctx context.Context, skill string) (DeepDive, error)
}

// Finder asks a search-grounded model for one video per skill.
type Finder struct {
	provider llm.Provider
	log      *logger.Logger
}

func NewFinder(provider llm.Provider, log *logger.Logger) *Finder {
	if log == nil {
		log = logger.Nop()
	}
	return &Finder{provider: provider, log: log}
}

// Find returns a video for skill. Only invalid input and an unavailable
// model are errors; a reply missing fields is filled with placeholders.
func (f *Finder) Find(ctx context.Context, skill string) (DeepDive, error) {
	req, err := prompt.VideoForSkill(skill)
	if err != nil {
		return DeepDive{}, err
	}
	ctx = llm.WithPurpose(ctx, req.Purpose())

	resp, err := f.provider.Generate(ctx, req.LLM())
	if err != nil {
		return DeepDive{}, fmt.Errorf("find video: %w", err)
	}

	v := normalize.ExtractVideo(resp.Text(), req.Subject())
	if !v.Found {
		f.log.Debug("video reply had no link", "skill", req.Subject())
	}
	return DeepDive{
		Query:     req.Subject(),
		Title:     v.Title,
		URL:       v.URL,
		VideoID:   normalize.YouTubeID(v.URL),
		Rationale: v.Rationale,
		Found:     v.Found,
	}, nil
}

// Analyzer reads lecture videos through a search-grounded model.
type Analyzer struct {
	provider llm.Provider
	log      *logger.Logger
}

func NewAnalyzer(provider llm.Provider, log *logger.Logger) *Analyzer {
	if log == nil {
		log = logger.Nop()
	}
	return &Analyzer{provider: provider, log: log}
}

// Analyze summarizes the lecture at url and lists what to recover from it.
func (a *Analyzer) Analyze(ctx context.Context, url string) (LectureAnalysis, error) {
	req, err := prompt.AnalyzeLecture(url)
	if err != nil {
		return LectureAnalysis{}, err
	}
	ctx = llm.WithPurpose(ctx, req.Purpose())

	resp, err := a.provider.Generate(ctx, req.LLM())
	if err != nil {
		return LectureAnalysis{}, fmt.Errorf("analyze lecture: %w", err)
	}

	l := normalize.ExtractLecture(resp.Text(), req.Subject())
	return LectureAnalysis{
		URL:             req.Subject(),
		VideoID:         normalize.YouTubeID(req.Subject()),
		IndustrialTitle: l.Title,
		Summary:         l.Summary,
		Concepts:        l.Concepts,
		RecoveryPoints:  l.RecoveryPoints,
	}, nil
}
