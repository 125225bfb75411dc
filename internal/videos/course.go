package videos

import (
	"github.com/google/uuid"

	"github.com/skillboost/skillboost/internal/catalog"
	"github.com/skillboost/skillboost/internal/normalize"
)

// VirtualCourseCategory is the category given to generated courses.
const VirtualCourseCategory = "Technical"

// VirtualCourse is a course assembled on the fly around one video.
type VirtualCourse struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	VideoURL    string   `json:"videoUrl"`
	Thumbnail   string   `json:"thumbnail"`
	Skills      []string `json:"skills"`
}

// NewVirtualCourse wraps a deep dive for course into a playable course. It
// returns false when the deep dive has no YouTube video, in which case the
// regular course should be opened instead.
func NewVirtualCourse(course catalog.Course, dd DeepDive) (VirtualCourse, bool) {
	id := dd.VideoID
	if id == "" {
		id = normalize.YouTubeID(dd.URL)
	}
	if id == "" {
		return VirtualCourse{}, false
	}
	return VirtualCourse{
		ID:          "ai-" + course.ID + "-" + uuid.NewString(),
		Title:       "[AI] " + dd.Title,
		Description: dd.Rationale,
		Category:    VirtualCourseCategory,
		VideoURL:    normalize.EmbedURL(id),
		Thumbnail:   normalize.ThumbnailURL(id),
		Skills:      append([]string(nil), course.Skills...),
	}, true
}

// LectureCourse turns an analyzed lecture into a course. It returns false
// when the lecture URL is not a YouTube video.
func LectureCourse(a LectureAnalysis) (VirtualCourse, bool) {
	id := a.VideoID
	if id == "" {
		id = normalize.YouTubeID(a.URL)
	}
	if id == "" {
		return VirtualCourse{}, false
	}
	return VirtualCourse{
		ID:          "industrial-" + uuid.NewString(),
		Title:       a.IndustrialTitle,
		Description: a.Summary,
		Category:    VirtualCourseCategory,
		VideoURL:    normalize.EmbedURL(id),
		Thumbnail:   normalize.ThumbnailURL(id),
		Skills:      append([]string{}, a.Concepts...),
	}, true
}
