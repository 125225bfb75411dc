// Package catalog holds the course catalog, the video vault of hosted
// tutorials and the mentor directory, and recommends catalog courses for a
// learning goal.
package catalog

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/skillboost/skillboost/internal/backend"
	"github.com/skillboost/skillboost/internal/logger"
	"github.com/skillboost/skillboost/internal/prompt"
)

//go:embed seed.yaml
var seedYAML []byte

// AllCategories selects every course or tutorial.
const AllCategories = "All"

// Categories lists the course categories in display order.
var Categories = []string{AllCategories, "CS Core", "Technical", "Soft Skills", "Aptitude"}

type Course struct {
	ID          string   `yaml:"id" json:"id"`
	Title       string   `yaml:"title" json:"title"`
	Description string   `yaml:"description" json:"description"`
	Category    string   `yaml:"category" json:"category"`
	Thumbnail   string   `yaml:"thumbnail" json:"thumbnail"`
	VideoURL    string   `yaml:"video_url" json:"videoUrl"`
	Skills      []string `yaml:"skills" json:"skills"`
}

// Tutorial is a host-uploaded video in the video vault.
type Tutorial struct {
	ID          string `yaml:"id" json:"id"`
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
	VideoURL    string `yaml:"video_url" json:"videoUrl"`
	Thumbnail   string `yaml:"thumbnail" json:"thumbnail"`
	Duration    string `yaml:"duration" json:"duration"`
	Host        string `yaml:"host" json:"host"`
	Category    string `yaml:"category" json:"category"`
	UploadDate  string `yaml:"upload_date" json:"uploadDate"`
}

type Mentor struct {
	ID            string   `yaml:"id" json:"id"`
	Name          string   `yaml:"name" json:"name"`
	Role          string   `yaml:"role" json:"role"`
	Department    string   `yaml:"department" json:"department"`
	Expertise     []string `yaml:"expertise" json:"expertise"`
	Email         string   `yaml:"email" json:"email"`
	Avatar        string   `yaml:"avatar" json:"avatar"`
	AvailableTime []string `yaml:"available_time" json:"availableTime"`
}

type seed struct {
	Courses   []Course   `yaml:"courses"`
	Tutorials []Tutorial `yaml:"tutorials"`
	Mentors   []Mentor   `yaml:"mentors"`
}

// Catalog is an immutable snapshot of courses, tutorials and mentors.
type Catalog struct {
	courses   []Course
	byID      map[string]Course
	tutorials []Tutorial
	mentors   []Mentor
}

// New builds a catalog. Course ids must be unique and non-empty.
func New(courses []Course, tutorials []Tutorial, mentors []Mentor) (*Catalog, error) {
	c := &Catalog{
		courses:   append([]Course(nil), courses...),
		byID:      make(map[string]Course, len(courses)),
		tutorials: append([]Tutorial(nil), tutorials...),
		mentors:   append([]Mentor(nil), mentors...),
	}
	for _, course := range c.courses {
		if strings.TrimSpace(course.ID) == "" {
			return nil, fmt.Errorf("course %q has no id", course.Title)
		}
		if _, dup := c.byID[course.ID]; dup {
			return nil, fmt.Errorf("duplicate course id %q", course.ID)
		}
		c.byID[course.ID] = course
	}
	return c, nil
}

// Seed returns the built-in catalog.
func Seed() (*Catalog, error) {
	var s seed
	if err := yaml.Unmarshal(seedYAML, &s); err != nil {
		return nil, fmt.Errorf("parse catalog seed: %w", err)
	}
	return New(s.Courses, s.Tutorials, s.Mentors)
}

// Load prefers the backend's course listing and falls back to the seed
// courses when the backend fails or lists nothing. Tutorials and mentors
// always come from the seed.
func Load(ctx context.Context, lister backend.CourseLister, log *logger.Logger) (*Catalog, error) {
	if log == nil {
		log = logger.Nop()
	}
	base, err := Seed()
	if err != nil {
		return nil, err
	}
	if lister == nil {
		return base, nil
	}

	listed, err := lister.ListCourses(ctx)
	if err != nil {
		log.Warn("course listing unavailable, using built-in catalog", "error", err)
		return base, nil
	}
	if len(listed) == 0 {
		return base, nil
	}

	courses := make([]Course, len(listed))
	for i, bc := range listed {
		courses[i] = fromBackend(bc)
	}
	c, err := New(courses, base.tutorials, base.mentors)
	if err != nil {
		log.Warn("backend course listing rejected, using built-in catalog", "error", err)
		return base, nil
	}
	log.Debug("catalog loaded from backend", "courses", len(courses))
	return c, nil
}

func fromBackend(bc backend.Course) Course {
	return Course{
		ID:          bc.ID,
		Title:       bc.Title,
		Description: bc.Description,
		Category:    bc.Category,
		Thumbnail:   bc.Thumbnail,
		VideoURL:    bc.VideoURL,
		Skills:      append([]string(nil), bc.Skills...),
	}
}

// BackendCourses converts the catalog courses for storage.
func (c *Catalog) BackendCourses() []backend.Course {
	out := make([]backend.Course, len(c.courses))
	for i, course := range c.courses {
		out[i] = backend.Course{
			ID:          course.ID,
			Title:       course.Title,
			Description: course.Description,
			Category:    course.Category,
			Thumbnail:   course.Thumbnail,
			VideoURL:    course.VideoURL,
			Skills:      append([]string(nil), course.Skills...),
		}
	}
	return out
}

// Courses returns every course in catalog order.
func (c *Catalog) Courses() []Course {
	return append([]Course(nil), c.courses...)
}

func (c *Catalog) Course(id string) (Course, bool) {
	course, ok := c.byID[id]
	return course, ok
}

// Filter returns the courses in category. "All" and "" select everything.
func (c *Catalog) Filter(category string) []Course {
	if isAll(category) {
		return c.Courses()
	}
	var out []Course
	for _, course := range c.courses {
		if strings.EqualFold(course.Category, category) {
			out = append(out, course)
		}
	}
	return out
}

// Search matches query case-insensitively against title, description and
// skills. An empty query matches everything.
func (c *Catalog) Search(query string) []Course {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return c.Courses()
	}
	var out []Course
	for _, course := range c.courses {
		if containsFold(q, course.Title, course.Description) || containsFold(q, course.Skills...) {
			out = append(out, course)
		}
	}
	return out
}

// Tutorials returns the video vault, optionally narrowed to a category.
func (c *Catalog) Tutorials(category string) []Tutorial {
	if isAll(category) {
		return append([]Tutorial(nil), c.tutorials...)
	}
	var out []Tutorial
	for _, t := range c.tutorials {
		if strings.EqualFold(t.Category, category) {
			out = append(out, t)
		}
	}
	return out
}

// Mentors matches query against name, role, department and expertise.
func (c *Catalog) Mentors(query string) []Mentor {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return append([]Mentor(nil), c.mentors...)
	}
	var out []Mentor
	for _, m := range c.mentors {
		if containsFold(q, m.Name, m.Role, m.Department) || containsFold(q, m.Expertise...) {
			out = append(out, m)
		}
	}
	return out
}

// Items is the id/title view handed to the recommendation prompt.
func (c *Catalog) Items() []prompt.CatalogItem {
	items := make([]prompt.CatalogItem, len(c.courses))
	for i, course := range c.courses {
		items[i] = prompt.CatalogItem{ID: course.ID, Title: course.Title}
	}
	return items
}

func isAll(category string) bool {
	category = strings.TrimSpace(category)
	return category == "" || strings.EqualFold(category, AllCategories)
}

// containsFold reports whether any field contains the lower-cased needle.
func containsFold(needle string, fields ...string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}
