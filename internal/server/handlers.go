package server

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/skillboost/skillboost/internal/catalog"
	"github.com/skillboost/skillboost/internal/consumer"
	"github.com/skillboost/skillboost/internal/history"
	"github.com/skillboost/skillboost/internal/llm"
	"github.com/skillboost/skillboost/internal/normalize"
	"github.com/skillboost/skillboost/internal/prompt"
	"github.com/skillboost/skillboost/internal/quiz"
	"github.com/skillboost/skillboost/internal/recovery"
	"github.com/skillboost/skillboost/internal/videos"
)

const defaultHistoryLimit = 5

// generateRequest mirrors the Gemini generateContent body the web client
// already sends. contents is either a string or a Gemini contents array.
type generateRequest struct {
	Model    string          `json:"model"`
	Contents json.RawMessage `json:"contents"`
	Config   struct {
		ResponseSchema map[string]any   `json:"responseSchema"`
		Tools          []map[string]any `json:"tools"`
	} `json:"config"`
}

type geminiContent struct {
	Role  string `json:"role"`
	Parts []struct {
		Text string `json:"text"`
	} `json:"parts"`
}

func (s *Server) generate(c *gin.Context) {
	var body generateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	contents := flattenContents(body.Contents)
	if strings.TrimSpace(contents) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No content provided"})
		return
	}

	var shape *llm.Schema
	if len(body.Config.ResponseSchema) > 0 {
		shape = proxySchema(body.Config.ResponseSchema)
	}
	var tools []llm.Tool
	for _, t := range body.Config.Tools {
		if _, ok := t["googleSearch"]; ok {
			tools = append(tools, llm.ToolWebSearch)
		}
	}

	req, err := prompt.Raw(contents, shape, tools...)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No content provided"})
		return
	}

	ctx := llm.WithPurpose(c.Request.Context(), req.Purpose())
	resp, err := s.deps.Facade.Generate(ctx, req.LLM())
	if err != nil {
		f := consumer.Classify(err)
		s.log.Warn("generate proxy failed", "requested_model", body.Model, "error", err)
		c.JSON(statusFor(f), gin.H{"error": f.Message()})
		return
	}
	s.log.Debug("generate proxy served", "requested_model", body.Model, "model", resp.Model)
	c.JSON(http.StatusOK, gin.H{"text": resp.Text()})
}

// flattenContents accepts a plain string or a Gemini contents array and
// joins every text part.
func flattenContents(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return text
	}
	var one geminiContent
	if err := json.Unmarshal(raw, &one); err == nil && len(one.Parts) > 0 {
		return joinParts([]geminiContent{one})
	}
	var many []geminiContent
	if err := json.Unmarshal(raw, &many); err == nil {
		return joinParts(many)
	}
	return ""
}

func joinParts(contents []geminiContent) string {
	var parts []string
	for _, c := range contents {
		for _, p := range c.Parts {
			if p.Text != "" {
				parts = append(parts, p.Text)
			}
		}
	}
	return strings.Join(parts, "\n")
}

// proxySchema names a client schema by its content so the validator cache
// never confuses two different shapes. Gemini type names are lower-cased
// for providers that expect JSON Schema.
func proxySchema(def map[string]any) *llm.Schema {
	def = lowerTypes(def)
	b, _ := json.Marshal(def)
	sum := sha256.Sum256(b)
	return &llm.Schema{Name: "proxy-" + hex.EncodeToString(sum[:8]), Definition: def}
}

func lowerTypes(def map[string]any) map[string]any {
	out := make(map[string]any, len(def))
	for k, v := range def {
		switch val := v.(type) {
		case string:
			if k == "type" {
				val = strings.ToLower(val)
			}
			out[k] = val
		case map[string]any:
			if k == "properties" {
				props := make(map[string]any, len(val))
				for name, p := range val {
					if pm, ok := p.(map[string]any); ok {
						props[name] = lowerTypes(pm)
					} else {
						props[name] = p
					}
				}
				out[k] = props
			} else {
				out[k] = lowerTypes(val)
			}
		default:
			out[k] = v
		}
	}
	return out
}

type topicRequest struct {
	Topic string `json:"topic"`
}

type quizPayload struct {
	Topic     string          `json:"topic"`
	Questions []quiz.Question `json:"questions"`
	Dropped   int             `json:"dropped"`
}

func (s *Server) createQuiz(c *gin.Context) {
	var body topicRequest
	_ = c.ShouldBindJSON(&body)

	questions, outcome, err := s.deps.Quizzes.Generate(c.Request.Context(), body.Topic)
	payload := quizPayload{Topic: strings.TrimSpace(body.Topic), Questions: questions, Dropped: outcome.Dropped}
	if payload.Questions == nil {
		payload.Questions = []quiz.Question{}
	}
	respondView(c, s, payload, err, quizPayload{Topic: payload.Topic, Questions: []quiz.Question{}})
}

type quizResultRequest struct {
	Topic     string          `json:"topic"`
	Questions []quiz.Question `json:"questions"`
	Answers   []int           `json:"answers"`
	Score     *int            `json:"score"`
	Total     int             `json:"total"`
	Major     string          `json:"major"`
}

// saveQuizResult scores the submitted answers when the questions are sent
// along, otherwise it trusts score and total.
func (s *Server) saveQuizResult(c *gin.Context) {
	var body quizResultRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		abortError(c, http.StatusBadRequest, "invalid_input", "invalid request body")
		return
	}
	user := currentUser(c)

	r := quiz.Result{Username: user.DisplayName(), Topic: body.Topic, Major: body.Major}
	switch {
	case len(body.Questions) > 0:
		r.Score = quiz.Score(body.Questions, body.Answers)
		r.Total = len(body.Questions)
	case body.Score != nil:
		r.Score = *body.Score
		r.Total = body.Total
	}

	if err := s.deps.Results.SaveResult(c.Request.Context(), r); err != nil {
		respondStoreError(c, s, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"score":  r.Score,
		"total":  r.Total,
		"points": r.Score * quiz.PointsPerCorrect,
	})
}

func (s *Server) leaderboard(c *gin.Context) {
	limit := queryInt(c, "limit", quiz.DefaultLeaderboardSize)
	c.JSON(http.StatusOK, gin.H{"entries": s.deps.Results.Leaderboard(c.Request.Context(), limit)})
}

type goalRequest struct {
	Goal string `json:"goal"`
}

type stepView struct {
	recovery.Step
	Link string `json:"link"`
}

type pathPayload struct {
	Goal    string     `json:"goal"`
	Concept string     `json:"concept,omitempty"`
	Steps   []stepView `json:"steps"`
}

func (s *Server) recoveryPath(c *gin.Context) {
	var body goalRequest
	_ = c.ShouldBindJSON(&body)

	path, err := s.deps.Recovery.Generate(c.Request.Context(), body.Goal)
	payload := pathPayload{Goal: strings.TrimSpace(body.Goal), Concept: path.Concept, Steps: []stepView{}}
	for _, st := range path.Steps {
		payload.Steps = append(payload.Steps, stepView{Step: st, Link: st.Link()})
	}
	respondView(c, s, payload, err, pathPayload{Goal: payload.Goal, Steps: []stepView{}})
}

type recommendationView struct {
	Course   catalog.Course        `json:"course"`
	Reason   string                `json:"reason"`
	DeepDive *videos.DeepDive      `json:"deepDive,omitempty"`
	Virtual  *videos.VirtualCourse `json:"virtualCourse,omitempty"`
}

type recommendPayload struct {
	Goal            string               `json:"goal"`
	Recommendations []recommendationView `json:"recommendations"`
}

// recommend matches the goal to catalog courses, then looks up a deep dive
// video for each match concurrently. The goal is recorded in the caller's
// search history.
func (s *Server) recommend(c *gin.Context) {
	var body goalRequest
	_ = c.ShouldBindJSON(&body)
	ctx := c.Request.Context()
	goal := strings.TrimSpace(body.Goal)

	recs, err := s.deps.Recommender.Recommend(ctx, goal)
	payload := recommendPayload{Goal: goal, Recommendations: []recommendationView{}}
	if err != nil {
		respondView(c, s, payload, err, payload)
		return
	}

	if _, herr := s.deps.History.Record(ctx, currentUser(c), goal); herr != nil {
		s.log.Warn("record search failed", "error", herr)
	}

	board := consumer.NewBoard[videos.DeepDive]()
	dives := videos.DeepDives(ctx, s.deps.Finder, s.deps.Catalog, recs, board, s.log)
	byCourse := make(map[string]videos.DeepDive, len(dives))
	for _, dd := range dives {
		byCourse[dd.CourseID] = dd
	}

	for _, rec := range recs {
		course, ok := s.deps.Catalog.Course(rec.CourseID)
		if !ok {
			continue
		}
		view := recommendationView{Course: course, Reason: rec.Reason}
		if dd, ok := byCourse[course.ID]; ok {
			view.DeepDive = &dd
			if vc, ok := videos.NewVirtualCourse(course, dd); ok {
				view.Virtual = &vc
			}
		}
		payload.Recommendations = append(payload.Recommendations, view)
	}
	respondView(c, s, payload, nil, payload)
}

type skillRequest struct {
	Skill string `json:"skill"`
}

func (s *Server) deepDive(c *gin.Context) {
	var body skillRequest
	_ = c.ShouldBindJSON(&body)
	skill := strings.TrimSpace(body.Skill)

	dd, err := s.deps.Finder.Find(c.Request.Context(), skill)
	respondView(c, s, dd, err, videos.DeepDive{
		Query:     skill,
		Title:     normalize.PlaceholderTitle(skill),
		URL:       normalize.YouTubeSearchURL(skill),
		Rationale: normalize.PlaceholderRationale,
	})
}

type lectureRequest struct {
	URL string `json:"url"`
}

type lecturePayload struct {
	Analysis videos.LectureAnalysis `json:"analysis"`
	Course   *videos.VirtualCourse  `json:"course,omitempty"`
}

func (s *Server) analyzeLecture(c *gin.Context) {
	var body lectureRequest
	_ = c.ShouldBindJSON(&body)

	a, err := s.deps.Analyzer.Analyze(c.Request.Context(), body.URL)
	payload := lecturePayload{Analysis: a}
	if err == nil {
		if vc, ok := videos.LectureCourse(a); ok {
			payload.Course = &vc
		}
	}
	respondView(c, s, payload, err, lecturePayload{Analysis: videos.LectureAnalysis{URL: strings.TrimSpace(body.URL)}})
}

func (s *Server) listCourses(c *gin.Context) {
	cat := s.deps.Catalog
	courses := cat.Filter(c.Query("category"))
	if q := strings.TrimSpace(c.Query("q")); q != "" {
		matched := make(map[string]bool)
		for _, m := range cat.Search(q) {
			matched[m.ID] = true
		}
		filtered := courses[:0:0]
		for _, course := range courses {
			if matched[course.ID] {
				filtered = append(filtered, course)
			}
		}
		courses = filtered
	}
	c.JSON(http.StatusOK, gin.H{"categories": catalog.Categories, "courses": courses})
}

func (s *Server) getCourse(c *gin.Context) {
	course, ok := s.deps.Catalog.Course(c.Param("id"))
	if !ok {
		abortError(c, http.StatusNotFound, "not_found", "course not found")
		return
	}
	c.JSON(http.StatusOK, course)
}

func (s *Server) listTutorials(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"tutorials": s.deps.Catalog.Tutorials(c.Query("category"))})
}

func (s *Server) listMentors(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"mentors": s.deps.Catalog.Mentors(c.Query("q"))})
}

func (s *Server) listHistory(c *gin.Context) {
	limit := queryInt(c, "limit", defaultHistoryLimit)
	entries := s.deps.History.Recent(c.Request.Context(), currentUser(c), limit)
	if entries == nil {
		entries = []history.Entry{}
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

type historyRequest struct {
	Query string `json:"query"`
}

func (s *Server) recordHistory(c *gin.Context) {
	var body historyRequest
	_ = c.ShouldBindJSON(&body)
	entry, err := s.deps.History.Record(c.Request.Context(), currentUser(c), body.Query)
	if err != nil {
		respondStoreError(c, s, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

func (s *Server) deleteHistory(c *gin.Context) {
	if err := s.deps.History.Delete(c.Request.Context(), currentUser(c), c.Param("id")); err != nil {
		respondStoreError(c, s, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func queryInt(c *gin.Context, key string, def int) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil || v <= 0 {
		return def
	}
	return v
}
