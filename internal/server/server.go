// Package server exposes the SkillBoost flows over HTTP for the web client.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/skillboost/skillboost/internal/backend"
	"github.com/skillboost/skillboost/internal/catalog"
	"github.com/skillboost/skillboost/internal/history"
	"github.com/skillboost/skillboost/internal/llm"
	"github.com/skillboost/skillboost/internal/logger"
	"github.com/skillboost/skillboost/internal/quiz"
	"github.com/skillboost/skillboost/internal/recovery"
	"github.com/skillboost/skillboost/internal/videos"
)

// Deps are the services the handlers call. Every field is required.
type Deps struct {
	Facade      llm.Provider
	Quizzes     *quiz.Generator
	Results     *quiz.Service
	Recovery    *recovery.Generator
	Recommender *catalog.Recommender
	Catalog     *catalog.Catalog
	Finder      *videos.Finder
	Analyzer    *videos.Analyzer
	History     *history.Service
	Backend     backend.Backend
	Log         *logger.Logger
}

// Options configure the HTTP surface.
type Options struct {
	Addr           string
	AllowedOrigins []string
	Production     bool
}

type Server struct {
	deps   Deps
	log    *logger.Logger
	engine *gin.Engine
	addr   string
}

// New builds the server and its routes.
func New(deps Deps, opts Options) *Server {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}
	if opts.Production {
		gin.SetMode(gin.ReleaseMode)
	}
	s := &Server{deps: deps, log: log.With("component", "http"), addr: opts.Addr}
	s.engine = s.routes(opts.AllowedOrigins)
	return s
}

// Handler returns the routed engine.
func (s *Server) Handler() http.Handler { return s.engine }

func (s *Server) routes(origins []string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger(s.log))
	r.Use(CORS(origins))
	r.Use(Authenticate(s.deps.Backend, s.log))

	r.GET("/healthcheck", s.healthCheck)

	api := r.Group("/api")
	{
		api.POST("/generate", s.generate)

		api.POST("/quiz", s.createQuiz)
		api.POST("/quiz/results", RequireUser(), s.saveQuizResult)
		api.GET("/leaderboard", s.leaderboard)

		api.POST("/recovery", s.recoveryPath)
		api.POST("/recommendations", s.recommend)
		api.POST("/videos/deep-dive", s.deepDive)
		api.POST("/lectures/analyze", s.analyzeLecture)

		api.GET("/courses", s.listCourses)
		api.GET("/courses/:id", s.getCourse)
		api.GET("/tutorials", s.listTutorials)
		api.GET("/mentors", s.listMentors)

		api.GET("/history", s.listHistory)
		api.POST("/history", s.recordHistory)
		api.DELETE("/history/:id", RequireUser(), s.deleteHistory)
	}
	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("http server listening", "addr", s.addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.log.Info("http server shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) healthCheck(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}
