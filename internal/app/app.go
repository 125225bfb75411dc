// Package app wires configuration, storage, the model facade and the
// SkillBoost services into one object shared by the CLI and the HTTP server.
package app

import (
	"context"
	"fmt"

	"github.com/skillboost/skillboost/internal/backend"
	"github.com/skillboost/skillboost/internal/backend/supabase"
	"github.com/skillboost/skillboost/internal/catalog"
	"github.com/skillboost/skillboost/internal/config"
	"github.com/skillboost/skillboost/internal/history"
	"github.com/skillboost/skillboost/internal/llm"
	"github.com/skillboost/skillboost/internal/logger"
	"github.com/skillboost/skillboost/internal/quiz"
	"github.com/skillboost/skillboost/internal/recovery"
	"github.com/skillboost/skillboost/internal/server"
	"github.com/skillboost/skillboost/internal/store"
	"github.com/skillboost/skillboost/internal/videos"
)

// Options configure New. Provider replaces the configured model facade
// when set.
type Options struct {
	Config   config.Config
	Log      *logger.Logger
	Provider llm.Provider
}

// App holds the wired services.
type App struct {
	Config  config.Config
	Log     *logger.Logger
	Store   *store.Store
	Backend backend.Backend
	Catalog *catalog.Catalog
	Facade  llm.Provider

	// LLMErr is why the configured facade could not be built. Generation
	// calls fail with it; the catalog and history keep working.
	LLMErr error

	Quizzes     *quiz.Generator
	Results     *quiz.Service
	Recovery    *recovery.Generator
	Recommender *catalog.Recommender
	Finder      *videos.Finder
	Analyzer    *videos.Analyzer
	History     *history.Service
}

// New opens the local store, selects the record backend and builds every
// service. The local store is always opened: it keeps the LLM request log
// even when records live in Supabase.
func New(ctx context.Context, opts Options) (*App, error) {
	cfg := opts.Config
	log := opts.Log
	if log == nil {
		log = logger.Nop()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if err := store.EnsureDir(cfg.DBPath); err != nil {
		return nil, fmt.Errorf("prepare database dir: %w", err)
	}
	st, err := store.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	a := &App{Config: cfg, Log: log, Store: st}
	if err := a.init(ctx, opts.Provider); err != nil {
		st.Close()
		return nil, err
	}
	return a, nil
}

func (a *App) init(ctx context.Context, provider llm.Provider) error {
	cfg := a.Config

	switch cfg.Backend {
	case config.BackendSupabase:
		client, err := supabase.New(cfg.SupabaseURL, cfg.SupabaseAnonKey, a.Log)
		if err != nil {
			return fmt.Errorf("supabase backend: %w", err)
		}
		a.Backend = client
	default:
		a.Backend = a.Store
		if err := seedCourses(ctx, a.Store, a.Log); err != nil {
			return err
		}
	}

	cat, err := catalog.Load(ctx, a.Backend, a.Log)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	a.Catalog = cat

	if provider == nil {
		provider, err = llm.NewFacade(ctx, cfg.LLM, a.Store.EventRepo(), a.Log)
		if err != nil {
			a.Log.Warn("LLM provider not configured, AI features unavailable", "error", err)
			a.LLMErr = fmt.Errorf("LLM provider not configured: %w", err)
			provider = unconfigured{err: a.LLMErr}
		}
	}
	a.Facade = provider

	cache := history.NewLocalCache(cfg.HistoryCache)
	if err := cache.Load(); err != nil {
		a.Log.Warn("history cache unreadable, starting empty", "path", cfg.HistoryCache, "error", err)
	}

	a.Quizzes = quiz.NewGenerator(provider, a.Log)
	a.Results = quiz.NewService(a.Backend, cfg.UserMajor, a.Log)
	a.Recovery = recovery.NewGenerator(provider, a.Log)
	a.Recommender = catalog.NewRecommender(provider, cat, a.Log)
	a.Finder = videos.NewFinder(provider, a.Log)
	a.Analyzer = videos.NewAnalyzer(provider, a.Log)
	a.History = history.NewService(a.Backend, cache, a.Log)
	return nil
}

// seedCourses fills an empty local course table from the built-in catalog.
func seedCourses(ctx context.Context, st *store.Store, log *logger.Logger) error {
	existing, err := st.ListCourses(ctx)
	if err != nil {
		return fmt.Errorf("list courses: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}
	seed, err := catalog.Seed()
	if err != nil {
		return err
	}
	if err := st.ReplaceCourses(ctx, seed.BackendCourses()); err != nil {
		return fmt.Errorf("seed courses: %w", err)
	}
	log.Info("seeded course catalog", "courses", len(seed.Courses()))
	return nil
}

// Server builds the HTTP server over the app's services.
func (a *App) Server() *server.Server {
	return server.New(server.Deps{
		Facade:      a.Facade,
		Quizzes:     a.Quizzes,
		Results:     a.Results,
		Recovery:    a.Recovery,
		Recommender: a.Recommender,
		Catalog:     a.Catalog,
		Finder:      a.Finder,
		Analyzer:    a.Analyzer,
		History:     a.History,
		Backend:     a.Backend,
		Log:         a.Log,
	}, server.Options{
		Addr:           a.Config.HTTPAddr,
		AllowedOrigins: a.Config.AllowedOrigins,
		Production:     a.Config.IsProduction(),
	})
}

// unconfigured stands in for the facade when no model can be built.
type unconfigured struct{ err error }

func (u unconfigured) Generate(context.Context, llm.Request) (*llm.Response, error) {
	return nil, u.err
}

func (u unconfigured) ModelID() string { return "unconfigured" }

func (a *App) Close() error {
	return a.Store.Close()
}
