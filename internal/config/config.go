// Package config loads application settings from the environment and an
// optional .env file. Model settings live with the model facade in
// internal/llm and are loaded from the same environment.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/skillboost/skillboost/internal/history"
	"github.com/skillboost/skillboost/internal/llm"
	"github.com/skillboost/skillboost/internal/store"
)

const (
	BackendLocal    = "local"
	BackendSupabase = "supabase"
)

// Config holds the application configuration.
type Config struct {
	Env            string
	HTTPAddr       string
	AllowedOrigins []string

	Backend         string
	SupabaseURL     string
	SupabaseAnonKey string

	DBPath       string
	HistoryCache string
	UserMajor    string

	LLM llm.Config
}

var defaultOrigins = []string{"http://localhost:3000", "http://localhost:5173"}

// Load reads .env when present, then the environment.
func Load() (Config, error) {
	// A missing .env is normal; the environment alone is enough.
	_ = godotenv.Load()

	cfg := Config{
		Env:             getEnv("SKILLBOOST_ENV", "dev"),
		HTTPAddr:        getEnv("SKILLBOOST_HTTP_ADDR", ":8080"),
		AllowedOrigins:  splitList(getEnv("SKILLBOOST_ALLOWED_ORIGINS", strings.Join(defaultOrigins, ","))),
		Backend:         strings.ToLower(getEnv("SKILLBOOST_BACKEND", BackendLocal)),
		SupabaseURL:     os.Getenv("SKILLBOOST_SUPABASE_URL"),
		SupabaseAnonKey: os.Getenv("SKILLBOOST_SUPABASE_ANON_KEY"),
		UserMajor:       getEnv("SKILLBOOST_USER_MAJOR", "Electrical Engineering"),
		LLM:             llm.ConfigFromEnv(),
	}

	var err error
	if cfg.DBPath, err = store.DefaultDBPath(); err != nil {
		return Config{}, err
	}
	if cfg.HistoryCache, err = history.DefaultCachePath(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the backend selection. Model settings are validated when
// the facade is built.
func (c Config) Validate() error {
	switch c.Backend {
	case BackendLocal:
		if c.DBPath == "" {
			return fmt.Errorf("SKILLBOOST_DB must name a database file for the local backend")
		}
	case BackendSupabase:
		if c.SupabaseURL == "" || c.SupabaseAnonKey == "" {
			return fmt.Errorf("SKILLBOOST_SUPABASE_URL and SKILLBOOST_SUPABASE_ANON_KEY are required for the supabase backend")
		}
	default:
		return fmt.Errorf("unknown backend %q (want %s or %s)", c.Backend, BackendLocal, BackendSupabase)
	}
	return nil
}

// IsProduction reports whether the process runs in production mode.
func (c Config) IsProduction() bool {
	switch strings.ToLower(c.Env) {
	case "prod", "production":
		return true
	}
	return false
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
