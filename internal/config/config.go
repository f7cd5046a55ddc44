package config

import (
	"os"
	"strings"
	"time"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type Config struct {
	Mode     Mode
	HTTPAddr string
	LogLevel string

	CORSOriginsOnline  []string
	CORSOriginsOffline []string

	// Semantic coverage (sentence embeddings). Off by default.
	EnableSemantic  bool
	EmbeddingURL    string
	EmbeddingModel  string
	EmbeddingAPIKey string

	LanguageToolURL      string
	LanguageToolLanguage string

	NLPTimeout     time.Duration
	RequestTimeout time.Duration

	RubricDir string
}

// CORSOrigins returns the allowed origins for the current mode.
func (c Config) CORSOrigins() []string {
	if c.Mode == ModeOnline {
		return c.CORSOriginsOnline
	}
	return c.CORSOriginsOffline
}

func FromEnv() Config {
	mode := Mode(os.Getenv("MODE"))
	if mode == "" {
		mode = ModeOffline
	}
	return Config{
		Mode:               mode,
		HTTPAddr:           envOr("HTTP_ADDR", ":8080"),
		LogLevel:           envOr("LOG_LEVEL", "info"),
		CORSOriginsOnline:  csvOr("CORS_ORIGINS", "https://introscore.mindengage.ai"),
		CORSOriginsOffline: csvOr("CORS_ORIGINS_OFFLINE", "http://localhost:3000,http://localhost:5173"),

		EnableSemantic:  envBool("ENABLE_SEMANTIC", false),
		EmbeddingURL:    os.Getenv("EMBEDDING_URL"),
		EmbeddingModel:  envOr("EMBEDDING_MODEL", "sentence-transformers/all-MiniLM-L6-v2"),
		EmbeddingAPIKey: os.Getenv("EMBEDDING_API_KEY"),

		LanguageToolURL:      envOr("LANGUAGETOOL_URL", "http://localhost:8081"),
		LanguageToolLanguage: envOr("LANGUAGETOOL_LANGUAGE", "en-US"),

		NLPTimeout:     envDuration("NLP_TIMEOUT", 10*time.Second),
		RequestTimeout: envDuration("REQUEST_TIMEOUT", 30*time.Second),

		RubricDir: envOr("RUBRIC_DIR", "./rubric_samples"),
	}
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}
func envBool(k string, def bool) bool {
	switch os.Getenv(k) {
	case "1", "true", "TRUE", "yes", "YES":
		return true
	case "0", "false", "FALSE", "no", "NO":
		return false
	default:
		return def
	}
}
func envDuration(k string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(os.Getenv(k))
	if err != nil || d <= 0 {
		return def
	}
	return d
}
func csvOr(k, def string) []string {
	v := envOr(k, def)
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
