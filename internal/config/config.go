package config

import (
	"os"
	"strconv"
	"strings"

	"locparse/internal/locfile"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// DefaultExclude skips build output and dependency folders.
var DefaultExclude = []string{"**/bin/**", "**/obj/**", "**/node_modules/**"}

type Config struct {
	DatabaseURL               string
	WorkerCount               int
	BatchSize                 int
	NewlineNormalization      locfile.NewlineKind
	IgnoreMissingResxComments bool
	Exclude                   []string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, using environment variables")
	}

	newline, err := locfile.ParseNewlineKind(getEnv("LOCPARSE_NEWLINE", "none"))
	if err != nil {
		log.Warn().Err(err).Msg("Invalid LOCPARSE_NEWLINE, leaving newlines untouched")
		newline = locfile.NewlineNone
	}

	return &Config{
		DatabaseURL:               getEnv("DATABASE_URL", "postgres://localhost:5432/locparse?sslmode=disable"),
		WorkerCount:               getEnvInt("LOCPARSE_WORKER_COUNT", 8),
		BatchSize:                 getEnvInt("LOCPARSE_BATCH_SIZE", 200),
		NewlineNormalization:      newline,
		IgnoreMissingResxComments: getEnvBool("LOCPARSE_IGNORE_MISSING_RESX_COMMENTS", false),
		Exclude:                   getEnvList("LOCPARSE_EXCLUDE", DefaultExclude),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func getEnvList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
