package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

type Config struct {
	DatabaseURL string
	ServerPort  string
	LogLevel    string

	// RankingMonth/RankingYear pin the team tier-list window. Zero means
	// "derive from the clock": the most recent complete calendar month.
	RankingMonth int
	RankingYear  int
}

func Load(logger zerolog.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg(".env file not found, using environment variables or defaults")
	}

	cfg := &Config{
		DatabaseURL:  getEnv("DATABASE_URL", ""),
		ServerPort:   getEnv("SERVER_PORT", "3000"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		RankingMonth: getEnvInt("RANKING_MONTH", 0),
		RankingYear:  getEnvInt("RANKING_YEAR", 0),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.RankingMonth < 0 || cfg.RankingMonth > 12 {
		return nil, fmt.Errorf("RANKING_MONTH must be 1-12, got %d", cfg.RankingMonth)
	}

	logger.Info().
		Str("server_port", cfg.ServerPort).
		Str("log_level", cfg.LogLevel).
		Int("ranking_month", cfg.RankingMonth).
		Int("ranking_year", cfg.RankingYear).
		Msg("configuration loaded")

	return cfg, nil
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

var Module = fx.Provide(Load)
