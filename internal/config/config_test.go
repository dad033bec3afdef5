package config

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	_, err := Load(zerolog.Nop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://app@localhost:5432/league")
	t.Setenv("SERVER_PORT", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("RANKING_MONTH", "")
	t.Setenv("RANKING_YEAR", "")

	cfg, err := Load(zerolog.Nop())
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.ServerPort)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Zero(t, cfg.RankingMonth)
	assert.Zero(t, cfg.RankingYear)
}

func TestLoadRankingWindow(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://app@localhost:5432/league")
	t.Setenv("RANKING_MONTH", "1")
	t.Setenv("RANKING_YEAR", "2025")

	cfg, err := Load(zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.RankingMonth)
	assert.Equal(t, 2025, cfg.RankingYear)
}

func TestLoadRejectsBadRankingMonth(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://app@localhost:5432/league")
	t.Setenv("RANKING_MONTH", "13")

	_, err := Load(zerolog.Nop())
	require.Error(t, err)
}

func TestGetEnvIntIgnoresGarbage(t *testing.T) {
	t.Setenv("RANKING_MONTH", "january")
	assert.Equal(t, 0, getEnvInt("RANKING_MONTH", 0))
}
