package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"league-tracker/internal/config"
	"league-tracker/internal/constants"
	"league-tracker/internal/domain"
	"league-tracker/internal/repository"
)

type RankingService struct {
	repo   *repository.RankingRepository
	cfg    *config.Config
	logger zerolog.Logger
}

func NewRankingService(repo *repository.RankingRepository, cfg *config.Config, logger zerolog.Logger) *RankingService {
	return &RankingService{repo: repo, cfg: cfg, logger: logger}
}

func (s *RankingService) TeamTierList(ctx context.Context, regionName string) ([]domain.TeamRankRow, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	window := ResolveWindow(s.cfg.RankingMonth, s.cfg.RankingYear, time.Now())
	s.logger.Info().Str("region", regionName).Int("month", window.Month).Int("year", window.Year).Msg("team tier list")

	return s.repo.TeamTierList(ctx, regionName, window)
}

func (s *RankingService) AgentTierList(ctx context.Context, regionName string) ([]domain.AgentRankRow, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	s.logger.Info().Str("region", regionName).Msg("agent tier list")

	return s.repo.AgentTierList(ctx, regionName)
}

// ResolveWindow picks the calendar month a team tier list aggregates over.
// Configured values win; anything unset falls back to the most recent
// complete month relative to now. The ingest pipeline is not continuously
// running, so an operator can pin the window to the last loaded month.
func ResolveWindow(month, year int, now time.Time) domain.RankingWindow {
	lastOfPrev := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, 0, -1)

	w := domain.RankingWindow{
		Month: int(lastOfPrev.Month()),
		Year:  lastOfPrev.Year(),
	}
	if month != 0 {
		w.Month = month
		// a pinned month without a year means the current year
		w.Year = now.Year()
	}
	if year != 0 {
		w.Year = year
	}
	return w
}
