package service

import (
	"context"

	"github.com/rs/zerolog"

	"league-tracker/internal/constants"
	"league-tracker/internal/domain"
	"league-tracker/internal/repository"
)

type MatchService struct {
	repo   *repository.MatchRepository
	logger zerolog.Logger
}

func NewMatchService(repo *repository.MatchRepository, logger zerolog.Logger) *MatchService {
	return &MatchService{repo: repo, logger: logger}
}

func (s *MatchService) TeamMatches(ctx context.Context, f domain.MatchFilter) ([]domain.TeamMatchRow, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	s.logger.Info().
		Str("team", f.TeamName).
		Str("region_mode", f.RegionMode).
		Bool("wins_only", f.WinsOnly).
		Msg("listing team matches")

	return s.repo.ListForTeam(ctx, f)
}
