package service

import (
	"context"

	"github.com/rs/zerolog"

	"league-tracker/internal/constants"
	"league-tracker/internal/domain"
	"league-tracker/internal/repository"
)

type TeamService struct {
	repo   *repository.TeamRepository
	logger zerolog.Logger
}

func NewTeamService(repo *repository.TeamRepository, logger zerolog.Logger) *TeamService {
	return &TeamService{repo: repo, logger: logger}
}

func (s *TeamService) List(ctx context.Context) ([]domain.Team, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	return s.repo.List(ctx)
}

func (s *TeamService) ListWithRegions(ctx context.Context) ([]domain.TeamRegionEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	return s.repo.ListWithRegions(ctx)
}

func (s *TeamService) Create(ctx context.Context, in domain.TeamCreate) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	return s.repo.Create(ctx, in)
}

func (s *TeamService) Update(ctx context.Context, in domain.TeamUpdate) error {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	return s.repo.Update(ctx, in)
}

func (s *TeamService) Delete(ctx context.Context, name string) error {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	return s.repo.Delete(ctx, name)
}
