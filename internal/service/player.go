package service

import (
	"context"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"league-tracker/internal/constants"
	"league-tracker/internal/domain"
	"league-tracker/internal/repository"
)

type PlayerService struct {
	repo   *repository.PlayerRepository
	logger zerolog.Logger
}

func NewPlayerService(repo *repository.PlayerRepository, logger zerolog.Logger) *PlayerService {
	return &PlayerService{repo: repo, logger: logger}
}

func (s *PlayerService) List(ctx context.Context) ([]domain.Player, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	return s.repo.List(ctx)
}

func (s *PlayerService) Roster(ctx context.Context) ([]domain.RosterEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	return s.repo.ListWithTeams(ctx)
}

func (s *PlayerService) ListFiltered(ctx context.Context, f domain.PlayerFilter) ([]domain.FilteredPlayerRow, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	s.logger.Info().
		Str("region", f.RegionName).
		Str("agent", f.AgentName).
		Str("timespan", f.Timespan).
		Msg("listing filtered players")

	return s.repo.ListFiltered(ctx, f)
}

// Detail resolves the player first, then fetches the all-time and 90-day stat
// lines concurrently. A player with no recorded matches gets empty stats, not
// an error.
func (s *PlayerService) Detail(ctx context.Context, name string) (*domain.PlayerDetail, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	player, err := s.repo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}

	var allTime, recent []domain.AgentStatLine
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		allTime, err = s.repo.StatLines(gctx, player.PlayerID, "All")
		return err
	})
	g.Go(func() error {
		var err error
		recent, err = s.repo.StatLines(gctx, player.PlayerID, "90_Days")
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &domain.PlayerDetail{
		PlayerID:    player.PlayerID,
		PlayerName:  player.PlayerName,
		Stats:       allTime,
		Stats90Days: recent,
	}, nil
}

func (s *PlayerService) Create(ctx context.Context, in domain.PlayerCreate) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	return s.repo.Create(ctx, in)
}

func (s *PlayerService) Update(ctx context.Context, in domain.PlayerUpdate) error {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	return s.repo.Update(ctx, in)
}

func (s *PlayerService) Delete(ctx context.Context, name string) error {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	return s.repo.Delete(ctx, name)
}
