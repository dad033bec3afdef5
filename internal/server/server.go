// Package server exposes the league store over REST. Handlers translate
// query and path parameters into service calls and map errors to the
// {error, message?, code?} body shape.
package server

import (
	"context"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"league-tracker/internal/domain"
)

type PlayerService interface {
	List(ctx context.Context) ([]domain.Player, error)
	Roster(ctx context.Context) ([]domain.RosterEntry, error)
	ListFiltered(ctx context.Context, f domain.PlayerFilter) ([]domain.FilteredPlayerRow, error)
	Detail(ctx context.Context, name string) (*domain.PlayerDetail, error)
	Create(ctx context.Context, in domain.PlayerCreate) (int64, error)
	Update(ctx context.Context, in domain.PlayerUpdate) error
	Delete(ctx context.Context, name string) error
}

type TeamService interface {
	List(ctx context.Context) ([]domain.Team, error)
	ListWithRegions(ctx context.Context) ([]domain.TeamRegionEntry, error)
	Create(ctx context.Context, in domain.TeamCreate) (int64, error)
	Update(ctx context.Context, in domain.TeamUpdate) error
	Delete(ctx context.Context, name string) error
}

type MatchService interface {
	TeamMatches(ctx context.Context, f domain.MatchFilter) ([]domain.TeamMatchRow, error)
}

type RankingService interface {
	TeamTierList(ctx context.Context, regionName string) ([]domain.TeamRankRow, error)
	AgentTierList(ctx context.Context, regionName string) ([]domain.AgentRankRow, error)
}

// Pinger is the liveness probe the health endpoint runs; *pgxpool.Pool
// satisfies it.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Server struct {
	players  PlayerService
	teams    TeamService
	matches  MatchService
	rankings RankingService
	db       Pinger
	logger   zerolog.Logger
}

func New(players PlayerService, teams TeamService, matches MatchService, rankings RankingService, db Pinger, logger zerolog.Logger) *Server {
	return &Server{
		players:  players,
		teams:    teams,
		matches:  matches,
		rankings: rankings,
		db:       db,
		logger:   logger,
	}
}

func (s *Server) RegisterRoutes(r chi.Router) {
	r.Get("/", s.handleRoot)
	r.Get("/health", s.handleHealth)

	r.Get("/players", s.handleListPlayers)
	r.Get("/players/filtered", s.handleFilteredPlayers)
	r.Get("/player/{name}", s.handlePlayerDetail)

	r.Get("/teams", s.handleListTeams)
	r.Get("/team/matches/filtered", s.handleTeamMatches)
	r.Get("/team/tierlist", s.handleTeamTierList)
	r.Get("/agents/tierlist", s.handleAgentTierList)

	r.Route("/admin", func(r chi.Router) {
		r.Get("/players", s.handleAdminListPlayers)
		r.Post("/players", s.handleCreatePlayer)
		r.Put("/players", s.handleUpdatePlayer)
		r.Delete("/players/{name}", s.handleDeletePlayer)

		r.Get("/teams", s.handleAdminListTeams)
		r.Post("/teams", s.handleCreateTeam)
		r.Put("/teams", s.handleUpdateTeam)
		r.Delete("/teams/{name}", s.handleDeleteTeam)
	})
}
