package fx

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"

	"league-tracker/internal/config"
	"league-tracker/internal/database"
	"league-tracker/internal/logger"
	"league-tracker/internal/metrics"
	"league-tracker/internal/repository"
	"league-tracker/internal/server"
	"league-tracker/internal/service"
)

var Module = fx.Options(
	fx.Provide(logger.New),
	fx.Provide(config.Load),
	fx.Provide(database.New),
	// repos
	fx.Provide(repository.NewPlayerRepository),
	fx.Provide(repository.NewTeamRepository),
	fx.Provide(repository.NewMatchRepository),
	fx.Provide(repository.NewRankingRepository),
	// svc
	fx.Provide(service.NewPlayerService),
	fx.Provide(service.NewTeamService),
	fx.Provide(service.NewMatchService),
	fx.Provide(service.NewRankingService),
	// the server depends on interfaces so handlers stay testable
	fx.Provide(func(s *service.PlayerService) server.PlayerService { return s }),
	fx.Provide(func(s *service.TeamService) server.TeamService { return s }),
	fx.Provide(func(s *service.MatchService) server.MatchService { return s }),
	fx.Provide(func(s *service.RankingService) server.RankingService { return s }),
	fx.Provide(func(p *pgxpool.Pool) server.Pinger { return p }),
	// metrics + server
	fx.Provide(metrics.New),
	fx.Provide(server.New),
)
