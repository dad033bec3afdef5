package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"league-tracker/internal/domain"
	"league-tracker/internal/sqlbuilder"
)

type MatchRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

func NewMatchRepository(pool *pgxpool.Pool, logger zerolog.Logger) *MatchRepository {
	return &MatchRepository{pool: pool, logger: logger}
}

// ListForTeam resolves the team name, then runs one query composed from the
// active filters. The team id itself is bound once and referenced from the
// CASE expression, the participation predicate and the win filter.
func (r *MatchRepository) ListForTeam(ctx context.Context, f domain.MatchFilter) ([]domain.TeamMatchRow, error) {
	teamID, err := ResolveTeam(ctx, r.pool, f.TeamName)
	if err != nil {
		return nil, err
	}

	query, args := buildTeamMatchesQuery(teamID, f)
	r.logger.Debug().Str("query", query).Int("args", len(args)).Msg("team matches query composed")

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("team matches: %w", err)
	}
	defer rows.Close()

	matches := make([]domain.TeamMatchRow, 0)
	for rows.Next() {
		var m domain.TeamMatchRow
		if err := rows.Scan(&m.HomeTeam, &m.AwayTeam, &m.Date, &m.Result); err != nil {
			return nil, fmt.Errorf("scan match: %w", err)
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

func buildTeamMatchesQuery(teamID int64, f domain.MatchFilter) (string, []any) {
	qb := sqlbuilder.New()
	tp := qb.Bind(teamID)

	qb.Select(fmt.Sprintf(`t1.team_name AS home_team, t2.team_name AS away_team, TO_CHAR(m.date_played, 'DD Mon YYYY') AS date, `+
		`CASE WHEN m.t1_won IS NULL THEN 'Not Played' `+
		`WHEN m.t1_won AND m.team1_id = %[1]s THEN 'WIN' `+
		`WHEN NOT m.t1_won AND m.team2_id = %[1]s THEN 'WIN' `+
		`ELSE 'Loss' END AS result`, tp))
	qb.From(`matches m JOIN teams t1 ON (m.team1_id = t1.team_id) JOIN teams t2 ON (m.team2_id = t2.team_id)`)
	qb.Where(fmt.Sprintf("(m.team1_id = %[1]s OR m.team2_id = %[1]s)", tp))

	if f.StartDate != "" {
		qb.Where("m.date_played >= ?", f.StartDate)
	}
	if f.EndDate != "" {
		qb.Where("m.date_played <= ?", f.EndDate)
	}

	// "International" keeps matches against another region; any other concrete
	// region value means local play, where both sides share a region.
	if !allFilter(f.RegionMode) {
		if f.RegionMode == "International" {
			qb.Where("(t1.region_id != t2.region_id)")
		} else {
			qb.Where("(t1.region_id = t2.region_id)")
		}
	}

	if f.WinsOnly {
		qb.Where(fmt.Sprintf("m.t1_won IS NOT NULL AND ((m.t1_won = true AND m.team1_id = %[1]s) OR (m.t1_won = false AND m.team2_id = %[1]s))", tp))
	}

	qb.OrderBy("m.date_played DESC")
	return qb.Build()
}
