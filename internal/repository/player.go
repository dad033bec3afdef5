package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"league-tracker/internal/domain"
	"league-tracker/internal/sqlbuilder"
)

type PlayerRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

func NewPlayerRepository(pool *pgxpool.Pool, logger zerolog.Logger) *PlayerRepository {
	return &PlayerRepository{pool: pool, logger: logger}
}

func (r *PlayerRepository) List(ctx context.Context) ([]domain.Player, error) {
	rows, err := r.pool.Query(ctx, `SELECT player_id, player_name FROM players`)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	defer rows.Close()

	players := make([]domain.Player, 0)
	for rows.Next() {
		var p domain.Player
		if err := rows.Scan(&p.PlayerID, &p.PlayerName); err != nil {
			return nil, fmt.Errorf("scan player: %w", err)
		}
		players = append(players, p)
	}
	return players, rows.Err()
}

// ListWithTeams returns every rostered player with their team, ordered by
// team name, for the admin player manager.
func (r *PlayerRepository) ListWithTeams(ctx context.Context) ([]domain.RosterEntry, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT player_name, team_name FROM players JOIN roster USING (player_id) JOIN teams USING (team_id) ORDER BY team_name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list roster: %w", err)
	}
	defer rows.Close()

	entries := make([]domain.RosterEntry, 0)
	for rows.Next() {
		var e domain.RosterEntry
		if err := rows.Scan(&e.PlayerName, &e.TeamName); err != nil {
			return nil, fmt.Errorf("scan roster entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *PlayerRepository) GetByName(ctx context.Context, name string) (*domain.Player, error) {
	id, err := ResolvePlayer(ctx, r.pool, name)
	if err != nil {
		return nil, err
	}
	return &domain.Player{PlayerID: id, PlayerName: name}, nil
}

// StatLines returns the per-agent rows for one player from the stats table
// the timespan selects, most-played agent first.
func (r *PlayerRepository) StatLines(ctx context.Context, playerID int64, timespan string) ([]domain.AgentStatLine, error) {
	query := fmt.Sprintf(
		`SELECT agent_name, rounds, r2, use_pct, acs, kd_ratio, adr, kast_pct, kpr, fkpr, kills, deaths, assists, fk, fd
		 FROM %s JOIN agents USING (agent_id) WHERE player_id = $1 ORDER BY rounds DESC`, statsTable(timespan))

	rows, err := r.pool.Query(ctx, query, playerID)
	if err != nil {
		return nil, fmt.Errorf("player stat lines: %w", err)
	}
	defer rows.Close()

	lines := make([]domain.AgentStatLine, 0)
	for rows.Next() {
		var l domain.AgentStatLine
		if err := rows.Scan(&l.AgentName, &l.Rounds, &l.R2, &l.UsePct, &l.ACS, &l.KDRatio, &l.ADR,
			&l.KastPct, &l.KPR, &l.FKPR, &l.Kills, &l.Deaths, &l.Assists, &l.FK, &l.FD); err != nil {
			return nil, fmt.Errorf("scan stat line: %w", err)
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

// ListFiltered resolves the optional region and agent names, then runs one
// composed query. Resolution failures return NotFound before any aggregate
// query executes.
func (r *PlayerRepository) ListFiltered(ctx context.Context, f domain.PlayerFilter) ([]domain.FilteredPlayerRow, error) {
	var regionID, agentID *int64

	if !allFilter(f.RegionName) {
		id, err := ResolveRegion(ctx, r.pool, f.RegionName)
		if err != nil {
			return nil, err
		}
		regionID = &id
	}
	if !allFilter(f.AgentName) {
		id, err := ResolveAgent(ctx, r.pool, f.AgentName)
		if err != nil {
			return nil, err
		}
		agentID = &id
	}

	query, args := buildFilteredPlayersQuery(regionID, agentID, f.Timespan)
	r.logger.Debug().Str("query", query).Int("args", len(args)).Msg("filtered players query composed")

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("filtered players: %w", err)
	}
	defer rows.Close()

	result := make([]domain.FilteredPlayerRow, 0)
	for rows.Next() {
		var row domain.FilteredPlayerRow
		if err := rows.Scan(&row.Player, &row.Team, &row.R2, &row.ACS, &row.KD); err != nil {
			return nil, fmt.Errorf("scan filtered player: %w", err)
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

// buildFilteredPlayersQuery composes the filtered player listing. With no
// agent filter the rows are grouped per player/team and the metrics averaged;
// with an agent filter the raw per-agent rows come back unaveraged. Ordering
// is ACS descending in both shapes; ties keep store order.
func buildFilteredPlayersQuery(regionID, agentID *int64, timespan string) (string, []any) {
	qb := sqlbuilder.New()
	qb.From(statsTable(timespan) + ` JOIN roster USING (player_id) JOIN teams USING (team_id) JOIN players USING (player_id)`)

	if regionID != nil {
		qb.Where("region_id = ?", *regionID)
	}
	if agentID != nil {
		qb.Select(`player_name AS player, team_name AS team, r2 AS "R2.0", acs, kd_ratio AS kd`)
		qb.Where("agent_id = ?", *agentID)
	} else {
		qb.Select(`player_name AS player, team_name AS team, ROUND(AVG(r2), 2) AS "R2.0", ROUND(AVG(acs), 2) AS acs, ROUND(AVG(kd_ratio), 2) AS kd`)
		qb.GroupBy("player_name, team_name")
	}
	qb.OrderBy("acs DESC")
	return qb.Build()
}

// Create inserts a player and its roster membership as one transaction.
func (r *PlayerRepository) Create(ctx context.Context, in domain.PlayerCreate) (int64, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return 0, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	tx, err := conn.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	teamID, err := ResolveTeam(ctx, tx, in.TeamName)
	if err != nil {
		return 0, err
	}

	var playerID int64
	if err := tx.QueryRow(ctx,
		`INSERT INTO players (player_name) VALUES ($1) RETURNING player_id`, in.PlayerIGN).Scan(&playerID); err != nil {
		return 0, fmt.Errorf("insert player: %w", err)
	}

	if _, err := tx.Exec(ctx,
		`INSERT INTO roster (player_id, team_id) VALUES ($1, $2)`, playerID, teamID); err != nil {
		return 0, fmt.Errorf("insert roster: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}

	r.logger.Info().Int64("player_id", playerID).Str("team", in.TeamName).Msg("player created")
	return playerID, nil
}

// Update changes the player name and/or roster membership. A field is only
// touched when its new value is present and differs from the current one.
func (r *PlayerRepository) Update(ctx context.Context, in domain.PlayerUpdate) error {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	tx, err := conn.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	playerID, err := ResolvePlayer(ctx, tx, in.CurrIGN)
	if err != nil {
		return err
	}

	if in.NewIGN != "" && in.NewIGN != in.CurrIGN {
		if _, err := tx.Exec(ctx,
			`UPDATE players SET player_name = $1 WHERE player_id = $2`, in.NewIGN, playerID); err != nil {
			return fmt.Errorf("update player name: %w", err)
		}
	}

	if in.NewTeamName != "" {
		teamID, err := ResolveTeam(ctx, tx, in.NewTeamName)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx,
			`UPDATE roster SET team_id = $1 WHERE player_id = $2`, teamID, playerID); err != nil {
			return fmt.Errorf("update roster: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	r.logger.Info().Str("player", in.CurrIGN).Msg("player updated")
	return nil
}

// Delete removes a player and every dependent row. Roster membership and both
// stats tables are cleared before the player row itself so no orphaned stat
// rows can survive; the whole sequence commits or rolls back as one unit.
func (r *PlayerRepository) Delete(ctx context.Context, name string) error {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	tx, err := conn.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	playerID, err := ResolvePlayer(ctx, tx, name)
	if err != nil {
		return err
	}

	for _, stmt := range []string{
		`DELETE FROM roster WHERE player_id = $1`,
		`DELETE FROM player_agent_stats WHERE player_id = $1`,
		`DELETE FROM player_agent_stats_90days WHERE player_id = $1`,
	} {
		if _, err := tx.Exec(ctx, stmt, playerID); err != nil {
			return fmt.Errorf("delete player dependents: %w", err)
		}
	}

	tag, err := tx.Exec(ctx, `DELETE FROM players WHERE player_id = $1`, playerID)
	if err != nil {
		return fmt.Errorf("delete player: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NewNotFound("player", name)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	r.logger.Info().Str("player", name).Msg("player deleted")
	return nil
}
