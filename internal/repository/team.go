package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"league-tracker/internal/domain"
)

type TeamRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

func NewTeamRepository(pool *pgxpool.Pool, logger zerolog.Logger) *TeamRepository {
	return &TeamRepository{pool: pool, logger: logger}
}

func (r *TeamRepository) List(ctx context.Context) ([]domain.Team, error) {
	rows, err := r.pool.Query(ctx, `SELECT team_id, team_name, region_id FROM teams`)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	defer rows.Close()

	teams := make([]domain.Team, 0)
	for rows.Next() {
		var t domain.Team
		if err := rows.Scan(&t.TeamID, &t.TeamName, &t.RegionID); err != nil {
			return nil, fmt.Errorf("scan team: %w", err)
		}
		teams = append(teams, t)
	}
	return teams, rows.Err()
}

// ListWithRegions returns every team with its region, for the admin team
// manager, ordered by region then team name.
func (r *TeamRepository) ListWithRegions(ctx context.Context) ([]domain.TeamRegionEntry, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT team_name, region_name FROM regions JOIN teams USING (region_id) ORDER BY region_name ASC, team_name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list teams with regions: %w", err)
	}
	defer rows.Close()

	entries := make([]domain.TeamRegionEntry, 0)
	for rows.Next() {
		var e domain.TeamRegionEntry
		if err := rows.Scan(&e.TeamName, &e.RegionName); err != nil {
			return nil, fmt.Errorf("scan team region entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *TeamRepository) Create(ctx context.Context, in domain.TeamCreate) (int64, error) {
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

	regionID, err := ResolveRegion(ctx, tx, in.RegionName)
	if err != nil {
		return 0, err
	}

	var teamID int64
	if err := tx.QueryRow(ctx,
		`INSERT INTO teams (team_name, region_id) VALUES ($1, $2) RETURNING team_id`, in.TeamName, regionID).Scan(&teamID); err != nil {
		return 0, fmt.Errorf("insert team: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}

	r.logger.Info().Int64("team_id", teamID).Str("region", in.RegionName).Msg("team created")
	return teamID, nil
}

func (r *TeamRepository) Update(ctx context.Context, in domain.TeamUpdate) error {
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

	teamID, err := ResolveTeam(ctx, tx, in.TeamName)
	if err != nil {
		return err
	}

	if in.NewTeamName != "" && in.NewTeamName != in.TeamName {
		if _, err := tx.Exec(ctx,
			`UPDATE teams SET team_name = $1 WHERE team_id = $2`, in.NewTeamName, teamID); err != nil {
			return fmt.Errorf("update team name: %w", err)
		}
	}

	if in.NewRegion != "" {
		regionID, err := ResolveRegion(ctx, tx, in.NewRegion)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx,
			`UPDATE teams SET region_id = $1 WHERE team_id = $2`, regionID, teamID); err != nil {
			return fmt.Errorf("update team region: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	r.logger.Info().Str("team", in.TeamName).Msg("team updated")
	return nil
}

// Delete removes a team while preserving its matches as history. Roster and
// match_stats rows go first, then any winner/loser reference is nulled, then
// the team row itself. Match rows are never deleted here.
func (r *TeamRepository) Delete(ctx context.Context, name string) error {
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

	teamID, err := ResolveTeam(ctx, tx, name)
	if err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `DELETE FROM roster WHERE team_id = $1`, teamID); err != nil {
		return fmt.Errorf("delete roster: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM match_stats WHERE team_id = $1`, teamID); err != nil {
		return fmt.Errorf("delete match stats: %w", err)
	}
	if _, err := tx.Exec(ctx,
		`UPDATE matches SET winner_team_id = NULL WHERE winner_team_id = $1`, teamID); err != nil {
		return fmt.Errorf("null winner refs: %w", err)
	}
	if _, err := tx.Exec(ctx,
		`UPDATE matches SET loser_team_id = NULL WHERE loser_team_id = $1`, teamID); err != nil {
		return fmt.Errorf("null loser refs: %w", err)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM teams WHERE team_id = $1`, teamID)
	if err != nil {
		return fmt.Errorf("delete team: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NewNotFound("team", name)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	r.logger.Info().Str("team", name).Msg("team deleted")
	return nil
}
