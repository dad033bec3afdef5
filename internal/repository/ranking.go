package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"league-tracker/internal/constants"
	"league-tracker/internal/domain"
	"league-tracker/internal/sqlbuilder"
)

type RankingRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

func NewRankingRepository(pool *pgxpool.Pool, logger zerolog.Logger) *RankingRepository {
	return &RankingRepository{pool: pool, logger: logger}
}

// TeamTierList ranks teams over one calendar month by aggregate K/D. The K/D
// is a ratio of sums, SUM(kills)/SUM(deaths), so high-round matches weigh
// more than in an average of per-match ratios. Ties share a dense rank.
func (r *RankingRepository) TeamTierList(ctx context.Context, regionName string, window domain.RankingWindow) ([]domain.TeamRankRow, error) {
	var regionID *int64
	if !allFilter(regionName) {
		id, err := ResolveRegion(ctx, r.pool, regionName)
		if err != nil {
			return nil, err
		}
		regionID = &id
	}

	query, args := buildTeamTierListQuery(regionID, window)
	r.logger.Debug().Str("query", query).Int("month", window.Month).Int("year", window.Year).Msg("team tier list query composed")

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("team tier list: %w", err)
	}
	defer rows.Close()

	ranks := make([]domain.TeamRankRow, 0)
	for rows.Next() {
		var row domain.TeamRankRow
		if err := rows.Scan(&row.Team, &row.Month, &row.AverageKD, &row.AverageACS, &row.TotalMatches, &row.MonthlyRanking); err != nil {
			return nil, fmt.Errorf("scan team rank: %w", err)
		}
		ranks = append(ranks, row)
	}
	return ranks, rows.Err()
}

func buildTeamTierListQuery(regionID *int64, window domain.RankingWindow) (string, []any) {
	qb := sqlbuilder.New()
	qb.Select(`team_name AS team, EXTRACT(MONTH FROM date_played)::int AS month, ` +
		`ROUND(COALESCE(SUM(ms.kills)::numeric / NULLIF(SUM(ms.deaths), 0), 0), 2) AS average_kd, ` +
		`ROUND(AVG(ms.acs), 2) AS average_acs, COUNT(*) AS total_matches`)
	qb.From(`matches m JOIN match_stats ms USING (match_id) JOIN teams t ON (t.team_id = ms.team_id)`)
	if regionID != nil {
		qb.Where("t.region_id = ?", *regionID)
	}
	qb.Where("EXTRACT(YEAR FROM date_played) = ?", window.Year)
	qb.Where("EXTRACT(MONTH FROM date_played) = ?", window.Month)
	qb.GroupBy("month, t.team_name")

	inner, args := qb.Build()
	query := `WITH monthly_team_performance AS (` + inner + `) ` +
		`SELECT team, month, average_kd, average_acs, total_matches, ` +
		`DENSE_RANK() OVER (ORDER BY average_kd DESC) AS monthly_ranking ` +
		`FROM monthly_team_performance ORDER BY monthly_ranking ASC`
	return query, args
}

// AgentTierList ranks agents by mean K/D then mean ACS across all qualifying
// players. Agents under the minimum round count are dropped before ranking so
// rarely-picked agents cannot top the list on a handful of rounds.
func (r *RankingRepository) AgentTierList(ctx context.Context, regionName string) ([]domain.AgentRankRow, error) {
	var regionID *int64
	if !allFilter(regionName) {
		id, err := ResolveRegion(ctx, r.pool, regionName)
		if err != nil {
			return nil, err
		}
		regionID = &id
	}

	query, args := buildAgentTierListQuery(regionID)
	r.logger.Debug().Str("query", query).Msg("agent tier list query composed")

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("agent tier list: %w", err)
	}
	defer rows.Close()

	ranks := make([]domain.AgentRankRow, 0)
	for rows.Next() {
		var row domain.AgentRankRow
		if err := rows.Scan(&row.Agent, &row.AverageKD, &row.AverageACS, &row.TotalRounds, &row.Rank); err != nil {
			return nil, fmt.Errorf("scan agent rank: %w", err)
		}
		ranks = append(ranks, row)
	}
	return ranks, rows.Err()
}

func buildAgentTierListQuery(regionID *int64) (string, []any) {
	qb := sqlbuilder.New()
	qb.Select(`agent_name AS agent, ROUND(AVG(kd_ratio), 2) AS average_kd, ` +
		`ROUND(AVG(acs), 2) AS average_acs, SUM(rounds) AS total_rounds`)
	qb.From(`agents JOIN player_agent_stats USING (agent_id) JOIN roster USING (player_id) JOIN teams USING (team_id)`)
	if regionID != nil {
		qb.Where("region_id = ?", *regionID)
	}
	qb.GroupBy("agent_name")
	qb.Having("SUM(rounds) > ?", constants.MinAgentRounds)

	inner, args := qb.Build()
	query := `WITH agent_performance AS (` + inner + `) ` +
		`SELECT agent, average_kd, average_acs, total_rounds, ` +
		`DENSE_RANK() OVER (ORDER BY average_kd DESC, average_acs DESC) AS rank ` +
		`FROM agent_performance ORDER BY rank ASC`
	return query, args
}
