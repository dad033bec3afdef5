// Package repository translates named lookups and filter sets into
// parameterized SQL against the league store. Reads run on the shared pool;
// writes acquire a dedicated connection for the duration of their transaction.
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"league-tracker/internal/domain"
)

// Querier is the subset of pgx satisfied by both *pgxpool.Pool and pgx.Tx,
// so name resolution works identically inside and outside a transaction.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

func resolveID(ctx context.Context, q Querier, query, entity, name string) (int64, error) {
	var id int64
	err := q.QueryRow(ctx, query, name).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, domain.NewNotFound(entity, name)
	}
	if err != nil {
		return 0, fmt.Errorf("resolve %s %q: %w", entity, name, err)
	}
	return id, nil
}

// Names are unique per entity type, so each resolver returns zero or one row.

func ResolveRegion(ctx context.Context, q Querier, name string) (int64, error) {
	return resolveID(ctx, q, `SELECT region_id FROM regions WHERE region_name = $1`, "region", name)
}

func ResolveTeam(ctx context.Context, q Querier, name string) (int64, error) {
	return resolveID(ctx, q, `SELECT team_id FROM teams WHERE team_name = $1`, "team", name)
}

func ResolvePlayer(ctx context.Context, q Querier, name string) (int64, error) {
	return resolveID(ctx, q, `SELECT player_id FROM players WHERE player_name = $1`, "player", name)
}

func ResolveAgent(ctx context.Context, q Querier, name string) (int64, error) {
	return resolveID(ctx, q, `SELECT agent_id FROM agents WHERE agent_name = $1`, "agent", name)
}

// allFilter reports whether a filter value means "no filter". Clients send
// both "All" and "ALL", so the sentinel is matched case-insensitively; a
// missing parameter also means unfiltered.
func allFilter(name string) bool {
	switch name {
	case "", "All", "ALL", "all":
		return true
	}
	return false
}

// statsTable picks which of the two parallel stats tables a timespan selects.
// Table names come from this fixed whitelist, never from request input.
func statsTable(timespan string) string {
	if timespan == "90_Days" {
		return "player_agent_stats_90days"
	}
	return "player_agent_stats"
}
