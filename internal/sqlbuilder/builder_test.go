package sqlbuilder

import (
	"fmt"
	"regexp"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildNoConditions(t *testing.T) {
	sql, args := New().
		Select("player_name, team_name").
		From("players JOIN roster USING (player_id)").
		OrderBy("team_name ASC").
		Build()

	assert.Equal(t, "SELECT player_name, team_name FROM players JOIN roster USING (player_id) ORDER BY team_name ASC", sql)
	assert.Empty(t, args)
}

func TestWherePlaceholderNumbering(t *testing.T) {
	tests := []struct {
		name     string
		build    func(b *Builder)
		wantSQL  string
		wantArgs []any
	}{
		{
			name: "single predicate",
			build: func(b *Builder) {
				b.Where("region_id = ?", int64(3))
			},
			wantSQL:  "SELECT x FROM t WHERE region_id = $1",
			wantArgs: []any{int64(3)},
		},
		{
			name: "predicates accumulate in order",
			build: func(b *Builder) {
				b.Where("region_id = ?", int64(3))
				b.Where("agent_id = ?", int64(7))
			},
			wantSQL:  "SELECT x FROM t WHERE region_id = $1 AND agent_id = $2",
			wantArgs: []any{int64(3), int64(7)},
		},
		{
			name: "multiple values in one fragment",
			build: func(b *Builder) {
				b.Where("date_played BETWEEN ? AND ?", "2025-01-01", "2025-01-31")
			},
			wantSQL:  "SELECT x FROM t WHERE date_played BETWEEN $1 AND $2",
			wantArgs: []any{"2025-01-01", "2025-01-31"},
		},
		{
			name: "skipped optional filter does not shift numbering",
			build: func(b *Builder) {
				b.Where("team_id = ?", int64(9))
				// startDate absent; endDate present
				b.Where("date_played <= ?", "2025-02-28")
			},
			wantSQL:  "SELECT x FROM t WHERE team_id = $1 AND date_played <= $2",
			wantArgs: []any{int64(9), "2025-02-28"},
		},
		{
			name: "raw predicate binds nothing",
			build: func(b *Builder) {
				b.Where("t1.region_id != t2.region_id")
				b.Where("t1_won = ?", true)
			},
			wantSQL:  "SELECT x FROM t WHERE t1.region_id != t2.region_id AND t1_won = $1",
			wantArgs: []any{true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := New().Select("x").From("t")
			tt.build(b)
			sql, args := b.Build()
			assert.Equal(t, tt.wantSQL, sql)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestBindSharesOneParameter(t *testing.T) {
	b := New()
	p := b.Bind(int64(42))
	b.Select(fmt.Sprintf("CASE WHEN team1_id = %s THEN 'WIN' ELSE 'Loss' END AS result", p)).
		From("matches").
		Where(fmt.Sprintf("(team1_id = %s OR team2_id = %s)", p, p)).
		Where("date_played >= ?", "2025-01-01")

	sql, args := b.Build()
	assert.Equal(t,
		"SELECT CASE WHEN team1_id = $1 THEN 'WIN' ELSE 'Loss' END AS result FROM matches WHERE (team1_id = $1 OR team2_id = $1) AND date_played >= $2",
		sql)
	assert.Equal(t, []any{int64(42), "2025-01-01"}, args)
}

func TestGroupByHavingOrdering(t *testing.T) {
	sql, args := New().
		Select("agent_name, ROUND(AVG(kd_ratio), 2) AS average_kd").
		From("agents JOIN player_agent_stats USING (agent_id)").
		Where("region_id = ?", int64(1)).
		GroupBy("agent_name").
		Having("SUM(rounds) > ?", 100).
		OrderBy("average_kd DESC").
		Build()

	assert.Equal(t,
		"SELECT agent_name, ROUND(AVG(kd_ratio), 2) AS average_kd FROM agents JOIN player_agent_stats USING (agent_id) WHERE region_id = $1 GROUP BY agent_name HAVING SUM(rounds) > $2 ORDER BY average_kd DESC",
		sql)
	assert.Equal(t, []any{int64(1), 100}, args)
}

// Placeholders in any rendered statement must cover exactly 1..len(args) with
// no gaps, whichever combination of optional filters is active.
func TestPlaceholderContiguity(t *testing.T) {
	for mask := 0; mask < 8; mask++ {
		b := New().Select("x").From("t")
		if mask&1 != 0 {
			b.Where("a = ?", 1)
		}
		if mask&2 != 0 {
			b.Where("b = ?", 2)
		}
		if mask&4 != 0 {
			b.Where("c BETWEEN ? AND ?", 3, 4)
		}
		sql, args := b.Build()

		seen := map[int]bool{}
		for _, m := range regexp.MustCompile(`\$(\d+)`).FindAllStringSubmatch(sql, -1) {
			n, err := strconv.Atoi(m[1])
			require.NoError(t, err)
			seen[n] = true
		}
		require.Len(t, seen, len(args), "mask %d: %s", mask, sql)
		for i := 1; i <= len(args); i++ {
			assert.True(t, seen[i], "mask %d: missing $%d in %s", mask, i, sql)
		}
	}
}
