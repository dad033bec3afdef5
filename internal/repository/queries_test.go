package repository

import (
	"fmt"
	"regexp"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"league-tracker/internal/domain"
)

func placeholders(t *testing.T, sql string) map[int]bool {
	t.Helper()
	seen := map[int]bool{}
	for _, m := range regexp.MustCompile(`\$(\d+)`).FindAllStringSubmatch(sql, -1) {
		n, err := strconv.Atoi(m[1])
		require.NoError(t, err)
		seen[n] = true
	}
	return seen
}

func assertContiguous(t *testing.T, sql string, args []any) {
	t.Helper()
	seen := placeholders(t, sql)
	require.Len(t, seen, len(args), "placeholders vs args: %s", sql)
	for i := 1; i <= len(args); i++ {
		assert.True(t, seen[i], "missing $%d in %s", i, sql)
	}
}

func TestBuildFilteredPlayersQuery(t *testing.T) {
	region := int64(3)
	agent := int64(7)

	tests := []struct {
		name         string
		regionID     *int64
		agentID      *int64
		timespan     string
		wantTable    string
		wantArgs     []any
		wantAveraged bool
	}{
		{
			name:         "no filters, all time",
			timespan:     "All",
			wantTable:    "player_agent_stats ",
			wantArgs:     []any{},
			wantAveraged: true,
		},
		{
			name:         "no filters, 90 days",
			timespan:     "90_Days",
			wantTable:    "player_agent_stats_90days ",
			wantArgs:     []any{},
			wantAveraged: true,
		},
		{
			name:         "region only",
			regionID:     &region,
			timespan:     "All",
			wantTable:    "player_agent_stats ",
			wantArgs:     []any{region},
			wantAveraged: true,
		},
		{
			name:         "agent only",
			agentID:      &agent,
			timespan:     "All",
			wantTable:    "player_agent_stats ",
			wantArgs:     []any{agent},
			wantAveraged: false,
		},
		{
			name:         "region and agent, 90 days",
			regionID:     &region,
			agentID:      &agent,
			timespan:     "90_Days",
			wantTable:    "player_agent_stats_90days ",
			wantArgs:     []any{region, agent},
			wantAveraged: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, args := buildFilteredPlayersQuery(tt.regionID, tt.agentID, tt.timespan)

			if len(tt.wantArgs) == 0 {
				assert.Empty(t, args)
			} else {
				assert.Equal(t, tt.wantArgs, args)
			}
			assert.Contains(t, sql, "FROM "+tt.wantTable)
			assert.Contains(t, sql, "ORDER BY acs DESC")
			assertContiguous(t, sql, args)

			if tt.wantAveraged {
				assert.Contains(t, sql, "ROUND(AVG(r2), 2)")
				assert.Contains(t, sql, "GROUP BY player_name, team_name")
			} else {
				assert.NotContains(t, sql, "AVG(")
				assert.NotContains(t, sql, "GROUP BY")
			}

			if tt.regionID != nil {
				assert.Contains(t, sql, "region_id = $1")
			} else {
				assert.NotContains(t, sql, "region_id =")
			}
			if tt.agentID != nil {
				want := fmt.Sprintf("agent_id = $%d", len(args))
				assert.Contains(t, sql, want)
			}
		})
	}
}

func TestBuildTeamMatchesQuery(t *testing.T) {
	const teamID = int64(42)

	t.Run("base query binds the team id once", func(t *testing.T) {
		sql, args := buildTeamMatchesQuery(teamID, domain.MatchFilter{TeamName: "Foo"})

		assert.Equal(t, []any{teamID}, args)
		assert.Contains(t, sql, "(m.team1_id = $1 OR m.team2_id = $1)")
		assert.Contains(t, sql, "WHEN m.t1_won IS NULL THEN 'Not Played'")
		assert.Contains(t, sql, "ORDER BY m.date_played DESC")
		assertContiguous(t, sql, args)
	})

	t.Run("date bounds are numbered after the team id", func(t *testing.T) {
		sql, args := buildTeamMatchesQuery(teamID, domain.MatchFilter{
			TeamName:  "Foo",
			StartDate: "2025-01-01",
			EndDate:   "2025-01-31",
		})

		assert.Equal(t, []any{teamID, "2025-01-01", "2025-01-31"}, args)
		assert.Contains(t, sql, "m.date_played >= $2")
		assert.Contains(t, sql, "m.date_played <= $3")
		assertContiguous(t, sql, args)
	})

	t.Run("end date alone still gets the next index", func(t *testing.T) {
		sql, args := buildTeamMatchesQuery(teamID, domain.MatchFilter{
			TeamName: "Foo",
			EndDate:  "2025-01-31",
		})

		assert.Equal(t, []any{teamID, "2025-01-31"}, args)
		assert.Contains(t, sql, "m.date_played <= $2")
		assert.NotContains(t, sql, "m.date_played >=")
		assertContiguous(t, sql, args)
	})

	t.Run("international keeps cross-region opponents", func(t *testing.T) {
		sql, _ := buildTeamMatchesQuery(teamID, domain.MatchFilter{TeamName: "Foo", RegionMode: "International"})
		assert.Contains(t, sql, "t1.region_id != t2.region_id")
	})

	t.Run("concrete region means local play", func(t *testing.T) {
		sql, _ := buildTeamMatchesQuery(teamID, domain.MatchFilter{TeamName: "Foo", RegionMode: "EMEA"})
		assert.Contains(t, sql, "t1.region_id = t2.region_id")
	})

	t.Run("all region mode adds no region predicate", func(t *testing.T) {
		sql, _ := buildTeamMatchesQuery(teamID, domain.MatchFilter{TeamName: "Foo", RegionMode: "All"})
		assert.NotContains(t, sql, "region_id !=")
		assert.NotContains(t, sql, "region_id =")
	})

	t.Run("win filter matches only the requested team's wins", func(t *testing.T) {
		sql, args := buildTeamMatchesQuery(teamID, domain.MatchFilter{TeamName: "Foo", WinsOnly: true})

		assert.Equal(t, []any{teamID}, args)
		assert.Contains(t, sql, "m.t1_won IS NOT NULL")
		assert.Contains(t, sql, "(m.t1_won = true AND m.team1_id = $1)")
		assert.Contains(t, sql, "(m.t1_won = false AND m.team2_id = $1)")
		assertContiguous(t, sql, args)
	})
}

func TestBuildTeamTierListQuery(t *testing.T) {
	window := domain.RankingWindow{Month: 1, Year: 2025}

	t.Run("without region filter", func(t *testing.T) {
		sql, args := buildTeamTierListQuery(nil, window)

		assert.Equal(t, []any{2025, 1}, args)
		assert.Contains(t, sql, "DENSE_RANK() OVER (ORDER BY average_kd DESC)")
		assert.Contains(t, sql, "SUM(ms.kills)::numeric / NULLIF(SUM(ms.deaths), 0)")
		assert.Contains(t, sql, "EXTRACT(YEAR FROM date_played) = $1")
		assert.Contains(t, sql, "EXTRACT(MONTH FROM date_played) = $2")
		assert.Contains(t, sql, "ORDER BY monthly_ranking ASC")
		assertContiguous(t, sql, args)
	})

	t.Run("region filter precedes the window bounds", func(t *testing.T) {
		region := int64(5)
		sql, args := buildTeamTierListQuery(&region, window)

		assert.Equal(t, []any{region, 2025, 1}, args)
		assert.Contains(t, sql, "t.region_id = $1")
		assert.Contains(t, sql, "EXTRACT(YEAR FROM date_played) = $2")
		assert.Contains(t, sql, "EXTRACT(MONTH FROM date_played) = $3")
		assertContiguous(t, sql, args)
	})
}

func TestBuildAgentTierListQuery(t *testing.T) {
	t.Run("without region filter", func(t *testing.T) {
		sql, args := buildAgentTierListQuery(nil)

		assert.Equal(t, []any{100}, args)
		assert.Contains(t, sql, "HAVING SUM(rounds) > $1")
		assert.Contains(t, sql, "DENSE_RANK() OVER (ORDER BY average_kd DESC, average_acs DESC)")
		assert.Contains(t, sql, "ORDER BY rank ASC")
		assertContiguous(t, sql, args)
	})

	t.Run("with region filter the minimum rounds shifts to $2", func(t *testing.T) {
		region := int64(2)
		sql, args := buildAgentTierListQuery(&region)

		assert.Equal(t, []any{region, 100}, args)
		assert.Contains(t, sql, "region_id = $1")
		assert.Contains(t, sql, "HAVING SUM(rounds) > $2")
		assertContiguous(t, sql, args)
	})
}

func TestStatsTableWhitelist(t *testing.T) {
	assert.Equal(t, "player_agent_stats_90days", statsTable("90_Days"))
	assert.Equal(t, "player_agent_stats", statsTable("All"))
	assert.Equal(t, "player_agent_stats", statsTable(""))
	// arbitrary input never reaches the query text
	assert.Equal(t, "player_agent_stats", statsTable("players; DROP TABLE players"))
}

func TestAllFilterSentinel(t *testing.T) {
	assert.True(t, allFilter("All"))
	assert.True(t, allFilter("ALL"))
	assert.True(t, allFilter("all"))
	assert.True(t, allFilter(""))
	assert.False(t, allFilter("EMEA"))
	assert.False(t, allFilter("International"))
}
