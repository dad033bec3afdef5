package domain

type Region struct {
	RegionID   int64  `json:"region_id"`
	RegionName string `json:"region_name"`
}

type Team struct {
	TeamID   int64  `json:"team_id"`
	TeamName string `json:"team_name"`
	RegionID *int64 `json:"region_id"`
}

type Player struct {
	PlayerID   int64  `json:"player_id"`
	PlayerName string `json:"player_name"`
}

type Agent struct {
	AgentID   int64  `json:"agent_id"`
	AgentName string `json:"agent_name"`
}

// AgentStatLine is one per-(player, agent) aggregate row, shared by the
// all-time and 90-day stats tables.
type AgentStatLine struct {
	AgentName string  `json:"agent_name"`
	Rounds    int     `json:"rounds"`
	R2        float64 `json:"r2"`
	UsePct    float64 `json:"use_pct"`
	ACS       float64 `json:"acs"`
	KDRatio   float64 `json:"kd_ratio"`
	ADR       float64 `json:"adr"`
	KastPct   float64 `json:"kast_pct"`
	KPR       float64 `json:"kpr"`
	FKPR      float64 `json:"fkpr"`
	Kills     int     `json:"kills"`
	Deaths    int     `json:"deaths"`
	Assists   int     `json:"assists"`
	FK        int     `json:"fk"`
	FD        int     `json:"fd"`
}

type PlayerDetail struct {
	PlayerID    int64           `json:"player_id"`
	PlayerName  string          `json:"player_name"`
	Stats       []AgentStatLine `json:"stats"`
	Stats90Days []AgentStatLine `json:"stats_90days"`
}

// FilteredPlayerRow is one row of the filtered player listing. When no agent
// filter is active the numeric columns are 2-dp rounded averages across the
// player's agents; with an agent filter they are the raw per-agent values.
type FilteredPlayerRow struct {
	Player string  `json:"player"`
	Team   string  `json:"team"`
	R2     float64 `json:"R2.0"`
	ACS    float64 `json:"acs"`
	KD     float64 `json:"kd"`
}

// TeamMatchRow is one match from a team's perspective. Result is WIN, Loss or
// Not Played, computed in SQL against the requested team.
type TeamMatchRow struct {
	HomeTeam string `json:"home_team"`
	AwayTeam string `json:"away_team"`
	Date     string `json:"date"`
	Result   string `json:"result"`
}

type TeamRankRow struct {
	Team           string  `json:"team"`
	Month          int     `json:"month"`
	AverageKD      float64 `json:"average_kd"`
	AverageACS     float64 `json:"average_acs"`
	TotalMatches   int64   `json:"total_matches"`
	MonthlyRanking int64   `json:"monthly_ranking"`
}

type AgentRankRow struct {
	Agent       string  `json:"agent"`
	AverageKD   float64 `json:"average_kd"`
	AverageACS  float64 `json:"average_acs"`
	TotalRounds int64   `json:"total_rounds"`
	Rank        int64   `json:"rank"`
}

type RosterEntry struct {
	PlayerName string `json:"player_name"`
	TeamName   string `json:"team_name"`
}

type TeamRegionEntry struct {
	TeamName   string `json:"team_name"`
	RegionName string `json:"region_name"`
}

// PlayerFilter holds the query parameters of the filtered player listing.
// RegionName and AgentName use the "All" sentinel for "no filter".
type PlayerFilter struct {
	RegionName string
	AgentName  string
	Timespan   string
}

// MatchFilter holds the query parameters of the team match listing. TeamName
// is required, the rest are optional. RegionMode follows the original
// contract: "All" means no filter, "International" keeps matches where the
// opponent's region differs, any other value keeps same-region matches.
type MatchFilter struct {
	TeamName   string
	RegionMode string
	WinsOnly   bool
	StartDate  string
	EndDate    string
}

// RankingWindow is the calendar month a team tier list aggregates over.
type RankingWindow struct {
	Month int
	Year  int
}

type PlayerCreate struct {
	PlayerIGN string `json:"player_ign"`
	TeamName  string `json:"team_name"`
}

type PlayerUpdate struct {
	CurrIGN     string `json:"curr_ign"`
	NewIGN      string `json:"new_ign"`
	NewTeamName string `json:"new_team_name"`
}

type TeamCreate struct {
	TeamName   string `json:"team_name"`
	RegionName string `json:"region_name"`
}

type TeamUpdate struct {
	TeamName    string `json:"team_name"`
	NewTeamName string `json:"new_team_name"`
	NewRegion   string `json:"new_region"`
}
