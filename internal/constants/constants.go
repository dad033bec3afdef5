package constants

import "time"

const (
	DatabaseTimeout = 5 * time.Second
	RequestTimeout  = 30 * time.Second
)

const (
	DBMaxConns        = 16
	DBMinConns        = 2
	DBConnMaxLifetime = 1 * time.Hour
	DBMaxIdleTime     = 10 * time.Minute
)

const (
	ShutdownTimeout = 5 * time.Second
)

// MinAgentRounds is the sample-size floor for the agent tier list; agents at
// or below it are excluded before ranking.
const MinAgentRounds = 100
