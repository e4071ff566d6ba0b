package metrics

// Metrics defines the interface for collecting build metrics.
// This decouples the pipeline from the specific metrics implementation.
type Metrics interface {
	IncAPIRequest()
	IncCacheHit(tier string)
	IncCacheMiss(tier string)
	IncTournamentCollected()
	IncRosterFetched()
	IncRosterFetchFailed()
	SetBuildDuration(seconds float64)
}

// Cache tier label values.
const (
	TierSeason     = "season"
	TierTournament = "tournament"
	TierRoster     = "roster"
)
