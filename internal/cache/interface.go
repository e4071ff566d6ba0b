package cache

import (
	"time"

	"github.com/vinner21/water-follow/internal/waterpolo"
)

// CacheStore defines the interface for the on-disk cache of season,
// tournament and roster data. This allows for mock implementations to be
// used in tests.
type CacheStore interface {
	// LoadSeason returns the cached record for a season, or nil when the
	// cache has no usable entry. A corrupt file counts as a miss.
	LoadSeason(seasonID string) (*SeasonRecord, error)
	// SaveSeason writes a season record, stamping its refresh time.
	SaveSeason(rec *SeasonRecord) error
	// PromoteSeason saves a season record and removes the per-tournament
	// cache files it supersedes.
	PromoteSeason(rec *SeasonRecord) error

	// LoadTournament returns a cached finished tournament, or nil on miss.
	LoadTournament(tournamentID string) (*waterpolo.Category, error)
	// SaveTournament caches a finished tournament on its own.
	SaveTournament(cat *waterpolo.Category) error
	// CleanupTournamentCaches removes every per-tournament cache file.
	CleanupTournamentCaches() error

	// LoadRoster returns a cached roster, or nil on miss.
	LoadRoster(teamID string) (waterpolo.Roster, error)
	// SaveRoster caches a team's roster.
	SaveRoster(teamID string, roster waterpolo.Roster) error
	// RosterAge reports how long ago a team's roster was cached. The
	// second return is false when no roster is cached.
	RosterAge(teamID string) (time.Duration, bool)
}
