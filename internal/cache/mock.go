package cache

import (
	"sync"
	"time"

	"github.com/vinner21/water-follow/internal/waterpolo"
)

// MockStore is a mock implementation of the CacheStore interface for
// testing. It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	// Spies for method calls
	LoadSeasonFunc              func(seasonID string) (*SeasonRecord, error)
	SaveSeasonFunc              func(rec *SeasonRecord) error
	PromoteSeasonFunc           func(rec *SeasonRecord) error
	LoadTournamentFunc          func(tournamentID string) (*waterpolo.Category, error)
	SaveTournamentFunc          func(cat *waterpolo.Category) error
	CleanupTournamentCachesFunc func() error
	LoadRosterFunc              func(teamID string) (waterpolo.Roster, error)
	SaveRosterFunc              func(teamID string, roster waterpolo.Roster) error
	RosterAgeFunc               func(teamID string) (time.Duration, bool)

	// Call records
	LoadSeasonCalls     []string
	SaveSeasonCalls     []*SeasonRecord
	PromoteSeasonCalls  []*SeasonRecord
	LoadTournamentCalls []string
	SaveTournamentCalls []*waterpolo.Category
	CleanupCalls        int
	LoadRosterCalls     []string
	SaveRosterCalls     []string
	RosterAgeCalls      []string
}

var _ CacheStore = (*MockStore)(nil)

// NewMockStore creates a new mock instance.
func NewMockStore() *MockStore {
	return &MockStore{}
}

func (m *MockStore) LoadSeason(seasonID string) (*SeasonRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LoadSeasonCalls = append(m.LoadSeasonCalls, seasonID)
	if m.LoadSeasonFunc != nil {
		return m.LoadSeasonFunc(seasonID)
	}
	return nil, nil
}

func (m *MockStore) SaveSeason(rec *SeasonRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SaveSeasonCalls = append(m.SaveSeasonCalls, rec)
	if m.SaveSeasonFunc != nil {
		return m.SaveSeasonFunc(rec)
	}
	return nil
}

func (m *MockStore) PromoteSeason(rec *SeasonRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PromoteSeasonCalls = append(m.PromoteSeasonCalls, rec)
	if m.PromoteSeasonFunc != nil {
		return m.PromoteSeasonFunc(rec)
	}
	return nil
}

func (m *MockStore) LoadTournament(tournamentID string) (*waterpolo.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LoadTournamentCalls = append(m.LoadTournamentCalls, tournamentID)
	if m.LoadTournamentFunc != nil {
		return m.LoadTournamentFunc(tournamentID)
	}
	return nil, nil
}

func (m *MockStore) SaveTournament(cat *waterpolo.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SaveTournamentCalls = append(m.SaveTournamentCalls, cat)
	if m.SaveTournamentFunc != nil {
		return m.SaveTournamentFunc(cat)
	}
	return nil
}

func (m *MockStore) CleanupTournamentCaches() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CleanupCalls++
	if m.CleanupTournamentCachesFunc != nil {
		return m.CleanupTournamentCachesFunc()
	}
	return nil
}

func (m *MockStore) LoadRoster(teamID string) (waterpolo.Roster, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LoadRosterCalls = append(m.LoadRosterCalls, teamID)
	if m.LoadRosterFunc != nil {
		return m.LoadRosterFunc(teamID)
	}
	return nil, nil
}

func (m *MockStore) SaveRoster(teamID string, roster waterpolo.Roster) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SaveRosterCalls = append(m.SaveRosterCalls, teamID)
	if m.SaveRosterFunc != nil {
		return m.SaveRosterFunc(teamID, roster)
	}
	return nil
}

func (m *MockStore) RosterAge(teamID string) (time.Duration, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RosterAgeCalls = append(m.RosterAgeCalls, teamID)
	if m.RosterAgeFunc != nil {
		return m.RosterAgeFunc(teamID)
	}
	return 0, false
}
