package metrics

import "sync"

// Mock is a Metrics implementation that records counts for tests.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	APIRequestCount    int
	CacheHitCounts     map[string]int
	CacheMissCounts    map[string]int
	TournamentCount    int
	RosterFetchCount   int
	RosterFailureCount int
	BuildDuration      float64
}

var _ Metrics = (*Mock)(nil)

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		CacheHitCounts:  make(map[string]int),
		CacheMissCounts: make(map[string]int),
	}
}

func (m *Mock) IncAPIRequest() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.APIRequestCount++
}

func (m *Mock) IncCacheHit(tier string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheHitCounts[tier]++
}

func (m *Mock) IncCacheMiss(tier string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheMissCounts[tier]++
}

func (m *Mock) IncTournamentCollected() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.TournamentCount++
}

func (m *Mock) IncRosterFetched() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RosterFetchCount++
}

func (m *Mock) IncRosterFetchFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RosterFailureCount++
}

func (m *Mock) SetBuildDuration(seconds float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.BuildDuration = seconds
}
