package leverade

import (
	"sync"

	"github.com/vinner21/water-follow/internal/waterpolo"
)

// MockClient is a mock implementation of the Client interface for testing.
// It is safe for concurrent use.
type MockClient struct {
	mu sync.Mutex

	// Spies for method calls
	ManagerTournamentsFunc func(managerID string) ([]waterpolo.Tournament, error)
	TournamentTeamsFunc    func(tournamentID string) ([]Team, error)
	TournamentGroupsFunc   func(tournamentID string) ([]GroupInfo, error)
	GroupRoundsFunc        func(groupID string) (*GroupDetail, error)
	GroupStandingsFunc     func(groupID string) ([]waterpolo.StandingRow, error)
	RoundMatchesFunc       func(roundID string) ([]*waterpolo.Match, error)
	TeamNameFunc           func(teamID string) (string, error)
	TeamRosterFunc         func(teamID string) (waterpolo.Roster, error)

	// Call records
	ManagerTournamentsCalls []string
	TournamentTeamsCalls    []string
	TournamentGroupsCalls   []string
	GroupRoundsCalls        []string
	GroupStandingsCalls     []string
	RoundMatchesCalls       []string
	TeamNameCalls           []string
	TeamRosterCalls         []string
}

var _ Client = (*MockClient)(nil)

// NewMockClient creates a new mock instance.
func NewMockClient() *MockClient {
	return &MockClient{}
}

func (m *MockClient) ManagerTournaments(managerID string) ([]waterpolo.Tournament, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ManagerTournamentsCalls = append(m.ManagerTournamentsCalls, managerID)
	if m.ManagerTournamentsFunc != nil {
		return m.ManagerTournamentsFunc(managerID)
	}
	return nil, nil
}

func (m *MockClient) TournamentTeams(tournamentID string) ([]Team, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.TournamentTeamsCalls = append(m.TournamentTeamsCalls, tournamentID)
	if m.TournamentTeamsFunc != nil {
		return m.TournamentTeamsFunc(tournamentID)
	}
	return nil, nil
}

func (m *MockClient) TournamentGroups(tournamentID string) ([]GroupInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.TournamentGroupsCalls = append(m.TournamentGroupsCalls, tournamentID)
	if m.TournamentGroupsFunc != nil {
		return m.TournamentGroupsFunc(tournamentID)
	}
	return nil, nil
}

func (m *MockClient) GroupRounds(groupID string) (*GroupDetail, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GroupRoundsCalls = append(m.GroupRoundsCalls, groupID)
	if m.GroupRoundsFunc != nil {
		return m.GroupRoundsFunc(groupID)
	}
	return &GroupDetail{ID: groupID}, nil
}

func (m *MockClient) GroupStandings(groupID string) ([]waterpolo.StandingRow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GroupStandingsCalls = append(m.GroupStandingsCalls, groupID)
	if m.GroupStandingsFunc != nil {
		return m.GroupStandingsFunc(groupID)
	}
	return nil, nil
}

func (m *MockClient) RoundMatches(roundID string) ([]*waterpolo.Match, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RoundMatchesCalls = append(m.RoundMatchesCalls, roundID)
	if m.RoundMatchesFunc != nil {
		return m.RoundMatchesFunc(roundID)
	}
	return nil, nil
}

func (m *MockClient) TeamName(teamID string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.TeamNameCalls = append(m.TeamNameCalls, teamID)
	if m.TeamNameFunc != nil {
		return m.TeamNameFunc(teamID)
	}
	return "", nil
}

func (m *MockClient) TeamRoster(teamID string) (waterpolo.Roster, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.TeamRosterCalls = append(m.TeamRosterCalls, teamID)
	if m.TeamRosterFunc != nil {
		return m.TeamRosterFunc(teamID)
	}
	return waterpolo.Roster{}, nil
}
