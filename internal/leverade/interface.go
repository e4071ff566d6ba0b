package leverade

import "github.com/vinner21/water-follow/internal/waterpolo"

// Client defines the interface for interacting with the Leverade API.
// This allows for mock implementations to be used in tests.
type Client interface {
	// ManagerTournaments lists every tournament under a manager, with its
	// season relationship and API status. No status filtering is applied.
	ManagerTournaments(managerID string) ([]waterpolo.Tournament, error)
	// TournamentTeams lists the teams registered in a tournament.
	TournamentTeams(tournamentID string) ([]Team, error)
	// TournamentGroups lists a tournament's groups ordered by their
	// explicit order attribute.
	TournamentGroups(tournamentID string) ([]GroupInfo, error)
	// GroupRounds fetches a group with its rounds ordered by round order.
	GroupRounds(groupID string) (*GroupDetail, error)
	// GroupStandings fetches a group's standings ordered by position.
	GroupStandings(groupID string) ([]waterpolo.StandingRow, error)
	// RoundMatches fetches a round's matches with embedded results and
	// resolved venue names.
	RoundMatches(roundID string) ([]*waterpolo.Match, error)
	// TeamName resolves a single team's display name.
	TeamName(teamID string) (string, error)
	// TeamRoster fetches a team's roster, players first.
	TeamRoster(teamID string) (waterpolo.Roster, error)
}
