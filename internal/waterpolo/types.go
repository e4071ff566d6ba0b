package waterpolo

// SeasonStatus marks whether a season is still being played or fully closed.
type SeasonStatus string

const (
	StatusCurrent  SeasonStatus = "current"
	StatusFinished SeasonStatus = "finished"
)

// TournamentStatus mirrors the status attribute the Leverade API reports
// per tournament. Statuses other than these two are ignored by discovery.
type TournamentStatus string

const (
	TournamentInProgress TournamentStatus = "in_progress"
	TournamentFinished   TournamentStatus = "finished"
)

// RolePlayer is the license type for playing members; every other license
// type is treated as staff.
const RolePlayer = "player"

// Season is one yearly competition cycle, assembled from discovery,
// collection and cache data. Immutable once handed to the renderer.
type Season struct {
	ID          string       `json:"season_id"`
	Label       string       `json:"season_label"`
	Status      SeasonStatus `json:"status"`
	StartYear   int          `json:"start_year"`
	Categories  []*Category  `json:"tournaments"`
	RefreshedAt string       `json:"refreshed_at"`
	AgeRefDate  string       `json:"age_ref_date"`
}

// Tournament is a discovery record: one competition bracket as reported by
// the manager endpoint, with the club's teams attached once known.
type Tournament struct {
	ID       string
	Name     string
	Gender   string
	Order    int
	SeasonID string
	Status   TournamentStatus
	OurTeams []OurTeam
}

// OurTeam is one of the club's teams inside a tournament.
type OurTeam struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

// Category holds everything collected for one tournament the club plays in.
// TeamNames covers every team referenced anywhere, not just the club's.
type Category struct {
	TournamentID   string            `json:"tournament_id"`
	TournamentName string            `json:"tournament_name"`
	OurTeams       []OurTeam         `json:"our_teams"`
	OurTeamIDs     TeamIDSet         `json:"our_team_ids"`
	Groups         []*Group          `json:"groups"`
	Matches        []*Match          `json:"matches"`
	TeamNames      map[string]string `json:"team_names"`
	Rosters        map[string]Roster `json:"rosters"`
}

// Group is a pool of teams with shared standings. OurTeamIDs is the subset
// of the category's club teams that appear in this group's standings.
type Group struct {
	ID         string        `json:"id"`
	Name       string        `json:"name"`
	Standings  []StandingRow `json:"standings"`
	OurTeamIDs TeamIDSet     `json:"our_team_ids"`
}

// StandingRow is one team's ranked record in a group. Position comes from
// upstream and is never recomputed.
type StandingRow struct {
	TeamID       string `json:"id"`
	TeamName     string `json:"name"`
	Position     int    `json:"position"`
	Points       int    `json:"points"`
	Played       int    `json:"played"`
	Won          int    `json:"won"`
	Drawn        int    `json:"drawn"`
	Lost         int    `json:"lost"`
	GoalsFor     int    `json:"goals_for"`
	GoalsAgainst int    `json:"goals_against"`
	GoalDiff     int    `json:"goal_diff"`
}

// Match is one fixture. An empty Date means "to be determined"; an empty
// AwayTeam means a bye. Round and group fields are denormalized for display.
type Match struct {
	ID         string        `json:"id"`
	Date       string        `json:"date"`
	Finished   bool          `json:"finished"`
	Canceled   bool          `json:"canceled"`
	Postponed  bool          `json:"postponed"`
	Rest       bool          `json:"rest"`
	HomeTeam   string        `json:"home_team"`
	AwayTeam   string        `json:"away_team"`
	Venue      string        `json:"venue"`
	Results    []MatchResult `json:"results"`
	RoundName  string        `json:"round_name"`
	RoundOrder int           `json:"round_order"`
	GroupID    string        `json:"group_id"`
	GroupName  string        `json:"group_name"`
}

// MatchResult is one side's score in a match. At most one per (match, team).
type MatchResult struct {
	TeamID string `json:"team_id"`
	Value  int    `json:"value"`
	Score  int    `json:"score"`
}

// Roster is a team's list of players and staff for a season.
type Roster []RosterEntry

// RosterEntry is a single person on a roster. Upstream records without a
// first name are dropped during parsing.
type RosterEntry struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Birthdate string `json:"birthdate,omitempty"`
	Role      string `json:"role"`
}
