package waterpolo

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

// MatchDateLayout is the timestamp format the Leverade API uses for match
// dates and the format stored in cache files.
const MatchDateLayout = "2006-01-02 15:04:05"

// matchDateSentinel sorts after any real date so undated matches go last.
const matchDateSentinel = "9999"

var seasonNamePattern = regexp.MustCompile(`(\d{4})[/-](\d{2,4})`)

// SeasonLabel formats a season's display label, e.g. 2024 -> "2024-25".
func SeasonLabel(startYear int) string {
	return fmt.Sprintf("%d-%02d", startYear, (startYear+1)%100)
}

// InferSeasonInfo derives the season label and start year for a set of
// collected categories. Three strategies, evaluated in fixed order:
//  1. earliest match date, with July as the season cutoff month;
//  2. a year pattern (e.g. "2023/24") in a tournament name;
//  3. the current calendar year.
func InferSeasonInfo(categories []*Category, now time.Time) (string, int) {
	var earliest time.Time
	found := false
	for _, cat := range categories {
		for _, m := range cat.Matches {
			if m.Date == "" {
				continue
			}
			d, err := time.Parse(MatchDateLayout, m.Date)
			if err != nil {
				continue
			}
			if !found || d.Before(earliest) {
				earliest = d
				found = true
			}
		}
	}
	if found {
		year := earliest.Year()
		if earliest.Month() < time.July {
			year--
		}
		return SeasonLabel(year), year
	}
	for _, cat := range categories {
		if m := seasonNamePattern.FindStringSubmatch(cat.TournamentName); m != nil {
			year, err := strconv.Atoi(m[1])
			if err == nil {
				return SeasonLabel(year), year
			}
		}
	}
	year := now.Year()
	return SeasonLabel(year), year
}

// SortMatches orders matches by date ascending. Matches with no date sort
// after every dated match; order among them is insertion-stable.
func SortMatches(matches []*Match) {
	sort.SliceStable(matches, func(i, j int) bool {
		return matchSortKey(matches[i]) < matchSortKey(matches[j])
	})
}

func matchSortKey(m *Match) string {
	if m.Date == "" {
		return matchDateSentinel
	}
	return m.Date
}

// Outcome classifies a match from one side's perspective.
type Outcome string

const (
	OutcomeUpcoming Outcome = "upcoming"
	OutcomeUnknown  Outcome = "unknown"
	OutcomeWin      Outcome = "win"
	OutcomeLoss     Outcome = "loss"
	OutcomeDraw     Outcome = "draw"
)

// ScoreFor returns the recorded score for the given team, if any.
func (m *Match) ScoreFor(teamID string) (int, bool) {
	if teamID == "" {
		return 0, false
	}
	for _, r := range m.Results {
		if r.TeamID == teamID {
			return r.Value, true
		}
	}
	return 0, false
}

// Outcome classifies the match for the teams in ourIDs. A finished match
// missing a result for either side is "unknown", never an error.
func (m *Match) Outcome(ourIDs TeamIDSet) Outcome {
	if !m.Finished {
		return OutcomeUpcoming
	}
	home, homeOK := m.ScoreFor(m.HomeTeam)
	away, awayOK := m.ScoreFor(m.AwayTeam)
	if !homeOK || !awayOK {
		return OutcomeUnknown
	}
	ours, theirs := home, away
	if !ourIDs.Has(m.HomeTeam) {
		ours, theirs = away, home
	}
	switch {
	case ours > theirs:
		return OutcomeWin
	case ours < theirs:
		return OutcomeLoss
	default:
		return OutcomeDraw
	}
}

// Slug builds an anchor-safe id from display text.
func Slug(text string) string {
	s := strings.ToLower(text)
	s = slugPattern.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)
