// Package collector walks one tournament's groups, standings, rounds and
// rosters and flattens them into a single category record.
package collector

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/vinner21/water-follow/internal/cache"
	"github.com/vinner21/water-follow/internal/leverade"
	"github.com/vinner21/water-follow/internal/metrics"
	"github.com/vinner21/water-follow/internal/waterpolo"
)

// rosterMaxAge is how old a cached roster for one of the club's teams may
// get before a current-season build re-fetches it.
const rosterMaxAge = 30 * 24 * time.Hour

// Options controls roster behavior for a single collection run.
type Options struct {
	// RefreshRosters re-fetches every roster in the tournament instead of
	// using the cache. Expensive: one API call per team.
	RefreshRosters bool
	// CurrentSeason enables the automatic staleness refresh for the
	// club's own rosters.
	CurrentSeason bool
}

// Collector fetches everything a tournament contains.
type Collector struct {
	client  leverade.Client
	store   cache.CacheStore
	metrics metrics.Metrics
}

// New creates a new collector.
func New(client leverade.Client, store cache.CacheStore, m metrics.Metrics) *Collector {
	return &Collector{client: client, store: store, metrics: m}
}

// Collect gathers a full category for one tournament the club plays in.
// Any API error below the tournament aborts that tournament; the caller
// decides whether to skip it or fail the build.
func (c *Collector) Collect(t waterpolo.Tournament, opts Options) (*waterpolo.Category, error) {
	ourIDs := waterpolo.NewTeamIDSet()
	for _, team := range t.OurTeams {
		ourIDs.Add(team.ID)
	}

	groups, err := c.client.TournamentGroups(t.ID)
	if err != nil {
		return nil, fmt.Errorf("collecting %s: %w", t.Name, err)
	}
	log.Info("Collecting tournament", "tournament", t.Name, "groups", len(groups))

	cat := &waterpolo.Category{
		TournamentID:   t.ID,
		TournamentName: t.Name,
		OurTeams:       t.OurTeams,
		OurTeamIDs:     ourIDs,
		TeamNames:      make(map[string]string),
		Rosters:        make(map[string]waterpolo.Roster),
	}

	allTeamIDs := waterpolo.NewTeamIDSet()
	for _, g := range groups {
		standings, err := c.client.GroupStandings(g.ID)
		if err != nil {
			return nil, fmt.Errorf("collecting %s: %w", t.Name, err)
		}
		standingIDs := waterpolo.NewTeamIDSet()
		for _, row := range standings {
			cat.TeamNames[row.TeamID] = row.TeamName
			standingIDs.Add(row.TeamID)
			allTeamIDs.Add(row.TeamID)
		}

		detail, err := c.client.GroupRounds(g.ID)
		if err != nil {
			return nil, fmt.Errorf("collecting %s: %w", t.Name, err)
		}
		for _, rnd := range detail.Rounds {
			matches, err := c.client.RoundMatches(rnd.ID)
			if err != nil {
				return nil, fmt.Errorf("collecting %s: %w", t.Name, err)
			}
			for _, m := range matches {
				m.RoundName = rnd.Name
				m.RoundOrder = rnd.Order
				m.GroupID = g.ID
				m.GroupName = g.Name
			}
			cat.Matches = append(cat.Matches, matches...)
		}

		cat.Groups = append(cat.Groups, &waterpolo.Group{
			ID:         g.ID,
			Name:       g.Name,
			Standings:  standings,
			OurTeamIDs: ourIDs.Intersect(standingIDs),
		})
	}

	c.resolveTeamNames(cat)
	waterpolo.SortMatches(cat.Matches)

	if err := c.collectRosters(cat, allTeamIDs, ourIDs, opts); err != nil {
		return nil, err
	}

	c.metrics.IncTournamentCollected()
	log.Info("Collected tournament", "tournament", t.Name,
		"matches", len(cat.Matches), "teams", len(allTeamIDs))
	return cat, nil
}

// resolveTeamNames fills names for teams that appear in matches but not
// in any standings table, e.g. cross-group playoff opponents. A failed
// lookup falls back to a placeholder rather than failing the tournament.
func (c *Collector) resolveTeamNames(cat *waterpolo.Category) {
	missing := waterpolo.NewTeamIDSet()
	for _, m := range cat.Matches {
		if m.HomeTeam != "" && cat.TeamNames[m.HomeTeam] == "" {
			missing.Add(m.HomeTeam)
		}
		if m.AwayTeam != "" && cat.TeamNames[m.AwayTeam] == "" {
			missing.Add(m.AwayTeam)
		}
	}
	for _, id := range missing.Sorted() {
		name, err := c.client.TeamName(id)
		if err != nil || name == "" {
			log.Warn("Could not resolve team name", "team", id, "error", err)
			name = fmt.Sprintf("Equip %s", id)
		}
		cat.TeamNames[id] = name
	}
	// The club's own team names are authoritative.
	for _, team := range cat.OurTeams {
		cat.TeamNames[team.ID] = team.Name
	}
}

// collectRosters fills cat.Rosters for every team in the tournament's
// standings. Teams without cached data get an empty roster so the map is
// always complete.
func (c *Collector) collectRosters(cat *waterpolo.Category, allTeamIDs, ourIDs waterpolo.TeamIDSet, opts Options) error {
	if opts.RefreshRosters {
		log.Info("Refreshing all rosters", "tournament", cat.TournamentName, "teams", len(allTeamIDs))
		for _, id := range allTeamIDs.Sorted() {
			if err := c.fetchRoster(cat, id); err != nil {
				return err
			}
		}
		return nil
	}

	for _, id := range allTeamIDs.Sorted() {
		roster, err := c.store.LoadRoster(id)
		if err != nil {
			return err
		}
		if roster != nil {
			cat.Rosters[id] = roster
		}
	}

	if opts.CurrentSeason {
		var stale []string
		for _, id := range ourIDs.Sorted() {
			age, ok := c.store.RosterAge(id)
			if !ok || age > rosterMaxAge {
				stale = append(stale, id)
			}
		}
		if len(stale) > 0 {
			log.Info("Auto-refreshing club rosters", "teams", len(stale))
			for _, id := range stale {
				if err := c.fetchRoster(cat, id); err != nil {
					return err
				}
			}
		}
	}

	for _, id := range allTeamIDs.Sorted() {
		if _, ok := cat.Rosters[id]; !ok {
			cat.Rosters[id] = waterpolo.Roster{}
		}
	}
	return nil
}

// fetchRoster pulls one roster from the API and caches it. A fetch
// failure keeps whatever was already in cat.Rosters, falling back to an
// empty roster; a cache write failure is a real error.
func (c *Collector) fetchRoster(cat *waterpolo.Category, teamID string) error {
	roster, err := c.client.TeamRoster(teamID)
	if err != nil {
		log.Warn("Could not fetch roster", "team", teamID, "error", err)
		c.metrics.IncRosterFetchFailed()
		if _, ok := cat.Rosters[teamID]; !ok {
			cat.Rosters[teamID] = waterpolo.Roster{}
		}
		return nil
	}
	cat.Rosters[teamID] = roster
	c.metrics.IncRosterFetched()
	if err := c.store.SaveRoster(teamID, roster); err != nil {
		return fmt.Errorf("caching roster for team %s: %w", teamID, err)
	}
	return nil
}
