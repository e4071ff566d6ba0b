// Package discovery finds the seasons and tournaments a club takes part
// in, starting from the federation manager endpoint.
package discovery

import (
	"fmt"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/vinner21/water-follow/internal/leverade"
	"github.com/vinner21/water-follow/internal/waterpolo"
)

// UnknownSeasonID groups tournaments that carry no season relationship.
const UnknownSeasonID = "unknown"

// SeasonDiscovery is one season's worth of raw tournaments, before club
// filtering. HasInProgress marks the season as the current one.
type SeasonDiscovery struct {
	SeasonID      string
	Tournaments   []waterpolo.Tournament
	HasInProgress bool
}

// Service groups tournaments into seasons and filters them to the club.
type Service struct {
	client leverade.Client
}

// New creates a new discovery service.
func New(client leverade.Client) *Service {
	return &Service{client: client}
}

// Seasons lists every season the manager's tournaments belong to, in the
// order the API first mentions them. Only in_progress and finished
// tournaments are considered; other statuses are registration noise.
func (s *Service) Seasons(managerID string) ([]*SeasonDiscovery, error) {
	tournaments, err := s.client.ManagerTournaments(managerID)
	if err != nil {
		return nil, fmt.Errorf("discovering seasons: %w", err)
	}

	var seasons []*SeasonDiscovery
	byID := make(map[string]*SeasonDiscovery)
	total := 0
	for _, t := range tournaments {
		if t.Status != waterpolo.TournamentInProgress && t.Status != waterpolo.TournamentFinished {
			continue
		}
		sid := t.SeasonID
		if sid == "" {
			sid = UnknownSeasonID
			t.SeasonID = sid
		}
		season, ok := byID[sid]
		if !ok {
			season = &SeasonDiscovery{SeasonID: sid}
			byID[sid] = season
			seasons = append(seasons, season)
		}
		season.Tournaments = append(season.Tournaments, t)
		if t.Status == waterpolo.TournamentInProgress {
			season.HasInProgress = true
		}
		total++
	}
	log.Info("Discovered seasons", "tournaments", total, "seasons", len(seasons))
	return seasons, nil
}

// MergeCurrentSeasons collapses multiple in-progress season IDs into the
// one with the most tournaments. The API sometimes splits one logical
// season across a placeholder ID and the real one; merging avoids
// duplicate entries and repeat API calls. Ties keep the first-seen ID.
func MergeCurrentSeasons(seasons []*SeasonDiscovery) []*SeasonDiscovery {
	var primary *SeasonDiscovery
	for _, season := range seasons {
		if !season.HasInProgress {
			continue
		}
		if primary == nil || len(season.Tournaments) > len(primary.Tournaments) {
			primary = season
		}
	}
	if primary == nil {
		return seasons
	}

	merged := seasons[:0]
	for _, season := range seasons {
		if season.HasInProgress && season != primary {
			log.Info("Merging current season",
				"from", season.SeasonID, "into", primary.SeasonID,
				"tournaments", len(season.Tournaments))
			primary.Tournaments = append(primary.Tournaments, season.Tournaments...)
			continue
		}
		merged = append(merged, season)
	}
	return merged
}

// ClubTournaments narrows tournaments to the ones the club has teams in,
// attaching those teams. A failed team lookup skips that tournament
// rather than aborting the whole season. The result is ordered by the
// tournament order attribute, with missing or zero orders last.
func (s *Service) ClubTournaments(tournaments []waterpolo.Tournament, clubID string) []waterpolo.Tournament {
	var result []waterpolo.Tournament
	for _, t := range tournaments {
		teams, err := s.client.TournamentTeams(t.ID)
		if err != nil {
			log.Warn("Skipping tournament, team lookup failed", "tournament", t.Name, "error", err)
			continue
		}
		var ours []waterpolo.OurTeam
		for _, team := range teams {
			if team.ClubID == clubID {
				ours = append(ours, waterpolo.OurTeam{ID: team.ID, Name: team.Name, Avatar: team.Avatar})
			}
		}
		if len(ours) == 0 {
			continue
		}
		t.OurTeams = ours
		result = append(result, t)
		log.Debug("Club plays in tournament", "tournament", t.Name, "teams", len(ours))
	}
	sort.SliceStable(result, func(i, j int) bool {
		return sortOrder(result[i]) < sortOrder(result[j])
	})
	return result
}

// sortOrder treats an absent or zero order as last.
func sortOrder(t waterpolo.Tournament) int {
	if t.Order == 0 {
		return 999
	}
	return t.Order
}
