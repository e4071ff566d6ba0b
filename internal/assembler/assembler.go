// Package assembler turns discovered seasons into fully populated season
// records, fetching from the API only where the cache cannot answer.
package assembler

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/vinner21/water-follow/internal/cache"
	"github.com/vinner21/water-follow/internal/collector"
	"github.com/vinner21/water-follow/internal/discovery"
	"github.com/vinner21/water-follow/internal/waterpolo"
)

// ErrNoSeasons is returned when no season ends up with any club data.
var ErrNoSeasons = errors.New("assembler: no season data found for this club")

// Options controls a single assembly run.
type Options struct {
	// RefreshRosters forces a re-fetch of every roster. Passed through
	// to the collector.
	RefreshRosters bool
}

// Assembler coordinates discovery, collection and the cache.
type Assembler struct {
	disc  *discovery.Service
	coll  *collector.Collector
	store cache.CacheStore
	now   func() time.Time
}

// New creates a new assembler.
func New(disc *discovery.Service, coll *collector.Collector, store cache.CacheStore) *Assembler {
	return &Assembler{disc: disc, coll: coll, store: store, now: time.Now}
}

// Assemble builds every season the club has data for, current season
// first, then finished seasons by label descending. Finished seasons are
// served from the season cache when possible and cached once complete.
func (a *Assembler) Assemble(managerID, clubID string, opts Options) ([]*waterpolo.Season, error) {
	discovered, err := a.disc.Seasons(managerID)
	if err != nil {
		return nil, err
	}
	discovered = discovery.MergeCurrentSeasons(discovered)

	var seasons []*waterpolo.Season
	for _, d := range discovered {
		season, err := a.assembleSeason(d, clubID, opts)
		if err != nil {
			return nil, err
		}
		if season != nil {
			seasons = append(seasons, season)
		}
	}
	if len(seasons) == 0 {
		return nil, ErrNoSeasons
	}

	seasons = dedupeByLabel(seasons)
	sortSeasons(seasons)
	return seasons, nil
}

// assembleSeason returns nil without error when the club has no data in
// the season.
func (a *Assembler) assembleSeason(d *discovery.SeasonDiscovery, clubID string, opts Options) (*waterpolo.Season, error) {
	isCurrent := d.HasInProgress

	if !isCurrent {
		rec, err := a.store.LoadSeason(d.SeasonID)
		if err != nil {
			return nil, err
		}
		if rec != nil {
			log.Info("Loaded season from cache", "season", rec.SeasonLabel)
			return cachedSeason(d.SeasonID, rec), nil
		}
	}

	log.Info("Fetching season from API", "season", d.SeasonID)

	// Finished tournaments may already be cached individually from a
	// previous run of the still-open season.
	var categories []*waterpolo.Category
	var toDiscover []waterpolo.Tournament
	for _, t := range d.Tournaments {
		if t.Status == waterpolo.TournamentFinished {
			cat, err := a.store.LoadTournament(t.ID)
			if err != nil {
				return nil, err
			}
			if cat != nil {
				log.Info("Loaded finished tournament from cache", "tournament", t.Name)
				categories = append(categories, cat)
				continue
			}
		}
		toDiscover = append(toDiscover, t)
	}

	clubTournaments := a.disc.ClubTournaments(toDiscover, clubID)
	if len(clubTournaments) == 0 && len(categories) == 0 {
		log.Info("Club has no tournaments in season", "season", d.SeasonID)
		return nil, nil
	}

	for _, t := range clubTournaments {
		cat, err := a.coll.Collect(t, collector.Options{
			RefreshRosters: opts.RefreshRosters,
			CurrentSeason:  isCurrent,
		})
		if err != nil {
			log.Warn("Skipping tournament, collection failed", "tournament", t.Name, "error", err)
			continue
		}
		if len(cat.Groups) == 0 {
			log.Info("Skipping tournament without groups", "tournament", t.Name)
			continue
		}
		categories = append(categories, cat)
		if t.Status == waterpolo.TournamentFinished {
			if err := a.store.SaveTournament(cat); err != nil {
				return nil, err
			}
		}
	}
	if len(categories) == 0 {
		return nil, nil
	}

	label, startYear := waterpolo.InferSeasonInfo(categories, a.now())
	season := &waterpolo.Season{
		ID:          d.SeasonID,
		Label:       label,
		StartYear:   startYear,
		Categories:  categories,
		RefreshedAt: a.now().Format(cache.RefreshedAtLayout),
	}
	if isCurrent {
		season.Status = waterpolo.StatusCurrent
		season.AgeRefDate = a.now().Format("2006-01-02")
	} else {
		season.Status = waterpolo.StatusFinished
		season.AgeRefDate = finishedAgeRefDate(startYear)
		if err := a.store.PromoteSeason(&cache.SeasonRecord{
			SeasonID:    d.SeasonID,
			SeasonLabel: label,
			Tournaments: categories,
		}); err != nil {
			return nil, err
		}
		log.Info("Cached season for future builds", "season", label)
	}
	return season, nil
}

// cachedSeason rebuilds a season from its cache record. The start year
// comes from the label; unparsable labels fall back to the current year.
func cachedSeason(seasonID string, rec *cache.SeasonRecord) *waterpolo.Season {
	startYear := time.Now().Year()
	if len(rec.SeasonLabel) >= 4 {
		if y, err := strconv.Atoi(rec.SeasonLabel[:4]); err == nil {
			startYear = y
		}
	}
	return &waterpolo.Season{
		ID:          seasonID,
		Label:       rec.SeasonLabel,
		Status:      waterpolo.StatusFinished,
		StartYear:   startYear,
		Categories:  rec.Tournaments,
		RefreshedAt: rec.RefreshedAt,
		AgeRefDate:  finishedAgeRefDate(startYear),
	}
}

// finishedAgeRefDate pins age calculations for a closed season to the
// end of its second calendar year.
func finishedAgeRefDate(startYear int) string {
	return fmt.Sprintf("%d-12-31", startYear+1)
}

// dedupeByLabel merges seasons that resolved to the same label. The one
// with more categories absorbs the other and keeps its identity; current
// status survives the merge either way.
func dedupeByLabel(seasons []*waterpolo.Season) []*waterpolo.Season {
	byLabel := make(map[string]*waterpolo.Season)
	result := seasons[:0]
	for _, season := range seasons {
		prev, ok := byLabel[season.Label]
		if !ok {
			byLabel[season.Label] = season
			result = append(result, season)
			continue
		}
		log.Info("Merging duplicate season label", "label", season.Label,
			"kept", prev.ID, "merged", season.ID)
		if len(season.Categories) > len(prev.Categories) {
			season.Categories = append(season.Categories, prev.Categories...)
			if prev.Status == waterpolo.StatusCurrent {
				season.Status = waterpolo.StatusCurrent
			}
			*prev = *season
		} else {
			prev.Categories = append(prev.Categories, season.Categories...)
			if season.Status == waterpolo.StatusCurrent {
				prev.Status = waterpolo.StatusCurrent
			}
		}
	}
	return result
}

// sortSeasons puts current seasons first in discovery order, then
// finished seasons newest label first.
func sortSeasons(seasons []*waterpolo.Season) {
	sort.SliceStable(seasons, func(i, j int) bool {
		si, sj := seasons[i], seasons[j]
		if (si.Status == waterpolo.StatusCurrent) != (sj.Status == waterpolo.StatusCurrent) {
			return si.Status == waterpolo.StatusCurrent
		}
		if si.Status == waterpolo.StatusCurrent {
			return false
		}
		return si.Label > sj.Label
	})
}
