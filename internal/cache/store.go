package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/vinner21/water-follow/internal/metrics"
	"github.com/vinner21/water-follow/internal/waterpolo"
)

// RefreshedAtLayout is the display format stamped on season records,
// day first.
const RefreshedAtLayout = "02/01/2006 15:04"

// SeasonRecord is the on-disk shape of a fully assembled season.
type SeasonRecord struct {
	SeasonID    string                `json:"season_id"`
	SeasonLabel string                `json:"season_label"`
	Tournaments []*waterpolo.Category `json:"tournaments"`
	RefreshedAt string                `json:"refreshed_at"`
}

// Store keeps season, tournament and roster caches as JSON files under a
// single data directory. Rosters live in a rosters/ subdirectory.
type Store struct {
	dir     string
	metrics metrics.Metrics
	now     func() time.Time
}

var _ CacheStore = (*Store)(nil)

// New creates the cache directories if needed and returns a store.
func New(dir string, m metrics.Metrics) (*Store, error) {
	if err := os.MkdirAll(filepath.Join(dir, "rosters"), 0o755); err != nil {
		return nil, fmt.Errorf("creating cache dir: %w", err)
	}
	return &Store{dir: dir, metrics: m, now: time.Now}, nil
}

func (s *Store) seasonPath(seasonID string) string {
	return filepath.Join(s.dir, seasonID+".json")
}

func (s *Store) tournamentPath(tournamentID string) string {
	return filepath.Join(s.dir, "t_"+tournamentID+".json")
}

func (s *Store) rosterPath(teamID string) string {
	return filepath.Join(s.dir, "rosters", "r_"+teamID+".json")
}

// load decodes a cache file into v. It returns false on a missing or
// corrupt file; a corrupt file is logged and treated as absent so a bad
// write never wedges the pipeline.
func (s *Store) load(path string, v any) (bool, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("reading cache file %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		log.Warn("Discarding corrupt cache file", "path", path, "error", err)
		return false, nil
	}
	return true, nil
}

func (s *Store) save(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding cache file %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing cache file %s: %w", path, err)
	}
	return nil
}

func (s *Store) LoadSeason(seasonID string) (*SeasonRecord, error) {
	path := s.seasonPath(seasonID)
	var rec SeasonRecord
	ok, err := s.load(path, &rec)
	if err != nil {
		return nil, err
	}
	if !ok {
		s.metrics.IncCacheMiss(metrics.TierSeason)
		return nil, nil
	}
	if rec.RefreshedAt == "" {
		// Old records carry no timestamp; fall back to the file mtime.
		if info, err := os.Stat(path); err == nil {
			rec.RefreshedAt = info.ModTime().Format(RefreshedAtLayout)
		}
	}
	s.metrics.IncCacheHit(metrics.TierSeason)
	return &rec, nil
}

func (s *Store) SaveSeason(rec *SeasonRecord) error {
	rec.RefreshedAt = s.now().Format(RefreshedAtLayout)
	return s.save(s.seasonPath(rec.SeasonID), rec)
}

func (s *Store) PromoteSeason(rec *SeasonRecord) error {
	if err := s.SaveSeason(rec); err != nil {
		return err
	}
	return s.CleanupTournamentCaches()
}

func (s *Store) LoadTournament(tournamentID string) (*waterpolo.Category, error) {
	var cat waterpolo.Category
	ok, err := s.load(s.tournamentPath(tournamentID), &cat)
	if err != nil {
		return nil, err
	}
	if !ok {
		s.metrics.IncCacheMiss(metrics.TierTournament)
		return nil, nil
	}
	s.metrics.IncCacheHit(metrics.TierTournament)
	return &cat, nil
}

func (s *Store) SaveTournament(cat *waterpolo.Category) error {
	return s.save(s.tournamentPath(cat.TournamentID), cat)
}

func (s *Store) CleanupTournamentCaches() error {
	paths, err := filepath.Glob(filepath.Join(s.dir, "t_*.json"))
	if err != nil {
		return fmt.Errorf("listing tournament caches: %w", err)
	}
	for _, path := range paths {
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("removing tournament cache %s: %w", path, err)
		}
		log.Debug("Removed tournament cache", "path", path)
	}
	return nil
}

func (s *Store) LoadRoster(teamID string) (waterpolo.Roster, error) {
	var roster waterpolo.Roster
	ok, err := s.load(s.rosterPath(teamID), &roster)
	if err != nil {
		return nil, err
	}
	if !ok {
		s.metrics.IncCacheMiss(metrics.TierRoster)
		return nil, nil
	}
	s.metrics.IncCacheHit(metrics.TierRoster)
	return roster, nil
}

func (s *Store) SaveRoster(teamID string, roster waterpolo.Roster) error {
	return s.save(s.rosterPath(teamID), roster)
}

func (s *Store) RosterAge(teamID string) (time.Duration, bool) {
	info, err := os.Stat(s.rosterPath(teamID))
	if err != nil {
		return 0, false
	}
	return s.now().Sub(info.ModTime()), true
}
