package cache

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vinner21/water-follow/internal/metrics"
	"github.com/vinner21/water-follow/internal/waterpolo"
)

func newTestStore(t *testing.T) (*Store, *metrics.Mock) {
	t.Helper()
	m := metrics.NewMock()
	store, err := New(t.TempDir(), m)
	require.NoError(t, err)
	return store, m
}

func TestSeasonRoundTrip(t *testing.T) {
	store, m := newTestStore(t)
	store.now = func() time.Time { return time.Date(2025, 10, 4, 18, 30, 0, 0, time.UTC) }

	rec := &SeasonRecord{
		SeasonID:    "7702",
		SeasonLabel: "2025-26",
		Tournaments: []*waterpolo.Category{
			{TournamentID: "100", TournamentName: "LLIGA CATALANA CADET",
				OurTeamIDs: waterpolo.NewTeamIDSet("10")},
		},
	}
	require.NoError(t, store.SaveSeason(rec))
	assert.Equal(t, "04/10/2025 18:30", rec.RefreshedAt)

	loaded, err := store.LoadSeason("7702")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "2025-26", loaded.SeasonLabel)
	assert.Equal(t, "04/10/2025 18:30", loaded.RefreshedAt)
	require.Len(t, loaded.Tournaments, 1)
	assert.True(t, loaded.Tournaments[0].OurTeamIDs.Has("10"))
	assert.Equal(t, 1, m.CacheHitCounts[metrics.TierSeason])
}

func TestLoadSeasonMiss(t *testing.T) {
	store, m := newTestStore(t)

	rec, err := store.LoadSeason("none")
	require.NoError(t, err)
	assert.Nil(t, rec)
	assert.Equal(t, 1, m.CacheMissCounts[metrics.TierSeason])
}

func TestLoadSeasonCorruptFileIsAMiss(t *testing.T) {
	store, m := newTestStore(t)
	require.NoError(t, os.WriteFile(store.seasonPath("7702"), []byte("{not json"), 0o644))

	rec, err := store.LoadSeason("7702")
	require.NoError(t, err)
	assert.Nil(t, rec)
	assert.Equal(t, 1, m.CacheMissCounts[metrics.TierSeason])
}

func TestLoadSeasonMtimeFallback(t *testing.T) {
	store, _ := newTestStore(t)
	path := store.seasonPath("7600")
	require.NoError(t, os.WriteFile(path, []byte(`{"season_id":"7600","season_label":"2024-25","tournaments":[]}`), 0o644))
	stamp := time.Date(2025, 6, 1, 9, 0, 0, 0, time.Local)
	require.NoError(t, os.Chtimes(path, stamp, stamp))

	rec, err := store.LoadSeason("7600")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "01/06/2025 09:00", rec.RefreshedAt)
}

func TestPromoteSeasonRemovesTournamentCaches(t *testing.T) {
	store, _ := newTestStore(t)
	require.NoError(t, store.SaveTournament(&waterpolo.Category{TournamentID: "100"}))
	require.NoError(t, store.SaveTournament(&waterpolo.Category{TournamentID: "101"}))

	require.NoError(t, store.PromoteSeason(&SeasonRecord{SeasonID: "7600", SeasonLabel: "2024-25"}))

	leftovers, err := filepath.Glob(filepath.Join(store.dir, "t_*.json"))
	require.NoError(t, err)
	assert.Empty(t, leftovers)

	rec, err := store.LoadSeason("7600")
	require.NoError(t, err)
	require.NotNil(t, rec)
}

func TestTournamentRoundTrip(t *testing.T) {
	store, m := newTestStore(t)

	missing, err := store.LoadTournament("100")
	require.NoError(t, err)
	assert.Nil(t, missing)

	cat := &waterpolo.Category{TournamentID: "100", TournamentName: "COPA CATALUNYA ABSOLUT"}
	require.NoError(t, store.SaveTournament(cat))

	loaded, err := store.LoadTournament("100")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "COPA CATALUNYA ABSOLUT", loaded.TournamentName)
	assert.Equal(t, 1, m.CacheMissCounts[metrics.TierTournament])
	assert.Equal(t, 1, m.CacheHitCounts[metrics.TierTournament])
}

func TestRosterRoundTripAndAge(t *testing.T) {
	store, _ := newTestStore(t)

	_, ok := store.RosterAge("10")
	assert.False(t, ok, "no age before a roster is cached")

	roster := waterpolo.Roster{{FirstName: "Marta", LastName: "Vila", Role: "player"}}
	require.NoError(t, store.SaveRoster("10", roster))

	loaded, err := store.LoadRoster("10")
	require.NoError(t, err)
	assert.Equal(t, roster, loaded)

	t.Run("fresh roster", func(t *testing.T) {
		stamp := time.Now().Add(-29 * 24 * time.Hour)
		require.NoError(t, os.Chtimes(store.rosterPath("10"), stamp, stamp))
		age, ok := store.RosterAge("10")
		require.True(t, ok)
		assert.Less(t, age, 30*24*time.Hour)
	})

	t.Run("stale roster", func(t *testing.T) {
		stamp := time.Now().Add(-31 * 24 * time.Hour)
		require.NoError(t, os.Chtimes(store.rosterPath("10"), stamp, stamp))
		age, ok := store.RosterAge("10")
		require.True(t, ok)
		assert.Greater(t, age, 30*24*time.Hour)
	})
}
