package assembler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vinner21/water-follow/internal/cache"
	"github.com/vinner21/water-follow/internal/collector"
	"github.com/vinner21/water-follow/internal/discovery"
	"github.com/vinner21/water-follow/internal/leverade"
	"github.com/vinner21/water-follow/internal/metrics"
	"github.com/vinner21/water-follow/internal/waterpolo"
)

// fixtureClient wires a manager with two seasons: the current one holds
// tournament 100 (our team 10 beats team 20 at home 5-3), and a finished
// one holds tournament 50 with our team 11.
func fixtureClient() *leverade.MockClient {
	client := leverade.NewMockClient()
	client.ManagerTournamentsFunc = func(managerID string) ([]waterpolo.Tournament, error) {
		return []waterpolo.Tournament{
			{ID: "100", Name: "LLIGA CATALANA CADET", Order: 1,
				SeasonID: "7702", Status: waterpolo.TournamentInProgress},
			{ID: "50", Name: "LLIGA CATALANA INFANTIL", Order: 1,
				SeasonID: "7600", Status: waterpolo.TournamentFinished},
		}, nil
	}
	client.TournamentTeamsFunc = func(tournamentID string) ([]leverade.Team, error) {
		if tournamentID == "100" {
			return []leverade.Team{
				{ID: "10", Name: "CN Ciutat A", ClubID: "77"},
				{ID: "20", Name: "CN Altres", ClubID: "88"},
			}, nil
		}
		return []leverade.Team{{ID: "11", Name: "CN Ciutat B", ClubID: "77"}}, nil
	}
	client.TournamentGroupsFunc = func(tournamentID string) ([]leverade.GroupInfo, error) {
		if tournamentID == "100" {
			return []leverade.GroupInfo{{ID: "g1", Name: "Grup A", Order: 1}}, nil
		}
		return []leverade.GroupInfo{{ID: "g5", Name: "Grup Unic", Order: 1}}, nil
	}
	client.GroupStandingsFunc = func(groupID string) ([]waterpolo.StandingRow, error) {
		if groupID == "g1" {
			return []waterpolo.StandingRow{
				{TeamID: "10", TeamName: "CN Ciutat A", Position: 1,
					Points: 10, Played: 5, Won: 3, Drawn: 1, Lost: 1},
				{TeamID: "20", TeamName: "CN Altres", Position: 2, Points: 7, Played: 5},
			}, nil
		}
		return []waterpolo.StandingRow{{TeamID: "11", TeamName: "CN Ciutat B", Position: 1}}, nil
	}
	client.GroupRoundsFunc = func(groupID string) (*leverade.GroupDetail, error) {
		return &leverade.GroupDetail{
			ID:     groupID,
			Rounds: []leverade.Round{{ID: "r_" + groupID, Name: "Jornada 1", Order: 1}},
		}, nil
	}
	client.RoundMatchesFunc = func(roundID string) ([]*waterpolo.Match, error) {
		if roundID == "r_g1" {
			return []*waterpolo.Match{
				{ID: "m1", Date: "2025-10-04 12:30:00", Finished: true,
					HomeTeam: "10", AwayTeam: "20",
					Results: []waterpolo.MatchResult{
						{TeamID: "10", Value: 5, Score: 1},
						{TeamID: "20", Value: 3, Score: 0},
					}},
			}, nil
		}
		return []*waterpolo.Match{
			{ID: "m5", Date: "2024-11-10 10:00:00", Finished: true,
				HomeTeam: "11", AwayTeam: "11x"},
		}, nil
	}
	client.TeamNameFunc = func(teamID string) (string, error) {
		return "CN Forani", nil
	}
	return client
}

func newAssembler(t *testing.T, client leverade.Client, dir string) (*Assembler, cache.CacheStore) {
	t.Helper()
	m := metrics.NewMock()
	store, err := cache.New(dir, m)
	require.NoError(t, err)
	asm := New(discovery.New(client), collector.New(client, store, m), store)
	asm.now = func() time.Time { return time.Date(2025, 11, 2, 9, 15, 0, 0, time.UTC) }
	return asm, store
}

func TestAssemble(t *testing.T) {
	client := fixtureClient()
	asm, _ := newAssembler(t, client, t.TempDir())

	seasons, err := asm.Assemble("5", "77", Options{})
	require.NoError(t, err)
	require.Len(t, seasons, 2)

	current := seasons[0]
	assert.Equal(t, waterpolo.StatusCurrent, current.Status)
	assert.Equal(t, "2025-26", current.Label)
	assert.Equal(t, 2025, current.StartYear)
	assert.Equal(t, "02/11/2025 09:15", current.RefreshedAt)
	assert.Equal(t, "2025-11-02", current.AgeRefDate, "current season ages against today")

	require.Len(t, current.Categories, 1)
	cat := current.Categories[0]
	assert.Equal(t, "LLIGA CATALANA CADET", cat.TournamentName)
	require.Len(t, cat.Groups, 1)
	assert.Equal(t, 1, cat.Groups[0].Standings[0].Position)
	assert.Equal(t, 10, cat.Groups[0].Standings[0].Points)
	require.Len(t, cat.Matches, 1)
	assert.Equal(t, waterpolo.OutcomeWin, cat.Matches[0].Outcome(cat.OurTeamIDs))

	finished := seasons[1]
	assert.Equal(t, waterpolo.StatusFinished, finished.Status)
	assert.Equal(t, "2024-25", finished.Label)
	assert.Equal(t, "2025-12-31", finished.AgeRefDate, "closed season ages against its end of cycle")
}

func TestAssembleSecondRunServesFinishedSeasonFromCache(t *testing.T) {
	dir := t.TempDir()

	first := fixtureClient()
	asm, _ := newAssembler(t, first, dir)
	_, err := asm.Assemble("5", "77", Options{})
	require.NoError(t, err)

	second := fixtureClient()
	asm2, _ := newAssembler(t, second, dir)
	seasons, err := asm2.Assemble("5", "77", Options{})
	require.NoError(t, err)
	require.Len(t, seasons, 2)

	assert.Equal(t, []string{"100"}, second.TournamentTeamsCalls,
		"the finished season never reaches the API again")
	assert.Equal(t, "2024-25", seasons[1].Label)
	assert.Equal(t, 2024, seasons[1].StartYear)
	assert.NotEmpty(t, seasons[1].RefreshedAt)
}

func TestAssembleCachesFinishedTournamentInCurrentSeason(t *testing.T) {
	client := fixtureClient()
	client.ManagerTournamentsFunc = func(managerID string) ([]waterpolo.Tournament, error) {
		return []waterpolo.Tournament{
			{ID: "100", Name: "LLIGA CATALANA CADET", Order: 1,
				SeasonID: "7702", Status: waterpolo.TournamentInProgress},
			{ID: "50", Name: "COPA TARDOR", Order: 2,
				SeasonID: "7702", Status: waterpolo.TournamentFinished},
		}, nil
	}
	asm, store := newAssembler(t, client, t.TempDir())

	seasons, err := asm.Assemble("5", "77", Options{})
	require.NoError(t, err)
	require.Len(t, seasons, 1)
	assert.Len(t, seasons[0].Categories, 2)

	cached, err := store.LoadTournament("50")
	require.NoError(t, err)
	require.NotNil(t, cached, "finished tournament inside an open season is cached on its own")
	assert.Equal(t, "COPA TARDOR", cached.TournamentName)
}

func TestAssembleNoClubData(t *testing.T) {
	client := fixtureClient()
	client.TournamentTeamsFunc = func(tournamentID string) ([]leverade.Team, error) {
		return []leverade.Team{{ID: "20", Name: "CN Altres", ClubID: "88"}}, nil
	}
	asm, _ := newAssembler(t, client, t.TempDir())

	_, err := asm.Assemble("5", "77", Options{})
	assert.ErrorIs(t, err, ErrNoSeasons)
}

func TestAssembleDropsTournamentWithoutGroups(t *testing.T) {
	client := fixtureClient()
	client.TournamentGroupsFunc = func(tournamentID string) ([]leverade.GroupInfo, error) {
		if tournamentID == "100" {
			return nil, nil
		}
		return []leverade.GroupInfo{{ID: "g5", Name: "Grup Unic", Order: 1}}, nil
	}
	asm, _ := newAssembler(t, client, t.TempDir())

	seasons, err := asm.Assemble("5", "77", Options{})
	require.NoError(t, err)
	require.Len(t, seasons, 1, "only the finished season has groups")
	assert.Equal(t, "2024-25", seasons[0].Label)
}

func TestDedupeByLabel(t *testing.T) {
	bigger := &waterpolo.Season{ID: "a", Label: "2024-25", Status: waterpolo.StatusFinished,
		Categories: []*waterpolo.Category{{TournamentID: "1"}, {TournamentID: "2"}}}
	smaller := &waterpolo.Season{ID: "b", Label: "2024-25", Status: waterpolo.StatusCurrent,
		Categories: []*waterpolo.Category{{TournamentID: "3"}}}
	other := &waterpolo.Season{ID: "c", Label: "2023-24",
		Categories: []*waterpolo.Category{{TournamentID: "4"}}}

	result := dedupeByLabel([]*waterpolo.Season{bigger, smaller, other})
	require.Len(t, result, 2)

	merged := result[0]
	assert.Equal(t, "a", merged.ID, "the entry with more categories keeps its identity")
	assert.Len(t, merged.Categories, 3)
	assert.Equal(t, waterpolo.StatusCurrent, merged.Status, "current status survives the merge")
	assert.Equal(t, "c", result[1].ID)
}

func TestDedupeByLabelLaterEntryBigger(t *testing.T) {
	smaller := &waterpolo.Season{ID: "a", Label: "2024-25", Status: waterpolo.StatusCurrent,
		Categories: []*waterpolo.Category{{TournamentID: "1"}}}
	bigger := &waterpolo.Season{ID: "b", Label: "2024-25", Status: waterpolo.StatusFinished,
		Categories: []*waterpolo.Category{{TournamentID: "2"}, {TournamentID: "3"}}}

	result := dedupeByLabel([]*waterpolo.Season{smaller, bigger})
	require.Len(t, result, 1)
	assert.Equal(t, "b", result[0].ID)
	assert.Len(t, result[0].Categories, 3)
	assert.Equal(t, waterpolo.StatusCurrent, result[0].Status)
}

func TestDedupeByLabelIdempotent(t *testing.T) {
	seasons := []*waterpolo.Season{
		{ID: "a", Label: "2024-25", Categories: []*waterpolo.Category{{TournamentID: "1"}}},
		{ID: "b", Label: "2024-25", Categories: []*waterpolo.Category{{TournamentID: "2"}}},
		{ID: "c", Label: "2023-24", Categories: []*waterpolo.Category{{TournamentID: "3"}}},
	}

	once := dedupeByLabel(seasons)
	require.Len(t, once, 2)
	assert.Len(t, once[0].Categories, 2)

	twice := dedupeByLabel(once)
	assert.Equal(t, once, twice, "deduplicating an already clean set changes nothing")
}

func TestSortSeasons(t *testing.T) {
	seasons := []*waterpolo.Season{
		{ID: "old", Label: "2022-23", Status: waterpolo.StatusFinished},
		{ID: "cur", Label: "2025-26", Status: waterpolo.StatusCurrent},
		{ID: "last", Label: "2024-25", Status: waterpolo.StatusFinished},
	}
	sortSeasons(seasons)

	assert.Equal(t, "cur", seasons[0].ID)
	assert.Equal(t, "last", seasons[1].ID)
	assert.Equal(t, "old", seasons[2].ID)
}
