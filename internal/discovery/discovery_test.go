package discovery

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vinner21/water-follow/internal/leverade"
	"github.com/vinner21/water-follow/internal/waterpolo"
)

func TestSeasonsGroupsByFirstSeenOrder(t *testing.T) {
	client := leverade.NewMockClient()
	client.ManagerTournamentsFunc = func(managerID string) ([]waterpolo.Tournament, error) {
		return []waterpolo.Tournament{
			{ID: "1", Name: "LLIGA CADET", SeasonID: "7702", Status: waterpolo.TournamentInProgress},
			{ID: "2", Name: "LLIGA INFANTIL", SeasonID: "7600", Status: waterpolo.TournamentFinished},
			{ID: "3", Name: "COPA ABSOLUT", SeasonID: "7702", Status: waterpolo.TournamentInProgress},
			{ID: "4", Name: "FASE PREVIA", SeasonID: "7702", Status: "registration_open"},
			{ID: "5", Name: "TORNEIG VELL", SeasonID: "", Status: waterpolo.TournamentFinished},
		}, nil
	}

	seasons, err := New(client).Seasons("5")
	require.NoError(t, err)
	require.Len(t, seasons, 3)

	assert.Equal(t, "7702", seasons[0].SeasonID)
	assert.True(t, seasons[0].HasInProgress)
	assert.Len(t, seasons[0].Tournaments, 2, "registration_open tournaments are dropped")

	assert.Equal(t, "7600", seasons[1].SeasonID)
	assert.False(t, seasons[1].HasInProgress)

	assert.Equal(t, UnknownSeasonID, seasons[2].SeasonID)
	assert.Equal(t, UnknownSeasonID, seasons[2].Tournaments[0].SeasonID)

	assert.Equal(t, []string{"5"}, client.ManagerTournamentsCalls)
}

func TestSeasonsPropagatesError(t *testing.T) {
	client := leverade.NewMockClient()
	client.ManagerTournamentsFunc = func(managerID string) ([]waterpolo.Tournament, error) {
		return nil, errors.New("upstream down")
	}

	_, err := New(client).Seasons("5")
	require.Error(t, err)
}

func TestMergeCurrentSeasons(t *testing.T) {
	seasons := []*SeasonDiscovery{
		{SeasonID: "placeholder", HasInProgress: true,
			Tournaments: []waterpolo.Tournament{{ID: "9"}}},
		{SeasonID: "7600", HasInProgress: false,
			Tournaments: []waterpolo.Tournament{{ID: "1"}}},
		{SeasonID: "7702", HasInProgress: true,
			Tournaments: []waterpolo.Tournament{{ID: "2"}, {ID: "3"}}},
	}

	merged := MergeCurrentSeasons(seasons)
	require.Len(t, merged, 2)

	assert.Equal(t, "7600", merged[0].SeasonID)
	assert.Equal(t, "7702", merged[1].SeasonID, "season with most tournaments wins")
	assert.Len(t, merged[1].Tournaments, 3, "placeholder tournaments folded in")
}

func TestMergeCurrentSeasonsTieKeepsFirstSeen(t *testing.T) {
	seasons := []*SeasonDiscovery{
		{SeasonID: "a", HasInProgress: true, Tournaments: []waterpolo.Tournament{{ID: "1"}}},
		{SeasonID: "b", HasInProgress: true, Tournaments: []waterpolo.Tournament{{ID: "2"}}},
	}

	merged := MergeCurrentSeasons(seasons)
	require.Len(t, merged, 1)
	assert.Equal(t, "a", merged[0].SeasonID)
}

func TestMergeCurrentSeasonsNoCurrent(t *testing.T) {
	seasons := []*SeasonDiscovery{
		{SeasonID: "7600", Tournaments: []waterpolo.Tournament{{ID: "1"}}},
	}
	assert.Equal(t, seasons, MergeCurrentSeasons(seasons))
}

func TestClubTournaments(t *testing.T) {
	client := leverade.NewMockClient()
	client.TournamentTeamsFunc = func(tournamentID string) ([]leverade.Team, error) {
		switch tournamentID {
		case "1":
			return []leverade.Team{
				{ID: "10", Name: "CN Ciutat A", ClubID: "77"},
				{ID: "20", Name: "CN Altres", ClubID: "88"},
			}, nil
		case "2":
			return nil, errors.New("timeout")
		case "3":
			return []leverade.Team{{ID: "30", Name: "CN Rival", ClubID: "88"}}, nil
		case "4":
			return []leverade.Team{{ID: "11", Name: "CN Ciutat B", ClubID: "77"}}, nil
		}
		return nil, nil
	}

	tournaments := []waterpolo.Tournament{
		{ID: "1", Name: "LLIGA CADET", Order: 5},
		{ID: "2", Name: "LLIGA FALLIDA", Order: 1},
		{ID: "3", Name: "LLIGA SENSE NOSALTRES", Order: 2},
		{ID: "4", Name: "COPA SENSE ORDRE", Order: 0},
	}

	result := New(client).ClubTournaments(tournaments, "77")
	require.Len(t, result, 2)

	assert.Equal(t, "LLIGA CADET", result[0].Name)
	assert.Equal(t, []waterpolo.OurTeam{{ID: "10", Name: "CN Ciutat A"}}, result[0].OurTeams)
	assert.Equal(t, "COPA SENSE ORDRE", result[1].Name, "zero order sorts last")
}
