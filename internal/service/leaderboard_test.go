package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boxbox-club/boxbox-api/internal/domain"
	"github.com/boxbox-club/boxbox-api/internal/repository"
)

type stubLeaderboardRepos struct {
	races       []domain.Race
	predictions []domain.Prediction
	sprints     []domain.SprintPrediction
	users       []domain.User
}

func (s *stubLeaderboardRepos) FindBySeason(_ context.Context, _ int) ([]domain.Prediction, error) {
	return s.predictions, nil
}

func (s *stubLeaderboardRepos) FindSprintsBySeason(_ context.Context, _ int) ([]domain.SprintPrediction, error) {
	return s.sprints, nil
}

func (s *stubLeaderboardRepos) FindByIDs(_ context.Context, _ []uint) ([]domain.User, error) {
	return s.users, nil
}

type stubRaces struct{ races []domain.Race }

func (s *stubRaces) FindBySeason(_ context.Context, _ int) ([]domain.Race, error) {
	return s.races, nil
}

type noCache struct{}

func (noCache) Get(_ context.Context, _ string, _ time.Time) (string, error) {
	return "", repository.ErrCacheMiss
}

func (noCache) Put(_ context.Context, _, _ string, _ int, _ time.Time) error {
	return nil
}

func completedRace(season, round int) domain.Race {
	return domain.Race{
		ID:      domain.RaceID(season, round),
		Season:  season,
		Round:   round,
		Results: &domain.RaceResults{First: "verstappen", Second: "norris", Third: "leclerc", FastestLap: "hamilton", DriverOfTheDay: "russell"},
	}
}

func scored(userID uint, raceID string, points int) domain.Prediction {
	return domain.Prediction{UserID: userID, RaceID: raceID, Score: domain.ScoredPoints(points)}
}

func pending(userID uint, raceID string) domain.Prediction {
	return domain.Prediction{UserID: userID, RaceID: raceID, Score: domain.PendingScore()}
}

func newTestLeaderboard(repos *stubLeaderboardRepos) *LeaderboardService {
	return NewLeaderboardService(repos, &stubRaces{races: repos.races}, repos, noCache{}, 0)
}

func TestSeason_CompetitionRanking(t *testing.T) {
	r1 := completedRace(2026, 1)

	repos := &stubLeaderboardRepos{
		races: []domain.Race{r1},
		predictions: []domain.Prediction{
			scored(1, r1.ID, 10),
			scored(2, r1.ID, 10),
			scored(3, r1.ID, 8),
		},
		users: []domain.User{
			{ID: 1, Name: "Ayrton"},
			{ID: 2, Name: "Niki"},
			{ID: 3, Name: "Jim"},
		},
	}

	standings, err := newTestLeaderboard(repos).Season(context.Background(), 2026)
	require.NoError(t, err)
	require.Len(t, standings, 3)

	// Ties share the rank; the next distinct score skips it.
	assert.Equal(t, 1, standings[0].Rank)
	assert.Equal(t, 1, standings[1].Rank)
	assert.Equal(t, 3, standings[2].Rank)
	assert.Equal(t, "Ayrton", standings[0].UserName)
	assert.Equal(t, "Niki", standings[1].UserName)
	assert.Equal(t, "Jim", standings[2].UserName)
}

func TestSeason_PendingPredictionsExcluded(t *testing.T) {
	r1 := completedRace(2026, 1)
	r2 := domain.Race{ID: domain.RaceID(2026, 2), Season: 2026, Round: 2} // not yet scored

	repos := &stubLeaderboardRepos{
		races: []domain.Race{r1, r2},
		predictions: []domain.Prediction{
			scored(1, r1.ID, 4),
			pending(1, r2.ID),
		},
		users: []domain.User{{ID: 1, Name: "Ayrton"}},
	}

	standings, err := newTestLeaderboard(repos).Season(context.Background(), 2026)
	require.NoError(t, err)
	require.Len(t, standings, 1)

	// The pending prediction neither adds points nor counts as scored.
	assert.Equal(t, 4, standings[0].Points)
	assert.Equal(t, 1, standings[0].ScoredCount)
}

func TestSeason_ZeroScoresDeterministicOrder(t *testing.T) {
	r1 := completedRace(2026, 1)

	repos := &stubLeaderboardRepos{
		races: []domain.Race{r1},
		predictions: []domain.Prediction{
			scored(3, r1.ID, 0),
			scored(1, r1.ID, 0),
			scored(2, r1.ID, 0),
		},
		users: []domain.User{{ID: 1}, {ID: 2}, {ID: 3}},
	}

	svc := newTestLeaderboard(repos)

	first, err := svc.Season(context.Background(), 2026)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		again, err := svc.Season(context.Background(), 2026)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}

	// Everyone shares rank 1, ordered by user ID.
	assert.Equal(t, uint(1), first[0].UserID)
	assert.Equal(t, uint(2), first[1].UserID)
	assert.Equal(t, uint(3), first[2].UserID)
	for _, st := range first {
		assert.Equal(t, 1, st.Rank)
	}
}

func TestSeason_PreviousRankFromPriorRounds(t *testing.T) {
	r1 := completedRace(2026, 1)
	r2 := completedRace(2026, 2)

	// After round 1: user 1 leads 5-3. Round 2 flips it: totals 6-9.
	repos := &stubLeaderboardRepos{
		races: []domain.Race{r1, r2},
		predictions: []domain.Prediction{
			scored(1, r1.ID, 5),
			scored(2, r1.ID, 3),
			scored(1, r2.ID, 1),
			scored(2, r2.ID, 6),
		},
		users: []domain.User{{ID: 1, Name: "Ayrton"}, {ID: 2, Name: "Niki"}},
	}

	standings, err := newTestLeaderboard(repos).Season(context.Background(), 2026)
	require.NoError(t, err)
	require.Len(t, standings, 2)

	assert.Equal(t, uint(2), standings[0].UserID)
	assert.Equal(t, 1, standings[0].Rank)
	assert.Equal(t, 2, standings[0].PreviousRank)

	assert.Equal(t, uint(1), standings[1].UserID)
	assert.Equal(t, 2, standings[1].Rank)
	assert.Equal(t, 1, standings[1].PreviousRank)
}

func TestSeason_SprintScoresCountTowardsTotals(t *testing.T) {
	r1 := completedRace(2026, 1)

	repos := &stubLeaderboardRepos{
		races:       []domain.Race{r1},
		predictions: []domain.Prediction{scored(1, r1.ID, 2)},
		sprints: []domain.SprintPrediction{
			{UserID: 1, SprintRaceID: r1.ID, Score: domain.ScoredPoints(3)},
		},
		users: []domain.User{{ID: 1}},
	}

	standings, err := newTestLeaderboard(repos).Season(context.Background(), 2026)
	require.NoError(t, err)
	require.Len(t, standings, 1)

	assert.Equal(t, 5, standings[0].Points)
	assert.Equal(t, 2, standings[0].ScoredCount)
}

func TestSeason_EmptySeason(t *testing.T) {
	standings, err := newTestLeaderboard(&stubLeaderboardRepos{}).Season(context.Background(), 2026)
	require.NoError(t, err)
	assert.Empty(t, standings)
}
