package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boxbox-club/boxbox-api/internal/domain"
	"github.com/boxbox-club/boxbox-api/internal/repository"
)

type stubRaceRepo struct {
	races   map[string]domain.Race
	sprints map[string]domain.SprintRace
}

func newStubRaceRepo(races ...domain.Race) *stubRaceRepo {
	repo := &stubRaceRepo{
		races:   make(map[string]domain.Race),
		sprints: make(map[string]domain.SprintRace),
	}
	for _, r := range races {
		repo.races[r.ID] = r
	}

	return repo
}

func (s *stubRaceRepo) Create(_ context.Context, race domain.Race) (domain.Race, error) {
	s.races[race.ID] = race
	return race, nil
}

func (s *stubRaceRepo) FindByID(_ context.Context, id string) (domain.Race, error) {
	race, ok := s.races[id]
	if !ok {
		return domain.Race{}, repository.ErrRaceNotFound
	}

	return race, nil
}

func (s *stubRaceRepo) FindBySeason(_ context.Context, season int) ([]domain.Race, error) {
	var races []domain.Race
	for _, r := range s.races {
		if r.Season == season {
			races = append(races, r)
		}
	}

	return races, nil
}

func (s *stubRaceRepo) SetResults(_ context.Context, id string, results domain.RaceResults) error {
	race, ok := s.races[id]
	if !ok {
		return repository.ErrRaceNotFound
	}

	race.Results = &results
	s.races[id] = race

	return nil
}

func (s *stubRaceRepo) Delete(_ context.Context, id string) error {
	delete(s.races, id)
	return nil
}

func (s *stubRaceRepo) CreateSprint(_ context.Context, race domain.SprintRace) (domain.SprintRace, error) {
	s.sprints[race.ID] = race
	return race, nil
}

func (s *stubRaceRepo) FindSprintByID(_ context.Context, id string) (domain.SprintRace, error) {
	race, ok := s.sprints[id]
	if !ok {
		return domain.SprintRace{}, repository.ErrRaceNotFound
	}

	return race, nil
}

func (s *stubRaceRepo) FindSprintsBySeason(_ context.Context, season int) ([]domain.SprintRace, error) {
	var races []domain.SprintRace
	for _, r := range s.sprints {
		if r.Season == season {
			races = append(races, r)
		}
	}

	return races, nil
}

func (s *stubRaceRepo) SetSprintResults(_ context.Context, id string, results domain.SprintResults) error {
	race, ok := s.sprints[id]
	if !ok {
		return repository.ErrRaceNotFound
	}

	race.Results = &results
	s.sprints[id] = race

	return nil
}

func (s *stubRaceRepo) DeleteSprint(_ context.Context, id string) error {
	delete(s.sprints, id)
	return nil
}

// stubScoring records the scores a scoring pass assigns, keyed by the
// guesses it was handed, so re-running a pass can be observed.
type stubScoring struct {
	guesses       []domain.PredictionGuess
	sprintGuesses []domain.SprintGuess

	scores       map[uint]int
	sprintScores map[uint]int
	passes       int
}

func (s *stubScoring) ScoreRace(_ context.Context, _ string, score func(domain.PredictionGuess) int) error {
	s.passes++
	s.scores = make(map[uint]int)
	for i, guess := range s.guesses {
		s.scores[uint(i)] = score(guess)
	}

	return nil
}

func (s *stubScoring) ScoreSprintRace(_ context.Context, _ string, score func(domain.SprintGuess) int) error {
	s.passes++
	s.sprintScores = make(map[uint]int)
	for i, guess := range s.sprintGuesses {
		s.sprintScores[uint(i)] = score(guess)
	}

	return nil
}

func TestSubmitResults_ScoresAllPredictions(t *testing.T) {
	repo := newStubRaceRepo(domain.Race{ID: "2026-1", Season: 2026, Round: 1})
	scoring := &stubScoring{
		guesses: []domain.PredictionGuess{
			{First: "verstappen", Second: "norris", Third: "leclerc", FastestLap: "hamilton", DriverOfTheDay: "russell"},
			{First: "verstappen", Second: "leclerc", Third: "norris", FastestLap: "norris", DriverOfTheDay: "norris"},
		},
	}
	svc := NewRaceService(repo, scoring, allDriversExist{}, domain.DefaultPointsTable())

	err := svc.SubmitResults(context.Background(), "2026-1", domain.RaceResults{
		First: "verstappen", Second: "norris", Third: "leclerc",
		FastestLap: "hamilton", DriverOfTheDay: "russell",
	})

	require.NoError(t, err)

	race, err := repo.FindByID(context.Background(), "2026-1")
	require.NoError(t, err)
	assert.True(t, race.Completed())

	assert.Equal(t, domain.DefaultPointsTable().Max(), scoring.scores[0])
	assert.Equal(t, 1, scoring.scores[1])
}

func TestSubmitResults_RejectsIncompleteResults(t *testing.T) {
	repo := newStubRaceRepo(domain.Race{ID: "2026-1", Season: 2026, Round: 1})
	scoring := &stubScoring{}
	svc := NewRaceService(repo, scoring, allDriversExist{}, domain.DefaultPointsTable())

	err := svc.SubmitResults(context.Background(), "2026-1", domain.RaceResults{
		First: "verstappen", Second: "norris", Third: "leclerc",
	})

	assert.ErrorIs(t, err, ErrIncompleteResults)
	assert.Zero(t, scoring.passes)

	race, findErr := repo.FindByID(context.Background(), "2026-1")
	require.NoError(t, findErr)
	assert.False(t, race.Completed())
}

func TestSubmitResults_RejectsUnknownDriver(t *testing.T) {
	repo := newStubRaceRepo(domain.Race{ID: "2026-1", Season: 2026, Round: 1})
	svc := NewRaceService(repo, &stubScoring{}, noDriversExist{}, domain.DefaultPointsTable())

	err := svc.SubmitResults(context.Background(), "2026-1", domain.RaceResults{
		First: "verstappen", Second: "norris", Third: "leclerc",
		FastestLap: "hamilton", DriverOfTheDay: "russell",
	})

	assert.ErrorIs(t, err, ErrUnknownResultDriver)
}

func TestSubmitResults_RaceNotFound(t *testing.T) {
	repo := newStubRaceRepo()
	svc := NewRaceService(repo, &stubScoring{}, allDriversExist{}, domain.DefaultPointsTable())

	err := svc.SubmitResults(context.Background(), "2026-99", domain.RaceResults{
		First: "verstappen", Second: "norris", Third: "leclerc",
		FastestLap: "hamilton", DriverOfTheDay: "russell",
	})

	assert.ErrorIs(t, err, ErrRaceNotFound)
}

func TestScoreRace_RequiresCompletedRace(t *testing.T) {
	repo := newStubRaceRepo(domain.Race{ID: "2026-1", Season: 2026, Round: 1})
	svc := NewRaceService(repo, &stubScoring{}, allDriversExist{}, domain.DefaultPointsTable())

	err := svc.ScoreRace(context.Background(), "2026-1")

	assert.ErrorIs(t, err, ErrRaceNotCompleted)
}

func TestSubmitResults_RescoringIsIdempotent(t *testing.T) {
	repo := newStubRaceRepo(domain.Race{ID: "2026-1", Season: 2026, Round: 1})
	scoring := &stubScoring{
		guesses: []domain.PredictionGuess{
			{First: "verstappen", Second: "norris", Third: "leclerc", FastestLap: "hamilton", DriverOfTheDay: "russell"},
		},
	}
	svc := NewRaceService(repo, scoring, allDriversExist{}, domain.DefaultPointsTable())

	results := domain.RaceResults{
		First: "verstappen", Second: "norris", Third: "leclerc",
		FastestLap: "hamilton", DriverOfTheDay: "russell",
	}

	require.NoError(t, svc.SubmitResults(context.Background(), "2026-1", results))
	first := scoring.scores[0]

	// Corrected results overwrite the previous scoring pass.
	require.NoError(t, svc.SubmitResults(context.Background(), "2026-1", results))

	assert.Equal(t, 2, scoring.passes)
	assert.Equal(t, first, scoring.scores[0])
}

func TestSubmitSprintResults_ScoresSprintPredictions(t *testing.T) {
	repo := newStubRaceRepo()
	_, err := repo.CreateSprint(context.Background(), domain.SprintRace{ID: "2026-2", Season: 2026, Round: 2})
	require.NoError(t, err)

	scoring := &stubScoring{
		sprintGuesses: []domain.SprintGuess{
			{First: "verstappen", Second: "norris", Third: "leclerc"},
			{First: "leclerc", Second: "norris", Third: "verstappen"},
		},
	}
	svc := NewRaceService(repo, scoring, allDriversExist{}, domain.DefaultPointsTable())

	err = svc.SubmitSprintResults(context.Background(), "2026-2", domain.SprintResults{
		First: "verstappen", Second: "norris", Third: "leclerc",
	})

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultPointsTable().SprintMax(), scoring.sprintScores[0])
	assert.Equal(t, 1, scoring.sprintScores[1])
}

func TestSubmitSprintResults_RejectsIncompleteResults(t *testing.T) {
	repo := newStubRaceRepo()
	_, err := repo.CreateSprint(context.Background(), domain.SprintRace{ID: "2026-2", Season: 2026, Round: 2})
	require.NoError(t, err)

	svc := NewRaceService(repo, &stubScoring{}, allDriversExist{}, domain.DefaultPointsTable())

	err = svc.SubmitSprintResults(context.Background(), "2026-2", domain.SprintResults{First: "verstappen"})

	assert.ErrorIs(t, err, ErrIncompleteResults)
}

func TestScoreSprintRace_RequiresCompletedRace(t *testing.T) {
	repo := newStubRaceRepo()
	_, err := repo.CreateSprint(context.Background(), domain.SprintRace{ID: "2026-2", Season: 2026, Round: 2})
	require.NoError(t, err)

	svc := NewRaceService(repo, &stubScoring{}, allDriversExist{}, domain.DefaultPointsTable())

	err = svc.ScoreSprintRace(context.Background(), "2026-2")

	assert.ErrorIs(t, err, ErrRaceNotCompleted)
}
