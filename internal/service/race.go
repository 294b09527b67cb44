package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/boxbox-club/boxbox-api/internal/domain"
	"github.com/boxbox-club/boxbox-api/internal/repository"
)

var (
	ErrRaceNotFound        = repository.ErrRaceNotFound
	ErrIncompleteResults   = errors.New("results must cover every category")
	ErrUnknownResultDriver = errors.New("results reference an unknown driver")
)

type RaceRepository interface {
	Create(ctx context.Context, race domain.Race) (domain.Race, error)
	FindByID(ctx context.Context, id string) (domain.Race, error)
	FindBySeason(ctx context.Context, season int) ([]domain.Race, error)
	SetResults(ctx context.Context, id string, results domain.RaceResults) error
	Delete(ctx context.Context, id string) error
	CreateSprint(ctx context.Context, race domain.SprintRace) (domain.SprintRace, error)
	FindSprintByID(ctx context.Context, id string) (domain.SprintRace, error)
	FindSprintsBySeason(ctx context.Context, season int) ([]domain.SprintRace, error)
	SetSprintResults(ctx context.Context, id string, results domain.SprintResults) error
	DeleteSprint(ctx context.Context, id string) error
}

type RaceScoringRepository interface {
	ScoreRace(ctx context.Context, raceID string, score func(domain.PredictionGuess) int) error
	ScoreSprintRace(ctx context.Context, raceID string, score func(domain.SprintGuess) int) error
}

// RaceService manages the race calendar and the completed transition:
// results land, the race flips to completed, and every prediction on it
// is scored in the same call.
type RaceService struct {
	repo        RaceRepository
	predictions RaceScoringRepository
	drivers     DriverChecker
	points      domain.PointsTable
}

func NewRaceService(repo RaceRepository, predictions RaceScoringRepository, drivers DriverChecker, points domain.PointsTable) *RaceService {
	return &RaceService{
		repo:        repo,
		predictions: predictions,
		drivers:     drivers,
		points:      points,
	}
}

func (s *RaceService) Create(ctx context.Context, race domain.Race) (domain.Race, error) {
	created, err := s.repo.Create(ctx, race)
	if err != nil {
		return domain.Race{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *RaceService) Get(ctx context.Context, id string) (domain.Race, error) {
	race, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Race{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return race, nil
}

func (s *RaceService) ListSeason(ctx context.Context, season int) ([]domain.Race, error) {
	races, err := s.repo.FindBySeason(ctx, season)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindBySeason -> %w", err)
	}

	return races, nil
}

func (s *RaceService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}

// SubmitResults stores final results, flips the race to completed and
// scores its predictions. Results must cover every category; partial
// result sets are rejected so a race is never half final. Re-submitting
// corrected results re-runs scoring idempotently.
func (s *RaceService) SubmitResults(ctx context.Context, raceID string, results domain.RaceResults) error {
	if !results.Complete() {
		return ErrIncompleteResults
	}

	if err := s.checkResultDrivers(ctx, []string{
		results.First, results.Second, results.Third, results.FastestLap, results.DriverOfTheDay,
	}); err != nil {
		return err
	}

	if _, err := s.repo.FindByID(ctx, raceID); err != nil {
		return fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if err := s.repo.SetResults(ctx, raceID, results); err != nil {
		return fmt.Errorf("s.repo.SetResults -> %w", err)
	}

	if err := s.ScoreRace(ctx, raceID); err != nil {
		return err
	}

	zap.L().Info("race results finalized", zap.String("race", raceID))

	return nil
}

// ScoreRace recomputes the score of every prediction on a completed
// race. Calling it before results are final breaks the contract and
// returns ErrRaceNotCompleted.
func (s *RaceService) ScoreRace(ctx context.Context, raceID string) error {
	race, err := s.repo.FindByID(ctx, raceID)
	if err != nil {
		return fmt.Errorf("s.repo.FindByID -> %w", err)
	}
	if !race.Completed() {
		return ErrRaceNotCompleted
	}

	results := *race.Results
	err = s.predictions.ScoreRace(ctx, raceID, func(guess domain.PredictionGuess) int {
		return ScoreGuess(guess, results, s.points)
	})
	if err != nil {
		return fmt.Errorf("s.predictions.ScoreRace -> %w", err)
	}

	return nil
}

func (s *RaceService) CreateSprint(ctx context.Context, race domain.SprintRace) (domain.SprintRace, error) {
	created, err := s.repo.CreateSprint(ctx, race)
	if err != nil {
		return domain.SprintRace{}, fmt.Errorf("s.repo.CreateSprint -> %w", err)
	}

	return created, nil
}

func (s *RaceService) GetSprint(ctx context.Context, id string) (domain.SprintRace, error) {
	race, err := s.repo.FindSprintByID(ctx, id)
	if err != nil {
		return domain.SprintRace{}, fmt.Errorf("s.repo.FindSprintByID -> %w", err)
	}

	return race, nil
}

func (s *RaceService) ListSprintSeason(ctx context.Context, season int) ([]domain.SprintRace, error) {
	races, err := s.repo.FindSprintsBySeason(ctx, season)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindSprintsBySeason -> %w", err)
	}

	return races, nil
}

func (s *RaceService) DeleteSprint(ctx context.Context, id string) error {
	if err := s.repo.DeleteSprint(ctx, id); err != nil {
		return fmt.Errorf("s.repo.DeleteSprint -> %w", err)
	}

	return nil
}

func (s *RaceService) SubmitSprintResults(ctx context.Context, raceID string, results domain.SprintResults) error {
	if !results.Complete() {
		return ErrIncompleteResults
	}

	if err := s.checkResultDrivers(ctx, []string{results.First, results.Second, results.Third}); err != nil {
		return err
	}

	if _, err := s.repo.FindSprintByID(ctx, raceID); err != nil {
		return fmt.Errorf("s.repo.FindSprintByID -> %w", err)
	}

	if err := s.repo.SetSprintResults(ctx, raceID, results); err != nil {
		return fmt.Errorf("s.repo.SetSprintResults -> %w", err)
	}

	if err := s.ScoreSprintRace(ctx, raceID); err != nil {
		return err
	}

	zap.L().Info("sprint results finalized", zap.String("race", raceID))

	return nil
}

func (s *RaceService) ScoreSprintRace(ctx context.Context, raceID string) error {
	race, err := s.repo.FindSprintByID(ctx, raceID)
	if err != nil {
		return fmt.Errorf("s.repo.FindSprintByID -> %w", err)
	}
	if !race.Completed() {
		return ErrRaceNotCompleted
	}

	results := *race.Results
	err = s.predictions.ScoreSprintRace(ctx, raceID, func(guess domain.SprintGuess) int {
		return ScoreSprintGuess(guess, results, s.points)
	})
	if err != nil {
		return fmt.Errorf("s.predictions.ScoreSprintRace -> %w", err)
	}

	return nil
}

func (s *RaceService) checkResultDrivers(ctx context.Context, codes []string) error {
	ok, err := s.drivers.AllExist(ctx, codes)
	if err != nil {
		return fmt.Errorf("s.drivers.AllExist -> %w", err)
	}
	if !ok {
		return ErrUnknownResultDriver
	}

	return nil
}
