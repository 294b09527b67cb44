package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/boxbox-club/boxbox-api/internal/domain"
	"github.com/boxbox-club/boxbox-api/internal/repository"
)

var (
	ErrRaceLocked          = errors.New("race is locked for predictions")
	ErrAlreadyPredicted    = errors.New("prediction already submitted for this race")
	ErrPredictionNotFound  = repository.ErrPredictionNotFound
	ErrInvalidGuess        = errors.New("invalid guess")
	ErrUnknownDriver       = fmt.Errorf("%w: unknown driver", ErrInvalidGuess)
	ErrDuplicatePodiumPick = fmt.Errorf("%w: same driver in more than one podium slot", ErrInvalidGuess)
	ErrIncompleteGuess     = fmt.Errorf("%w: every category must name a driver", ErrInvalidGuess)
)

// DefaultLockBefore is how close to lights-out predictions close when
// no threshold is configured.
const DefaultLockBefore = 5 * time.Minute

type PredictionRepository interface {
	Create(ctx context.Context, prediction domain.Prediction) (domain.Prediction, error)
	FindByUserAndRace(ctx context.Context, userID uint, raceID string) (domain.Prediction, error)
	UpdateGuess(ctx context.Context, prediction domain.Prediction) (domain.Prediction, error)
	CreateSprint(ctx context.Context, prediction domain.SprintPrediction) (domain.SprintPrediction, error)
	FindSprintByUserAndRace(ctx context.Context, userID uint, raceID string) (domain.SprintPrediction, error)
	UpdateSprintGuess(ctx context.Context, prediction domain.SprintPrediction) (domain.SprintPrediction, error)
}

type PredictionRaceRepository interface {
	FindByID(ctx context.Context, id string) (domain.Race, error)
	FindSprintByID(ctx context.Context, id string) (domain.SprintRace, error)
}

type DriverChecker interface {
	AllExist(ctx context.Context, codes []string) (bool, error)
}

// PredictionService is the submission gate: it owns the lock cutoff,
// guess validation and the create-once rule. Revisions go through the
// explicit Revise methods, never through Submit.
type PredictionService struct {
	repo       PredictionRepository
	races      PredictionRaceRepository
	drivers    DriverChecker
	lockBefore time.Duration

	now func() time.Time
}

func NewPredictionService(repo PredictionRepository, races PredictionRaceRepository, drivers DriverChecker, lockBefore time.Duration) *PredictionService {
	if lockBefore <= 0 {
		lockBefore = DefaultLockBefore
	}

	return &PredictionService{
		repo:       repo,
		races:      races,
		drivers:    drivers,
		lockBefore: lockBefore,
		now:        time.Now,
	}
}

func (s *PredictionService) Submit(ctx context.Context, userID uint, raceID string, guess domain.PredictionGuess) (domain.Prediction, error) {
	race, err := s.races.FindByID(ctx, raceID)
	if err != nil {
		return domain.Prediction{}, fmt.Errorf("s.races.FindByID -> %w", err)
	}

	if err = s.checkOpen(race.Completed(), race.Start); err != nil {
		return domain.Prediction{}, err
	}

	if err = s.validateGuess(ctx, guess.DriverCodes(), domain.GuessCategories, guess.PodiumDistinct()); err != nil {
		return domain.Prediction{}, err
	}

	created, err := s.repo.Create(ctx, domain.Prediction{
		UserID: userID,
		RaceID: raceID,
		Guess:  guess,
	})
	if err != nil {
		if errors.Is(err, repository.ErrPredictionExists) {
			return s.resolveConflict(ctx, userID, raceID, guess)
		}

		return domain.Prediction{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

// resolveConflict distinguishes "this user already predicted" from a
// transient storage conflict with one fresh read before giving up.
func (s *PredictionService) resolveConflict(ctx context.Context, userID uint, raceID string, guess domain.PredictionGuess) (domain.Prediction, error) {
	_, err := s.repo.FindByUserAndRace(ctx, userID, raceID)
	if err == nil {
		return domain.Prediction{}, ErrAlreadyPredicted
	}
	if !errors.Is(err, repository.ErrPredictionNotFound) {
		return domain.Prediction{}, fmt.Errorf("s.repo.FindByUserAndRace -> %w", err)
	}

	// The conflicting row is gone again; retry the insert once.
	created, err := s.repo.Create(ctx, domain.Prediction{UserID: userID, RaceID: raceID, Guess: guess})
	if err != nil {
		if errors.Is(err, repository.ErrPredictionExists) {
			return domain.Prediction{}, ErrAlreadyPredicted
		}

		return domain.Prediction{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

// Revise replaces the guesses of an existing prediction. It is subject
// to the same lock as Submit, and a scored prediction can never be
// revised because its race is necessarily completed.
func (s *PredictionService) Revise(ctx context.Context, userID uint, raceID string, guess domain.PredictionGuess) (domain.Prediction, error) {
	race, err := s.races.FindByID(ctx, raceID)
	if err != nil {
		return domain.Prediction{}, fmt.Errorf("s.races.FindByID -> %w", err)
	}

	if err = s.checkOpen(race.Completed(), race.Start); err != nil {
		return domain.Prediction{}, err
	}

	if err = s.validateGuess(ctx, guess.DriverCodes(), domain.GuessCategories, guess.PodiumDistinct()); err != nil {
		return domain.Prediction{}, err
	}

	updated, err := s.repo.UpdateGuess(ctx, domain.Prediction{
		UserID: userID,
		RaceID: raceID,
		Guess:  guess,
	})
	if err != nil {
		return domain.Prediction{}, fmt.Errorf("s.repo.UpdateGuess -> %w", err)
	}

	return updated, nil
}

func (s *PredictionService) Get(ctx context.Context, userID uint, raceID string) (domain.Prediction, error) {
	prediction, err := s.repo.FindByUserAndRace(ctx, userID, raceID)
	if err != nil {
		return domain.Prediction{}, fmt.Errorf("s.repo.FindByUserAndRace -> %w", err)
	}

	return prediction, nil
}

func (s *PredictionService) SubmitSprint(ctx context.Context, userID uint, raceID string, guess domain.SprintGuess) (domain.SprintPrediction, error) {
	race, err := s.races.FindSprintByID(ctx, raceID)
	if err != nil {
		return domain.SprintPrediction{}, fmt.Errorf("s.races.FindSprintByID -> %w", err)
	}

	if err = s.checkOpen(race.Completed(), race.Start); err != nil {
		return domain.SprintPrediction{}, err
	}

	if err = s.validateGuess(ctx, guess.DriverCodes(), domain.SprintGuessCategories, guess.PodiumDistinct()); err != nil {
		return domain.SprintPrediction{}, err
	}

	created, err := s.repo.CreateSprint(ctx, domain.SprintPrediction{
		UserID:       userID,
		SprintRaceID: raceID,
		Guess:        guess,
	})
	if err != nil {
		if errors.Is(err, repository.ErrPredictionExists) {
			return s.resolveSprintConflict(ctx, userID, raceID, guess)
		}

		return domain.SprintPrediction{}, fmt.Errorf("s.repo.CreateSprint -> %w", err)
	}

	return created, nil
}

// resolveSprintConflict mirrors resolveConflict for sprint predictions.
func (s *PredictionService) resolveSprintConflict(ctx context.Context, userID uint, raceID string, guess domain.SprintGuess) (domain.SprintPrediction, error) {
	_, err := s.repo.FindSprintByUserAndRace(ctx, userID, raceID)
	if err == nil {
		return domain.SprintPrediction{}, ErrAlreadyPredicted
	}
	if !errors.Is(err, repository.ErrPredictionNotFound) {
		return domain.SprintPrediction{}, fmt.Errorf("s.repo.FindSprintByUserAndRace -> %w", err)
	}

	created, err := s.repo.CreateSprint(ctx, domain.SprintPrediction{UserID: userID, SprintRaceID: raceID, Guess: guess})
	if err != nil {
		if errors.Is(err, repository.ErrPredictionExists) {
			return domain.SprintPrediction{}, ErrAlreadyPredicted
		}

		return domain.SprintPrediction{}, fmt.Errorf("s.repo.CreateSprint -> %w", err)
	}

	return created, nil
}

func (s *PredictionService) ReviseSprint(ctx context.Context, userID uint, raceID string, guess domain.SprintGuess) (domain.SprintPrediction, error) {
	race, err := s.races.FindSprintByID(ctx, raceID)
	if err != nil {
		return domain.SprintPrediction{}, fmt.Errorf("s.races.FindSprintByID -> %w", err)
	}

	if err = s.checkOpen(race.Completed(), race.Start); err != nil {
		return domain.SprintPrediction{}, err
	}

	if err = s.validateGuess(ctx, guess.DriverCodes(), domain.SprintGuessCategories, guess.PodiumDistinct()); err != nil {
		return domain.SprintPrediction{}, err
	}

	updated, err := s.repo.UpdateSprintGuess(ctx, domain.SprintPrediction{
		UserID:       userID,
		SprintRaceID: raceID,
		Guess:        guess,
	})
	if err != nil {
		return domain.SprintPrediction{}, fmt.Errorf("s.repo.UpdateSprintGuess -> %w", err)
	}

	return updated, nil
}

func (s *PredictionService) GetSprint(ctx context.Context, userID uint, raceID string) (domain.SprintPrediction, error) {
	prediction, err := s.repo.FindSprintByUserAndRace(ctx, userID, raceID)
	if err != nil {
		return domain.SprintPrediction{}, fmt.Errorf("s.repo.FindSprintByUserAndRace -> %w", err)
	}

	return prediction, nil
}

// checkOpen rejects completed races and races inside the lock window.
// An attempt at exactly lockBefore before the start is still accepted;
// only strictly less time to go locks the race.
func (s *PredictionService) checkOpen(completed bool, start time.Time) error {
	if completed {
		return ErrRaceLocked
	}

	if start.Sub(s.now()) < s.lockBefore {
		return ErrRaceLocked
	}

	return nil
}

func (s *PredictionService) validateGuess(ctx context.Context, codes []string, want int, podiumDistinct bool) error {
	if len(codes) != want {
		return ErrIncompleteGuess
	}
	if !podiumDistinct {
		return ErrDuplicatePodiumPick
	}

	ok, err := s.drivers.AllExist(ctx, codes)
	if err != nil {
		return fmt.Errorf("s.drivers.AllExist -> %w", err)
	}
	if !ok {
		return ErrUnknownDriver
	}

	return nil
}
