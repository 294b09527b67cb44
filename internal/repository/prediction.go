package repository

import (
	"context"
	"fmt"

	"github.com/boxbox-club/boxbox-api/internal/domain"
	"github.com/boxbox-club/boxbox-api/internal/repository/dao"
)

var (
	ErrPredictionExists   = dao.ErrPredictionExists
	ErrPredictionNotFound = dao.ErrPredictionNotFound
)

type PredictionDAO interface {
	Insert(ctx context.Context, prediction dao.Prediction) (dao.Prediction, error)
	FindByUserAndRace(ctx context.Context, userID uint, raceID string) (dao.Prediction, error)
	FindByRace(ctx context.Context, raceID string) ([]dao.Prediction, error)
	FindBySeason(ctx context.Context, season int) ([]dao.Prediction, error)
	UpdateGuess(ctx context.Context, prediction dao.Prediction) (dao.Prediction, error)
	ScoreRace(ctx context.Context, raceID string, score func(dao.Prediction) int) error
	InsertSprint(ctx context.Context, prediction dao.SprintPrediction) (dao.SprintPrediction, error)
	FindSprintByUserAndRace(ctx context.Context, userID uint, raceID string) (dao.SprintPrediction, error)
	FindSprintsBySeason(ctx context.Context, season int) ([]dao.SprintPrediction, error)
	UpdateSprintGuess(ctx context.Context, prediction dao.SprintPrediction) (dao.SprintPrediction, error)
	ScoreSprintRace(ctx context.Context, raceID string, score func(dao.SprintPrediction) int) error
}

type PredictionRepository struct {
	dao PredictionDAO
}

func NewPredictionRepository(dao PredictionDAO) *PredictionRepository {
	return &PredictionRepository{
		dao: dao,
	}
}

func (r *PredictionRepository) Create(ctx context.Context, prediction domain.Prediction) (domain.Prediction, error) {
	created, err := r.dao.Insert(ctx, r.domainToDao(prediction))
	if err != nil {
		return domain.Prediction{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *PredictionRepository) FindByUserAndRace(ctx context.Context, userID uint, raceID string) (domain.Prediction, error) {
	found, err := r.dao.FindByUserAndRace(ctx, userID, raceID)
	if err != nil {
		return domain.Prediction{}, fmt.Errorf("r.dao.FindByUserAndRace -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *PredictionRepository) FindByRace(ctx context.Context, raceID string) ([]domain.Prediction, error) {
	found, err := r.dao.FindByRace(ctx, raceID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByRace -> %w", err)
	}

	predictions := make([]domain.Prediction, 0, len(found))
	for _, p := range found {
		predictions = append(predictions, r.daoToDomain(p))
	}

	return predictions, nil
}

func (r *PredictionRepository) FindBySeason(ctx context.Context, season int) ([]domain.Prediction, error) {
	found, err := r.dao.FindBySeason(ctx, season)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindBySeason -> %w", err)
	}

	predictions := make([]domain.Prediction, 0, len(found))
	for _, p := range found {
		predictions = append(predictions, r.daoToDomain(p))
	}

	return predictions, nil
}

func (r *PredictionRepository) UpdateGuess(ctx context.Context, prediction domain.Prediction) (domain.Prediction, error) {
	updated, err := r.dao.UpdateGuess(ctx, r.domainToDao(prediction))
	if err != nil {
		return domain.Prediction{}, fmt.Errorf("r.dao.UpdateGuess -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *PredictionRepository) ScoreRace(ctx context.Context, raceID string, score func(domain.PredictionGuess) int) error {
	err := r.dao.ScoreRace(ctx, raceID, func(p dao.Prediction) int {
		return score(domain.PredictionGuess{
			First:          p.FirstPlaceDriverID,
			Second:         p.SecondPlaceDriverID,
			Third:          p.ThirdPlaceDriverID,
			FastestLap:     p.FastestLapDriverID,
			DriverOfTheDay: p.DriverOfTheDayID,
		})
	})
	if err != nil {
		return fmt.Errorf("r.dao.ScoreRace -> %w", err)
	}

	return nil
}

func (r *PredictionRepository) CreateSprint(ctx context.Context, prediction domain.SprintPrediction) (domain.SprintPrediction, error) {
	created, err := r.dao.InsertSprint(ctx, r.sprintDomainToDao(prediction))
	if err != nil {
		return domain.SprintPrediction{}, fmt.Errorf("r.dao.InsertSprint -> %w", err)
	}

	return r.sprintDaoToDomain(created), nil
}

func (r *PredictionRepository) FindSprintByUserAndRace(ctx context.Context, userID uint, raceID string) (domain.SprintPrediction, error) {
	found, err := r.dao.FindSprintByUserAndRace(ctx, userID, raceID)
	if err != nil {
		return domain.SprintPrediction{}, fmt.Errorf("r.dao.FindSprintByUserAndRace -> %w", err)
	}

	return r.sprintDaoToDomain(found), nil
}

func (r *PredictionRepository) FindSprintsBySeason(ctx context.Context, season int) ([]domain.SprintPrediction, error) {
	found, err := r.dao.FindSprintsBySeason(ctx, season)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindSprintsBySeason -> %w", err)
	}

	predictions := make([]domain.SprintPrediction, 0, len(found))
	for _, p := range found {
		predictions = append(predictions, r.sprintDaoToDomain(p))
	}

	return predictions, nil
}

func (r *PredictionRepository) UpdateSprintGuess(ctx context.Context, prediction domain.SprintPrediction) (domain.SprintPrediction, error) {
	updated, err := r.dao.UpdateSprintGuess(ctx, r.sprintDomainToDao(prediction))
	if err != nil {
		return domain.SprintPrediction{}, fmt.Errorf("r.dao.UpdateSprintGuess -> %w", err)
	}

	return r.sprintDaoToDomain(updated), nil
}

func (r *PredictionRepository) ScoreSprintRace(ctx context.Context, raceID string, score func(domain.SprintGuess) int) error {
	err := r.dao.ScoreSprintRace(ctx, raceID, func(p dao.SprintPrediction) int {
		return score(domain.SprintGuess{
			First:  p.FirstPlaceDriverID,
			Second: p.SecondPlaceDriverID,
			Third:  p.ThirdPlaceDriverID,
		})
	})
	if err != nil {
		return fmt.Errorf("r.dao.ScoreSprintRace -> %w", err)
	}

	return nil
}

func (r *PredictionRepository) domainToDao(p domain.Prediction) dao.Prediction {
	return dao.Prediction{
		UserID:              p.UserID,
		RaceID:              p.RaceID,
		FirstPlaceDriverID:  p.Guess.First,
		SecondPlaceDriverID: p.Guess.Second,
		ThirdPlaceDriverID:  p.Guess.Third,
		FastestLapDriverID:  p.Guess.FastestLap,
		DriverOfTheDayID:    p.Guess.DriverOfTheDay,
	}
}

func (r *PredictionRepository) daoToDomain(p dao.Prediction) domain.Prediction {
	prediction := domain.Prediction{
		ID:     p.ID,
		UserID: p.UserID,
		RaceID: p.RaceID,
		Guess: domain.PredictionGuess{
			First:          p.FirstPlaceDriverID,
			Second:         p.SecondPlaceDriverID,
			Third:          p.ThirdPlaceDriverID,
			FastestLap:     p.FastestLapDriverID,
			DriverOfTheDay: p.DriverOfTheDayID,
		},
		Score:     domain.PendingScore(),
		CreatedAt: p.CreatedAt,
	}
	if p.Score != nil {
		prediction.Score = domain.ScoredPoints(*p.Score)
	}

	return prediction
}

func (r *PredictionRepository) sprintDomainToDao(p domain.SprintPrediction) dao.SprintPrediction {
	return dao.SprintPrediction{
		UserID:              p.UserID,
		SprintRaceID:        p.SprintRaceID,
		FirstPlaceDriverID:  p.Guess.First,
		SecondPlaceDriverID: p.Guess.Second,
		ThirdPlaceDriverID:  p.Guess.Third,
	}
}

func (r *PredictionRepository) sprintDaoToDomain(p dao.SprintPrediction) domain.SprintPrediction {
	prediction := domain.SprintPrediction{
		ID:           p.ID,
		UserID:       p.UserID,
		SprintRaceID: p.SprintRaceID,
		Guess: domain.SprintGuess{
			First:  p.FirstPlaceDriverID,
			Second: p.SecondPlaceDriverID,
			Third:  p.ThirdPlaceDriverID,
		},
		Score:     domain.PendingScore(),
		CreatedAt: p.CreatedAt,
	}
	if p.Score != nil {
		prediction.Score = domain.ScoredPoints(*p.Score)
	}

	return prediction
}
