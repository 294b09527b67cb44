package dao

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrPredictionExists   = errors.New("prediction already exists for this user and race")
	ErrPredictionNotFound = errors.New("prediction not found")
)

type Prediction struct {
	ID uint `gorm:"primaryKey"`

	UserID uint   `gorm:"not null;uniqueIndex:idx_predictions_user_race"`
	RaceID string `gorm:"not null;size:16;uniqueIndex:idx_predictions_user_race"`

	FirstPlaceDriverID  string `gorm:"not null;size:64"`
	SecondPlaceDriverID string `gorm:"not null;size:64"`
	ThirdPlaceDriverID  string `gorm:"not null;size:64"`
	FastestLapDriverID  string `gorm:"not null;size:64"`
	DriverOfTheDayID    string `gorm:"not null;size:64"`

	// Score stays NULL until the owning race is scored.
	Score *int

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type SprintPrediction struct {
	ID uint `gorm:"primaryKey"`

	UserID       uint   `gorm:"not null;uniqueIndex:idx_sprint_predictions_user_race"`
	SprintRaceID string `gorm:"not null;size:16;uniqueIndex:idx_sprint_predictions_user_race"`

	FirstPlaceDriverID  string `gorm:"not null;size:64"`
	SecondPlaceDriverID string `gorm:"not null;size:64"`
	ThirdPlaceDriverID  string `gorm:"not null;size:64"`

	Score *int

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type PredictionDAO struct {
	db *gorm.DB
}

func NewPredictionDAO(db *gorm.DB) *PredictionDAO {
	return &PredictionDAO{
		db: db,
	}
}

func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError

	return errors.As(err, &pgErr) &&
		pgErr.Code == pgerrcode.UniqueViolation &&
		strings.Contains(pgErr.Message, `unique constraint "`+constraint+`"`)
}

// Insert relies on the (user_id, race_id) unique index for the
// one-prediction-per-user-per-race invariant; a pre-check in the
// service cannot rule out concurrent duplicates.
func (d *PredictionDAO) Insert(ctx context.Context, prediction Prediction) (Prediction, error) {
	result := d.db.WithContext(ctx).Create(&prediction)
	if result.Error != nil {
		if isUniqueViolation(result.Error, "idx_predictions_user_race") {
			return Prediction{}, ErrPredictionExists
		}

		return Prediction{}, result.Error
	}

	return prediction, nil
}

func (d *PredictionDAO) FindByUserAndRace(ctx context.Context, userID uint, raceID string) (Prediction, error) {
	var prediction Prediction

	result := d.db.WithContext(ctx).
		First(&prediction, "user_id = ? AND race_id = ?", userID, raceID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Prediction{}, ErrPredictionNotFound
		}

		return Prediction{}, result.Error
	}

	return prediction, nil
}

func (d *PredictionDAO) FindByRace(ctx context.Context, raceID string) ([]Prediction, error) {
	var predictions []Prediction

	result := d.db.WithContext(ctx).Where("race_id = ?", raceID).Find(&predictions)
	if result.Error != nil {
		return nil, result.Error
	}

	return predictions, nil
}

func (d *PredictionDAO) FindBySeason(ctx context.Context, season int) ([]Prediction, error) {
	var predictions []Prediction

	result := d.db.WithContext(ctx).
		Joins("JOIN races ON races.id = predictions.race_id").
		Where("races.season = ?", season).
		Find(&predictions)
	if result.Error != nil {
		return nil, result.Error
	}

	return predictions, nil
}

// UpdateGuess rewrites the guessed drivers of an existing prediction.
// It never touches the score column.
func (d *PredictionDAO) UpdateGuess(ctx context.Context, prediction Prediction) (Prediction, error) {
	result := d.db.WithContext(ctx).Model(&Prediction{}).
		Where("user_id = ? AND race_id = ?", prediction.UserID, prediction.RaceID).
		Updates(map[string]interface{}{
			"first_place_driver_id":  prediction.FirstPlaceDriverID,
			"second_place_driver_id": prediction.SecondPlaceDriverID,
			"third_place_driver_id":  prediction.ThirdPlaceDriverID,
			"fastest_lap_driver_id":  prediction.FastestLapDriverID,
			"driver_of_the_day_id":   prediction.DriverOfTheDayID,
		})
	if result.Error != nil {
		return Prediction{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Prediction{}, ErrPredictionNotFound
	}

	return d.FindByUserAndRace(ctx, prediction.UserID, prediction.RaceID)
}

// ScoreRace recomputes and stores the score of every prediction on the
// race inside one transaction: a leaderboard read never sees a race
// half scored. Scores are overwritten, not accumulated, so re-running
// after a results correction is safe.
func (d *PredictionDAO) ScoreRace(ctx context.Context, raceID string, score func(Prediction) int) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var predictions []Prediction
		if err := tx.Where("race_id = ?", raceID).Find(&predictions).Error; err != nil {
			return err
		}

		for _, p := range predictions {
			points := score(p)
			if err := tx.Model(&Prediction{}).Where("id = ?", p.ID).
				Update("score", points).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

func (d *PredictionDAO) InsertSprint(ctx context.Context, prediction SprintPrediction) (SprintPrediction, error) {
	result := d.db.WithContext(ctx).Create(&prediction)
	if result.Error != nil {
		if isUniqueViolation(result.Error, "idx_sprint_predictions_user_race") {
			return SprintPrediction{}, ErrPredictionExists
		}

		return SprintPrediction{}, result.Error
	}

	return prediction, nil
}

func (d *PredictionDAO) FindSprintByUserAndRace(ctx context.Context, userID uint, raceID string) (SprintPrediction, error) {
	var prediction SprintPrediction

	result := d.db.WithContext(ctx).
		First(&prediction, "user_id = ? AND sprint_race_id = ?", userID, raceID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return SprintPrediction{}, ErrPredictionNotFound
		}

		return SprintPrediction{}, result.Error
	}

	return prediction, nil
}

func (d *PredictionDAO) FindSprintsBySeason(ctx context.Context, season int) ([]SprintPrediction, error) {
	var predictions []SprintPrediction

	result := d.db.WithContext(ctx).
		Joins("JOIN sprint_races ON sprint_races.id = sprint_predictions.sprint_race_id").
		Where("sprint_races.season = ?", season).
		Find(&predictions)
	if result.Error != nil {
		return nil, result.Error
	}

	return predictions, nil
}

func (d *PredictionDAO) UpdateSprintGuess(ctx context.Context, prediction SprintPrediction) (SprintPrediction, error) {
	result := d.db.WithContext(ctx).Model(&SprintPrediction{}).
		Where("user_id = ? AND sprint_race_id = ?", prediction.UserID, prediction.SprintRaceID).
		Updates(map[string]interface{}{
			"first_place_driver_id":  prediction.FirstPlaceDriverID,
			"second_place_driver_id": prediction.SecondPlaceDriverID,
			"third_place_driver_id":  prediction.ThirdPlaceDriverID,
		})
	if result.Error != nil {
		return SprintPrediction{}, result.Error
	}
	if result.RowsAffected == 0 {
		return SprintPrediction{}, ErrPredictionNotFound
	}

	return d.FindSprintByUserAndRace(ctx, prediction.UserID, prediction.SprintRaceID)
}

func (d *PredictionDAO) ScoreSprintRace(ctx context.Context, raceID string, score func(SprintPrediction) int) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var predictions []SprintPrediction
		if err := tx.Where("sprint_race_id = ?", raceID).Find(&predictions).Error; err != nil {
			return err
		}

		for _, p := range predictions {
			points := score(p)
			if err := tx.Model(&SprintPrediction{}).Where("id = ?", p.ID).
				Update("score", points).Error; err != nil {
				return err
			}
		}

		return nil
	})
}
