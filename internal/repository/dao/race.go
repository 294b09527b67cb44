package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrRaceNotFound = errors.New("race not found")

// Race keeps the result columns nullable on purpose: they stay NULL
// together until the race completes, at which point all of them are set
// in the same update that flips Completed.
type Race struct {
	ID string `gorm:"primaryKey;size:16"` // "<season>-<round>"

	Season  int    `gorm:"not null;uniqueIndex:idx_races_season_round"`
	Round   int    `gorm:"not null;uniqueIndex:idx_races_season_round"`
	Name    string `gorm:"not null"`
	Circuit string

	Practice   time.Time
	Qualifying time.Time
	Start      time.Time `gorm:"not null"`

	FirstPlaceDriverID  *string `gorm:"size:64"`
	SecondPlaceDriverID *string `gorm:"size:64"`
	ThirdPlaceDriverID  *string `gorm:"size:64"`
	FastestLapDriverID  *string `gorm:"size:64"`
	DriverOfTheDayID    *string `gorm:"size:64"`
	Completed           bool    `gorm:"not null;default:false"`

	Predictions []Prediction `gorm:"foreignKey:RaceID"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type SprintRace struct {
	ID string `gorm:"primaryKey;size:16"`

	Season int    `gorm:"not null;uniqueIndex:idx_sprint_races_season_round"`
	Round  int    `gorm:"not null;uniqueIndex:idx_sprint_races_season_round"`
	Name   string `gorm:"not null"`

	Qualifying time.Time
	Start      time.Time `gorm:"not null"`

	FirstPlaceDriverID  *string `gorm:"size:64"`
	SecondPlaceDriverID *string `gorm:"size:64"`
	ThirdPlaceDriverID  *string `gorm:"size:64"`
	Completed           bool    `gorm:"not null;default:false"`

	Predictions []SprintPrediction `gorm:"foreignKey:SprintRaceID"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type RaceDAO struct {
	db *gorm.DB
}

func NewRaceDAO(db *gorm.DB) *RaceDAO {
	return &RaceDAO{
		db: db,
	}
}

func (d *RaceDAO) Insert(ctx context.Context, race Race) (Race, error) {
	result := d.db.WithContext(ctx).Create(&race)
	if result.Error != nil {
		return Race{}, result.Error
	}

	return race, nil
}

func (d *RaceDAO) FindByID(ctx context.Context, id string) (Race, error) {
	var race Race

	result := d.db.WithContext(ctx).First(&race, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Race{}, ErrRaceNotFound
		}

		return Race{}, result.Error
	}

	return race, nil
}

func (d *RaceDAO) FindBySeason(ctx context.Context, season int) ([]Race, error) {
	var races []Race

	result := d.db.WithContext(ctx).Where("season = ?", season).Order("round").Find(&races)
	if result.Error != nil {
		return nil, result.Error
	}

	return races, nil
}

// SetResults writes every result column and the completed flag in one
// update, so readers never observe a race with partial results.
func (d *RaceDAO) SetResults(ctx context.Context, id string, first, second, third, fastestLap, driverOfTheDay string) error {
	result := d.db.WithContext(ctx).Model(&Race{}).Where("id = ?", id).Updates(map[string]interface{}{
		"first_place_driver_id":  first,
		"second_place_driver_id": second,
		"third_place_driver_id":  third,
		"fastest_lap_driver_id":  fastestLap,
		"driver_of_the_day_id":   driverOfTheDay,
		"completed":              true,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRaceNotFound
	}

	return nil
}

// Delete removes the race and its predictions as an explicit cascade,
// in one transaction.
func (d *RaceDAO) Delete(ctx context.Context, id string) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("race_id = ?", id).Delete(&Prediction{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&Race{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrRaceNotFound
		}

		return nil
	})
}

func (d *RaceDAO) InsertSprint(ctx context.Context, race SprintRace) (SprintRace, error) {
	result := d.db.WithContext(ctx).Create(&race)
	if result.Error != nil {
		return SprintRace{}, result.Error
	}

	return race, nil
}

func (d *RaceDAO) FindSprintByID(ctx context.Context, id string) (SprintRace, error) {
	var race SprintRace

	result := d.db.WithContext(ctx).First(&race, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return SprintRace{}, ErrRaceNotFound
		}

		return SprintRace{}, result.Error
	}

	return race, nil
}

func (d *RaceDAO) FindSprintsBySeason(ctx context.Context, season int) ([]SprintRace, error) {
	var races []SprintRace

	result := d.db.WithContext(ctx).Where("season = ?", season).Order("round").Find(&races)
	if result.Error != nil {
		return nil, result.Error
	}

	return races, nil
}

func (d *RaceDAO) SetSprintResults(ctx context.Context, id string, first, second, third string) error {
	result := d.db.WithContext(ctx).Model(&SprintRace{}).Where("id = ?", id).Updates(map[string]interface{}{
		"first_place_driver_id":  first,
		"second_place_driver_id": second,
		"third_place_driver_id":  third,
		"completed":              true,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRaceNotFound
	}

	return nil
}

func (d *RaceDAO) DeleteSprint(ctx context.Context, id string) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("sprint_race_id = ?", id).Delete(&SprintPrediction{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&SprintRace{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrRaceNotFound
		}

		return nil
	})
}
