package repository

import (
	"context"
	"fmt"

	"github.com/boxbox-club/boxbox-api/internal/domain"
	"github.com/boxbox-club/boxbox-api/internal/repository/dao"
)

var ErrRaceNotFound = dao.ErrRaceNotFound

type RaceDAO interface {
	Insert(ctx context.Context, race dao.Race) (dao.Race, error)
	FindByID(ctx context.Context, id string) (dao.Race, error)
	FindBySeason(ctx context.Context, season int) ([]dao.Race, error)
	SetResults(ctx context.Context, id string, first, second, third, fastestLap, driverOfTheDay string) error
	Delete(ctx context.Context, id string) error
	InsertSprint(ctx context.Context, race dao.SprintRace) (dao.SprintRace, error)
	FindSprintByID(ctx context.Context, id string) (dao.SprintRace, error)
	FindSprintsBySeason(ctx context.Context, season int) ([]dao.SprintRace, error)
	SetSprintResults(ctx context.Context, id string, first, second, third string) error
	DeleteSprint(ctx context.Context, id string) error
}

type RaceRepository struct {
	dao RaceDAO
}

func NewRaceRepository(dao RaceDAO) *RaceRepository {
	return &RaceRepository{
		dao: dao,
	}
}

func (r *RaceRepository) Create(ctx context.Context, race domain.Race) (domain.Race, error) {
	created, err := r.dao.Insert(ctx, dao.Race{
		ID:         domain.RaceID(race.Season, race.Round),
		Season:     race.Season,
		Round:      race.Round,
		Name:       race.Name,
		Circuit:    race.Circuit,
		Practice:   race.Practice,
		Qualifying: race.Qualifying,
		Start:      race.Start,
	})
	if err != nil {
		return domain.Race{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *RaceRepository) FindByID(ctx context.Context, id string) (domain.Race, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Race{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *RaceRepository) FindBySeason(ctx context.Context, season int) ([]domain.Race, error) {
	found, err := r.dao.FindBySeason(ctx, season)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindBySeason -> %w", err)
	}

	races := make([]domain.Race, 0, len(found))
	for _, race := range found {
		races = append(races, r.daoToDomain(race))
	}

	return races, nil
}

func (r *RaceRepository) SetResults(ctx context.Context, id string, results domain.RaceResults) error {
	err := r.dao.SetResults(ctx, id,
		results.First, results.Second, results.Third, results.FastestLap, results.DriverOfTheDay)
	if err != nil {
		return fmt.Errorf("r.dao.SetResults -> %w", err)
	}

	return nil
}

func (r *RaceRepository) Delete(ctx context.Context, id string) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *RaceRepository) CreateSprint(ctx context.Context, race domain.SprintRace) (domain.SprintRace, error) {
	created, err := r.dao.InsertSprint(ctx, dao.SprintRace{
		ID:         domain.RaceID(race.Season, race.Round),
		Season:     race.Season,
		Round:      race.Round,
		Name:       race.Name,
		Qualifying: race.Qualifying,
		Start:      race.Start,
	})
	if err != nil {
		return domain.SprintRace{}, fmt.Errorf("r.dao.InsertSprint -> %w", err)
	}

	return r.sprintDaoToDomain(created), nil
}

func (r *RaceRepository) FindSprintByID(ctx context.Context, id string) (domain.SprintRace, error) {
	found, err := r.dao.FindSprintByID(ctx, id)
	if err != nil {
		return domain.SprintRace{}, fmt.Errorf("r.dao.FindSprintByID -> %w", err)
	}

	return r.sprintDaoToDomain(found), nil
}

func (r *RaceRepository) FindSprintsBySeason(ctx context.Context, season int) ([]domain.SprintRace, error) {
	found, err := r.dao.FindSprintsBySeason(ctx, season)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindSprintsBySeason -> %w", err)
	}

	races := make([]domain.SprintRace, 0, len(found))
	for _, race := range found {
		races = append(races, r.sprintDaoToDomain(race))
	}

	return races, nil
}

func (r *RaceRepository) SetSprintResults(ctx context.Context, id string, results domain.SprintResults) error {
	err := r.dao.SetSprintResults(ctx, id, results.First, results.Second, results.Third)
	if err != nil {
		return fmt.Errorf("r.dao.SetSprintResults -> %w", err)
	}

	return nil
}

func (r *RaceRepository) DeleteSprint(ctx context.Context, id string) error {
	if err := r.dao.DeleteSprint(ctx, id); err != nil {
		return fmt.Errorf("r.dao.DeleteSprint -> %w", err)
	}

	return nil
}

func (r *RaceRepository) daoToDomain(race dao.Race) domain.Race {
	d := domain.Race{
		ID:         race.ID,
		Season:     race.Season,
		Round:      race.Round,
		Name:       race.Name,
		Circuit:    race.Circuit,
		Practice:   race.Practice,
		Qualifying: race.Qualifying,
		Start:      race.Start,
		CreatedAt:  race.CreatedAt,
		UpdatedAt:  race.UpdatedAt,
	}

	if race.Completed {
		d.Results = &domain.RaceResults{
			First:          deref(race.FirstPlaceDriverID),
			Second:         deref(race.SecondPlaceDriverID),
			Third:          deref(race.ThirdPlaceDriverID),
			FastestLap:     deref(race.FastestLapDriverID),
			DriverOfTheDay: deref(race.DriverOfTheDayID),
		}
	}

	return d
}

func (r *RaceRepository) sprintDaoToDomain(race dao.SprintRace) domain.SprintRace {
	d := domain.SprintRace{
		ID:         race.ID,
		Season:     race.Season,
		Round:      race.Round,
		Name:       race.Name,
		Qualifying: race.Qualifying,
		Start:      race.Start,
		CreatedAt:  race.CreatedAt,
		UpdatedAt:  race.UpdatedAt,
	}

	if race.Completed {
		d.Results = &domain.SprintResults{
			First:  deref(race.FirstPlaceDriverID),
			Second: deref(race.SecondPlaceDriverID),
			Third:  deref(race.ThirdPlaceDriverID),
		}
	}

	return d
}

func deref(s *string) string {
	if s == nil {
		return ""
	}

	return *s
}
