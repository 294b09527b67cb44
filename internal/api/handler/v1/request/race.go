package request

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/boxbox-club/boxbox-api/internal/domain"
)

type CreateRaceRequest struct {
	Season     int       `json:"season"`
	Round      int       `json:"round"`
	Name       string    `json:"name"`
	Circuit    string    `json:"circuit"`
	Practice   time.Time `json:"practice"`
	Qualifying time.Time `json:"qualifying"`
	Start      time.Time `json:"start"`
}

func (req *CreateRaceRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Season, validation.Required, validation.Min(1950)),
		validation.Field(&req.Round, validation.Required, validation.Min(1)),
		validation.Field(&req.Name, validation.Required),
		validation.Field(&req.Start, validation.Required),
	)
}

func (req *CreateRaceRequest) ToRace() domain.Race {
	return domain.Race{
		Season:     req.Season,
		Round:      req.Round,
		Name:       req.Name,
		Circuit:    req.Circuit,
		Practice:   req.Practice,
		Qualifying: req.Qualifying,
		Start:      req.Start,
	}
}

type CreateSprintRaceRequest struct {
	Season     int       `json:"season"`
	Round      int       `json:"round"`
	Name       string    `json:"name"`
	Qualifying time.Time `json:"qualifying"`
	Start      time.Time `json:"start"`
}

func (req *CreateSprintRaceRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Season, validation.Required, validation.Min(1950)),
		validation.Field(&req.Round, validation.Required, validation.Min(1)),
		validation.Field(&req.Name, validation.Required),
		validation.Field(&req.Start, validation.Required),
	)
}

func (req *CreateSprintRaceRequest) ToRace() domain.SprintRace {
	return domain.SprintRace{
		Season:     req.Season,
		Round:      req.Round,
		Name:       req.Name,
		Qualifying: req.Qualifying,
		Start:      req.Start,
	}
}

type RaceResultsRequest struct {
	First          string `json:"first"`
	Second         string `json:"second"`
	Third          string `json:"third"`
	FastestLap     string `json:"fastest_lap"`
	DriverOfTheDay string `json:"driver_of_the_day"`
}

func (req *RaceResultsRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.First, validation.Required),
		validation.Field(&req.Second, validation.Required),
		validation.Field(&req.Third, validation.Required),
		validation.Field(&req.FastestLap, validation.Required),
		validation.Field(&req.DriverOfTheDay, validation.Required),
	)
}

func (req *RaceResultsRequest) ToResults() domain.RaceResults {
	return domain.RaceResults{
		First:          req.First,
		Second:         req.Second,
		Third:          req.Third,
		FastestLap:     req.FastestLap,
		DriverOfTheDay: req.DriverOfTheDay,
	}
}

type SprintResultsRequest struct {
	First  string `json:"first"`
	Second string `json:"second"`
	Third  string `json:"third"`
}

func (req *SprintResultsRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.First, validation.Required),
		validation.Field(&req.Second, validation.Required),
		validation.Field(&req.Third, validation.Required),
	)
}

func (req *SprintResultsRequest) ToResults() domain.SprintResults {
	return domain.SprintResults{
		First:  req.First,
		Second: req.Second,
		Third:  req.Third,
	}
}
