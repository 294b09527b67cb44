package request

import (
	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/boxbox-club/boxbox-api/internal/domain"
)

type PredictionRequest struct {
	First          string `json:"first"`
	Second         string `json:"second"`
	Third          string `json:"third"`
	FastestLap     string `json:"fastest_lap"`
	DriverOfTheDay string `json:"driver_of_the_day"`
}

func (req *PredictionRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.First, validation.Required),
		validation.Field(&req.Second, validation.Required),
		validation.Field(&req.Third, validation.Required),
		validation.Field(&req.FastestLap, validation.Required),
		validation.Field(&req.DriverOfTheDay, validation.Required),
	)
}

func (req *PredictionRequest) ToGuess() domain.PredictionGuess {
	return domain.PredictionGuess{
		First:          req.First,
		Second:         req.Second,
		Third:          req.Third,
		FastestLap:     req.FastestLap,
		DriverOfTheDay: req.DriverOfTheDay,
	}
}

type SprintPredictionRequest struct {
	First  string `json:"first"`
	Second string `json:"second"`
	Third  string `json:"third"`
}

func (req *SprintPredictionRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.First, validation.Required),
		validation.Field(&req.Second, validation.Required),
		validation.Field(&req.Third, validation.Required),
	)
}

func (req *SprintPredictionRequest) ToGuess() domain.SprintGuess {
	return domain.SprintGuess{
		First:  req.First,
		Second: req.Second,
		Third:  req.Third,
	}
}
