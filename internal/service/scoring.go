package service

import (
	"errors"

	"github.com/boxbox-club/boxbox-api/internal/domain"
)

// ErrRaceNotCompleted flags a contract violation: scoring must only be
// invoked after a race's results are final.
var ErrRaceNotCompleted = errors.New("race is not completed")

// ScoreGuess computes the points of one prediction against final race
// results. Each category is judged independently on exact match; a
// correct pick adds that category's configured points, anything else
// adds zero. The function is pure, so re-scoring the same inputs always
// yields the same value.
func ScoreGuess(guess domain.PredictionGuess, results domain.RaceResults, points domain.PointsTable) int {
	score := 0

	if guess.First != "" && guess.First == results.First {
		score += points.First
	}
	if guess.Second != "" && guess.Second == results.Second {
		score += points.Second
	}
	if guess.Third != "" && guess.Third == results.Third {
		score += points.Third
	}
	if guess.FastestLap != "" && guess.FastestLap == results.FastestLap {
		score += points.FastestLap
	}
	if guess.DriverOfTheDay != "" && guess.DriverOfTheDay == results.DriverOfTheDay {
		score += points.DriverOfTheDay
	}

	return score
}

// ScoreSprintGuess scores a sprint prediction: podium categories only.
func ScoreSprintGuess(guess domain.SprintGuess, results domain.SprintResults, points domain.PointsTable) int {
	score := 0

	if guess.First != "" && guess.First == results.First {
		score += points.First
	}
	if guess.Second != "" && guess.Second == results.Second {
		score += points.Second
	}
	if guess.Third != "" && guess.Third == results.Third {
		score += points.Third
	}

	return score
}
