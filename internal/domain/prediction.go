package domain

import "time"

// Score is the two-phase lifecycle of a prediction's points: Pending
// until the owning race is scored, then Scored with a value. Using a
// tagged value instead of a bare int keeps "not yet scored" from
// looking like zero points.
type Score struct {
	Scored bool `json:"scored"`
	Points int  `json:"points"`
}

func PendingScore() Score {
	return Score{}
}

func ScoredPoints(points int) Score {
	return Score{Scored: true, Points: points}
}

// Category counts of a full guess of each kind.
const (
	GuessCategories       = 5
	SprintGuessCategories = 3
)

type PredictionGuess struct {
	First          string `json:"first"`
	Second         string `json:"second"`
	Third          string `json:"third"`
	FastestLap     string `json:"fastest_lap"`
	DriverOfTheDay string `json:"driver_of_the_day"`
}

// DriverCodes lists every non-empty driver referenced by the guess.
func (g PredictionGuess) DriverCodes() []string {
	codes := make([]string, 0, GuessCategories)
	for _, c := range []string{g.First, g.Second, g.Third, g.FastestLap, g.DriverOfTheDay} {
		if c != "" {
			codes = append(codes, c)
		}
	}

	return codes
}

// PodiumDistinct reports whether no driver occupies more than one
// podium slot. Fastest lap and driver of the day may repeat a podium
// pick; those are separate awards.
func (g PredictionGuess) PodiumDistinct() bool {
	return g.First != g.Second && g.First != g.Third && g.Second != g.Third
}

type Prediction struct {
	ID        uint            `json:"id"`
	UserID    uint            `json:"user_id"`
	RaceID    string          `json:"race_id"`
	Guess     PredictionGuess `json:"guess"`
	Score     Score           `json:"score"`
	CreatedAt time.Time       `json:"created_at"`
}

type SprintGuess struct {
	First  string `json:"first"`
	Second string `json:"second"`
	Third  string `json:"third"`
}

func (g SprintGuess) DriverCodes() []string {
	codes := make([]string, 0, SprintGuessCategories)
	for _, c := range []string{g.First, g.Second, g.Third} {
		if c != "" {
			codes = append(codes, c)
		}
	}

	return codes
}

func (g SprintGuess) PodiumDistinct() bool {
	return g.First != g.Second && g.First != g.Third && g.Second != g.Third
}

type SprintPrediction struct {
	ID           uint        `json:"id"`
	UserID       uint        `json:"user_id"`
	SprintRaceID string      `json:"sprint_race_id"`
	Guess        SprintGuess `json:"guess"`
	Score        Score       `json:"score"`
	CreatedAt    time.Time   `json:"created_at"`
}
