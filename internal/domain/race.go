package domain

import (
	"fmt"
	"time"
)

// RaceID builds the composite identity a race is known by, e.g. "2026-1".
func RaceID(season, round int) string {
	return fmt.Sprintf("%d-%d", season, round)
}

type Race struct {
	ID      string `json:"id"`
	Season  int    `json:"season"`
	Round   int    `json:"round"`
	Name    string `json:"name"`
	Circuit string `json:"circuit"`

	Practice   time.Time `json:"practice"`
	Qualifying time.Time `json:"qualifying"`
	Start      time.Time `json:"start"`

	// Results is nil until the race is completed; a non-nil value
	// means every category is final and the race may be scored.
	Results *RaceResults `json:"results,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (r Race) Completed() bool {
	return r.Results != nil
}

type RaceResults struct {
	First          string `json:"first"`
	Second         string `json:"second"`
	Third          string `json:"third"`
	FastestLap     string `json:"fastest_lap"`
	DriverOfTheDay string `json:"driver_of_the_day"`
}

func (r RaceResults) Complete() bool {
	return r.First != "" && r.Second != "" && r.Third != "" &&
		r.FastestLap != "" && r.DriverOfTheDay != ""
}

// SprintRace is the short Saturday race of a sprint weekend. It shares
// the season-round identity scheme with the main race but has no
// fastest-lap or driver-of-the-day award.
type SprintRace struct {
	ID     string `json:"id"`
	Season int    `json:"season"`
	Round  int    `json:"round"`
	Name   string `json:"name"`

	Qualifying time.Time `json:"qualifying"`
	Start      time.Time `json:"start"`

	Results *SprintResults `json:"results,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (r SprintRace) Completed() bool {
	return r.Results != nil
}

type SprintResults struct {
	First  string `json:"first"`
	Second string `json:"second"`
	Third  string `json:"third"`
}

func (r SprintResults) Complete() bool {
	return r.First != "" && r.Second != "" && r.Third != ""
}
