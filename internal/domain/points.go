package domain

// PointsTable is the per-category value of a correct pick. The values
// are configuration, not business logic; scoring only cares that each
// correct category adds its entry and a wrong one adds nothing.
type PointsTable struct {
	First          int `json:"first"`
	Second         int `json:"second"`
	Third          int `json:"third"`
	FastestLap     int `json:"fastest_lap"`
	DriverOfTheDay int `json:"driver_of_the_day"`
}

// DefaultPointsTable weighs every category equally.
func DefaultPointsTable() PointsTable {
	return PointsTable{
		First:          1,
		Second:         1,
		Third:          1,
		FastestLap:     1,
		DriverOfTheDay: 1,
	}
}

// Max is the highest score a full race prediction can reach.
func (t PointsTable) Max() int {
	return t.First + t.Second + t.Third + t.FastestLap + t.DriverOfTheDay
}

// SprintMax is the highest score a sprint prediction can reach.
func (t PointsTable) SprintMax() int {
	return t.First + t.Second + t.Third
}
