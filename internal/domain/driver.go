package domain

type Driver struct {
	Code        string `json:"code"` // stable identity, e.g. "verstappen"
	Name        string `json:"name"`
	Nationality string `json:"nationality"`
	Number      int    `json:"number"`

	// Constructor is nil for reserve drivers and drivers between teams.
	Constructor *Constructor `json:"constructor,omitempty"`
}

type Constructor struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	Country string `json:"country"`
}
