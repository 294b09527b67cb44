package domain

// Standing is one row of a season leaderboard. PreviousRank is the
// user's rank before the most recent completed round, for trend arrows;
// it is 0 when there is no prior completed round to compare against.
type Standing struct {
	UserID       uint   `json:"user_id"`
	UserName     string `json:"user_name"`
	AvatarURL    string `json:"avatar_url,omitempty"`
	Points       int    `json:"points"`
	ScoredCount  int    `json:"scored_count"`
	Rank         int    `json:"rank"`
	PreviousRank int    `json:"previous_rank,omitempty"`
}
