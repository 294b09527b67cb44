package response

import "github.com/boxbox-club/boxbox-api/internal/domain"

type LoginResponse struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

// PublicUserResponse is what other users see of a profile: no email, no
// external account ID.
type PublicUserResponse struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

func NewPublicUserResponse(user domain.User) PublicUserResponse {
	return PublicUserResponse{
		ID:        user.ID,
		Name:      user.Name,
		AvatarURL: user.AvatarURL,
	}
}

type LeaderboardResponse struct {
	Season    int               `json:"season"`
	Standings []domain.Standing `json:"standings"`
}
