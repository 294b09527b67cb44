package domain

import "time"

type User struct {
	ID        uint      `json:"id"`
	AccountID string    `json:"account_id"` // durable ID from the identity provider
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	Name      string    `json:"name"`
	AvatarURL string    `json:"avatar_url"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
