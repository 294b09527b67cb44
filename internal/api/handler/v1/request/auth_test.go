package request

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validSignup() SignupRequest {
	return SignupRequest{
		Email:           "lando@example.com",
		Password:        "boxbox2026",
		ConfirmPassword: "boxbox2026",
		Name:            "Lando",
	}
}

func TestSignupRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*SignupRequest)
		wantErr bool
	}{
		{
			name:   "valid request",
			mutate: func(_ *SignupRequest) {},
		},
		{
			name:   "valid with avatar url",
			mutate: func(r *SignupRequest) { r.AvatarURL = "https://example.com/lando.png" },
		},
		{
			name:    "missing email",
			mutate:  func(r *SignupRequest) { r.Email = "" },
			wantErr: true,
		},
		{
			name:    "malformed email",
			mutate:  func(r *SignupRequest) { r.Email = "not-an-email" },
			wantErr: true,
		},
		{
			name:    "name too short",
			mutate:  func(r *SignupRequest) { r.Name = "L" },
			wantErr: true,
		},
		{
			name: "password too short",
			mutate: func(r *SignupRequest) {
				r.Password = "abc1234"
				r.ConfirmPassword = "abc1234"
			},
			wantErr: true,
		},
		{
			name: "password without a digit",
			mutate: func(r *SignupRequest) {
				r.Password = "boxboxboxbox"
				r.ConfirmPassword = "boxboxboxbox"
			},
			wantErr: true,
		},
		{
			name: "password without a letter",
			mutate: func(r *SignupRequest) {
				r.Password = "20262026"
				r.ConfirmPassword = "20262026"
			},
			wantErr: true,
		},
		{
			name:    "confirm password mismatch",
			mutate:  func(r *SignupRequest) { r.ConfirmPassword = "boxbox2027" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validSignup()
			tt.mutate(&req)

			err := req.Validate()

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoginRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     LoginRequest
		wantErr bool
	}{
		{
			name: "valid request",
			req:  LoginRequest{Email: "lando@example.com", Password: "boxbox2026"},
		},
		{
			name:    "missing email",
			req:     LoginRequest{Password: "boxbox2026"},
			wantErr: true,
		},
		{
			name:    "missing password",
			req:     LoginRequest{Email: "lando@example.com"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
