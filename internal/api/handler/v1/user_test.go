package v1

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boxbox-club/boxbox-api/internal/domain"
)

type stubUserService struct {
	user domain.User
}

func (s *stubUserService) GetUser(_ context.Context, _ uint) (domain.User, error) {
	return s.user, nil
}

func (s *stubUserService) DeleteUser(_ context.Context, _ uint) error {
	return nil
}

func TestHandleGetUser_ReturnsPublicProfileOnly(t *testing.T) {
	gin.SetMode(gin.TestMode)

	handler := NewUserHandler(&stubUserService{
		user: domain.User{
			ID:        7,
			AccountID: "ext-12345",
			Email:     "niki@example.com",
			Name:      "Niki",
			AvatarURL: "https://example.com/niki.png",
		},
	})

	router := gin.New()
	router.GET("/users/:userID", handler.HandleGetUser)

	req := httptest.NewRequest(http.MethodGet, "/users/7", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	assert.EqualValues(t, 7, body["id"])
	assert.Equal(t, "Niki", body["name"])
	assert.Equal(t, "https://example.com/niki.png", body["avatar_url"])

	// Another user's email and external account ID never leave the server.
	assert.NotContains(t, body, "email")
	assert.NotContains(t, body, "account_id")
}
