package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/boxbox-club/boxbox-api/internal/domain"
	"github.com/boxbox-club/boxbox-api/internal/pkg/jwthelper"
)

// ContextKeyUserID is where VerifyJWT stores the authenticated user ID.
const ContextKeyUserID = "userID"

type UserGetter interface {
	GetUser(ctx context.Context, id uint) (domain.User, error)
}

type Authenticator struct {
	signingKey []byte
}

func NewAuthenticator(signingKey string) *Authenticator {
	return &Authenticator{
		signingKey: []byte(signingKey),
	}
}

func (a *Authenticator) VerifyJWT() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.GetHeader("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || token == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})

			return
		}

		claims, err := jwthelper.ParseToken(a.signingKey, token)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})

			return
		}

		ctx.Set(ContextKeyUserID, claims.UserID)
		ctx.Next()
	}
}

// RequireAdmin must run after VerifyJWT. It loads the user and rejects
// non-admins; results ingestion and calendar management are admin-only.
func RequireAdmin(users UserGetter) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		userID, err := UserIDFromContext(ctx)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})

			return
		}

		user, err := users.GetUser(ctx.Request.Context(), userID)
		if err != nil || !user.IsAdmin {
			ctx.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access required"})

			return
		}

		ctx.Next()
	}
}

var errNoUserInContext = errors.New("no authenticated user in context")

func UserIDFromContext(ctx *gin.Context) (uint, error) {
	v, exists := ctx.Get(ContextKeyUserID)
	if !exists {
		return 0, errNoUserInContext
	}

	userID, ok := v.(uint)
	if !ok {
		return 0, errNoUserInContext
	}

	return userID, nil
}
