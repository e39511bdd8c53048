package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"newsroom-api/models"
	"newsroom-api/services"
	"newsroom-api/utils"
)

const actorKey = "actor"

// Authenticator resolves a bearer token to the acting user.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (models.Actor, error)
}

// AuthMiddleware requires a valid bearer token.
func AuthMiddleware(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			utils.SendError(c, http.StatusUnauthorized, "Authentication credentials were not provided")
			return
		}
		actor, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			abortAuth(c, err)
			return
		}
		c.Set(actorKey, actor)
		c.Next()
	}
}

// OptionalAuth identifies the caller when a token is sent and lets anonymous
// requests through. An invalid token is still rejected.
func OptionalAuth(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.Next()
			return
		}
		actor, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			abortAuth(c, err)
			return
		}
		c.Set(actorKey, actor)
		c.Next()
	}
}

// RequireStaff admits reporters, editors and admins. It must run after AuthMiddleware.
func RequireStaff() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := CurrentActor(c)
		if !actor.Authenticated() {
			utils.SendError(c, http.StatusUnauthorized, "Authentication credentials were not provided")
			return
		}
		if !actor.IsStaff() {
			utils.SendError(c, http.StatusForbidden, "You do not have permission to perform this action")
			return
		}
		c.Next()
	}
}

// CurrentActor returns the authenticated actor, or the anonymous zero value.
func CurrentActor(c *gin.Context) models.Actor {
	if v, ok := c.Get(actorKey); ok {
		if actor, ok := v.(models.Actor); ok {
			return actor
		}
	}
	return models.Actor{}
}

// SetActor stores actor on the context.
func SetActor(c *gin.Context, actor models.Actor) {
	c.Set(actorKey, actor)
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

func abortAuth(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInactiveUser):
		utils.SendError(c, http.StatusForbidden, "User account is disabled")
	case errors.Is(err, services.ErrUnauthenticated):
		utils.SendError(c, http.StatusUnauthorized, err.Error())
	default:
		_ = c.Error(err)
		utils.SendError(c, http.StatusInternalServerError, "Internal server error")
	}
}
