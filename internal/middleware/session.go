package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/mentoria-api/internal/models"
	appErrors "github.com/noah-isme/mentoria-api/pkg/errors"
	"github.com/noah-isme/mentoria-api/pkg/response"
)

const (
	// ContextSessionKey stores the resolved *models.Session.
	ContextSessionKey = "currentSession"
	// ContextUserKey stores the *models.CurrentUser derived from the session.
	ContextUserKey = "currentUser"
)

// SessionResolver looks up bearer tokens.
type SessionResolver interface {
	Resolve(ctx context.Context, token string) (*models.Session, error)
}

// Session requires a valid bearer token and stores the session on the context.
func Session(resolver SessionResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "missing bearer token"))
			c.Abort()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "invalid authorization header"))
			c.Abort()
			return
		}

		session, err := resolver.Resolve(c.Request.Context(), strings.TrimSpace(parts[1]))
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		c.Set(ContextSessionKey, session)
		c.Set(ContextUserKey, &models.CurrentUser{ID: session.UserID, UserType: session.UserType})
		c.Next()
	}
}
