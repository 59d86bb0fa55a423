package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/expense-tracker/internal/guard"
	"github.com/expense-tracker/internal/models"
	"github.com/expense-tracker/internal/repository"
	"github.com/expense-tracker/internal/session"
	"github.com/expense-tracker/pkg/response"
	"github.com/gin-gonic/gin"
)

const (
	// SessionCookie is the name of the cookie carrying the session token
	SessionCookie = "session_id"

	// ContextKeyUserID is the key for user ID in gin context
	ContextKeyUserID = "user_id"
	// ContextKeyUsername is the key for username in gin context
	ContextKeyUsername = "username"
	// ContextKeyRole is the key for the account role in gin context
	ContextKeyRole = "role"
	// ContextKeySessionToken is the key for the session token in gin context
	ContextKeySessionToken = "session_token"
)

// SessionReader is the slice of the session store the guard needs
type SessionReader interface {
	Get(ctx context.Context, token string) (*session.Data, error)
	Delete(ctx context.Context, token string) error
}

// UserLoader resolves the account referenced by a session
type UserLoader interface {
	GetByID(id uint) (*models.User, error)
}

// Guard creates a middleware enforcing the given access policy. The
// account is re-validated against the store on every request, so a
// deactivated or deleted account is signed out immediately.
func Guard(policy guard.Policy, sessions SessionReader, users UserLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		var (
			sess  *session.Data
			user  *models.User
			token string
		)

		token, _ = c.Cookie(SessionCookie)
		if token != "" {
			data, err := sessions.Get(c.Request.Context(), token)
			if err != nil && !errors.Is(err, session.ErrSessionNotFound) {
				response.InternalError(c, "internal error")
				c.Abort()
				return
			}
			sess = data
		}

		if sess != nil {
			u, err := users.GetByID(sess.UserID)
			if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
				response.InternalError(c, "internal error")
				c.Abort()
				return
			}
			user = u
		}

		decision := guard.Evaluate(policy, sess != nil, user)

		if decision.ClearSession {
			if err := sessions.Delete(c.Request.Context(), token); err != nil {
				LogError("failed to clear stale session: %v", err)
			}
			c.SetCookie(SessionCookie, "", -1, "/", "", false, true)
		}

		if !decision.Allow {
			status := http.StatusForbidden
			if decision.Target == guard.TargetLogin {
				status = http.StatusUnauthorized
			}
			response.Redirected(c, status, string(decision.Target), decision.Reason)
			c.Abort()
			return
		}

		c.Set(ContextKeyUserID, user.ID)
		c.Set(ContextKeyUsername, user.Username)
		c.Set(ContextKeyRole, user.Role)
		c.Set(ContextKeySessionToken, token)

		c.Next()
	}
}

// GetUserID gets the user ID from the gin context
func GetUserID(c *gin.Context) uint {
	userID, exists := c.Get(ContextKeyUserID)
	if !exists {
		return 0
	}
	return userID.(uint)
}

// GetUsername gets the username from the gin context
func GetUsername(c *gin.Context) string {
	username, exists := c.Get(ContextKeyUsername)
	if !exists {
		return ""
	}
	return username.(string)
}

// GetSessionToken gets the session token from the gin context
func GetSessionToken(c *gin.Context) string {
	token, exists := c.Get(ContextKeySessionToken)
	if !exists {
		return ""
	}
	return token.(string)
}
