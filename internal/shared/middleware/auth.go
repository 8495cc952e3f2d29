package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"pressroom-backend/internal/shared/response"
	"pressroom-backend/pkg/token"
)

// CurrentUser is the authenticated user attached to the request context.
type CurrentUser struct {
	ID    uuid.UUID
	Name  string
	Email string
}

// SessionResolver is the minimal session-domain surface the middleware
// needs. Declared here to avoid a circular dependency on the domain.
type SessionResolver interface {
	// ResolveCookie maps a session cookie value to its owning user.
	ResolveCookie(ctx context.Context, sessionID string) (*CurrentUser, error)
}

const (
	// ContextKeyUser holds the *CurrentUser for the request.
	ContextKeyUser = "current_user"
)

// SessionCookieConfig carries the attributes of the session cookie.
// Secure and SameSite=Lax; intentionally not HttpOnly so the front end can
// read its own session id.
type SessionCookieConfig struct {
	Name   string
	Domain string
	MaxAge int // seconds
	Secure bool
}

// SetSessionCookie writes the session cookie with a fresh expiry.
func SetSessionCookie(c *gin.Context, cfg SessionCookieConfig, sessionID string) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     cfg.Name,
		Value:    sessionID,
		Path:     "/",
		Domain:   cfg.Domain,
		MaxAge:   cfg.MaxAge,
		Secure:   cfg.Secure,
		HttpOnly: false,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie expires the session cookie (logout).
func ClearSessionCookie(c *gin.Context, cfg SessionCookieConfig) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     cfg.Name,
		Value:    "",
		Path:     "/",
		Domain:   cfg.Domain,
		MaxAge:   -1,
		Secure:   cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// SessionAuth resolves the requester's identity and attaches it to the
// context. Two paths, tried in order:
//
//  1. Session cookie: on a hit the cookie is re-issued with a fresh expiry
//     (sliding window). An absent or unrecognized cookie is a silent no-op;
//     a stale cookie is left in place rather than cleared.
//  2. Authorization: Bearer <jwt> for API clients.
//
// This middleware never rejects a request; pair it with RequireAuth on
// routes that need an authenticated user.
func SessionAuth(cfg SessionCookieConfig, sessions SessionResolver, tokens *token.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cookie, err := c.Cookie(cfg.Name); err == nil && cookie != "" {
			if user, err := sessions.ResolveCookie(c.Request.Context(), cookie); err == nil {
				SetSessionCookie(c, cfg, cookie)
				c.Set(ContextKeyUser, user)
				c.Next()
				return
			}
		}

		authHeader := c.GetHeader("Authorization")
		if parts := strings.SplitN(authHeader, " ", 2); len(parts) == 2 && parts[0] == "Bearer" {
			if claims, err := tokens.ValidateToken(parts[1]); err == nil {
				if userID, err := uuid.Parse(claims.UserID); err == nil {
					c.Set(ContextKeyUser, &CurrentUser{ID: userID, Email: claims.Email})
				}
			}
		}

		c.Next()
	}
}

// RequireAuth aborts with 401 unless SessionAuth attached a user.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := GetCurrentUser(c); !ok {
			response.Unauthorized(c, "authentication required")
			c.Abort()
			return
		}

		c.Next()
	}
}

// GetCurrentUser returns the authenticated user for the request, if any.
func GetCurrentUser(c *gin.Context) (*CurrentUser, bool) {
	v, exists := c.Get(ContextKeyUser)
	if !exists {
		return nil, false
	}

	user, ok := v.(*CurrentUser)
	return user, ok
}
