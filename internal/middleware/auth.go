// Package middleware contains the Gin middleware shared by all routes.
package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"chatroom-registry/internal/domain"
	"chatroom-registry/internal/service"
)

// Context keys set by the auth gate.
const (
	ContextUserKey   = "current_user"
	ContextUserIDKey = "user_id"
)

// SessionCookieName is the cookie carrying the bearer token. Its value
// is "Bearer <token>", mirroring the Authorization header format.
const SessionCookieName = "access_token"

// ErrMissingToken indicates the request carried no token material at all.
var ErrMissingToken = errors.New("missing authentication token")

// ErrMalformedToken indicates token material was present but not in the
// expected "Bearer <token>" shape.
var ErrMalformedToken = errors.New("malformed authentication token")

// Auth is the gate every protected handler composes through: extract the
// bearer token from the session cookie or the Authorization header,
// validate it, and resolve the embedded subject to a stored user. Any
// failure, including a subject that no longer resolves, aborts with 401.
// The gate performs no mutation.
func Auth(tokens *service.TokenManager, auth *service.AuthService) gin.HandlerFunc {
	if tokens == nil || auth == nil {
		panic("TokenManager and AuthService are required for Auth middleware")
	}

	return func(c *gin.Context) {
		user, err := resolveUser(c, tokens, auth)
		if err != nil {
			abortUnauthenticated(c, err)
			return
		}
		c.Set(ContextUserKey, user)
		c.Set(ContextUserIDKey, user.ID)
		logrus.WithField("user_id", user.ID).Debug("Auth middleware: user authenticated")
		c.Next()
	}
}

// OptionalAuth resolves the current user when valid token material is
// present but never aborts. Pages with both anonymous and authenticated
// renderings (the index) use it.
func OptionalAuth(tokens *service.TokenManager, auth *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if user, err := resolveUser(c, tokens, auth); err == nil {
			c.Set(ContextUserKey, user)
			c.Set(ContextUserIDKey, user.ID)
		}
		c.Next()
	}
}

// CurrentUser returns the user resolved by the auth gate, or nil when
// the request is anonymous.
func CurrentUser(c *gin.Context) *domain.User {
	v, exists := c.Get(ContextUserKey)
	if !exists {
		return nil
	}
	user, ok := v.(*domain.User)
	if !ok {
		return nil
	}
	return user
}

func resolveUser(c *gin.Context, tokens *service.TokenManager, auth *service.AuthService) (*domain.User, error) {
	tokenStr, err := extractToken(c)
	if err != nil {
		return nil, err
	}
	subject, err := tokens.Validate(tokenStr)
	if err != nil {
		return nil, err
	}
	user, err := auth.GetUserByEmail(c.Request.Context(), subject)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// extractToken prefers the session cookie and falls back to the
// Authorization header. Both carry "Bearer <token>".
func extractToken(c *gin.Context) (string, error) {
	if cookie, err := c.Cookie(SessionCookieName); err == nil && cookie != "" {
		return stripBearer(cookie)
	}
	if header := c.GetHeader("Authorization"); header != "" {
		return stripBearer(header)
	}
	return "", ErrMissingToken
}

func stripBearer(value string) (string, error) {
	parts := strings.SplitN(value, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", ErrMalformedToken
	}
	return parts[1], nil
}

func abortUnauthenticated(c *gin.Context, err error) {
	logCtx := logrus.WithError(err)
	switch {
	case errors.Is(err, ErrMissingToken):
		logCtx.Warn("Auth middleware: no token material on request")
	case errors.Is(err, ErrMalformedToken):
		logCtx.Warn("Auth middleware: malformed token material")
	case errors.Is(err, service.ErrTokenExpired):
		logCtx.Warn("Auth middleware: token expired")
	case errors.Is(err, service.ErrUserNotFound):
		// Token subject no longer resolves to an account; handled
		// identically to an invalid token.
		logCtx.Warn("Auth middleware: token subject not found")
	default:
		logCtx.Warn("Auth middleware: invalid token")
	}
	c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
	c.Abort()
}
