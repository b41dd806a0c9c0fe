// Package http contains the Gin handlers for the chat-room registry.
package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"chatroom-registry/internal/middleware"
	"chatroom-registry/internal/service"
)

// AuthHandler serves the registration/login pages and actions plus the
// profile and logout endpoints.
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Index renders the landing page. Auth is optional: the template gets
// the authentication status and, when present, the visitor's email.
func (h *AuthHandler) Index(c *gin.Context) {
	user := middleware.CurrentUser(c)
	ctx := gin.H{"status": user != nil}
	if user != nil {
		ctx["user_email"] = user.Email
	}
	c.HTML(http.StatusOK, "index.html", ctx)
}

// RegisterPage renders the registration form.
func (h *AuthHandler) RegisterPage(c *gin.Context) {
	c.HTML(http.StatusOK, "register.html", gin.H{"title": "Register page"})
}

// RegisterRequest carries the registration credentials, accepted as a
// form post (HTML flow) or JSON.
type RegisterRequest struct {
	Email    string `form:"email" json:"email" binding:"required"`
	Password string `form:"password" json:"password" binding:"required"`
}

// Register creates the account and redirects to the login page. A fresh
// registration is deliberately not auto-authenticated: no token or
// cookie is issued here, the user logs in separately.
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		logrus.WithError(err).Warn("Handler.Register: invalid input format")
		ErrorResponse(c, http.StatusBadRequest, "Invalid input: email and password required")
		return
	}

	newUser, err := h.authService.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		logCtx := logrus.WithField("email", req.Email)
		if errors.Is(err, service.ErrDuplicateEmail) {
			logCtx.WithError(err).Warn("Handler.Register: duplicate email")
		} else {
			logCtx.WithError(err).Error("Handler.Register: registration failed")
		}
		HandleServiceError(c, err)
		return
	}

	logrus.WithField("user_id", newUser.ID).Info("Handler.Register: user registered successfully")
	c.Redirect(http.StatusSeeOther, "/login")
}

// LoginPage renders the login form.
func (h *AuthHandler) LoginPage(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{"title": "Login page"})
}

// LoginRequest carries login credentials. The email also binds from a
// "username" field for OAuth2 password-form compatibility.
type LoginRequest struct {
	Email    string `form:"email" json:"email"`
	Username string `form:"username" json:"username"`
	Password string `form:"password" json:"password" binding:"required"`
}

func (r *LoginRequest) email() string {
	if r.Email != "" {
		return r.Email
	}
	return r.Username
}

// Login verifies credentials, sets the session cookie and redirects to
// the profile page. The cookie value mirrors the Authorization header
// format: "Bearer <token>".
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBind(&req); err != nil || req.email() == "" {
		logrus.WithError(err).Warn("Handler.Login: invalid input format")
		ErrorResponse(c, http.StatusBadRequest, "Invalid input: email and password required")
		return
	}
	email := req.email()

	token, err := h.authService.Login(c.Request.Context(), email, req.Password)
	if err != nil {
		logCtx := logrus.WithField("email", email)
		if errors.Is(err, service.ErrAuthenticationFailed) {
			logCtx.WithError(err).Warn("Handler.Login: authentication failed")
		} else {
			logCtx.WithError(err).Error("Handler.Login: internal error during login")
		}
		HandleServiceError(c, err)
		return
	}

	logrus.WithField("email", email).Info("Handler.Login: user logged in successfully")
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookieName, "Bearer "+token, 0, "/", "", true, false)
	c.Redirect(http.StatusSeeOther, "/me")
}

// Me returns the profile message for the authenticated user.
func (h *AuthHandler) Me(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		ErrorResponse(c, http.StatusUnauthorized, "User not authenticated")
		return
	}
	SuccessResponse(c, http.StatusOK, gin.H{
		"message": fmt.Sprintf("Welcome to your cabinet, %s!", user.Email),
	})
}

// Logout clears the session cookie and redirects home. There is no
// server-side session to invalidate: the token itself stays valid until
// its expiry, clearing the cookie only removes it from this client.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookieName, "", -1, "/", "", true, false)
	c.Redirect(http.StatusSeeOther, "/")
}
