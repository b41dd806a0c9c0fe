package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"chatroom-registry/internal/domain"
	"chatroom-registry/internal/repository"
)

// AuthService handles registration, login and token-subject resolution.
type AuthService struct {
	userRepo repository.UserRepository
	tokens   *TokenManager
}

// NewAuthService creates an AuthService.
func NewAuthService(userRepo repository.UserRepository, tokens *TokenManager) *AuthService {
	if userRepo == nil {
		panic("UserRepository cannot be nil for AuthService")
	}
	if tokens == nil {
		panic("TokenManager cannot be nil for AuthService")
	}
	return &AuthService{userRepo: userRepo, tokens: tokens}
}

// Register creates a new account. There is no existence pre-check: the
// unique index on email is the authority, and a constraint violation
// comes back as ErrDuplicateEmail. Registration never issues a token;
// the caller is sent through the login flow.
func (s *AuthService) Register(ctx context.Context, email, password string) (*domain.User, error) {
	logCtx := logrus.WithField("email", email)

	if email == "" || password == "" {
		return nil, ErrInvalidInput
	}

	hashedPassword, err := hashPassword(password)
	if err != nil {
		logCtx.WithError(err).Error("Failed to hash password during registration")
		return nil, ErrInternalServer
	}

	user := &domain.User{
		Email:    email,
		Password: hashedPassword,
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEntry) {
			logCtx.WithError(err).Warn("Registration failed: email already registered")
			return nil, ErrDuplicateEmail
		}
		logCtx.WithError(err).Error("Database error during user creation")
		return nil, ErrInternalServer
	}

	logCtx.WithField("user_id", user.ID).Info("User registered successfully")
	user.Password = "" // never hand the hash back out
	return user, nil
}

// Login verifies credentials and issues a session token. A missing
// account and a wrong password both come back as
// ErrAuthenticationFailed so callers cannot enumerate emails.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	logCtx := logrus.WithField("email", email)

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			logCtx.Warn("Login attempt failed: user not found")
		} else {
			logCtx.WithError(err).Warn("Login attempt failed: error finding user")
		}
		return "", ErrAuthenticationFailed
	}
	if user == nil {
		logCtx.Warn("Login attempt failed: repo returned nil user without error")
		return "", ErrAuthenticationFailed
	}

	if !checkPassword(password, user.Password) {
		logCtx.Warn("Login attempt failed: invalid password")
		return "", ErrAuthenticationFailed
	}

	token, err := s.tokens.Issue(user.Email)
	if err != nil {
		logCtx.WithError(err).Error("Failed to generate token during login")
		return "", ErrInternalServer
	}

	logCtx.WithField("user_id", user.ID).Info("User logged in successfully")
	return token, nil
}

// GetUserByEmail resolves a token subject back to a stored user. Used by
// the auth gate after token validation; a subject that no longer
// resolves is treated by callers exactly like an invalid token.
func (s *AuthService) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		logrus.WithError(err).WithField("email", email).Error("Repository error resolving token subject")
		return nil, ErrInternalServer
	}
	return user, nil
}

func hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to generate hash from password: %w", err)
	}
	return string(bytes), nil
}

func checkPassword(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
