// Package authpw provides email/password authentication over the user
// collection.
package authpw

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"catalyst/api/internal/rbac"
	"catalyst/api/internal/store"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is the single failure surfaced for a bad email
// or password; the cause is deliberately not distinguished.
var ErrInvalidCredentials = errors.New("invalid email or password")

// UserStore defines the storage interface for auth.
type UserStore interface {
	GetUserByEmail(ctx context.Context, email string) (store.User, error)
	CreateUser(ctx context.Context, user store.User) error
}

// Service authenticates users and registers new accounts.
type Service struct {
	store UserStore
	newID func() string
}

// NewService creates an auth service. newID supplies identifiers for
// signed-up accounts.
func NewService(userStore UserStore, newID func() string) *Service {
	return &Service{store: userStore, newID: newID}
}

// SignInRequest contains sign-in parameters.
type SignInRequest struct {
	Email    string
	Password string
}

// SignIn authenticates a user with a bcrypt compare against the stored
// hash.
func (s *Service) SignIn(ctx context.Context, req SignInRequest) (store.User, error) {
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return store.User{}, ErrInvalidCredentials
	}

	user, err := s.store.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return store.User{}, ErrInvalidCredentials
	}
	if user.Status == "deactivated" {
		return store.User{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return store.User{}, ErrInvalidCredentials
	}
	return user, nil
}

// SignUpRequest contains sign-up parameters.
type SignUpRequest struct {
	Name     string
	Email    string
	Password string
	Role     string
}

// SignUp creates a new account. Unknown roles fall back to researcher.
func (s *Service) SignUp(ctx context.Context, req SignUpRequest) (store.User, error) {
	name := strings.TrimSpace(req.Name)
	email := strings.TrimSpace(req.Email)
	if name == "" || email == "" || req.Password == "" {
		return store.User{}, errors.New("name, email, and password are required")
	}
	if len(req.Password) < 8 {
		return store.User{}, errors.New("password must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return store.User{}, fmt.Errorf("hash password: %w", err)
	}

	user := store.User{
		ID:           s.newID(),
		Name:         name,
		Email:        email,
		Role:         string(rbac.Normalize(req.Role)),
		Status:       "active",
		PasswordHash: string(hash),
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		return store.User{}, err
	}
	return user, nil
}
