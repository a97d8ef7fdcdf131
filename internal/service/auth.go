package service

import (
	"context"
	"errors"

	"github.com/courseforge/courseforge/internal/model"
	"github.com/courseforge/courseforge/internal/store"
	"golang.org/x/crypto/bcrypt"
)

// NewAuthService creates a new AuthService.
func NewAuthService(store store.Store) *AuthService {
	return &AuthService{
		store: store,
	}
}

// AuthService verifies admin credentials for the authoring surface.
type AuthService struct {
	store store.Store
}

// Login checks the credentials and requires the admin role. The error is
// the same for a missing account and a wrong password.
func (a *AuthService) Login(ctx context.Context, email, password string) (*model.User, error) {
	user, err := a.store.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if user.Role != model.RoleAdmin {
		return nil, ErrNotAdmin
	}

	return user, nil
}
