package service

import (
	"context"
	"testing"

	"github.com/courseforge/courseforge/internal/model"
	"github.com/courseforge/courseforge/internal/store"
	"github.com/courseforge/courseforge/internal/tester"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

func TestAuthService_Login(t *testing.T) {
	tester.Setup()

	db := store.NewGormStore(tester.TestDB())
	auth := NewAuthService(db)

	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.MinCost)
	assert.NoError(t, err)

	admin := &model.User{
		ID:       uuid.New().String(),
		Email:    "admin@example.com",
		Name:     "Admin",
		Password: string(hash),
		Role:     model.RoleAdmin,
	}
	assert.NoError(t, db.CreateUser(context.TODO(), admin))

	viewer := &model.User{
		ID:       uuid.New().String(),
		Email:    "viewer@example.com",
		Name:     "Viewer",
		Password: string(hash),
		Role:     model.RoleViewer,
	}
	assert.NoError(t, db.CreateUser(context.TODO(), viewer))

	user, err := auth.Login(context.TODO(), "admin@example.com", "admin123")
	assert.NoError(t, err)
	assert.Equal(t, admin.ID, user.ID)

	// a wrong password and an unknown account fail the same way
	_, err = auth.Login(context.TODO(), "admin@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = auth.Login(context.TODO(), "nobody@example.com", "admin123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// the authoring surface is admin only
	_, err = auth.Login(context.TODO(), "viewer@example.com", "admin123")
	assert.ErrorIs(t, err, ErrNotAdmin)
}
