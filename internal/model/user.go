package model

import (
	"time"
)

const (
	RoleAdmin  = "ADMIN"
	RoleViewer = "VIEWER"

	// GuestEmail identifies the shared account that anonymous viewer
	// comments are attributed to.
	GuestEmail = "guest@viewer.local"
)

type User struct {
	ID        string    `gorm:"primaryKey;uuid;not null" json:"id"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Name      string    `gorm:"not null" json:"name"`
	Password  string    `gorm:"not null" json:"-"`
	Role      string    `gorm:"not null;default:VIEWER" json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (User) TableName() string {
	return "users"
}
