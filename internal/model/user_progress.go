package model

import (
	"time"

	"gorm.io/datatypes"
)

// UserProgress tracks course completion for an anonymous viewer session.
// CompletedPages is a JSON list of page ids; Progress is the derived
// percentage, stored so course listings do not recount pages.
type UserProgress struct {
	UserID         string         `gorm:"primaryKey;not null" json:"userId"`
	CourseID       string         `gorm:"primaryKey;uuid;not null" json:"courseId"`
	CompletedPages datatypes.JSON `json:"completedPages"`
	LastPageID     *string        `json:"lastPageId"`
	Progress       float64        `gorm:"not null;default:0" json:"progress"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
}

func (UserProgress) TableName() string {
	return "user_progress"
}
