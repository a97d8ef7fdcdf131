package model

import (
	"time"
)

// Course is the top-level content container. Curriculums are ordered by
// their Order field and cascade on delete.
type Course struct {
	ID          string       `gorm:"primaryKey;uuid;not null" json:"id"`
	Title       string       `gorm:"not null" json:"title"`
	Description *string      `json:"description"`
	IsPublished bool         `gorm:"not null;default:false" json:"isPublished"`
	PublishedAt *time.Time   `json:"publishedAt"`
	Curriculums []Curriculum `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE" json:"curriculums,omitempty"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

func (Course) TableName() string {
	return "courses"
}
