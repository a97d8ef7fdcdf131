package model

import (
	"time"
)

// Curriculum is an ordered chapter within a course. Sibling Order values
// form a dense zero-based sequence; reorder rewrites all of them.
type Curriculum struct {
	ID        string    `gorm:"primaryKey;uuid;not null" json:"id"`
	CourseID  string    `gorm:"uuid;not null;index" json:"courseId"`
	Title     string    `gorm:"not null" json:"title"`
	Order     int       `gorm:"column:sort_order;not null;default:0" json:"order"`
	Pages     []Page    `gorm:"foreignKey:CurriculumID;constraint:OnDelete:CASCADE" json:"pages,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Curriculum) TableName() string {
	return "curriculums"
}
