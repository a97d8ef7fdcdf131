package model

import (
	"time"
)

// Comment supports one level of nesting: replies carry the root comment's
// id in ParentID and are never parents themselves.
type Comment struct {
	ID        string    `gorm:"primaryKey;uuid;not null" json:"id"`
	PageID    string    `gorm:"uuid;not null;index" json:"pageId"`
	AuthorID  string    `gorm:"uuid;not null" json:"authorId"`
	Author    *User     `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	ParentID  *string   `gorm:"uuid;index" json:"parentId"`
	Content   string    `gorm:"not null" json:"content"`
	Resolved  bool      `gorm:"not null;default:false" json:"resolved"`
	Replies   []Comment `gorm:"foreignKey:ParentID" json:"replies,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Comment) TableName() string {
	return "comments"
}
