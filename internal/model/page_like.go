package model

import (
	"time"
)

// PageLike marks that an anonymous viewer session liked a page. UserID is
// the viewer_session cookie value, not a users row.
type PageLike struct {
	ID        string    `gorm:"primaryKey;uuid;not null" json:"id"`
	PageID    string    `gorm:"uuid;not null;uniqueIndex:idx_page_likes_page_user" json:"pageId"`
	UserID    string    `gorm:"not null;uniqueIndex:idx_page_likes_page_user" json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}

func (PageLike) TableName() string {
	return "page_likes"
}
