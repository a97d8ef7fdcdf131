package model

import (
	"time"
)

// PageVersion is an append-only snapshot of a page's content. Snapshots are
// stored through the configured compress codec; Compression records which
// codec wrote the row so older rows survive a codec change.
type PageVersion struct {
	ID          string    `gorm:"primaryKey;uuid;not null" json:"id"`
	PageID      string    `gorm:"uuid;not null;index" json:"pageId"`
	Content     []byte    `gorm:"not null" json:"-"`
	Compression string    `json:"-"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (PageVersion) TableName() string {
	return "page_versions"
}
