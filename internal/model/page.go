package model

import (
	"time"

	"gorm.io/datatypes"
)

// Page is the leaf content unit. Content holds the live draft block tree;
// PublishedContent is the snapshot taken at publish time and is the version
// the viewer prefers. LikeCount is denormalized and kept in step with the
// page_likes rows inside the like/unlike transaction.
type Page struct {
	ID               string         `gorm:"primaryKey;uuid;not null" json:"id"`
	CurriculumID     string         `gorm:"uuid;not null;index" json:"curriculumId"`
	Title            string         `gorm:"not null" json:"title"`
	Order            int            `gorm:"column:sort_order;not null;default:0" json:"order"`
	Content          datatypes.JSON `json:"content"`
	PublishedContent datatypes.JSON `json:"publishedContent"`
	IsPublished      bool           `gorm:"not null;default:false" json:"isPublished"`
	PublishedAt      *time.Time     `json:"publishedAt"`
	LikeCount        int            `gorm:"not null;default:0" json:"likeCount"`
	Versions         []PageVersion  `gorm:"foreignKey:PageID;constraint:OnDelete:CASCADE" json:"-"`
	Likes            []PageLike     `gorm:"foreignKey:PageID;constraint:OnDelete:CASCADE" json:"-"`
	Comments         []Comment      `gorm:"foreignKey:PageID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt        time.Time      `json:"createdAt"`
	UpdatedAt        time.Time      `json:"updatedAt"`
}

func (Page) TableName() string {
	return "pages"
}
