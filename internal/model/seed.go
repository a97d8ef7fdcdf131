package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Seed installs a minimal working data set: an admin, a viewer, and one
// sample course. Safe to re-run; it bails out if any user already exists.
func Seed(db *gorm.DB) error {
	var count int64
	if err := db.Model(&User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		logrus.Info("seed skipped, users already present")
		return nil
	}

	adminHash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	viewerHash, err := bcrypt.GenerateFromPassword([]byte("viewer123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	users := []User{
		{ID: uuid.New().String(), Email: "admin@example.com", Name: "Admin", Password: string(adminHash), Role: RoleAdmin},
		{ID: uuid.New().String(), Email: "viewer@example.com", Name: "Viewer", Password: string(viewerHash), Role: RoleViewer},
	}
	if err := db.Create(&users).Error; err != nil {
		return err
	}

	content, err := json.Marshal([]map[string]any{
		{
			"id":       "block-1",
			"type":     "heading",
			"props":    map[string]any{"level": 1, "textColor": "default", "backgroundColor": "default", "textAlignment": "left"},
			"content":  []map[string]any{{"type": "text", "text": "Welcome!", "styles": map[string]any{}}},
			"children": []any{},
		},
		{
			"id":       "block-2",
			"type":     "paragraph",
			"props":    map[string]any{"textColor": "default", "backgroundColor": "default", "textAlignment": "left"},
			"content":  []map[string]any{{"type": "text", "text": "This is sample content. Edit it with the block editor.", "styles": map[string]any{}}},
			"children": []any{},
		},
	})
	if err != nil {
		return err
	}

	desc := "A sample course used to verify the editor end to end."
	course := Course{
		ID:          uuid.New().String(),
		Title:       "Sample Course",
		Description: &desc,
		Curriculums: []Curriculum{
			{
				ID:    uuid.New().String(),
				Title: "1. Getting Started",
				Order: 0,
				Pages: []Page{
					{ID: uuid.New().String(), Title: "Introduction", Order: 0, Content: content},
					{ID: uuid.New().String(), Title: "Installation", Order: 1, Content: content},
				},
			},
		},
		CreatedAt: time.Now(),
	}
	if err := db.Create(&course).Error; err != nil {
		return err
	}

	logrus.Infof("seeded course %s with %d users", course.ID, len(users))
	return nil
}
