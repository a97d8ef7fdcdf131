package model

import "gorm.io/gorm"

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Course{},
		&Curriculum{},
		&Page{},
		&PageVersion{},
		&PageLike{},
		&UserProgress{},
		&Comment{},
	)
}
