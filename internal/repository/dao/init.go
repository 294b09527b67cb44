package dao

import "gorm.io/gorm"

func InitTables(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Constructor{},
		&Driver{},
		&Race{},
		&SprintRace{},
		&Prediction{},
		&SprintPrediction{},
		&ApiCache{},
	)
}
