package db

import (
	"portal-backend/internal/models"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func Open(dsn string) (*gorm.DB, error) {
	database, err := gorm.Open(mysql.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}

	if err := database.AutoMigrate(
		&models.Department{},
		&models.User{},
		&models.OTP{},
		&models.RefreshToken{},
		&models.Attendance{},
		&models.LeaveType{},
		&models.LeaveRequest{},
	); err != nil {
		return nil, err
	}

	return database, nil
}
