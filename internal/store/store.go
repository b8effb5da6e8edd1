package store

import (
	"referral-api/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var db *gorm.DB

func InitDB(path string) (*gorm.DB, error) {
	d, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	if err := d.AutoMigrate(&models.User{}, &models.Referral{}, &models.WebhookLog{}); err != nil {
		return nil, err
	}
	// SQLite allows one writer at a time; capping the pool keeps
	// concurrent accrual transactions queued instead of failing busy.
	sqlDB, err := d.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	return d, nil
}

func SetDB(d *gorm.DB) { db = d }

func GetDB() *gorm.DB { return db }
