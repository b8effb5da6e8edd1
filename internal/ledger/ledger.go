// Package ledger holds the point-accrual logic. Both operations run as
// single transactions so concurrent calls for the same user cannot lose
// updates; ordering comes entirely from the store's transaction
// isolation, there are no in-process locks.
package ledger

import (
	"errors"
	"time"

	"referral-api/internal/models"

	"gorm.io/gorm"
)

// ErrInvalidAmount is returned by AddPoints before any store access
// when the amount is zero or negative.
var ErrInvalidAmount = errors.New("points amount must be a positive integer")

// EnsureUser returns the current point total for userID, creating the
// record with zero points if it does not exist yet. Safe to call
// concurrently for the same id; the read-or-create is one transaction.
func EnsureUser(db *gorm.DB, userID string) (int, error) {
	var points int
	err := db.Transaction(func(tx *gorm.DB) error {
		var u models.User
		if err := tx.First(&u, "user_id = ?", userID).Error; err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			now := time.Now()
			u = models.User{UserID: userID, Points: 0, CreatedAt: now, UpdatedAt: now}
			if err := tx.Create(&u).Error; err != nil {
				return err
			}
		}
		points = u.Points
		return nil
	})
	if err != nil {
		return 0, err
	}
	return points, nil
}

// AddPoints atomically adds amount to the user's balance and returns
// the new total. A missing record is created inside the same
// transaction with the amount as its initial balance. A reported error
// means nothing was committed.
func AddPoints(db *gorm.DB, userID string, amount int) (int, error) {
	if amount <= 0 {
		return 0, ErrInvalidAmount
	}
	var total int
	err := db.Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		var u models.User
		if err := tx.First(&u, "user_id = ?", userID).Error; err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			u = models.User{UserID: userID, Points: amount, CreatedAt: now, UpdatedAt: now}
			if err := tx.Create(&u).Error; err != nil {
				return err
			}
			total = amount
			return nil
		}
		u.Points += amount
		u.UpdatedAt = now
		if err := tx.Save(&u).Error; err != nil {
			return err
		}
		total = u.Points
		return nil
	})
	if err != nil {
		return 0, err
	}
	return total, nil
}
