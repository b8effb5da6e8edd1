package ledger

import (
	"fmt"
	"sync"
	"testing"

	"referral-api/internal/models"
	"referral-api/internal/store"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := store.InitDB(dsn)
	require.NoError(t, err)
	return db
}

func TestEnsureUserCreatesWithZero(t *testing.T) {
	db := setupDB(t)

	points, err := EnsureUser(db, "u1")
	require.NoError(t, err)
	require.Equal(t, 0, points)

	var u models.User
	require.NoError(t, db.First(&u, "user_id = ?", "u1").Error)
	require.Equal(t, 0, u.Points)
	require.False(t, u.CreatedAt.IsZero())
}

func TestEnsureUserReturnsExistingBalance(t *testing.T) {
	db := setupDB(t)

	_, err := AddPoints(db, "u1", 30)
	require.NoError(t, err)

	points, err := EnsureUser(db, "u1")
	require.NoError(t, err)
	require.Equal(t, 30, points)
}

func TestEnsureUserIdempotent(t *testing.T) {
	db := setupDB(t)

	for i := 0; i < 10; i++ {
		points, err := EnsureUser(db, "u1")
		require.NoError(t, err)
		require.Equal(t, 0, points)
	}

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	require.Equal(t, int64(1), count)
}

func TestAddPointsAccumulates(t *testing.T) {
	db := setupDB(t)

	total, err := AddPoints(db, "u1", 50)
	require.NoError(t, err)
	require.Equal(t, 50, total)

	total, err = AddPoints(db, "u1", 25)
	require.NoError(t, err)
	require.Equal(t, 75, total)

	// Other users' operations do not interfere
	total, err = AddPoints(db, "u2", 7)
	require.NoError(t, err)
	require.Equal(t, 7, total)

	points, err := EnsureUser(db, "u1")
	require.NoError(t, err)
	require.Equal(t, 75, points)
}

func TestAddPointsTouchesUpdatedAt(t *testing.T) {
	db := setupDB(t)

	_, err := AddPoints(db, "u1", 1)
	require.NoError(t, err)
	var before models.User
	require.NoError(t, db.First(&before, "user_id = ?", "u1").Error)

	_, err = AddPoints(db, "u1", 1)
	require.NoError(t, err)
	var after models.User
	require.NoError(t, db.First(&after, "user_id = ?", "u1").Error)

	require.Equal(t, before.CreatedAt, after.CreatedAt)
	require.False(t, after.UpdatedAt.Before(before.UpdatedAt))
}

func TestAddPointsRejectsNonPositive(t *testing.T) {
	db := setupDB(t)

	for _, amount := range []int{0, -1, -100} {
		_, err := AddPoints(db, "u1", amount)
		require.ErrorIs(t, err, ErrInvalidAmount)
	}

	// Rejected calls never touch the store
	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	require.Equal(t, int64(0), count)
}

func TestAddPointsConcurrentNoLostUpdates(t *testing.T) {
	db := setupDB(t)

	const workers = 25
	const perCall = 4
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := AddPoints(db, "racer", perCall)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	points, err := EnsureUser(db, "racer")
	require.NoError(t, err)
	require.Equal(t, workers*perCall, points)
}
