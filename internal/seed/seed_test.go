package seed

import (
	"testing"

	"skillswap/internal/database"
	"skillswap/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupSeedTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}
	return db
}

func TestEnsureAdmin(t *testing.T) {
	t.Parallel()
	db := setupSeedTestDB(t)

	admin, err := EnsureAdmin(db, " Admin@SkillSwap.local ", "AdminPass123")
	require.NoError(t, err)
	assert.True(t, admin.IsAdmin)
	assert.False(t, admin.IsPublic, "admin stays out of the directory")
	assert.Equal(t, "admin@skillswap.local", admin.Email)

	// Idempotent: a second call returns the existing account
	again, err := EnsureAdmin(db, "admin@skillswap.local", "DifferentPass456")
	require.NoError(t, err)
	assert.Equal(t, admin.ID, again.ID)

	var count int64
	db.Model(&models.User{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestSeederRun(t *testing.T) {
	t.Parallel()
	db := setupSeedTestDB(t)

	require.NoError(t, NewSeeder(db).Run(Options{NumUsers: 8, NumSwaps: 20}))

	var users int64
	db.Model(&models.User{}).Count(&users)
	assert.Equal(t, int64(8), users)

	var offered int64
	db.Model(&models.Skill{}).Count(&offered)
	assert.GreaterOrEqual(t, offered, users, "every user offers at least one skill")

	// Feedback only ever attaches to completed swaps
	var feedback []models.Feedback
	require.NoError(t, db.Find(&feedback).Error)
	for _, fb := range feedback {
		var swap models.SwapRequest
		require.NoError(t, db.First(&swap, fb.SwapRequestID).Error)
		assert.Equal(t, models.SwapStatusCompleted, swap.Status)
	}

	// Unread counters match pending received requests
	var seeded []models.User
	require.NoError(t, db.Find(&seeded).Error)
	for _, u := range seeded {
		var pending int64
		db.Model(&models.SwapRequest{}).
			Where("requested_id = ? AND status = ?", u.ID, models.SwapStatusPending).
			Count(&pending)
		assert.Equal(t, int(pending), u.UnreadNotifications)
	}
}

func TestSeederClearAll(t *testing.T) {
	t.Parallel()
	db := setupSeedTestDB(t)

	seeder := NewSeeder(db)
	require.NoError(t, seeder.Run(Options{NumUsers: 4, NumSwaps: 6}))
	require.NoError(t, seeder.ClearAll())

	for _, model := range []interface{}{
		&models.User{}, &models.Skill{}, &models.SkillWanted{},
		&models.SwapRequest{}, &models.Feedback{}, &models.AdminMessage{},
	} {
		var count int64
		require.NoError(t, db.Model(model).Count(&count).Error)
		assert.Zero(t, count)
	}
}
