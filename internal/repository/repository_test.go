package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"skillswap/internal/database"
	"skillswap/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupRepoTestDB(t *testing.T) *gorm.DB {
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

func createTestUser(t *testing.T, db *gorm.DB, n int) *models.User {
	t.Helper()
	user := &models.User{
		FirstName:    "Test",
		LastName:     fmt.Sprintf("User%d", n),
		Email:        fmt.Sprintf("user%d@example.com", n),
		PasswordHash: "x",
		IsPublic:     true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func TestSwapRepositoryPendingTupleUnique(t *testing.T) {
	t.Parallel()
	db := setupRepoTestDB(t)
	repo := NewSwapRepository(db)
	ctx := context.Background()

	alice := createTestUser(t, db, 1)
	bob := createTestUser(t, db, 2)

	first := &models.SwapRequest{
		RequesterID:  alice.ID,
		RequestedID:  bob.ID,
		SkillOffered: "Guitar",
		SkillWanted:  "Spanish",
		Status:       models.SwapStatusPending,
	}
	require.NoError(t, repo.Create(ctx, first))

	// Same tuple while the first is still pending
	dup := &models.SwapRequest{
		RequesterID:  alice.ID,
		RequestedID:  bob.ID,
		SkillOffered: "Guitar",
		SkillWanted:  "Spanish",
		Status:       models.SwapStatusPending,
	}
	err := repo.Create(ctx, dup)
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, models.CodeDuplicateRequest, appErr.Code)

	// A different skill pairing between the same pair is fine
	other := &models.SwapRequest{
		RequesterID:  alice.ID,
		RequestedID:  bob.ID,
		SkillOffered: "Guitar",
		SkillWanted:  "Yoga",
		Status:       models.SwapStatusPending,
	}
	assert.NoError(t, repo.Create(ctx, other))

	// Once the first request leaves pending, the tuple may be reused
	require.NoError(t, repo.UpdateStatus(ctx, first.ID, models.SwapStatusDeclined))
	again := &models.SwapRequest{
		RequesterID:  alice.ID,
		RequestedID:  bob.ID,
		SkillOffered: "Guitar",
		SkillWanted:  "Spanish",
		Status:       models.SwapStatusPending,
	}
	assert.NoError(t, repo.Create(ctx, again))
}

func TestSwapRepositoryFindPendingTuple(t *testing.T) {
	t.Parallel()
	db := setupRepoTestDB(t)
	repo := NewSwapRepository(db)
	ctx := context.Background()

	alice := createTestUser(t, db, 1)
	bob := createTestUser(t, db, 2)

	found, err := repo.FindPendingTuple(ctx, alice.ID, bob.ID, "Guitar", "Spanish")
	require.NoError(t, err)
	assert.Nil(t, found, "no request yet")

	swap := &models.SwapRequest{
		RequesterID:  alice.ID,
		RequestedID:  bob.ID,
		SkillOffered: "Guitar",
		SkillWanted:  "Spanish",
		Status:       models.SwapStatusPending,
	}
	require.NoError(t, repo.Create(ctx, swap))

	found, err = repo.FindPendingTuple(ctx, alice.ID, bob.ID, "Guitar", "Spanish")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, swap.ID, found.ID)
}

func TestSwapRepositoryCancelAllPendingForUser(t *testing.T) {
	t.Parallel()
	db := setupRepoTestDB(t)
	repo := NewSwapRepository(db)
	ctx := context.Background()

	alice := createTestUser(t, db, 1)
	bob := createTestUser(t, db, 2)
	carol := createTestUser(t, db, 3)

	seedSwaps := []models.SwapRequest{
		{RequesterID: alice.ID, RequestedID: bob.ID, SkillOffered: "A", SkillWanted: "B", Status: models.SwapStatusPending},
		{RequesterID: carol.ID, RequestedID: alice.ID, SkillOffered: "C", SkillWanted: "D", Status: models.SwapStatusPending},
		{RequesterID: alice.ID, RequestedID: carol.ID, SkillOffered: "E", SkillWanted: "F", Status: models.SwapStatusAccepted},
		{RequesterID: bob.ID, RequestedID: carol.ID, SkillOffered: "G", SkillWanted: "H", Status: models.SwapStatusPending},
	}
	for i := range seedSwaps {
		require.NoError(t, db.Create(&seedSwaps[i]).Error)
	}

	n, err := repo.CancelAllPendingForUser(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n, "both pending requests involving alice")

	// The accepted swap is untouched
	var accepted models.SwapRequest
	require.NoError(t, db.First(&accepted, seedSwaps[2].ID).Error)
	assert.Equal(t, models.SwapStatusAccepted, accepted.Status)

	// The unrelated pending swap is untouched
	var unrelated models.SwapRequest
	require.NoError(t, db.First(&unrelated, seedSwaps[3].ID).Error)
	assert.Equal(t, models.SwapStatusPending, unrelated.Status)
}

func TestUserRepositoryBrowse(t *testing.T) {
	t.Parallel()
	db := setupRepoTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	viewer := createTestUser(t, db, 1)
	guitarist := createTestUser(t, db, 2)
	chef := createTestUser(t, db, 3)

	private := createTestUser(t, db, 4)
	require.NoError(t, db.Model(private).Update("is_public", false).Error)

	admin := createTestUser(t, db, 5)
	require.NoError(t, db.Model(admin).Update("is_admin", true).Error)

	require.NoError(t, db.Create(&models.Skill{Name: "Electric Guitar", Category: "music", UserID: guitarist.ID}).Error)
	require.NoError(t, db.Create(&models.Skill{Name: "Thai Cooking", Category: "cooking", UserID: chef.ID}).Error)

	// The learner has no offered skills, only a wanted one
	learner := createTestUser(t, db, 6)
	require.NoError(t, db.Create(&models.SkillWanted{Name: "Guitar Basics", Category: "music", UserID: learner.ID}).Error)

	t.Run("excludes viewer, private and admin accounts", func(t *testing.T) {
		users, err := repo.Browse(ctx, viewer.ID, BrowseFilter{})
		require.NoError(t, err)
		ids := make(map[uint]bool)
		for _, u := range users {
			ids[u.ID] = true
		}
		assert.False(t, ids[viewer.ID])
		assert.False(t, ids[private.ID])
		assert.False(t, ids[admin.ID])
		assert.True(t, ids[guitarist.ID])
		assert.True(t, ids[chef.ID])
	})

	t.Run("skill filter is a case-insensitive substring", func(t *testing.T) {
		users, err := repo.Browse(ctx, viewer.ID, BrowseFilter{Skill: "guitar"})
		require.NoError(t, err)
		require.Len(t, users, 2)
		ids := map[uint]bool{users[0].ID: true, users[1].ID: true}
		assert.True(t, ids[guitarist.ID])
		assert.True(t, ids[learner.ID], "wanted skills match too")
	})

	t.Run("category filter matches exactly", func(t *testing.T) {
		users, err := repo.Browse(ctx, viewer.ID, BrowseFilter{Category: "cooking"})
		require.NoError(t, err)
		require.Len(t, users, 1)
		assert.Equal(t, chef.ID, users[0].ID)
	})

	t.Run("category filter covers wanted skills", func(t *testing.T) {
		users, err := repo.Browse(ctx, viewer.ID, BrowseFilter{Category: "music"})
		require.NoError(t, err)
		require.Len(t, users, 2)
		ids := map[uint]bool{users[0].ID: true, users[1].ID: true}
		assert.True(t, ids[guitarist.ID])
		assert.True(t, ids[learner.ID])
	})

	t.Run("no match", func(t *testing.T) {
		users, err := repo.Browse(ctx, viewer.ID, BrowseFilter{Skill: "juggling"})
		require.NoError(t, err)
		assert.Empty(t, users)
	})
}

func TestUserRepositoryDuplicateEmail(t *testing.T) {
	t.Parallel()
	db := setupRepoTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	first := &models.User{FirstName: "A", LastName: "B", Email: "same@example.com", PasswordHash: "x"}
	require.NoError(t, repo.Create(ctx, first))

	second := &models.User{FirstName: "C", LastName: "D", Email: "same@example.com", PasswordHash: "x"}
	err := repo.Create(ctx, second)
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, models.CodeValidation, appErr.Code)
}

func TestUserRepositoryNotificationCounter(t *testing.T) {
	t.Parallel()
	db := setupRepoTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, 1)

	require.NoError(t, repo.IncrementNotifications(ctx, user.ID))
	require.NoError(t, repo.IncrementNotifications(ctx, user.ID))

	got, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.UnreadNotifications)

	require.NoError(t, repo.ClearNotifications(ctx, user.ID))
	got, err = repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.UnreadNotifications)
}

func TestSkillRepositoryRemoveEnforcesOwnership(t *testing.T) {
	t.Parallel()
	db := setupRepoTestDB(t)
	repo := NewSkillRepository(db)
	ctx := context.Background()

	owner := createTestUser(t, db, 1)
	other := createTestUser(t, db, 2)

	skill := &models.Skill{Name: "Guitar", Category: "music", UserID: owner.ID}
	require.NoError(t, repo.AddOffered(ctx, skill))

	err := repo.RemoveOffered(ctx, other.ID, skill.ID)
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, models.CodeNotFound, appErr.Code)

	require.NoError(t, repo.RemoveOffered(ctx, owner.ID, skill.ID))

	remaining, err := repo.ListOffered(ctx, owner.ID)
	require.NoError(t, err)
	assert.Empty(t, remaining)
}

func TestFeedbackRepositoryUniquePerSwapAndAuthor(t *testing.T) {
	t.Parallel()
	db := setupRepoTestDB(t)
	repo := NewFeedbackRepository(db)
	ctx := context.Background()

	alice := createTestUser(t, db, 1)
	bob := createTestUser(t, db, 2)

	swap := &models.SwapRequest{
		RequesterID:  alice.ID,
		RequestedID:  bob.ID,
		SkillOffered: "Guitar",
		SkillWanted:  "Spanish",
		Status:       models.SwapStatusCompleted,
	}
	require.NoError(t, db.Create(swap).Error)

	require.NoError(t, repo.Create(ctx, &models.Feedback{
		FromUserID: alice.ID, ToUserID: bob.ID, SwapRequestID: swap.ID, Rating: 5,
	}))

	// Same author, same swap
	err := repo.Create(ctx, &models.Feedback{
		FromUserID: alice.ID, ToUserID: bob.ID, SwapRequestID: swap.ID, Rating: 4,
	})
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, models.CodeDuplicateFeedback, appErr.Code)

	// The other participant may still review the same swap
	assert.NoError(t, repo.Create(ctx, &models.Feedback{
		FromUserID: bob.ID, ToUserID: alice.ID, SwapRequestID: swap.ID, Rating: 3,
	}))

	exists, err := repo.ExistsForSwapFrom(ctx, swap.ID, alice.ID)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestFeedbackRepositoryAverageRating(t *testing.T) {
	t.Parallel()
	db := setupRepoTestDB(t)
	repo := NewFeedbackRepository(db)
	ctx := context.Background()

	alice := createTestUser(t, db, 1)
	bob := createTestUser(t, db, 2)
	carol := createTestUser(t, db, 3)

	avg, count, err := repo.AverageRating(ctx, alice.ID)
	require.NoError(t, err)
	assert.Zero(t, avg)
	assert.Zero(t, count)

	swaps := make([]*models.SwapRequest, 2)
	for i, from := range []uint{bob.ID, carol.ID} {
		swaps[i] = &models.SwapRequest{
			RequesterID:  from,
			RequestedID:  alice.ID,
			SkillOffered: fmt.Sprintf("S%d", i),
			SkillWanted:  "T",
			Status:       models.SwapStatusCompleted,
		}
		require.NoError(t, db.Create(swaps[i]).Error)
	}

	require.NoError(t, repo.Create(ctx, &models.Feedback{FromUserID: bob.ID, ToUserID: alice.ID, SwapRequestID: swaps[0].ID, Rating: 5}))
	require.NoError(t, repo.Create(ctx, &models.Feedback{FromUserID: carol.ID, ToUserID: alice.ID, SwapRequestID: swaps[1].ID, Rating: 4}))

	avg, count, err = repo.AverageRating(ctx, alice.ID)
	require.NoError(t, err)
	assert.InDelta(t, 4.5, avg, 0.001)
	assert.Equal(t, int64(2), count)
}
