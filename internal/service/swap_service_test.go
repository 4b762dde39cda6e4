package service

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

func setupServiceTestDB(t *testing.T) *gorm.DB {
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

func createServiceTestUser(t *testing.T, db *gorm.DB, n int) *models.User {
	t.Helper()
	user := &models.User{
		FirstName:    "Test",
		LastName:     fmt.Sprintf("User%d", n),
		Email:        fmt.Sprintf("svc-user%d@example.com", n),
		PasswordHash: "x",
		IsPublic:     true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func assertAppErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %#v", err)
	assert.Equal(t, code, appErr.Code)
}

func unreadCount(t *testing.T, db *gorm.DB, userID uint) int {
	t.Helper()
	var user models.User
	require.NoError(t, db.First(&user, userID).Error)
	return user.UnreadNotifications
}

func TestSwapServiceCreate(t *testing.T) {
	t.Parallel()
	db := setupServiceTestDB(t)
	svc := NewSwapService(db, nil)
	ctx := context.Background()

	alice := createServiceTestUser(t, db, 1)
	bob := createServiceTestUser(t, db, 2)

	swap, err := svc.Create(ctx, alice.ID, CreateSwapInput{
		RequestedID:  bob.ID,
		SkillOffered: "  Guitar ",
		SkillWanted:  "Spanish",
		Message:      "Trade lessons?",
	})
	require.NoError(t, err)
	assert.Equal(t, models.SwapStatusPending, swap.Status)
	assert.Equal(t, "Guitar", swap.SkillOffered, "skills are trimmed")
	assert.Equal(t, alice.ID, swap.Requester.ID)
	assert.Equal(t, bob.ID, swap.Requested.ID)

	assert.Equal(t, 1, unreadCount(t, db, bob.ID), "recipient is notified")
	assert.Equal(t, 0, unreadCount(t, db, alice.ID))
}

func TestSwapServiceCreateRejections(t *testing.T) {
	t.Parallel()
	db := setupServiceTestDB(t)
	svc := NewSwapService(db, nil)
	ctx := context.Background()

	alice := createServiceTestUser(t, db, 1)
	bob := createServiceTestUser(t, db, 2)
	admin := createServiceTestUser(t, db, 3)
	require.NoError(t, db.Model(admin).Update("is_admin", true).Error)

	t.Run("self request", func(t *testing.T) {
		_, err := svc.Create(ctx, alice.ID, CreateSwapInput{RequestedID: alice.ID, SkillOffered: "A", SkillWanted: "B"})
		assertAppErrorCode(t, err, models.CodeValidation)
	})

	t.Run("blank skills", func(t *testing.T) {
		_, err := svc.Create(ctx, alice.ID, CreateSwapInput{RequestedID: bob.ID, SkillOffered: "  ", SkillWanted: "B"})
		assertAppErrorCode(t, err, models.CodeValidation)
	})

	t.Run("unknown recipient", func(t *testing.T) {
		_, err := svc.Create(ctx, alice.ID, CreateSwapInput{RequestedID: 9999, SkillOffered: "A", SkillWanted: "B"})
		assertAppErrorCode(t, err, models.CodeNotFound)
	})

	t.Run("admin recipient", func(t *testing.T) {
		_, err := svc.Create(ctx, alice.ID, CreateSwapInput{RequestedID: admin.ID, SkillOffered: "A", SkillWanted: "B"})
		assertAppErrorCode(t, err, models.CodeValidation)
	})

	t.Run("duplicate pending tuple", func(t *testing.T) {
		input := CreateSwapInput{RequestedID: bob.ID, SkillOffered: "Guitar", SkillWanted: "Spanish"}
		_, err := svc.Create(ctx, alice.ID, input)
		require.NoError(t, err)
		_, err = svc.Create(ctx, alice.ID, input)
		assertAppErrorCode(t, err, models.CodeDuplicateRequest)
	})
}

func TestSwapServiceRespond(t *testing.T) {
	t.Parallel()
	db := setupServiceTestDB(t)
	svc := NewSwapService(db, nil)
	ctx := context.Background()

	alice := createServiceTestUser(t, db, 1)
	bob := createServiceTestUser(t, db, 2)

	swap, err := svc.Create(ctx, alice.ID, CreateSwapInput{RequestedID: bob.ID, SkillOffered: "A", SkillWanted: "B"})
	require.NoError(t, err)

	t.Run("requester cannot respond", func(t *testing.T) {
		_, err := svc.Respond(ctx, alice.ID, swap.ID, true)
		assertAppErrorCode(t, err, models.CodeUnauthorized)
	})

	t.Run("accept notifies the requester", func(t *testing.T) {
		updated, err := svc.Respond(ctx, bob.ID, swap.ID, true)
		require.NoError(t, err)
		assert.Equal(t, models.SwapStatusAccepted, updated.Status)
		assert.Equal(t, 1, unreadCount(t, db, alice.ID))
	})

	t.Run("responding twice is an invalid transition", func(t *testing.T) {
		_, err := svc.Respond(ctx, bob.ID, swap.ID, false)
		assertAppErrorCode(t, err, models.CodeInvalidTransition)
	})

	t.Run("decline", func(t *testing.T) {
		declined, err := svc.Create(ctx, alice.ID, CreateSwapInput{RequestedID: bob.ID, SkillOffered: "C", SkillWanted: "D"})
		require.NoError(t, err)
		updated, err := svc.Respond(ctx, bob.ID, declined.ID, false)
		require.NoError(t, err)
		assert.Equal(t, models.SwapStatusDeclined, updated.Status)
	})
}

func TestSwapServiceCancel(t *testing.T) {
	t.Parallel()
	db := setupServiceTestDB(t)
	svc := NewSwapService(db, nil)
	ctx := context.Background()

	alice := createServiceTestUser(t, db, 1)
	bob := createServiceTestUser(t, db, 2)

	swap, err := svc.Create(ctx, alice.ID, CreateSwapInput{RequestedID: bob.ID, SkillOffered: "A", SkillWanted: "B"})
	require.NoError(t, err)

	t.Run("only the requester may cancel", func(t *testing.T) {
		err := svc.Cancel(ctx, bob.ID, swap.ID)
		assertAppErrorCode(t, err, models.CodeUnauthorized)
	})

	t.Run("cancelling a pending request deletes it", func(t *testing.T) {
		require.NoError(t, svc.Cancel(ctx, alice.ID, swap.ID))
		var count int64
		db.Model(&models.SwapRequest{}).Where("id = ?", swap.ID).Count(&count)
		assert.Zero(t, count)
	})

	t.Run("cancelling a non-pending request is a no-op", func(t *testing.T) {
		accepted, err := svc.Create(ctx, alice.ID, CreateSwapInput{RequestedID: bob.ID, SkillOffered: "C", SkillWanted: "D"})
		require.NoError(t, err)
		_, err = svc.Respond(ctx, bob.ID, accepted.ID, true)
		require.NoError(t, err)

		require.NoError(t, svc.Cancel(ctx, alice.ID, accepted.ID))

		var still models.SwapRequest
		require.NoError(t, db.First(&still, accepted.ID).Error)
		assert.Equal(t, models.SwapStatusAccepted, still.Status)
	})
}

func TestSwapServiceComplete(t *testing.T) {
	t.Parallel()
	db := setupServiceTestDB(t)
	svc := NewSwapService(db, nil)
	ctx := context.Background()

	alice := createServiceTestUser(t, db, 1)
	bob := createServiceTestUser(t, db, 2)
	carol := createServiceTestUser(t, db, 3)

	swap, err := svc.Create(ctx, alice.ID, CreateSwapInput{RequestedID: bob.ID, SkillOffered: "A", SkillWanted: "B"})
	require.NoError(t, err)

	t.Run("pending swaps cannot be completed", func(t *testing.T) {
		_, err := svc.Complete(ctx, alice.ID, swap.ID)
		assertAppErrorCode(t, err, models.CodeInvalidTransition)
	})

	_, err = svc.Respond(ctx, bob.ID, swap.ID, true)
	require.NoError(t, err)
	aliceUnreadBefore := unreadCount(t, db, alice.ID)
	bobUnreadBefore := unreadCount(t, db, bob.ID)

	t.Run("non-participants cannot complete", func(t *testing.T) {
		_, err := svc.Complete(ctx, carol.ID, swap.ID)
		assertAppErrorCode(t, err, models.CodeUnauthorized)
	})

	t.Run("either party may complete, counters untouched", func(t *testing.T) {
		updated, err := svc.Complete(ctx, alice.ID, swap.ID)
		require.NoError(t, err)
		assert.Equal(t, models.SwapStatusCompleted, updated.Status)
		assert.Equal(t, aliceUnreadBefore, unreadCount(t, db, alice.ID))
		assert.Equal(t, bobUnreadBefore, unreadCount(t, db, bob.ID))
	})
}

func TestSwapServiceForceCancel(t *testing.T) {
	t.Parallel()
	db := setupServiceTestDB(t)
	svc := NewSwapService(db, nil)
	ctx := context.Background()

	alice := createServiceTestUser(t, db, 1)
	bob := createServiceTestUser(t, db, 2)

	swap, err := svc.Create(ctx, alice.ID, CreateSwapInput{RequestedID: bob.ID, SkillOffered: "A", SkillWanted: "B"})
	require.NoError(t, err)

	cancelled, err := svc.ForceCancel(ctx, swap.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SwapStatusCancelled, cancelled.Status)

	// The record is kept as an audit trail, unlike a user cancellation
	var still models.SwapRequest
	require.NoError(t, db.First(&still, swap.ID).Error)

	t.Run("terminal swaps cannot be force-cancelled", func(t *testing.T) {
		_, err := svc.ForceCancel(ctx, swap.ID)
		assertAppErrorCode(t, err, models.CodeInvalidTransition)
	})
}

func TestSwapServiceVisibilityAndListing(t *testing.T) {
	t.Parallel()
	db := setupServiceTestDB(t)
	svc := NewSwapService(db, nil)
	ctx := context.Background()

	alice := createServiceTestUser(t, db, 1)
	bob := createServiceTestUser(t, db, 2)
	carol := createServiceTestUser(t, db, 3)

	swap, err := svc.Create(ctx, alice.ID, CreateSwapInput{RequestedID: bob.ID, SkillOffered: "A", SkillWanted: "B"})
	require.NoError(t, err)

	t.Run("participants and admins may view", func(t *testing.T) {
		_, err := svc.GetByID(ctx, alice.ID, swap.ID, false)
		assert.NoError(t, err)
		_, err = svc.GetByID(ctx, carol.ID, swap.ID, false)
		assertAppErrorCode(t, err, models.CodeUnauthorized)
		_, err = svc.GetByID(ctx, carol.ID, swap.ID, true)
		assert.NoError(t, err)
	})

	t.Run("status filter validates input", func(t *testing.T) {
		_, err := svc.ListByStatus(ctx, alice.ID, "bogus")
		assertAppErrorCode(t, err, models.CodeValidation)

		pending, err := svc.ListByStatus(ctx, alice.ID, models.SwapStatusPending)
		require.NoError(t, err)
		assert.Len(t, pending, 1)
	})

	t.Run("received and sent pending", func(t *testing.T) {
		received, err := svc.ListReceivedPending(ctx, bob.ID)
		require.NoError(t, err)
		assert.Len(t, received, 1)

		sent, err := svc.ListSentPending(ctx, alice.ID)
		require.NoError(t, err)
		assert.Len(t, sent, 1)

		none, err := svc.ListReceivedPending(ctx, carol.ID)
		require.NoError(t, err)
		assert.Empty(t, none)
	})
}
