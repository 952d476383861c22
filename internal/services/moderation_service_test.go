package services

import (
	"context"
	"testing"

	"github.com/Juantrevi/next-match/internal/models"
	"github.com/Juantrevi/next-match/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModerationQueue(t *testing.T) {
	db := newTestDB(t)
	svc := newModerationService(newMemStorage())

	alice := seedVerifiedUser(t, db, "alice@test.com", "Alice")
	bob := seedVerifiedUser(t, db, "bob@test.com", "Bob")

	seedPhoto(t, db, alice.Member.ID, false)
	seedPhoto(t, db, bob.Member.ID, false)
	seedPhoto(t, db, bob.Member.ID, true)

	queue, err := svc.GetUnapprovedPhotos(db)
	require.NoError(t, err)
	assert.Len(t, queue, 2, "approved photos never appear in the queue")
	for _, p := range queue {
		assert.False(t, p.IsApproved)
	}
}

func TestApprovePhotoBackfillsAvatar(t *testing.T) {
	db := newTestDB(t)
	svc := newModerationService(newMemStorage())

	alice := seedVerifiedUser(t, db, "alice@test.com", "Alice")
	photo := seedPhoto(t, db, alice.Member.ID, false)

	require.NoError(t, svc.ApprovePhoto(db, photo.ID))

	var stored models.Photo
	require.NoError(t, db.First(&stored, "id = ?", photo.ID).Error)
	assert.True(t, stored.IsApproved)

	// First approved photo becomes the avatar on profile and account.
	var member models.Member
	require.NoError(t, db.First(&member, "user_id = ?", alice.ID).Error)
	require.NotNil(t, member.Image)
	assert.Equal(t, photo.URL, *member.Image)

	var user models.User
	require.NoError(t, db.First(&user, "id = ?", alice.ID).Error)
	require.NotNil(t, user.Image)
	assert.Equal(t, photo.URL, *user.Image)
}

func TestApprovePhotoKeepsExistingAvatar(t *testing.T) {
	db := newTestDB(t)
	svc := newModerationService(newMemStorage())

	alice := seedVerifiedUser(t, db, "alice@test.com", "Alice")
	existing := "/files/existing.jpg"
	require.NoError(t, db.Model(&models.Member{}).Where("user_id = ?", alice.ID).
		Update("image", existing).Error)

	photo := seedPhoto(t, db, alice.Member.ID, false)
	require.NoError(t, svc.ApprovePhoto(db, photo.ID))

	var member models.Member
	require.NoError(t, db.First(&member, "user_id = ?", alice.ID).Error)
	require.NotNil(t, member.Image)
	assert.Equal(t, existing, *member.Image, "an already-set avatar is never replaced")
}

func TestRejectPhotoRemovesRowAndObject(t *testing.T) {
	db := newTestDB(t)
	store := newMemStorage()
	svc := newModerationService(store)

	alice := seedVerifiedUser(t, db, "alice@test.com", "Alice")
	photo := seedPhoto(t, db, alice.Member.ID, false)
	store.Objects[photo.PublicID] = []byte("image")

	require.NoError(t, svc.RejectPhoto(context.Background(), db, photo.ID))

	var count int64
	require.NoError(t, db.Model(&models.Photo{}).Where("id = ?", photo.ID).Count(&count).Error)
	assert.EqualValues(t, 0, count)

	exists, err := store.Exists(context.Background(), photo.PublicID)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestModerationUnknownPhoto(t *testing.T) {
	db := newTestDB(t)
	svc := newModerationService(newMemStorage())

	err := svc.ApprovePhoto(db, "missing")
	assert.True(t, apperrors.Is(err, apperrors.ErrPhotoNotFound))

	err = svc.RejectPhoto(context.Background(), db, "missing")
	assert.True(t, apperrors.Is(err, apperrors.ErrPhotoNotFound))
}
