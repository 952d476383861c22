package services

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Juantrevi/next-match/internal/models"
	"github.com/Juantrevi/next-match/internal/services/dto"
	"github.com/Juantrevi/next-match/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setDOB(t *testing.T, db *gorm.DB, userID string, age int) {
	t.Helper()
	dob := time.Now().AddDate(-age, 0, 0).Add(-24 * time.Hour)
	require.NoError(t, db.Model(&models.Member{}).Where("user_id = ?", userID).
		Update("date_of_birth", dob).Error)
}

func TestGetMembersExcludesSelf(t *testing.T) {
	db := newTestDB(t)
	svc := newMemberService(newMemStorage())

	alice := seedVerifiedUser(t, db, "alice@test.com", "Alice")
	seedVerifiedUser(t, db, "bob@test.com", "Bob")
	seedVerifiedUser(t, db, "carol@test.com", "Carol")

	page, err := svc.GetMembers(db, alice.ID, dto.MemberParams{})
	require.NoError(t, err)
	assert.EqualValues(t, 2, page.TotalCount)
	for _, m := range page.Items {
		assert.NotEqual(t, alice.ID, m.UserID)
	}
}

func TestGetMembersAgeFilterInclusive(t *testing.T) {
	db := newTestDB(t)
	svc := newMemberService(newMemStorage())

	alice := seedVerifiedUser(t, db, "alice@test.com", "Alice")
	bob := seedVerifiedUser(t, db, "bob@test.com", "Bob")
	carol := seedVerifiedUser(t, db, "carol@test.com", "Carol")
	dave := seedVerifiedUser(t, db, "dave@test.com", "Dave")

	setDOB(t, db, bob.ID, 25)
	setDOB(t, db, carol.ID, 30)
	setDOB(t, db, dave.ID, 35)

	page, err := svc.GetMembers(db, alice.ID, dto.MemberParams{AgeMin: 25, AgeMax: 30})
	require.NoError(t, err)
	require.EqualValues(t, 2, page.TotalCount, "both boundaries are inclusive")

	names := []string{page.Items[0].Name, page.Items[1].Name}
	assert.ElementsMatch(t, []string{"Bob", "Carol"}, names)
}

func TestGetMembersGenderAndPhotoFilter(t *testing.T) {
	db := newTestDB(t)
	svc := newMemberService(newMemStorage())

	alice := seedVerifiedUser(t, db, "alice@test.com", "Alice")
	bob := seedVerifiedUser(t, db, "bob@test.com", "Bob")
	carol := seedVerifiedUser(t, db, "carol@test.com", "Carol")

	require.NoError(t, db.Model(&models.Member{}).Where("user_id = ?", bob.ID).
		Update("gender", "male").Error)
	require.NoError(t, db.Model(&models.Member{}).Where("user_id = ?", carol.ID).
		Update("image", "/files/carol.jpg").Error)

	males, err := svc.GetMembers(db, alice.ID, dto.MemberParams{Gender: "male"})
	require.NoError(t, err)
	require.EqualValues(t, 1, males.TotalCount)
	assert.Equal(t, "Bob", males.Items[0].Name)

	both, err := svc.GetMembers(db, alice.ID, dto.MemberParams{Gender: "male,female"})
	require.NoError(t, err)
	assert.EqualValues(t, 2, both.TotalCount)

	withPhoto := true
	photographed, err := svc.GetMembers(db, alice.ID, dto.MemberParams{WithPhoto: &withPhoto})
	require.NoError(t, err)
	require.EqualValues(t, 1, photographed.TotalCount)
	assert.Equal(t, "Carol", photographed.Items[0].Name)
}

func TestGetMembersPagination(t *testing.T) {
	db := newTestDB(t)
	svc := newMemberService(newMemStorage())

	viewer := seedVerifiedUser(t, db, "viewer@test.com", "Viewer")
	for i := 0; i < 5; i++ {
		seedVerifiedUser(t, db, string(rune('a'+i))+"@test.com", "Member")
	}

	page, err := svc.GetMembers(db, viewer.ID, dto.MemberParams{PageNumber: 2, PageSize: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 5, page.TotalCount)
	assert.Equal(t, 3, page.TotalPages)
	assert.Len(t, page.Items, 2)
	assert.Equal(t, 2, page.PageNumber)
}

func TestPhotoVisibility(t *testing.T) {
	db := newTestDB(t)
	svc := newMemberService(newMemStorage())

	alice := seedVerifiedUser(t, db, "alice@test.com", "Alice")
	bob := seedVerifiedUser(t, db, "bob@test.com", "Bob")

	seedPhoto(t, db, alice.Member.ID, true)
	seedPhoto(t, db, alice.Member.ID, false)

	// The owner sees both, including the one pending moderation.
	own, err := svc.GetMemberPhotos(db, alice.ID, alice.ID)
	require.NoError(t, err)
	assert.Len(t, own, 2)

	// Everyone else only sees the approved photo.
	visible, err := svc.GetMemberPhotos(db, bob.ID, alice.ID)
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.True(t, visible[0].IsApproved)
}

func multipartPhoto(t *testing.T, filename string) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte("fake image bytes"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))

	return req.MultipartForm.File["file"][0]
}

func TestUploadPhotoPendingModeration(t *testing.T) {
	db := newTestDB(t)
	store := newMemStorage()
	svc := newMemberService(store)

	alice := seedVerifiedUser(t, db, "alice@test.com", "Alice")

	photo, err := svc.UploadPhoto(context.Background(), db, alice.ID, multipartPhoto(t, "selfie.jpg"))
	require.NoError(t, err)
	assert.False(t, photo.IsApproved)
	assert.NotEmpty(t, photo.URL)

	// The bytes landed in storage under the recorded key.
	var stored models.Photo
	require.NoError(t, db.First(&stored, "id = ?", photo.ID).Error)
	exists, err := store.Exists(context.Background(), stored.PublicID)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestUploadPhotoRejectsUnsupportedFormat(t *testing.T) {
	db := newTestDB(t)
	svc := newMemberService(newMemStorage())
	alice := seedVerifiedUser(t, db, "alice@test.com", "Alice")

	_, err := svc.UploadPhoto(context.Background(), db, alice.ID, multipartPhoto(t, "script.exe"))
	require.Error(t, err)
}

func TestSetMainPhotoRequiresApproval(t *testing.T) {
	db := newTestDB(t)
	svc := newMemberService(newMemStorage())

	alice := seedVerifiedUser(t, db, "alice@test.com", "Alice")
	bob := seedVerifiedUser(t, db, "bob@test.com", "Bob")

	pending := seedPhoto(t, db, alice.Member.ID, false)
	approved := seedPhoto(t, db, alice.Member.ID, true)

	err := svc.SetMainPhoto(db, alice.ID, pending.ID)
	assert.True(t, apperrors.Is(err, apperrors.ErrPhotoNotApproved))

	// Another member cannot claim Alice's photo.
	err = svc.SetMainPhoto(db, bob.ID, approved.ID)
	require.Error(t, err)

	require.NoError(t, svc.SetMainPhoto(db, alice.ID, approved.ID))

	// The avatar is mirrored onto profile and account.
	var member models.Member
	require.NoError(t, db.First(&member, "user_id = ?", alice.ID).Error)
	require.NotNil(t, member.Image)
	assert.Equal(t, approved.URL, *member.Image)

	var user models.User
	require.NoError(t, db.First(&user, "id = ?", alice.ID).Error)
	require.NotNil(t, user.Image)
	assert.Equal(t, approved.URL, *user.Image)
}

func TestDeletePhotoGuardsMainImage(t *testing.T) {
	db := newTestDB(t)
	store := newMemStorage()
	svc := newMemberService(store)

	alice := seedVerifiedUser(t, db, "alice@test.com", "Alice")
	main := seedPhoto(t, db, alice.Member.ID, true)
	other := seedPhoto(t, db, alice.Member.ID, true)
	require.NoError(t, db.Model(&models.Photo{}).Where("id = ?", other.ID).
		Update("url", other.URL+"?v=2").Error)
	require.NoError(t, svc.SetMainPhoto(db, alice.ID, main.ID))

	err := svc.DeletePhoto(context.Background(), db, alice.ID, main.ID)
	require.Error(t, err, "the current avatar cannot be deleted")

	require.NoError(t, svc.DeletePhoto(context.Background(), db, alice.ID, other.ID))

	var count int64
	require.NoError(t, db.Model(&models.Photo{}).Where("member_id = ?", alice.Member.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestUpdateMemberBumpsLastActive(t *testing.T) {
	db := newTestDB(t)
	svc := newMemberService(newMemStorage())

	alice := seedVerifiedUser(t, db, "alice@test.com", "Alice")

	var before models.Member
	require.NoError(t, db.First(&before, "user_id = ?", alice.ID).Error)

	time.Sleep(10 * time.Millisecond)
	updated, err := svc.UpdateMember(db, alice.ID, &dto.UpdateMemberRequest{
		Name: "Alice B", Description: "new", City: "Bergen", Country: "Norway",
	})
	require.NoError(t, err)
	assert.Equal(t, "Alice B", updated.Name)
	assert.True(t, updated.LastActive.After(before.UpdatedAt))
}
