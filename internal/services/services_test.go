package services

import (
	"context"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/Juantrevi/next-match/database"
	"github.com/Juantrevi/next-match/internal/config"
	"github.com/Juantrevi/next-match/internal/models"
	"github.com/Juantrevi/next-match/internal/repositories"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func init() {
	config.AppConfig = &config.Config{}
	config.AppConfig.JWT.Secret = "test-secret"
	config.AppConfig.JWT.TTL = 60
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// A single connection keeps every query on the same in-memory database.
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	return db
}

// publishedEvent captures what a service pushed to the realtime hub.
type publishedEvent struct {
	Channel string
	Event   string
	Payload interface{}
}

type capturePublisher struct {
	mu     sync.Mutex
	Events []publishedEvent
}

func (p *capturePublisher) Publish(channel, event string, payload interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Events = append(p.Events, publishedEvent{Channel: channel, Event: event, Payload: payload})
}

func (p *capturePublisher) eventsFor(channel string) []publishedEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []publishedEvent
	for _, e := range p.Events {
		if e.Channel == channel {
			out = append(out, e)
		}
	}
	return out
}

// memStorage is an in-memory storage.Storage for tests.
type memStorage struct {
	mu      sync.Mutex
	Objects map[string][]byte
}

func newMemStorage() *memStorage {
	return &memStorage{Objects: make(map[string][]byte)}
}

func (s *memStorage) Save(_ context.Context, key string, reader io.Reader, _ string) error {
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Objects[key] = data
	return nil
}

func (s *memStorage) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.Objects, key)
	return nil
}

func (s *memStorage) Exists(_ context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.Objects[key]
	return ok, nil
}

func (s *memStorage) GetURL(_ context.Context, key string) (string, error) {
	return "/files/" + key, nil
}

// fakeEmail records outgoing mail with the embedded token.
type fakeEmail struct {
	mu   sync.Mutex
	Sent []sentMail
}

type sentMail struct {
	To    string
	Kind  string
	Token string
}

func (f *fakeEmail) Send(to, subject, htmlBody string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Sent = append(f.Sent, sentMail{To: to, Kind: "raw"})
	return nil
}

func (f *fakeEmail) SendVerification(to, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Sent = append(f.Sent, sentMail{To: to, Kind: "verification", Token: token})
	return nil
}

func (f *fakeEmail) SendPasswordReset(to, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Sent = append(f.Sent, sentMail{To: to, Kind: "password_reset", Token: token})
	return nil
}

func (f *fakeEmail) lastToken() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.Sent) == 0 {
		return ""
	}
	return f.Sent[len(f.Sent)-1].Token
}

// seedVerifiedUser creates a verified user with a member profile and returns
// the user. Used by every suite that needs ready-made participants.
func seedVerifiedUser(t *testing.T, db *gorm.DB, emailAddr, name string) *models.User {
	t.Helper()

	now := time.Now()
	hash := "$2a$10$abcdefghijklmnopqrstuv" // never checked in these tests
	user := &models.User{
		Email:           emailAddr,
		PasswordHash:    &hash,
		EmailVerified:   &now,
		Role:            models.UserRoleMember,
		ProfileComplete: true,
	}
	require.NoError(t, db.Create(user).Error)

	member := &models.Member{
		UserID:      user.ID,
		Name:        name,
		Gender:      "female",
		DateOfBirth: time.Date(1995, 6, 15, 0, 0, 0, 0, time.UTC),
		Description: "test profile",
		City:        "Oslo",
		Country:     "Norway",
	}
	require.NoError(t, db.Create(member).Error)

	user.Member = member
	return user
}

func seedPhoto(t *testing.T, db *gorm.DB, memberID string, approved bool) *models.Photo {
	t.Helper()

	photo := &models.Photo{
		MemberID:   memberID,
		URL:        fmt.Sprintf("/files/photos/%s/test.jpg", memberID),
		PublicID:   fmt.Sprintf("photos/%s/test.jpg", memberID),
		IsApproved: approved,
	}
	require.NoError(t, db.Create(photo).Error)
	return photo
}

func newMessageService(publisher *capturePublisher) MessageService {
	return NewMessageService(repositories.NewMessageRepository(), repositories.NewMemberRepository(), publisher)
}

func newLikeService(publisher *capturePublisher) LikeService {
	return NewLikeService(repositories.NewLikeRepository(), repositories.NewMemberRepository(), publisher)
}

func newMemberService(store *memStorage) MemberService {
	return NewMemberService(repositories.NewMemberRepository(), repositories.NewPhotoRepository(), repositories.NewUserRepository(), store)
}

func newModerationService(store *memStorage) ModerationService {
	return NewModerationService(repositories.NewPhotoRepository(), repositories.NewMemberRepository(), repositories.NewUserRepository(), store)
}

func newAuthService(mailer *fakeEmail) AuthService {
	return NewAuthService(
		repositories.NewUserRepository(),
		repositories.NewMemberRepository(),
		repositories.NewTokenRepository(),
		repositories.NewRefreshTokenRepository(),
		mailer,
	)
}
