package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/Juantrevi/next-match/internal/models"
	"github.com/Juantrevi/next-match/internal/realtime"
	"github.com/Juantrevi/next-match/internal/services/dto"
	"github.com/Juantrevi/next-match/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func sendMessage(t *testing.T, svc MessageService, db *gorm.DB, from, to, text string) *dto.MessageDTO {
	t.Helper()
	msg, err := svc.CreateMessage(db, from, &dto.CreateMessageRequest{RecipientID: to, Text: text})
	require.NoError(t, err)
	return msg
}

func TestCreateMessagePublishesToBothChannels(t *testing.T) {
	db := newTestDB(t)
	publisher := &capturePublisher{}
	svc := newMessageService(publisher)

	alice := seedVerifiedUser(t, db, "alice@test.com", "Alice")
	bob := seedVerifiedUser(t, db, "bob@test.com", "Bob")

	msg := sendMessage(t, svc, db, alice.ID, bob.ID, "hi bob")
	assert.Equal(t, "Alice", msg.SenderName)
	assert.Equal(t, "Bob", msg.RecipientName)
	assert.Nil(t, msg.DateRead)

	pair := publisher.eventsFor(realtime.ChannelForPair(alice.ID, bob.ID))
	require.Len(t, pair, 1)
	assert.Equal(t, realtime.EventMessageNew, pair[0].Event)

	private := publisher.eventsFor(realtime.ChannelForUser(bob.ID))
	require.Len(t, private, 1)
	assert.Equal(t, realtime.EventMessageNew, private[0].Event)

	// The sender's private channel stays quiet.
	assert.Empty(t, publisher.eventsFor(realtime.ChannelForUser(alice.ID)))
}

func TestCreateMessageValidation(t *testing.T) {
	db := newTestDB(t)
	svc := newMessageService(&capturePublisher{})
	alice := seedVerifiedUser(t, db, "alice@test.com", "Alice")

	_, err := svc.CreateMessage(db, alice.ID, &dto.CreateMessageRequest{RecipientID: alice.ID, Text: "me"})
	require.Error(t, err)

	_, err = svc.CreateMessage(db, alice.ID, &dto.CreateMessageRequest{RecipientID: "missing", Text: "hi"})
	assert.True(t, apperrors.Is(err, apperrors.ErrMemberNotFound))
}

func TestThreadMarksIncomingRead(t *testing.T) {
	db := newTestDB(t)
	publisher := &capturePublisher{}
	svc := newMessageService(publisher)

	alice := seedVerifiedUser(t, db, "alice@test.com", "Alice")
	bob := seedVerifiedUser(t, db, "bob@test.com", "Bob")

	sendMessage(t, svc, db, alice.ID, bob.ID, "one")
	sendMessage(t, svc, db, alice.ID, bob.ID, "two")
	sendMessage(t, svc, db, bob.ID, alice.ID, "reply")

	// Bob opens the thread: both of Alice's messages flip to read.
	thread, err := svc.GetMessageThread(db, bob.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, thread.ReadCount)
	require.Len(t, thread.Messages, 3)

	for _, m := range thread.Messages {
		if m.RecipientID == bob.ID {
			assert.NotNil(t, m.DateRead, "incoming message %q should be read", m.Text)
		} else {
			assert.Nil(t, m.DateRead, "bob's own message is still unread by alice")
		}
	}

	// Read receipt carries exactly the flipped ids on the pair channel.
	var readEvents []publishedEvent
	for _, e := range publisher.eventsFor(realtime.ChannelForPair(alice.ID, bob.ID)) {
		if e.Event == realtime.EventMessagesRead {
			readEvents = append(readEvents, e)
		}
	}
	require.Len(t, readEvents, 1)
	ids, ok := readEvents[0].Payload.([]string)
	require.True(t, ok)
	assert.Len(t, ids, 2)

	// Re-opening the thread marks nothing and stays silent.
	thread, err = svc.GetMessageThread(db, bob.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, thread.ReadCount)
}

func TestThreadIsOrderedOldestFirst(t *testing.T) {
	db := newTestDB(t)
	svc := newMessageService(&capturePublisher{})

	alice := seedVerifiedUser(t, db, "alice@test.com", "Alice")
	bob := seedVerifiedUser(t, db, "bob@test.com", "Bob")

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 3; i++ {
		msg := &models.Message{Text: fmt.Sprintf("m%d", i), SenderID: alice.ID, RecipientID: bob.ID}
		require.NoError(t, db.Create(msg).Error)
		require.NoError(t, db.Model(msg).Update("created_at", base.Add(time.Duration(i)*time.Minute)).Error)
	}

	thread, err := svc.GetMessageThread(db, bob.ID, alice.ID)
	require.NoError(t, err)
	require.Len(t, thread.Messages, 3)
	assert.Equal(t, "m0", thread.Messages[0].Text)
	assert.Equal(t, "m2", thread.Messages[2].Text)
}

func TestContainerPagination(t *testing.T) {
	db := newTestDB(t)
	svc := newMessageService(&capturePublisher{})

	alice := seedVerifiedUser(t, db, "alice@test.com", "Alice")
	bob := seedVerifiedUser(t, db, "bob@test.com", "Bob")

	// 11 messages with distinct timestamps, newest last.
	base := time.Now().Add(-time.Hour)
	for i := 0; i < 11; i++ {
		msg := &models.Message{Text: fmt.Sprintf("m%d", i), SenderID: alice.ID, RecipientID: bob.ID}
		require.NoError(t, db.Create(msg).Error)
		require.NoError(t, db.Model(msg).Update("created_at", base.Add(time.Duration(i)*time.Minute)).Error)
	}

	// First inbox page: 10 newest, cursor pointing at the 11th.
	page, err := svc.GetMessagesByContainer(db, bob.ID, dto.MessageListParams{})
	require.NoError(t, err)
	require.Len(t, page.Messages, 10)
	require.NotNil(t, page.NextCursor)
	assert.Equal(t, "m10", page.Messages[0].Text)
	assert.Equal(t, "m1", page.Messages[9].Text)

	second, err := svc.GetMessagesByContainer(db, bob.ID, dto.MessageListParams{Cursor: *page.NextCursor})
	require.NoError(t, err)
	require.Len(t, second.Messages, 1)
	assert.Equal(t, "m0", second.Messages[0].Text)
	assert.Nil(t, second.NextCursor)

	// The outbox view belongs to the sender.
	outbox, err := svc.GetMessagesByContainer(db, alice.ID, dto.MessageListParams{Container: "outbox", Limit: 20})
	require.NoError(t, err)
	assert.Len(t, outbox.Messages, 11)

	// Bob has no outbox, Alice no inbox.
	empty, err := svc.GetMessagesByContainer(db, bob.ID, dto.MessageListParams{Container: "outbox"})
	require.NoError(t, err)
	assert.Empty(t, empty.Messages)
	assert.Nil(t, empty.NextCursor)
}

func TestInvalidCursorRejected(t *testing.T) {
	db := newTestDB(t)
	svc := newMessageService(&capturePublisher{})
	bob := seedVerifiedUser(t, db, "bob@test.com", "Bob")

	_, err := svc.GetMessagesByContainer(db, bob.ID, dto.MessageListParams{Cursor: "not-a-time"})
	require.Error(t, err)
}

func TestDeleteMessageSoftThenPhysical(t *testing.T) {
	db := newTestDB(t)
	svc := newMessageService(&capturePublisher{})

	alice := seedVerifiedUser(t, db, "alice@test.com", "Alice")
	bob := seedVerifiedUser(t, db, "bob@test.com", "Bob")

	msg := sendMessage(t, svc, db, alice.ID, bob.ID, "delete me")

	// Sender deletes: hidden from their outbox, still in Bob's inbox.
	require.NoError(t, svc.DeleteMessage(db, alice.ID, msg.ID, true))

	outbox, err := svc.GetMessagesByContainer(db, alice.ID, dto.MessageListParams{Container: "outbox"})
	require.NoError(t, err)
	assert.Empty(t, outbox.Messages)

	inbox, err := svc.GetMessagesByContainer(db, bob.ID, dto.MessageListParams{})
	require.NoError(t, err)
	assert.Len(t, inbox.Messages, 1)

	// The row still exists while one side keeps it.
	var count int64
	require.NoError(t, db.Model(&models.Message{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	// Recipient deletes too: the row is physically purged.
	require.NoError(t, svc.DeleteMessage(db, bob.ID, msg.ID, false))
	require.NoError(t, db.Model(&models.Message{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestDeleteMessageByStranger(t *testing.T) {
	db := newTestDB(t)
	svc := newMessageService(&capturePublisher{})

	alice := seedVerifiedUser(t, db, "alice@test.com", "Alice")
	bob := seedVerifiedUser(t, db, "bob@test.com", "Bob")
	eve := seedVerifiedUser(t, db, "eve@test.com", "Eve")

	msg := sendMessage(t, svc, db, alice.ID, bob.ID, "private")

	err := svc.DeleteMessage(db, eve.ID, msg.ID, false)
	assert.True(t, apperrors.Is(err, apperrors.ErrNotYourMessage))

	// The sender owns the outbox copy, not the inbox one.
	err = svc.DeleteMessage(db, alice.ID, msg.ID, false)
	assert.True(t, apperrors.Is(err, apperrors.ErrNotYourMessage))

	err = svc.DeleteMessage(db, eve.ID, "missing", false)
	assert.True(t, apperrors.Is(err, apperrors.ErrMessageNotFound))
}

func TestThreadHidesSoftDeletedSide(t *testing.T) {
	db := newTestDB(t)
	svc := newMessageService(&capturePublisher{})

	alice := seedVerifiedUser(t, db, "alice@test.com", "Alice")
	bob := seedVerifiedUser(t, db, "bob@test.com", "Bob")

	m1 := sendMessage(t, svc, db, alice.ID, bob.ID, "kept")
	m2 := sendMessage(t, svc, db, alice.ID, bob.ID, "dropped by alice")
	_ = m1

	require.NoError(t, svc.DeleteMessage(db, alice.ID, m2.ID, true))

	aliceThread, err := svc.GetMessageThread(db, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.Len(t, aliceThread.Messages, 1)

	bobThread, err := svc.GetMessageThread(db, bob.ID, alice.ID)
	require.NoError(t, err)
	assert.Len(t, bobThread.Messages, 2, "bob still sees the message alice discarded")
}

func TestUnreadCount(t *testing.T) {
	db := newTestDB(t)
	svc := newMessageService(&capturePublisher{})

	alice := seedVerifiedUser(t, db, "alice@test.com", "Alice")
	bob := seedVerifiedUser(t, db, "bob@test.com", "Bob")

	sendMessage(t, svc, db, alice.ID, bob.ID, "one")
	sendMessage(t, svc, db, alice.ID, bob.ID, "two")
	dropped := sendMessage(t, svc, db, alice.ID, bob.ID, "three")

	count, err := svc.GetUnreadCount(db, bob.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 3, count)

	// A message the recipient discarded no longer counts.
	require.NoError(t, svc.DeleteMessage(db, bob.ID, dropped.ID, false))
	count, err = svc.GetUnreadCount(db, bob.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	// Reading the thread zeroes it.
	_, err = svc.GetMessageThread(db, bob.ID, alice.ID)
	require.NoError(t, err)
	count, err = svc.GetUnreadCount(db, bob.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, count)

	// The sender's unread count is unaffected throughout.
	count, err = svc.GetUnreadCount(db, alice.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, count)
}
