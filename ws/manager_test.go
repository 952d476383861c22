package ws

import (
	"testing"
	"time"

	"github.com/Juantrevi/next-match/internal/realtime"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(manager *Manager, userID string) *Client {
	return &Client{
		UserID:  userID,
		Send:    make(chan OutgoingEvent, 16),
		Manager: manager,
	}
}

func register(t *testing.T, m *Manager, c *Client) {
	t.Helper()
	m.register <- c
	require.Eventually(t, func() bool { return m.ClientCount() > 0 }, time.Second, time.Millisecond)
}

func TestCanSubscribe(t *testing.T) {
	alice := "11111111-aaaa-4bbb-8ccc-000000000001"
	bob := "22222222-aaaa-4bbb-8ccc-000000000002"
	eve := "33333333-aaaa-4bbb-8ccc-000000000003"

	assert.True(t, CanSubscribe(alice, realtime.ChannelForUser(alice)))
	assert.False(t, CanSubscribe(eve, realtime.ChannelForUser(alice)))

	pair := realtime.ChannelForPair(alice, bob)
	assert.True(t, CanSubscribe(alice, pair))
	assert.True(t, CanSubscribe(bob, pair))
	assert.False(t, CanSubscribe(eve, pair))

	assert.False(t, CanSubscribe(alice, "presence-global"))
}

func TestPublishReachesOnlySubscribers(t *testing.T) {
	manager := NewManager()
	go manager.Run()

	alice := newTestClient(manager, "user-a")
	bob := newTestClient(manager, "user-b")
	register(t, manager, alice)
	register(t, manager, bob)

	channel := realtime.ChannelForUser("user-a")
	require.True(t, manager.Subscribe(alice, channel))

	manager.Publish(channel, realtime.EventLikeNew, "payload")

	select {
	case event := <-alice.Send:
		assert.Equal(t, channel, event.Channel)
		assert.Equal(t, realtime.EventLikeNew, event.Event)
		assert.Equal(t, "payload", event.Payload)
	case <-time.After(time.Second):
		t.Fatal("subscriber never received the event")
	}

	select {
	case event := <-bob.Send:
		t.Fatalf("non-subscriber received event: %+v", event)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestSubscribeDeniedForForeignChannel(t *testing.T) {
	manager := NewManager()
	go manager.Run()

	eve := newTestClient(manager, "user-e")
	register(t, manager, eve)

	assert.False(t, manager.Subscribe(eve, realtime.ChannelForUser("user-a")))

	manager.Publish(realtime.ChannelForUser("user-a"), realtime.EventLikeNew, "secret")

	select {
	case event := <-eve.Send:
		t.Fatalf("denied subscriber received event: %+v", event)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	manager := NewManager()
	go manager.Run()

	alice := newTestClient(manager, "user-a")
	register(t, manager, alice)

	channel := realtime.ChannelForUser("user-a")
	require.True(t, manager.Subscribe(alice, channel))
	manager.Unsubscribe(alice, channel)

	manager.Publish(channel, realtime.EventMessageNew, "late")

	select {
	case event := <-alice.Send:
		t.Fatalf("unsubscribed client received event: %+v", event)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestConnectedUsers(t *testing.T) {
	manager := NewManager()
	go manager.Run()

	alice := newTestClient(manager, "user-a")
	register(t, manager, alice)

	assert.True(t, manager.IsUserConnected("user-a"))
	assert.False(t, manager.IsUserConnected("user-b"))
	assert.ElementsMatch(t, []string{"user-a"}, manager.ConnectedUserIDs())
}
