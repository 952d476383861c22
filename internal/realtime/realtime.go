package realtime

// Event names pushed over the websocket hub.
const (
	EventMessageNew   = "message:new"
	EventMessagesRead = "messages:read"
	EventLikeNew      = "like:new"
)

// Publisher fans an event out to every connection subscribed to a channel.
// Implementations must not block the caller; a slow consumer is the hub's
// problem, not the request's.
type Publisher interface {
	Publish(channel, event string, payload interface{})
}

// LikeNotification is the payload for like:new on the target's private
// channel.
type LikeNotification struct {
	UserID string  `json:"userId"`
	Name   string  `json:"name"`
	Image  *string `json:"image"`
}

// ChannelForUser is the per-user private channel; only that user may
// subscribe to it.
func ChannelForUser(userID string) string {
	return "private-" + userID
}

// ChannelForPair names the conversation channel for two users. The ids are
// ordered lexicographically so both sides derive the same name.
func ChannelForPair(userA, userB string) string {
	if userB < userA {
		userA, userB = userB, userA
	}
	return "private-chat-" + userA + "-" + userB
}
