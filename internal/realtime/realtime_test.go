package realtime

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChannelForUser(t *testing.T) {
	assert.Equal(t, "private-abc", ChannelForUser("abc"))
}

func TestChannelForPairIsOrderIndependent(t *testing.T) {
	a := "11111111-aaaa-4bbb-8ccc-000000000001"
	b := "22222222-aaaa-4bbb-8ccc-000000000002"

	assert.Equal(t, ChannelForPair(a, b), ChannelForPair(b, a))
	assert.Equal(t, "private-chat-"+a+"-"+b, ChannelForPair(b, a))
}
