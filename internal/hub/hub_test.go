package hub

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Harshkesharwani789/wave-backend/internal/config"
)

func testConfig() config.WebSocketConfig {
	return config.WebSocketConfig{
		PingInterval:   30 * time.Second,
		PongWait:       60 * time.Second,
		WriteWait:      10 * time.Second,
		MaxMessageSize: 4096,
	}
}

func newTestClient(id string) *Client {
	return &Client{
		ID:   id,
		Send: make(chan []byte, 16),
	}
}

func TestJoinRoomMembership(t *testing.T) {
	h := NewHub(testConfig())

	c := newTestClient("c1")
	assert.False(t, h.IsMember("c1", "b1"))

	h.JoinRoom(c, "b1")
	assert.True(t, h.IsMember("c1", "b1"))
	assert.False(t, h.IsMember("c1", "b2"))
	assert.Equal(t, 1, h.RoomSize("b1"))
}

func TestJoinRoomIdempotent(t *testing.T) {
	h := NewHub(testConfig())

	c := newTestClient("c1")
	h.JoinRoom(c, "b1")
	h.JoinRoom(c, "b1")

	assert.Equal(t, 1, h.RoomSize("b1"))
	assert.True(t, h.IsMember("c1", "b1"))
}

func TestLeaveRoom(t *testing.T) {
	h := NewHub(testConfig())

	c1 := newTestClient("c1")
	c2 := newTestClient("c2")
	h.JoinRoom(c1, "b1")
	h.JoinRoom(c2, "b1")

	h.LeaveRoom(c1, "b1")
	assert.False(t, h.IsMember("c1", "b1"))
	assert.True(t, h.IsMember("c2", "b1"))
	assert.Equal(t, 1, h.RoomSize("b1"))

	// Empty rooms are dropped.
	h.LeaveRoom(c2, "b1")
	assert.Equal(t, 0, h.RoomSize("b1"))
}

func TestUnregisterRemovesFromAllRooms(t *testing.T) {
	h := NewHub(testConfig())
	go h.Run()

	c := newTestClient("c1")
	h.Register(c)

	h.JoinRoom(c, "b1")
	h.JoinRoom(c, "b2")

	h.Unregister(c)

	require.Eventually(t, func() bool {
		return !h.IsMember("c1", "b1") && !h.IsMember("c1", "b2")
	}, time.Second, 10*time.Millisecond)
}

func TestBroadcastToRoomReachesMembersOnly(t *testing.T) {
	h := NewHub(testConfig())
	go h.Run()

	member := newTestClient("member")
	outsider := newTestClient("outsider")
	h.JoinRoom(member, "b1")

	type payload struct {
		Type string `json:"type"`
		Text string `json:"text"`
	}
	require.NoError(t, h.BroadcastToRoom("b1", payload{Type: "test", Text: "hello"}))

	select {
	case data := <-member.Send:
		var got payload
		require.NoError(t, json.Unmarshal(data, &got))
		assert.Equal(t, "hello", got.Text)
	case <-time.After(time.Second):
		t.Fatal("member did not receive broadcast")
	}

	select {
	case <-outsider.Send:
		t.Fatal("outsider received broadcast without joining")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestSendJSONAfterUnregisterDoesNotPanic(t *testing.T) {
	h := NewHub(testConfig())
	go h.Run()

	c := newTestClient("c1")
	h.Register(c)
	h.Unregister(c)

	// Wait for the hub to close the send channel.
	require.Eventually(t, func() bool {
		select {
		case _, ok := <-c.Send:
			return !ok
		default:
			return false
		}
	}, time.Second, 10*time.Millisecond)

	assert.NotPanics(t, func() {
		require.NoError(t, c.SendJSON(map[string]string{"type": "test"}))
	})
}

func TestSendJSONDropsWhenChannelFull(t *testing.T) {
	c := &Client{ID: "c1", Send: make(chan []byte, 1)}

	require.NoError(t, c.SendJSON(map[string]string{"n": "1"}))
	assert.NotPanics(t, func() {
		require.NoError(t, c.SendJSON(map[string]string{"n": "2"}))
	})
	assert.Len(t, c.Send, 1)
}

func TestBroadcastToRoomAllMembers(t *testing.T) {
	h := NewHub(testConfig())
	go h.Run()

	c1 := newTestClient("c1")
	c2 := newTestClient("c2")
	h.JoinRoom(c1, "b1")
	h.JoinRoom(c2, "b1")

	require.NoError(t, h.BroadcastToRoom("b1", map[string]string{"type": "test"}))

	for _, c := range []*Client{c1, c2} {
		select {
		case <-c.Send:
		case <-time.After(time.Second):
			t.Fatalf("client %s did not receive broadcast", c.ID)
		}
	}
}
