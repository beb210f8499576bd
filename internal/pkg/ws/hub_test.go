package ws

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func broadcastWithTimeout(t *testing.T, hub *Hub, event *Event) {
	t.Helper()
	done := make(chan struct{})
	go func() {
		hub.broadcastEvent(event)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("broadcast did not complete")
	}
}

func TestHub_BroadcastDropsSlowClient(t *testing.T) {
	hub := NewHub(zerolog.Nop())

	// An unbuffered send channel with no reader models a stalled peer
	slow := &Client{hub: hub, send: make(chan []byte), userID: 1, chatID: 7}
	healthy := &Client{hub: hub, send: make(chan []byte, 4), userID: 2, chatID: 7}
	hub.clients[7] = map[*Client]bool{slow: true, healthy: true}

	event := &Event{Type: "message", ChatID: 7, SenderID: 2, Timestamp: time.Now()}
	broadcastWithTimeout(t, hub, event)

	// The stalled peer is gone and its channel closed so writePump exits
	assert.Equal(t, 1, hub.GetClientsCount(7))
	_, stillThere := hub.clients[7][slow]
	assert.False(t, stillThere)
	_, open := <-slow.send
	assert.False(t, open)
	require.Len(t, healthy.send, 1)

	// The room keeps streaming for the remaining subscriber
	broadcastWithTimeout(t, hub, event)
	assert.Len(t, healthy.send, 2)
}

func TestHub_BroadcastRemovesEmptyRoom(t *testing.T) {
	hub := NewHub(zerolog.Nop())

	slow := &Client{hub: hub, send: make(chan []byte), userID: 1, chatID: 9}
	hub.clients[9] = map[*Client]bool{slow: true}

	broadcastWithTimeout(t, hub, &Event{Type: "pin", ChatID: 9, SenderID: 1, Timestamp: time.Now()})

	assert.Equal(t, 0, hub.GetClientsCount(9))
	_, roomKept := hub.clients[9]
	assert.False(t, roomKept)
}
