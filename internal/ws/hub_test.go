package ws

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(h *Hub) *Client {
	return &Client{hub: h, send: make(chan []byte, 16)}
}

func TestHub_RegisterUnregister(t *testing.T) {
	h := NewHub()
	assert.Equal(t, 0, h.ClientCount())

	c := newTestClient(h)
	h.Register(c)
	assert.Equal(t, 1, h.ClientCount())

	h.Unregister(c)
	assert.Equal(t, 0, h.ClientCount())

	// Unregistering twice must not close the channel again
	h.Unregister(c)
	assert.Equal(t, 0, h.ClientCount())
}

func TestHub_BroadcastReachesAllClients(t *testing.T) {
	h := NewHub()
	c1 := newTestClient(h)
	c2 := newTestClient(h)
	h.Register(c1)
	h.Register(c2)

	h.Broadcast([]byte("hello"))

	assert.Equal(t, []byte("hello"), <-c1.send)
	assert.Equal(t, []byte("hello"), <-c2.send)
}

func TestHub_BroadcastDropsWhenBufferFull(t *testing.T) {
	h := NewHub()
	c := &Client{hub: h, send: make(chan []byte, 1)}
	h.Register(c)

	h.Broadcast([]byte("first"))
	h.Broadcast([]byte("second")) // dropped, buffer full

	require.Len(t, c.send, 1)
	assert.Equal(t, []byte("first"), <-c.send)
}
