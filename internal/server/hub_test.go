package server

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHub(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	require.NotNil(t, hub)
	assert.Zero(t, hub.ClientCount())
}

func TestHubBroadcastWithNoClientsIsNoop(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	go hub.Run()

	done := make(chan struct{})
	go func() {
		hub.Broadcast([]byte(`{"type":"pong"}`))
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("broadcast with empty registry blocked")
	}

	require.NoError(t, hub.Shutdown(time.Second))
}

func TestHubShutdownCompletes(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	go hub.Run()

	require.NoError(t, hub.Shutdown(time.Second))
}

func TestSendToUnregisteredClientFails(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	client := NewClient(nil, hub, nil, "127.0.0.1:12345", NewConfig(), zerolog.Nop())

	assert.False(t, hub.SendTo(client, []byte("frame")))
}
