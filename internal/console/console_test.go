package console

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chathub/internal/chat"
	"chathub/internal/server"
)

func newTestConsole(t *testing.T) (*Console, *chat.Store, *bytes.Buffer) {
	t.Helper()

	store := chat.SeedStore()
	hub := server.NewHub(zerolog.Nop())
	go hub.Run()
	t.Cleanup(func() { _ = hub.Shutdown(time.Second) })

	handler := server.NewHandler(store, hub, zerolog.Nop())

	_, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	c := New(store, handler, cancel, zerolog.Nop())
	out := &bytes.Buffer{}
	c.out = out
	return c, store, out
}

func TestExecuteList(t *testing.T) {
	c, _, out := newTestConsole(t)

	require.True(t, c.execute(parseLine("list")))
	assert.Contains(t, out.String(), "John Doe")
	assert.Contains(t, out.String(), "(2 unread)")
	assert.Contains(t, out.String(), "3 messages")
}

func TestExecuteMsgs(t *testing.T) {
	c, _, out := newTestConsole(t)

	require.True(t, c.execute(parseLine("msgs 1")))
	assert.Contains(t, out.String(), "Messages for dialogue 1 (John Doe)")
	assert.Contains(t, out.String(), "Hey, are you free for lunch?")
}

func TestExecuteMsgsUnknownDialogue(t *testing.T) {
	c, _, out := newTestConsole(t)

	require.True(t, c.execute(parseLine("msgs 999")))
	assert.Contains(t, out.String(), `No messages found for dialogue ID "999"`)
}

func TestExecuteSendAppendsRemoteMessage(t *testing.T) {
	c, store, out := newTestConsole(t)
	before, _ := store.Dialogue("2")

	require.True(t, c.execute(parseLine("2 checking in")))

	assert.Contains(t, out.String(), "Sent to Sarah Smith: checking in")
	msgs := store.Messages("2")
	last := msgs[len(msgs)-1]
	assert.Equal(t, "checking in", last.Text)
	assert.False(t, last.IsMe)

	after, _ := store.Dialogue("2")
	assert.Equal(t, before.UnreadCount+1, after.UnreadCount)
	assert.Equal(t, "checking in", after.LastMessage)
}

func TestExecuteSendUnknownDialogue(t *testing.T) {
	c, store, out := newTestConsole(t)

	require.True(t, c.execute(parseLine("999 hello")))
	assert.Contains(t, out.String(), `Dialogue ID "999" not found`)
	assert.Empty(t, store.Messages("999"))
}

func TestExecutePresence(t *testing.T) {
	c, store, out := newTestConsole(t)

	require.True(t, c.execute(parseLine("offline 1")))
	d, _ := store.Dialogue("1")
	assert.False(t, d.IsOnline)
	assert.Contains(t, out.String(), "John Doe is now OFFLINE")

	require.True(t, c.execute(parseLine("online 1")))
	d, _ = store.Dialogue("1")
	assert.True(t, d.IsOnline)
}

func TestExecuteQuitStopsLoop(t *testing.T) {
	c, _, out := newTestConsole(t)

	assert.False(t, c.execute(parseLine("quit")))
	assert.Contains(t, out.String(), "Shutting down server...")
}
