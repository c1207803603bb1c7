package chat

import (
	"fmt"
	"regexp"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendMessagePreservesOrder(t *testing.T) {
	s := NewStore()
	s.CreateDialogue("Test Contact")

	for i := 0; i < 10; i++ {
		s.AppendMessage("1", fmt.Sprintf("message %d", i), true)
	}

	msgs := s.Messages("1")
	require.Len(t, msgs, 10)
	for i, m := range msgs {
		assert.Equal(t, fmt.Sprintf("message %d", i), m.Text)
		assert.True(t, m.IsDelivered)
		assert.False(t, m.IsRead)
	}
}

func TestMessageIDsUniqueAcrossDialogues(t *testing.T) {
	s := SeedStore()

	seen := make(map[string]bool)
	for _, m := range []Message{
		s.AppendMessage("1", "a", true),
		s.AppendMessage("2", "b", true),
		s.AppendMessage("1", "c", false),
		s.AppendMessage("5", "d", false),
	} {
		assert.False(t, seen[m.ID], "duplicate id %s", m.ID)
		seen[m.ID] = true
	}
}

func TestAppendMessageIDFormat(t *testing.T) {
	s := SeedStore()
	m := s.AppendMessage("1", "hi", true)
	assert.Regexp(t, regexp.MustCompile(`^msg_1_\d+$`), m.ID)
}

func TestConcurrentAppendsMintUniqueIDs(t *testing.T) {
	s := SeedStore()

	const goroutines = 20
	const perGoroutine = 50

	ids := make(chan string, goroutines*perGoroutine)
	var wg sync.WaitGroup
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			dialogueID := fmt.Sprintf("%d", g%5+1)
			for i := 0; i < perGoroutine; i++ {
				ids <- s.AppendMessage(dialogueID, "concurrent", g%2 == 0).ID
			}
		}(g)
	}
	wg.Wait()
	close(ids)

	seen := make(map[string]bool)
	for id := range ids {
		require.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
	require.Len(t, seen, goroutines*perGoroutine)
}

func TestMessagesUnknownDialogueIsEmpty(t *testing.T) {
	s := SeedStore()
	msgs := s.Messages("999")
	assert.NotNil(t, msgs)
	assert.Empty(t, msgs)
}

func TestAppendToUnknownDialogueCreatesOrphanLog(t *testing.T) {
	s := SeedStore()

	m := s.AppendMessage("999", "orphan", true)
	assert.Equal(t, "999", m.DialogueID)
	assert.Len(t, s.Messages("999"), 1)

	_, ok := s.Dialogue("999")
	assert.False(t, ok)
}

func TestAppendUpdatesDialoguePreview(t *testing.T) {
	s := SeedStore()

	m := s.AppendMessage("2", "fresh preview", true)

	d, ok := s.Dialogue("2")
	require.True(t, ok)
	assert.Equal(t, "fresh preview", d.LastMessage)
	assert.Equal(t, m.Timestamp, d.Timestamp)
}

func TestMarkAllReadIsIdempotent(t *testing.T) {
	s := SeedStore()

	require.True(t, s.MarkAllRead("1"))
	require.True(t, s.MarkAllRead("1"))

	d, _ := s.Dialogue("1")
	assert.Zero(t, d.UnreadCount)
	for _, m := range s.Messages("1") {
		if !m.IsMe {
			assert.True(t, m.IsRead, "remote message %s not read", m.ID)
		}
	}
}

func TestMarkAllReadUnknownDialogueIsNoop(t *testing.T) {
	s := SeedStore()
	assert.False(t, s.MarkAllRead("999"))
}

func TestCreateDialogueAssignsNextID(t *testing.T) {
	s := SeedStore()

	d := s.CreateDialogue("New Contact")
	assert.Equal(t, "6", d.ID)
	assert.Equal(t, "New conversation started", d.LastMessage)
	assert.True(t, d.IsOnline)
	assert.Zero(t, d.UnreadCount)
	assert.Contains(t, d.AvatarURL, "i.pravatar.cc")

	all := s.Dialogues()
	require.Len(t, all, 6)
	assert.Equal(t, "6", all[5].ID)
	assert.Empty(t, s.Messages("6"))
}

func TestSetOnline(t *testing.T) {
	s := SeedStore()

	require.True(t, s.SetOnline("3", true))
	d, _ := s.Dialogue("3")
	assert.True(t, d.IsOnline)

	require.True(t, s.SetOnline("3", false))
	d, _ = s.Dialogue("3")
	assert.False(t, d.IsOnline)

	assert.False(t, s.SetOnline("999", true))
}

func TestIncrementUnread(t *testing.T) {
	s := SeedStore()

	before, _ := s.Dialogue("2")
	require.True(t, s.IncrementUnread("2"))
	after, _ := s.Dialogue("2")
	assert.Equal(t, before.UnreadCount+1, after.UnreadCount)

	assert.False(t, s.IncrementUnread("999"))
}

func TestSeedStoreContents(t *testing.T) {
	s := SeedStore()

	all := s.Dialogues()
	require.Len(t, all, 5)
	assert.Equal(t, []string{"1", "2", "3", "4", "5"}, s.DialogueIDs())
	assert.Equal(t, "John Doe", all[0].ContactName)
	assert.Equal(t, 2, all[0].UnreadCount)
	assert.Equal(t, 3, s.MessageCount("1"))
	assert.Equal(t, 1, s.MessageCount("5"))
}
