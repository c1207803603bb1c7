package chat

import (
	"fmt"
	"math/rand"
	"strconv"
	"sync"
	"sync/atomic"
	"time"
)

// Store owns the dialogue directory and message logs for the life of the
// process. All methods are safe for concurrent use; values handed back to
// callers are copies, so they can be serialized without holding the store
// lock.
type Store struct {
	mu        sync.RWMutex
	dialogues map[string]*Dialogue
	order     []string
	logs      map[string][]Message
	counter   atomic.Int64
}

// NewStore returns an empty store. The message id counter starts at 100 so
// minted ids never collide with seeded log entries.
func NewStore() *Store {
	s := &Store{
		dialogues: make(map[string]*Dialogue),
		logs:      make(map[string][]Message),
	}
	s.counter.Store(100)
	return s
}

// AppendMessage mints the next message id, appends the message to the
// dialogue's log (creating the log if absent), and refreshes the dialogue's
// preview text and timestamp when the dialogue exists. Appending to an id
// with no directory entry is accepted and leaves an orphaned log.
func (s *Store) AppendMessage(dialogueID, text string, isMe bool) Message {
	n := s.counter.Add(1)
	msg := Message{
		ID:          fmt.Sprintf("msg_%s_%d", dialogueID, n),
		DialogueID:  dialogueID,
		Text:        text,
		IsMe:        isMe,
		Timestamp:   time.Now(),
		IsDelivered: true,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.logs[dialogueID] = append(s.logs[dialogueID], msg)
	if d, ok := s.dialogues[dialogueID]; ok {
		d.LastMessage = text
		d.Timestamp = msg.Timestamp
	}
	return msg
}

// Messages returns a copy of the dialogue's log, oldest first. Unknown ids
// yield an empty slice, never an error.
func (s *Store) Messages(dialogueID string) []Message {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Message, len(s.logs[dialogueID]))
	copy(out, s.logs[dialogueID])
	return out
}

// MessageCount returns the number of messages in a dialogue's log.
func (s *Store) MessageCount(dialogueID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.logs[dialogueID])
}

// MarkAllRead flags every remote-authored message in the dialogue as read
// and zeroes the unread counter. It reports whether the dialogue exists;
// unknown ids change nothing.
func (s *Store) MarkAllRead(dialogueID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.dialogues[dialogueID]
	if !ok {
		return false
	}
	d.UnreadCount = 0

	log := s.logs[dialogueID]
	for i := range log {
		if !log[i].IsMe {
			log[i].IsRead = true
		}
	}
	return true
}

// CreateDialogue allocates the next directory id, stores a dialogue with an
// empty message log, and returns a copy of it. Ids are derived from the
// directory size, which is safe because dialogues are never deleted.
func (s *Store) CreateDialogue(contactName string) Dialogue {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := strconv.Itoa(len(s.dialogues) + 1)
	d := &Dialogue{
		ID:          id,
		ContactName: contactName,
		LastMessage: "New conversation started",
		Timestamp:   time.Now(),
		AvatarURL:   fmt.Sprintf("https://i.pravatar.cc/150?img=%d", 10+rand.Intn(61)),
		IsOnline:    true,
	}
	s.dialogues[id] = d
	s.order = append(s.order, id)
	s.logs[id] = []Message{}
	return *d
}

// SetOnline sets the dialogue's presence flag, reporting whether the
// dialogue exists.
func (s *Store) SetOnline(dialogueID string, online bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.dialogues[dialogueID]
	if !ok {
		return false
	}
	d.IsOnline = online
	return true
}

// IncrementUnread bumps the dialogue's unread counter by one. Only the
// remote-authored message path calls this; locally sent messages never count
// as unread.
func (s *Store) IncrementUnread(dialogueID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.dialogues[dialogueID]
	if !ok {
		return false
	}
	d.UnreadCount++
	return true
}

// Dialogue returns a copy of one dialogue by id.
func (s *Store) Dialogue(dialogueID string) (Dialogue, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.dialogues[dialogueID]
	if !ok {
		return Dialogue{}, false
	}
	return *d, true
}

// Dialogues returns copies of every dialogue in creation order.
func (s *Store) Dialogues() []Dialogue {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Dialogue, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, *s.dialogues[id])
	}
	return out
}

// DialogueIDs returns every dialogue id in creation order.
func (s *Store) DialogueIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.order...)
}
