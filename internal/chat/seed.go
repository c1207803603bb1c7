package chat

import "time"

// SeedStore returns a store preloaded with the demo dialogues and message
// histories that freshly connected clients see. Timestamps are relative to
// startup so the conversation list always looks recent.
func SeedStore() *Store {
	s := NewStore()
	now := time.Now()

	entries := []struct {
		dialogue Dialogue
		messages []Message
	}{
		{
			dialogue: Dialogue{
				ID:          "1",
				ContactName: "John Doe",
				LastMessage: "Hey, are you free for lunch?",
				Timestamp:   now.Add(-5 * time.Minute),
				UnreadCount: 2,
				AvatarURL:   "https://i.pravatar.cc/150?img=1",
				IsOnline:    true,
			},
			messages: []Message{
				{ID: "msg_1_1", DialogueID: "1", Text: "Hello! How are you?", Timestamp: now.Add(-2 * time.Hour), IsDelivered: true, IsRead: true},
				{ID: "msg_1_2", DialogueID: "1", Text: "Hi! I'm doing great, thanks for asking!", IsMe: true, Timestamp: now.Add(-115 * time.Minute), IsDelivered: true, IsRead: true},
				{ID: "msg_1_3", DialogueID: "1", Text: "Hey, are you free for lunch?", Timestamp: now.Add(-5 * time.Minute), IsDelivered: true},
			},
		},
		{
			dialogue: Dialogue{
				ID:          "2",
				ContactName: "Sarah Smith",
				LastMessage: "Thanks for the help!",
				Timestamp:   now.Add(-time.Hour),
				AvatarURL:   "https://i.pravatar.cc/150?img=2",
				IsOnline:    true,
			},
			messages: []Message{
				{ID: "msg_2_1", DialogueID: "2", Text: "Can you help me with the project?", Timestamp: now.Add(-3 * time.Hour), IsDelivered: true, IsRead: true},
				{ID: "msg_2_2", DialogueID: "2", Text: "Sure! What do you need help with?", IsMe: true, Timestamp: now.Add(-2 * time.Hour), IsDelivered: true, IsRead: true},
				{ID: "msg_2_3", DialogueID: "2", Text: "Thanks for the help!", Timestamp: now.Add(-time.Hour), IsDelivered: true, IsRead: true},
			},
		},
		{
			dialogue: Dialogue{
				ID:          "3",
				ContactName: "Mike Johnson",
				LastMessage: "See you tomorrow 👋",
				Timestamp:   now.Add(-3 * time.Hour),
				UnreadCount: 1,
				AvatarURL:   "https://i.pravatar.cc/150?img=3",
			},
			messages: []Message{
				{ID: "msg_3_1", DialogueID: "3", Text: "Don't forget about the meeting tomorrow", Timestamp: now.Add(-4 * time.Hour), IsDelivered: true, IsRead: true},
				{ID: "msg_3_2", DialogueID: "3", Text: "Thanks for reminding me! What time?", IsMe: true, Timestamp: now.Add(-150 * time.Minute), IsDelivered: true, IsRead: true},
				{ID: "msg_3_3", DialogueID: "3", Text: "See you tomorrow 👋", Timestamp: now.Add(-3 * time.Hour), IsDelivered: true},
			},
		},
		{
			dialogue: Dialogue{
				ID:          "4",
				ContactName: "Emily Brown",
				LastMessage: "The project looks great!",
				Timestamp:   now.Add(-24 * time.Hour),
				AvatarURL:   "https://i.pravatar.cc/150?img=4",
			},
			messages: []Message{
				{ID: "msg_4_1", DialogueID: "4", Text: "I reviewed your work", Timestamp: now.Add(-26 * time.Hour), IsDelivered: true, IsRead: true},
				{ID: "msg_4_2", DialogueID: "4", Text: "The project looks great!", Timestamp: now.Add(-24 * time.Hour), IsDelivered: true, IsRead: true},
			},
		},
		{
			dialogue: Dialogue{
				ID:          "5",
				ContactName: "Alex Wilson",
				LastMessage: "Can you send me the files?",
				Timestamp:   now.Add(-48 * time.Hour),
				UnreadCount: 5,
				AvatarURL:   "https://i.pravatar.cc/150?img=5",
				IsOnline:    true,
			},
			messages: []Message{
				{ID: "msg_5_1", DialogueID: "5", Text: "Can you send me the files?", Timestamp: now.Add(-48 * time.Hour), IsDelivered: true},
			},
		},
	}

	for _, e := range entries {
		d := e.dialogue
		s.dialogues[d.ID] = &d
		s.order = append(s.order, d.ID)
		s.logs[d.ID] = append([]Message(nil), e.messages...)
	}
	return s
}
