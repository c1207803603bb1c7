// Package chat holds the in-memory conversation state shared by every
// connection: the dialogue directory, the per-dialogue message logs, and the
// process-wide message id counter.
package chat

import "time"

// Dialogue is one conversation thread together with the metadata clients
// render in the conversation list.
type Dialogue struct {
	ID          string    `json:"id"`
	ContactName string    `json:"contactName"`
	LastMessage string    `json:"lastMessage"`
	Timestamp   time.Time `json:"timestamp"`
	UnreadCount int       `json:"unreadCount"`
	AvatarURL   string    `json:"avatarUrl"`
	IsOnline    bool      `json:"isOnline"`
}

// Message is one text entry in a dialogue's log. IsMe marks messages
// authored by the local party; remote-authored messages carry IsMe false and
// count toward the dialogue's unread badge until marked read.
type Message struct {
	ID          string    `json:"id"`
	DialogueID  string    `json:"dialogueId"`
	Text        string    `json:"text"`
	IsMe        bool      `json:"isMe"`
	Timestamp   time.Time `json:"timestamp"`
	IsDelivered bool      `json:"isDelivered"`
	IsRead      bool      `json:"isRead"`
}
