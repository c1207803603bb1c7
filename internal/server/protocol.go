// Wire protocol: inbound command decoding and outbound event frames.
package server

import (
	"encoding/json"
	"time"

	"chathub/internal/chat"
)

// command is the closed set of frame kinds a client may send. decodeCommand
// maps every well-formed frame onto exactly one variant; kinds outside the
// set decode to unknownCmd so the handler has a single fallback.
type command interface {
	kind() string
}

type getDialoguesCmd struct{}

type getMessagesCmd struct {
	DialogueID string
}

type sendMessageCmd struct {
	DialogueID string
	Text       string
	TempID     string
}

type pingCmd struct{}

type markReadCmd struct {
	DialogueID string
}

type createDialogueCmd struct {
	ContactName string
}

type unknownCmd struct {
	Kind string
}

func (getDialoguesCmd) kind() string   { return "get_dialogues" }
func (getMessagesCmd) kind() string    { return "get_messages" }
func (sendMessageCmd) kind() string    { return "send_message" }
func (pingCmd) kind() string           { return "ping" }
func (markReadCmd) kind() string       { return "mark_read" }
func (createDialogueCmd) kind() string { return "create_dialogue" }
func (c unknownCmd) kind() string      { return c.Kind }

func decodeCommand(raw []byte) (command, error) {
	var frame struct {
		Type        string `json:"type"`
		DialogueID  string `json:"dialogueId"`
		Text        string `json:"text"`
		TempID      string `json:"tempId"`
		ContactName string `json:"contactName"`
	}
	if err := json.Unmarshal(raw, &frame); err != nil {
		return nil, err
	}

	switch frame.Type {
	case "get_dialogues":
		return getDialoguesCmd{}, nil
	case "get_messages":
		return getMessagesCmd{DialogueID: frame.DialogueID}, nil
	case "send_message":
		return sendMessageCmd{DialogueID: frame.DialogueID, Text: frame.Text, TempID: frame.TempID}, nil
	case "ping":
		return pingCmd{}, nil
	case "mark_read":
		return markReadCmd{DialogueID: frame.DialogueID}, nil
	case "create_dialogue":
		return createDialogueCmd{ContactName: frame.ContactName}, nil
	default:
		return unknownCmd{Kind: frame.Type}, nil
	}
}

// Outbound frames. Each is one JSON object with a type tag; new_message
// flattens the message fields into the frame itself, everything else nests
// its payload.

// encodeFrame marshals an outbound frame. The frame shapes contain only
// plain data, so marshaling cannot fail; the fallback exists to keep the
// send paths total.
func encodeFrame(v any) []byte {
	data, err := json.Marshal(v)
	if err != nil {
		return []byte(`{"type":"error","message":"internal encoding error"}`)
	}
	return data
}

func initialDialoguesFrame(dialogues []chat.Dialogue) []byte {
	return encodeFrame(struct {
		Type      string          `json:"type"`
		Dialogues []chat.Dialogue `json:"dialogues"`
	}{"initial_dialogues", dialogues})
}

func messageHistoryFrame(dialogueID string, messages []chat.Message) []byte {
	return encodeFrame(struct {
		Type       string         `json:"type"`
		DialogueID string         `json:"dialogueId"`
		Messages   []chat.Message `json:"messages"`
	}{"message_history", dialogueID, messages})
}

func messageSentFrame(dialogueID, messageID, tempID string, ts time.Time) []byte {
	return encodeFrame(struct {
		Type       string    `json:"type"`
		DialogueID string    `json:"dialogueId"`
		MessageID  string    `json:"messageId"`
		TempID     string    `json:"tempId"`
		Timestamp  time.Time `json:"timestamp"`
	}{"message_sent", dialogueID, messageID, tempID, ts})
}

func newMessageFrame(msg chat.Message) []byte {
	return encodeFrame(struct {
		Type string `json:"type"`
		chat.Message
	}{"new_message", msg})
}

func dialogueUpdatedFrame(d chat.Dialogue) []byte {
	return encodeFrame(struct {
		Type     string        `json:"type"`
		Dialogue chat.Dialogue `json:"dialogue"`
	}{"dialogue_updated", d})
}

func newDialogueFrame(d chat.Dialogue) []byte {
	return encodeFrame(struct {
		Type     string        `json:"type"`
		Dialogue chat.Dialogue `json:"dialogue"`
	}{"new_dialogue", d})
}

func presenceFrame(event, dialogueID string) []byte {
	return encodeFrame(struct {
		Type       string `json:"type"`
		DialogueID string `json:"dialogueId"`
	}{event, dialogueID})
}

func markReadSuccessFrame(dialogueID string) []byte {
	return encodeFrame(struct {
		Type       string `json:"type"`
		DialogueID string `json:"dialogueId"`
	}{"mark_read_success", dialogueID})
}

func pongFrame() []byte {
	return encodeFrame(struct {
		Type string `json:"type"`
	}{"pong"})
}

func errorFrame(message string) []byte {
	return encodeFrame(struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	}{"error", message})
}
