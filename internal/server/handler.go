// Command execution: decoded frames mutate the store and fan events out
// through the hub.
package server

import (
	"fmt"

	"github.com/rs/zerolog"

	"chathub/internal/chat"
	"chathub/internal/metrics"
)

// Handler executes client commands against the shared store. The operator
// console and the traffic simulator inject through the same methods, so
// their traffic is indistinguishable from a remote client's.
type Handler struct {
	store *chat.Store
	hub   *Hub
	log   zerolog.Logger
}

// NewHandler wires a handler to the shared store and hub.
func NewHandler(store *chat.Store, hub *Hub, log zerolog.Logger) *Handler {
	return &Handler{store: store, hub: hub, log: log}
}

// HandleFrame processes one inbound frame. Faults stop here: a frame that
// cannot be decoded or that panics while handled answers the originating
// client with an error frame and never disturbs other connections.
func (h *Handler) HandleFrame(c *Client, raw []byte) {
	defer func() {
		if r := recover(); r != nil {
			metrics.FrameErrors.Inc()
			h.log.Error().Interface("panic", r).Str("client", c.id).Msg("recovered while handling frame")
			h.reply(c, errorFrame(fmt.Sprintf("internal error: %v", r)))
		}
	}()

	cmd, err := decodeCommand(raw)
	if err != nil {
		metrics.FrameErrors.Inc()
		h.log.Warn().Err(err).Str("client", c.id).Msg("malformed frame")
		h.reply(c, errorFrame("Invalid JSON format"))
		return
	}
	metrics.FramesReceived.WithLabelValues(cmd.kind()).Inc()

	switch cmd := cmd.(type) {
	case getDialoguesCmd:
		h.reply(c, initialDialoguesFrame(h.store.Dialogues()))
	case getMessagesCmd:
		h.reply(c, messageHistoryFrame(cmd.DialogueID, h.store.Messages(cmd.DialogueID)))
	case sendMessageCmd:
		h.handleSendMessage(c, cmd)
	case pingCmd:
		h.reply(c, pongFrame())
	case markReadCmd:
		if h.store.MarkAllRead(cmd.DialogueID) {
			h.reply(c, markReadSuccessFrame(cmd.DialogueID))
		}
	case createDialogueCmd:
		h.handleCreateDialogue(cmd)
	case unknownCmd:
		h.log.Warn().Str("kind", cmd.Kind).Str("client", c.id).Msg("unknown command kind")
	}
}

func (h *Handler) handleSendMessage(c *Client, cmd sendMessageCmd) {
	// A frame without a dialogue id or text is dropped without a reply.
	if cmd.DialogueID == "" || cmd.Text == "" {
		return
	}

	msg := h.store.AppendMessage(cmd.DialogueID, cmd.Text, true)
	metrics.MessagesStored.WithLabelValues("local").Inc()
	h.log.Info().Str("dialogue", cmd.DialogueID).Str("message", msg.ID).Msg("message sent")

	h.reply(c, messageSentFrame(cmd.DialogueID, msg.ID, cmd.TempID, msg.Timestamp))
	h.publish("new_message", newMessageFrame(msg))
	if d, ok := h.store.Dialogue(cmd.DialogueID); ok {
		h.publish("dialogue_updated", dialogueUpdatedFrame(d))
	}
}

func (h *Handler) handleCreateDialogue(cmd createDialogueCmd) {
	name := cmd.ContactName
	if name == "" {
		name = "New Contact"
	}
	d := h.store.CreateDialogue(name)
	h.log.Info().Str("dialogue", d.ID).Str("contact", d.ContactName).Msg("dialogue created")
	h.publish("new_dialogue", newDialogueFrame(d))
}

// SendRemote appends a remotely-authored message, bumps the dialogue's
// unread counter, and broadcasts the new-message and dialogue-updated
// events. It reports false for unknown dialogue ids without changing state.
func (h *Handler) SendRemote(dialogueID, text string) (chat.Message, bool) {
	if _, ok := h.store.Dialogue(dialogueID); !ok {
		return chat.Message{}, false
	}

	msg := h.store.AppendMessage(dialogueID, text, false)
	h.store.IncrementUnread(dialogueID)
	metrics.MessagesStored.WithLabelValues("remote").Inc()
	h.log.Info().Str("dialogue", dialogueID).Str("message", msg.ID).Msg("remote message injected")

	h.publish("new_message", newMessageFrame(msg))
	if d, ok := h.store.Dialogue(dialogueID); ok {
		h.publish("dialogue_updated", dialogueUpdatedFrame(d))
	}
	return msg, true
}

// SetPresence flips a dialogue's online flag and broadcasts the matching
// presence event. It reports false for unknown dialogue ids.
func (h *Handler) SetPresence(dialogueID string, online bool) bool {
	if !h.store.SetOnline(dialogueID, online) {
		return false
	}
	event := "user_offline"
	if online {
		event = "user_online"
	}
	h.publish(event, presenceFrame(event, dialogueID))
	return true
}

// reply delivers a frame to the originating client only.
func (h *Handler) reply(c *Client, frame []byte) {
	if !h.hub.SendTo(c, frame) {
		h.log.Debug().Str("client", c.id).Msg("dropped reply to departed client")
	}
}

// publish fans an event frame out to every registered client.
func (h *Handler) publish(event string, frame []byte) {
	metrics.Broadcasts.WithLabelValues(event).Inc()
	h.hub.Broadcast(frame)
}
