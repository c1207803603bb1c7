// Background traffic simulator.
package server

import (
	"context"
	"math/rand"
	"time"

	"github.com/rs/zerolog"

	"chathub/internal/chat"
)

var simulatedTexts = []string{
	"👋 Auto-message: Just checking in!",
	"🤖 Auto-message: How's it going?",
	"⏰ Auto-message: Don't forget our meeting!",
}

// Simulator periodically injects remote-authored messages into random
// dialogues so connected clients see live traffic without a second party.
// It uses the same entry points as the operator console, so its effects are
// indistinguishable from a real remote client. Disabled by default.
type Simulator struct {
	store   *chat.Store
	handler *Handler
	hub     *Hub
	log     zerolog.Logger
}

// NewSimulator wires a simulator to the shared state.
func NewSimulator(store *chat.Store, handler *Handler, hub *Hub, log zerolog.Logger) *Simulator {
	return &Simulator{store: store, handler: handler, hub: hub, log: log}
}

// Run injects a message every 60 to 120 seconds after an initial 30 second
// delay, skipping rounds where no clients are connected. It returns when the
// context is cancelled.
func (s *Simulator) Run(ctx context.Context) {
	timer := time.NewTimer(30 * time.Second)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}

		if s.hub.ClientCount() > 0 {
			ids := s.store.DialogueIDs()
			if len(ids) > 0 {
				id := ids[rand.Intn(len(ids))]
				text := simulatedTexts[rand.Intn(len(simulatedTexts))]
				if _, ok := s.handler.SendRemote(id, text); ok {
					s.log.Debug().Str("dialogue", id).Msg("injected simulated message")
				}
			}
		}

		timer.Reset(time.Duration(60+rand.Intn(61)) * time.Second)
	}
}
