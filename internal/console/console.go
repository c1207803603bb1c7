// Package console implements the operator control surface: a line-oriented
// prompt on stdin that inspects and mutates the same shared state the
// WebSocket clients drive. It is a privileged synthetic client with no
// authentication, intended for operability and demos rather than security.
package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/rs/zerolog"

	"chathub/internal/chat"
	"chathub/internal/server"
)

// Console drives operator commands against the shared store and hub.
type Console struct {
	store   *chat.Store
	handler *server.Handler
	quit    context.CancelFunc
	log     zerolog.Logger
	out     io.Writer
}

// New builds a console. quit is invoked when the operator asks the process
// to stop.
func New(store *chat.Store, handler *server.Handler, quit context.CancelFunc, log zerolog.Logger) *Console {
	return &Console{store: store, handler: handler, quit: quit, log: log, out: os.Stdout}
}

// Run reads operator commands until quit, interrupt, or EOF. It should be
// called in its own goroutine.
func (c *Console) Run(ctx context.Context) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "> ",
		HistoryFile:     filepath.Join(os.TempDir(), ".chathub_history"),
		HistoryLimit:    100,
		InterruptPrompt: "^C",
		EOFPrompt:       "quit",
	})
	if err != nil {
		c.log.Error().Err(err).Msg("console unavailable")
		return
	}
	defer rl.Close()

	c.printHelp()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		line, err := rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
				c.quit()
				return
			}
			continue
		}

		if !c.execute(parseLine(line)) {
			return
		}
	}
}

// execute runs one operator command, returning false when the process
// should stop.
func (c *Console) execute(cmd opCommand) bool {
	switch cmd.kind {
	case opNone:
		return true
	case opQuit:
		fmt.Fprintln(c.out, "Shutting down server...")
		c.quit()
		return false
	case opList:
		c.printDialogues()
	case opMsgs:
		c.printMessages(cmd.dialogueID)
	case opOnline, opOffline:
		online := cmd.kind == opOnline
		if !c.handler.SetPresence(cmd.dialogueID, online) {
			fmt.Fprintf(c.out, "Dialogue ID %q not found\n", cmd.dialogueID)
			return true
		}
		d, _ := c.store.Dialogue(cmd.dialogueID)
		state := "OFFLINE"
		if online {
			state = "ONLINE"
		}
		fmt.Fprintf(c.out, "%s is now %s\n", d.ContactName, state)
	case opSend:
		if _, ok := c.handler.SendRemote(cmd.dialogueID, cmd.text); !ok {
			fmt.Fprintf(c.out, "Dialogue ID %q not found. Type 'list' to see all IDs.\n", cmd.dialogueID)
			return true
		}
		d, _ := c.store.Dialogue(cmd.dialogueID)
		fmt.Fprintf(c.out, "Sent to %s: %s\n", d.ContactName, cmd.text)
	case opUsage:
		fmt.Fprintln(c.out, cmd.text)
	}
	return true
}

func (c *Console) printHelp() {
	fmt.Fprintln(c.out, strings.Repeat("=", 60))
	fmt.Fprintln(c.out, "CONSOLE COMMANDS:")
	fmt.Fprintln(c.out, strings.Repeat("=", 60))
	fmt.Fprintln(c.out, "list            - Show all dialogues")
	fmt.Fprintln(c.out, "<id> <message>  - Send message as remote party (e.g. '1 Hello there!')")
	fmt.Fprintln(c.out, "msgs <id>       - Show messages for dialogue (e.g. 'msgs 1')")
	fmt.Fprintln(c.out, "online <id>     - Set contact online")
	fmt.Fprintln(c.out, "offline <id>    - Set contact offline")
	fmt.Fprintln(c.out, "quit            - Stop server")
	fmt.Fprintln(c.out, strings.Repeat("=", 60))
}

func (c *Console) printDialogues() {
	fmt.Fprintln(c.out, "\nCurrent Dialogues:")
	fmt.Fprintln(c.out, strings.Repeat("-", 60))
	for _, d := range c.store.Dialogues() {
		status := "⚫"
		if d.IsOnline {
			status = "🟢"
		}
		unread := ""
		if d.UnreadCount > 0 {
			unread = fmt.Sprintf(" (%d unread)", d.UnreadCount)
		}
		fmt.Fprintf(c.out, "%s ID: %s | %s%s | %d messages\n", status, d.ID, d.ContactName, unread, c.store.MessageCount(d.ID))
		fmt.Fprintf(c.out, "   Last: %s\n", d.LastMessage)
	}
	fmt.Fprintln(c.out, strings.Repeat("-", 60))
}

func (c *Console) printMessages(dialogueID string) {
	d, ok := c.store.Dialogue(dialogueID)
	if !ok {
		fmt.Fprintf(c.out, "No messages found for dialogue ID %q\n", dialogueID)
		return
	}

	fmt.Fprintf(c.out, "\nMessages for dialogue %s (%s):\n", dialogueID, d.ContactName)
	fmt.Fprintln(c.out, strings.Repeat("-", 60))
	for _, m := range c.store.Messages(dialogueID) {
		sender := d.ContactName
		if m.IsMe {
			sender = "You"
		}
		marker := "✓"
		if m.IsRead {
			marker = "✓✓"
		}
		fmt.Fprintf(c.out, "[%s] %s: %s %s\n", m.Timestamp.Format("2006-01-02 15:04:05"), sender, m.Text, marker)
	}
	fmt.Fprintln(c.out, strings.Repeat("-", 60))
}
