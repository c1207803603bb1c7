package console

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		want opCommand
	}{
		{"empty", "", opCommand{kind: opNone}},
		{"whitespace only", "   ", opCommand{kind: opNone}},
		{"quit", "quit", opCommand{kind: opQuit}},
		{"quit uppercase", "QUIT", opCommand{kind: opQuit}},
		{"list", "list", opCommand{kind: opList}},
		{"msgs", "msgs 3", opCommand{kind: opMsgs, dialogueID: "3"}},
		{"msgs missing id", "msgs", opCommand{kind: opUsage, text: "Usage: msgs <id>"}},
		{"online", "online 1", opCommand{kind: opOnline, dialogueID: "1"}},
		{"offline", "offline 2", opCommand{kind: opOffline, dialogueID: "2"}},
		{"online missing id", "online", opCommand{kind: opUsage, text: "Usage: online <id>"}},
		{"send", "1 Hello there!", opCommand{kind: opSend, dialogueID: "1", text: "Hello there!"}},
		{"send trims edges", "  5 see you soon  ", opCommand{kind: opSend, dialogueID: "5", text: "see you soon"}},
		{"bare id", "42", opCommand{kind: opUsage, text: "Invalid command. Use: <id> <message>  (e.g. '1 Hello!')"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLine(tt.line))
		})
	}
}
