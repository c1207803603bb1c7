package console

import "strings"

type opKind int

const (
	opNone opKind = iota
	opList
	opMsgs
	opOnline
	opOffline
	opSend
	opQuit
	opUsage
)

// opCommand is one parsed operator line. For opUsage, text carries the
// usage message to print.
type opCommand struct {
	kind       opKind
	dialogueID string
	text       string
}

// parseLine maps an operator input line onto a command. Keywords are
// case-insensitive; anything of the form "<id> <text>" that is not a keyword
// is a remote-party send.
func parseLine(line string) opCommand {
	line = strings.TrimSpace(line)
	if line == "" {
		return opCommand{kind: opNone}
	}

	fields := strings.Fields(line)
	switch strings.ToLower(fields[0]) {
	case "quit":
		return opCommand{kind: opQuit}
	case "list":
		return opCommand{kind: opList}
	case "msgs":
		if len(fields) < 2 {
			return opCommand{kind: opUsage, text: "Usage: msgs <id>"}
		}
		return opCommand{kind: opMsgs, dialogueID: fields[1]}
	case "online":
		if len(fields) < 2 {
			return opCommand{kind: opUsage, text: "Usage: online <id>"}
		}
		return opCommand{kind: opOnline, dialogueID: fields[1]}
	case "offline":
		if len(fields) < 2 {
			return opCommand{kind: opUsage, text: "Usage: offline <id>"}
		}
		return opCommand{kind: opOffline, dialogueID: fields[1]}
	}

	parts := strings.SplitN(line, " ", 2)
	if len(parts) == 2 {
		return opCommand{kind: opSend, dialogueID: parts[0], text: parts[1]}
	}
	return opCommand{kind: opUsage, text: "Invalid command. Use: <id> <message>  (e.g. '1 Hello!')"}
}
