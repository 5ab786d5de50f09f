// Package repl parses the interactive loop's line commands.
package repl

import "strings"

type Command int

const (
	// CmdNone is an empty line; the loop just re-prompts.
	CmdNone Command = iota
	CmdQuit
	CmdTTSOn
	CmdTTSOff
	CmdVoice
	CmdVoices
	// CmdAsk is anything else: a user turn for the agent.
	CmdAsk
)

// Parse classifies a line. Command matching is case-insensitive; the returned
// string is the trimmed input, relevant for CmdAsk.
func Parse(input string) (Command, string) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return CmdNone, ""
	}

	switch strings.ToLower(trimmed) {
	case "quit", "exit", "q":
		return CmdQuit, trimmed
	case "tts on":
		return CmdTTSOn, trimmed
	case "tts off":
		return CmdTTSOff, trimmed
	case "voice", "v":
		return CmdVoice, trimmed
	case "voices":
		return CmdVoices, trimmed
	}

	return CmdAsk, trimmed
}
