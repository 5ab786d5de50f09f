package repl

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseQuitVariants(t *testing.T) {
	for _, in := range []string{"quit", "exit", "q", "QUIT", "Exit", "Q", "  quit  "} {
		cmd, _ := Parse(in)
		assert.Equal(t, CmdQuit, cmd, "input %q", in)
	}
}

func TestParseTTSToggles(t *testing.T) {
	cmd, _ := Parse("tts on")
	assert.Equal(t, CmdTTSOn, cmd)

	cmd, _ = Parse("TTS OFF")
	assert.Equal(t, CmdTTSOff, cmd)
}

func TestParseVoiceCommands(t *testing.T) {
	for _, in := range []string{"voice", "v", "V", "Voice"} {
		cmd, _ := Parse(in)
		assert.Equal(t, CmdVoice, cmd, "input %q", in)
	}

	cmd, _ := Parse("voices")
	assert.Equal(t, CmdVoices, cmd)
}

func TestParseEmptyLine(t *testing.T) {
	cmd, _ := Parse("   ")
	assert.Equal(t, CmdNone, cmd)
}

func TestParseEverythingElseIsAsk(t *testing.T) {
	cmd, text := Parse("  analyze this game screen  ")
	assert.Equal(t, CmdAsk, cmd)
	assert.Equal(t, "analyze this game screen", text)

	// commands embedded in a longer sentence are still a question
	cmd, _ = Parse("quit the dungeon?")
	assert.Equal(t, CmdAsk, cmd)
}
