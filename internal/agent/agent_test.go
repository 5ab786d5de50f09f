package agent

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"gamesight/internal/screen"
)

func newTestClient() openai.Client {
	return openai.NewClient(option.WithAPIKey("test"), option.WithBaseURL("http://127.0.0.1:0"))
}

func TestInvokeToolUnknownNameReportsError(t *testing.T) {
	a := New(newTestClient(), "test-model", screen.NewCapturer(t.TempDir()))

	out := a.invokeTool("roll_dice", "{}")

	var payload map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &payload))
	assert.Contains(t, payload["error"], "roll_dice")
}

func TestInvokeToolMalformedRegionArguments(t *testing.T) {
	a := New(newTestClient(), "test-model", screen.NewCapturer(t.TempDir()))

	out := a.invokeTool("take_region_screenshot", "not json")

	var payload map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &payload))
	assert.NotEmpty(t, payload["error"])
}

func TestTranscriptStartsEmpty(t *testing.T) {
	a := New(newTestClient(), "test-model", screen.NewCapturer(t.TempDir()))
	assert.Empty(t, a.Transcript())
}
