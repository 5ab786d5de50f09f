package agent

import (
	"encoding/base64"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func toolResult(t *testing.T, name, b64 string) Message {
	t.Helper()

	payload, err := json.Marshal(map[string]string{
		"path":    "screenshots/screenshot_20260826_120000.png",
		"base64":  b64,
		"message": "Screenshot saved",
	})
	require.NoError(t, err)

	return Message{
		Role:       RoleTool,
		ToolName:   name,
		ToolCallID: "call_1",
		Content:    string(payload),
	}
}

func fakePNG() string {
	return base64.StdEncoding.EncodeToString([]byte("\x89PNG fake image bytes"))
}

func TestSpliceAppendsExactlyOneImageMessage(t *testing.T) {
	b64 := fakePNG()
	msgs := []Message{
		{Role: RoleUser, Content: "analyze this game screen"},
		toolResult(t, "take_screenshot", b64),
	}

	out := spliceScreenshot(msgs)
	require.Len(t, out, len(msgs)+1)

	added := out[len(out)-1]
	assert.Equal(t, RoleUser, added.Role)
	assert.Equal(t, screenshotPrompt, added.Content)
	assert.Equal(t, "data:image/png;base64,"+b64, added.ImageURL)
}

func TestSplicePicksMostRecentScreenshot(t *testing.T) {
	older := fakePNG()
	newer := base64.StdEncoding.EncodeToString([]byte("newer image"))

	msgs := []Message{
		toolResult(t, "take_screenshot", older),
		{Role: RoleAssistant, Content: "looking again"},
		toolResult(t, "take_region_screenshot", newer),
	}

	out := spliceScreenshot(msgs)
	require.Len(t, out, len(msgs)+1)
	assert.Equal(t, "data:image/png;base64,"+newer, out[len(out)-1].ImageURL)
}

func TestSpliceNoScreenshotMessage(t *testing.T) {
	msgs := []Message{
		{Role: RoleUser, Content: "hello"},
		{Role: RoleAssistant, Content: "hi"},
		{Role: RoleTool, ToolName: "roll_dice", Content: `{"result":6}`},
	}

	out := spliceScreenshot(msgs)
	assert.Len(t, out, len(msgs))
}

func TestSplicePayloadWithoutBase64Field(t *testing.T) {
	msgs := []Message{
		{Role: RoleTool, ToolName: "take_screenshot", Content: `{"path":"x.png","message":"saved"}`},
	}

	out := spliceScreenshot(msgs)
	assert.Len(t, out, len(msgs))
}

func TestSpliceMalformedPayload(t *testing.T) {
	msgs := []Message{
		{Role: RoleTool, ToolName: "take_screenshot", Content: `not json at all`},
	}

	out := spliceScreenshot(msgs)
	assert.Len(t, out, len(msgs))
}

func TestSpliceToolNameMatchIsCaseInsensitive(t *testing.T) {
	b64 := fakePNG()
	msgs := []Message{toolResult(t, "Take_Region_Screenshot", b64)}

	out := spliceScreenshot(msgs)
	require.Len(t, out, 2)
	assert.Equal(t, "data:image/png;base64,"+b64, out[1].ImageURL)
}

func TestSpliceEmptyBase64Field(t *testing.T) {
	msgs := []Message{toolResult(t, "take_screenshot", "")}

	out := spliceScreenshot(msgs)
	assert.Len(t, out, len(msgs))
}

func TestSpliceEmptyTranscript(t *testing.T) {
	assert.Empty(t, spliceScreenshot(nil))
}
