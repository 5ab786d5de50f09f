package agent

import (
	"encoding/json"
	"strings"
)

// screenshotPrompt accompanies every spliced image.
const screenshotPrompt = "Here is the screenshot. Please analyze it:"

// spliceScreenshot scans the transcript from the most recent message
// backwards for the first screenshot-tool result carrying a base64 image and,
// if one exists, appends a single user message with the image as a data URL.
// Malformed payloads and imageless transcripts leave the slice untouched;
// the conversation then proceeds text-only.
func spliceScreenshot(msgs []Message) []Message {
	url, ok := latestScreenshot(msgs)
	if !ok {
		return msgs
	}

	return append(msgs, Message{
		Role:     RoleUser,
		Content:  screenshotPrompt,
		ImageURL: url,
	})
}

func latestScreenshot(msgs []Message) (string, bool) {
	for i := len(msgs) - 1; i >= 0; i-- {
		m := msgs[i]
		if m.Role != RoleTool || !strings.Contains(strings.ToLower(m.ToolName), "screenshot") {
			continue
		}

		var payload map[string]any
		if err := json.Unmarshal([]byte(m.Content), &payload); err != nil {
			return "", false
		}

		b64, ok := payload["base64"].(string)
		if !ok || b64 == "" {
			return "", false
		}

		return "data:image/png;base64," + b64, true
	}

	return "", false
}
