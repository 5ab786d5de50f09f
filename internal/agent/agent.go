// Package agent runs the tool-calling conversation against the OpenRouter
// chat-completions API.
package agent

import (
	"context"
	"encoding/json"
	"fmt"

	log "log/slog"

	openai "github.com/openai/openai-go/v3"

	"gamesight/internal/screen"
)

const systemPrompt = `You are a game analysis assistant. You help users understand and analyze game screens.

Your capabilities:
- Take screenshots of the game screen using the take_screenshot tool
- Analyze game screens using vision to identify UI elements, characters, stats, objectives, etc.
- Provide strategic insights and advice based on what you see
- Read and interpret in-game text, menus, and HUD elements

When a user asks you to analyze something:
1. First, take a screenshot using the take_screenshot tool
2. Then analyze the screenshot content that will be automatically added to the context
3. Provide detailed insights based on what you observe

Be helpful, detailed, and game-focused in your responses.`

// maxToolRounds bounds the model's tool loop within a single user turn.
const maxToolRounds = 5

type Agent struct {
	client openai.Client
	model  string
	screen *screen.Capturer

	transcript []Message
	wire       []openai.ChatCompletionMessageParamUnion
}

func New(client openai.Client, model string, capturer *screen.Capturer) *Agent {
	return &Agent{
		client: client,
		model:  model,
		screen: capturer,
	}
}

// Transcript returns the session record accumulated so far.
func (a *Agent) Transcript() []Message {
	return a.transcript
}

// Run sends one user turn through the model, executing tool calls and
// splicing screenshots until the model produces a plain reply. Blocking; one
// conversation per process, no concurrent turns.
func (a *Agent) Run(ctx context.Context, userInput string) (string, error) {
	if len(a.wire) == 0 {
		a.wire = append(a.wire, openai.SystemMessage(systemPrompt))
		a.transcript = append(a.transcript, Message{Role: RoleSystem, Content: systemPrompt})
	}

	a.wire = append(a.wire, openai.UserMessage(userInput))
	a.transcript = append(a.transcript, Message{Role: RoleUser, Content: userInput})

	for round := 0; round < maxToolRounds; round++ {
		resp, err := a.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
			Messages: a.wire,
			Model:    a.model,
			Tools:    toolDefinitions(),
		})
		if err != nil {
			return "", fmt.Errorf("chat completion: %w", err)
		}

		if len(resp.Choices) == 0 {
			return "", fmt.Errorf("no choices in response")
		}

		msg := resp.Choices[0].Message

		if len(msg.ToolCalls) == 0 {
			a.wire = append(a.wire, msg.ToParam())
			a.transcript = append(a.transcript, Message{Role: RoleAssistant, Content: msg.Content})
			return msg.Content, nil
		}

		a.wire = append(a.wire, msg.ToParam())

		rec := Message{Role: RoleAssistant, Content: msg.Content}
		for _, tc := range msg.ToolCalls {
			rec.ToolCalls = append(rec.ToolCalls, ToolCall{
				ID:        tc.ID,
				Name:      tc.Function.Name,
				Arguments: tc.Function.Arguments,
			})
		}
		a.transcript = append(a.transcript, rec)

		for _, tc := range msg.ToolCalls {
			result := a.invokeTool(tc.Function.Name, tc.Function.Arguments)

			a.wire = append(a.wire, openai.ToolMessage(result, tc.ID))
			a.transcript = append(a.transcript, Message{
				Role:       RoleTool,
				Content:    result,
				ToolCallID: tc.ID,
				ToolName:   tc.Function.Name,
			})
		}

		a.bridgeScreenshot()
	}

	return "", fmt.Errorf("model did not settle after %d tool rounds", maxToolRounds)
}

// bridgeScreenshot mirrors a spliced image message onto the wire transcript.
func (a *Agent) bridgeScreenshot() {
	before := len(a.transcript)
	a.transcript = spliceScreenshot(a.transcript)
	if len(a.transcript) == before {
		return
	}

	m := a.transcript[len(a.transcript)-1]
	a.wire = append(a.wire, openai.UserMessage([]openai.ChatCompletionContentPartUnionParam{
		openai.TextContentPart(m.Content),
		openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{
			URL: m.ImageURL,
		}),
	}))

	log.Debug("Spliced screenshot into conversation")
}

type regionArgs struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// invokeTool never fails the turn: errors are reported back to the model as a
// payload it can read, and the conversation carries on without an image.
func (a *Agent) invokeTool(name, arguments string) string {
	var (
		res screen.Result
		err error
	)

	switch name {
	case "take_screenshot":
		res, err = a.screen.Capture()
	case "take_region_screenshot":
		var args regionArgs
		if err = json.Unmarshal([]byte(arguments), &args); err == nil {
			res, err = a.screen.CaptureRegion(args.X, args.Y, args.Width, args.Height)
		}
	default:
		err = fmt.Errorf("unknown tool %q", name)
	}

	if err != nil {
		log.Warn("Tool call failed", "tool", name, "err", err)
		return fmt.Sprintf(`{"error":%q}`, err.Error())
	}

	out, err := json.Marshal(res)
	if err != nil {
		return fmt.Sprintf(`{"error":%q}`, err.Error())
	}

	return string(out)
}

func toolDefinitions() []openai.ChatCompletionToolUnionParam {
	return []openai.ChatCompletionToolUnionParam{
		openai.ChatCompletionFunctionTool(openai.FunctionDefinitionParam{
			Name:        "take_screenshot",
			Description: openai.String("Take a screenshot of the entire screen. Returns the saved path and the image encoded as base64."),
			Parameters: openai.FunctionParameters{
				"type":       "object",
				"properties": map[string]any{},
			},
		}),
		openai.ChatCompletionFunctionTool(openai.FunctionDefinitionParam{
			Name:        "take_region_screenshot",
			Description: openai.String("Take a screenshot of a specific region of the screen."),
			Parameters: openai.FunctionParameters{
				"type": "object",
				"properties": map[string]any{
					"x":      map[string]any{"type": "integer", "description": "X coordinate of the top-left corner"},
					"y":      map[string]any{"type": "integer", "description": "Y coordinate of the top-left corner"},
					"width":  map[string]any{"type": "integer", "description": "Width of the region"},
					"height": map[string]any{"type": "integer", "description": "Height of the region"},
				},
				"required": []string{"x", "y", "width", "height"},
			},
		}),
	}
}
