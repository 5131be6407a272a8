package agent

import (
	"context"
	"fmt"
	"os"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/gridgames/arena/game/engine"
	"github.com/gridgames/arena/internal/log"
)

var logger = log.WithComponent("agent")

// DefaultOpenAIModel is used when no model is configured
const DefaultOpenAIModel = openai.GPT4

// OpenAIAgent asks a chat completion model for each move. The board and
// open positions are sent as system messages, and the reply is parsed as
// a "row,col" position.
type OpenAIAgent struct {
	name   string
	model  string
	client *openai.Client
}

// NewOpenAIAgent creates an LLM-backed player. The API key comes from
// the OPENAI_API_KEY environment variable.
func NewOpenAIAgent(name, model string) (*OpenAIAgent, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY environment variable is not set")
	}
	return NewOpenAIAgentWithConfig(name, model, openai.DefaultConfig(apiKey)), nil
}

// NewOpenAIAgentWithConfig creates an LLM-backed player from an explicit
// client configuration, letting callers point the agent at an alternate
// base URL or HTTP client.
func NewOpenAIAgentWithConfig(name, model string, config openai.ClientConfig) *OpenAIAgent {
	if model == "" {
		model = DefaultOpenAIModel
	}

	return &OpenAIAgent{
		name:   name,
		model:  model,
		client: openai.NewClientWithConfig(config),
	}
}

func (a *OpenAIAgent) Name() string {
	return a.name
}

func (a *OpenAIAgent) ProposeMove(ctx context.Context, view *View) (engine.Position, error) {
	messages := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: buildGameContext(view)},
		{Role: openai.ChatMessageRoleSystem, Content: buildPlayPrompt(view)},
	}
	if view.Feedback != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: fmt.Sprintf("Previous move failed due to %s.", view.Feedback),
		})
	}

	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    a.model,
		Messages: messages,
	})
	if err != nil {
		return engine.Position{}, fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return engine.Position{}, fmt.Errorf("chat completion returned no choices")
	}

	reply := resp.Choices[0].Message.Content
	logger.Debug().Str("agent", a.name).Str("reply", reply).Msg("model proposed move")

	return engine.ParsePosition(cleanReply(reply))
}

// cleanReply strips the decorations models like to wrap around a tuple
func cleanReply(reply string) string {
	reply = strings.TrimSpace(reply)
	reply = strings.Trim(reply, "`")
	reply = strings.TrimPrefix(reply, "(")
	reply = strings.TrimSuffix(reply, ")")
	return strings.TrimSpace(reply)
}
