package agent

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	openai "github.com/sashabaranov/go-openai"

	"github.com/gridgames/arena/game/engine"
)

// chatStub records each chat completion request and replies with a fixed
// assistant message.
type chatStub struct {
	reply    string
	requests []openai.ChatCompletionRequest
}

func (c *chatStub) handler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			t.Fatalf("Failed to read request body: %v", err)
		}

		var req openai.ChatCompletionRequest
		if err := json.Unmarshal(body, &req); err != nil {
			t.Fatalf("Failed to decode chat request: %v", err)
		}
		c.requests = append(c.requests, req)

		resp := openai.ChatCompletionResponse{
			Choices: []openai.ChatCompletionChoice{
				{Message: openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: c.reply}},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}
}

func newStubbedAgent(t *testing.T, stub *chatStub) *OpenAIAgent {
	t.Helper()

	ts := httptest.NewServer(stub.handler(t))
	t.Cleanup(ts.Close)

	config := openai.DefaultConfig("test-key")
	config.BaseURL = ts.URL + "/v1"
	config.HTTPClient = ts.Client()
	return NewOpenAIAgentWithConfig("llm", "test-model", config)
}

func TestOpenAIAgentProposesMove(t *testing.T) {
	_, state := newTestState(t, "connected", 0)
	stub := &chatStub{reply: "(2,1)"}
	agent := newStubbedAgent(t, stub)

	pos, err := agent.ProposeMove(context.Background(), viewFor(state, 2))
	if err != nil {
		t.Fatalf("ProposeMove() error = %v", err)
	}
	if pos != (engine.Position{Row: 2, Col: 1}) {
		t.Errorf("ProposeMove() = %v, want (2,1)", pos)
	}

	if len(stub.requests) != 1 {
		t.Fatalf("Expected 1 chat request, got %d", len(stub.requests))
	}
	req := stub.requests[0]
	if req.Model != "test-model" {
		t.Errorf("Expected model test-model, got %s", req.Model)
	}
	if len(req.Messages) != 2 {
		t.Fatalf("Expected 2 system messages, got %d", len(req.Messages))
	}
	if !strings.Contains(req.Messages[0].Content, "3x3 grid") {
		t.Errorf("Expected game context in first message:\n%s", req.Messages[0].Content)
	}
	if !strings.Contains(req.Messages[1].Content, "It's your turn") {
		t.Errorf("Expected play prompt in second message:\n%s", req.Messages[1].Content)
	}
}

func TestOpenAIAgentSendsFeedback(t *testing.T) {
	_, state := newTestState(t, "connected", 0)
	stub := &chatStub{reply: "0,0"}
	agent := newStubbedAgent(t, stub)

	view := viewFor(state, 1)
	view.Feedback = "Position 1,1 is already occupied."

	if _, err := agent.ProposeMove(context.Background(), view); err != nil {
		t.Fatalf("ProposeMove() error = %v", err)
	}

	req := stub.requests[0]
	if len(req.Messages) != 3 {
		t.Fatalf("Expected feedback as a third message, got %d messages", len(req.Messages))
	}
	last := req.Messages[2].Content
	if !strings.Contains(last, "Previous move failed due to Position 1,1 is already occupied.") {
		t.Errorf("Expected re-prompt carrying the rejection, got:\n%s", last)
	}
}

func TestOpenAIAgentRejectsUnparsableReply(t *testing.T) {
	_, state := newTestState(t, "connected", 0)
	stub := &chatStub{reply: "I would like to pass"}
	agent := newStubbedAgent(t, stub)

	_, err := agent.ProposeMove(context.Background(), viewFor(state, 1))
	var pe *engine.PlaceError
	if !errors.As(err, &pe) || pe.Reason != engine.ReasonBadFormat {
		t.Errorf("Expected bad_format PlaceError, got %v", err)
	}
}

func TestOpenAIAgentEmptyChoices(t *testing.T) {
	_, state := newTestState(t, "connected", 0)

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(openai.ChatCompletionResponse{})
	}))
	t.Cleanup(ts.Close)

	config := openai.DefaultConfig("test-key")
	config.BaseURL = ts.URL + "/v1"
	config.HTTPClient = ts.Client()
	agent := NewOpenAIAgentWithConfig("llm", "", config)

	_, err := agent.ProposeMove(context.Background(), viewFor(state, 1))
	if err == nil || !strings.Contains(err.Error(), "no choices") {
		t.Errorf("Expected no-choices error, got %v", err)
	}
}

func TestNewOpenAIAgentRequiresKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	if _, err := NewOpenAIAgent("llm", ""); err == nil {
		t.Error("Expected error without OPENAI_API_KEY")
	}
}

func TestNewOpenAIAgentWithConfigDefaultsModel(t *testing.T) {
	agent := NewOpenAIAgentWithConfig("llm", "", openai.DefaultConfig("test-key"))
	if agent.model != DefaultOpenAIModel {
		t.Errorf("Expected default model %s, got %s", DefaultOpenAIModel, agent.model)
	}
}
