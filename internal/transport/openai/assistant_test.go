package openai

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/staylens/staylens/internal/domain"
	"github.com/staylens/staylens/internal/domain/chat"
)

func newAssistant(url string) *Assistant {
	return NewAssistant(&AssistantConfig{
		APIKey:  "test-key",
		BaseURL: url,
		Model:   "test-model",
		Logger:  zap.NewNop(),
	})
}

func TestAssistant_CompleteFinalAnswer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"object": "chat.completion",
			"choices": [{
				"index": 0,
				"finish_reason": "stop",
				"message": {"role": "assistant", "content": "Amsterdam has lovely canal lofts."}
			}],
			"usage": {"prompt_tokens": 20, "completion_tokens": 5, "total_tokens": 25}
		}`))
	}))
	defer server.Close()

	completion, err := newAssistant(server.URL).Complete(context.Background(),
		[]chat.Message{
			{Role: chat.RoleSystem, Content: "You help with rentals."},
			{Role: chat.RoleUser, Content: "What about Amsterdam?"},
		}, nil)
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}

	if completion.FinishedWithTools() {
		t.Error("expected final answer, got tool requests")
	}
	if completion.Content != "Amsterdam has lovely canal lofts." {
		t.Errorf("content = %q", completion.Content)
	}
}

func TestAssistant_CompleteToolCall(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		var req struct {
			Tools []struct {
				Type     string `json:"type"`
				Function struct {
					Name string `json:"name"`
				} `json:"function"`
			} `json:"tools"`
		}
		if err := json.Unmarshal(body, &req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if len(req.Tools) != 1 || req.Tools[0].Function.Name != "search_rentals" {
			t.Errorf("tools not forwarded: %+v", req.Tools)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"object": "chat.completion",
			"choices": [{
				"index": 0,
				"finish_reason": "tool_calls",
				"message": {
					"role": "assistant",
					"content": "",
					"tool_calls": [{
						"id": "call_1",
						"type": "function",
						"function": {
							"name": "search_rentals",
							"arguments": "{\"query\":\"loft in Amsterdam\"}"
						}
					}]
				}
			}]
		}`))
	}))
	defer server.Close()

	tools := []chat.ToolSchema{{
		Name:        "search_rentals",
		Description: "Search rental listings.",
		Parameters:  json.RawMessage(`{"type":"object"}`),
	}}

	completion, err := newAssistant(server.URL).Complete(context.Background(),
		[]chat.Message{{Role: chat.RoleUser, Content: "find a loft"}}, tools)
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}

	if !completion.FinishedWithTools() {
		t.Fatal("expected tool requests")
	}
	req := completion.Requests[0]
	if req.ID != "call_1" || req.Name != "search_rentals" {
		t.Errorf("request = %+v", req)
	}
	var args map[string]string
	if err := json.Unmarshal(req.Args, &args); err != nil {
		t.Fatalf("args not valid JSON: %v", err)
	}
	if args["query"] != "loft in Amsterdam" {
		t.Errorf("args = %v", args)
	}
}

func TestAssistant_CompleteProviderDown(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	_, err := newAssistant(server.URL).Complete(context.Background(),
		[]chat.Message{{Role: chat.RoleUser, Content: "hi"}}, nil)
	if !errors.Is(err, domain.ErrAssistantUnavailable) {
		t.Fatalf("err = %v, want ErrAssistantUnavailable", err)
	}
}

func TestAssistant_ToolResultsRoundTrip(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		var req struct {
			Messages []struct {
				Role       string `json:"role"`
				Content    string `json:"content"`
				ToolCallID string `json:"tool_call_id"`
			} `json:"messages"`
		}
		if err := json.Unmarshal(body, &req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		// system, user, assistant tool call, tool result
		if len(req.Messages) != 4 {
			t.Fatalf("len(messages) = %d, want 4", len(req.Messages))
		}
		last := req.Messages[3]
		if last.Role != "tool" || last.ToolCallID != "call_1" {
			t.Errorf("tool result not forwarded: %+v", last)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"object": "chat.completion",
			"choices": [{
				"index": 0,
				"finish_reason": "stop",
				"message": {"role": "assistant", "content": "Found 3 lofts."}
			}]
		}`))
	}))
	defer server.Close()

	messages := []chat.Message{
		{Role: chat.RoleSystem, Content: "You help with rentals."},
		{Role: chat.RoleUser, Content: "find a loft"},
		{Role: chat.RoleAssistant, Requests: []chat.ToolRequest{{
			ID: "call_1", Name: "search_rentals", Args: json.RawMessage(`{"query":"loft"}`),
		}}},
		{Role: chat.RoleTool, ToolCallID: "call_1", Content: `{"results":[]}`},
	}

	completion, err := newAssistant(server.URL).Complete(context.Background(), messages, nil)
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if completion.Content != "Found 3 lofts." {
		t.Errorf("content = %q", completion.Content)
	}
}
