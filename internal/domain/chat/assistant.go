package chat

import (
	"context"
	"encoding/json"
)

// Message is one entry of the prompt sent to the chat model.
type Message struct {
	Role       Role
	Content    string
	ToolCallID string
	Requests   []ToolRequest
}

// RoleSystem and RoleTool exist only on the model prompt, never in
// persisted history.
const (
	RoleSystem Role = "system"
	RoleTool   Role = "tool"
)

// ToolRequest is the model asking for one tool execution.
type ToolRequest struct {
	ID   string
	Name string
	Args json.RawMessage
}

// ToolSchema describes one callable tool to the model. Parameters is a
// JSON Schema object.
type ToolSchema struct {
	Name        string
	Description string
	Parameters  json.RawMessage
}

// Completion is one model response: either a final answer or a batch of
// tool requests to execute before asking again.
type Completion struct {
	Content  string
	Requests []ToolRequest
}

// FinishedWithTools reports whether the model wants tools executed.
func (c *Completion) FinishedWithTools() bool { return len(c.Requests) > 0 }

// Assistant is the chat model the orchestrator drives.
type Assistant interface {
	Complete(ctx context.Context, messages []Message, tools []ToolSchema) (*Completion, error)
}
