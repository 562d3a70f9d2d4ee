// Package chat holds conversation state and per-run tool call records.
package chat

import (
	"fmt"
	"time"

	"github.com/staylens/staylens/internal/domain"
)

// MaxMessageLength is the maximum accepted chat message length.
const MaxMessageLength = 1000

// Role identifies the author of a conversation turn.
type Role string

const (
	// RoleUser marks a turn authored by the caller.
	RoleUser Role = "user"
	// RoleAssistant marks a turn authored by the assistant.
	RoleAssistant Role = "assistant"
)

// Turn is one persisted conversation entry. Turns are append-only:
// exactly two are added per successful chat round, user then assistant.
type Turn struct {
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
	ToolCalls int       `json:"tool_calls,omitempty"`
}

// NewUserTurn creates a user turn stamped now.
func NewUserTurn(content string) Turn {
	return Turn{Role: RoleUser, Content: content, Timestamp: time.Now().UTC()}
}

// NewAssistantTurn creates an assistant turn stamped now.
func NewAssistantTurn(content string, toolCalls int) Turn {
	return Turn{Role: RoleAssistant, Content: content, Timestamp: time.Now().UTC(), ToolCalls: toolCalls}
}

// Meta is the derived per-conversation metadata.
type Meta struct {
	SessionID  string    `json:"session_id"`
	UserID     string    `json:"user_id,omitempty"`
	TurnCount  int       `json:"turn_count"`
	LastActive time.Time `json:"last_active"`
}

// Authenticated reports whether the conversation belongs to a known user.
func (m Meta) Authenticated() bool { return m.UserID != "" }

// ValidateMessage checks an incoming chat message.
func ValidateMessage(message string) error {
	if message == "" {
		return fmt.Errorf("%w: message is required", domain.ErrValidation)
	}
	if len(message) > MaxMessageLength {
		return fmt.Errorf("%w: message too long (max %d chars)", domain.ErrValidation, MaxMessageLength)
	}
	return nil
}
