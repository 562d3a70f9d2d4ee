package chat

import (
	"context"

	domchat "github.com/staylens/staylens/internal/domain/chat"
)

// Conversations is the persistence contract for chat history.
type Conversations interface {
	AppendRound(ctx context.Context, sessionID, userID string, user, assistant domchat.Turn) error
	History(ctx context.Context, sessionID string, window int) ([]domchat.Turn, error)
	Owner(ctx context.Context, sessionID string) (string, error)
}

// ToolRunner advertises tools to the model and executes its requests.
type ToolRunner interface {
	Schemas() []domchat.ToolSchema
	Execute(ctx context.Context, req domchat.ToolRequest) domchat.ToolCallRecord
}
