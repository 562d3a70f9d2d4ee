// Package chat orchestrates the agent loop: prompt assembly, tool
// dispatch with a round cap, and conversation persistence.
package chat

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/staylens/staylens/internal/domain"
	domchat "github.com/staylens/staylens/internal/domain/chat"
	"github.com/staylens/staylens/internal/logger"
	"github.com/staylens/staylens/internal/metrics"
)

// Service runs chat rounds against the assistant.
type Service struct {
	assistant     domchat.Assistant
	conversations Conversations
	tools         ToolRunner
	historyWindow int
	maxToolRounds int
}

// New creates a chat service.
func New(
	assistant domchat.Assistant,
	conversations Conversations,
	tools ToolRunner,
	historyWindow, maxToolRounds int,
) *Service {
	return &Service{
		assistant:     assistant,
		conversations: conversations,
		tools:         tools,
		historyWindow: historyWindow,
		maxToolRounds: maxToolRounds,
	}
}

// Response is one completed chat round.
type Response struct {
	SessionID string                  `json:"session_id"`
	Reply     string                  `json:"reply"`
	Context   domchat.ResponseContext `json:"context"`
}

// Chat runs one round: load history, drive the tool loop to a final
// answer, persist the user/assistant turn pair. A persistence failure
// is logged but never costs the caller the answer. reqCtx is optional
// caller context injected into the prompt for this round only.
func (s *Service) Chat(ctx context.Context, sessionID, message string, reqCtx *domchat.RequestContext) (*Response, error) {
	if err := domchat.ValidateMessage(message); err != nil {
		return nil, err
	}
	identity := domain.IdentityFromContext(ctx)
	if sessionID == "" {
		sessionID = uuid.NewString()
	} else {
		// A session claimed by a signed-in user stays theirs. Anonymous
		// sessions have no owner and remain open.
		owner, err := s.conversations.Owner(ctx, sessionID)
		if err != nil {
			return nil, fmt.Errorf("%w: check session owner: %w", domain.ErrPersistence, err)
		}
		if owner != "" && owner != identity.UserID {
			return nil, fmt.Errorf("session %s belongs to another user: %w", sessionID, domain.ErrUnauthorized)
		}
	}

	history, err := s.conversations.History(ctx, sessionID, s.historyWindow)
	if err != nil {
		return nil, fmt.Errorf("%w: load history: %w", domain.ErrPersistence, err)
	}

	reply, records, loopExceeded, err := s.runAgentLoop(ctx, history, message, reqCtx)
	if err != nil {
		metrics.ChatRoundsTotal.WithLabelValues("failed").Inc()
		return nil, err
	}

	outcome := "answered"
	if loopExceeded {
		outcome = "loop_exceeded"
	}
	metrics.ChatRoundsTotal.WithLabelValues(outcome).Inc()

	userTurn := domchat.NewUserTurn(message)
	assistantTurn := domchat.NewAssistantTurn(reply, len(records))
	if err := s.conversations.AppendRound(ctx, sessionID, identity.UserID, userTurn, assistantTurn); err != nil {
		logger.FromContext(ctx).Error("Failed to persist chat round",
			zap.String("session_id", sessionID), zap.Error(err))
	}

	return &Response{
		SessionID: sessionID,
		Reply:     reply,
		Context:   domchat.DeriveContext(records, loopExceeded),
	}, nil
}

// runAgentLoop drives completions until the model stops requesting
// tools or the round cap trips. Past the cap the model gets one last
// completion without any tools, so it must answer with what it has.
func (s *Service) runAgentLoop(
	ctx context.Context, history []domchat.Turn, message string, reqCtx *domchat.RequestContext,
) (string, []domchat.ToolCallRecord, bool, error) {
	messages := s.buildPrompt(history, message, reqCtx)
	schemas := s.tools.Schemas()

	var records []domchat.ToolCallRecord

	for round := 0; round < s.maxToolRounds; round++ {
		completion, err := s.assistant.Complete(ctx, messages, schemas)
		if err != nil {
			return "", nil, false, fmt.Errorf("complete round %d: %w", round, err)
		}
		if !completion.FinishedWithTools() {
			return completion.Content, records, false, nil
		}

		// Echo the model's tool request turn, then one result message
		// per executed tool.
		messages = append(messages, domchat.Message{
			Role:     domchat.RoleAssistant,
			Content:  completion.Content,
			Requests: completion.Requests,
		})
		for _, req := range completion.Requests {
			record := s.tools.Execute(ctx, req)
			records = append(records, record)
			messages = append(messages, domchat.Message{
				Role:       domchat.RoleTool,
				ToolCallID: req.ID,
				Content:    toolResultContent(record),
			})
		}
	}

	// Cap exhausted: force a final answer with no tools on offer.
	completion, err := s.assistant.Complete(ctx, messages, nil)
	if err != nil {
		return "", nil, false, fmt.Errorf("final completion: %w", err)
	}
	if completion.Content == "" {
		return "", nil, false, fmt.Errorf("no answer after %d tool rounds: %w",
			s.maxToolRounds, domain.ErrToolLoopExceeded)
	}
	return completion.Content, records, true, nil
}

func (s *Service) buildPrompt(history []domchat.Turn, message string, reqCtx *domchat.RequestContext) []domchat.Message {
	messages := make([]domchat.Message, 0, len(history)+3)
	messages = append(messages, domchat.Message{Role: domchat.RoleSystem, Content: systemPrompt})
	if reqCtx != nil && !reqCtx.IsEmpty() {
		messages = append(messages, domchat.Message{Role: domchat.RoleSystem, Content: contextPrompt(*reqCtx)})
	}
	for _, turn := range history {
		messages = append(messages, domchat.Message{Role: turn.Role, Content: turn.Content})
	}
	return append(messages, domchat.Message{Role: domchat.RoleUser, Content: message})
}

// toolResultContent is what the model reads back: the result payload,
// or a structured error it can react to.
func toolResultContent(record domchat.ToolCallRecord) string {
	if record.Failed() {
		return fmt.Sprintf(`{"error":%q}`, record.Error)
	}
	return string(record.Result)
}
