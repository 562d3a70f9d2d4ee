package chi

import (
	domchat "github.com/staylens/staylens/internal/domain/chat"
	domlisting "github.com/staylens/staylens/internal/domain/listing"
	"github.com/staylens/staylens/internal/domain/search/filter"
	"github.com/staylens/staylens/internal/usecase/health"
)

// errorCode is the machine-readable error discriminator.
type errorCode string

const (
	codeBadRequest           errorCode = "bad_request"
	codeValidationFailed     errorCode = "validation_failed"
	codeNotFound             errorCode = "not_found"
	codeConversationNotFound errorCode = "conversation_not_found"
	codeUnauthorized         errorCode = "unauthorized"
	codeEmbeddingUnavailable errorCode = "embedding_unavailable"
	codeAssistantUnavailable errorCode = "assistant_unavailable"
	codeToolLoopExceeded     errorCode = "tool_loop_exceeded"
	codeStorageError         errorCode = "storage_error"
	codeInternalError        errorCode = "internal_error"
)

type errorResponse struct {
	Code    errorCode `json:"code"`
	Message string    `json:"message"`
}

type chatRequest struct {
	SessionID string                  `json:"session_id,omitempty"`
	Message   string                  `json:"message"`
	Context   *domchat.RequestContext `json:"context,omitempty"`
}

type chatResponse struct {
	SessionID string                  `json:"session_id"`
	Reply     string                  `json:"reply"`
	Context   domchat.ResponseContext `json:"context"`
}

type searchRequest struct {
	Query   string        `json:"query"`
	Filters filter.Filter `json:"filters"`
	Limit   int           `json:"limit,omitempty"`
}

type searchResponse struct {
	Results  []domlisting.Summary `json:"results"`
	Strategy string               `json:"strategy"`
	Count    int                  `json:"count"`
}

type healthResponse struct {
	Status  health.Status                 `json:"status"`
	Version string                        `json:"version"`
	Checks  map[string]health.CheckResult `json:"checks"`
}
