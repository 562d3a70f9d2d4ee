package domain

import "errors"

var (
	// ErrValidation signals malformed caller input.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound signals a missing listing.
	ErrNotFound = errors.New("listing not found")
	// ErrConversationNotFound signals a missing conversation.
	ErrConversationNotFound = errors.New("conversation not found")
	// ErrUnauthorized signals an identity-required operation without a caller identity.
	ErrUnauthorized = errors.New("authentication required")
	// ErrEmbeddingUnavailable signals an embedding provider failure.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")
	// ErrAssistantUnavailable signals a chat model provider failure.
	ErrAssistantUnavailable = errors.New("assistant service unavailable")
	// ErrInvalidToolArgs signals tool arguments that fail schema validation.
	ErrInvalidToolArgs = errors.New("invalid tool arguments")
	// ErrToolLoopExceeded signals that the agent hit the tool round cap.
	ErrToolLoopExceeded = errors.New("tool call round limit exceeded")
	// ErrPersistence signals a conversation write failure.
	ErrPersistence = errors.New("conversation persistence failed")
	// ErrVectorDimMismatch signals a stored vector with the wrong dimensionality.
	ErrVectorDimMismatch = errors.New("vector dimension mismatch")
)
