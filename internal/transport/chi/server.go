// Package chi is the HTTP transport: routing, request decoding, and
// domain error mapping.
package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/staylens/staylens/internal/domain"
	domchat "github.com/staylens/staylens/internal/domain/chat"
	domlisting "github.com/staylens/staylens/internal/domain/listing"
	"github.com/staylens/staylens/internal/domain/search/request"
	"github.com/staylens/staylens/internal/usecase/chat"
	"github.com/staylens/staylens/internal/usecase/health"
	"github.com/staylens/staylens/internal/usecase/search"
	"github.com/staylens/staylens/internal/version"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// ChatService runs one chat round.
type ChatService interface {
	Chat(ctx context.Context, sessionID, message string, reqCtx *domchat.RequestContext) (*chat.Response, error)
}

// SearchService runs hybrid retrieval and detail lookups.
type SearchService interface {
	Search(ctx context.Context, req *request.Request) (*search.Response, error)
	Detail(ctx context.Context, id string) (*domlisting.Detail, error)
}

// HealthService aggregates component health.
type HealthService interface {
	Check(ctx context.Context) health.Report
}

// Server is the HTTP API server.
type Server struct {
	chat          ChatService
	search        SearchService
	health        HealthService
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(chatSvc ChatService, searchSvc SearchService, healthSvc HealthService, logger *zap.Logger) *Server {
	s := &Server{
		chat:   chatSvc,
		search: searchSvc,
		health: healthSvc,
		logger: logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrValidation, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrInvalidToolArgs, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrVectorDimMismatch, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrConversationNotFound, http.StatusNotFound, codeConversationNotFound),
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, codeNotFound),
		sentinelHandler(domain.ErrUnauthorized, http.StatusUnauthorized, codeUnauthorized),
		sentinelHandler(domain.ErrEmbeddingUnavailable, http.StatusBadGateway, codeEmbeddingUnavailable),
		sentinelHandler(domain.ErrAssistantUnavailable, http.StatusBadGateway, codeAssistantUnavailable),
		sentinelHandler(domain.ErrToolLoopExceeded, http.StatusBadGateway, codeToolLoopExceeded),
		sentinelHandler(domain.ErrPersistence, http.StatusInternalServerError, codeStorageError),
	}
	return s
}

// Routes mounts the API endpoints onto a router.
func (s *Server) Routes(r chi.Router) {
	r.Route("/v1", func(r chi.Router) {
		r.Post("/chat", s.handleChat)
		r.Post("/search", s.handleSearch)
		r.Get("/listings/{id}", s.handleListingDetail)
		r.Get("/health", s.handleHealth)
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
}

// handleChat handles POST /v1/chat.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	resp, err := s.chat.Chat(r.Context(), req.SessionID, req.Message, req.Context)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, chatResponse{
		SessionID: resp.SessionID,
		Reply:     resp.Reply,
		Context:   resp.Context,
	})
}

// handleSearch handles POST /v1/search.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	searchReq, err := request.New(req.Query, req.Filters, req.Limit)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeValidationFailed, err.Error())
		return
	}

	resp, err := s.search.Search(r.Context(), &searchReq)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, searchResponse{
		Results:  search.Summaries(resp.Results),
		Strategy: string(resp.Strategy),
		Count:    len(resp.Results),
	})
}

// handleListingDetail handles GET /v1/listings/{id}.
func (s *Server) handleListingDetail(w http.ResponseWriter, r *http.Request) {
	detail, err := s.search.Detail(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

// handleHealth handles GET /v1/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	status := http.StatusOK
	if report.Status == health.Unhealthy {
		status = http.StatusServiceUnavailable
	}

	writeJSON(w, status, healthResponse{
		Status:  report.Status,
		Version: version.Version,
		Checks:  report.Checks,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code errorCode, message string) {
	writeJSON(w, status, errorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrValidation,
		domain.ErrInvalidToolArgs,
		domain.ErrVectorDimMismatch,
		domain.ErrConversationNotFound,
		domain.ErrNotFound,
		domain.ErrUnauthorized,
		domain.ErrEmbeddingUnavailable,
		domain.ErrAssistantUnavailable,
		domain.ErrToolLoopExceeded,
		domain.ErrPersistence,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code errorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}
