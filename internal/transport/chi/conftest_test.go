package chi

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	domchat "github.com/staylens/staylens/internal/domain/chat"
	domlisting "github.com/staylens/staylens/internal/domain/listing"
	"github.com/staylens/staylens/internal/domain/search/request"
	"github.com/staylens/staylens/internal/usecase/chat"
	"github.com/staylens/staylens/internal/usecase/health"
	"github.com/staylens/staylens/internal/usecase/search"
)

type mockChat struct {
	resp *chat.Response
	err  error

	gotSessionID string
	gotMessage   string
	gotContext   *domchat.RequestContext
}

func (m *mockChat) Chat(
	_ context.Context, sessionID, message string, reqCtx *domchat.RequestContext,
) (*chat.Response, error) {
	m.gotSessionID = sessionID
	m.gotMessage = message
	m.gotContext = reqCtx
	if m.err != nil {
		return nil, m.err
	}
	return m.resp, nil
}

type mockSearch struct {
	resp      *search.Response
	detail    *domlisting.Detail
	err       error
	detailErr error

	gotRequest  *request.Request
	gotDetailID string
}

func (m *mockSearch) Search(_ context.Context, req *request.Request) (*search.Response, error) {
	m.gotRequest = req
	if m.err != nil {
		return nil, m.err
	}
	return m.resp, nil
}

func (m *mockSearch) Detail(_ context.Context, id string) (*domlisting.Detail, error) {
	m.gotDetailID = id
	if m.detailErr != nil {
		return nil, m.detailErr
	}
	return m.detail, nil
}

type mockHealth struct {
	report health.Report
}

func (m *mockHealth) Check(_ context.Context) health.Report {
	return m.report
}

// newTestRouter mounts a Server over the given mocks without any
// middleware in front.
func newTestRouter(chatSvc *mockChat, searchSvc *mockSearch, healthSvc *mockHealth) http.Handler {
	if chatSvc == nil {
		chatSvc = &mockChat{}
	}
	if searchSvc == nil {
		searchSvc = &mockSearch{}
	}
	if healthSvc == nil {
		healthSvc = &mockHealth{report: health.Report{Status: health.Healthy}}
	}
	srv := NewServer(chatSvc, searchSvc, healthSvc, zap.NewNop())
	r := chi.NewRouter()
	srv.Routes(r)
	return r
}
