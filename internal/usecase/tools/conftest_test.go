package tools

import (
	"context"
	"os"
	"testing"

	"github.com/staylens/staylens/internal/domain"
	domlisting "github.com/staylens/staylens/internal/domain/listing"
	"github.com/staylens/staylens/internal/domain/search/request"
	"github.com/staylens/staylens/internal/metrics"
	"github.com/staylens/staylens/internal/usecase/search"
)

func TestMain(m *testing.M) {
	metrics.RegisterAssistantMetrics()
	os.Exit(m.Run())
}

type mockSearcher struct {
	resp    *search.Response
	err     error
	lastReq *request.Request

	detail    *domlisting.Detail
	details   map[string]*domlisting.Detail
	detailErr error
	lastID    string
}

func (m *mockSearcher) Search(_ context.Context, req *request.Request) (*search.Response, error) {
	m.lastReq = req
	return m.resp, m.err
}

func (m *mockSearcher) Detail(_ context.Context, id string) (*domlisting.Detail, error) {
	m.lastID = id
	if m.detailErr != nil {
		return nil, m.detailErr
	}
	if d, ok := m.details[id]; ok {
		return d, nil
	}
	return m.detail, nil
}

type mockSaved struct {
	ids []string
	err error
}

func (m *mockSaved) SavedListings(_ context.Context, _ string) ([]string, error) {
	return m.ids, m.err
}

func authedCtx(userID string) context.Context {
	return domain.ContextWithIdentity(context.Background(), domain.Identity{UserID: userID})
}
