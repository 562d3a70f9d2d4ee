package search

import (
	"context"

	"github.com/staylens/staylens/internal/domain"
	domlisting "github.com/staylens/staylens/internal/domain/listing"
	"github.com/staylens/staylens/internal/domain/search/filter"
	"github.com/staylens/staylens/internal/domain/search/result"
)

type mockRepo struct {
	vectorHits []result.Ranked
	vectorErr  error
	vectorK    int

	lexicalHits   []result.Ranked
	lexicalErr    error
	lexicalK      int
	lexicalCalled bool

	listing *domlisting.Listing
	getErr  error
}

func (m *mockRepo) SearchVector(
	_ context.Context, _ []float32, _ filter.Filter, k int,
) ([]result.Ranked, error) {
	m.vectorK = k
	return m.vectorHits, m.vectorErr
}

func (m *mockRepo) SearchLexical(
	_ context.Context, _ string, _ filter.Filter, k int,
) ([]result.Ranked, error) {
	m.lexicalCalled = true
	m.lexicalK = k
	return m.lexicalHits, m.lexicalErr
}

func (m *mockRepo) GetByID(_ context.Context, id string) (*domlisting.Listing, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.listing, nil
}

type mockEmbedder struct {
	result domain.EmbeddingResult
	err    error
	calls  int
}

func (m *mockEmbedder) Embed(_ context.Context, _ string) (domain.EmbeddingResult, error) {
	m.calls++
	return m.result, m.err
}
