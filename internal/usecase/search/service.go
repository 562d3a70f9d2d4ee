// Package search runs hybrid retrieval: vector and lexical search in
// parallel, fused into a single ranked list.
package search

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/staylens/staylens/internal/domain"
	domlisting "github.com/staylens/staylens/internal/domain/listing"
	"github.com/staylens/staylens/internal/domain/search/request"
	"github.com/staylens/staylens/internal/domain/search/result"
	"github.com/staylens/staylens/internal/logger"
)

// Service handles rental listing retrieval.
type Service struct {
	repo  Repository
	embed Embedder
}

// New creates a search service.
func New(repo Repository, embed Embedder) *Service {
	return &Service{repo: repo, embed: embed}
}

// Response is one executed search: the fused results and the strategy
// that produced them. Strategy degrades to lexical when the embedding
// provider is down.
type Response struct {
	Results  []result.Ranked
	Strategy result.Strategy
}

// Search runs both retrieval strategies concurrently and fuses their
// candidate lists. An embedding provider outage degrades the search to
// lexical-only instead of failing it.
func (s *Service) Search(ctx context.Context, req *request.Request) (*Response, error) {
	embResult, err := s.embed.Embed(ctx, req.Query())
	if err != nil {
		if errors.Is(err, domain.ErrEmbeddingUnavailable) {
			logger.FromContext(ctx).Warn("Embedding unavailable, degrading to lexical search",
				zap.Error(err))
			return s.searchLexicalOnly(ctx, req)
		}
		return nil, fmt.Errorf("vectorize query: %w", err)
	}

	k := req.CandidateCount()

	type fetched struct {
		hits []result.Ranked
		err  error
	}
	vectorCh := make(chan fetched, 1)
	lexicalCh := make(chan fetched, 1)

	go func() {
		hits, err := s.repo.SearchVector(ctx, embResult.Embedding, req.Filters(), k)
		vectorCh <- fetched{hits, err}
	}()
	go func() {
		hits, err := s.repo.SearchLexical(ctx, req.Query(), req.Filters(), k)
		lexicalCh <- fetched{hits, err}
	}()

	vector, lexical := <-vectorCh, <-lexicalCh
	if vector.err != nil {
		return nil, fmt.Errorf("search vector: %w", vector.err)
	}
	if lexical.err != nil {
		return nil, fmt.Errorf("search lexical: %w", lexical.err)
	}

	return &Response{
		Results:  fuse(vector.hits, lexical.hits, req.Limit()),
		Strategy: result.StrategyHybrid,
	}, nil
}

func (s *Service) searchLexicalOnly(ctx context.Context, req *request.Request) (*Response, error) {
	hits, err := s.repo.SearchLexical(ctx, req.Query(), req.Filters(), req.CandidateCount())
	if err != nil {
		return nil, fmt.Errorf("search lexical: %w", err)
	}
	return &Response{
		Results:  fuse(nil, hits, req.Limit()),
		Strategy: result.StrategyLexical,
	}, nil
}

// Detail resolves one listing identifier to its full record.
func (s *Service) Detail(ctx context.Context, id string) (*domlisting.Detail, error) {
	l, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	d := l.ToDetail()
	return &d, nil
}
