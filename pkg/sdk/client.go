package sdk

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/staylens/staylens/internal/db/redis"
	"github.com/staylens/staylens/internal/domain"
	domchat "github.com/staylens/staylens/internal/domain/chat"
	"github.com/staylens/staylens/internal/domain/search/request"
	"github.com/staylens/staylens/internal/metrics"
	conversationrepo "github.com/staylens/staylens/internal/repository/conversation"
	"github.com/staylens/staylens/internal/repository/embcache"
	listingrepo "github.com/staylens/staylens/internal/repository/listing"
	openaiTransport "github.com/staylens/staylens/internal/transport/openai"
	chatuc "github.com/staylens/staylens/internal/usecase/chat"
	searchuc "github.com/staylens/staylens/internal/usecase/search"
	"github.com/staylens/staylens/internal/usecase/tools"
)

const (
	defaultReadinessTimeout = 10 * time.Second
	defaultHistoryWindow    = 20
	defaultMaxToolRounds    = 5
	defaultMaxRetries       = 3
)

// Client is the embedded staylens engine.
type Client struct {
	store     *redis.Store
	listings  *listingrepo.Repo
	searchSvc *searchuc.Service
	chatSvc   *chatuc.Service
	embedder  domain.Embedder
}

// New creates a Client and connects to the database. An embedding
// provider is required (WithOpenAI or WithEmbedder); chat requires a
// chat model via WithOpenAI.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		vectorDimensions: domain.VectorDim,
		historyWindow:    defaultHistoryWindow,
		maxToolRounds:    defaultMaxToolRounds,
		logger:           zap.NewNop(),
	}
	for _, o := range opts {
		o.apply(cfg)
	}

	if len(cfg.addrs) == 0 {
		return nil, errors.New("sdk: database address required (use WithRedis)")
	}
	if cfg.embedder == nil && cfg.embModel == "" {
		return nil, errors.New("sdk: embedding provider required (use WithOpenAI or WithEmbedder)")
	}

	store, err := redis.NewStore(redis.Config{
		Addrs:    cfg.addrs,
		Username: cfg.username,
		Password: cfg.password,
	})
	if err != nil {
		return nil, fmt.Errorf("sdk: create store: %w", err)
	}

	ctx := context.Background()
	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("sdk: database not ready: %w", err)
	}

	return wireClient(store, cfg)
}

func wireClient(store *redis.Store, cfg *clientConfig) (*Client, error) {
	var embedder domain.Embedder
	if cfg.embedder != nil {
		embedder = &embedderAdapter{inner: cfg.embedder}
	} else {
		embedder = openaiTransport.NewEmbedder(&openaiTransport.EmbedderConfig{
			APIKey:     cfg.openAIKey,
			BaseURL:    cfg.openAIURL,
			Model:      cfg.embModel,
			Dimensions: cfg.vectorDimensions,
			Provider:   "openai",
			MaxRetries: defaultMaxRetries,
			Logger:     cfg.logger,
		})
	}
	embedder = embcache.New(embedder, store, 0, metrics.EmbeddingCacheTotal, cfg.logger)

	listings := listingrepo.New(store, cfg.vectorDimensions)
	if cfg.hnswM > 0 || cfg.hnswEFConstruct > 0 {
		listings = listings.WithHNSW(listingrepo.HNSWConfig{
			M:           cfg.hnswM,
			EFConstruct: cfg.hnswEFConstruct,
		})
	}

	searchSvc := searchuc.New(listings, embedder)

	var chatSvc *chatuc.Service
	if cfg.chatModel != "" {
		assistant := openaiTransport.NewAssistant(&openaiTransport.AssistantConfig{
			APIKey:     cfg.openAIKey,
			BaseURL:    cfg.openAIURL,
			Model:      cfg.chatModel,
			MaxRetries: defaultMaxRetries,
			Logger:     cfg.logger,
		})
		conversations := conversationrepo.New(store, cfg.retention)
		registry := tools.New(searchSvc, listings)
		chatSvc = chatuc.New(assistant, conversations, registry,
			cfg.historyWindow, cfg.maxToolRounds)
	}

	return &Client{
		store:     store,
		listings:  listings,
		searchSvc: searchSvc,
		chatSvc:   chatSvc,
		embedder:  embedder,
	}, nil
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks database connectivity.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// EnsureIndex creates the listing search index if missing.
func (c *Client) EnsureIndex(ctx context.Context) error {
	return c.listings.EnsureIndex(ctx)
}

// Search runs hybrid retrieval over the listing index.
func (c *Client) Search(ctx context.Context, query string, f Filter, limit int) (*SearchResult, error) {
	req, err := request.New(query, f.toInternal(), limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrValidation, err)
	}
	resp, err := c.searchSvc.Search(ctx, &req)
	if err != nil {
		return nil, err
	}

	out := &SearchResult{Strategy: string(resp.Strategy)}
	for _, s := range searchuc.Summaries(resp.Results) {
		out.Results = append(out.Results, toSummary(s))
	}
	return out, nil
}

// GetListing fetches the full projection for one listing identifier.
func (c *Client) GetListing(ctx context.Context, id string) (*Detail, error) {
	return c.searchSvc.Detail(ctx, id)
}

// Chat runs one agent round. An empty sessionID starts a new session.
// Requires a chat model configured via WithOpenAI.
func (c *Client) Chat(ctx context.Context, sessionID, message string) (*ChatReply, error) {
	if c.chatSvc == nil {
		return nil, errors.New("sdk: chat model not configured (use WithOpenAI)")
	}
	resp, err := c.chatSvc.Chat(ctx, sessionID, message, nil)
	if err != nil {
		return nil, err
	}
	reply := toChatReply(resp.SessionID, resp.Reply, resp.Context)
	return &reply, nil
}

// ChatAs runs one agent round with a caller identity attached, so
// identity-scoped tools like saved rentals are available to the model.
func (c *Client) ChatAs(ctx context.Context, userID, sessionID, message string) (*ChatReply, error) {
	return c.Chat(domain.ContextWithIdentity(ctx, domain.Identity{UserID: userID}), sessionID, message)
}

// History returns the most recent turns of a session, oldest first.
func (c *Client) History(ctx context.Context, sessionID string, window int) ([]domchat.Turn, error) {
	conversations := conversationrepo.New(c.store, 0)
	return conversations.History(ctx, sessionID, window)
}

// DeleteSession removes a conversation and its metadata. Returns
// ErrConversationNotFound when the session was never persisted.
func (c *Client) DeleteSession(ctx context.Context, sessionID string) error {
	conversations := conversationrepo.New(c.store, 0)
	return conversations.Delete(ctx, sessionID)
}

// UpsertListings embeds listing content and writes the records to the
// index in one batch.
func (c *Client) UpsertListings(ctx context.Context, listings []*Listing) error {
	texts := make([]string, len(listings))
	for i, l := range listings {
		texts[i] = l.Content()
	}

	res, err := c.batchEmbed(ctx, texts)
	if err != nil {
		return fmt.Errorf("sdk: embed listings: %w", err)
	}
	if len(res.Embeddings) != len(listings) {
		return fmt.Errorf("sdk: got %d vectors for %d listings", len(res.Embeddings), len(listings))
	}
	for i, l := range listings {
		l.Vector = res.Embeddings[i]
	}
	return c.listings.UpsertMulti(ctx, listings)
}

// SaveRental adds a listing to a user's saved set.
func (c *Client) SaveRental(ctx context.Context, userID, listingID string) error {
	return c.listings.SaveListing(ctx, userID, listingID)
}

// UnsaveRental removes a listing from a user's saved set.
func (c *Client) UnsaveRental(ctx context.Context, userID, listingID string) error {
	return c.listings.UnsaveListing(ctx, userID, listingID)
}

// SavedRentals returns the listing identifiers a user has saved.
func (c *Client) SavedRentals(ctx context.Context, userID string) ([]string, error) {
	return c.listings.SavedListings(ctx, userID)
}

func (c *Client) batchEmbed(ctx context.Context, texts []string) (domain.BatchEmbeddingResult, error) {
	if be, ok := c.embedder.(domain.BatchEmbedder); ok {
		return be.BatchEmbed(ctx, texts)
	}
	return domain.BatchFallback(ctx, c.embedder, texts)
}
