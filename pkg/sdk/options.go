package sdk

import (
	"time"

	"go.uber.org/zap"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	addrs    []string
	username string
	password string

	embedder  Embedder
	openAIKey string
	openAIURL string
	embModel  string
	chatModel string

	vectorDimensions int
	hnswM            int
	hnswEFConstruct  int

	historyWindow int
	maxToolRounds int
	retention     time.Duration

	logger *zap.Logger
}

// WithRedis configures the client to connect to a Redis instance.
func WithRedis(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithEmbedder sets a custom text embedding provider. Overrides the
// embedding half of WithOpenAI.
func WithEmbedder(e Embedder) Option {
	return optionFunc(func(c *clientConfig) {
		c.embedder = e
	})
}

// WithOpenAI configures the OpenAI-compatible providers used for
// embeddings and chat completions. baseURL may be empty for the
// public API.
func WithOpenAI(apiKey, baseURL, embeddingModel, chatModel string) Option {
	return optionFunc(func(c *clientConfig) {
		c.openAIKey = apiKey
		c.openAIURL = baseURL
		c.embModel = embeddingModel
		c.chatModel = chatModel
	})
}

// WithVectorDimensions sets the listing vector dimension.
// Defaults to 1536.
func WithVectorDimensions(dim int) Option {
	return optionFunc(func(c *clientConfig) {
		c.vectorDimensions = dim
	})
}

// WithHNSW configures HNSW index parameters (M and EF construction).
// Defaults: M=32, EFConstruct=400.
func WithHNSW(m, efConstruct int) Option {
	return optionFunc(func(c *clientConfig) {
		c.hnswM = m
		c.hnswEFConstruct = efConstruct
	})
}

// WithConversation tunes the agent loop: how many history turns are
// loaded per round, the tool round cap, and how long an idle session
// is retained. Zero values keep the defaults (20 turns, 5 rounds,
// no expiry).
func WithConversation(historyWindow, maxToolRounds int, retention time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.historyWindow = historyWindow
		c.maxToolRounds = maxToolRounds
		c.retention = retention
	})
}

// WithLogger sets the zap logger. Defaults to zap.NewNop().
func WithLogger(l *zap.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}
