package health

import "context"

// DBPinger checks that the listing and conversation store is reachable.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// EmbeddingChecker checks whether the embedding provider answers.
// A failing check only degrades search, it never takes the service down.
type EmbeddingChecker interface {
	HealthCheck(ctx context.Context) error
}
