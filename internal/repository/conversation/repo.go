// Package conversation persists chat history as append-only turn lists.
package conversation

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/staylens/staylens/internal/domain"
	"github.com/staylens/staylens/internal/domain/chat"
)

const convPrefix = domain.KeyPrefix + "conv:"

// store is the consumer interface for conversation persistence (ISP).
type store interface {
	RPush(ctx context.Context, key string, values ...string) error
	LRange(ctx context.Context, key string, start, stop int64) ([]string, error)
	LLen(ctx context.Context, key string) (int64, error)
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	Del(ctx context.Context, key string) error
	Expire(ctx context.Context, key string, ttl time.Duration, nx bool) error
}

// Repo stores each conversation as a list of JSON turns plus a small
// metadata hash. Both keys expire together after the retention window.
type Repo struct {
	store     store
	retention time.Duration
}

// New creates a conversation repository. A zero retention disables
// expiry.
func New(s store, retention time.Duration) *Repo {
	return &Repo{store: s, retention: retention}
}

// AppendRound persists one completed chat round: the user turn and the
// assistant turn, in that order. Both turns go through a single list
// push so the pair stays adjacent even when two requests for the same
// session race.
func (r *Repo) AppendRound(ctx context.Context, sessionID, userID string, user, assistant chat.Turn) error {
	userJSON, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("marshal user turn: %w", err)
	}
	assistantJSON, err := json.Marshal(assistant)
	if err != nil {
		return fmt.Errorf("marshal assistant turn: %w", err)
	}

	key := turnsKey(sessionID)
	if err := r.store.RPush(ctx, key, string(userJSON), string(assistantJSON)); err != nil {
		return fmt.Errorf("append round: %w", err)
	}

	meta := map[string]string{
		"last_active": assistant.Timestamp.UTC().Format(time.RFC3339Nano),
	}
	if userID != "" {
		meta["user_id"] = userID
	}
	if err := r.store.HSet(ctx, metaKey(sessionID), meta); err != nil {
		return fmt.Errorf("update meta: %w", err)
	}

	// Activity refreshes retention on both keys.
	if r.retention > 0 {
		if err := r.store.Expire(ctx, key, r.retention, false); err != nil {
			return fmt.Errorf("refresh retention: %w", err)
		}
		if err := r.store.Expire(ctx, metaKey(sessionID), r.retention, false); err != nil {
			return fmt.Errorf("refresh meta retention: %w", err)
		}
	}
	return nil
}

// History returns up to window most recent turns in chronological
// order. A session with no persisted turns yields an empty history,
// not an error: a brand-new session is valid.
func (r *Repo) History(ctx context.Context, sessionID string, window int) ([]chat.Turn, error) {
	if window <= 0 {
		return nil, nil
	}

	raw, err := r.store.LRange(ctx, turnsKey(sessionID), int64(-window), -1)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}

	turns := make([]chat.Turn, 0, len(raw))
	for _, item := range raw {
		var t chat.Turn
		if err := json.Unmarshal([]byte(item), &t); err != nil {
			return nil, fmt.Errorf("decode turn: %w", err)
		}
		turns = append(turns, t)
	}
	return turns, nil
}

// Meta returns conversation metadata, or ErrConversationNotFound for a
// session with no persisted turns.
func (r *Repo) Meta(ctx context.Context, sessionID string) (*chat.Meta, error) {
	count, err := r.store.LLen(ctx, turnsKey(sessionID))
	if err != nil {
		return nil, fmt.Errorf("count turns: %w", err)
	}
	if count == 0 {
		return nil, fmt.Errorf("conversation %s: %w", sessionID, domain.ErrConversationNotFound)
	}

	fields, err := r.store.HGetAll(ctx, metaKey(sessionID))
	if err != nil {
		return nil, fmt.Errorf("load meta: %w", err)
	}

	meta := &chat.Meta{
		SessionID: sessionID,
		UserID:    fields["user_id"],
		TurnCount: int(count),
	}
	if raw := fields["last_active"]; raw != "" {
		if ts, err := time.Parse(time.RFC3339Nano, raw); err == nil {
			meta.LastActive = ts
		}
	}
	return meta, nil
}

// Owner returns the user the conversation belongs to, empty for an
// anonymous or unknown session.
func (r *Repo) Owner(ctx context.Context, sessionID string) (string, error) {
	fields, err := r.store.HGetAll(ctx, metaKey(sessionID))
	if err != nil {
		return "", fmt.Errorf("load meta: %w", err)
	}
	return fields["user_id"], nil
}

// Delete removes a conversation and its metadata. Deleting a session
// that was never persisted returns ErrConversationNotFound.
func (r *Repo) Delete(ctx context.Context, sessionID string) error {
	exists, err := r.Exists(ctx, sessionID)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("conversation %s: %w", sessionID, domain.ErrConversationNotFound)
	}
	if err := r.store.Del(ctx, turnsKey(sessionID)); err != nil {
		return fmt.Errorf("delete turns: %w", err)
	}
	if err := r.store.Del(ctx, metaKey(sessionID)); err != nil {
		return fmt.Errorf("delete meta: %w", err)
	}
	return nil
}

// Exists reports whether a session has any persisted turns.
func (r *Repo) Exists(ctx context.Context, sessionID string) (bool, error) {
	count, err := r.store.LLen(ctx, turnsKey(sessionID))
	if err != nil {
		return false, fmt.Errorf("count turns: %w", err)
	}
	return count > 0, nil
}

func turnsKey(sessionID string) string { return convPrefix + sessionID }
func metaKey(sessionID string) string  { return convPrefix + sessionID + ":meta" }
