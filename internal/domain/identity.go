package domain

import "context"

// Identity is the opaque caller identity. A zero Identity is anonymous.
type Identity struct {
	UserID string
}

// Anonymous reports whether no authenticated user is attached.
func (i Identity) Anonymous() bool { return i.UserID == "" }

type identityKey struct{}

// ContextWithIdentity stores the caller identity in the context.
func ContextWithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFromContext extracts the caller identity from the context.
// Returns an anonymous Identity if none is present.
func IdentityFromContext(ctx context.Context) Identity {
	if id, ok := ctx.Value(identityKey{}).(Identity); ok {
		return id
	}
	return Identity{}
}
