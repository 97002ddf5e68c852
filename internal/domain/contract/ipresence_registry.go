package contract

import "context"

// IPresenceRegistry maps authenticated users to their live realtime connection.
type IPresenceRegistry interface {
	Register(ctx context.Context, userID, connID string) error
	// Unregister removes the mapping only if it still points at connID, so a
	// newer connection of the same user is left alone.
	Unregister(ctx context.Context, userID, connID string) (bool, error)
	Lookup(ctx context.Context, userID string) (string, bool, error)
	Online(ctx context.Context) ([]string, error)
}
