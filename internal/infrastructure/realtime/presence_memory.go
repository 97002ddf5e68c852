package realtime

import (
	"context"
	"sort"
	"sync"

	"github.com/mapmark/pinpoint/internal/domain/contract"
)

// MemoryPresenceRegistry is the process-local presence map. It is lost on
// restart and is not shared between instances.
type MemoryPresenceRegistry struct {
	mu    sync.RWMutex
	users map[string]string
}

var _ contract.IPresenceRegistry = (*MemoryPresenceRegistry)(nil)

// NewMemoryPresenceRegistry creates an empty registry.
func NewMemoryPresenceRegistry() *MemoryPresenceRegistry {
	return &MemoryPresenceRegistry{users: make(map[string]string)}
}

func (r *MemoryPresenceRegistry) Register(_ context.Context, userID, connID string) error {
	r.mu.Lock()
	r.users[userID] = connID
	r.mu.Unlock()
	return nil
}

func (r *MemoryPresenceRegistry) Unregister(_ context.Context, userID, connID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if current, ok := r.users[userID]; !ok || current != connID {
		return false, nil
	}
	delete(r.users, userID)
	return true, nil
}

func (r *MemoryPresenceRegistry) Lookup(_ context.Context, userID string) (string, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	connID, ok := r.users[userID]
	return connID, ok, nil
}

func (r *MemoryPresenceRegistry) Online(_ context.Context) ([]string, error) {
	r.mu.RLock()
	out := make([]string, 0, len(r.users))
	for userID := range r.users {
		out = append(out, userID)
	}
	r.mu.RUnlock()
	sort.Strings(out)
	return out, nil
}
