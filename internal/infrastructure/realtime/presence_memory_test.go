package realtime

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryPresenceRegistry(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryPresenceRegistry()

	require.NoError(t, r.Register(ctx, "u2", "conn-1"))
	require.NoError(t, r.Register(ctx, "u1", "conn-2"))
	require.NoError(t, r.Register(ctx, "u1", "conn-3"))

	connID, ok, err := r.Lookup(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "conn-3", connID)

	online, err := r.Online(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"u1", "u2"}, online)

	removed, err := r.Unregister(ctx, "u1", "conn-2")
	require.NoError(t, err)
	assert.False(t, removed, "stale connection must not evict the newer one")

	removed, err = r.Unregister(ctx, "u1", "conn-3")
	require.NoError(t, err)
	assert.True(t, removed)

	_, ok, _ = r.Lookup(ctx, "u1")
	assert.False(t, ok)
}

func TestDecodePayloads(t *testing.T) {
	assert.Equal(t, "abc", decodeToken([]byte(`"Bearer abc"`)))
	assert.Equal(t, "abc", decodeToken([]byte(`{"token":"abc"}`)))
	assert.Empty(t, decodeToken([]byte(`42`)))

	assert.Equal(t, "c1", decodeConversationID([]byte(`"c1"`)))
	assert.Equal(t, "c1", decodeConversationID([]byte(`{"conversationId":"c1"}`)))
}
