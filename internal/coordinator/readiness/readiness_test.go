package readiness

import (
	"context"
	"testing"

	"lifeweeks/internal/coordinator/memory"
	"lifeweeks/internal/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkerAnnounceWithdraw(t *testing.T) {
	coord := memory.NewMemoryCoordinator()
	marker := NewMarker(coord, logger.NewNop())
	ctx := context.Background()

	assert.False(t, marker.Ready(ctx))

	require.NoError(t, marker.Announce(ctx))
	assert.True(t, marker.Ready(ctx))

	// Announcing twice is harmless.
	require.NoError(t, marker.Announce(ctx))
	assert.True(t, marker.Ready(ctx))

	require.NoError(t, marker.Withdraw(ctx))
	assert.False(t, marker.Ready(ctx))

	// Withdrawing an absent marker is harmless too.
	require.NoError(t, marker.Withdraw(ctx))
}

func TestMarkerDisappearsWithSession(t *testing.T) {
	coord := memory.NewMemoryCoordinator()
	marker := NewMarker(coord, logger.NewNop())
	ctx := context.Background()

	require.NoError(t, marker.Announce(ctx))
	require.True(t, marker.Ready(ctx))

	// The readiness node is ephemeral: ending the session removes it even
	// though Withdraw never ran.
	require.NoError(t, coord.Close())
	assert.False(t, marker.Ready(ctx))
}
