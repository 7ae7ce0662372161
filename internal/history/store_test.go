package history

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendAndRecent(t *testing.T) {
	store, err := Open(":memory:")
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	require.NoError(t, store.Append(ctx, BatchRecord{
		ID: "b1", Trigger: "watch", Components: 2, Outcome: "success",
		Duration: 120 * time.Millisecond,
	}))
	require.NoError(t, store.Append(ctx, BatchRecord{
		ID: "b2", Trigger: "full", Components: 10, Outcome: "failed",
		Error: "build component button: boom", Duration: time.Second,
	}))

	records, err := store.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "b2", records[0].ID, "newest first")
	assert.Equal(t, "failed", records[0].Outcome)
	assert.Contains(t, records[0].Error, "boom")
	assert.Equal(t, "b1", records[1].ID)
	assert.Equal(t, 120*time.Millisecond, records[1].Duration)
	assert.False(t, records[1].RecordedAt.IsZero())
}

func TestRecentLimit(t *testing.T) {
	store, err := Open(":memory:")
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	for i := 0; i < 5; i++ {
		require.NoError(t, store.Append(ctx, BatchRecord{ID: "b", Trigger: "watch", Outcome: "success"}))
	}

	records, err := store.Recent(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, records, 3)
}
