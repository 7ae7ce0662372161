package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregatorCoalescesBurst(t *testing.T) {
	dir := t.TempDir()

	agg, err := NewAggregator([]string{dir}, AggregatorConfig{
		QuietWindow: 200 * time.Millisecond,
		MaxDelay:    2 * time.Second,
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go agg.Run(ctx)

	// A burst of writes inside the quiet window must land in one batch.
	for i, name := range []string{"a.md", "b.md", "c.md"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte{byte(i)}, 0o644))
		time.Sleep(20 * time.Millisecond)
	}

	select {
	case batch := <-agg.Batches():
		assert.NotEmpty(t, batch.ID)
		assert.GreaterOrEqual(t, len(batch.Events), 3)
		paths := make(map[string]struct{})
		for _, evt := range batch.Events {
			paths[filepath.Base(evt.Path)] = struct{}{}
		}
		assert.Contains(t, paths, "a.md")
		assert.Contains(t, paths, "c.md")
	case <-time.After(5 * time.Second):
		t.Fatal("no batch delivered")
	}
}

func TestAggregatorSkipsMissingDirs(t *testing.T) {
	dir := t.TempDir()
	missing := filepath.Join(dir, "not-there")

	agg, err := NewAggregator([]string{dir, missing}, AggregatorConfig{})
	require.NoError(t, err, "missing watch directories are skipped, not an error")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	agg.Run(ctx)
}

func TestAggregatorClosesChannelOnCancel(t *testing.T) {
	agg, err := NewAggregator([]string{t.TempDir()}, AggregatorConfig{})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	go agg.Run(ctx)
	cancel()

	select {
	case _, ok := <-agg.Batches():
		assert.False(t, ok, "batch channel closes when the aggregator stops")
	case <-time.After(5 * time.Second):
		t.Fatal("batch channel not closed")
	}
}
