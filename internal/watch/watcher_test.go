package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/compdocs/internal/builder"
	"git.home.luguber.info/inful/compdocs/internal/component"
	"git.home.luguber.info/inful/compdocs/internal/config"
	"git.home.luguber.info/inful/compdocs/internal/registry"
)

const locale = "en-US"

func addComponent(t *testing.T, idx *registry.Index, root, name, doc string) *component.Component {
	t.Helper()
	dir := filepath.Join(root, name)
	docDir := filepath.Join(dir, component.DocDirName)
	require.NoError(t, os.MkdirAll(docDir, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(docDir, "index."+locale+".md"), []byte(doc), 0o644))
	c := component.New(dir, []string{locale})
	idx.Put(c)
	return c
}

func newTestSetup(t *testing.T, root string, names ...string) (*builder.Builder, *registry.Index) {
	t.Helper()
	idx := registry.NewIndex()
	for _, name := range names {
		addComponent(t, idx, root, name, "# "+name+"\n")
	}
	b := builder.New(config.Library{Name: "widgets"}, idx, component.EmitTargets{})
	return b, idx
}

func TestHandleBatchScopedRebuild(t *testing.T) {
	root := t.TempDir()
	b, _ := newTestSetup(t, root, "button", "card")
	w := NewWatcher(b)

	var built []string
	b.OnHook(builder.HookUnitStart, func(evt builder.HookEvent) {
		built = append(built, evt.Component.Name())
	})

	batch := Batch{ID: "batch-1", Events: []Change{
		{Path: filepath.Join(root, "button", "examples", "demo.ts"), Op: OpWrite},
	}}
	require.NoError(t, w.HandleBatch(context.Background(), batch))

	assert.Equal(t, []string{"button"}, built,
		"only the changed component rebuilds, exactly once")
}

func TestHandleBatchDeduplicatesFirstSeenOrder(t *testing.T) {
	root := t.TempDir()
	b, _ := newTestSetup(t, root, "button", "card", "badge")
	w := NewWatcher(b)

	batch := Batch{ID: "batch-2", Events: []Change{
		{Path: filepath.Join(root, "card", "doc", "index.en-US.md"), Op: OpWrite},
		{Path: filepath.Join(root, "button", "api", "button.ts"), Op: OpWrite},
		{Path: filepath.Join(root, "card", "examples", "basic.ts"), Op: OpCreate},
	}}

	comps := w.ResolveBatch(batch)
	require.Len(t, comps, 2)
	assert.Equal(t, "card", comps[0].Name())
	assert.Equal(t, "button", comps[1].Name())
}

func TestHandleBatchUnresolvedPathsNoBuild(t *testing.T) {
	root := t.TempDir()
	b, _ := newTestSetup(t, root, "button")
	w := NewWatcher(b)

	var hookCalls int
	b.OnHook(builder.HookBatchStart, func(builder.HookEvent) { hookCalls++ })
	b.OnHook(builder.HookUnitStart, func(builder.HookEvent) { hookCalls++ })

	batch := Batch{ID: "batch-3", Events: []Change{
		{Path: filepath.Join(root, "unrelated-temp-file"), Op: OpCreate},
	}}
	require.NoError(t, w.HandleBatch(context.Background(), batch))

	assert.Zero(t, hookCalls, "an unresolvable batch triggers zero rebuilds and zero hook firings")
}

func TestRunSurvivesFailedBatch(t *testing.T) {
	root := t.TempDir()
	idx := registry.NewIndex()
	addComponent(t, idx, root, "broken", "---\ntitle: [unterminated\n")
	good := addComponent(t, idx, root, "button", "---\ntitle: Button\n---\n# Button\n")
	b := builder.New(config.Library{Name: "widgets"}, idx, component.EmitTargets{})
	w := NewWatcher(b)

	batches := make(chan Batch, 2)
	batches <- Batch{ID: "fails", Events: []Change{
		{Path: filepath.Join(root, "broken", "doc", "index.en-US.md"), Op: OpWrite},
	}}
	batches <- Batch{ID: "succeeds", Events: []Change{
		{Path: filepath.Join(root, "button", "doc", "index.en-US.md"), Op: OpWrite},
	}}
	close(batches)

	done := make(chan struct{})
	go func() {
		defer close(done)
		w.Run(context.Background(), batches)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not drain batches")
	}

	item := good.DocItem(locale)
	require.NotNil(t, item, "the batch after a failure was still processed")
	assert.Equal(t, "Button", item.Title)
}

func TestWatchDirsThreePerComponent(t *testing.T) {
	root := t.TempDir()
	b, idx := newTestSetup(t, root, "button", "card")
	w := NewWatcher(b)

	assert.Len(t, w.Dirs(), 3*idx.Len())
}
