package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/compdocs/internal/config"
)

var testLocales = []string{"en-US"}

func mkdirs(t *testing.T, root string, dirs ...string) {
	t.Helper()
	for _, dir := range dirs {
		require.NoError(t, os.MkdirAll(filepath.Join(root, dir), 0o750))
	}
}

func TestDiscoverRootComponents(t *testing.T) {
	root := t.TempDir()
	mkdirs(t, root, "button", "card", "node_modules")

	idx, err := Discover(config.Library{Name: "widgets", Root: root, Exclude: []string{"node_modules"}}, testLocales)
	require.NoError(t, err)

	assert.Equal(t, 2, idx.Len())
	_, ok := idx.Get(filepath.Join(root, "button"))
	assert.True(t, ok)
	_, ok = idx.Get(filepath.Join(root, "node_modules"))
	assert.False(t, ok)
}

func TestDiscoverIncludeChildrenNotIncludeItself(t *testing.T) {
	root := t.TempDir()
	mkdirs(t, root, "button", filepath.Join("common", "zoo"))

	idx, err := Discover(config.Library{
		Name:    "widgets",
		Root:    root,
		Include: []string{"common"},
	}, testLocales)
	require.NoError(t, err)

	_, ok := idx.Get(filepath.Join(root, "common", "zoo"))
	assert.True(t, ok, "include subpath children are components")
	_, ok = idx.Get(filepath.Join(root, "common"))
	assert.False(t, ok, "the include subpath itself is never a component")
	_, ok = idx.Get(filepath.Join(root, "button"))
	assert.True(t, ok, "root-level directories are components regardless of include")
	assert.Equal(t, 2, idx.Len())
}

func TestDiscoverMissingIncludeSkipped(t *testing.T) {
	root := t.TempDir()
	mkdirs(t, root, "button")

	idx, err := Discover(config.Library{
		Name:    "widgets",
		Root:    root,
		Include: []string{"does-not-exist"},
	}, testLocales)
	require.NoError(t, err)
	assert.Equal(t, 1, idx.Len())
}

func TestDiscoverTwiceKeepsIndexStable(t *testing.T) {
	root := t.TempDir()
	mkdirs(t, root, "button", "card", filepath.Join("common", "zoo"))
	lib := config.Library{Name: "widgets", Root: root, Include: []string{"common"}}

	idx, err := Discover(lib, testLocales)
	require.NoError(t, err)
	before := idx.Keys()

	_, err = DiscoverInto(idx, lib, testLocales)
	require.NoError(t, err)
	assert.Equal(t, before, idx.Keys(), "re-discovery overwrites, never duplicates")
}

func TestIndexPutOverwritesKeepsOrder(t *testing.T) {
	root := t.TempDir()
	mkdirs(t, root, "a", "b")

	idx, err := Discover(config.Library{Name: "widgets", Root: root}, testLocales)
	require.NoError(t, err)
	before := idx.Keys()

	// Re-register the first key; position and size must not change.
	first, ok := idx.Get(before[0])
	require.True(t, ok)
	idx.Put(first)
	assert.Equal(t, before, idx.Keys())
}

func TestDiscoverEmptyRoot(t *testing.T) {
	idx, err := Discover(config.Library{Name: "widgets", Root: filepath.Join(t.TempDir(), "missing")}, testLocales)
	require.NoError(t, err)
	assert.Equal(t, 0, idx.Len())
}
