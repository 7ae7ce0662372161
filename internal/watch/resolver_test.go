package watch

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/compdocs/internal/component"
)

func newComponents(roots ...string) []*component.Component {
	comps := make([]*component.Component, 0, len(roots))
	for _, root := range roots {
		comps = append(comps, component.New(root, []string{"en-US"}))
	}
	return comps
}

func TestResolveAncestor(t *testing.T) {
	comps := newComponents("/lib/button", "/lib/card")
	r := NewResolver(comps)

	got := r.Resolve(filepath.FromSlash("/lib/button/examples/demo.ts"))
	require.NotNil(t, got)
	assert.Equal(t, "button", got.Name())
}

func TestResolveNoMatch(t *testing.T) {
	r := NewResolver(newComponents("/lib/button"))

	assert.Nil(t, r.Resolve("/lib/unrelated-temp-file"))
	assert.Nil(t, r.Resolve("/other/button/doc/index.md"))
}

func TestResolveRequiresStrictAncestor(t *testing.T) {
	r := NewResolver(newComponents("/lib/button"))

	// Sibling directory sharing the root as a string prefix must not match.
	assert.Nil(t, r.Resolve("/lib/buttonish/doc/index.md"))
}

func TestResolveNestedRootsLongestWins(t *testing.T) {
	r := NewResolver(newComponents("/lib/button", "/lib/button/inner"))

	got := r.Resolve("/lib/button/inner/doc/index.md")
	require.NotNil(t, got)
	assert.Equal(t, "/lib/button/inner", got.Dir())

	got = r.Resolve("/lib/button/doc/index.md")
	require.NotNil(t, got)
	assert.Equal(t, "/lib/button", got.Dir())
}
