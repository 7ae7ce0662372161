package nav

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/compdocs/internal/config"
)

func TestLocaleIndexResolvesPerLocale(t *testing.T) {
	categories := []config.Category{
		{
			ID:       "general",
			Order:    1,
			Title:    map[string]string{"en-US": "General", "zh-CN": "通用"},
			Subtitle: map[string]string{"zh-CN": "通用组件"},
		},
		{ID: "layout", Order: 2, Title: map[string]string{"en-US": "Layout"}},
	}

	idx := NewLocaleIndex(categories, []string{"en-US", "zh-CN"})

	en := idx.Resolved("en-US")
	require.Len(t, en, 2)
	assert.Equal(t, "General", en[0].Title)
	assert.Empty(t, en[0].Subtitle)

	zh := idx.Resolved("zh-CN")
	assert.Equal(t, "通用", zh[0].Title)
	assert.Equal(t, "通用组件", zh[0].Subtitle)
	assert.Equal(t, "layout", zh[1].Title, "missing locale title falls back to the category id")
}

func TestLocaleIndexResolvedReturnsFreshCopies(t *testing.T) {
	categories := []config.Category{{ID: "general", Title: map[string]string{"en-US": "General"}}}
	idx := NewLocaleIndex(categories, []string{"en-US"})

	first := idx.Resolved("en-US")
	first[0].Items = append(first[0].Items, &Item{ID: "injected"})

	second := idx.Resolved("en-US")
	assert.Empty(t, second[0].Items, "mutating one copy must not leak into the next")
}

func TestLocaleIndexCategoriesStartEmpty(t *testing.T) {
	categories := []config.Category{{ID: "general", Title: map[string]string{"en-US": "General"}}}
	idx := NewLocaleIndex(categories, []string{"en-US"})

	resolved := idx.Resolved("en-US")
	require.Len(t, resolved, 1)
	assert.True(t, resolved[0].IsCategory())
	assert.Empty(t, resolved[0].Items)
}

func TestLocaleIndexUnknownLocale(t *testing.T) {
	idx := NewLocaleIndex(nil, []string{"en-US"})
	assert.Empty(t, idx.Resolved("fr-FR"))
}
