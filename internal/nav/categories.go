package nav

import (
	"git.home.luguber.info/inful/compdocs/internal/config"
)

// LocaleIndex precomputes, per configured locale, the resolved category
// tree: raw categories cloned with locale titles and subtitles and an
// empty items list ready to receive doc items. Every locale is resolved
// from the same raw list, so the trees only differ in wording.
//
// The index holds immutable templates; Resolved hands out fresh deep
// copies so repeated navigation merges never accumulate state.
type LocaleIndex struct {
	resolved map[string][]*Item
}

// NewLocaleIndex resolves the raw category list for every locale.
func NewLocaleIndex(categories []config.Category, locales []string) *LocaleIndex {
	idx := &LocaleIndex{resolved: make(map[string][]*Item, len(locales))}
	for _, locale := range locales {
		items := make([]*Item, 0, len(categories))
		for _, cat := range categories {
			title := cat.Title[locale]
			if title == "" {
				title = cat.ID
			}
			items = append(items, &Item{
				ID:       cat.ID,
				Title:    title,
				Subtitle: cat.Subtitle[locale],
				Order:    cat.Order,
				Items:    []*Item{},
			})
		}
		idx.resolved[locale] = items
	}
	return idx
}

// Resolved returns a fresh deep copy of the locale's category tree. An
// unconfigured locale yields an empty list.
func (idx *LocaleIndex) Resolved(locale string) []*Item {
	template := idx.resolved[locale]
	out := make([]*Item, 0, len(template))
	for _, item := range template {
		out = append(out, item.Clone())
	}
	return out
}

// Locales returns the locales the index was built for.
func (idx *LocaleIndex) Locales() []string {
	out := make([]string, 0, len(idx.resolved))
	for locale := range idx.resolved {
		out = append(out, locale)
	}
	return out
}
