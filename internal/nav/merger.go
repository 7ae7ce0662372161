package nav

import (
	"log/slog"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"git.home.luguber.info/inful/compdocs/internal/component"
	"git.home.luguber.info/inful/compdocs/internal/config"
	"git.home.luguber.info/inful/compdocs/internal/logfields"
	"git.home.luguber.info/inful/compdocs/internal/registry"
)

// Merger merges a library's per-locale doc items into the site navigation
// tree. It runs after builds and is independent of the build orchestrator.
type Merger struct {
	lib        config.Library
	index      *registry.Index
	locales    *LocaleIndex
	renderMode config.RenderMode
}

// NewMerger creates a merger over a discovered (and built) index.
func NewMerger(lib config.Library, index *registry.Index, locales *LocaleIndex, mode config.RenderMode) *Merger {
	return &Merger{lib: lib, index: index, locales: locales, renderMode: mode}
}

// Merge merges every component's locale doc item into the locale's
// category tree inside tree, synthesizing a channel for the library when
// the site navigation has none. The matched (or synthesized) channel's
// items list is replaced by a fresh resolved category copy first, so
// navigation state never persists across calls.
//
// Returns the flat list of doc items attached during this call, for
// callers needing a flat index (e.g. search-index builders).
func (m *Merger) Merge(locale string, tree *Tree) []*component.DocItem {
	channel := tree.FindChannel(m.lib.Name)
	if channel == nil {
		channel = &Channel{
			ID:    m.lib.Name,
			Lib:   m.lib.Name,
			Path:  m.lib.Name,
			Title: channelLabel(m.lib.Name, locale),
		}
		tree.Channels = append(tree.Channels, channel)
		slog.Debug("Synthesized navigation channel",
			logfields.Library(m.lib.Name), logfields.Locale(locale))
	}
	channel.Items = m.locales.Resolved(locale)

	byCategory := make(map[string]*Item, len(channel.Items))
	for _, item := range channel.Items {
		if item.IsCategory() {
			byCategory[item.ID] = item
		}
	}

	var flat []*component.DocItem
	for _, c := range m.index.Components() {
		doc := c.DocItem(locale)
		if doc == nil || doc.Hidden {
			continue
		}

		if m.renderMode == config.RenderModeLite {
			doc.Path = channel.Path + "/" + doc.Path
		}

		node := &Item{
			ID:       doc.ID,
			Title:    doc.Title,
			Subtitle: doc.Subtitle,
			Path:     doc.Path,
			Order:    doc.Order,
		}
		if cat, ok := byCategory[doc.CategoryID]; ok {
			cat.Items = append(cat.Items, node)
		} else {
			channel.Items = append(channel.Items, node)
		}
		flat = append(flat, doc)
	}

	// Ties keep insertion order so navigation is stable across rebuilds.
	for _, item := range channel.Items {
		if item.IsCategory() {
			children := item.Items
			sort.SliceStable(children, func(i, j int) bool {
				return children[i].Order < children[j].Order
			})
		}
	}

	slog.Debug("Navigation merged",
		logfields.Library(m.lib.Name),
		logfields.Locale(locale),
		logfields.Count(len(flat)))
	return flat
}

// channelLabel derives a human-readable channel title from the library
// name, title-cased for the locale.
func channelLabel(name, locale string) string {
	words := strings.NewReplacer("-", " ", "_", " ").Replace(name)
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	return cases.Title(tag).String(words)
}
