package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/compdocs/internal/builder"
	"git.home.luguber.info/inful/compdocs/internal/component"
	"git.home.luguber.info/inful/compdocs/internal/config"
	"git.home.luguber.info/inful/compdocs/internal/daemon"
	"git.home.luguber.info/inful/compdocs/internal/logfields"
	"git.home.luguber.info/inful/compdocs/internal/nav"
	"git.home.luguber.info/inful/compdocs/internal/registry"
)

func emitTargets(out config.OutputConfig) component.EmitTargets {
	return component.EmitTargets{
		OverviewAssets: out.OverviewAssets,
		APIDocAssets:   out.APIDocAssets,
		SiteContent:    out.SiteContent,
		ExampleAssets:  out.ExampleAssets,
	}
}

// runBuild builds and emits every library, then merges per-locale
// navigation trees and writes them into the site content root.
func runBuild(ctx context.Context, cfg *config.Config) error {
	type libState struct {
		lib    config.Library
		merger *nav.Merger
	}

	var states []libState
	for _, lib := range cfg.Libraries {
		idx, err := registry.Discover(lib, cfg.Site.Locales)
		if err != nil {
			return fmt.Errorf("discover library %s: %w", lib.Name, err)
		}

		b := builder.New(lib, idx, emitTargets(cfg.Site.Output))
		if err := b.Build(ctx); err != nil {
			return fmt.Errorf("build library %s: %w", lib.Name, err)
		}
		if err := b.Emit(ctx); err != nil {
			return fmt.Errorf("emit library %s: %w", lib.Name, err)
		}

		locales := nav.NewLocaleIndex(lib.Categories, cfg.Site.Locales)
		states = append(states, libState{
			lib:    lib,
			merger: nav.NewMerger(lib, idx, locales, cfg.Site.RenderMode),
		})
	}

	for _, locale := range cfg.Site.Locales {
		tree := &nav.Tree{}
		total := 0
		for _, st := range states {
			total += len(st.merger.Merge(locale, tree))
		}

		data, err := yaml.Marshal(tree)
		if err != nil {
			return fmt.Errorf("marshal navigation for %s: %w", locale, err)
		}
		navPath := filepath.Join(cfg.Site.Output.SiteContent, "nav."+locale+".yaml")
		if err := os.MkdirAll(filepath.Dir(navPath), 0o750); err != nil {
			return err
		}
		// #nosec G306 -- navigation files are public site content
		if err := os.WriteFile(navPath, data, 0o644); err != nil {
			return fmt.Errorf("write navigation for %s: %w", locale, err)
		}
		slog.Info("Navigation generated",
			logfields.Locale(locale), logfields.Count(total), logfields.Path(navPath))
	}
	return nil
}

func runDiscover(cfg *config.Config, only string) error {
	for _, lib := range cfg.Libraries {
		if only != "" && lib.Name != only {
			continue
		}
		idx, err := registry.Discover(lib, cfg.Site.Locales)
		if err != nil {
			return fmt.Errorf("discover library %s: %w", lib.Name, err)
		}
		for _, c := range idx.Components() {
			fmt.Printf("%s\t%s\n", lib.Name, c.Dir())
		}
	}
	return nil
}

func runWatch(ctx context.Context, cfg *config.Config, only string) error {
	lib, err := selectLibrary(cfg, only)
	if err != nil {
		return err
	}

	idx, err := registry.Discover(lib, cfg.Site.Locales)
	if err != nil {
		return fmt.Errorf("discover library %s: %w", lib.Name, err)
	}

	b := builder.New(lib, idx, emitTargets(cfg.Site.Output))
	d, err := daemon.New(cfg.Site, b)
	if err != nil {
		return err
	}
	return d.Run(ctx)
}

func selectLibrary(cfg *config.Config, only string) (config.Library, error) {
	if only == "" {
		if len(cfg.Libraries) != 1 {
			return config.Library{}, fmt.Errorf("watch mode needs --library when %d libraries are configured", len(cfg.Libraries))
		}
		return cfg.Libraries[0], nil
	}
	for _, lib := range cfg.Libraries {
		if lib.Name == only {
			return lib, nil
		}
	}
	return config.Library{}, fmt.Errorf("library %s not found in configuration", only)
}
