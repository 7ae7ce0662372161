package component

import (
	"context"
	"fmt"
	"html"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// EmitTargets holds the four destination roots a component writes into.
type EmitTargets struct {
	OverviewAssets string // rendered overview HTML
	APIDocAssets   string // raw API source listings
	SiteContent    string // per-locale doc item metadata
	ExampleAssets  string // highlight-ready example markup
}

// Emit writes the component's build artifacts under the four destination
// roots. Emit requires a prior successful Build; it does not rebuild.
func (c *Component) Emit(ctx context.Context, targets EmitTargets) error {
	c.mu.RLock()
	built := c.built
	overviews := c.overviews
	items := c.docItems
	apiFiles := append([]string(nil), c.apiFiles...)
	examples := append([]string(nil), c.examples...)
	c.mu.RUnlock()

	if !built {
		return fmt.Errorf("%w: %s", ErrNotBuilt, c.name)
	}

	for locale, rendered := range overviews {
		if err := ctx.Err(); err != nil {
			return err
		}
		dst := filepath.Join(targets.OverviewAssets, c.name, "index."+locale+".html")
		if err := writeFile(dst, rendered); err != nil {
			return fmt.Errorf("%w: %w", ErrEmitFailed, err)
		}
	}

	for locale, item := range items {
		data, err := yaml.Marshal(item)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrEmitFailed, err)
		}
		dst := filepath.Join(targets.SiteContent, c.name, "meta."+locale+".yaml")
		if err := writeFile(dst, data); err != nil {
			return fmt.Errorf("%w: %w", ErrEmitFailed, err)
		}
	}

	for _, src := range apiFiles {
		if err := ctx.Err(); err != nil {
			return err
		}
		data, err := os.ReadFile(src)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrEmitFailed, err)
		}
		dst := filepath.Join(targets.APIDocAssets, c.name, filepath.Base(src))
		if err := writeFile(dst, data); err != nil {
			return fmt.Errorf("%w: %w", ErrEmitFailed, err)
		}
	}

	for _, src := range examples {
		if err := ctx.Err(); err != nil {
			return err
		}
		data, err := os.ReadFile(src)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrEmitFailed, err)
		}
		dst := filepath.Join(targets.ExampleAssets, c.name, filepath.Base(src)+".html")
		if err := writeFile(dst, highlightMarkup(src, data)); err != nil {
			return fmt.Errorf("%w: %w", ErrEmitFailed, err)
		}
	}

	return nil
}

// highlightMarkup wraps an example source file in highlight-ready markup;
// the site's highlighter picks it up via the language class.
func highlightMarkup(path string, data []byte) []byte {
	lang := strings.TrimPrefix(filepath.Ext(path), ".")
	escaped := html.EscapeString(string(data))
	return []byte("<pre><code class=\"language-" + lang + "\">" + escaped + "</code></pre>\n")
}

// listSourceFiles returns the absolute paths of regular files directly
// inside dir, sorted by name. A missing dir yields an empty list.
func listSourceFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(files)
	return files, nil
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return err
	}
	// #nosec G306 -- generated site artifacts are public content
	return os.WriteFile(path, data, 0o644)
}
