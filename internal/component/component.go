// Package component implements the documentable unit of a library: one
// directory holding doc, api and example sources. A component is built in
// place by the orchestrator and queried for per-locale doc items by the
// navigation merger.
package component

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/yuin/goldmark"
	"golang.org/x/net/html"

	"git.home.luguber.info/inful/compdocs/internal/logfields"
)

// Subdirectory names that make up a component by convention.
const (
	DocDirName      = "doc"
	APIDirName      = "api"
	ExamplesDirName = "examples"
)

// Component represents one documentable unit. Identity is the absolute
// root directory; the doc/api/examples paths are derived, not owned.
type Component struct {
	name    string
	rootDir string
	locales []string

	mu        sync.RWMutex
	built     bool
	docItems  map[string]*DocItem
	overviews map[string][]byte // locale -> rendered overview HTML
	apiFiles  []string
	examples  []string
}

// New creates a component rooted at rootDir (must be absolute). The locale
// list controls which doc files a build looks for.
func New(rootDir string, locales []string) *Component {
	return &Component{
		name:      filepath.Base(rootDir),
		rootDir:   rootDir,
		locales:   append([]string(nil), locales...),
		docItems:  make(map[string]*DocItem),
		overviews: make(map[string][]byte),
	}
}

func (c *Component) Name() string    { return c.name }
func (c *Component) Dir() string     { return c.rootDir }
func (c *Component) DocDir() string  { return filepath.Join(c.rootDir, DocDirName) }
func (c *Component) APIDir() string  { return filepath.Join(c.rootDir, APIDirName) }
func (c *Component) ExamplesDir() string {
	return filepath.Join(c.rootDir, ExamplesDirName)
}

// WatchDirs returns the three source directories watched for changes.
func (c *Component) WatchDirs() []string {
	return []string{c.DocDir(), c.APIDir(), c.ExamplesDir()}
}

// Build parses the component's documentation sources. It is idempotent: a
// rebuild replaces the previous build state wholesale. Parse errors abort
// the build and propagate to the caller.
func (c *Component) Build(ctx context.Context) error {
	items := make(map[string]*DocItem, len(c.locales))
	overviews := make(map[string][]byte, len(c.locales))

	for _, locale := range c.locales {
		if err := ctx.Err(); err != nil {
			return err
		}

		docPath := filepath.Join(c.DocDir(), "index."+locale+".md")
		content, err := os.ReadFile(docPath)
		if err != nil {
			if os.IsNotExist(err) {
				slog.Debug("No doc file for locale",
					logfields.Component(c.name), logfields.Locale(locale))
				continue
			}
			return fmt.Errorf("%w: %s: %w", ErrDocReadFailed, docPath, err)
		}

		meta, body, err := splitFrontmatter(content)
		if err != nil {
			return fmt.Errorf("%w: %s: %w", ErrDocParseFailed, docPath, err)
		}

		var buf bytes.Buffer
		if err := goldmark.Convert(body, &buf); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrDocParseFailed, docPath, err)
		}
		rendered := buf.Bytes()

		title := meta.Title
		if title == "" {
			title = firstHeading(rendered)
		}
		if title == "" {
			title = c.name
		}

		path := meta.Path
		if path == "" {
			path = c.name
		}

		items[locale] = &DocItem{
			ID:         c.name,
			Title:      title,
			Subtitle:   meta.Subtitle,
			CategoryID: meta.Category,
			Order:      meta.Order,
			Hidden:     meta.Hidden,
			Path:       path,
		}
		overviews[locale] = rendered
	}

	apiFiles, err := listSourceFiles(c.APIDir())
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrSourceScanError, c.APIDir(), err)
	}
	examples, err := listSourceFiles(c.ExamplesDir())
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrSourceScanError, c.ExamplesDir(), err)
	}

	c.mu.Lock()
	c.built = true
	c.docItems = items
	c.overviews = overviews
	c.apiFiles = apiFiles
	c.examples = examples
	c.mu.Unlock()

	slog.Debug("Component built",
		logfields.Component(c.name),
		slog.Int("locales", len(items)),
		slog.Int("api_files", len(apiFiles)),
		slog.Int("examples", len(examples)))
	return nil
}

// DocItem returns the locale's doc summary, or nil when the component has
// no documentation for that locale. Callers receive a copy.
func (c *Component) DocItem(locale string) *DocItem {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.docItems[locale].Clone()
}

// firstHeading extracts the text of the first h1 element from rendered
// HTML, used as a title fallback when frontmatter declares none.
func firstHeading(rendered []byte) string {
	root, err := html.Parse(bytes.NewReader(rendered))
	if err != nil {
		return ""
	}

	var found string
	var walk func(n *html.Node) bool
	walk = func(n *html.Node) bool {
		if n.Type == html.ElementNode && n.Data == "h1" {
			found = strings.TrimSpace(textContent(n))
			return true
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			if walk(child) {
				return true
			}
		}
		return false
	}
	walk(root)
	return found
}

func textContent(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var sb strings.Builder
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		sb.WriteString(textContent(child))
	}
	return sb.String()
}
