package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Site      SiteConfig `yaml:"site"`
	Libraries []Library  `yaml:"libraries"`
}

// Library represents one component library to document
type Library struct {
	Name       string     `yaml:"name"`
	Root       string     `yaml:"root"`
	Include    []string   `yaml:"include,omitempty"` // Subpaths whose children are also components
	Exclude    []string   `yaml:"exclude,omitempty"` // Directory name patterns to skip
	Categories []Category `yaml:"categories,omitempty"`
}

// Category represents a raw, locale-agnostic navigation category
type Category struct {
	ID       string            `yaml:"id"`
	Order    int               `yaml:"order,omitempty"`
	Title    map[string]string `yaml:"title"`              // locale -> localized title
	Subtitle map[string]string `yaml:"subtitle,omitempty"` // locale -> localized subtitle
}

// RenderMode controls how the site nests generated documents
type RenderMode string

const (
	RenderModeFull RenderMode = "full"
	RenderModeLite RenderMode = "lite" // Nest doc paths under the channel path
)

// SiteConfig represents site-wide settings
type SiteConfig struct {
	Locales       []string     `yaml:"locales"`
	DefaultLocale string       `yaml:"default_locale,omitempty"`
	RenderMode    RenderMode   `yaml:"render_mode,omitempty"`
	Output        OutputConfig `yaml:"output"`
	Watch         WatchConfig  `yaml:"watch,omitempty"`
	Daemon        DaemonConfig `yaml:"daemon,omitempty"`
}

// OutputConfig holds the four emit destinations
type OutputConfig struct {
	OverviewAssets string `yaml:"overview_assets"`
	APIDocAssets   string `yaml:"api_doc_assets"`
	SiteContent    string `yaml:"site_content"`
	ExampleAssets  string `yaml:"example_assets"`
}

// WatchConfig tunes change aggregation
type WatchConfig struct {
	QuietWindow time.Duration `yaml:"quiet_window,omitempty"`
	MaxDelay    time.Duration `yaml:"max_delay,omitempty"`
}

// DaemonConfig tunes watch-mode runtime behavior
type DaemonConfig struct {
	Addr            string        `yaml:"addr,omitempty"`
	RebuildInterval time.Duration `yaml:"rebuild_interval,omitempty"`
	HistoryPath     string        `yaml:"history_path,omitempty"`
}

// Load loads configuration from the specified file
func Load(configPath string) (*Config, error) {
	// Load .env file if it exists; missing is fine.
	_ = godotenv.Load()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfigReadFailed, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfigParseFailed, err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Site.RenderMode == "" {
		c.Site.RenderMode = RenderModeFull
	}
	if c.Site.DefaultLocale == "" && len(c.Site.Locales) > 0 {
		c.Site.DefaultLocale = c.Site.Locales[0]
	}
	if c.Site.Watch.QuietWindow <= 0 {
		c.Site.Watch.QuietWindow = 300 * time.Millisecond
	}
	if c.Site.Watch.MaxDelay <= 0 {
		c.Site.Watch.MaxDelay = 2 * time.Second
	}
	if c.Site.Daemon.Addr == "" {
		c.Site.Daemon.Addr = ":8780"
	}
	for i := range c.Libraries {
		if abs, err := filepath.Abs(c.Libraries[i].Root); err == nil {
			c.Libraries[i].Root = abs
		}
	}
}

// Validate checks the configuration for structural problems.
func (c *Config) Validate() error {
	if len(c.Site.Locales) == 0 {
		return fmt.Errorf("%w: at least one locale is required", ErrInvalidConfig)
	}
	if c.Site.RenderMode != RenderModeFull && c.Site.RenderMode != RenderModeLite {
		return fmt.Errorf("%w: unknown render mode %q", ErrInvalidConfig, c.Site.RenderMode)
	}
	seen := make(map[string]struct{}, len(c.Libraries))
	for _, lib := range c.Libraries {
		if lib.Name == "" {
			return fmt.Errorf("%w: library name cannot be empty", ErrInvalidConfig)
		}
		if lib.Root == "" {
			return fmt.Errorf("%w: library %s has no root", ErrInvalidConfig, lib.Name)
		}
		if _, dup := seen[lib.Name]; dup {
			return fmt.Errorf("%w: duplicate library name %s", ErrInvalidConfig, lib.Name)
		}
		seen[lib.Name] = struct{}{}
	}
	return nil
}
