package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "compdocs.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
site:
  locales: ["en-US", "zh-CN"]
  output:
    site_content: ./site/content
libraries:
  - name: widgets
    root: ./lib
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, RenderModeFull, cfg.Site.RenderMode)
	assert.Equal(t, "en-US", cfg.Site.DefaultLocale)
	assert.Equal(t, 300*time.Millisecond, cfg.Site.Watch.QuietWindow)
	assert.Equal(t, 2*time.Second, cfg.Site.Watch.MaxDelay)
	assert.True(t, filepath.IsAbs(cfg.Libraries[0].Root), "library root should be absolute")
}

func TestLoadRejectsMissingLocales(t *testing.T) {
	path := writeConfig(t, `
site:
  output:
    site_content: ./site/content
libraries:
  - name: widgets
    root: ./lib
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidConfig))
}

func TestLoadRejectsUnknownRenderMode(t *testing.T) {
	path := writeConfig(t, `
site:
  locales: ["en-US"]
  render_mode: compact
libraries:
  - name: widgets
    root: ./lib
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidConfig))
}

func TestLoadRejectsDuplicateLibraries(t *testing.T) {
	path := writeConfig(t, `
site:
  locales: ["en-US"]
libraries:
  - name: widgets
    root: ./a
  - name: widgets
    root: ./b
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidConfig))
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConfigNotFound))
}

func TestLoadParsesCategories(t *testing.T) {
	path := writeConfig(t, `
site:
  locales: ["en-US", "zh-CN"]
libraries:
  - name: widgets
    root: ./lib
    categories:
      - id: general
        order: 1
        title:
          en-US: General
          zh-CN: 通用
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Len(t, cfg.Libraries[0].Categories, 1)
	cat := cfg.Libraries[0].Categories[0]
	assert.Equal(t, "general", cat.ID)
	assert.Equal(t, "通用", cat.Title["zh-CN"])
}
