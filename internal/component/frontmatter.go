package component

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

var frontmatterDelimiter = []byte("---")

// docMeta is the yaml frontmatter accepted at the top of a locale doc file.
type docMeta struct {
	Title    string `yaml:"title"`
	Subtitle string `yaml:"subtitle"`
	Category string `yaml:"category"`
	Order    int    `yaml:"order"`
	Path     string `yaml:"path"`
	Hidden   bool   `yaml:"hidden"`
}

// splitFrontmatter separates an optional leading yaml frontmatter block from
// the markdown body. A file without a frontmatter block yields a zero meta
// and the full content as body.
func splitFrontmatter(content []byte) (docMeta, []byte, error) {
	var meta docMeta

	trimmed := bytes.TrimLeft(content, "\ufeff")
	if !bytes.HasPrefix(trimmed, frontmatterDelimiter) {
		return meta, content, nil
	}

	rest := trimmed[len(frontmatterDelimiter):]
	rest = bytes.TrimPrefix(rest, []byte("\r"))
	if len(rest) == 0 || rest[0] != '\n' {
		return meta, content, nil
	}
	rest = rest[1:]

	end := bytes.Index(rest, []byte("\n---"))
	if end < 0 {
		return meta, nil, fmt.Errorf("%w: unterminated frontmatter block", ErrInvalidDocMeta)
	}

	block := rest[:end]
	body := rest[end+len("\n---"):]
	if idx := bytes.IndexByte(body, '\n'); idx >= 0 {
		body = body[idx+1:]
	} else {
		body = nil
	}

	if err := yaml.Unmarshal(block, &meta); err != nil {
		return meta, nil, fmt.Errorf("%w: %w", ErrInvalidDocMeta, err)
	}
	return meta, body, nil
}
