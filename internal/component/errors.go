package component

import "errors"

var (
	ErrDocParseFailed  = errors.New("failed to parse component doc")
	ErrDocReadFailed   = errors.New("failed to read component doc")
	ErrEmitFailed      = errors.New("failed to emit component artifacts")
	ErrNotBuilt        = errors.New("component has not been built")
	ErrInvalidDocMeta  = errors.New("invalid doc frontmatter")
	ErrSourceScanError = errors.New("failed to scan component sources")
)
