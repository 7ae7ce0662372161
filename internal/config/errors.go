package config

import "errors"

var (
	ErrConfigNotFound    = errors.New("configuration file not found")
	ErrConfigReadFailed  = errors.New("failed to read configuration file")
	ErrConfigParseFailed = errors.New("failed to parse configuration file")
	ErrInvalidConfig     = errors.New("invalid configuration")
)
