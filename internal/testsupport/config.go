// Package testsupport provides shared scaffolding for package tests: temp
// workspace configs and store lifecycles.
package testsupport

import (
	"path/filepath"
	"testing"

	"pitcount/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.WorkspaceDir = filepath.Join(base, "workspace")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Paths.ExportDir = filepath.Join(base, "exports")

	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithCountDate sets the count date on the test config.
func WithCountDate(date string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Count.CountDate = date
	}
}

// WithRegion forces a capture region on the test config.
func WithRegion(region string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Count.Region = region
	}
}
