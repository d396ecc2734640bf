package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	WorkspaceDir string `toml:"workspace_dir"`
	LogDir       string `toml:"log_dir"`
	ExportDir    string `toml:"export_dir"`
}

// Count contains configuration for the point-in-time count itself.
type Count struct {
	// CountDate is the night of the count in YYYY-MM-DD form. Empty means
	// "today", resolved when a detection run starts.
	CountDate string `toml:"count_date"`
	// Region forces a regional capture schema for every upload. Empty means
	// auto-detect per upload.
	Region string `toml:"region"`
}

// Detection contains configuration for region detection and the duplicate
// scan.
type Detection struct {
	// MinRegionConfidence is the detection score below which an upload is
	// rejected as unidentifiable.
	MinRegionConfidence float64 `toml:"min_region_confidence"`
	// DemographicNotes appends "(same gender)"/"(same race)" notes to match
	// reasons when every best-tier partner agrees.
	DemographicNotes bool `toml:"demographic_notes"`
}

// Export contains configuration for annotated spreadsheet output.
type Export struct {
	// HeaderRows is the number of header rows above the first data row in
	// exported spreadsheets; duplicate row numbers are offset by it.
	HeaderRows int `toml:"header_rows"`
	// MaxColumnWidth caps content-sized XLSX column widths.
	MaxColumnWidth int `toml:"max_column_width"`

	// Fill colors per annotation label, RGB hex without "#".
	HeaderColor         string `toml:"header_color"`
	LikelyColor         string `toml:"likely_color"`
	SomewhatLikelyColor string `toml:"somewhat_likely_color"`
	PossibleColor       string `toml:"possible_color"`
	NoIdentityColor     string `toml:"no_identity_color"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for pitcount.
type Config struct {
	Paths     Paths     `toml:"paths"`
	Count     Count     `toml:"count"`
	Detection Detection `toml:"detection"`
	Export    Export    `toml:"export"`
	Logging   Logging   `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration
// file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/pitcount/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized. When no file exists at
// any candidate location, defaults are returned with exists == false.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("pitcount.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the workspace directory tree.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.WorkspaceDir, c.Paths.LogDir, c.Paths.ExportDir} {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// DatabasePath returns the workspace SQLite database location.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.Paths.WorkspaceDir, "pitcount.db")
}

// LockPath returns the workspace lock file location.
func (c *Config) LockPath() string {
	return filepath.Join(c.Paths.WorkspaceDir, "pitcount.lock")
}

// CountDate returns the configured count date, or the zero time when the
// config leaves it to "today". Validate guarantees the stored value parses.
func (c *Config) CountDate() time.Time {
	value := strings.TrimSpace(c.Count.CountDate)
	if value == "" {
		return time.Time{}
	}
	date, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}
	}
	return date
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
