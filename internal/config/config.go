package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains source collection and site directory configuration.
type Paths struct {
	FinishedDir   string `toml:"finished_dir"`
	SketchbookDir string `toml:"sketchbook_dir"`
	SiteDir       string `toml:"site_dir"`
	LogDir        string `toml:"log_dir"`
}

// OpenAI contains connection settings for the captioning and tagging calls.
type OpenAI struct {
	APIKey         string `toml:"api_key"`
	BaseURL        string `toml:"base_url"`
	CaptionModel   string `toml:"caption_model"`
	TagModel       string `toml:"tag_model"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Captions contains settings for the caption stage.
type Captions struct {
	MaxPerRun int `toml:"max_per_run"`
}

// Tags contains settings for the metadata enrichment stage.
type Tags struct {
	MaxPerRun int `toml:"max_per_run"`
	MaxTags   int `toml:"max_tags"`
}

// Site contains settings for page assembly.
type Site struct {
	FeaturedCount int    `toml:"featured_count"`
	Artist        string `toml:"artist"`
}

// Run contains settings for full pipeline runs.
type Run struct {
	Budget int `toml:"budget"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for artsync.
//
// Configuration sections by subsystem:
//   - Paths: source collections, site tree, log directory
//   - OpenAI: API connection and model selection
//   - Captions: caption stage batch limit
//   - Tags: metadata stage batch limit and tag cap
//   - Site: featured card count and artist name
//   - Run: shared budget for full pipeline runs
//   - Logging: log format and level
type Config struct {
	Paths    Paths    `toml:"paths"`
	OpenAI   OpenAI   `toml:"openai"`
	Captions Captions `toml:"captions"`
	Tags     Tags     `toml:"tags"`
	Site     Site     `toml:"site"`
	Run      Run      `toml:"run"`
	Logging  Logging  `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/artsync/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
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

	projectPath, err := filepath.Abs("artsync.toml")
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

// EnsureDirectories creates the log directory needed for a run. Collection
// directories are never created here: an absent source collection is a
// runtime condition the stages handle themselves.
func (c *Config) EnsureDirectories() error {
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		return nil
	}
	if err := os.MkdirAll(c.Paths.LogDir, 0o755); err != nil {
		return fmt.Errorf("create log directory %q: %w", c.Paths.LogDir, err)
	}
	return nil
}

// CollectionDir returns the source directory for the named collection.
func (c *Config) CollectionDir(kind string) string {
	if kind == "sketchbook" {
		return c.Paths.SketchbookDir
	}
	return c.Paths.FinishedDir
}

// HasAPIKey reports whether an OpenAI credential is available.
func (c *Config) HasAPIKey() bool {
	return strings.TrimSpace(c.OpenAI.APIKey) != ""
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
