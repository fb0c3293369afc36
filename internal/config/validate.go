package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateSite(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.FinishedDir) == "" {
		return errors.New("paths.finished_dir must be set")
	}
	if strings.TrimSpace(c.Paths.SiteDir) == "" {
		return errors.New("paths.site_dir must be set")
	}
	return nil
}

func (c *Config) validateSite() error {
	if c.Site.FeaturedCount > 12 {
		return fmt.Errorf("site.featured_count %d is unreasonably large (max 12)", c.Site.FeaturedCount)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch strings.ToLower(strings.TrimSpace(c.Logging.Format)) {
	case "console", "json":
		return nil
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
}

// RequireAPIKey returns an error describing how to supply a credential when
// none is configured. Called by commands that will reach the network.
func (c *Config) RequireAPIKey() error {
	if c.HasAPIKey() {
		return nil
	}
	defaultPath, err := DefaultConfigPath()
	if err != nil {
		defaultPath = "~/.config/artsync/config.toml"
	}
	return fmt.Errorf("openai.api_key is required. Set OPENAI_API_KEY env var or edit %s (create with 'artsync config init')", defaultPath)
}
