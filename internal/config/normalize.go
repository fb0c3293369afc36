package config

import (
	"os"
	"strings"
)

// normalize expands paths, applies environment fallbacks, and fills defaults
// for fields left empty by the config file.
func (c *Config) normalize() error {
	if c.OpenAI.APIKey == "" {
		c.OpenAI.APIKey = strings.TrimSpace(os.Getenv("OPENAI_API_KEY"))
	}

	for _, field := range []*string{
		&c.Paths.FinishedDir,
		&c.Paths.SketchbookDir,
		&c.Paths.SiteDir,
		&c.Paths.LogDir,
	} {
		if strings.TrimSpace(*field) == "" {
			continue
		}
		expanded, err := expandPath(*field)
		if err != nil {
			return err
		}
		*field = expanded
	}

	if strings.TrimSpace(c.OpenAI.BaseURL) == "" {
		c.OpenAI.BaseURL = defaultOpenAIBaseURL
	}
	if strings.TrimSpace(c.OpenAI.CaptionModel) == "" {
		c.OpenAI.CaptionModel = defaultCaptionModel
	}
	if strings.TrimSpace(c.OpenAI.TagModel) == "" {
		c.OpenAI.TagModel = defaultTagModel
	}
	if c.OpenAI.TimeoutSeconds <= 0 {
		c.OpenAI.TimeoutSeconds = defaultTimeoutSeconds
	}
	if c.Captions.MaxPerRun <= 0 {
		c.Captions.MaxPerRun = defaultCaptionBudget
	}
	if c.Tags.MaxPerRun <= 0 {
		c.Tags.MaxPerRun = defaultTagBudget
	}
	if c.Tags.MaxTags <= 0 {
		c.Tags.MaxTags = defaultMaxTags
	}
	if c.Site.FeaturedCount < 0 {
		c.Site.FeaturedCount = defaultFeaturedCount
	}
	if strings.TrimSpace(c.Site.Artist) == "" {
		c.Site.Artist = defaultArtist
	}
	if c.Run.Budget <= 0 {
		c.Run.Budget = defaultRunBudget
	}
	if strings.TrimSpace(c.Logging.Format) == "" {
		c.Logging.Format = defaultLogFormat
	}
	if strings.TrimSpace(c.Logging.Level) == "" {
		c.Logging.Level = defaultLogLevel
	}
	return nil
}
