package config

const (
	defaultFinishedDir    = "~/art-site/finished"
	defaultSketchbookDir  = "~/art-site/sketchbook"
	defaultSiteDir        = "~/art-site/site"
	defaultLogDir         = "~/.local/share/artsync/logs"
	defaultOpenAIBaseURL  = "https://api.openai.com/v1/chat/completions"
	defaultCaptionModel   = "gpt-4o-mini"
	defaultTagModel       = "gpt-4o-mini"
	defaultTimeoutSeconds = 60
	defaultCaptionBudget  = 20
	defaultTagBudget      = 40
	defaultMaxTags        = 10
	defaultFeaturedCount  = 3
	defaultArtist         = "Myles"
	defaultRunBudget      = 20
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			FinishedDir:   defaultFinishedDir,
			SketchbookDir: defaultSketchbookDir,
			SiteDir:       defaultSiteDir,
			LogDir:        defaultLogDir,
		},
		OpenAI: OpenAI{
			BaseURL:        defaultOpenAIBaseURL,
			CaptionModel:   defaultCaptionModel,
			TagModel:       defaultTagModel,
			TimeoutSeconds: defaultTimeoutSeconds,
		},
		Captions: Captions{
			MaxPerRun: defaultCaptionBudget,
		},
		Tags: Tags{
			MaxPerRun: defaultTagBudget,
			MaxTags:   defaultMaxTags,
		},
		Site: Site{
			FeaturedCount: defaultFeaturedCount,
			Artist:        defaultArtist,
		},
		Run: Run{
			Budget: defaultRunBudget,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
