package config

const (
	defaultDataDir        = "~/.local/share/mvw"
	defaultPosterDir      = "~/.cache/mvw/posters"
	defaultLogDir         = "~/.local/share/mvw/logs"
	defaultOMDbBaseURL    = "https://www.omdbapi.com/"
	defaultOMDbPlot       = "short"
	defaultRequestTimeout = 10
	defaultPosterWidth    = 30
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir:   defaultDataDir,
			PosterDir: defaultPosterDir,
			LogDir:    defaultLogDir,
		},
		OMDb: OMDb{
			BaseURL:        defaultOMDbBaseURL,
			Plot:           defaultOMDbPlot,
			RequestTimeout: defaultRequestTimeout,
		},
		UI: UI{
			PosterWidth: defaultPosterWidth,
			Color:       true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
