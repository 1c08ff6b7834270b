package config

const (
	defaultCatalogDir            = "~/kiin/music"
	defaultDBPath                = "kiinmix.db"
	defaultAPIBind               = ":8080"
	defaultCrossfadeSeconds      = 3.0
	defaultFadeInSeconds         = 2.0
	defaultFadeOutSeconds        = 4.0
	defaultDuckTransitionSeconds = 0.4
	defaultRecencyWindow         = 5
	defaultLogLevel              = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			CatalogDir: defaultCatalogDir,
			DBPath:     defaultDBPath,
			APIBind:    defaultAPIBind,
		},
		Audio: Audio{
			CrossfadeSeconds:      defaultCrossfadeSeconds,
			FadeInSeconds:         defaultFadeInSeconds,
			FadeOutSeconds:        defaultFadeOutSeconds,
			DuckTransitionSeconds: defaultDuckTransitionSeconds,
		},
		Selection: Selection{
			RecencyWindow: defaultRecencyWindow,
		},
		LogLevel: defaultLogLevel,
	}
}
