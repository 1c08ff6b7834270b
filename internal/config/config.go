// Package config loads the engine's TOML configuration.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/kiin-labs/kiinmix/internal/core/domain"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory, database, and bind address configuration.
type Paths struct {
	CatalogDir string `toml:"catalog_dir"`
	DBPath     string `toml:"db_path"`
	APIBind    string `toml:"api_bind"`
}

// Audio contains the fade and ducking parameters.
type Audio struct {
	CrossfadeSeconds      float64 `toml:"crossfade_seconds"`
	FadeInSeconds         float64 `toml:"fade_in_seconds"`
	FadeOutSeconds        float64 `toml:"fade_out_seconds"`
	DuckTransitionSeconds float64 `toml:"duck_transition_seconds"`
}

// Selection contains track-selection configuration.
type Selection struct {
	RecencyWindow int `toml:"recency_window"`
}

// MoodOverride adjusts parts of a built-in mood profile. Nil fields keep the
// default.
type MoodOverride struct {
	Volume    *float64 `toml:"volume"`
	DuckRatio *float64 `toml:"duck_ratio"`
	TempoMin  *int     `toml:"tempo_min"`
	TempoMax  *int     `toml:"tempo_max"`
}

// Config is the full engine configuration.
type Config struct {
	Paths     Paths                   `toml:"paths"`
	Audio     Audio                   `toml:"audio"`
	Selection Selection               `toml:"selection"`
	Moods     map[string]MoodOverride `toml:"moods"`
	LogLevel  string                  `toml:"log_level"`
}

// Load reads the configuration file at path, layered over the defaults. A
// missing file yields the defaults unchanged; a present but invalid file is
// an error.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Sample returns the annotated sample configuration file.
func Sample() string {
	return sampleConfig
}

// Profiles merges the configured mood overrides onto the built-in profiles.
func (c Config) Profiles() (map[domain.Mood]domain.MoodProfile, error) {
	profiles := domain.DefaultProfiles()
	for name, ov := range c.Moods {
		mood, err := domain.ParseMood(name)
		if err != nil {
			return nil, fmt.Errorf("config: [moods.%s]: %w", name, err)
		}
		p := profiles[mood]
		if ov.Volume != nil {
			p.Volume = *ov.Volume
		}
		if ov.DuckRatio != nil {
			p.DuckRatio = *ov.DuckRatio
		}
		if ov.TempoMin != nil {
			p.TempoMin = *ov.TempoMin
		}
		if ov.TempoMax != nil {
			p.TempoMax = *ov.TempoMax
		}
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("config: [moods.%s]: %w", name, err)
		}
		profiles[mood] = p
	}
	return profiles, nil
}
