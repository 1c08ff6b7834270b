package config

import "fmt"

// Brand audio bounds. Out-of-range values are rejected at load rather than
// silently clamped, so a mistyped config is caught immediately.
const (
	minCrossfade      = 2.0
	maxCrossfade      = 5.0
	minFadeIn         = 2.0
	maxFadeIn         = 5.0
	minFadeOut        = 3.0
	maxFadeOut        = 6.0
	minDuckTransition = 0.3
	maxDuckTransition = 0.5
)

// Validate checks every configurable value against its allowed range.
func (c Config) Validate() error {
	if c.Paths.CatalogDir == "" {
		return fmt.Errorf("config: paths.catalog_dir must not be empty")
	}
	if c.Paths.DBPath == "" {
		return fmt.Errorf("config: paths.db_path must not be empty")
	}
	if v := c.Audio.CrossfadeSeconds; v < minCrossfade || v > maxCrossfade {
		return fmt.Errorf("config: audio.crossfade_seconds %.2f outside %.0f–%.0f", v, minCrossfade, maxCrossfade)
	}
	if v := c.Audio.FadeInSeconds; v < minFadeIn || v > maxFadeIn {
		return fmt.Errorf("config: audio.fade_in_seconds %.2f outside %.0f–%.0f", v, minFadeIn, maxFadeIn)
	}
	if v := c.Audio.FadeOutSeconds; v < minFadeOut || v > maxFadeOut {
		return fmt.Errorf("config: audio.fade_out_seconds %.2f outside %.0f–%.0f", v, minFadeOut, maxFadeOut)
	}
	if v := c.Audio.DuckTransitionSeconds; v < minDuckTransition || v > maxDuckTransition {
		return fmt.Errorf("config: audio.duck_transition_seconds %.2f outside %.1f–%.1f", v, minDuckTransition, maxDuckTransition)
	}
	if c.Selection.RecencyWindow < 1 {
		return fmt.Errorf("config: selection.recency_window must be at least 1")
	}
	if _, err := c.Profiles(); err != nil {
		return err
	}
	return nil
}
