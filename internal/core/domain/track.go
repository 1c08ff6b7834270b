package domain

import "fmt"

// MinTrackSeconds is the minimum playable length for a catalog track.
const MinTrackSeconds = 30.0

// LoudnessTargetLUFS is the normalization target every catalog track is
// mastered to before ingest.
const LoudnessTargetLUFS = -23.0

// Track represents one music file in the catalog.
type Track struct {
	ID          string
	Path        string
	Mood        Mood
	TempoBPM    int
	Key         string  // musical key, e.g. "Cmaj"
	Duration    float64 // seconds
	Energy      float64 // normalized 0–1, 0 means not yet analyzed
	Description string
	Source      string // licensing source, e.g. "artlist"
}

// Validate checks the catalog invariants for a track.
func (t Track) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("domain: track has no id")
	}
	if !t.Mood.Valid() {
		return fmt.Errorf("domain: track %s has unknown mood %q", t.ID, t.Mood)
	}
	if t.TempoBPM <= 0 {
		return fmt.Errorf("domain: track %s has non-positive tempo %d", t.ID, t.TempoBPM)
	}
	if t.Duration < MinTrackSeconds {
		return fmt.Errorf("domain: track %s duration %.1fs is below the %.0fs minimum", t.ID, t.Duration, MinTrackSeconds)
	}
	if t.Energy < 0 || t.Energy > 1 {
		return fmt.Errorf("domain: track %s energy %.3f outside [0,1]", t.ID, t.Energy)
	}
	return nil
}
