package domain

import "fmt"

// MoodProfile holds the per-mood mixing configuration: the tempo band the
// mood's tracks are expected to sit in, the base music volume, and the
// fraction of that volume retained while narration is present.
type MoodProfile struct {
	Mood      Mood
	TempoMin  int
	TempoMax  int
	Volume    float64 // base music level, 0–1
	DuckRatio float64 // fraction of Volume kept under speech, always < 1
}

// Validate checks the profile invariants.
func (p MoodProfile) Validate() error {
	if !p.Mood.Valid() {
		return fmt.Errorf("domain: profile has unknown mood %q", p.Mood)
	}
	if p.TempoMin <= 0 || p.TempoMax < p.TempoMin {
		return fmt.Errorf("domain: profile %s has invalid tempo range %d–%d", p.Mood, p.TempoMin, p.TempoMax)
	}
	if p.Volume < 0 || p.Volume > 1 {
		return fmt.Errorf("domain: profile %s volume %.2f outside [0,1]", p.Mood, p.Volume)
	}
	if p.DuckRatio < 0 || p.DuckRatio >= 1 {
		return fmt.Errorf("domain: profile %s duck ratio %.2f must be in [0,1)", p.Mood, p.DuckRatio)
	}
	return nil
}

// DefaultProfiles returns the built-in profile for every mood. Values come
// from the brand audio guidelines; config may override any of them.
func DefaultProfiles() map[Mood]MoodProfile {
	return map[Mood]MoodProfile{
		MoodSupportiveGentle: {
			Mood: MoodSupportiveGentle, TempoMin: 60, TempoMax: 90,
			Volume: 0.35, DuckRatio: 0.40,
		},
		MoodHopefulUplifting: {
			Mood: MoodHopefulUplifting, TempoMin: 90, TempoMax: 120,
			Volume: 0.40, DuckRatio: 0.40,
		},
		MoodTenseToCalm: {
			Mood: MoodTenseToCalm, TempoMin: 70, TempoMax: 110,
			Volume: 0.35, DuckRatio: 0.35,
		},
		MoodReflectiveEmotional: {
			Mood: MoodReflectiveEmotional, TempoMin: 55, TempoMax: 85,
			Volume: 0.30, DuckRatio: 0.35,
		},
		MoodEnergeticMotivating: {
			Mood: MoodEnergeticMotivating, TempoMin: 110, TempoMax: 140,
			Volume: 0.45, DuckRatio: 0.45,
		},
	}
}
