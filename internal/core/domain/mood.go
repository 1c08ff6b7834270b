package domain

import "fmt"

// Mood is one of the five fixed emotional-tone buckets Kiin content maps onto.
type Mood string

const (
	MoodSupportiveGentle    Mood = "supportive_gentle"
	MoodHopefulUplifting    Mood = "hopeful_uplifting"
	MoodTenseToCalm         Mood = "tense_to_calm"
	MoodReflectiveEmotional Mood = "reflective_emotional"
	MoodEnergeticMotivating Mood = "energetic_motivating"
)

// Moods returns every valid mood in a stable order.
func Moods() []Mood {
	return []Mood{
		MoodSupportiveGentle,
		MoodHopefulUplifting,
		MoodTenseToCalm,
		MoodReflectiveEmotional,
		MoodEnergeticMotivating,
	}
}

// Valid reports whether m is a member of the closed mood set.
func (m Mood) Valid() bool {
	switch m {
	case MoodSupportiveGentle, MoodHopefulUplifting, MoodTenseToCalm,
		MoodReflectiveEmotional, MoodEnergeticMotivating:
		return true
	}
	return false
}

// ParseMood converts a string into a Mood, rejecting anything outside the set.
func ParseMood(s string) (Mood, error) {
	m := Mood(s)
	if !m.Valid() {
		return "", fmt.Errorf("domain: unknown mood %q", s)
	}
	return m, nil
}
