package services

import (
	"strings"

	"github.com/kiin-labs/kiinmix/internal/core/domain"
)

// MoodClassifier maps a Kiin content-type label (and an optional
// emotional-context hint) to exactly one mood category. The mapping is a
// static table: the same input always yields the same mood, and there is no
// randomness at this layer.
type MoodClassifier struct {
	contentTypes map[string]domain.Mood
	hints        map[string]domain.Mood
	fallback     *domain.Mood
}

// ClassifierOption customizes a MoodClassifier.
type ClassifierOption func(*MoodClassifier)

// WithDefaultMood configures a fallback mood for content types that have no
// mapping. Without it, Classify returns UnknownContentTypeError for them.
func WithDefaultMood(m domain.Mood) ClassifierOption {
	return func(c *MoodClassifier) { c.fallback = &m }
}

// WithContentType adds or overrides a single content-type mapping.
func WithContentType(contentType string, m domain.Mood) ClassifierOption {
	return func(c *MoodClassifier) { c.contentTypes[contentType] = m }
}

// NewMoodClassifier builds a classifier with the brand's standard content
// taxonomy.
func NewMoodClassifier(opts ...ClassifierOption) *MoodClassifier {
	c := &MoodClassifier{
		contentTypes: map[string]domain.Mood{
			"validation":          domain.MoodSupportiveGentle,
			"boundaries":          domain.MoodSupportiveGentle,
			"tips":                domain.MoodHopefulUplifting,
			"self_care":           domain.MoodHopefulUplifting,
			"chaos_story":         domain.MoodTenseToCalm,
			"caregiver_burnout":   domain.MoodTenseToCalm,
			"confession":          domain.MoodReflectiveEmotional,
			"sandwich_generation": domain.MoodReflectiveEmotional,
			"morning_routine":     domain.MoodEnergeticMotivating,
			"small_wins":          domain.MoodEnergeticMotivating,
		},
		hints: map[string]domain.Mood{
			"calm":       domain.MoodSupportiveGentle,
			"gentle":     domain.MoodSupportiveGentle,
			"hopeful":    domain.MoodHopefulUplifting,
			"uplifting":  domain.MoodHopefulUplifting,
			"tense":      domain.MoodTenseToCalm,
			"overwhelm":  domain.MoodTenseToCalm,
			"reflective": domain.MoodReflectiveEmotional,
			"emotional":  domain.MoodReflectiveEmotional,
			"energetic":  domain.MoodEnergeticMotivating,
			"motivating": domain.MoodEnergeticMotivating,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Classify resolves a content-type label to a mood. A non-empty hint that
// names a mood directly, or matches the hint keyword table, takes precedence
// over the content-type mapping; an unrecognized hint is ignored rather than
// failing the request.
func (c *MoodClassifier) Classify(contentType, hint string) (domain.Mood, error) {
	if hint != "" {
		key := strings.ToLower(strings.TrimSpace(hint))
		if m := domain.Mood(key); m.Valid() {
			return m, nil
		}
		if m, ok := c.hints[key]; ok {
			return m, nil
		}
	}
	if m, ok := c.contentTypes[contentType]; ok {
		return m, nil
	}
	if c.fallback != nil {
		return *c.fallback, nil
	}
	return "", domain.UnknownContentTypeError{ContentType: contentType}
}
