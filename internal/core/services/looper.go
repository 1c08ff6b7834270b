package services

import (
	"fmt"

	"github.com/kiin-labs/kiinmix/internal/core/domain"
)

// Fade bounds from the brand audio guidelines.
const (
	MinCrossfadeSeconds = 2.0
	MaxCrossfadeSeconds = 5.0
	MinFadeInSeconds    = 2.0
	MaxFadeInSeconds    = 5.0
	MinFadeOutSeconds   = 3.0
	MaxFadeOutSeconds   = 6.0
)

// FadeSettings configures the loop planner.
type FadeSettings struct {
	Crossfade float64 // loop-boundary crossfade, 2–5s
	FadeIn    float64 // 2–5s
	FadeOut   float64 // 3–6s
}

// DefaultFadeSettings returns the brand defaults.
func DefaultFadeSettings() FadeSettings {
	return FadeSettings{Crossfade: 3, FadeIn: 2, FadeOut: 4}
}

// LoopPlanner extends or truncates a track to cover a target duration
// exactly, emitting segments with explicit offsets and fade metadata.
type LoopPlanner struct {
	fades FadeSettings
}

// NewLoopPlanner validates the fade settings against the brand bounds.
func NewLoopPlanner(fades FadeSettings) (*LoopPlanner, error) {
	if fades.Crossfade < MinCrossfadeSeconds || fades.Crossfade > MaxCrossfadeSeconds {
		return nil, fmt.Errorf("looper: crossfade %.1fs outside %.0f–%.0fs", fades.Crossfade, MinCrossfadeSeconds, MaxCrossfadeSeconds)
	}
	if fades.FadeIn < MinFadeInSeconds || fades.FadeIn > MaxFadeInSeconds {
		return nil, fmt.Errorf("looper: fade-in %.1fs outside %.0f–%.0fs", fades.FadeIn, MinFadeInSeconds, MaxFadeInSeconds)
	}
	if fades.FadeOut < MinFadeOutSeconds || fades.FadeOut > MaxFadeOutSeconds {
		return nil, fmt.Errorf("looper: fade-out %.1fs outside %.0f–%.0fs", fades.FadeOut, MinFadeOutSeconds, MaxFadeOutSeconds)
	}
	return &LoopPlanner{fades: fades}, nil
}

// Plan produces segments covering exactly targetDuration.
//
// When the target exceeds the track, the track repeats from its start with a
// crossfade overlap at every loop boundary and the final repetition is
// truncated to land on the target; the fade-out sits on that truncated tail.
// When the track exceeds the target, a single trimmed segment is used. In
// both cases fade-in plus fade-out never exceeds the covered duration: if
// they would, both are scaled down proportionally.
func (l *LoopPlanner) Plan(track domain.Track, targetDuration float64) ([]domain.Segment, error) {
	if targetDuration <= 0 {
		return nil, domain.ErrInvalidDuration
	}

	if targetDuration <= track.Duration {
		return l.trim(track, targetDuration), nil
	}
	return l.loop(track, targetDuration), nil
}

func (l *LoopPlanner) trim(track domain.Track, target float64) []domain.Segment {
	fadeIn, fadeOut := scaleFades(l.fades.FadeIn, l.fades.FadeOut, target)
	return []domain.Segment{{
		TrackID:     track.ID,
		SourceStart: 0,
		SourceEnd:   target,
		PlanStart:   0,
		FadeIn:      fadeIn,
		FadeOut:     fadeOut,
	}}
}

func (l *LoopPlanner) loop(track domain.Track, target float64) []domain.Segment {
	d := track.Duration
	cross := l.fades.Crossfade
	stride := d - cross // new audio each repetition contributes

	// Minimal repetition count whose full coverage reaches the target.
	n := 1
	for d+float64(n-1)*stride < target {
		n++
	}

	segments := make([]domain.Segment, 0, n)
	for i := 0; i < n; i++ {
		planStart := float64(i) * stride
		length := d
		if i == n-1 {
			length = target - planStart
		}
		seg := domain.Segment{
			TrackID:     track.ID,
			SourceStart: 0,
			SourceEnd:   length,
			PlanStart:   planStart,
		}
		if i > 0 {
			seg.CrossfadePrev = cross
		}
		segments = append(segments, seg)
	}

	fadeIn, fadeOut := scaleFades(l.fades.FadeIn, l.fades.FadeOut, target)
	segments[0].FadeIn = fadeIn
	last := &segments[n-1]
	tail := last.SourceEnd - last.SourceStart
	if fadeOut > tail {
		fadeOut = tail
	}
	last.FadeOut = fadeOut
	return segments
}

// scaleFades shrinks fade-in and fade-out proportionally so their sum never
// exceeds the covered duration.
func scaleFades(fadeIn, fadeOut, target float64) (float64, float64) {
	sum := fadeIn + fadeOut
	if sum <= target {
		return fadeIn, fadeOut
	}
	scale := target / sum
	return fadeIn * scale, fadeOut * scale
}
