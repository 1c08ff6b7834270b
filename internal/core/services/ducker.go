package services

import (
	"fmt"

	"github.com/kiin-labs/kiinmix/internal/core/domain"
)

// Ducking transition bounds, seconds.
const (
	MinDuckTransitionSeconds     = 0.3
	MaxDuckTransitionSeconds     = 0.5
	DefaultDuckTransitionSeconds = 0.4
)

// DuckingMixer builds the music gain envelope for a mix: base volume outside
// narration, base volume × duck ratio inside, with symmetric linear ramps
// over the transition window so gain never jumps.
type DuckingMixer struct {
	transition float64
}

// NewDuckingMixer validates the transition window length.
func NewDuckingMixer(transitionSeconds float64) (*DuckingMixer, error) {
	if transitionSeconds < MinDuckTransitionSeconds || transitionSeconds > MaxDuckTransitionSeconds {
		return nil, fmt.Errorf("ducker: transition %.2fs outside %.1f–%.1fs",
			transitionSeconds, MinDuckTransitionSeconds, MaxDuckTransitionSeconds)
	}
	return &DuckingMixer{transition: transitionSeconds}, nil
}

// Envelope computes the gain breakpoints over [0, duration] for the given
// profile and speech timeline. Speech intervals separated by less than one
// full transition cycle (ramp up plus ramp down) are merged so the gain does
// not oscillate. The timeline must already be validated.
func (d *DuckingMixer) Envelope(profile domain.MoodProfile, speech domain.SpeechTimeline, duration float64) []domain.GainPoint {
	base := profile.Volume
	ducked := base * profile.DuckRatio
	tr := d.transition

	merged := speech.Merged(2 * tr)

	var points []domain.GainPoint
	add := func(at, gain float64) {
		if n := len(points); n > 0 && points[n-1].At == at {
			points[n-1].Gain = gain
			return
		}
		points = append(points, domain.GainPoint{At: at, Gain: gain})
	}

	add(0, base)
	for _, iv := range merged {
		rampDownStart := iv.Start - tr
		if rampDownStart < 0 {
			rampDownStart = 0
		}
		if iv.Start == 0 {
			// narration from the first instant: open already ducked
			add(0, ducked)
		} else {
			add(rampDownStart, base)
			add(iv.Start, ducked)
		}
		end := iv.End
		if end > duration {
			end = duration
		}
		add(end, ducked)
		if end < duration {
			rampUpEnd := end + tr
			if rampUpEnd > duration {
				rampUpEnd = duration
			}
			add(rampUpEnd, base)
		}
	}
	if last := points[len(points)-1]; last.At < duration {
		add(duration, last.Gain)
	}
	return points
}
