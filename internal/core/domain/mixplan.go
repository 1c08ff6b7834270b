package domain

import "fmt"

// Segment is one slice of a source track placed on the output timeline.
// CrossfadePrev is the overlap, in seconds, shared with the previous segment;
// during that overlap the previous segment fades out while this one fades in.
type Segment struct {
	TrackID       string  `json:"track_id"`
	SourceStart   float64 `json:"source_start"` // offset into the track, seconds
	SourceEnd     float64 `json:"source_end"`
	PlanStart     float64 `json:"plan_start"` // position on the output timeline
	FadeIn        float64 `json:"fade_in,omitempty"`
	FadeOut       float64 `json:"fade_out,omitempty"`
	CrossfadePrev float64 `json:"crossfade_prev,omitempty"`
}

// PlanEnd returns where the segment finishes on the output timeline.
func (s Segment) PlanEnd() float64 {
	return s.PlanStart + (s.SourceEnd - s.SourceStart)
}

// GainPoint is one breakpoint of the music gain envelope. Gain between
// breakpoints is linearly interpolated, which keeps the envelope continuous.
type GainPoint struct {
	At   float64 `json:"at"`
	Gain float64 `json:"gain"`
}

// MixPlan is the engine's output artifact: a segment sequence covering the
// full target duration with no gaps, plus the ducking gain envelope.
type MixPlan struct {
	ID       string         `json:"id"`
	Mood     Mood           `json:"mood"`
	TrackID  string         `json:"track_id"`
	Duration float64        `json:"duration"`
	Segments []Segment      `json:"segments"`
	Envelope []GainPoint    `json:"envelope"`
	Speech   SpeechTimeline `json:"speech,omitempty"`
}

// GainAt evaluates the envelope at time t.
func (p MixPlan) GainAt(t float64) float64 {
	if len(p.Envelope) == 0 {
		return 0
	}
	if t <= p.Envelope[0].At {
		return p.Envelope[0].Gain
	}
	for i := 1; i < len(p.Envelope); i++ {
		a, b := p.Envelope[i-1], p.Envelope[i]
		if t <= b.At {
			if b.At == a.At {
				return b.Gain
			}
			frac := (t - a.At) / (b.At - a.At)
			return a.Gain + frac*(b.Gain-a.Gain)
		}
	}
	return p.Envelope[len(p.Envelope)-1].Gain
}

// CoveredDuration returns the end of the last segment on the output timeline.
func (p MixPlan) CoveredDuration() float64 {
	if len(p.Segments) == 0 {
		return 0
	}
	return p.Segments[len(p.Segments)-1].PlanEnd()
}

// Validate checks the coverage invariant: segments in order, each starting
// where the previous one's crossfade region begins, ending exactly on
// Duration.
func (p MixPlan) Validate() error {
	if len(p.Segments) == 0 {
		return fmt.Errorf("domain: mix plan %s has no segments", p.ID)
	}
	if p.Segments[0].PlanStart != 0 {
		return fmt.Errorf("domain: mix plan %s does not start at zero", p.ID)
	}
	for i := 1; i < len(p.Segments); i++ {
		prev, cur := p.Segments[i-1], p.Segments[i]
		gap := cur.PlanStart + cur.CrossfadePrev - prev.PlanEnd()
		if gap > 1e-6 || gap < -1e-6 {
			return fmt.Errorf("domain: mix plan %s has a gap of %.6fs before segment %d", p.ID, gap, i)
		}
	}
	if diff := p.CoveredDuration() - p.Duration; diff > 1e-6 || diff < -1e-6 {
		return fmt.Errorf("domain: mix plan %s covers %.6fs, want %.6fs", p.ID, p.CoveredDuration(), p.Duration)
	}
	return nil
}
