package domain

// SpeechInterval marks narration presence between Start and End, in seconds.
type SpeechInterval struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// SpeechTimeline is an ordered, non-overlapping set of speech intervals
// within the target output duration.
type SpeechTimeline []SpeechInterval

// Validate checks ordering, non-overlap, and bounds against the target
// duration. The returned error identifies the first offending interval.
func (tl SpeechTimeline) Validate(totalDuration float64) error {
	prevEnd := 0.0
	for i, iv := range tl {
		switch {
		case iv.Start < 0:
			return MalformedTimelineError{Index: i, Interval: iv, Reason: "negative start"}
		case iv.End <= iv.Start:
			return MalformedTimelineError{Index: i, Interval: iv, Reason: "end not after start"}
		case iv.Start < prevEnd:
			return MalformedTimelineError{Index: i, Interval: iv, Reason: "overlaps or precedes previous interval"}
		case iv.End > totalDuration:
			return MalformedTimelineError{Index: i, Interval: iv, Reason: "extends past target duration"}
		}
		prevEnd = iv.End
	}
	return nil
}

// Merged collapses intervals whose gap is smaller than minGap into a single
// interval. The timeline must already be valid. Used by the ducking mixer so
// gain does not oscillate between closely spaced narration segments.
func (tl SpeechTimeline) Merged(minGap float64) SpeechTimeline {
	if len(tl) == 0 {
		return nil
	}
	merged := SpeechTimeline{tl[0]}
	for _, iv := range tl[1:] {
		last := &merged[len(merged)-1]
		if iv.Start-last.End < minGap {
			if iv.End > last.End {
				last.End = iv.End
			}
			continue
		}
		merged = append(merged, iv)
	}
	return merged
}
