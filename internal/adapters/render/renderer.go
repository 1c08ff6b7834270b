// Package render turns a MixPlan into mixed PCM audio. It is a thin adapter
// over the plan: the engine's output stays the source of truth and this
// package only applies it to decoded samples.
package render

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/kiin-labs/kiinmix/internal/core/domain"
	"github.com/kiin-labs/kiinmix/internal/core/ports"
)

const channels = 2

// Renderer mixes plans against the catalog's audio files.
type Renderer struct {
	catalog ports.TrackCatalog
	logger  *zap.Logger
}

// NewRenderer constructs a Renderer.
func NewRenderer(catalog ports.TrackCatalog, logger *zap.Logger) *Renderer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Renderer{catalog: catalog, logger: logger}
}

// RenderWAV decodes the plan's track, applies segment fades, loop
// crossfades, and the ducking envelope, and writes a 16-bit stereo WAV.
func (r *Renderer) RenderWAV(ctx context.Context, plan domain.MixPlan, w io.Writer) error {
	track, err := r.catalog.GetByID(ctx, plan.TrackID)
	if err != nil {
		return fmt.Errorf("render: load track %s: %w", plan.TrackID, err)
	}

	samples, rate, err := decodeFileFunc(track.Path)
	if err != nil {
		return fmt.Errorf("render: decode %s: %w", track.Path, err)
	}

	mixed := MixPlanSamples(plan, samples, rate)
	if err := WriteWAV(w, mixed, rate); err != nil {
		return fmt.Errorf("render: write wav: %w", err)
	}
	r.logger.Info("rendered mix",
		zap.String("plan", plan.ID),
		zap.String("track", plan.TrackID),
		zap.Float64("seconds", plan.Duration))
	return nil
}

// MixPlanSamples applies a plan to decoded interleaved stereo samples and
// returns the mixed output, clamped to int16.
func MixPlanSamples(plan domain.MixPlan, source []int16, rate int) []int16 {
	totalFrames := int(plan.Duration * float64(rate))
	acc := make([]float64, totalFrames*channels)

	for i, seg := range plan.Segments {
		var nextCross float64
		if i+1 < len(plan.Segments) {
			nextCross = plan.Segments[i+1].CrossfadePrev
		}
		mixSegment(acc, seg, nextCross, source, rate, totalFrames)
	}

	out := make([]int16, len(acc))
	for f := 0; f < totalFrames; f++ {
		gain := plan.GainAt(float64(f) / float64(rate))
		for c := 0; c < channels; c++ {
			v := acc[f*channels+c] * gain
			if v > 32767 {
				v = 32767
			} else if v < -32768 {
				v = -32768
			}
			out[f*channels+c] = int16(v)
		}
	}
	return out
}

// mixSegment accumulates one segment into the output buffer. Segment fades
// are linear; crossfade overlaps use the smoothstep curve so loop seams stay
// constant-feeling in loudness.
func mixSegment(acc []float64, seg domain.Segment, nextCross float64, source []int16, rate, totalFrames int) {
	segLen := seg.SourceEnd - seg.SourceStart
	segFrames := int(segLen * float64(rate))
	srcStartFrame := int(seg.SourceStart * float64(rate))
	planStartFrame := int(seg.PlanStart * float64(rate))

	for f := 0; f < segFrames; f++ {
		planFrame := planStartFrame + f
		if planFrame >= totalFrames {
			break
		}
		srcIdx := (srcStartFrame + f) * channels
		if srcIdx+1 >= len(source) {
			break
		}

		ts := float64(f) / float64(rate)
		g := 1.0
		if seg.FadeIn > 0 && ts < seg.FadeIn {
			g *= ts / seg.FadeIn
		}
		if seg.CrossfadePrev > 0 && ts < seg.CrossfadePrev {
			g *= smoothstep(ts / seg.CrossfadePrev)
		}
		remaining := segLen - ts
		if seg.FadeOut > 0 && remaining < seg.FadeOut {
			g *= remaining / seg.FadeOut
		}
		if nextCross > 0 && remaining < nextCross {
			g *= smoothstep(remaining / nextCross)
		}

		acc[planFrame*channels] += float64(source[srcIdx]) * g
		acc[planFrame*channels+1] += float64(source[srcIdx+1]) * g
	}
}

// smoothstep returns 3t²−2t³ for t in [0,1].
func smoothstep(t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	return t * t * (3 - 2*t)
}
