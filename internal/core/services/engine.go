package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kiin-labs/kiinmix/internal/core/domain"
)

// Engine coordinates the classifier, selector, loop planner, and ducking
// mixer into one mix-planning operation.
type Engine struct {
	classifier *MoodClassifier
	selector   *TrackSelector
	looper     *LoopPlanner
	ducker     *DuckingMixer
	profiles   map[domain.Mood]domain.MoodProfile
	logger     *zap.Logger
}

// MixRequest is one mixing request from the content pipeline.
type MixRequest struct {
	ContentType    string
	MoodHint       string // optional emotional-context hint
	TargetDuration float64
	Speech         domain.SpeechTimeline
}

// NewEngine constructs the engine. Profiles must cover every mood the
// classifier can produce; DefaultProfiles does.
func NewEngine(
	classifier *MoodClassifier,
	selector *TrackSelector,
	looper *LoopPlanner,
	ducker *DuckingMixer,
	profiles map[domain.Mood]domain.MoodProfile,
	logger *zap.Logger,
) (*Engine, error) {
	for _, p := range profiles {
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("service: %w", err)
		}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		classifier: classifier,
		selector:   selector,
		looper:     looper,
		ducker:     ducker,
		profiles:   profiles,
		logger:     logger,
	}, nil
}

// PlanMix runs one mixing request end to end and returns the MixPlan.
//
// Inputs are rejected before any selection work begins: an invalid duration
// or malformed timeline never touches the catalog, and an unmappable content
// type fails before track lookup. Errors are local to the request; the
// selection history is only updated once a selection is confirmed.
func (e *Engine) PlanMix(ctx context.Context, req MixRequest) (domain.MixPlan, error) {
	if req.TargetDuration <= 0 || req.TargetDuration < domain.MinTrackSeconds {
		return domain.MixPlan{}, fmt.Errorf("service: target %.2fs: %w", req.TargetDuration, domain.ErrInvalidDuration)
	}
	if err := req.Speech.Validate(req.TargetDuration); err != nil {
		return domain.MixPlan{}, fmt.Errorf("service: %w", err)
	}

	mood, err := e.classifier.Classify(req.ContentType, req.MoodHint)
	if err != nil {
		return domain.MixPlan{}, fmt.Errorf("service: classify content: %w", err)
	}
	profile, ok := e.profiles[mood]
	if !ok {
		return domain.MixPlan{}, fmt.Errorf("service: no profile configured for mood %q", mood)
	}

	track, err := e.selector.Select(ctx, mood, req.TargetDuration)
	if err != nil {
		return domain.MixPlan{}, fmt.Errorf("service: select track: %w", err)
	}
	e.logger.Info("selected track",
		zap.String("track", track.ID),
		zap.String("mood", string(mood)),
		zap.Float64("target_seconds", req.TargetDuration))

	segments, err := e.looper.Plan(track, req.TargetDuration)
	if err != nil {
		return domain.MixPlan{}, fmt.Errorf("service: plan segments: %w", err)
	}

	plan := domain.MixPlan{
		ID:       uuid.NewString(),
		Mood:     mood,
		TrackID:  track.ID,
		Duration: req.TargetDuration,
		Segments: segments,
		Envelope: e.ducker.Envelope(profile, req.Speech, req.TargetDuration),
		Speech:   req.Speech,
	}
	if err := plan.Validate(); err != nil {
		return domain.MixPlan{}, fmt.Errorf("service: %w", err)
	}
	return plan, nil
}
