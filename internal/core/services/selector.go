package services

import (
	"context"
	"fmt"
	"math/rand"
	"sync"

	"github.com/kiin-labs/kiinmix/internal/core/domain"
	"github.com/kiin-labs/kiinmix/internal/core/ports"
)

// DefaultRecencyWindow is how many prior selections per mood are excluded
// from re-selection while alternatives exist.
const DefaultRecencyWindow = 5

// TrackSelector chooses tracks for a mood while enforcing variety across
// recent selections. History is per mood category and guarded by a per-mood
// mutex so concurrent batch requests for the same mood serialize.
type TrackSelector struct {
	catalog ports.TrackCatalog
	window  int

	randMu sync.Mutex
	rand   *rand.Rand

	mu    sync.Mutex
	moods map[domain.Mood]*moodHistory
}

type moodHistory struct {
	mu     sync.Mutex
	recent []string // track IDs, oldest first
}

// NewTrackSelector constructs a selector. The random source is injectable so
// tests can fix the seed and assert exact selection sequences.
func NewTrackSelector(catalog ports.TrackCatalog, window int, src rand.Source) *TrackSelector {
	if window < 1 {
		window = DefaultRecencyWindow
	}
	return &TrackSelector{
		catalog: catalog,
		window:  window,
		rand:    rand.New(src),
		moods:   make(map[domain.Mood]*moodHistory),
	}
}

// Select returns one track matching the mood. Tracks shorter than the target
// are eligible for looping, longer ones for trimming, so every track of the
// mood is a candidate; recency weighting alone drives the choice. The chosen
// track ID is appended to the mood's history only after the selection is
// confirmed, so a cancelled request leaves no trace.
func (s *TrackSelector) Select(ctx context.Context, mood domain.Mood, targetDuration float64) (domain.Track, error) {
	tracks, err := s.catalog.TracksByMood(ctx, mood)
	if err != nil {
		return domain.Track{}, fmt.Errorf("selector: load catalog: %w", err)
	}
	if len(tracks) == 0 {
		return domain.Track{}, domain.NoMatchingTrackError{Mood: mood}
	}

	hist := s.historyFor(mood)
	hist.mu.Lock()
	defer hist.mu.Unlock()

	candidates := eligible(tracks, hist.recent)

	chosen := s.pickWeighted(candidates, hist.recent)

	if err := ctx.Err(); err != nil {
		return domain.Track{}, fmt.Errorf("selector: request abandoned: %w", err)
	}

	hist.recent = append(hist.recent, chosen.ID)
	if len(hist.recent) > s.window {
		hist.recent = hist.recent[len(hist.recent)-s.window:]
	}
	return chosen, nil
}

// History returns a copy of the recency window for a mood, oldest first.
func (s *TrackSelector) History(mood domain.Mood) []string {
	hist := s.historyFor(mood)
	hist.mu.Lock()
	defer hist.mu.Unlock()
	out := make([]string, len(hist.recent))
	copy(out, hist.recent)
	return out
}

func (s *TrackSelector) historyFor(mood domain.Mood) *moodHistory {
	s.mu.Lock()
	defer s.mu.Unlock()
	h, ok := s.moods[mood]
	if !ok {
		h = &moodHistory{}
		s.moods[mood] = h
	}
	return h
}

// eligible filters out tracks inside the recency window. If that would leave
// nothing, the window is relaxed by dropping its oldest entry until at least
// one candidate remains.
func eligible(tracks []domain.Track, recent []string) []domain.Track {
	view := recent
	for {
		excluded := make(map[string]bool, len(view))
		for _, id := range view {
			excluded[id] = true
		}
		var out []domain.Track
		for _, t := range tracks {
			if !excluded[t.ID] {
				out = append(out, t)
			}
		}
		if len(out) > 0 || len(view) == 0 {
			return out
		}
		view = view[1:]
	}
}

// pickWeighted draws one candidate, weighting least-recently-used tracks
// highest. Candidates are walked in catalog order with cumulative weights,
// so an identical draw resolves ties by catalog order.
func (s *TrackSelector) pickWeighted(candidates []domain.Track, recent []string) domain.Track {
	if len(candidates) == 1 {
		return candidates[0]
	}
	lastUsed := make(map[string]int, len(recent))
	for i, id := range recent {
		lastUsed[id] = i
	}
	weightOf := func(t domain.Track) float64 {
		i, ok := lastUsed[t.ID]
		if !ok {
			return float64(len(recent) + 1)
		}
		return float64(len(recent) - i)
	}

	var total float64
	for _, t := range candidates {
		total += weightOf(t)
	}

	s.randMu.Lock()
	r := s.rand.Float64() * total
	s.randMu.Unlock()

	var cum float64
	for _, t := range candidates {
		cum += weightOf(t)
		if r < cum {
			return t
		}
	}
	return candidates[len(candidates)-1]
}
