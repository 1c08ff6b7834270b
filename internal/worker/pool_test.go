package worker

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/kiin-labs/kiinmix/internal/core/domain"
)

type recordingCatalog struct {
	mu       sync.Mutex
	energies map[string]float64
	err      error
}

func newRecordingCatalog() *recordingCatalog {
	return &recordingCatalog{energies: make(map[string]float64)}
}

func (c *recordingCatalog) UpdateTrackEnergy(_ context.Context, id string, energy float64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	c.energies[id] = energy
	return nil
}

func (c *recordingCatalog) energy(id string) (float64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.energies[id]
	return e, ok
}

func (c *recordingCatalog) GetByID(_ context.Context, _ string) (domain.Track, error) {
	return domain.Track{}, domain.ErrNotFound
}

func (c *recordingCatalog) TracksByMood(_ context.Context, _ domain.Mood) ([]domain.Track, error) {
	return nil, nil
}

func (c *recordingCatalog) All(_ context.Context) ([]domain.Track, error) { return nil, nil }

func (c *recordingCatalog) Save(_ context.Context, _ domain.Track) error { return nil }

func withAnalyzer(t *testing.T, fn func(string) (float64, error)) {
	t.Helper()
	orig := AnalyzeFileFunc
	AnalyzeFileFunc = fn
	t.Cleanup(func() { AnalyzeFileFunc = orig })
}

func TestPool_AnalyzesSubmittedJobs(t *testing.T) {
	withAnalyzer(t, func(path string) (float64, error) {
		if path != "gentle.mp3" {
			t.Errorf("analyzer got path %q", path)
		}
		return 0.42, nil
	})

	catalog := newRecordingCatalog()
	pool := NewPool(catalog, nil, 10)
	pool.Start(2)

	pool.Submit(Job{TrackID: "sg1", Path: "gentle.mp3"})
	pool.Stop()

	energy, ok := catalog.energy("sg1")
	if !ok {
		t.Fatal("energy was never stored")
	}
	if energy != 0.42 {
		t.Fatalf("stored energy %v, want 0.42", energy)
	}
}

func TestPool_SkipsJobsWithoutPath(t *testing.T) {
	withAnalyzer(t, func(string) (float64, error) {
		t.Error("analyzer should not run for empty paths")
		return 0, nil
	})

	catalog := newRecordingCatalog()
	pool := NewPool(catalog, nil, 10)
	pool.Start(1)

	pool.Submit(Job{TrackID: "sg1"})
	pool.Stop()

	if len(catalog.energies) != 0 {
		t.Fatalf("expected no updates, got %v", catalog.energies)
	}
}

func TestPool_AnalyzerFailureDoesNotUpdate(t *testing.T) {
	withAnalyzer(t, func(string) (float64, error) {
		return 0, errors.New("corrupt frame")
	})

	catalog := newRecordingCatalog()
	pool := NewPool(catalog, nil, 10)
	pool.Start(1)

	pool.Submit(Job{TrackID: "sg1", Path: "gentle.mp3"})
	pool.Stop()

	if _, ok := catalog.energy("sg1"); ok {
		t.Fatal("energy stored despite analyzer failure")
	}
}

func TestPool_SubmitDropsWhenQueueFull(t *testing.T) {
	withAnalyzer(t, func(string) (float64, error) { return 0.5, nil })

	catalog := newRecordingCatalog()
	// queue of 1, no workers started: the second submit must not block
	pool := NewPool(catalog, nil, 1)

	pool.Submit(Job{TrackID: "sg1", Path: "a.mp3"})
	pool.Submit(Job{TrackID: "sg2", Path: "b.mp3"})

	pool.Start(1)
	pool.Stop()

	if _, ok := catalog.energy("sg1"); !ok {
		t.Fatal("queued job was not processed")
	}
	if _, ok := catalog.energy("sg2"); ok {
		t.Fatal("dropped job should not have been processed")
	}
}
