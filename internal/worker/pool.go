// Package worker provides background energy analysis for ingested tracks.
package worker

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/kiin-labs/kiinmix/internal/core/ports"
)

// Job asks for one track's audio file to be analyzed.
type Job struct {
	TrackID string
	Path    string
}

// Pool manages background workers for analysis jobs.
type Pool struct {
	catalog ports.TrackCatalog
	logger  *zap.Logger
	jobs    chan Job
	wg      sync.WaitGroup
}

// NewPool creates a worker pool with the given queue size.
func NewPool(catalog ports.TrackCatalog, logger *zap.Logger, queueSize int) *Pool {
	if queueSize < 1 {
		queueSize = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pool{catalog: catalog, logger: logger, jobs: make(chan Job, queueSize)}
}

// Start launches the worker goroutines.
func (p *Pool) Start(workers int) {
	if workers < 1 {
		workers = 1
	}
	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for job := range p.jobs {
				p.processJob(job)
			}
		}()
	}
}

// Stop waits for workers to finish after closing the queue.
func (p *Pool) Stop() {
	close(p.jobs)
	p.wg.Wait()
}

// Submit queues a job without blocking.
func (p *Pool) Submit(job Job) {
	select {
	case p.jobs <- job:
	default:
		p.logger.Warn("dropping analysis job", zap.String("track", job.TrackID))
	}
}

func (p *Pool) processJob(job Job) {
	if job.Path == "" {
		p.logger.Warn("no path for track, skipping analysis", zap.String("track", job.TrackID))
		return
	}

	energy, err := AnalyzeFileFunc(job.Path)
	if err != nil {
		p.logger.Warn("energy analysis failed", zap.String("track", job.TrackID), zap.Error(err))
		return
	}

	if err := p.catalog.UpdateTrackEnergy(context.Background(), job.TrackID, energy); err != nil {
		p.logger.Warn("failed to store energy", zap.String("track", job.TrackID), zap.Error(err))
		return
	}
	p.logger.Info("analyzed track energy", zap.String("track", job.TrackID), zap.Float64("energy", energy))
}
