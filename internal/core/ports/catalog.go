package ports

import (
	"context"

	"github.com/kiin-labs/kiinmix/internal/core/domain"
)

// TrackCatalog is the Track Metadata Store port. Implementations are safe
// for concurrent reads; writes happen during ingest and background analysis.
type TrackCatalog interface {
	GetByID(ctx context.Context, id string) (domain.Track, error)
	TracksByMood(ctx context.Context, mood domain.Mood) ([]domain.Track, error)
	All(ctx context.Context) ([]domain.Track, error)
	Save(ctx context.Context, t domain.Track) error
	UpdateTrackEnergy(ctx context.Context, id string, energy float64) error
}
