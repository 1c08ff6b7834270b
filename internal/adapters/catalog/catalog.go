// Package catalog ingests the licensed music library from disk. File names
// follow the brand convention
// {mood}_{tempo}bpm_{key}_{duration}s_{description}_{source}.{ext}
// and carry all the metadata the store needs.
package catalog

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/kiin-labs/kiinmix/internal/core/domain"
	"github.com/kiin-labs/kiinmix/internal/core/ports"
)

var audioExtensions = map[string]bool{
	".mp3": true,
	".wav": true,
}

// ParseFilename decodes the naming convention into a Track. The returned
// track's ID is the base name without extension.
func ParseFilename(path string) (domain.Track, error) {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	if !audioExtensions[strings.ToLower(ext)] {
		return domain.Track{}, fmt.Errorf("catalog: %s: unsupported extension %q", base, ext)
	}
	name := strings.TrimSuffix(base, ext)

	var mood domain.Mood
	for _, m := range domain.Moods() {
		if strings.HasPrefix(name, string(m)+"_") {
			mood = m
			break
		}
	}
	if mood == "" {
		return domain.Track{}, fmt.Errorf("catalog: %s: no known mood prefix", base)
	}

	rest := strings.Split(name[len(mood)+1:], "_")
	if len(rest) < 4 {
		return domain.Track{}, fmt.Errorf("catalog: %s: want tempo, key, duration, description, source", base)
	}

	tempo, err := strconv.Atoi(strings.TrimSuffix(rest[0], "bpm"))
	if err != nil || !strings.HasSuffix(rest[0], "bpm") {
		return domain.Track{}, fmt.Errorf("catalog: %s: bad tempo token %q", base, rest[0])
	}

	duration, err := strconv.ParseFloat(strings.TrimSuffix(rest[2], "s"), 64)
	if err != nil || !strings.HasSuffix(rest[2], "s") {
		return domain.Track{}, fmt.Errorf("catalog: %s: bad duration token %q", base, rest[2])
	}

	track := domain.Track{
		ID:          name,
		Path:        path,
		Mood:        mood,
		TempoBPM:    tempo,
		Key:         rest[1],
		Duration:    duration,
		Description: strings.Join(rest[3:len(rest)-1], "_"),
		Source:      rest[len(rest)-1],
	}
	if err := track.Validate(); err != nil {
		return domain.Track{}, fmt.Errorf("catalog: %s: %w", base, err)
	}
	return track, nil
}

// Scanner walks a music directory and loads every parseable track into the
// store. Files that do not follow the convention are logged and skipped;
// ingest never fails the whole scan over one bad file.
type Scanner struct {
	store  ports.TrackCatalog
	logger *zap.Logger
}

// NewScanner constructs a Scanner.
func NewScanner(store ports.TrackCatalog, logger *zap.Logger) *Scanner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scanner{store: store, logger: logger}
}

// Scan ingests dir recursively and returns the tracks it stored.
func (s *Scanner) Scan(ctx context.Context, dir string) ([]domain.Track, error) {
	var ingested []domain.Track
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !audioExtensions[strings.ToLower(filepath.Ext(path))] {
			return nil
		}
		track, perr := ParseFilename(path)
		if perr != nil {
			s.logger.Warn("skipping unparseable catalog file", zap.String("file", path), zap.Error(perr))
			return nil
		}
		if serr := s.store.Save(ctx, track); serr != nil {
			return fmt.Errorf("catalog: store %s: %w", track.ID, serr)
		}
		ingested = append(ingested, track)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("catalog: scan %s: %w", dir, err)
	}
	s.logger.Info("catalog scan complete", zap.String("dir", dir), zap.Int("tracks", len(ingested)))
	return ingested, nil
}
