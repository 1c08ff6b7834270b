// Package sqlite provides the SQLite-backed Track Metadata Store.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3" // Import the driver anonymously

	"github.com/kiin-labs/kiinmix/internal/core/domain"
)

// Adapter implements the TrackCatalog port for SQLite.
type Adapter struct {
	db *sql.DB
}

// NewAdapter creates a connection and runs the schema migration.
func NewAdapter(storagePath string) (*Adapter, error) {
	db, err := sql.Open("sqlite3", storagePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite db: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping sqlite db: %w", err)
	}

	adapter := &Adapter{db: db}
	if err := adapter.migrate(); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}
	return adapter, nil
}

// Close ensures the DB connection is closed gracefully.
func (a *Adapter) Close() error {
	return a.db.Close()
}

const trackColumns = `id, path, mood, tempo_bpm, musical_key, duration_s, IFNULL(energy, 0), description, source`

func (a *Adapter) GetByID(ctx context.Context, id string) (domain.Track, error) {
	row := a.db.QueryRowContext(ctx, "SELECT "+trackColumns+" FROM tracks WHERE id = ?", id)
	track, err := scanTrack(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return domain.Track{}, domain.ErrNotFound
		}
		return domain.Track{}, fmt.Errorf("failed to load track %s: %w", id, err)
	}
	return track, nil
}

// TracksByMood returns a mood's tracks in ingest order, which the selector
// treats as catalog order for deterministic tie-breaks.
func (a *Adapter) TracksByMood(ctx context.Context, mood domain.Mood) ([]domain.Track, error) {
	rows, err := a.db.QueryContext(ctx,
		"SELECT "+trackColumns+" FROM tracks WHERE mood = ? ORDER BY rowid ASC", string(mood))
	if err != nil {
		return nil, fmt.Errorf("failed to query tracks for mood %s: %w", mood, err)
	}
	defer rows.Close()
	return collectTracks(rows)
}

func (a *Adapter) All(ctx context.Context) ([]domain.Track, error) {
	rows, err := a.db.QueryContext(ctx, "SELECT "+trackColumns+" FROM tracks ORDER BY rowid ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to query tracks: %w", err)
	}
	defer rows.Close()
	return collectTracks(rows)
}

// Save upserts a track. Energy is preserved on conflict when the incoming
// value is zero so a re-scan does not wipe analyzed values.
func (a *Adapter) Save(ctx context.Context, t domain.Track) error {
	if err := t.Validate(); err != nil {
		return err
	}
	query := `
		INSERT INTO tracks (id, path, mood, tempo_bpm, musical_key, duration_s, energy, description, source)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			path=excluded.path,
			mood=excluded.mood,
			tempo_bpm=excluded.tempo_bpm,
			musical_key=excluded.musical_key,
			duration_s=excluded.duration_s,
			energy=CASE WHEN excluded.energy > 0 THEN excluded.energy ELSE tracks.energy END,
			description=excluded.description,
			source=excluded.source;
	`
	if _, err := a.db.ExecContext(ctx, query,
		t.ID, t.Path, string(t.Mood), t.TempoBPM, t.Key, t.Duration, t.Energy, t.Description, t.Source,
	); err != nil {
		return fmt.Errorf("failed to save track %s: %w", t.ID, err)
	}
	return nil
}

func (a *Adapter) UpdateTrackEnergy(ctx context.Context, id string, energy float64) error {
	res, err := a.db.ExecContext(ctx, "UPDATE tracks SET energy = ? WHERE id = ?", energy, id)
	if err != nil {
		return fmt.Errorf("failed to update energy for track %s: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update energy for track %s: %w", id, err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTrack(row rowScanner) (domain.Track, error) {
	var t domain.Track
	var mood string
	var description, source sql.NullString
	if err := row.Scan(
		&t.ID, &t.Path, &mood, &t.TempoBPM, &t.Key, &t.Duration, &t.Energy, &description, &source,
	); err != nil {
		return domain.Track{}, err
	}
	t.Mood = domain.Mood(mood)
	if description.Valid {
		t.Description = description.String
	}
	if source.Valid {
		t.Source = source.String
	}
	return t, nil
}

func collectTracks(rows *sql.Rows) ([]domain.Track, error) {
	var tracks []domain.Track
	for rows.Next() {
		t, err := scanTrack(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan track: %w", err)
		}
		tracks = append(tracks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tracks: %w", err)
	}
	return tracks, nil
}

func (a *Adapter) migrate() error {
	query := `
	CREATE TABLE IF NOT EXISTS tracks (
		id TEXT PRIMARY KEY,
		path TEXT NOT NULL,
		mood TEXT NOT NULL,
		tempo_bpm INTEGER NOT NULL,
		musical_key TEXT NOT NULL,
		duration_s REAL NOT NULL,
		energy REAL,
		description TEXT,
		source TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_tracks_mood ON tracks(mood);
	`
	if _, err := a.db.Exec(query); err != nil {
		return err
	}
	return nil
}
