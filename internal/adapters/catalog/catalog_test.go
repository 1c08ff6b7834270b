package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/kiin-labs/kiinmix/internal/core/domain"
)

func TestParseFilename(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		want     domain.Track
		wantErr  bool
	}{
		{
			name:     "standard name",
			filename: "supportive_gentle_72bpm_Cmaj_184s_warmpiano_artlist.mp3",
			want: domain.Track{
				ID:          "supportive_gentle_72bpm_Cmaj_184s_warmpiano_artlist",
				Mood:        domain.MoodSupportiveGentle,
				TempoBPM:    72,
				Key:         "Cmaj",
				Duration:    184,
				Description: "warmpiano",
				Source:      "artlist",
			},
		},
		{
			name:     "description with underscores",
			filename: "hopeful_uplifting_100bpm_Gmaj_95s_bright_morning_keys_epidemic.mp3",
			want: domain.Track{
				ID:          "hopeful_uplifting_100bpm_Gmaj_95s_bright_morning_keys_epidemic",
				Mood:        domain.MoodHopefulUplifting,
				TempoBPM:    100,
				Key:         "Gmaj",
				Duration:    95,
				Description: "bright_morning_keys",
				Source:      "epidemic",
			},
		},
		{
			name:     "wav extension",
			filename: "energetic_motivating_120bpm_Amaj_60s_drums_artlist.wav",
			want: domain.Track{
				ID:          "energetic_motivating_120bpm_Amaj_60s_drums_artlist",
				Mood:        domain.MoodEnergeticMotivating,
				TempoBPM:    120,
				Key:         "Amaj",
				Duration:    60,
				Description: "drums",
				Source:      "artlist",
			},
		},
		{
			name:     "unknown mood prefix",
			filename: "celebratory_100bpm_Cmaj_90s_horns_artlist.mp3",
			wantErr:  true,
		},
		{
			name:     "bad tempo token",
			filename: "supportive_gentle_fastbpm_Cmaj_90s_piano_artlist.mp3",
			wantErr:  true,
		},
		{
			name:     "missing duration suffix",
			filename: "supportive_gentle_72bpm_Cmaj_90_piano_artlist.mp3",
			wantErr:  true,
		},
		{
			name:     "too few tokens",
			filename: "supportive_gentle_72bpm_Cmaj.mp3",
			wantErr:  true,
		},
		{
			name:     "duration below minimum playable length",
			filename: "supportive_gentle_72bpm_Cmaj_20s_piano_artlist.mp3",
			wantErr:  true,
		},
		{
			name:     "unsupported extension",
			filename: "supportive_gentle_72bpm_Cmaj_90s_piano_artlist.txt",
			wantErr:  true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseFilename(tc.filename)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %+v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			tc.want.Path = tc.filename
			if got != tc.want {
				t.Fatalf("got %+v\nwant %+v", got, tc.want)
			}
		})
	}
}

// fakeStore records saves for scanner tests.
type fakeStore struct {
	saved []domain.Track
}

func (f *fakeStore) GetByID(_ context.Context, id string) (domain.Track, error) {
	return domain.Track{}, domain.ErrNotFound
}

func (f *fakeStore) TracksByMood(_ context.Context, _ domain.Mood) ([]domain.Track, error) {
	return nil, nil
}

func (f *fakeStore) All(_ context.Context) ([]domain.Track, error) { return f.saved, nil }

func (f *fakeStore) Save(_ context.Context, t domain.Track) error {
	f.saved = append(f.saved, t)
	return nil
}

func (f *fakeStore) UpdateTrackEnergy(_ context.Context, _ string, _ float64) error { return nil }

func TestScanner_Scan(t *testing.T) {
	dir := t.TempDir()
	files := []string{
		"supportive_gentle_72bpm_Cmaj_184s_warmpiano_artlist.mp3",
		"reflective_emotional_60bpm_Dm_120s_strings_epidemic.mp3",
		"not_a_catalog_file.mp3", // skipped, logged
		"notes.txt",              // ignored entirely
	}
	for _, name := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}

	store := &fakeStore{}
	scanner := NewScanner(store, nil)

	ingested, err := scanner.Scan(context.Background(), dir)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(ingested) != 2 {
		t.Fatalf("ingested %d tracks, want 2: %+v", len(ingested), ingested)
	}
	if len(store.saved) != 2 {
		t.Fatalf("stored %d tracks, want 2", len(store.saved))
	}
}
