package rest

import (
	"context"
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/kiin-labs/kiinmix/internal/core/domain"
	"github.com/kiin-labs/kiinmix/internal/core/services"
)

// fakeCatalog is an in-memory TrackCatalog for handler tests.
type fakeCatalog struct {
	tracks map[domain.Mood][]domain.Track
}

func (f *fakeCatalog) GetByID(_ context.Context, id string) (domain.Track, error) {
	for _, tracks := range f.tracks {
		for _, t := range tracks {
			if t.ID == id {
				return t, nil
			}
		}
	}
	return domain.Track{}, domain.ErrNotFound
}

func (f *fakeCatalog) TracksByMood(_ context.Context, mood domain.Mood) ([]domain.Track, error) {
	return f.tracks[mood], nil
}

func (f *fakeCatalog) All(_ context.Context) ([]domain.Track, error) {
	var out []domain.Track
	for _, tracks := range f.tracks {
		out = append(out, tracks...)
	}
	return out, nil
}

func (f *fakeCatalog) Save(_ context.Context, _ domain.Track) error { return nil }

func (f *fakeCatalog) UpdateTrackEnergy(_ context.Context, _ string, _ float64) error { return nil }

func newTestHandler(t *testing.T, tracks map[domain.Mood][]domain.Track) *Handler {
	t.Helper()
	catalog := &fakeCatalog{tracks: tracks}

	looper, err := services.NewLoopPlanner(services.DefaultFadeSettings())
	if err != nil {
		t.Fatalf("new planner: %v", err)
	}
	ducker, err := services.NewDuckingMixer(services.DefaultDuckTransitionSeconds)
	if err != nil {
		t.Fatalf("new mixer: %v", err)
	}
	selector := services.NewTrackSelector(catalog, 5, rand.NewSource(1))
	engine, err := services.NewEngine(services.NewMoodClassifier(), selector, looper, ducker, domain.DefaultProfiles(), nil)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return NewHandler(engine, catalog, nil, nil)
}

func reflectiveTracks() map[domain.Mood][]domain.Track {
	mood := domain.MoodReflectiveEmotional
	return map[domain.Mood][]domain.Track{
		mood: {
			{ID: "re1", Path: "re1.mp3", Mood: mood, TempoBPM: 60, Key: "Dm", Duration: 120},
			{ID: "re2", Path: "re2.mp3", Mood: mood, TempoBPM: 65, Key: "Am", Duration: 90},
			{ID: "re3", Path: "re3.mp3", Mood: mood, TempoBPM: 70, Key: "Em", Duration: 200},
		},
	}
}

func postJSON(h http.Handler, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHandler_HealthCheck(t *testing.T) {
	h := newTestHandler(t, nil)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d, want 200", rec.Code)
	}
}

func TestHandler_PlanMix(t *testing.T) {
	h := newTestHandler(t, reflectiveTracks())

	rec := postJSON(h, "/mix", `{
		"content_type": "confession",
		"target_duration": 300,
		"speech": [{"start": 5, "end": 10}, {"start": 12, "end": 15}]
	}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var plan domain.MixPlan
	if err := json.NewDecoder(rec.Body).Decode(&plan); err != nil {
		t.Fatalf("decode plan: %v", err)
	}
	if plan.Mood != domain.MoodReflectiveEmotional {
		t.Fatalf("plan mood %s, want reflective_emotional", plan.Mood)
	}
	if plan.Duration != 300 {
		t.Fatalf("plan duration %v, want 300", plan.Duration)
	}
	if len(plan.Segments) < 2 {
		t.Fatalf("expected a looped plan, got %d segments", len(plan.Segments))
	}
}

func TestHandler_PlanMix_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantCode   string
	}{
		{
			name:       "unknown content type",
			body:       `{"content_type": "celebratory", "target_duration": 120}`,
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   errCodeUnknownContentType,
		},
		{
			name:       "no matching track",
			body:       `{"content_type": "tips", "target_duration": 120}`,
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   errCodeNoMatchingTrack,
		},
		{
			name:       "invalid duration",
			body:       `{"content_type": "confession", "target_duration": 10}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   errCodeInvalidDuration,
		},
		{
			name:       "malformed speech timeline",
			body:       `{"content_type": "confession", "target_duration": 120, "speech": [{"start": 10, "end": 20}, {"start": 15, "end": 25}]}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   errCodeMalformedTimeline,
		},
		{
			name:       "missing content type",
			body:       `{"target_duration": 120}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "invalid body",
			body:       `{`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := newTestHandler(t, reflectiveTracks())
			rec := postJSON(h, "/mix", tc.body)
			if rec.Code != tc.wantStatus {
				t.Fatalf("status %d, want %d: %s", rec.Code, tc.wantStatus, rec.Body.String())
			}
			if tc.wantCode == "" {
				return
			}
			var resp errorResponse
			if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
				t.Fatalf("decode error body: %v", err)
			}
			if resp.Code != tc.wantCode {
				t.Fatalf("error code %q, want %q", resp.Code, tc.wantCode)
			}
		})
	}
}

func TestHandler_PlanMix_RequiresJSON(t *testing.T) {
	h := newTestHandler(t, reflectiveTracks())
	req := httptest.NewRequest(http.MethodPost, "/mix", strings.NewReader("content_type=confession"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnsupportedMediaType {
		t.Fatalf("status %d, want 415", rec.Code)
	}
}

func TestHandler_RenderMix_NotConfigured(t *testing.T) {
	h := newTestHandler(t, reflectiveTracks())
	rec := postJSON(h, "/mix/render", `{"content_type": "confession", "target_duration": 60}`)
	if rec.Code != http.StatusNotImplemented {
		t.Fatalf("status %d, want 501", rec.Code)
	}
}

func TestHandler_ListTracks(t *testing.T) {
	h := newTestHandler(t, reflectiveTracks())

	req := httptest.NewRequest(http.MethodGet, "/tracks?mood=reflective_emotional", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var out []trackResponse
	if err := json.NewDecoder(rec.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out) != 3 {
		t.Fatalf("got %d tracks, want 3", len(out))
	}

	req = httptest.NewRequest(http.MethodGet, "/tracks?mood=celebratory", nil)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status %d for unknown mood filter, want 400", rec.Code)
	}
}
