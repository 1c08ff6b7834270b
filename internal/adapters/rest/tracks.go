package rest

import (
	"net/http"

	"github.com/kiin-labs/kiinmix/internal/core/domain"
)

type trackResponse struct {
	ID       string  `json:"id"`
	Mood     string  `json:"mood"`
	TempoBPM int     `json:"tempo_bpm"`
	Key      string  `json:"key"`
	Duration float64 `json:"duration"`
	Energy   float64 `json:"energy"`
	Source   string  `json:"source"`
}

// ListTracks handles GET /tracks with an optional ?mood= filter.
func (h *Handler) ListTracks(w http.ResponseWriter, r *http.Request) {
	var tracks []domain.Track
	var err error

	if moodParam := r.URL.Query().Get("mood"); moodParam != "" {
		mood, perr := domain.ParseMood(moodParam)
		if perr != nil {
			writeError(w, http.StatusBadRequest, perr.Error())
			return
		}
		tracks, err = h.catalog.TracksByMood(r.Context(), mood)
	} else {
		tracks, err = h.catalog.All(r.Context())
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	out := make([]trackResponse, 0, len(tracks))
	for _, t := range tracks {
		out = append(out, trackResponse{
			ID:       t.ID,
			Mood:     string(t.Mood),
			TempoBPM: t.TempoBPM,
			Key:      t.Key,
			Duration: t.Duration,
			Energy:   t.Energy,
			Source:   t.Source,
		})
	}
	writeJSON(w, http.StatusOK, out)
}
