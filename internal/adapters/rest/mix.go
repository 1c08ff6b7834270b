package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/kiin-labs/kiinmix/internal/core/domain"
	"github.com/kiin-labs/kiinmix/internal/core/services"
)

// Stable error codes for machine consumers of the API.
const (
	errCodeUnknownContentType = "UNKNOWN_CONTENT_TYPE"
	errCodeNoMatchingTrack    = "NO_MATCHING_TRACK"
	errCodeInvalidDuration    = "INVALID_DURATION"
	errCodeMalformedTimeline  = "MALFORMED_SPEECH_TIMELINE"
)

// mixRequest defines what the content pipeline sends us.
type mixRequest struct {
	ContentType    string                `json:"content_type"`
	MoodHint       string                `json:"mood_hint,omitempty"`
	TargetDuration float64               `json:"target_duration"`
	Speech         domain.SpeechTimeline `json:"speech,omitempty"`
}

func (req mixRequest) toService() services.MixRequest {
	return services.MixRequest{
		ContentType:    req.ContentType,
		MoodHint:       req.MoodHint,
		TargetDuration: req.TargetDuration,
		Speech:         req.Speech,
	}
}

// PlanMix handles POST /mix
func (h *Handler) PlanMix(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeMixRequest(w, r)
	if !ok {
		return
	}

	plan, err := h.engine.PlanMix(r.Context(), req.toService())
	if err != nil {
		h.writeMixError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

// RenderMix handles POST /mix/render: plans the mix and streams the mixed
// audio as WAV in one request.
func (h *Handler) RenderMix(w http.ResponseWriter, r *http.Request) {
	if h.renderer == nil {
		writeError(w, http.StatusNotImplemented, "renderer not configured")
		return
	}

	req, ok := h.decodeMixRequest(w, r)
	if !ok {
		return
	}

	plan, err := h.engine.PlanMix(r.Context(), req.toService())
	if err != nil {
		h.writeMixError(w, err)
		return
	}

	w.Header().Set("Content-Type", "audio/wav")
	w.Header().Set("X-Mix-Plan-ID", plan.ID)
	if err := h.renderer.RenderWAV(r.Context(), plan, w); err != nil {
		// headers already sent; log and drop the connection
		h.logger.Error("render failed mid-stream", zap.String("plan", plan.ID), zap.Error(err))
	}
}

func (h *Handler) decodeMixRequest(w http.ResponseWriter, r *http.Request) (mixRequest, bool) {
	if !isJSONContentType(r) {
		writeError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return mixRequest{}, false
	}
	var req mixRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return mixRequest{}, false
	}
	if req.ContentType == "" {
		writeError(w, http.StatusBadRequest, "content_type is required")
		return mixRequest{}, false
	}
	return req, true
}

func (h *Handler) writeMixError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidDuration):
		writeErrorWithCode(w, http.StatusBadRequest, err.Error(), errCodeInvalidDuration)
	case errors.Is(err, domain.ErrMalformedTimeline):
		writeErrorWithCode(w, http.StatusBadRequest, err.Error(), errCodeMalformedTimeline)
	case errors.Is(err, domain.ErrUnknownContentType):
		writeErrorWithCode(w, http.StatusUnprocessableEntity, err.Error(), errCodeUnknownContentType)
	case errors.Is(err, domain.ErrNoMatchingTrack):
		writeErrorWithCode(w, http.StatusUnprocessableEntity, err.Error(), errCodeNoMatchingTrack)
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
