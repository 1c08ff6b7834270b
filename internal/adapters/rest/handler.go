package rest

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/kiin-labs/kiinmix/internal/core/domain"
	"github.com/kiin-labs/kiinmix/internal/core/ports"
	"github.com/kiin-labs/kiinmix/internal/core/services"
)

// MixRenderer renders a finished plan to a WAV stream. Optional; without it
// the render endpoint reports 501.
type MixRenderer interface {
	RenderWAV(ctx context.Context, plan domain.MixPlan, w io.Writer) error
}

// Handler manages the HTTP interface for the mix engine.
type Handler struct {
	engine   *services.Engine
	catalog  ports.TrackCatalog
	renderer MixRenderer
	logger   *zap.Logger
	router   *http.ServeMux // Standard library router
}

// NewHandler initializes the HTTP adapter and sets up routes.
func NewHandler(engine *services.Engine, catalog ports.TrackCatalog, renderer MixRenderer, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	h := &Handler{
		engine:   engine,
		catalog:  catalog,
		renderer: renderer,
		logger:   logger,
		router:   http.NewServeMux(),
	}
	h.routes()
	return h
}

// ServeHTTP satisfies the http.Handler interface.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *Handler) routes() {
	h.router.HandleFunc("GET /health", h.HealthCheck)
	h.router.HandleFunc("POST /mix", h.PlanMix)
	h.router.HandleFunc("POST /mix/render", h.RenderMix)
	h.router.HandleFunc("GET /tracks", h.ListTracks)
}

// HealthCheck is a simple endpoint to verify the API is running.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
