package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/arcians/profile-registry/internal/api/types"
)

// Greeting is returned by the API root.
const Greeting = "Profile Generator API"

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	store Pinger
}

func NewHealthHandler(store Pinger) *HealthHandler { return &HealthHandler{store: store} }

// Root godoc
// @Summary  API greeting
// @Tags     meta
// @Produce  json
// @Success  200 {object} types.MessageResponse
// @Router   / [get]
func (h *HealthHandler) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, types.MessageResponse{Message: Greeting})
}

func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, types.StatusResponse{Status: "ok"})
}

// Readiness answers 503 while the store cannot be pinged.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	if err := h.store.Ping(ctx); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, types.StatusResponse{Status: "ready"})
}
