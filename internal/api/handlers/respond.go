package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/arcians/profile-registry/internal/api/types"
	"github.com/arcians/profile-registry/pkg/logger"
	"go.uber.org/zap"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.L().Warn("encode response failed", zap.Error(err))
	}
}

// writeError is the single exit for failures: the status comes from the
// error's code, never from the calling handler.
func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, types.StatusFor(err), types.FromAppError(err))
}
