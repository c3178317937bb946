package middleware

import (
	"encoding/json"
	"net/http"
	"runtime/debug"

	"github.com/arcians/profile-registry/internal/api/types"
	appErr "github.com/arcians/profile-registry/pkg/errors"
	"github.com/arcians/profile-registry/pkg/logger"
	"go.uber.org/zap"
)

// Recovery logs panics and answers 500 with a generic error body.
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				logger.L().Error("panic recovered",
					zap.String("id", GetRequestID(r.Context())),
					zap.Any("panic", rec),
					zap.ByteString("stack", debug.Stack()),
				)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				_ = json.NewEncoder(w).Encode(types.ErrorResponse{
					Detail: http.StatusText(http.StatusInternalServerError),
					Code:   string(appErr.CodeInternal),
				})
			}
		}()
		next.ServeHTTP(w, r)
	})
}
