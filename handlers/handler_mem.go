package handlers

import (
	"net/http"

	"go.uber.org/zap"
)

func MemHandler(s MetricSampler, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, err := s.Memory(r.Context())
		writeJSON(w, log, r, u, err)
	}
}
