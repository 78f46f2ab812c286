package handlers

import (
	"net/http"

	"go.uber.org/zap"
)

func DiskHandler(s MetricSampler, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, err := s.Disk(r.Context())
		writeJSON(w, log, r, u, err)
	}
}
