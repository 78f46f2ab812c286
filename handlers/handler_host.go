package handlers

import (
	"net/http"

	"go.uber.org/zap"
)

func HostHandler(s MetricSampler, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		info, err := s.Host(r.Context())
		writeJSON(w, log, r, info, err)
	}
}
