package handlers

import (
	"net/http"

	"go.uber.org/zap"
)

// MetricsHandler serves the full snapshot. Any failed reading fails the
// request; no partial snapshot is returned.
func MetricsHandler(s MetricSampler, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap, err := s.Sample(r.Context())
		writeJSON(w, log, r, snap, err)
	}
}
