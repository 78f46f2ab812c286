package handlers

import (
	"net/http"

	"go.uber.org/zap"
)

type cpuResp struct {
	CPU float64 `json:"cpu"`
}

func CPUHandler(s MetricSampler, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pct, err := s.CPU(r.Context())
		writeJSON(w, log, r, cpuResp{CPU: pct}, err)
	}
}
