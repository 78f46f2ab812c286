package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/MatBureau/sysmonitor/internal/system"
	"go.uber.org/zap"
)

// MetricSampler is what the HTTP front end needs from the sampler.
type MetricSampler interface {
	Sample(ctx context.Context) (system.Snapshot, error)
	CPU(ctx context.Context) (float64, error)
	Memory(ctx context.Context) (system.Usage, error)
	Disk(ctx context.Context) (system.Usage, error)
	Host(ctx context.Context) (*system.HostInfo, error)
}

type errorResp struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, log *zap.Logger, r *http.Request, v any, err error) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, system.ErrUnavailableMetric) {
			status = http.StatusServiceUnavailable
		}
		log.Warn("request failed",
			zap.String("path", r.URL.Path),
			zap.Int("status", status),
			zap.Error(err),
		)
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(errorResp{Error: err.Error()})
		return
	}
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(v)
}
