package main

import (
	"context"
	"embed"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MatBureau/sysmonitor/handlers"
	"github.com/MatBureau/sysmonitor/internal/config"
	"github.com/MatBureau/sysmonitor/internal/logging"
	"github.com/MatBureau/sysmonitor/internal/refresh"
	"github.com/MatBureau/sysmonitor/internal/stream"
	"github.com/MatBureau/sysmonitor/internal/system"
	"go.uber.org/zap"
)

//go:embed web/*
var webFS embed.FS

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := run(cfg, log); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sampler := system.NewSampler(system.WithDiskPath(cfg.DiskPath))

	// sampling for the stream runs only while it has subscribers
	var hub *stream.Hub
	hub = stream.NewHub(log, func(ctx context.Context) *refresh.Loop {
		return refresh.Start(ctx, cfg.StreamInterval, sampler.Sample, func(snap system.Snapshot, err error) {
			if err != nil {
				log.Warn("stream tick skipped", zap.Error(err))
				return
			}
			hub.Publish(snap)
		})
	})
	go hub.Run(ctx)

	mux := http.NewServeMux()

	// --- API ---
	mux.HandleFunc("GET /api/metrics", handlers.MetricsHandler(sampler, log))
	mux.HandleFunc("GET /api/cpu", handlers.CPUHandler(sampler, log))
	mux.HandleFunc("GET /api/mem", handlers.MemHandler(sampler, log))
	mux.HandleFunc("GET /api/disk", handlers.DiskHandler(sampler, log))
	mux.HandleFunc("GET /api/host", handlers.HostHandler(sampler, log))
	mux.HandleFunc("GET /api/stream", hub.Serve)

	// --- Static UI: web/ is mounted at the root ---
	sub, err := fs.Sub(webFS, "web")
	if err != nil {
		return err
	}
	mux.Handle("GET /", http.FileServer(http.FS(sub)))

	srv := &http.Server{
		Addr:         cfg.Listen,
		Handler:      handlers.LogMiddleware(log, mux),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("serving dashboard",
			zap.String("addr", cfg.Listen),
			zap.String("disk_path", sampler.DiskPath()),
			zap.String("goos", sampler.GOOS()),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
