package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MatBureau/sysmonitor/internal/config"
	"github.com/MatBureau/sysmonitor/internal/desktop"
	"github.com/MatBureau/sysmonitor/internal/logging"
	"github.com/MatBureau/sysmonitor/internal/system"
	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
)

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

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sampler := system.NewSampler(system.WithDiskPath(cfg.DiskPath))

	game := desktop.NewGame(sampler, func(err error) {
		log.Warn("dashboard tick skipped", zap.Error(err))
	})
	game.SetContext(ctx)
	if info, err := sampler.Host(ctx); err == nil {
		game.SetSubtitle(info.Hostname + " · " + info.Platform)
	} else {
		log.Debug("host info unavailable", zap.Error(err))
	}

	if err := game.Run(); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal("dashboard window", zap.Error(err))
	}
}
