// sysdash-top prints the dashboard to the terminal once a second.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MatBureau/sysmonitor/internal/config"
	"github.com/MatBureau/sysmonitor/internal/logging"
	"github.com/MatBureau/sysmonitor/internal/refresh"
	"github.com/MatBureau/sysmonitor/internal/system"
	"github.com/MatBureau/sysmonitor/internal/view"
	"github.com/logrusorgru/aurora"
	"go.uber.org/zap"
)

const clearScreen = "\x1b[H\x1b[2J"

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	noColor := flag.Bool("no-color", false, "disable colors")
	once := flag.Bool("once", false, "print one snapshot and exit")
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

	au := aurora.NewAurora(!*noColor)
	sampler := system.NewSampler(system.WithDiskPath(cfg.DiskPath))

	if *once {
		// the first CPU reading has no baseline; take it and discard it
		_, _ = sampler.CPU(context.Background())
		time.Sleep(250 * time.Millisecond)
		snap, err := sampler.Sample(context.Background())
		if err != nil {
			log.Fatal("sample", zap.Error(err))
		}
		if err := view.WriteConsole(os.Stdout, view.Build(snap), au); err != nil {
			log.Fatal("write", zap.Error(err))
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	loop := refresh.Start(ctx, time.Second, sampler.Sample, func(snap system.Snapshot, err error) {
		if err != nil {
			log.Warn("tick skipped", zap.Error(err))
			return
		}
		fmt.Fprint(os.Stdout, clearScreen)
		fmt.Fprintln(os.Stdout, au.Bold(au.Blue("System Dashboard")))
		fmt.Fprintln(os.Stdout)
		if err := view.WriteConsole(os.Stdout, view.Build(snap), au); err != nil {
			log.Warn("write", zap.Error(err))
		}
	})
	<-loop.Done()
}
