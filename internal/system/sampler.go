package system

import (
	"context"
	"errors"
	"runtime"
	"sync"
	"time"
)

const sampleTimeout = 3 * time.Second

type Usage struct {
	Percent float64 `json:"percent"`
	Used    float64 `json:"used"`
	Total   float64 `json:"total"`
}

// Snapshot is one fully computed set of readings for a sampling tick.
type Snapshot struct {
	CPUPercent float64 `json:"cpu"`
	Memory     Usage   `json:"mem"`
	Disk       Usage   `json:"disk"`
}

// Sampler turns raw host counters into normalized snapshots. It holds no
// mutable state and may be used from several goroutines.
type Sampler struct {
	src      Source
	goos     string
	diskPath string
}

type Option func(*Sampler)

// WithSource replaces the counter source, e.g. with a simulated host.
func WithSource(src Source) Option {
	return func(s *Sampler) { s.src = src }
}

// WithGOOS sets the host OS identifier that drives the disk divisor.
func WithGOOS(goos string) Option {
	return func(s *Sampler) { s.goos = goos }
}

// WithDiskPath sets the filesystem whose usage is reported. Defaults to "/".
func WithDiskPath(path string) Option {
	return func(s *Sampler) {
		if path != "" {
			s.diskPath = path
		}
	}
}

func NewSampler(opts ...Option) *Sampler {
	s := &Sampler{
		src:      HostSource{},
		goos:     runtime.GOOS,
		diskPath: "/",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Sampler) GOOS() string     { return s.goos }
func (s *Sampler) DiskPath() string { return s.diskPath }

// CPU returns utilization since the previous CPU reading in this process.
// The first reading after start has no meaningful baseline.
func (s *Sampler) CPU(ctx context.Context) (float64, error) {
	percent, err := s.src.CPUPercent(ctx)
	if err != nil {
		return 0, unavailable("cpu", err)
	}
	if len(percent) == 0 {
		return 0, unavailable("cpu", errors.New("no cpu counters reported"))
	}
	return Round(percent[0], 1), nil
}

func (s *Sampler) Memory(ctx context.Context) (Usage, error) {
	vm, err := s.src.VirtualMemory(ctx)
	if err != nil {
		return Usage{}, unavailable("memory", err)
	}
	if vm == nil {
		return Usage{}, unavailable("memory", errors.New("no memory counters reported"))
	}
	return MemoryUsage(vm), nil
}

func (s *Sampler) Disk(ctx context.Context) (Usage, error) {
	u, err := s.src.DiskUsage(ctx, s.diskPath)
	if err != nil {
		return Usage{}, unavailable("disk", err)
	}
	if u == nil {
		return Usage{}, unavailable("disk", errors.New("no usage reported for "+s.diskPath))
	}
	return DiskUsage(u.Total, u.Free, s.goos)
}

// Sample reads CPU, memory and disk. A failure of any of them fails the
// whole snapshot.
func (s *Sampler) Sample(ctx context.Context) (Snapshot, error) {
	ctx, cancel := WithTimeout(ctx, sampleTimeout)
	defer cancel()

	var (
		wg               sync.WaitGroup
		snap             Snapshot
		cErr, mErr, dErr error
	)

	wg.Add(3)
	go func() { defer wg.Done(); snap.CPUPercent, cErr = s.CPU(ctx) }()
	go func() { defer wg.Done(); snap.Memory, mErr = s.Memory(ctx) }()
	go func() { defer wg.Done(); snap.Disk, dErr = s.Disk(ctx) }()
	wg.Wait()

	if err := firstErr(cErr, mErr, dErr); err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}

func WithTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithTimeout(ctx, d)
}

func firstErr(errs ...error) error {
	for _, e := range errs {
		if e != nil {
			return e
		}
	}
	return nil
}
