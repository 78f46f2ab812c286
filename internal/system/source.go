package system

import (
	"context"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
)

// Source reads raw host counters.
type Source interface {
	CPUPercent(ctx context.Context) ([]float64, error)
	VirtualMemory(ctx context.Context) (*mem.VirtualMemoryStat, error)
	DiskUsage(ctx context.Context, path string) (*disk.UsageStat, error)
	HostInfo(ctx context.Context) (*host.InfoStat, error)
}

// HostSource reads counters of the machine the process runs on.
type HostSource struct{}

func (HostSource) CPUPercent(ctx context.Context) ([]float64, error) {
	// interval=0: compared against the previous call, never blocks
	return cpu.PercentWithContext(ctx, 0, false)
}

func (HostSource) VirtualMemory(ctx context.Context) (*mem.VirtualMemoryStat, error) {
	return mem.VirtualMemoryWithContext(ctx)
}

func (HostSource) DiskUsage(ctx context.Context, path string) (*disk.UsageStat, error) {
	return disk.UsageWithContext(ctx, path)
}

func (HostSource) HostInfo(ctx context.Context) (*host.InfoStat, error) {
	return host.InfoWithContext(ctx)
}
