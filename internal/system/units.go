package system

import (
	"errors"
	"strconv"

	"github.com/shirou/gopsutil/v3/mem"
)

const (
	// GiB is the binary gigabyte used for memory on every OS and for disks
	// outside macOS.
	GiB = 1 << 30
	// GB is the decimal gigabyte Finder and System Settings use for disks.
	GB = 1_000_000_000
)

// DiskDivisor returns the bytes-per-gigabyte convention for disk figures on
// the host identified by goos (a runtime.GOOS value).
func DiskDivisor(goos string) float64 {
	if goos == "darwin" {
		return GB
	}
	return GiB
}

// Round rounds v to the given number of decimal places. The exact binary value
// is rounded, with exact ties going to the even digit, so 2.675 gives 2.67.
func Round(v float64, places int) float64 {
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', places, 64), 64)
	if err != nil {
		return v
	}
	return r
}

// MemoryUsage converts virtual memory counters. The percent is the one the OS
// reports; sizes are always binary gigabytes.
func MemoryUsage(vm *mem.VirtualMemoryStat) Usage {
	return Usage{
		Percent: Round(vm.UsedPercent, 1),
		Used:    Round(float64(vm.Used)/GiB, 2),
		Total:   Round(float64(vm.Total)/GiB, 2),
	}
}

// DiskUsage converts filesystem counters. Used space is total minus free,
// not the filesystem's own used counter, which disagrees on APFS containers
// and shared volumes.
func DiskUsage(total, free uint64, goos string) (Usage, error) {
	if total == 0 {
		return Usage{}, unavailable("disk", errors.New("filesystem reports zero capacity"))
	}
	divisor := DiskDivisor(goos)
	totalGB := float64(total) / divisor
	freeGB := float64(free) / divisor
	usedGB := totalGB - freeGB

	return Usage{
		Percent: Round(usedGB/totalGB*100, 1),
		Used:    Round(usedGB, 2),
		Total:   Round(totalGB, 2),
	}, nil
}
