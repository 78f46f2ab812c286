// Package view turns snapshots into what the dashboards display. It never
// samples; callers hand it a finished snapshot.
package view

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/MatBureau/sysmonitor/internal/system"
)

// CPUWarnThreshold is the CPU percent above which the CPU meter is flagged.
const CPUWarnThreshold = 80.0

type Kind int

const (
	KindCPU Kind = iota
	KindMemory
	KindStorage
)

type Meter struct {
	Kind    Kind
	Title   string
	Percent float64
	// Label is the percent as shown next to the bar, e.g. "12.5%".
	Label string
	// Caption is "X GB used / Y GB total"; empty for CPU.
	Caption string
	Warning bool
}

type Dashboard struct {
	CPU     Meter
	Memory  Meter
	Storage Meter
}

func (d Dashboard) Meters() []Meter {
	return []Meter{d.CPU, d.Memory, d.Storage}
}

func Build(s system.Snapshot) Dashboard {
	return Dashboard{
		CPU: Meter{
			Kind:    KindCPU,
			Title:   "CPU Usage",
			Percent: s.CPUPercent,
			Label:   percentLabel(s.CPUPercent),
			Warning: s.CPUPercent > CPUWarnThreshold,
		},
		Memory:  usageMeter(KindMemory, "Memory Usage", s.Memory),
		Storage: usageMeter(KindStorage, "Storage Usage", s.Disk),
	}
}

func usageMeter(kind Kind, title string, u system.Usage) Meter {
	return Meter{
		Kind:    kind,
		Title:   title,
		Percent: u.Percent,
		Label:   percentLabel(u.Percent),
		Caption: fmt.Sprintf("%s GB used / %s GB total", Number(u.Used), Number(u.Total)),
	}
}

func percentLabel(v float64) string {
	return Number(v) + "%"
}

// Number formats v with the fewest digits that round-trip, keeping a
// trailing ".0" on whole numbers (16 -> "16.0").
func Number(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
