package system

import "context"

type HostInfo struct {
	Hostname        string `json:"hostname"`
	OS              string `json:"os"`
	Platform        string `json:"platform"`
	PlatformVersion string `json:"platform_version"`
	KernelArch      string `json:"kernel_arch"`
	Uptime          uint64 `json:"uptime"`
}

// Host describes the machine being sampled.
func (s *Sampler) Host(ctx context.Context) (*HostInfo, error) {
	info, err := s.src.HostInfo(ctx)
	if err != nil {
		return nil, unavailable("host", err)
	}
	return &HostInfo{
		Hostname:        info.Hostname,
		OS:              info.OS,
		Platform:        info.Platform,
		PlatformVersion: info.PlatformVersion,
		KernelArch:      info.KernelArch,
		Uptime:          info.Uptime,
	}, nil
}
