// Package sysinfo samples host and process resource usage.
package sysinfo

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/mem"
	"github.com/shirou/gopsutil/v4/process"
)

// Snapshot is one resource usage sample
type Snapshot struct {
	MemoryPercent    float64 `json:"memory_percent"`
	MemoryUsedBytes  uint64  `json:"memory_used_bytes"`
	MemoryTotalBytes uint64  `json:"memory_total_bytes"`
	DiskPercent      float64 `json:"disk_percent"`
	DiskFreeBytes    uint64  `json:"disk_free_bytes"`
	DiskTotalBytes   uint64  `json:"disk_total_bytes"`
	CPUPercent       float64 `json:"cpu_percent"`
	ProcessRSSBytes  uint64  `json:"process_rss_bytes"`
	Goroutines       int     `json:"goroutines"`
}

// Sampler produces resource snapshots
type Sampler interface {
	Sample(ctx context.Context) (*Snapshot, error)
}

// HostSampler reads usage from the operating system
type HostSampler struct {
	diskPath string
}

// NewHostSampler samples disk usage of the filesystem holding diskPath
func NewHostSampler(diskPath string) *HostSampler {
	if diskPath == "" {
		diskPath = "/"
	}
	return &HostSampler{diskPath: diskPath}
}

// Sample fails only when memory or disk cannot be read; CPU and process
// figures are best effort.
func (s *HostSampler) Sample(ctx context.Context) (*Snapshot, error) {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read memory usage: %w", err)
	}

	du, err := disk.UsageWithContext(ctx, s.diskPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read disk usage: %w", err)
	}

	snap := &Snapshot{
		MemoryPercent:    vm.UsedPercent,
		MemoryUsedBytes:  vm.Used,
		MemoryTotalBytes: vm.Total,
		DiskPercent:      du.UsedPercent,
		DiskFreeBytes:    du.Free,
		DiskTotalBytes:   du.Total,
		Goroutines:       runtime.NumGoroutine(),
	}

	if percents, err := cpu.PercentWithContext(ctx, 0, false); err == nil && len(percents) > 0 {
		snap.CPUPercent = percents[0]
	}

	if proc, err := process.NewProcessWithContext(ctx, int32(os.Getpid())); err == nil {
		if info, err := proc.MemoryInfoWithContext(ctx); err == nil {
			snap.ProcessRSSBytes = info.RSS
		}
	}

	return snap, nil
}

// TotalMemory returns installed memory in bytes, or 0 when unknown
func TotalMemory(ctx context.Context) uint64 {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return 0
	}
	return vm.Total
}
