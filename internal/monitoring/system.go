// Package monitoring collects host-level stats for the operations dashboard.
// Freezer rooms run on modest on-prem hardware; disk and memory pressure on
// the box is an early warning for the service itself.
package monitoring

import (
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"
)

type SystemStats struct {
	CPUPercent    float64 `json:"cpu_percent"`
	MemoryPercent float64 `json:"memory_percent"`
	MemoryUsedMB  uint64  `json:"memory_used_mb"`
	MemoryTotalMB uint64  `json:"memory_total_mb"`
	DiskPercent   float64 `json:"disk_percent"`
	DiskUsedGB    uint64  `json:"disk_used_gb"`
	DiskTotalGB   uint64  `json:"disk_total_gb"`
}

// Collect gathers a point-in-time snapshot. Failures of individual probes
// leave their fields zero rather than failing the whole snapshot.
func Collect() SystemStats {
	var stats SystemStats

	if percents, err := cpu.Percent(0, false); err == nil && len(percents) > 0 {
		stats.CPUPercent = percents[0]
	}

	if vm, err := mem.VirtualMemory(); err == nil {
		stats.MemoryPercent = vm.UsedPercent
		stats.MemoryUsedMB = vm.Used / 1024 / 1024
		stats.MemoryTotalMB = vm.Total / 1024 / 1024
	}

	if du, err := disk.Usage("/"); err == nil {
		stats.DiskPercent = du.UsedPercent
		stats.DiskUsedGB = du.Used / 1024 / 1024 / 1024
		stats.DiskTotalGB = du.Total / 1024 / 1024 / 1024
	}

	return stats
}
