// Package diag reports lightweight process diagnostics for the health
// endpoint.
package diag

import (
	"os"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v3/process"
)

var startTime = time.Now()

// Stats is one point-in-time snapshot of the running process
type Stats struct {
	PID           int32   `json:"pid"`
	UptimeSeconds float64 `json:"uptime_seconds"`
	Goroutines    int     `json:"goroutines"`
	CPUPercent    float64 `json:"cpu_percent,omitempty"`
	MemoryRSS     uint64  `json:"memory_rss_bytes,omitempty"`
}

// Snapshot collects current process stats. CPU and memory readings are
// best-effort; a failure leaves the fields zero rather than failing the
// health check.
func Snapshot() Stats {
	stats := Stats{
		PID:           int32(os.Getpid()),
		UptimeSeconds: time.Since(startTime).Seconds(),
		Goroutines:    runtime.NumGoroutine(),
	}

	proc, err := process.NewProcess(stats.PID)
	if err != nil {
		return stats
	}
	if cpu, err := proc.CPUPercent(); err == nil {
		stats.CPUPercent = cpu
	}
	if mem, err := proc.MemoryInfo(); err == nil && mem != nil {
		stats.MemoryRSS = mem.RSS
	}
	return stats
}
