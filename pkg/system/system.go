package system

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"runtime"
	"strconv"
	"strings"
	"syscall"
)

type Snapshot struct {
	MemoryUsage    string         `json:"memory_usage_system,omitempty"`
	DiskUsage      string         `json:"disk_usage,omitempty"` // filesystem holding the database
	GoroutineCount int            `json:"goroutine_count"`
	AppMemory      AppMemoryStats `json:"memory_app"`
}

type AppMemoryStats struct {
	CurrentAlloc string `json:"current_alloc"`
	TotalAlloc   string `json:"total_alloc"`
	SystemMem    string `json:"system_mem"`
	HeapInuse    string `json:"heap_inuse"`
	StackInuse   string `json:"stack_inuse"`
	GCCycles     uint32 `json:"gc_cycles"`
}

// Collect gathers runtime statistics. Host figures are Linux-only and left
// empty elsewhere or when unreadable.
func Collect(dataPath string) Snapshot {
	s := Snapshot{
		GoroutineCount: runtime.NumGoroutine(),
		AppMemory:      appMemoryStats(),
	}

	if runtime.GOOS != "linux" {
		return s
	}

	if f, err := os.Open("/proc/meminfo"); err == nil {
		if usage, err := parseMemInfo(f); err == nil {
			s.MemoryUsage = fmt.Sprintf("%.1f%%", usage)
		}
		f.Close()
	}

	if dataPath != "" {
		if usage, err := diskUsage(dataPath); err == nil {
			s.DiskUsage = fmt.Sprintf("%.1f%%", usage)
		}
	}
	return s
}

// parseMemInfo returns used memory as a percentage of MemTotal
func parseMemInfo(r io.Reader) (float64, error) {
	var memTotal, memAvailable uint64
	scanner := bufio.NewScanner(r)

	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 2 {
			continue
		}

		switch fields[0] {
		case "MemTotal:":
			memTotal, _ = strconv.ParseUint(fields[1], 10, 64)
		case "MemAvailable:":
			memAvailable, _ = strconv.ParseUint(fields[1], 10, 64)
		}

		if memTotal > 0 && memAvailable > 0 {
			break
		}
	}

	if memTotal == 0 {
		return 0, fmt.Errorf("cannot parse memory info")
	}

	return float64(memTotal-memAvailable) / float64(memTotal) * 100, nil
}

func diskUsage(path string) (float64, error) {
	var stat syscall.Statfs_t
	if err := syscall.Statfs(path, &stat); err != nil {
		return 0, err
	}

	total := stat.Blocks * uint64(stat.Bsize)
	free := stat.Bavail * uint64(stat.Bsize)
	if total == 0 {
		return 0, nil
	}
	return float64(total-free) / float64(total) * 100, nil
}

func appMemoryStats() AppMemoryStats {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	return AppMemoryStats{
		CurrentAlloc: FormatBytes(m.Alloc),
		TotalAlloc:   FormatBytes(m.TotalAlloc),
		SystemMem:    FormatBytes(m.Sys),
		HeapInuse:    FormatBytes(m.HeapInuse),
		StackInuse:   FormatBytes(m.StackInuse),
		GCCycles:     m.NumGC,
	}
}

// FormatBytes converts bytes to B, KB, MB or GB
func FormatBytes(bytes uint64) string {
	const (
		KB = 1024
		MB = KB * 1024
		GB = MB * 1024
	)

	switch {
	case bytes >= GB:
		return fmt.Sprintf("%.1fGB", float64(bytes)/GB)
	case bytes >= MB:
		return fmt.Sprintf("%.1fMB", float64(bytes)/MB)
	case bytes >= KB:
		return fmt.Sprintf("%.1fKB", float64(bytes)/KB)
	default:
		return fmt.Sprintf("%dB", bytes)
	}
}
