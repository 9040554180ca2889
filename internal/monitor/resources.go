package monitor

import (
	"runtime"
	"time"
)

// ResourceUsage is a point-in-time view of process resources, reported
// by the health endpoint.
type ResourceUsage struct {
	HeapAllocBytes uint64  `json:"heap_alloc_bytes"`
	HeapSysBytes   uint64  `json:"heap_sys_bytes"`
	NumGoroutine   int     `json:"num_goroutine"`
	NumGC          uint32  `json:"num_gc"`
	UptimeSeconds  float64 `json:"uptime_seconds"`
}

// ResourceMonitor samples process-level resource usage.
type ResourceMonitor struct {
	startedAt time.Time
}

func NewResourceMonitor() *ResourceMonitor {
	return &ResourceMonitor{startedAt: time.Now()}
}

func (m *ResourceMonitor) Usage() ResourceUsage {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	return ResourceUsage{
		HeapAllocBytes: ms.HeapAlloc,
		HeapSysBytes:   ms.HeapSys,
		NumGoroutine:   runtime.NumGoroutine(),
		NumGC:          ms.NumGC,
		UptimeSeconds:  time.Since(m.startedAt).Seconds(),
	}
}
