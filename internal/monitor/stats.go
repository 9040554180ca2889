package monitor

import (
	"sort"
	"sync"
	"time"
)

type sample struct {
	timestamp  time.Time
	durationMs int64
}

// StatsSnapshot is a point-in-time aggregate of document processing.
// Latency fields cover the rolling window only; the document counters
// span the process lifetime.
type StatsSnapshot struct {
	Count     int     `json:"count"`
	MinMs     int64   `json:"min_ms"`
	MaxMs     int64   `json:"max_ms"`
	AvgMs     float64 `json:"avg_ms"`
	P50Ms     float64 `json:"p50_ms"`
	P95Ms     float64 `json:"p95_ms"`
	P99Ms     float64 `json:"p99_ms"`
	Processed int64   `json:"documents_processed"`
	Failed    int64   `json:"documents_failed"`
}

// ProcessingStats tracks per-document processing latencies within a
// rolling window, plus lifetime processed/failed counts.
type ProcessingStats struct {
	mu        sync.Mutex
	samples   []sample
	maxAge    time.Duration
	processed int64
	failed    int64
}

func NewProcessingStats(maxAge time.Duration) *ProcessingStats {
	if maxAge <= 0 {
		maxAge = time.Hour
	}
	return &ProcessingStats{
		samples: make([]sample, 0, 256),
		maxAge:  maxAge,
	}
}

// Record adds one document's processing latency. failed marks documents
// whose extraction ended in a soft failure; they still count as a
// latency sample.
func (s *ProcessingStats) Record(durationMs int64, failed bool) {
	if durationMs < 0 {
		durationMs = 0
	}
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.processed++
	if failed {
		s.failed++
	}
	s.pruneLocked(now)
	s.samples = append(s.samples, sample{
		timestamp:  now,
		durationMs: durationMs,
	})
}

func (s *ProcessingStats) Snapshot() StatsSnapshot {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneLocked(now)
	snap := StatsSnapshot{
		Processed: s.processed,
		Failed:    s.failed,
	}
	if len(s.samples) == 0 {
		return snap
	}

	values := make([]int64, 0, len(s.samples))
	var sum int64
	for _, sm := range s.samples {
		values = append(values, sm.durationMs)
		sum += sm.durationMs
	}
	sort.Slice(values, func(i, j int) bool { return values[i] < values[j] })

	snap.Count = len(values)
	snap.MinMs = values[0]
	snap.MaxMs = values[len(values)-1]
	snap.AvgMs = float64(sum) / float64(len(values))
	snap.P50Ms = percentile(values, 50)
	snap.P95Ms = percentile(values, 95)
	snap.P99Ms = percentile(values, 99)
	return snap
}

// pruneLocked drops expired samples. Samples arrive in timestamp order,
// so only a leading run can be stale.
func (s *ProcessingStats) pruneLocked(now time.Time) {
	cutoff := now.Add(-s.maxAge)
	stale := 0
	for stale < len(s.samples) && s.samples[stale].timestamp.Before(cutoff) {
		stale++
	}
	if stale > 0 {
		s.samples = append(s.samples[:0], s.samples[stale:]...)
	}
}

// percentile interpolates linearly between the two nearest ranks.
func percentile(sortedValues []int64, pct float64) float64 {
	if len(sortedValues) == 0 {
		return 0
	}
	if pct <= 0 {
		return float64(sortedValues[0])
	}
	if pct >= 100 {
		return float64(sortedValues[len(sortedValues)-1])
	}

	index := (float64(len(sortedValues)-1) * pct) / 100.0
	lower := int(index)
	upper := lower + 1
	if upper >= len(sortedValues) {
		return float64(sortedValues[lower])
	}
	weight := index - float64(lower)
	lo := float64(sortedValues[lower])
	hi := float64(sortedValues[upper])
	return lo + ((hi - lo) * weight)
}
