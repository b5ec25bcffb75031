package metrics

import (
	"sync"
	"sync/atomic"
	"time"
)

// Metrics holds engine counters
type Metrics struct {
	startTime time.Time

	// Playlist admission
	songsAdded        uint64
	rejectedBlocked   uint64
	rejectedDuplicate uint64

	// Edits
	undos            uint64
	shuffles         uint64
	shuffleFallbacks uint64

	// Playback
	playsTotal uint64
	skipsTotal uint64

	// Recommendation tracking
	mu                sync.RWMutex
	recommendCalls    uint64
	recommendedTotal  uint64
	recommendDuration time.Duration
}

// Global metrics instance
var global = New()

// Get returns the process-wide metrics instance
func Get() *Metrics {
	return global
}

// New creates an independent metrics instance
func New() *Metrics {
	return &Metrics{startTime: time.Now()}
}

// RecordAdd records a song admitted to a playlist
func (m *Metrics) RecordAdd() {
	atomic.AddUint64(&m.songsAdded, 1)
}

// RecordBlocked records an add rejected by the artist blocklist
func (m *Metrics) RecordBlocked() {
	atomic.AddUint64(&m.rejectedBlocked, 1)
}

// RecordDuplicate records an add rejected as a duplicate
func (m *Metrics) RecordDuplicate() {
	atomic.AddUint64(&m.rejectedDuplicate, 1)
}

// RecordUndo records n undone actions
func (m *Metrics) RecordUndo(n int) {
	atomic.AddUint64(&m.undos, uint64(n))
}

// RecordShuffle records a shuffle and whether it fell back to the original order
func (m *Metrics) RecordShuffle(fellBack bool) {
	atomic.AddUint64(&m.shuffles, 1)
	if fellBack {
		atomic.AddUint64(&m.shuffleFallbacks, 1)
	}
}

// RecordPlay records a play event
func (m *Metrics) RecordPlay() {
	atomic.AddUint64(&m.playsTotal, 1)
}

// RecordSkip records a skip event
func (m *Metrics) RecordSkip() {
	atomic.AddUint64(&m.skipsTotal, 1)
}

// RecordRecommend records one recommendation pass, how many songs it
// returned and how long it took
func (m *Metrics) RecordRecommend(returned int, took time.Duration) {
	m.mu.Lock()
	m.recommendCalls++
	m.recommendedTotal += uint64(returned)
	m.recommendDuration += took
	m.mu.Unlock()
}

// Snapshot returns current metrics as a map
func (m *Metrics) Snapshot() map[string]any {
	m.mu.RLock()
	calls := m.recommendCalls
	returned := m.recommendedTotal
	avgLatency := float64(0)
	if calls > 0 {
		avgLatency = float64(m.recommendDuration.Microseconds()) / 1000 / float64(calls)
	}
	m.mu.RUnlock()

	return map[string]any{
		"uptime_seconds":     time.Since(m.startTime).Seconds(),
		"songs_added":        atomic.LoadUint64(&m.songsAdded),
		"rejected_blocked":   atomic.LoadUint64(&m.rejectedBlocked),
		"rejected_duplicate": atomic.LoadUint64(&m.rejectedDuplicate),
		"undos_total":        atomic.LoadUint64(&m.undos),
		"shuffles_total":     atomic.LoadUint64(&m.shuffles),
		"shuffle_fallbacks":  atomic.LoadUint64(&m.shuffleFallbacks),
		"plays_total":        atomic.LoadUint64(&m.playsTotal),
		"skips_total":        atomic.LoadUint64(&m.skipsTotal),
		"recommend_calls":    calls,
		"recommended_total":  returned,
		"avg_recommend_ms":   avgLatency,
	}
}
