package monitoring

import (
	"runtime"
	"sync"
	"sync/atomic"
	"time"
)

// DefaultStalledPollThreshold is how many failed discovery polls in a row
// raise a stalled-discovery alert (50 polls at 100ms is five seconds).
const DefaultStalledPollThreshold = 50

// CullingMonitor tracks culling activity counters
type CullingMonitor struct {
	// Pass metrics
	passesStarted   atomic.Uint64
	passesCompleted atomic.Uint64
	tilesEvaluated  atomic.Uint64
	lastPassTicks   atomic.Uint64

	// Host writes
	activations   atomic.Uint64
	deactivations atomic.Uint64

	// Discovery metrics
	discoveryPolls   atomic.Uint64
	failedPollStreak atomic.Int32
	cancellations    atomic.Uint64
	trackedTiles     atomic.Int32

	// Statistics
	mutex          sync.RWMutex
	lastPassTime   time.Duration
	avgPassTime    float64 // nanoseconds
	startTime      time.Time
	enableDetailed bool
	stalledPolls   int32
}

// NewCullingMonitor creates a new culling monitor
func NewCullingMonitor() *CullingMonitor {
	return &CullingMonitor{
		startTime:      time.Now(),
		enableDetailed: true,
		stalledPolls:   DefaultStalledPollThreshold,
	}
}

// PassTimer measures one full pass over the tile list
type PassTimer struct {
	monitor   *CullingMonitor
	startTime time.Time
	ticks     uint64
}

// StartPass begins pass timing
func (cm *CullingMonitor) StartPass() *PassTimer {
	cm.passesStarted.Add(1)
	return &PassTimer{
		monitor:   cm,
		startTime: time.Now(),
	}
}

// Tick counts one host tick spent inside the pass
func (pt *PassTimer) Tick() {
	pt.ticks++
}

// EndPass completes pass timing
func (pt *PassTimer) EndPass() {
	passTime := time.Since(pt.startTime)
	cm := pt.monitor
	count := cm.passesCompleted.Add(1)
	cm.lastPassTicks.Store(pt.ticks)

	cm.mutex.Lock()
	cm.lastPassTime = passTime
	if cm.enableDetailed {
		// running mean
		cm.avgPassTime += (float64(passTime.Nanoseconds()) - cm.avgPassTime) / float64(count)
	}
	cm.mutex.Unlock()
}

// RecordEvaluation counts one tile decision
func (cm *CullingMonitor) RecordEvaluation() {
	cm.tilesEvaluated.Add(1)
}

// RecordWrite counts one host write of the given activation value
func (cm *CullingMonitor) RecordWrite(active bool) {
	if active {
		cm.activations.Add(1)
	} else {
		cm.deactivations.Add(1)
	}
}

// RecordDiscoveryPoll counts a discovery attempt; a resolved poll ends the failure streak
func (cm *CullingMonitor) RecordDiscoveryPoll(resolved bool) {
	cm.discoveryPolls.Add(1)
	if resolved {
		cm.failedPollStreak.Store(0)
	} else {
		cm.failedPollStreak.Add(1)
	}
}

// RecordCancellation counts an interrupted discovery or pass
func (cm *CullingMonitor) RecordCancellation() {
	cm.cancellations.Add(1)
	cm.failedPollStreak.Store(0)
}

// SetTrackedTiles records the size of the current registry snapshot
func (cm *CullingMonitor) SetTrackedTiles(n int) {
	cm.trackedTiles.Store(int32(n))
}

// CullingMetrics is a point-in-time copy of the counters
type CullingMetrics struct {
	PassesCompleted uint64
	TilesEvaluated  uint64
	TrackedTiles    int32
	Activations     uint64
	Deactivations   uint64
	DiscoveryPolls  uint64
	Cancellations   uint64
	LastPassTicks   uint64
	LastPassTime    time.Duration
}

// HostWrites returns the total number of activation writes sent to the host
func (m CullingMetrics) HostWrites() uint64 {
	return m.Activations + m.Deactivations
}

// GetCurrentMetrics returns current culling metrics
func (cm *CullingMonitor) GetCurrentMetrics() CullingMetrics {
	cm.mutex.RLock()
	lastPassTime := cm.lastPassTime
	cm.mutex.RUnlock()

	return CullingMetrics{
		PassesCompleted: cm.passesCompleted.Load(),
		TilesEvaluated:  cm.tilesEvaluated.Load(),
		TrackedTiles:    cm.trackedTiles.Load(),
		Activations:     cm.activations.Load(),
		Deactivations:   cm.deactivations.Load(),
		DiscoveryPolls:  cm.discoveryPolls.Load(),
		Cancellations:   cm.cancellations.Load(),
		LastPassTicks:   cm.lastPassTicks.Load(),
		LastPassTime:    lastPassTime,
	}
}

// GetDetailedStats returns detailed culling statistics
func (cm *CullingMonitor) GetDetailedStats() map[string]interface{} {
	cm.mutex.RLock()
	defer cm.mutex.RUnlock()

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	return map[string]interface{}{
		"uptime_seconds":     time.Since(cm.startTime).Seconds(),
		"passes_started":     cm.passesStarted.Load(),
		"passes_completed":   cm.passesCompleted.Load(),
		"tiles_evaluated":    cm.tilesEvaluated.Load(),
		"tracked_tiles":      cm.trackedTiles.Load(),
		"activations":        cm.activations.Load(),
		"deactivations":      cm.deactivations.Load(),
		"discovery_polls":    cm.discoveryPolls.Load(),
		"failed_poll_streak": cm.failedPollStreak.Load(),
		"cancellations":      cm.cancellations.Load(),
		"last_pass_ticks":    cm.lastPassTicks.Load(),
		"avg_pass_time_ms":   cm.avgPassTime / 1000000, // Convert to milliseconds
		"memory_alloc_mb":    memStats.Alloc / 1024 / 1024,
		"goroutines":         runtime.NumGoroutine(),
	}
}

// CullingAlert represents a culling warning
type CullingAlert struct {
	Type      string
	Message   string
	Value     float64
	Threshold float64
	Timestamp time.Time
}

// CheckAlerts checks for culling issues and returns alerts
func (cm *CullingMonitor) CheckAlerts() []CullingAlert {
	alerts := make([]CullingAlert, 0)
	currentTime := time.Now()

	cm.mutex.RLock()
	threshold := cm.stalledPolls
	cm.mutex.RUnlock()

	streak := cm.failedPollStreak.Load()
	if streak >= threshold {
		alerts = append(alerts, CullingAlert{
			Type:      "discovery_stalled",
			Message:   "Scene entities have not resolved after repeated polls",
			Value:     float64(streak),
			Threshold: float64(threshold),
			Timestamp: currentTime,
		})
	}

	return alerts
}

// SetStalledPollThreshold changes the failed-poll count that raises an alert
func (cm *CullingMonitor) SetStalledPollThreshold(polls int32) {
	cm.mutex.Lock()
	defer cm.mutex.Unlock()
	cm.stalledPolls = polls
}

// EnableDetailedLogging enables/disables running averages
func (cm *CullingMonitor) EnableDetailedLogging(enabled bool) {
	cm.mutex.Lock()
	defer cm.mutex.Unlock()
	cm.enableDetailed = enabled
}

// Reset resets all counters
func (cm *CullingMonitor) Reset() {
	cm.passesStarted.Store(0)
	cm.passesCompleted.Store(0)
	cm.tilesEvaluated.Store(0)
	cm.lastPassTicks.Store(0)
	cm.activations.Store(0)
	cm.deactivations.Store(0)
	cm.discoveryPolls.Store(0)
	cm.failedPollStreak.Store(0)
	cm.cancellations.Store(0)
	cm.trackedTiles.Store(0)

	cm.mutex.Lock()
	cm.lastPassTime = 0
	cm.avgPassTime = 0
	cm.startTime = time.Now()
	cm.mutex.Unlock()
}
