package monitoring

import (
	"sync"
	"testing"
	"time"
)

func TestNewCullingMonitor(t *testing.T) {
	cm := NewCullingMonitor()

	if cm == nil {
		t.Fatal("NewCullingMonitor returned nil")
	}
	if !cm.enableDetailed {
		t.Error("Expected enableDetailed to be true")
	}
	if cm.stalledPolls != DefaultStalledPollThreshold {
		t.Errorf("Expected stalled threshold %d, got %d", DefaultStalledPollThreshold, cm.stalledPolls)
	}
	if time.Since(cm.startTime) > time.Second {
		t.Error("Start time should be recent")
	}
}

func TestCullingMonitorPassTiming(t *testing.T) {
	cm := NewCullingMonitor()

	pass := cm.StartPass()
	pass.Tick()
	pass.Tick()
	pass.Tick()
	time.Sleep(time.Millisecond)
	pass.EndPass()

	m := cm.GetCurrentMetrics()
	if m.PassesCompleted != 1 {
		t.Errorf("Expected 1 completed pass, got %d", m.PassesCompleted)
	}
	if m.LastPassTicks != 3 {
		t.Errorf("Expected last pass to span 3 ticks, got %d", m.LastPassTicks)
	}
	if m.LastPassTime < time.Millisecond {
		t.Errorf("Expected pass time of at least 1ms, got %v", m.LastPassTime)
	}
	if cm.passesStarted.Load() != 1 {
		t.Errorf("Expected 1 started pass, got %d", cm.passesStarted.Load())
	}
}

func TestCullingMonitorWrites(t *testing.T) {
	cm := NewCullingMonitor()

	cm.RecordWrite(true)
	cm.RecordWrite(false)
	cm.RecordWrite(false)
	cm.RecordEvaluation()

	m := cm.GetCurrentMetrics()
	if m.Activations != 1 || m.Deactivations != 2 {
		t.Errorf("Expected 1 activation and 2 deactivations, got %d/%d", m.Activations, m.Deactivations)
	}
	if m.HostWrites() != 3 {
		t.Errorf("Expected 3 host writes, got %d", m.HostWrites())
	}
	if m.TilesEvaluated != 1 {
		t.Errorf("Expected 1 evaluation, got %d", m.TilesEvaluated)
	}
}

func TestCullingMonitorStalledDiscoveryAlert(t *testing.T) {
	cm := NewCullingMonitor()
	cm.SetStalledPollThreshold(3)

	cm.RecordDiscoveryPoll(false)
	cm.RecordDiscoveryPoll(false)
	if alerts := cm.CheckAlerts(); len(alerts) != 0 {
		t.Fatalf("Expected no alerts below threshold, got %d", len(alerts))
	}

	cm.RecordDiscoveryPoll(false)
	alerts := cm.CheckAlerts()
	if len(alerts) != 1 || alerts[0].Type != "discovery_stalled" {
		t.Fatalf("Expected one discovery_stalled alert, got %+v", alerts)
	}

	cm.RecordDiscoveryPoll(true)
	if alerts := cm.CheckAlerts(); len(alerts) != 0 {
		t.Errorf("Resolved poll should clear the alert, got %d", len(alerts))
	}
	if cm.GetCurrentMetrics().DiscoveryPolls != 4 {
		t.Errorf("Expected 4 discovery polls")
	}
}

func TestCullingMonitorCancellationClearsStreak(t *testing.T) {
	cm := NewCullingMonitor()
	cm.SetStalledPollThreshold(1)
	cm.RecordDiscoveryPoll(false)
	cm.RecordCancellation()

	if alerts := cm.CheckAlerts(); len(alerts) != 0 {
		t.Errorf("Cancellation should reset the failed poll streak")
	}
	if cm.GetCurrentMetrics().Cancellations != 1 {
		t.Errorf("Expected 1 cancellation")
	}
}

func TestCullingMonitorDetailedStats(t *testing.T) {
	cm := NewCullingMonitor()
	cm.SetTrackedTiles(144)
	stats := cm.GetDetailedStats()

	for _, key := range []string{"passes_completed", "tracked_tiles", "activations", "discovery_polls", "avg_pass_time_ms"} {
		if _, ok := stats[key]; !ok {
			t.Errorf("Expected stats key %q", key)
		}
	}
	if stats["tracked_tiles"].(int32) != 144 {
		t.Errorf("Expected 144 tracked tiles, got %v", stats["tracked_tiles"])
	}
}

func TestCullingMonitorReset(t *testing.T) {
	cm := NewCullingMonitor()
	cm.StartPass().EndPass()
	cm.RecordWrite(true)
	cm.RecordDiscoveryPoll(false)
	cm.Reset()

	m := cm.GetCurrentMetrics()
	if m.PassesCompleted != 0 || m.HostWrites() != 0 || m.DiscoveryPolls != 0 {
		t.Errorf("Expected all counters to be zero after reset, got %+v", m)
	}
}

func TestCullingMonitorConcurrency(t *testing.T) {
	cm := NewCullingMonitor()
	var wg sync.WaitGroup

	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				pass := cm.StartPass()
				cm.RecordEvaluation()
				cm.RecordWrite(j%2 == 0)
				pass.EndPass()
				_ = cm.GetDetailedStats()
			}
		}()
	}
	wg.Wait()

	m := cm.GetCurrentMetrics()
	if m.PassesCompleted != 100 {
		t.Errorf("Expected 100 passes, got %d", m.PassesCompleted)
	}
	if m.HostWrites() != 100 {
		t.Errorf("Expected 100 writes, got %d", m.HostWrites())
	}
}
