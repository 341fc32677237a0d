package train

import (
	"math"
	"testing"
	"time"
)

func TestMeterSnapshot(t *testing.T) {
	var m Meter
	m.Record(64, 20*time.Millisecond, 10*time.Millisecond, 1.2)
	m.Record(64, 10*time.Millisecond, 20*time.Millisecond, 0.8)

	snap := m.Snapshot()
	if math.Abs(snap.SamplesPerSec-2133.3333) > 1 {
		t.Errorf("SamplesPerSec = %.2f, want ~2133.33", snap.SamplesPerSec)
	}
	if math.Abs(snap.AvgDataMS-15) > 1e-9 {
		t.Errorf("AvgDataMS = %.2f, want 15", snap.AvgDataMS)
	}
	if math.Abs(snap.AvgComputeMS-15) > 1e-9 {
		t.Errorf("AvgComputeMS = %.2f, want 15", snap.AvgComputeMS)
	}
	if math.Abs(snap.MeanLoss-1.0) > 1e-9 {
		t.Errorf("MeanLoss = %.4f, want 1.0", snap.MeanLoss)
	}
}

func TestMeterSnapshotResets(t *testing.T) {
	var m Meter
	m.Record(32, time.Millisecond, time.Millisecond, 0.5)
	m.Snapshot()

	empty := m.Snapshot()
	if empty.SamplesPerSec != 0 || empty.MeanLoss != 0 {
		t.Errorf("Second snapshot = %+v, want zeros", empty)
	}
}
