package train

import "time"

// Meter accumulates throughput and loss stats over a window of training
// steps, so mid-epoch progress lines reflect the recent window rather
// than the whole run.
type Meter struct {
	samples int
	batches int
	data    time.Duration
	compute time.Duration
	lossSum float64
}

// Record adds one step's measurements to the window.
func (m *Meter) Record(batchSize int, dataTime, computeTime time.Duration, loss float64) {
	m.samples += batchSize
	m.batches++
	m.data += dataTime
	m.compute += computeTime
	m.lossSum += loss
}

// Snapshot returns aggregated metrics for the window and resets it.
func (m *Meter) Snapshot() Snapshot {
	var snap Snapshot
	if total := m.data + m.compute; total > 0 {
		snap.SamplesPerSec = float64(m.samples) / total.Seconds()
	}
	if m.batches > 0 {
		snap.AvgDataMS = m.data.Seconds() * 1000 / float64(m.batches)
		snap.AvgComputeMS = m.compute.Seconds() * 1000 / float64(m.batches)
		snap.MeanLoss = m.lossSum / float64(m.batches)
	}

	*m = Meter{}
	return snap
}

// Snapshot represents loggable metrics for one window.
type Snapshot struct {
	SamplesPerSec float64
	AvgDataMS     float64
	AvgComputeMS  float64
	MeanLoss      float64
}
