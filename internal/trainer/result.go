package trainer

import (
	"strconv"
	"sync/atomic"

	"gonum.org/v1/gonum/floats"

	"github.com/bpn-ml/bpn/internal/dataset"
	"github.com/bpn-ml/bpn/internal/network"
	"github.com/bpn-ml/bpn/internal/parallel"
)

// StopReason tells why the epoch loop ended.
type StopReason int

// Stop reasons.
const (
	StopMaxEpochs StopReason = iota
	StopDesiredAccuracy
	StopRequested
	StopDiverged
)

// String implements fmt.Stringer.
func (r StopReason) String() string {
	switch r {
	case StopMaxEpochs:
		return "max epochs reached"
	case StopDesiredAccuracy:
		return "desired accuracy reached"
	case StopRequested:
		return "stop requested"
	case StopDiverged:
		return "diverged"
	default:
		return "StopReason(" + strconv.Itoa(int(r)) + ")"
	}
}

// EpochStats summarizes one epoch.
type EpochStats struct {
	Epoch                  uint64
	TrainingMSE            float64 // mean over entries of the summed squared output errors
	TrainingAccuracy       float64 // percent, measured before each entry's update
	GeneralizationAccuracy float64 // percent, measured after the epoch's updates
}

// Result is the outcome of Train.
type Result struct {
	Epochs                 uint64
	Reason                 StopReason
	History                []EpochStats
	TrainingAccuracy       float64
	GeneralizationAccuracy float64
	ValidationAccuracy     float64
}

// Matches reports whether clamped outputs equal the expected outputs exactly.
// An undecided output never matches.
func Matches(out, expected []int32) bool {
	if len(out) != len(expected) {
		return false
	}
	for i, v := range out {
		if v == network.Undecided || v != expected[i] {
			return false
		}
	}
	return true
}

// Accuracy evaluates net on entries and returns the percentage whose clamped
// outputs match exactly. An empty slice has accuracy 0.
//
// Large slices are split across goroutines, each evaluating its own clone
// of net.
func Accuracy(net *network.Network, entries []dataset.Entry) float64 {
	var correct atomic.Int64
	parallel.Chunks(len(entries), parallel.DefaultConfig(), func(start, end int) {
		local := net
		if end-start < len(entries) {
			local = net.Clone()
		}
		n := 0
		for _, e := range entries[start:end] {
			if Matches(local.Evaluate(e.Inputs), e.Expected) {
				n++
			}
		}
		correct.Add(int64(n))
	})
	return percent(int(correct.Load()), len(entries))
}

// MeanSquaredError evaluates net on entries and returns the mean over entries
// of the summed squared differences between expected and actual outputs.
func MeanSquaredError(net *network.Network, entries []dataset.Entry) float64 {
	if len(entries) == 0 {
		return 0
	}
	var sum float64
	diff := make([]float64, net.NumOutputs())
	for _, e := range entries {
		net.Evaluate(e.Inputs)
		for k, v := range net.UnclampedOutput() {
			diff[k] = float64(e.Expected[k]) - v
		}
		sum += floats.Dot(diff, diff)
	}
	return sum / float64(len(entries))
}

func percent(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return 100 * float64(n) / float64(total)
}
