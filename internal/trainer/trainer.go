// Package trainer trains a network.Network with gradient-descent
// backpropagation and momentum.
//
// Update rule, per weight w(prev,k) between two adjacent layers:
//
//	gradient = δ_k · value(prev)
//	delta    = learningRate · gradient + momentum · previousDelta
//	w       += delta
//
// In online mode the delta is applied after every training entry. In batch
// mode the learning-rate-scaled gradients of a whole epoch are summed, the
// momentum term is added once and the result is applied at the end of the
// epoch.
//
// Example:
//
//	t, err := trainer.New(trainer.DefaultSettings(), net)
//	if err != nil {
//	    return err
//	}
//	result, err := t.Train(ctx, set, watcher)
package trainer

import (
	"context"
	"log/slog"
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"

	"github.com/bpn-ml/bpn/internal/dataset"
	"github.com/bpn-ml/bpn/internal/matrix"
	"github.com/bpn-ml/bpn/internal/network"
)

// Common errors.
var (
	ErrShapeMismatch = errors.New("training data does not match network shape")
	ErrDiverged      = errors.New("training diverged")
)

// Stopper is polled once per epoch boundary; returning true ends training
// after the current epoch.
type Stopper interface {
	StopRequested() bool
}

// StopperFunc adapts a function to the Stopper interface.
type StopperFunc func() bool

// StopRequested calls f.
func (f StopperFunc) StopRequested() bool {
	return f()
}

// Trainer runs the epoch loop on a network it does not own.
type Trainer struct {
	settings Settings
	net      *network.Network
	logger   *slog.Logger

	// deltas[b] is the last delta applied to weight matrix b; it feeds the
	// momentum term of the next update.
	deltas []*matrix.Matrix
	// accum[b] sums learningRate·gradient over a batch epoch.
	accum []*matrix.Matrix
	// signals[b] holds the error signal δ of layer b+1 for the current entry.
	signals [][]float64
	errs    []float64
}

// Option configures a Trainer.
type Option func(*Trainer)

// WithLogger sets the logger receiving progress messages.
func WithLogger(logger *slog.Logger) Option {
	return func(t *Trainer) {
		t.logger = logger
	}
}

// New creates a trainer for net.
func New(settings Settings, net *network.Network, opts ...Option) (*Trainer, error) {
	if net == nil {
		return nil, errors.New("trainer: nil network")
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	t := &Trainer{
		settings: settings,
		net:      net,
		logger:   slog.New(slog.DiscardHandler),
		deltas:   make([]*matrix.Matrix, net.NumBoundaries()),
		accum:    make([]*matrix.Matrix, net.NumBoundaries()),
		signals:  make([][]float64, net.NumBoundaries()),
		errs:     make([]float64, net.NumOutputs()),
	}
	for b := range t.deltas {
		rows, cols := net.WeightDims(b)
		t.deltas[b] = matrix.New(rows, cols)
		t.accum[b] = matrix.New(rows, cols)
		t.signals[b] = make([]float64, cols)
	}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

// Settings returns the trainer's hyperparameters.
func (t *Trainer) Settings() Settings {
	return t.settings
}

// Delta returns a copy of the last delta applied to weight matrix b.
func (t *Trainer) Delta(b int) *matrix.Matrix {
	return t.deltas[b].Clone()
}

// Train runs epochs until the generalization accuracy reaches
// DesiredAccuracy, MaxEpochs epochs have run, or a stop is requested through
// ctx or stop (which may be nil). Stop requests are honored at epoch
// boundaries only, so the network is never left half-updated.
//
// Cancellation is not an error: it is reported as StopRequested in the result.
func (t *Trainer) Train(ctx context.Context, set *dataset.Set, stop Stopper) (Result, error) {
	if err := t.checkShapes(set); err != nil {
		return Result{}, err
	}

	t.logger.Info("training started",
		"entries", len(set.Training),
		"batch", t.settings.UseBatchLearning,
		"learning_rate", t.settings.LearningRate,
		"momentum", t.settings.Momentum,
		"max_epochs", t.settings.MaxEpochs)

	result := Result{Reason: StopMaxEpochs}
	for epoch := uint64(0); epoch < t.settings.MaxEpochs; epoch++ {
		stats := t.RunEpoch(set.Training)
		stats.Epoch = epoch
		stats.GeneralizationAccuracy = Accuracy(t.net, set.Generalization)
		result.History = append(result.History, stats)
		result.Epochs = epoch + 1

		if t.settings.Verbosity >= 1 {
			t.logger.Info("epoch",
				"epoch", epoch,
				"mse", stats.TrainingMSE,
				"training_accuracy", stats.TrainingAccuracy,
				"generalization_accuracy", stats.GeneralizationAccuracy)
		}

		if math.IsNaN(stats.TrainingMSE) || math.IsInf(stats.TrainingMSE, 0) {
			result.Reason = StopDiverged
			return result, errors.Wrapf(ErrDiverged, "epoch %d: mean squared error is %v", epoch, stats.TrainingMSE)
		}
		if stats.GeneralizationAccuracy >= t.settings.DesiredAccuracy {
			result.Reason = StopDesiredAccuracy
			break
		}
		if stopRequested(ctx, stop) {
			result.Reason = StopRequested
			break
		}
	}

	result.TrainingAccuracy = Accuracy(t.net, set.Training)
	result.GeneralizationAccuracy = Accuracy(t.net, set.Generalization)
	result.ValidationAccuracy = Accuracy(t.net, set.Validation)

	t.logger.Info("training finished",
		"epochs", result.Epochs,
		"reason", result.Reason,
		"training_accuracy", result.TrainingAccuracy,
		"generalization_accuracy", result.GeneralizationAccuracy,
		"validation_accuracy", result.ValidationAccuracy)

	return result, nil
}

func stopRequested(ctx context.Context, stop Stopper) bool {
	if ctx != nil && ctx.Err() != nil {
		return true
	}
	return stop != nil && stop.StopRequested()
}

func (t *Trainer) checkShapes(set *dataset.Set) error {
	if set == nil {
		return errors.Wrap(ErrShapeMismatch, "nil dataset")
	}
	subsets := []struct {
		name    string
		entries []dataset.Entry
	}{
		{"training", set.Training},
		{"generalization", set.Generalization},
		{"validation", set.Validation},
	}
	for _, s := range subsets {
		for i, e := range s.entries {
			if len(e.Inputs) != t.net.NumInputs() || len(e.Expected) != t.net.NumOutputs() {
				return errors.Wrapf(ErrShapeMismatch,
					"%s entry %d has %d inputs and %d outputs, network has %d and %d",
					s.name, i, len(e.Inputs), len(e.Expected), t.net.NumInputs(), t.net.NumOutputs())
			}
		}
	}
	return nil
}

// RunEpoch trains on every entry once and returns the epoch's training
// statistics, measured on the outputs computed before each update.
//
// RunEpoch does not validate entry shapes; Train does that once up front.
func (t *Trainer) RunEpoch(entries []dataset.Entry) EpochStats {
	batch := t.settings.UseBatchLearning
	if batch {
		for _, a := range t.accum {
			a.Zero()
		}
	}

	var sse float64
	correct := 0
	for i, e := range entries {
		out := t.net.Evaluate(e.Inputs)
		if Matches(out, e.Expected) {
			correct++
		}
		sse += t.backpropagate(e.Expected)

		if t.settings.Verbosity >= 3 {
			t.logger.Debug("entry", "index", i, "output", out, "expected", e.Expected, "errors", t.errs)
		}

		if batch {
			t.accumulate()
		} else {
			t.applyOnline()
		}
	}
	if batch {
		t.applyBatch()
	}

	stats := EpochStats{TrainingAccuracy: percent(correct, len(entries))}
	if len(entries) > 0 {
		stats.TrainingMSE = sse / float64(len(entries))
	}
	return stats
}

// backpropagate computes the error signal of every non-input layer from the
// state left by the last Evaluate and returns the entry's squared error.
// All signals are computed before any weight changes.
func (t *Trainer) backpropagate(expected []int32) float64 {
	sigma := t.net.ActivationFunc()
	out := t.net.OutputLayer()

	values := t.net.Values(out)
	acts := t.net.Activations(out)
	signal := t.signals[out-1]
	for k := range signal {
		t.errs[k] = float64(expected[k]) - values[k]
		signal[k] = t.errs[k] * sigma.Derivative(acts[k], values[k])
	}

	for l := out - 1; l >= 1; l-- {
		back := t.net.BackpropagateSignal(l, t.signals[l])
		values = t.net.Values(l)
		acts = t.net.Activations(l)
		signal = t.signals[l-1]
		for j := range signal {
			signal[j] = back[j] * sigma.Derivative(acts[j], values[j])
		}
	}

	return floats.Dot(t.errs, t.errs)
}

// applyOnline computes delta = lr·gradient + momentum·previousDelta for every
// boundary and applies it.
func (t *Trainer) applyOnline() {
	for b, d := range t.deltas {
		d.Scale(t.settings.Momentum)
		d.Outer(t.settings.LearningRate, t.net.Values(b), t.signals[b])
		t.net.ApplyDeltas(b, d)
	}
}

// accumulate adds lr·gradient of the current entry to the batch sums.
func (t *Trainer) accumulate() {
	for b, a := range t.accum {
		a.Outer(t.settings.LearningRate, t.net.Values(b), t.signals[b])
	}
}

// applyBatch applies the epoch's summed gradients plus the momentum term.
func (t *Trainer) applyBatch() {
	for b, d := range t.deltas {
		d.Scale(t.settings.Momentum)
		d.AddMatrix(t.accum[b])
		t.net.ApplyDeltas(b, d)
	}
}
