// Copyright 2025 BPN Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package optim

import (
	"log/slog"

	"github.com/bpn-ml/bpn/internal/dataset"
	"github.com/bpn-ml/bpn/internal/network"
	"github.com/bpn-ml/bpn/internal/trainer"
)

// Trainer runs the training loop on a network.
type Trainer = trainer.Trainer

// Settings contains the training hyperparameters.
type Settings = trainer.Settings

// Option configures NewTrainer.
type Option = trainer.Option

// Result is the outcome of Trainer.Train.
type Result = trainer.Result

// EpochStats summarizes one epoch.
type EpochStats = trainer.EpochStats

// StopReason tells why training ended.
type StopReason = trainer.StopReason

// Stop reasons.
const (
	StopMaxEpochs       = trainer.StopMaxEpochs
	StopDesiredAccuracy = trainer.StopDesiredAccuracy
	StopRequested       = trainer.StopRequested
	StopDiverged        = trainer.StopDiverged
)

// Stopper is polled at every epoch boundary.
type Stopper = trainer.Stopper

// StopperFunc adapts a function to Stopper.
type StopperFunc = trainer.StopperFunc

// DefaultSettings returns learning rate 0.01, momentum 0.9, 95% desired
// accuracy, 100 epochs, online learning.
func DefaultSettings() Settings {
	return trainer.DefaultSettings()
}

// NewTrainer creates a trainer for net.
//
// Example:
//
//	settings := optim.DefaultSettings()
//	settings.UseBatchLearning = true
//	trainer, err := optim.NewTrainer(settings, net, optim.WithLogger(slog.Default()))
func NewTrainer(settings Settings, net *network.Network, opts ...Option) (*Trainer, error) {
	return trainer.New(settings, net, opts...)
}

// WithLogger sets the logger receiving per-epoch progress.
func WithLogger(logger *slog.Logger) Option {
	return trainer.WithLogger(logger)
}

// Accuracy returns the percentage of entries whose clamped outputs match.
func Accuracy(net *network.Network, entries []Entry) float64 {
	return trainer.Accuracy(net, entries)
}

// Data

// Entry is one input vector with its expected outputs.
type Entry = dataset.Entry

// Set is the training/generalization/validation partition.
type Set = dataset.Set

// Reader decodes dataset files.
type Reader = dataset.Reader

// Format selects the dataset line format.
type Format = dataset.Format

// Dataset formats.
const (
	NumberList = dataset.NumberList
	Binary     = dataset.Binary
	Tokens     = dataset.Tokens
)

// Split shuffles entries and partitions them 80/10/10.
func Split(entries []Entry, seed uint64) *Set {
	return dataset.Split(entries, seed)
}
