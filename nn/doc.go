// Copyright 2025 BPN Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides fully connected back-propagation networks.
//
// # Overview
//
// This package contains:
//   - Network: layered network with bias neurons and clamped outputs
//   - Activations: Sigmoid(λ), ReLU, LeakyReLU
//   - Matrix: weight matrices between adjacent layers
//   - Export/Import: checksummed text files
//
// # Basic Usage
//
//	import (
//	    "github.com/bpn-ml/bpn/nn"
//	    "github.com/bpn-ml/bpn/optim"
//	)
//
//	func main() {
//	    net, err := nn.NewNetwork([]int{2, 3, 1}, nn.NewSigmoid(1), "and")
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    trainer, err := optim.NewTrainer(optim.DefaultSettings(), net)
//	    ...
//	    result, err := trainer.Train(ctx, optim.Split(entries, 0), nil)
//	}
//
// # Outputs
//
// Evaluate returns clamped outputs: 1 when the output activation is above
// 0.9, 0 when below 0.1 and Undecided otherwise. UnclampedOutput returns the
// continuous values of the last evaluation.
package nn
