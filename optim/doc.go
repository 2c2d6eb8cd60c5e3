// Copyright 2025 BPN Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package optim trains nn.Network values with back-propagation.
//
// Training uses gradient descent with momentum, in online mode (weights
// updated after every entry) or batch mode (once per epoch). Data is split
// 80/10/10 into training, generalization and validation sets; training stops
// when the generalization accuracy reaches DesiredAccuracy, after MaxEpochs
// epochs, or when a Stopper asks for it.
//
// Example:
//
//	entries, err := (&optim.Reader{NumInputs: 2, NumOutputs: 1}).ReadFile("and.txt")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	trainer, err := optim.NewTrainer(optim.DefaultSettings(), net)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := trainer.Train(ctx, optim.Split(entries, 0), nil)
package optim
