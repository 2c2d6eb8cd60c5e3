// Package dataset reads labeled training data and splits it into training,
// generalization and validation subsets.
//
// Each non-comment line of a dataset file is one Entry: an input vector and
// the expected integer outputs. Three line formats are supported:
//
//	numberList  0.5,1,0.25,1,0          inputs then outputs, comma separated
//	binary      "some text",1,0         each byte of the text becomes byte/256
//	tokens      "some text",1,0         each token id becomes id/vocabSize
//
// Lines that are empty or start with '#' are skipped.
package dataset

import (
	"math/rand/v2"
)

// Entry is one labeled example.
type Entry struct {
	Inputs   []float64
	Expected []int32
}

// Set holds the three subsets used by training.
type Set struct {
	Training       []Entry
	Generalization []Entry
	Validation     []Entry
}

// Len returns the total number of entries.
func (s *Set) Len() int {
	return len(s.Training) + len(s.Generalization) + len(s.Validation)
}

// Split proportions, in tenths.
const (
	trainingTenths       = 8
	generalizationTenths = 1
)

// Split shuffles entries deterministically from seed and partitions them by
// position: floor(0.8n) for training, ceil(0.1n) for generalization and the
// rest for validation. The input slice is not modified.
func Split(entries []Entry, seed uint64) *Set {
	shuffled := append([]Entry(nil), entries...)
	//nolint:gosec // Shuffling is not security-critical.
	rng := rand.New(rand.NewPCG(seed, seed))
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	n := len(shuffled)
	numTraining := n * trainingTenths / 10
	numGeneralization := (n*generalizationTenths + 9) / 10
	if numTraining+numGeneralization > n {
		numGeneralization = n - numTraining
	}

	return &Set{
		Training:       shuffled[:numTraining],
		Generalization: shuffled[numTraining : numTraining+numGeneralization],
		Validation:     shuffled[numTraining+numGeneralization:],
	}
}
