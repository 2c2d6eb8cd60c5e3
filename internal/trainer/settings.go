package trainer

import (
	"math"

	"github.com/pkg/errors"
)

// Settings holds the training hyperparameters.
//
// Settings is a plain value: it is copied into the Trainer and never changed
// afterwards.
type Settings struct {
	LearningRate     float64 // step size applied to every gradient
	Momentum         float64 // fraction of the previous delta added to the current one
	DesiredAccuracy  float64 // generalization accuracy, in percent, that ends training
	MaxEpochs        uint64  // upper bound on the number of epochs
	UseBatchLearning bool    // apply updates once per epoch instead of after every entry
	Verbosity        int     // 0 silent, 1 per-epoch summary, 3 per-entry details
}

// DefaultSettings returns the defaults used when a configuration omits a key.
func DefaultSettings() Settings {
	return Settings{
		LearningRate:     0.01,
		Momentum:         0.9,
		DesiredAccuracy:  95,
		MaxEpochs:        100,
		UseBatchLearning: false,
		Verbosity:        1,
	}
}

// ErrInvalidSettings is returned by Validate.
var ErrInvalidSettings = errors.New("invalid trainer settings")

// Validate checks that the hyperparameters are usable.
func (s Settings) Validate() error {
	if math.IsNaN(s.LearningRate) || s.LearningRate < 0 {
		return errors.Wrapf(ErrInvalidSettings, "learning rate %v", s.LearningRate)
	}
	if math.IsNaN(s.Momentum) || s.Momentum < 0 {
		return errors.Wrapf(ErrInvalidSettings, "momentum %v", s.Momentum)
	}
	if math.IsNaN(s.DesiredAccuracy) {
		return errors.Wrap(ErrInvalidSettings, "desired accuracy is NaN")
	}
	return nil
}
