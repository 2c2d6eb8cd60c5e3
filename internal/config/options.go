package config

import (
	"github.com/pkg/errors"

	"github.com/bpn-ml/bpn/internal/activation"
	"github.com/bpn-ml/bpn/internal/dataset"
	"github.com/bpn-ml/bpn/internal/tokenizer"
	"github.com/bpn-ml/bpn/internal/trainer"
)

// Options is the decoded training configuration.
type Options struct {
	DataFile   string
	Format     dataset.Format
	Encoding   string // tokenizer encoding for the tokens format
	Layers     []int  // empty when the network is imported
	Import     string
	Export     string
	Activation activation.Func
	Labels     string
	Seed       uint64
	Trainer    trainer.Settings
}

// Options decodes every known key, applying defaults to absent ones.
func (c *Config) Options() (Options, error) {
	var (
		opts Options
		err  error
	)

	if opts.DataFile, err = c.Required("datafile"); err != nil {
		return Options{}, err
	}
	if opts.Format, err = dataset.ParseFormat(c.String("format", dataset.NumberList.String())); err != nil {
		return Options{}, &Error{File: c.name, Key: "format", Err: err}
	}
	opts.Encoding = c.String("encoding", tokenizer.DefaultEncoding)

	opts.Import = c.String("import", "")
	opts.Export = c.String("export", "")
	if opts.Layers, err = ParseLayers(c.String("layers", "[]")); err != nil {
		return Options{}, &Error{File: c.name, Key: "layers", Err: errors.Wrap(ErrBadValue, err.Error())}
	}
	if len(opts.Layers) == 0 && opts.Import == "" {
		return Options{}, &Error{File: c.name, Key: "layers", Err: errors.Wrap(ErrMissing, "layers or import must be set")}
	}

	if opts.Activation, err = activation.Parse(c.String("activation", "Sigmoid(1)")); err != nil {
		return Options{}, &Error{File: c.name, Key: "activation", Err: err}
	}
	opts.Labels = c.String("labels", "")
	if opts.Seed, err = c.Uint("seed", 0); err != nil {
		return Options{}, err
	}

	def := trainer.DefaultSettings()
	s := &opts.Trainer
	if s.MaxEpochs, err = c.Uint("maxEpoch", def.MaxEpochs); err != nil {
		return Options{}, err
	}
	if s.LearningRate, err = c.Float("learningRate", def.LearningRate); err != nil {
		return Options{}, err
	}
	if s.Momentum, err = c.Float("momentum", def.Momentum); err != nil {
		return Options{}, err
	}
	if s.UseBatchLearning, err = c.Bool("batchLearning", def.UseBatchLearning); err != nil {
		return Options{}, err
	}
	if s.DesiredAccuracy, err = c.Float("accuracy", def.DesiredAccuracy); err != nil {
		return Options{}, err
	}
	if s.Verbosity, err = c.Int("verbosity", def.Verbosity); err != nil {
		return Options{}, err
	}
	if err := s.Validate(); err != nil {
		return Options{}, &Error{File: c.name, Err: err}
	}

	return opts, nil
}
