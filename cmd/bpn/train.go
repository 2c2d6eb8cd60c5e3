package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"slices"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/bpn-ml/bpn/internal/config"
	"github.com/bpn-ml/bpn/internal/dataset"
	"github.com/bpn-ml/bpn/internal/network"
	"github.com/bpn-ml/bpn/internal/serialization"
	"github.com/bpn-ml/bpn/internal/stopfile"
	"github.com/bpn-ml/bpn/internal/tokenizer"
	"github.com/bpn-ml/bpn/internal/trainer"
)

const rule = "=========================================================================="

func runTrain(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("train", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "config.txt", "Configuration file")
	stopPath := fs.String("stopfile", stopfile.DefaultPath, "Marker file; delete it to stop training")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	opts, err := cfg.Options()
	if err != nil {
		return err
	}
	verbosity := opts.Trainer.Verbosity

	runID := uuid.New()
	logger := newLogger(stderr, verbosity).With("run", runID.String())
	logger.Info("configuration loaded", "file", *configPath)

	net, err := buildNetwork(opts, logger)
	if err != nil {
		return err
	}
	if verbosity >= 2 {
		fmt.Fprintln(stdout, net)
	}

	set, err := loadData(opts, net, logger)
	if err != nil {
		return err
	}
	if verbosity >= 1 {
		fmt.Fprintln(stdout, "Training data read successfully:")
		fmt.Fprintln(stdout, rule)
		fmt.Fprintf(stdout, " Input data file: %s\n", opts.DataFile)
		fmt.Fprintf(stdout, " Read complete: %d inputs loaded (%d for training, %d for generalization and %d for validation)\n",
			set.Len(), len(set.Training), len(set.Generalization), len(set.Validation))
		fmt.Fprintln(stdout, rule)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	watcher, err := stopfile.New(*stopPath)
	if err != nil {
		return err
	}
	defer func() {
		if err := watcher.Remove(); err != nil {
			logger.Warn("stop file not removed", "path", watcher.Path(), "error", err)
		}
	}()
	go func() {
		<-ctx.Done()
		_ = watcher.Remove()
	}()

	t, err := trainer.New(opts.Trainer, net, trainer.WithLogger(logger))
	if err != nil {
		return err
	}
	result, err := t.Train(ctx, set, watcher)
	if err != nil {
		return err
	}

	if verbosity >= 1 {
		fmt.Fprintf(stdout, "Training complete after %d epochs: %s\n", result.Epochs, result.Reason)
		fmt.Fprintf(stdout, " Training set accuracy: %.2f%%\n", result.TrainingAccuracy)
		fmt.Fprintf(stdout, " Generalization set accuracy: %.2f%%\n", result.GeneralizationAccuracy)
		fmt.Fprintf(stdout, " Validation set accuracy: %.2f%%\n", result.ValidationAccuracy)
	}
	if verbosity >= 2 {
		fmt.Fprintln(stdout, net)
	}

	if opts.Export == "" {
		return nil
	}
	meta := serialization.Meta{RunID: runID, Exported: time.Now()}
	if opts.Export == "-" {
		return serialization.Export(stdout, net, meta)
	}
	if err := serialization.ExportFile(opts.Export, net, meta); err != nil {
		return err
	}
	logger.Info("network exported", "file", opts.Export)
	return nil
}

// buildNetwork imports the configured network or creates a fresh one.
func buildNetwork(opts config.Options, logger *slog.Logger) (*network.Network, error) {
	if opts.Import == "" {
		return network.New(opts.Layers, opts.Activation, opts.Labels, network.WithSeed(opts.Seed))
	}

	net, meta, err := serialization.ImportFile(opts.Import)
	if err != nil {
		return nil, err
	}
	if len(opts.Layers) > 0 && !slices.Equal(opts.Layers, net.LayerSizes()) {
		return nil, errors.Errorf("imported network has layers %v, configuration says %v", net.LayerSizes(), opts.Layers)
	}
	logger.Info("network imported", "file", opts.Import, "from_run", meta.RunID.String(), "layers", net.LayerSizes())
	return net, nil
}

func loadData(opts config.Options, net *network.Network, logger *slog.Logger) (*dataset.Set, error) {
	r := &dataset.Reader{
		NumInputs:  net.NumInputs(),
		NumOutputs: net.NumOutputs(),
		Format:     opts.Format,
		Logger:     logger,
	}
	if opts.Format == dataset.Tokens {
		tok, err := tokenizer.NewTikToken(opts.Encoding)
		if err != nil {
			return nil, err
		}
		r.Tokenizer = tok
	}

	logger.Info("reading data", "file", opts.DataFile, "format", opts.Format)
	entries, err := r.ReadFile(opts.DataFile)
	if err != nil {
		return nil, err
	}
	return dataset.Split(entries, opts.Seed), nil
}
