// Package stopfile implements the marker file that lets a user end training
// by deleting it.
package stopfile

import (
	"os"

	"github.com/pkg/errors"
)

// Message is the content written to the marker file.
const Message = "Delete this file to stop the training"

// DefaultPath is the marker created when none is configured.
const DefaultPath = "delete_this_to_stop.txt"

// Watcher reports a stop request once its marker file no longer exists.
// It satisfies trainer.Stopper.
type Watcher struct {
	path string
}

// New creates the marker file at path, replacing any existing file.
func New(path string) (*Watcher, error) {
	if err := os.WriteFile(path, []byte(Message), 0o644); err != nil {
		return nil, errors.Wrap(err, "creating stop file")
	}
	return &Watcher{path: path}, nil
}

// Path returns the marker file path.
func (w *Watcher) Path() string { return w.path }

// StopRequested reports whether the marker file is gone.
func (w *Watcher) StopRequested() bool {
	_, err := os.Stat(w.path)
	return errors.Is(err, os.ErrNotExist)
}

// Remove deletes the marker file. Removing an already deleted marker is not
// an error.
func (w *Watcher) Remove() error {
	if err := os.Remove(w.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return errors.Wrap(err, "removing stop file")
	}
	return nil
}
