package stopfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bpn-ml/bpn/internal/trainer"
)

var _ trainer.Stopper = (*Watcher)(nil)

// TestWatcher tests the marker lifecycle.
func TestWatcher(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultPath)

	w, err := New(path)
	require.NoError(t, err)
	assert.Equal(t, path, w.Path())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, Message, string(data))
	assert.False(t, w.StopRequested())

	require.NoError(t, os.Remove(path))
	assert.True(t, w.StopRequested())

	// Idempotent.
	assert.NoError(t, w.Remove())
}

// TestWatcher_Remove tests removal by the program itself.
func TestWatcher_Remove(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stop.txt")
	require.NoError(t, os.WriteFile(path, []byte("stale"), 0o600))

	w, err := New(path)
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, Message, string(data))

	require.NoError(t, w.Remove())
	assert.True(t, w.StopRequested())
	require.NoError(t, w.Remove())
}

// TestNew_Unwritable tests marker creation in a missing directory.
func TestNew_Unwritable(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "missing", "stop.txt"))
	assert.Error(t, err)
}
