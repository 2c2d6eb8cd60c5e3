package serialization

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bpn-ml/bpn/internal/activation"
	"github.com/bpn-ml/bpn/internal/matrix"
	"github.com/bpn-ml/bpn/internal/network"
)

func testNet(t *testing.T) *network.Network {
	t.Helper()
	net, err := network.New([]int{2, 3, 1}, activation.NewSigmoid(1), "and", network.WithSeed(3))
	require.NoError(t, err)
	return net
}

func testMeta() Meta {
	return Meta{
		RunID:    uuid.MustParse("1f0c1c3e-5b0e-4a43-9d6e-0a8f6f1f2b7c"),
		Exported: time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC),
	}
}

// TestExportImport tests the round trip, metadata included.
func TestExportImport(t *testing.T) {
	net := testNet(t)
	var buf bytes.Buffer
	require.NoError(t, Export(&buf, net, testMeta()))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	assert.Equal(t, "# run 1f0c1c3e-5b0e-4a43-9d6e-0a8f6f1f2b7c", lines[0])
	assert.Equal(t, "# exported 2026-10-17T12:00:00Z", lines[1])
	assert.Equal(t, "bpn-network 1", lines[2])
	assert.True(t, strings.HasPrefix(lines[len(lines)-1], "checksum sha256:"))

	got, meta, err := Import(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, testMeta().RunID, meta.RunID)
	assert.True(t, testMeta().Exported.Equal(meta.Exported))

	assert.Equal(t, net.LayerSizes(), got.LayerSizes())
	assert.Equal(t, net.Labels(), got.Labels())
	assert.Equal(t, net.ActivationFunc(), got.ActivationFunc())
	for b := 0; b < net.NumBoundaries(); b++ {
		assert.True(t, net.Weights(b).EqualApprox(got.Weights(b), 0))
	}

	input := []float64{0.25, 0.75}
	assert.Equal(t, net.Evaluate(input), got.Evaluate(input))
	assert.Equal(t, net.UnclampedOutput(), got.UnclampedOutput())
}

// TestExport_NoMeta tests that empty metadata writes no comments.
func TestExport_NoMeta(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Export(&buf, testNet(t), Meta{}))
	assert.True(t, strings.HasPrefix(buf.String(), "bpn-network 1\n"))

	_, meta, err := Import(&buf)
	require.NoError(t, err)
	assert.Equal(t, Meta{}, meta)
}

// TestImport_ChecksumMismatch tests that edited files are rejected.
func TestImport_ChecksumMismatch(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Export(&buf, testNet(t), testMeta()))
	tampered := strings.Replace(buf.String(), `labels "and"`, `labels "or"`, 1)

	_, _, err := Import(strings.NewReader(tampered))
	assert.True(t, errors.Is(err, ErrChecksumMismatch), "%v", err)

	_, _, err = ImportWithOptions(strings.NewReader(tampered), ReaderOptions{SkipChecksumValidation: true})
	assert.NoError(t, err)
}

// TestImport_WithoutTrailer tests that plain network text is accepted.
func TestImport_WithoutTrailer(t *testing.T) {
	text, err := testNet(t).MarshalText()
	require.NoError(t, err)

	got, _, err := Import(bytes.NewReader(text))
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3, 1}, got.LayerSizes())
}

// TestImport_Validation tests the resource limits and weight checks.
func TestImport_Validation(t *testing.T) {
	huge := "bpn-network 1\nlayers 2 2000000 1\n"
	_, _, err := Import(strings.NewReader(huge))
	var verr *ValidationError
	require.True(t, errors.As(err, &verr), "%v", err)
	assert.Equal(t, "layer_too_large", verr.Type)
	assert.Equal(t, 2, verr.Line)
	assert.True(t, errors.Is(err, ErrLayerTooLarge))

	wide := "bpn-network 1\nlayers 1000000 1000 1\n"
	_, _, err = Import(strings.NewReader(wide))
	assert.True(t, errors.Is(err, ErrLayerTooLarge), "%v", err)

	deep := "bpn-network 1\nlayers" + strings.Repeat(" 1", MaxLayers+1) + "\n"
	_, _, err = Import(strings.NewReader(deep))
	assert.True(t, errors.Is(err, ErrTooManyLayers), "%v", err)

	w0 := matrix.NewFromRows([][]float64{{1}, {2}})
	w1 := matrix.NewFromRows([][]float64{{3}, {4}})
	net, err := network.New([]int{1, 1, 1}, activation.NewReLU(), "", network.WithWeights([]*matrix.Matrix{w0, w1}))
	require.NoError(t, err)
	text, err := net.MarshalText()
	require.NoError(t, err)
	nan := strings.Replace(string(text), "\n2\n", "\nNaN\n", 1)
	require.NotEqual(t, string(text), nan)

	_, _, err = Import(strings.NewReader(nan))
	assert.True(t, errors.Is(err, ErrNonFinite), "%v", err)

	_, _, err = ImportWithOptions(strings.NewReader(nan), ReaderOptions{ValidationLevel: ValidationNormal})
	assert.NoError(t, err)
}

// TestImport_Malformed tests that parse errors from the network surface.
func TestImport_Malformed(t *testing.T) {
	_, _, err := Import(strings.NewReader("not a network\n"))
	assert.True(t, errors.Is(err, network.ErrMalformed), "%v", err)
}

// TestExportFile tests file round trips.
func TestExportFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "net.txt")
	net := testNet(t)
	require.NoError(t, ExportFile(path, net, testMeta()))

	got, meta, err := ImportFile(path)
	require.NoError(t, err)
	assert.Equal(t, testMeta().RunID, meta.RunID)
	assert.True(t, net.Weights(0).EqualApprox(got.Weights(0), 0))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, bytes.Replace(data, []byte("end\n"), []byte("end\n# edited\n"), 1), 0o600))
	_, _, err = ImportFile(path)
	assert.True(t, errors.Is(err, ErrChecksumMismatch), "%v", err)

	_, _, err = ImportFile(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)

	assert.Error(t, ExportFile(filepath.Join(t.TempDir(), "no", "dir", "net.txt"), net, Meta{}))
}
