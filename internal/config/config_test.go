package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bpn-ml/bpn/internal/activation"
	"github.com/bpn-ml/bpn/internal/dataset"
	"github.com/bpn-ml/bpn/internal/trainer"
)

func parse(t *testing.T, src string) *Config {
	t.Helper()
	c, err := Parse(strings.NewReader(src), "config.txt")
	require.NoError(t, err)
	return c
}

// TestOptions_Defaults tests that only datafile and layers are required.
func TestOptions_Defaults(t *testing.T) {
	c := parse(t, "datafile=and.txt\nlayers=[2,2,1]\n")
	opts, err := c.Options()
	require.NoError(t, err)

	assert.Equal(t, "and.txt", opts.DataFile)
	assert.Equal(t, dataset.NumberList, opts.Format)
	assert.Equal(t, []int{2, 2, 1}, opts.Layers)
	assert.Equal(t, activation.NewSigmoid(1), opts.Activation)
	assert.Empty(t, opts.Export)
	assert.Empty(t, opts.Import)
	assert.Empty(t, opts.Labels)
	assert.Equal(t, uint64(0), opts.Seed)
	assert.Equal(t, trainer.DefaultSettings(), opts.Trainer)
}

// TestOptions_AllKeys tests a fully specified configuration.
func TestOptions_AllKeys(t *testing.T) {
	src := `# iris
datafile=iris.data
format=binary
layers=[4, 6, 3]
export=-
activation=LeakyReLU
labels=setosa versicolor virginica # trailing comment
maxEpoch=250
learningRate=0.05
momentum=0.5
batchLearning=True
accuracy=90.5
verbosity=2
seed=42
`
	opts, err := parse(t, src).Options()
	require.NoError(t, err)

	assert.Equal(t, dataset.Binary, opts.Format)
	assert.Equal(t, []int{4, 6, 3}, opts.Layers)
	assert.Equal(t, "-", opts.Export)
	assert.Equal(t, activation.NewLeakyReLU(), opts.Activation)
	assert.Equal(t, "setosa versicolor virginica", opts.Labels)
	assert.Equal(t, uint64(42), opts.Seed)
	assert.Equal(t, trainer.Settings{
		LearningRate:     0.05,
		Momentum:         0.5,
		DesiredAccuracy:  90.5,
		MaxEpochs:        250,
		UseBatchLearning: true,
		Verbosity:        2,
	}, opts.Trainer)
}

// TestOptions_ImportWithoutLayers tests that an imported network needs no
// layer list.
func TestOptions_ImportWithoutLayers(t *testing.T) {
	opts, err := parse(t, "datafile=d.txt\nimport=net.txt\n").Options()
	require.NoError(t, err)
	assert.Empty(t, opts.Layers)
	assert.Equal(t, "net.txt", opts.Import)
}

// TestOptions_Errors tests that errors name the offending field.
func TestOptions_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		key  string
		err  error
	}{
		{"missing datafile", "layers=[1,1]\n", "datafile", ErrMissing},
		{"missing layers", "datafile=d\n", "layers", ErrMissing},
		{"bad layers", "datafile=d\nlayers=4,6\n", "layers", ErrBadValue},
		{"bad bool", "datafile=d\nlayers=[1,1]\nbatchLearning=yes\n", "batchLearning", ErrBadValue},
		{"bad float", "datafile=d\nlayers=[1,1]\nlearningRate=fast\n", "learningRate", ErrBadValue},
		{"bad uint", "datafile=d\nlayers=[1,1]\nmaxEpoch=-3\n", "maxEpoch", ErrBadValue},
		{"bad int", "datafile=d\nlayers=[1,1]\nverbosity=x\n", "verbosity", ErrBadValue},
		{"bad activation", "datafile=d\nlayers=[1,1]\nactivation=Tanh\n", "activation", activation.ErrUnknown},
		{"bad format", "datafile=d\nlayers=[1,1]\nformat=csv\n", "format", dataset.ErrUnknownFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parse(t, tt.src).Options()
			var cerr *Error
			require.True(t, errors.As(err, &cerr), "%v", err)
			assert.Equal(t, tt.key, cerr.Key)
			assert.True(t, errors.Is(err, tt.err), "%v", err)
			assert.Contains(t, err.Error(), "config.txt")
		})
	}

	_, err := parse(t, "datafile=d\nlayers=[1,1]\nmomentum=-1\n").Options()
	assert.True(t, errors.Is(err, trainer.ErrInvalidSettings), "%v", err)
}

// TestParse_NotKeyValue tests that stray lines are reported with their number.
func TestParse_NotKeyValue(t *testing.T) {
	_, err := Parse(strings.NewReader("# header\n\ndatafile=d\njust some words\n"), "config.txt")
	var cerr *Error
	require.True(t, errors.As(err, &cerr), "%v", err)
	assert.Equal(t, 4, cerr.Line)
	assert.True(t, errors.Is(err, ErrNotKeyValue))
	assert.Equal(t, "configuration file `config.txt` line 4: not a key=value pair", err.Error())

	_, err = Parse(strings.NewReader("=value\n"), "config.txt")
	assert.True(t, errors.Is(err, ErrNotKeyValue))
}

// TestBool tests the accepted boolean spellings.
func TestBool(t *testing.T) {
	for _, v := range []string{"1", "true", "True", "TRUE"} {
		b, err := parse(t, "b="+v).Bool("b", false)
		require.NoError(t, err)
		assert.True(t, b, v)
	}
	for _, v := range []string{"0", "false", "False", "FALSE"} {
		b, err := parse(t, "b="+v).Bool("b", true)
		require.NoError(t, err)
		assert.False(t, b, v)
	}
	for _, v := range []string{"yes", "on", "tRUE", "2"} {
		_, err := parse(t, "b="+v).Bool("b", false)
		assert.True(t, errors.Is(err, ErrBadValue), v)
	}

	b, err := parse(t, "").Bool("b", true)
	require.NoError(t, err)
	assert.True(t, b)
}

// TestParseLayers tests layer list parsing.
func TestParseLayers(t *testing.T) {
	tests := []struct {
		in      string
		want    []int
		wantErr bool
	}{
		{"[4,6,3]", []int{4, 6, 3}, false},
		{" [ 2 , 1 ] ", []int{2, 1}, false},
		{"[]", nil, false},
		{"[ ]", nil, false},
		{"4,6,3", nil, true},
		{"[4,,3]", nil, true},
		{"[4,0,3]", nil, true},
		{"[4,-1]", nil, true},
		{"[a]", nil, true},
	}
	for _, tt := range tests {
		got, err := ParseLayers(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

// TestLoad tests reading from disk.
func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.txt")
	require.NoError(t, os.WriteFile(path, []byte("datafile=\"my data.txt\"\nlayers=[1,1]\n"), 0o600))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, path, c.Name())
	assert.True(t, c.Has("layers"))
	assert.False(t, c.Has("export"))

	v, err := c.Required("datafile")
	require.NoError(t, err)
	assert.Equal(t, "my data.txt", v)

	_, err = Load(filepath.Join(dir, "missing.txt"))
	var cerr *Error
	assert.True(t, errors.As(err, &cerr))
}
