package serialization

import (
	"bufio"
	"bytes"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/bpn-ml/bpn/internal/network"
)

// ReaderOptions configures Import.
type ReaderOptions struct {
	SkipChecksumValidation bool            // accept files whose trailer does not match
	ValidationLevel        ValidationLevel // validation strictness
}

// Import reads a network written by Export with strict validation.
func Import(r io.Reader) (*network.Network, Meta, error) {
	return ImportWithOptions(r, ReaderOptions{ValidationLevel: ValidationStrict})
}

// ImportWithOptions reads a network written by Export.
func ImportWithOptions(r io.Reader, opts ReaderOptions) (*network.Network, Meta, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, Meta{}, errors.Wrap(err, "reading network")
	}

	body, stored, hasTrailer, err := splitTrailer(data)
	if err != nil {
		return nil, Meta{}, err
	}
	if hasTrailer && !opts.SkipChecksumValidation {
		if err := ValidateChecksum(ComputeChecksum(body), stored); err != nil {
			return nil, Meta{}, err
		}
	}

	if opts.ValidationLevel != ValidationNone {
		if err := ValidateLayout(body); err != nil {
			return nil, Meta{}, err
		}
	}

	net := new(network.Network)
	if err := net.UnmarshalText(body); err != nil {
		return nil, Meta{}, err
	}

	if opts.ValidationLevel == ValidationStrict {
		if err := ValidateWeights(net); err != nil {
			return nil, Meta{}, err
		}
	}

	return net, parseMeta(body), nil
}

// ImportFile reads a network from path; "-" reads standard input.
func ImportFile(path string) (*network.Network, Meta, error) {
	if path == "-" {
		return Import(os.Stdin)
	}

	//nolint:gosec // G304: the import path is user configuration
	f, err := os.Open(path)
	if err != nil {
		return nil, Meta{}, errors.Wrap(err, "opening network file")
	}
	defer f.Close()

	net, meta, err := Import(f)
	if err != nil {
		return nil, Meta{}, errors.Wrapf(err, "importing %s", path)
	}
	return net, meta, nil
}

// parseMeta collects the metadata comments. Unparsable values are ignored:
// they are comments to the network parser too.
func parseMeta(body []byte) Meta {
	var meta Meta
	scanner := bufio.NewScanner(bytes.NewReader(body))
	scanner.Buffer(make([]byte, 0, 64*1024), 64*1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, "#") {
			continue
		}
		if v, ok := strings.CutPrefix(line, runPrefix); ok {
			if id, err := uuid.Parse(strings.TrimSpace(v)); err == nil {
				meta.RunID = id
			}
		}
		if v, ok := strings.CutPrefix(line, exportedPrefix); ok {
			if ts, err := time.Parse(time.RFC3339, strings.TrimSpace(v)); err == nil {
				meta.Exported = ts
			}
		}
	}
	return meta
}
