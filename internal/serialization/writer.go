package serialization

import (
	"bytes"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/bpn-ml/bpn/internal/network"
)

// Export writes net to w with its metadata comments and checksum trailer.
func Export(w io.Writer, net *network.Network, meta Meta) error {
	text, err := net.MarshalText()
	if err != nil {
		return errors.Wrap(err, "marshaling network")
	}

	var body bytes.Buffer
	if meta.RunID != uuid.Nil {
		body.WriteString(runPrefix + meta.RunID.String() + "\n")
	}
	if !meta.Exported.IsZero() {
		body.WriteString(exportedPrefix + meta.Exported.UTC().Format(time.RFC3339) + "\n")
	}
	body.Write(text)

	sum := ComputeChecksum(body.Bytes())
	body.WriteString(formatTrailer(sum))

	if _, err := w.Write(body.Bytes()); err != nil {
		return errors.Wrap(err, "writing network")
	}
	return nil
}

// ExportFile writes net to path; "-" writes to standard output.
func ExportFile(path string, net *network.Network, meta Meta) error {
	if path == "-" {
		return Export(os.Stdout, net, meta)
	}

	//nolint:gosec // G304: the export path is user configuration
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "creating export file")
	}
	if err := Export(f, net, meta); err != nil {
		_ = f.Close()
		return err
	}
	return errors.Wrap(f.Close(), "closing export file")
}
