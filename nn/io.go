// Copyright 2025 BPN Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"io"

	"github.com/bpn-ml/bpn/internal/serialization"
)

// Meta describes where an exported network came from.
type Meta = serialization.Meta

// Export writes net with a checksum trailer.
func Export(w io.Writer, net *Network, meta Meta) error {
	return serialization.Export(w, net, meta)
}

// ExportFile writes net to path; "-" writes to standard output.
func ExportFile(path string, net *Network, meta Meta) error {
	return serialization.ExportFile(path, net, meta)
}

// Import reads a network written by Export, verifying its checksum.
func Import(r io.Reader) (*Network, Meta, error) {
	return serialization.Import(r)
}

// ImportFile reads a network from path; "-" reads standard input.
func ImportFile(path string) (*Network, Meta, error) {
	return serialization.ImportFile(path)
}
