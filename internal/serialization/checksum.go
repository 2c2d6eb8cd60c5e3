package serialization

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"strings"

	"github.com/pkg/errors"
)

// ComputeChecksum computes SHA-256 checksum of data.
func ComputeChecksum(data []byte) [32]byte {
	return sha256.Sum256(data)
}

// ComputeChecksumReader computes SHA-256 checksum from an io.Reader.
func ComputeChecksumReader(r io.Reader) ([32]byte, error) {
	h := sha256.New()
	if _, err := io.Copy(h, r); err != nil {
		return [32]byte{}, err
	}
	var sum [32]byte
	copy(sum[:], h.Sum(nil))
	return sum, nil
}

// ValidateChecksum compares computed checksum against stored checksum.
// Returns ErrChecksumMismatch if they don't match.
func ValidateChecksum(computed, stored [32]byte) error {
	if computed != stored {
		return ErrChecksumMismatch
	}
	return nil
}

// formatTrailer returns the trailer line for sum, newline included.
func formatTrailer(sum [32]byte) string {
	return checksumPrefix + hex.EncodeToString(sum[:]) + "\n"
}

// splitTrailer separates data into the checksummed body and the stored
// checksum. ok is false when data has no trailer.
func splitTrailer(data []byte) (body []byte, stored [32]byte, ok bool, err error) {
	trimmed := bytes.TrimRight(data, "\r\n\t ")
	start := bytes.LastIndexByte(trimmed, '\n') + 1
	last := string(trimmed[start:])
	if !strings.HasPrefix(last, "checksum ") {
		return data, stored, false, nil
	}

	digest, found := strings.CutPrefix(last, checksumPrefix)
	if !found {
		return nil, stored, false, errors.Wrapf(ErrBadChecksum, "%q", last)
	}
	digest = strings.TrimSpace(digest)
	if len(digest) != hex.EncodedLen(len(stored)) {
		return nil, stored, false, errors.Wrapf(ErrBadChecksum, "%q", last)
	}
	if _, err := hex.Decode(stored[:], []byte(digest)); err != nil {
		return nil, stored, false, errors.Wrapf(ErrBadChecksum, "%q: %v", last, err)
	}
	return data[:start], stored, true, nil
}
