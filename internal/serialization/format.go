package serialization

import (
	"time"

	"github.com/google/uuid"
)

// Framing lines around the network text.
const (
	checksumPrefix = "checksum sha256:"
	runPrefix      = "# run "
	exportedPrefix = "# exported "
)

// Meta describes where an exported network came from.
type Meta struct {
	RunID    uuid.UUID // uuid.Nil when unknown
	Exported time.Time // zero when unknown
}
