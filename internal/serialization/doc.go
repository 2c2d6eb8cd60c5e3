// Package serialization exports and imports trained networks.
//
// A network file is the network's text form framed by metadata comments and
// closed by a SHA-256 trailer:
//
//	# run 1f0c1c3e-5b0e-4a43-9d6e-0a8f6f1f2b7c
//	# exported 2026-10-17T12:00:00Z
//	bpn-network 1
//	layers 2 3 1
//	...
//	end
//	checksum sha256:<64 hex digits over every preceding byte>
//
// Import verifies the trailer when present; files without one (hand-written
// or produced by older exports) are accepted unverified.
//
// Example usage:
//
//	// Export after training
//	meta := serialization.Meta{RunID: runID, Exported: time.Now()}
//	if err := serialization.ExportFile("net.txt", net, meta); err != nil {
//	    return err
//	}
//
//	// Import for evaluation
//	net, meta, err := serialization.ImportFile("net.txt")
package serialization
