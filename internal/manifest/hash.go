// Package manifest implements the content-addressed file inventory that
// backs incremental indexing (spec §4.4): hashing, change detection, and
// the atomic reconciliation transaction.
package manifest

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// largeFileThreshold is the byte size at or above which a file is
// fingerprinted rather than hashed in full (spec §4.4: "Files ≥ 1 MiB").
const largeFileThreshold = 1 << 20 // 1 MiB

const sampleWindow = 8 << 10 // 8 KiB

// Algorithm names the hashing scheme used for a file, recorded alongside
// its hash so a future algorithm change forces a full rescan.
type Algorithm string

const (
	AlgorithmSmall Algorithm = "sha256-16"
	AlgorithmLarge Algorithm = "sha256-16-large"
)

// ContentHash computes a file's manifest content hash per spec §4.4: small
// files are SHA-256 of the full content truncated to 16 hex chars; large
// files are fingerprinted from a head/tail sample plus the exact size, with
// an "L" prefix on the 15-char truncation (so the tagged hash is still 16
// characters wide).
func ContentHash(content []byte) (hash string, algo Algorithm) {
	if len(content) < largeFileThreshold {
		sum := sha256.Sum256(content)
		return hex.EncodeToString(sum[:])[:16], AlgorithmSmall
	}

	head := content[:min(sampleWindow, len(content))]
	tail := content[max(0, len(content)-sampleWindow):]

	fingerprint := make([]byte, 0, len(head)+len(tail)+20)
	fingerprint = append(fingerprint, head...)
	fingerprint = append(fingerprint, tail...)
	fingerprint = append(fingerprint, []byte(fmt.Sprintf("%d", len(content)))...)

	sum := sha256.Sum256(fingerprint)
	return "L" + hex.EncodeToString(sum[:])[:15], AlgorithmLarge
}
