// Package hasher computes streaming content digests for file equality
// checks and copy verification.
package hasher

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/zeebo/blake3"
)

// chunkSize bounds memory use per hash regardless of file size.
const chunkSize = 1 << 20 // 1 MiB

// Size is the digest length in bytes.
const Size = 16

// Digest is a 128-bit content digest. Equal file bytes always produce
// equal digests; an accidental collision is treated as identity for the
// duplicate/verification use case. Not a security boundary.
type Digest [Size]byte

// String returns the hex form of the digest.
func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// HashFile computes the digest of the file's full byte content, reading in
// fixed-size chunks. The digest is the truncated BLAKE3 hash of the file.
func HashFile(path string) (Digest, error) {
	f, err := os.Open(path)
	if err != nil {
		return Digest{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	h := blake3.New()
	buf := make([]byte, chunkSize)
	if _, err := io.CopyBuffer(h, f, buf); err != nil {
		return Digest{}, fmt.Errorf("hash %s: %w", path, err)
	}

	var d Digest
	copy(d[:], h.Sum(nil))
	return d, nil
}
