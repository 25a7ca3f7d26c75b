package bib

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"github.com/zeebo/blake3"
)

// jsonMarshal is a variable to allow testing of marshal errors.
var jsonMarshal = json.Marshal

// HashBytes computes the SHA-256 hash of bytes and returns it as a hex string.
func HashBytes(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}

// HashString computes the SHA-256 hash of a string and returns it as a hex string.
func HashString(s string) string {
	return HashBytes([]byte(s))
}

// Blake3Hash computes the BLAKE3 hash of bytes and returns it as a hex string.
func Blake3Hash(data []byte) string {
	h := blake3.Sum256(data)
	return hex.EncodeToString(h[:])
}

// HashBlock computes the SHA-256 content hash of a block by serializing it
// to JSON. Two blocks with equal content hash equal regardless of identity,
// which is what copy-on-write tests and deduplication care about.
func HashBlock(b Block) (string, error) {
	data, err := jsonMarshal(b)
	if err != nil {
		return "", err
	}
	return HashBytes(data), nil
}

// FingerprintLibrary computes a BLAKE3 fingerprint over the library's
// block sequence. The fingerprint covers content and order but not the
// library's instance ID, so a deep copy fingerprints identically to its
// source until one of them is reordered.
func FingerprintLibrary(l *Library) (string, error) {
	data, err := jsonMarshal(l.Blocks())
	if err != nil {
		return "", err
	}
	return Blake3Hash(data), nil
}
