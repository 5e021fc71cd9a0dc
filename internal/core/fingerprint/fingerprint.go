// Package fingerprint derives content-addressed cache keys from synthesis
// request parameters.
package fingerprint

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"hash"
	"math"
)

// Sum returns the cache key for a synthesis request. Every field is
// length-prefixed before hashing so values cannot bleed across field
// boundaries. Text is hashed exactly as received: no trimming or case
// folding, so inputs differing in whitespace address distinct artifacts.
//
// Callers must resolve optional fields to their defaults first, so that a
// request relying on defaults and one spelling them out share a key.
func Sum(text, speaker string, speed float64, ssml bool) string {
	h := sha256.New()
	writeField(h, []byte(text))
	writeField(h, []byte(speaker))

	var speedBits [8]byte
	binary.BigEndian.PutUint64(speedBits[:], math.Float64bits(speed))
	writeField(h, speedBits[:])

	if ssml {
		writeField(h, []byte{1})
	} else {
		writeField(h, []byte{0})
	}

	return hex.EncodeToString(h.Sum(nil))
}

func writeField(h hash.Hash, b []byte) {
	var n [8]byte
	binary.BigEndian.PutUint64(n[:], uint64(len(b)))
	h.Write(n[:])
	h.Write(b)
}
