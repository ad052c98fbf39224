package consensus

import (
	"encoding/binary"
	"encoding/hex"
	"math/big"
)

// Digest is a 32-byte hash held as eight big-endian u32 words over the raw
// double-SHA-256 output. Bitcoin's display convention reverses the bytes;
// reversal happens only at the String/parse boundary, never inside the engine.
type Digest [8]uint32

func NewDigest(b [32]byte) Digest {
	var d Digest
	for i := range d {
		d[i] = binary.BigEndian.Uint32(b[4*i:])
	}
	return d
}

// Bytes returns the raw (wire-order) byte form of the digest.
func (d Digest) Bytes() [32]byte {
	var out [32]byte
	for i, w := range d {
		binary.BigEndian.PutUint32(out[4*i:], w)
	}
	return out
}

// String renders the digest in display order (byte-reversed hex).
func (d Digest) String() string {
	b := d.Bytes()
	reverseBytes32(&b)
	return hex.EncodeToString(b[:])
}

// DigestFromBytes builds a Digest from 32 raw (wire-order) bytes.
func DigestFromBytes(b []byte) (Digest, error) {
	if len(b) != 32 {
		return Digest{}, cerrf(WIRE_ERR_PARSE, "digest must be 32 bytes, got %d", len(b))
	}
	var arr [32]byte
	copy(arr[:], b)
	return NewDigest(arr), nil
}

// DigestFromDisplayHex parses a digest from its byte-reversed display form.
func DigestFromDisplayHex(s string) (Digest, error) {
	raw, err := hex.DecodeString(s)
	if err != nil {
		return Digest{}, cerrf(WIRE_ERR_PARSE, "digest hex: %v", err)
	}
	if len(raw) != 32 {
		return Digest{}, cerrf(WIRE_ERR_PARSE, "digest must be 32 bytes, got %d", len(raw))
	}
	var arr [32]byte
	copy(arr[:], raw)
	reverseBytes32(&arr)
	return NewDigest(arr), nil
}

// big interprets the digest as a little-endian 256-bit integer, the form used
// for proof-of-work comparison.
func (d Digest) big() *big.Int {
	b := d.Bytes()
	reverseBytes32(&b)
	return new(big.Int).SetBytes(b[:])
}

func reverseBytes32(b *[32]byte) {
	for i := 0; i < 16; i++ {
		b[i], b[31-i] = b[31-i], b[i]
	}
}
