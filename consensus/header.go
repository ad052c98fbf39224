package consensus

import (
	"encoding/binary"

	"github.com/lomasson/raito/crypto"
)

// Header is the authenticated part of a block the engine carries forward.
// The on-wire header also contains prev_block_hash and merkle_root; those are
// deliberately omitted here and supplied at hash-validation time — prev from
// the previous chain state, merkle from the block body — so the linkage is
// re-proven on every transition instead of trusted from storage.
type Header struct {
	Hash    Digest
	Version uint32
	Time    uint32
	Bits    uint32
	Nonce   uint32
}

// HeaderWireBytes is the canonical on-wire header length.
const HeaderWireBytes = 80

// HeaderBytes assembles the 80-byte header preimage in wire order:
// version || prev || merkle || time || bits || nonce, integers little-endian,
// digests in raw byte order.
func HeaderBytes(h *Header, prev Digest, merkle Digest) []byte {
	out := make([]byte, 0, HeaderWireBytes)
	var tmp4 [4]byte

	binary.LittleEndian.PutUint32(tmp4[:], h.Version)
	out = append(out, tmp4[:]...)
	prevBytes := prev.Bytes()
	out = append(out, prevBytes[:]...)
	merkleBytes := merkle.Bytes()
	out = append(out, merkleBytes[:]...)
	binary.LittleEndian.PutUint32(tmp4[:], h.Time)
	out = append(out, tmp4[:]...)
	binary.LittleEndian.PutUint32(tmp4[:], h.Bits)
	out = append(out, tmp4[:]...)
	binary.LittleEndian.PutUint32(tmp4[:], h.Nonce)
	out = append(out, tmp4[:]...)
	return out
}

// CheckHeaderHash recomputes the double-SHA-256 of the header preimage and
// compares it to the header's declared hash.
func CheckHeaderHash(p crypto.Provider, h *Header, prev Digest, merkle Digest) error {
	got := NewDigest(p.DoubleSHA256(HeaderBytes(h, prev, merkle)))
	if got != h.Hash {
		return cerrf(BLOCK_ERR_HASH_INVALID, "computed %s, declared %s", got, h.Hash)
	}
	return nil
}

// ParseHeaderBytes decodes a full 80-byte wire header, returning the reduced
// header (with its hash recomputed via p) plus the linkage fields.
func ParseHeaderBytes(p crypto.Provider, b []byte) (Header, Digest, Digest, error) {
	if len(b) != HeaderWireBytes {
		return Header{}, Digest{}, Digest{}, cerrf(WIRE_ERR_PARSE, "header must be %d bytes, got %d", HeaderWireBytes, len(b))
	}
	var h Header
	h.Version = binary.LittleEndian.Uint32(b[0:4])
	prev, err := DigestFromBytes(b[4:36])
	if err != nil {
		return Header{}, Digest{}, Digest{}, err
	}
	merkle, err := DigestFromBytes(b[36:68])
	if err != nil {
		return Header{}, Digest{}, Digest{}, err
	}
	h.Time = binary.LittleEndian.Uint32(b[68:72])
	h.Bits = binary.LittleEndian.Uint32(b[72:76])
	h.Nonce = binary.LittleEndian.Uint32(b[76:80])
	h.Hash = NewDigest(p.DoubleSHA256(b))
	return h, prev, merkle, nil
}
