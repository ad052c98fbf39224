package consensus

import (
	"bytes"
	"testing"

	"github.com/lomasson/raito/crypto"
)

// Mainnet block 170, the first block with a non-coinbase transaction.
func block170Header(t *testing.T) (Header, Digest, Digest) {
	t.Helper()
	prev := mustDigest(t, "000000002a22cfee1f2c846adbd12b3e183d4f97683f85dad08a79780a84bd55")
	merkle := mustDigest(t, "7dac2c5666815c17a3b36427de37bb9d2e2c5ccec3f8633eb91a4205cb4c10ff")
	h := Header{
		Hash:    mustDigest(t, "00000000d1145790a8694403d4063f323d499e655c83426834d4ce2f8dd4a2ee"),
		Version: 1,
		Time:    1231731025,
		Bits:    0x1d00ffff,
		Nonce:   1889418792,
	}
	return h, prev, merkle
}

func TestCheckHeaderHash_Block170(t *testing.T) {
	h, prev, merkle := block170Header(t)
	if err := CheckHeaderHash(crypto.StdProvider{}, &h, prev, merkle); err != nil {
		t.Fatalf("CheckHeaderHash: %v", err)
	}
}

func TestCheckHeaderHash_WrongMerkle(t *testing.T) {
	h, prev, _ := block170Header(t)
	merkle := mustDigest(t, "6dac2c5666815c17a3b36427de37bb9d2e2c5ccec3f8633eb91a4205cb4c10ff")
	err := CheckHeaderHash(crypto.StdProvider{}, &h, prev, merkle)
	mustCode(t, err, BLOCK_ERR_HASH_INVALID)
}

func TestCheckHeaderHash_WrongPrev(t *testing.T) {
	h, _, merkle := block170Header(t)
	prev := mustDigest(t, "000000002a22cfee1f2c846adbd12b3e183d4f97683f85dad08a79780a84bd56")
	err := CheckHeaderHash(crypto.StdProvider{}, &h, prev, merkle)
	mustCode(t, err, BLOCK_ERR_HASH_INVALID)
}

func TestBlock170_SatisfiesPow(t *testing.T) {
	h, _, _ := block170Header(t)
	target, err := BitsToTarget(h.Bits)
	if err != nil {
		t.Fatalf("BitsToTarget: %v", err)
	}
	if err := checkProofOfWork(h.Hash, target); err != nil {
		t.Fatalf("checkProofOfWork: %v", err)
	}
}

func TestHeaderBytes_WireLayout(t *testing.T) {
	h, prev, merkle := block170Header(t)
	b := HeaderBytes(&h, prev, merkle)
	if len(b) != HeaderWireBytes {
		t.Fatalf("preimage length: got=%d want=%d", len(b), HeaderWireBytes)
	}
	// version LE at the front, then the prev hash in raw byte order.
	if !bytes.Equal(b[0:4], []byte{0x01, 0x00, 0x00, 0x00}) {
		t.Fatalf("version bytes: got=%x", b[0:4])
	}
	prevBytes := prev.Bytes()
	if !bytes.Equal(b[4:36], prevBytes[:]) {
		t.Fatalf("prev hash not in raw wire order")
	}
}

func TestParseHeaderBytes_RoundTrip(t *testing.T) {
	p := crypto.StdProvider{}
	h, prev, merkle := block170Header(t)
	wire := HeaderBytes(&h, prev, merkle)

	gotH, gotPrev, gotMerkle, err := ParseHeaderBytes(p, wire)
	if err != nil {
		t.Fatalf("ParseHeaderBytes: %v", err)
	}
	if gotH != h {
		t.Fatalf("header mismatch: got=%+v want=%+v", gotH, h)
	}
	if gotPrev != prev || gotMerkle != merkle {
		t.Fatalf("linkage mismatch")
	}
}

func TestParseHeaderBytes_BadLength(t *testing.T) {
	_, _, _, err := ParseHeaderBytes(crypto.StdProvider{}, make([]byte, 79))
	mustCode(t, err, WIRE_ERR_PARSE)
}

func TestDigest_DisplayRoundTrip(t *testing.T) {
	const display = "00000000d1145790a8694403d4063f323d499e655c83426834d4ce2f8dd4a2ee"
	d := mustDigest(t, display)
	if got := d.String(); got != display {
		t.Fatalf("display mismatch: got=%s want=%s", got, display)
	}
	back, err := DigestFromBytes(func() []byte { b := d.Bytes(); return b[:] }())
	if err != nil {
		t.Fatalf("DigestFromBytes: %v", err)
	}
	if back != d {
		t.Fatalf("raw-bytes round trip mismatch")
	}
}
