package consensus

import (
	"crypto/sha256"
	"testing"
)

// powProvider zeroes the high-order bytes of a real double-SHA-256 so that
// synthetic headers clear the pow limit without mining.  Transition,
// transaction and UTXO tests use it; hash-vector tests use the real provider.
type powProvider struct{}

func (powProvider) DoubleSHA256(input []byte) [32]byte {
	first := sha256.Sum256(input)
	out := sha256.Sum256(first[:])
	for i := 27; i < 32; i++ {
		out[i] = 0
	}
	return out
}

func mustDigest(t *testing.T, display string) Digest {
	t.Helper()
	d, err := DigestFromDisplayHex(display)
	if err != nil {
		t.Fatalf("bad digest %q: %v", display, err)
	}
	return d
}

func mustCode(t *testing.T, err error, code ErrorCode) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error %s, got nil", code)
	}
	if !IsCode(err, code) {
		t.Fatalf("expected error %s, got %v", code, err)
	}
}
