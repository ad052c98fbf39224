package consensus

import "github.com/lomasson/raito/crypto"

// MerkleRoot computes the merkle root over an ordered list of 32-byte leaf
// hashes.  Pairs hash left-to-right with double-SHA-256; an odd level pairs
// its last entry with itself.
//
// A sibling pair holding identical hashes in its two distinct positions is
// rejected at every level: duplicating entries lets two different
// transaction lists commit to the same root (CVE-2012-2459), so the forgery
// is refused rather than resolved.  Only the two members of a pair are
// compared; equal neighbours that belong to different pairs are not.  The
// self-pairing appended for an odd count is not subject to the check; it
// never spans two caller-visible positions.
func MerkleRoot(p crypto.Provider, leaves [][32]byte) ([32]byte, error) {
	if len(leaves) == 0 {
		return [32]byte{}, cerr(MERKLE_ERR_EMPTY, "no leaves")
	}

	level := append([][32]byte(nil), leaves...)
	var preimage [64]byte
	for len(level) > 1 {
		next := make([][32]byte, 0, (len(level)+1)/2)
		for i := 0; i < len(level); i += 2 {
			j := i + 1
			if j == len(level) {
				// Odd count: the last entry pairs with itself.
				j = i
			} else if level[i] == level[j] {
				return [32]byte{}, cerrf(MERKLE_ERR_DUPLICATE_SIBLING,
					"identical siblings at positions %d and %d", i, j)
			}
			copy(preimage[:32], level[i][:])
			copy(preimage[32:], level[j][:])
			next = append(next, p.DoubleSHA256(preimage[:]))
		}
		level = next
	}
	return level[0], nil
}
