package consensus

import "math/big"

// PowLimitBits is the compact encoding of the easiest allowed target.
const PowLimitBits uint32 = 0x1d00ffff

var (
	// bigOne is 1 represented as a big.Int.  It is defined here to avoid
	// the overhead of creating it multiple times.
	bigOne = big.NewInt(1)

	// maxU256 is 2^256 - 1, the largest value a target may take.
	maxU256 = new(big.Int).Sub(new(big.Int).Lsh(bigOne, 256), bigOne)

	// maxTarget is PowLimitBits decoded: 0xffff * 2^208.
	maxTarget = new(big.Int).Lsh(big.NewInt(0xffff), 208)
)

// PowLimit returns a copy of the decoded maximum target.
func PowLimit() *big.Int {
	return new(big.Int).Set(maxTarget)
}

// BitsToTarget converts a compact target representation to the 256-bit target
// it encodes.  The representation packs an unsigned base-256 exponent in the
// top byte, a sign bit at bit 23, and a 23-bit mantissa:
//
//	N = mantissa * 256^(exponent-3)
//
// A set sign bit, a target wider than 256 bits, and a target above the
// proof-of-work limit are all rejected.
func BitsToTarget(bits uint32) (*big.Int, error) {
	if bits&0x00800000 != 0 {
		return nil, cerrf(TARGET_ERR_NEGATIVE, "bits %08x has the sign bit set", bits)
	}
	mantissa := bits & 0x007fffff
	exponent := uint(bits >> 24)

	var target *big.Int
	if exponent <= 3 {
		mantissa >>= 8 * (3 - exponent)
		target = big.NewInt(int64(mantissa))
	} else {
		target = big.NewInt(int64(mantissa))
		target.Lsh(target, 8*(exponent-3))
		if target.Cmp(maxU256) > 0 {
			return nil, cerrf(TARGET_ERR_OVERFLOW, "bits %08x exceed 256 bits", bits)
		}
	}
	if target.Cmp(maxTarget) > 0 {
		return nil, cerrf(TARGET_ERR_ABOVE_MAX, "bits %08x decode above the pow limit", bits)
	}
	return target, nil
}

// TargetToBits converts a target to its canonical compact representation.
// Only 23 bits of mantissa precision survive; when the top mantissa bit would
// collide with the sign bit the mantissa is shifted down a byte and the
// exponent bumped, so re-decoding always yields a non-negative value.
func TargetToBits(target *big.Int) (uint32, error) {
	if target.Sign() < 0 {
		return 0, cerr(TARGET_ERR_NEGATIVE, "cannot encode a negative target")
	}
	if target.Cmp(maxU256) > 0 {
		return 0, cerr(TARGET_ERR_OVERFLOW, "target exceeds 256 bits")
	}
	if target.Sign() == 0 {
		return 0, nil
	}

	var mantissa uint32
	exponent := uint(len(target.Bytes()))
	if exponent <= 3 {
		mantissa = uint32(target.Bits()[0])
		mantissa <<= 8 * (3 - exponent)
	} else {
		// Use a copy to avoid modifying the caller's target.
		tn := new(big.Int).Set(target)
		mantissa = uint32(tn.Rsh(tn, 8*(exponent-3)).Bits()[0])
	}

	if mantissa&0x00800000 != 0 {
		mantissa >>= 8
		exponent++
	}
	return uint32(exponent<<24) | mantissa, nil
}

// WorkFromTarget computes the expected number of hashes represented by a
// target: floor((2^256 - 1) / (target + 1)), with the full-range target
// special-cased to 1 so that every accepted block contributes work.
func WorkFromTarget(target *big.Int) (*big.Int, error) {
	if target.Sign() < 0 {
		return nil, cerr(TARGET_ERR_NEGATIVE, "cannot compute work for a negative target")
	}
	if target.Cmp(maxU256) > 0 {
		return nil, cerr(TARGET_ERR_OVERFLOW, "target exceeds 256 bits")
	}
	if target.Cmp(maxU256) == 0 {
		return big.NewInt(1), nil
	}
	denom := new(big.Int).Add(target, bigOne)
	return new(big.Int).Quo(new(big.Int).Set(maxU256), denom), nil
}
