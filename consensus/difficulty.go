package consensus

import "math/big"

const (
	// TargetTimespan is the intended duration of one retarget epoch, in
	// seconds (two weeks).
	TargetTimespan = 1_209_600

	// RetargetInterval is the number of blocks per retarget epoch.
	RetargetInterval = 2016
)

// nextBits computes the compact target required of the block at height
// state.BlockHeight.  Away from a retarget boundary this is the epoch's
// current target.  At a boundary the epoch's actual duration — measured from
// the epoch's first block to the candidate itself — is clamped to [1/4, 4]
// of TargetTimespan, scaled onto the old target in extended precision, and
// capped at the proof-of-work limit.
func nextBits(state *ChainState, headerTime uint32) (uint32, error) {
	height := state.BlockHeight
	if height == 0 || height%RetargetInterval != 0 {
		return state.CurrentTarget, nil
	}

	oldTarget, err := BitsToTarget(state.CurrentTarget)
	if err != nil {
		return 0, err
	}

	actual := int64(headerTime) - int64(state.EpochStartTime)
	if actual < TargetTimespan/4 {
		actual = TargetTimespan / 4
	}
	if actual > TargetTimespan*4 {
		actual = TargetTimespan * 4
	}

	newTarget := new(big.Int).Mul(oldTarget, big.NewInt(actual))
	newTarget.Quo(newTarget, big.NewInt(TargetTimespan))
	if newTarget.Cmp(maxTarget) > 0 {
		newTarget.Set(maxTarget)
	}
	return TargetToBits(newTarget)
}

// checkProofOfWork verifies that the block hash, read as a little-endian
// 256-bit integer, does not exceed the given decoded target.
func checkProofOfWork(hash Digest, target *big.Int) error {
	if hash.big().Cmp(target) > 0 {
		return cerrf(BLOCK_ERR_POW_INSUFFICIENT, "hash %s above target %064x", hash, target)
	}
	return nil
}
