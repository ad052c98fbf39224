package consensus

import (
	"math/big"
	"testing"
)

func TestNextBits_OffBoundaryKeepsTarget(t *testing.T) {
	state := NewChainState()
	state.BlockHeight = 2015
	state.CurrentTarget = 0x1b0404cb

	bits, err := nextBits(&state, 2_000_000)
	if err != nil {
		t.Fatalf("nextBits: %v", err)
	}
	if bits != 0x1b0404cb {
		t.Fatalf("bits mismatch: got=%08x want=1b0404cb", bits)
	}
}

func TestNextBits_GenesisKeepsTarget(t *testing.T) {
	state := NewChainState()
	bits, err := nextBits(&state, 1231006505)
	if err != nil {
		t.Fatalf("nextBits: %v", err)
	}
	if bits != PowLimitBits {
		t.Fatalf("bits mismatch: got=%08x want=%08x", bits, PowLimitBits)
	}
}

func TestNextBits_IdentityAtExpectedTimespan(t *testing.T) {
	state := NewChainState()
	state.BlockHeight = RetargetInterval
	state.CurrentTarget = 0x1b0404cb
	state.EpochStartTime = 1_000_000

	bits, err := nextBits(&state, 1_000_000+TargetTimespan)
	if err != nil {
		t.Fatalf("nextBits: %v", err)
	}
	if bits != 0x1b0404cb {
		t.Fatalf("bits mismatch: got=%08x want=1b0404cb", bits)
	}
}

func TestNextBits_ClampLow(t *testing.T) {
	// An epoch far faster than 1/4 of the target timespan clamps to a
	// quarter: new target = old / 4.
	state := NewChainState()
	state.BlockHeight = RetargetInterval
	state.EpochStartTime = 1_000_000

	bits, err := nextBits(&state, 1_000_000+100_000)
	if err != nil {
		t.Fatalf("nextBits: %v", err)
	}
	if bits != 0x1c3fffc0 {
		t.Fatalf("bits mismatch: got=%08x want=1c3fffc0", bits)
	}

	got, err := BitsToTarget(bits)
	if err != nil {
		t.Fatalf("BitsToTarget: %v", err)
	}
	want := new(big.Int).Rsh(PowLimit(), 2)
	if got.Cmp(want) != 0 {
		t.Fatalf("target mismatch: got=%064x want=%064x", got, want)
	}
}

func TestNextBits_ClampHighCapsAtPowLimit(t *testing.T) {
	// From the pow limit, a slow epoch cannot ease further than the limit.
	state := NewChainState()
	state.BlockHeight = RetargetInterval
	state.EpochStartTime = 1_000_000

	bits, err := nextBits(&state, 1_000_000+TargetTimespan*10)
	if err != nil {
		t.Fatalf("nextBits: %v", err)
	}
	if bits != PowLimitBits {
		t.Fatalf("bits mismatch: got=%08x want=%08x", bits, PowLimitBits)
	}
}

func TestNextBits_ClampHighQuadruples(t *testing.T) {
	state := NewChainState()
	state.BlockHeight = RetargetInterval * 2
	state.CurrentTarget = 0x1b0404cb
	state.EpochStartTime = 1_000_000

	bits, err := nextBits(&state, 1_000_000+TargetTimespan*10)
	if err != nil {
		t.Fatalf("nextBits: %v", err)
	}
	old, err := BitsToTarget(0x1b0404cb)
	if err != nil {
		t.Fatalf("BitsToTarget: %v", err)
	}
	got, err := BitsToTarget(bits)
	if err != nil {
		t.Fatalf("BitsToTarget: %v", err)
	}
	want := new(big.Int).Lsh(old, 2)
	if got.Cmp(want) != 0 {
		t.Fatalf("target mismatch: got=%064x want=%064x", got, want)
	}
}

func TestNextBits_EarlierTimeClampsLow(t *testing.T) {
	// A retarget header timestamped before the epoch start still clamps to
	// the quarter floor instead of going negative.
	state := NewChainState()
	state.BlockHeight = RetargetInterval
	state.EpochStartTime = 2_000_000

	bits, err := nextBits(&state, 1_000_000)
	if err != nil {
		t.Fatalf("nextBits: %v", err)
	}
	if bits != 0x1c3fffc0 {
		t.Fatalf("bits mismatch: got=%08x want=1c3fffc0", bits)
	}
}
