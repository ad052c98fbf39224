package consensus

import (
	"encoding/binary"
	"math/big"
)

// ChainState is the fixpoint of the block transition: everything the engine
// needs to validate the next block, and nothing else.  It is a plain value;
// a transition consumes one state and returns the next.
type ChainState struct {
	BlockHeight    uint32
	TotalWork      [32]byte // accumulated work, big-endian
	BestBlockHash  Digest
	CurrentTarget  uint32 // compact bits
	EpochStartTime uint32
	PrevTimestamps [TimestampWindow]uint32
}

// ChainStateBytes is the length of the canonical serialized form.
const ChainStateBytes = 120

// NewChainState returns the empty pre-genesis state: no blocks applied and
// the proof-of-work limit as the current target.  The genesis block applies
// to it as an ordinary transition.
func NewChainState() ChainState {
	return ChainState{CurrentTarget: PowLimitBits}
}

func (s *ChainState) totalWorkBig() *big.Int {
	return new(big.Int).SetBytes(s.TotalWork[:])
}

// TotalWorkBig returns the accumulated work as a big integer.
func (s *ChainState) TotalWorkBig() *big.Int {
	return s.totalWorkBig()
}

// addWork returns the state's work plus w, or an error if the sum leaves
// 256 bits.
func addWork(current [32]byte, w *big.Int) ([32]byte, error) {
	sum := new(big.Int).SetBytes(current[:])
	sum.Add(sum, w)
	if sum.Cmp(maxU256) > 0 {
		return [32]byte{}, cerr(STATE_ERR_WORK_OVERFLOW, "total work exceeds 256 bits")
	}
	var out [32]byte
	sum.FillBytes(out[:])
	return out, nil
}

// MarshalBinary encodes the state into its canonical 120-byte layout:
// block_height (LE u32) || total_work (32 bytes LE) || best_block_hash
// (raw 32) || current_target (LE u32) || epoch_start_time (LE u32) ||
// prev_timestamps (11 x LE u32).
func (s *ChainState) MarshalBinary() ([]byte, error) {
	out := make([]byte, 0, ChainStateBytes)
	var tmp4 [4]byte

	binary.LittleEndian.PutUint32(tmp4[:], s.BlockHeight)
	out = append(out, tmp4[:]...)

	work := s.TotalWork
	reverseBytes32(&work)
	out = append(out, work[:]...)

	best := s.BestBlockHash.Bytes()
	out = append(out, best[:]...)

	binary.LittleEndian.PutUint32(tmp4[:], s.CurrentTarget)
	out = append(out, tmp4[:]...)
	binary.LittleEndian.PutUint32(tmp4[:], s.EpochStartTime)
	out = append(out, tmp4[:]...)

	for _, ts := range s.PrevTimestamps {
		binary.LittleEndian.PutUint32(tmp4[:], ts)
		out = append(out, tmp4[:]...)
	}
	return out, nil
}

// UnmarshalBinary decodes the canonical 120-byte layout.
func (s *ChainState) UnmarshalBinary(b []byte) error {
	if len(b) != ChainStateBytes {
		return cerrf(STATE_ERR_ENCODING, "state must be %d bytes, got %d", ChainStateBytes, len(b))
	}
	s.BlockHeight = binary.LittleEndian.Uint32(b[0:4])

	copy(s.TotalWork[:], b[4:36])
	reverseBytes32(&s.TotalWork)

	best, err := DigestFromBytes(b[36:68])
	if err != nil {
		return err
	}
	s.BestBlockHash = best

	s.CurrentTarget = binary.LittleEndian.Uint32(b[68:72])
	s.EpochStartTime = binary.LittleEndian.Uint32(b[72:76])
	for i := 0; i < TimestampWindow; i++ {
		s.PrevTimestamps[i] = binary.LittleEndian.Uint32(b[76+4*i:])
	}
	return nil
}
