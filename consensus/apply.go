package consensus

import (
	"fmt"

	"github.com/lomasson/raito/crypto"
)

// TransactionData is the tagged body of a block: either a bare merkle root
// asserted by the caller (header-only validation) or the full transaction
// list the root is computed from.
type TransactionData interface {
	isTransactionData()
}

// MerkleRootData asserts a merkle root without supplying transactions.
// Blocks carrying it advance the chain only in header-only mode.
type MerkleRootData struct {
	Root Digest
}

// TransactionsData carries the full transaction list.
type TransactionsData struct {
	Txs []*Transaction
}

func (MerkleRootData) isTransactionData()   {}
func (TransactionsData) isTransactionData() {}

// Block is a candidate extension of the chain.
type Block struct {
	Header Header
	Data   TransactionData
}

// Mode selects how much of a block the transition demands.
type Mode int

const (
	// ModeFull requires the transaction list and enforces transaction
	// semantics through the UTXO collaborator.
	ModeFull Mode = iota

	// ModeHeaderOnly accepts caller-asserted merkle roots and skips
	// coinbase and fee enforcement.
	ModeHeaderOnly
)

// BlockMerkleRoot resolves the merkle root a block's body commits to:
// the asserted root for MerkleRootData, the computed root over the
// transaction ids for TransactionsData.
func BlockMerkleRoot(p crypto.Provider, data TransactionData) (Digest, error) {
	switch d := data.(type) {
	case MerkleRootData:
		return d.Root, nil
	case TransactionsData:
		leaves := make([][32]byte, len(d.Txs))
		for i, tx := range d.Txs {
			leaves[i] = TxID(p, tx)
		}
		root, err := MerkleRoot(p, leaves)
		if err != nil {
			return Digest{}, err
		}
		return NewDigest(root), nil
	default:
		return Digest{}, cerr(WIRE_ERR_PARSE, "unknown transaction data variant")
	}
}

// ApplyBlock runs the full validate-then-apply transition for one block and
// returns the next chain state.  On any failure the input state is returned
// unchanged alongside the error; nothing partial is ever published.
//
// Validation order: header hash linkage, target encoding, expected target,
// proof of work, median-time-past, then (full blocks only) transaction
// application via the UTXO collaborator and the coinbase bound.  The first
// failure short-circuits.
func ApplyBlock(p crypto.Provider, state ChainState, block *Block, utxo UtxoView, mode Mode) (ChainState, error) {
	height := state.BlockHeight

	var txs []*Transaction
	switch d := block.Data.(type) {
	case MerkleRootData:
		if mode != ModeHeaderOnly {
			return state, cerrf(BLOCK_ERR_BODY_REQUIRED, "height %d: merkle-root-only block requires header-only mode", height)
		}
	case TransactionsData:
		txs = d.Txs
	}
	merkle, err := BlockMerkleRoot(p, block.Data)
	if err != nil {
		return state, err
	}

	// 1. Hash validity against the previous best hash and the body's root.
	if err := CheckHeaderHash(p, &block.Header, state.BestBlockHash, merkle); err != nil {
		return state, err
	}

	// 2. Target encoding.
	target, err := BitsToTarget(block.Header.Bits)
	if err != nil {
		return state, err
	}

	// 3. Expected target for this height.
	expectedBits, err := nextBits(&state, block.Header.Time)
	if err != nil {
		return state, err
	}
	if block.Header.Bits != expectedBits {
		return state, cerrf(BLOCK_ERR_TARGET_UNEXPECTED, "height %d: bits %08x, expected %08x", height, block.Header.Bits, expectedBits)
	}

	// 4. Proof of work.
	if err := checkProofOfWork(block.Header.Hash, target); err != nil {
		return state, err
	}

	// 5. Timestamp strictly above the median time past.
	if median, ok := medianTimePast(height, state.PrevTimestamps); ok && block.Header.Time <= median {
		return state, cerrf(BLOCK_ERR_TIMESTAMP_OLD, "height %d: time %d not above median %d", height, block.Header.Time, median)
	}

	// 6. Transaction semantics, skipped entirely in header-only mode.
	if mode == ModeFull {
		if err := checkCoinbaseStructure(txs); err != nil {
			return state, err
		}
		var totalFees uint64
		for i := 1; i < len(txs); i++ {
			fee, err := utxo.ApplyTransaction(txs[i], height, block.Header.Time)
			if err != nil {
				return state, cwrap(TX_ERR_UTXO, fmt.Sprintf("transaction %d rejected", i), err)
			}
			totalFees, err = addU64(totalFees, fee, TX_ERR_FEE_OVERFLOW)
			if err != nil {
				return state, err
			}
		}
		if err := checkCoinbaseValue(txs[0], height, totalFees); err != nil {
			return state, err
		}
	}

	// 7. Apply.
	work, err := WorkFromTarget(target)
	if err != nil {
		return state, err
	}
	next := state
	next.TotalWork, err = addWork(state.TotalWork, work)
	if err != nil {
		return state, err
	}
	next.BlockHeight = height + 1
	next.BestBlockHash = block.Header.Hash
	insertTimestamp(&next.PrevTimestamps, height, block.Header.Time)
	if height%RetargetInterval == 0 {
		// The epoch's first block records its own time as the epoch
		// start; Bitcoin's retarget has always measured from there.
		next.CurrentTarget = expectedBits
		next.EpochStartTime = block.Header.Time
	}
	return next, nil
}
