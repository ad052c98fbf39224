package node

import (
	"errors"
	"sync"

	"github.com/lomasson/raito/consensus"
	"github.com/lomasson/raito/crypto"
	"github.com/lomasson/raito/node/store"
)

// coinbaseCreditor is implemented by UTXO views that want the accepted
// coinbase credited back to them (consensus.MemoryUtxoView does).
type coinbaseCreditor interface {
	CreditCoinbase(tx *consensus.Transaction, height uint32)
}

// Chain drives the consensus transition over a persistent store.  It owns
// the current ChainState; the consensus package stays pure.
type Chain struct {
	mu       sync.Mutex
	provider crypto.Provider
	db       *store.DB
	utxo     consensus.UtxoView
	mode     consensus.Mode
	state    consensus.ChainState
}

// NewChain opens a chain over the given store, restoring the persisted state
// or starting from the pre-genesis state.  utxo may be nil in header-only
// mode.
func NewChain(p crypto.Provider, db *store.DB, utxo consensus.UtxoView, mode consensus.Mode) (*Chain, error) {
	if p == nil {
		return nil, errors.New("nil crypto provider")
	}
	if mode == consensus.ModeFull && utxo == nil {
		return nil, errors.New("full mode requires a utxo view")
	}
	state, found, err := db.State()
	if err != nil {
		return nil, err
	}
	if !found {
		state = consensus.NewChainState()
	}
	return &Chain{
		provider: p,
		db:       db,
		utxo:     utxo,
		mode:     mode,
		state:    state,
	}, nil
}

// State returns a copy of the current chain state.
func (c *Chain) State() consensus.ChainState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// ApplyBlock runs the consensus transition for block and, on acceptance,
// persists the new state and the block's wire header atomically.  On
// rejection the in-memory and persisted state are unchanged.
func (c *Chain) ApplyBlock(block *consensus.Block) (consensus.ChainState, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	prev := c.state.BestBlockHash
	height := c.state.BlockHeight

	next, err := consensus.ApplyBlock(c.provider, c.state, block, c.utxo, c.mode)
	if err != nil {
		return c.state, err
	}

	merkle, err := consensus.BlockMerkleRoot(c.provider, block.Data)
	if err != nil {
		return c.state, err
	}
	headerBytes := consensus.HeaderBytes(&block.Header, prev, merkle)
	if err := c.db.PutAccepted(&next, height, block.Header.Hash, headerBytes); err != nil {
		return c.state, err
	}

	if txs, ok := block.Data.(consensus.TransactionsData); ok && c.mode == consensus.ModeFull {
		if cc, ok := c.utxo.(coinbaseCreditor); ok && len(txs.Txs) > 0 {
			cc.CreditCoinbase(txs.Txs[0], height)
		}
	}

	c.state = next
	return next, nil
}

// Reload discards the in-memory state and restores the persisted one.
func (c *Chain) Reload() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	state, found, err := c.db.State()
	if err != nil {
		return err
	}
	if !found {
		state = consensus.NewChainState()
	}
	c.state = state
	return nil
}
