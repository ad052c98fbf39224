package consensus

import "github.com/lomasson/raito/crypto"

// UtxoView is the external transaction collaborator.  ApplyTransaction
// validates a non-coinbase transaction against the view, applies it, and
// reports the fee.  The engine treats the view opaquely: it only requires
// deterministic fee reporting and error propagation.
type UtxoView interface {
	ApplyTransaction(tx *Transaction, height uint32, blockTime uint32) (fee uint64, err error)
}

// UtxoEntry is one unspent output as tracked by MemoryUtxoView.
type UtxoEntry struct {
	Value          uint64
	ScriptPubKey   []byte
	CreationHeight uint32
	Coinbase       bool
}

// MemoryUtxoView is a reference UtxoView over an in-memory outpoint map.
// It validates value conservation only; script execution belongs to a
// heavier collaborator.
type MemoryUtxoView struct {
	provider crypto.Provider
	entries  map[OutPoint]UtxoEntry
}

func NewMemoryUtxoView(p crypto.Provider) *MemoryUtxoView {
	return &MemoryUtxoView{
		provider: p,
		entries:  make(map[OutPoint]UtxoEntry),
	}
}

// Add seeds the view with an unspent output.
func (v *MemoryUtxoView) Add(op OutPoint, e UtxoEntry) {
	v.entries[op] = e
}

// Len returns the number of unspent outputs in the view.
func (v *MemoryUtxoView) Len() int {
	return len(v.entries)
}

// ApplyTransaction spends tx's inputs, credits its outputs, and returns the
// fee.  On error the view is left unmodified.
func (v *MemoryUtxoView) ApplyTransaction(tx *Transaction, height uint32, blockTime uint32) (uint64, error) {
	if hasCoinbaseInput(tx) {
		return 0, cerr(TX_ERR_MISSING_UTXO, "null outpoint is not spendable")
	}

	var inputSum uint64
	spent := make([]OutPoint, 0, len(tx.Inputs))
	for i, in := range tx.Inputs {
		entry, ok := v.entries[in.PrevOut]
		if !ok {
			return 0, cerrf(TX_ERR_MISSING_UTXO, "input %d: outpoint %x:%d not found", i, in.PrevOut.TxID, in.PrevOut.Vout)
		}
		var err error
		inputSum, err = addU64(inputSum, entry.Value, TX_ERR_FEE_OVERFLOW)
		if err != nil {
			return 0, err
		}
		spent = append(spent, in.PrevOut)
	}

	var outputSum uint64
	for _, out := range tx.Outputs {
		var err error
		outputSum, err = addU64(outputSum, out.Value, TX_ERR_FEE_OVERFLOW)
		if err != nil {
			return 0, err
		}
	}
	fee, err := subU64(inputSum, outputSum, TX_ERR_VALUE_CONSERVATION)
	if err != nil {
		return 0, cerrf(TX_ERR_VALUE_CONSERVATION, "outputs %d exceed inputs %d", outputSum, inputSum)
	}

	for _, op := range spent {
		delete(v.entries, op)
	}
	v.credit(tx, height, false)
	return fee, nil
}

// CreditCoinbase adds the coinbase outputs to the view once a block has been
// accepted.
func (v *MemoryUtxoView) CreditCoinbase(tx *Transaction, height uint32) {
	v.credit(tx, height, true)
}

func (v *MemoryUtxoView) credit(tx *Transaction, height uint32, coinbase bool) {
	txid := TxID(v.provider, tx)
	for i, out := range tx.Outputs {
		v.entries[OutPoint{TxID: txid, Vout: uint32(i)}] = UtxoEntry{
			Value:          out.Value,
			ScriptPubKey:   append([]byte(nil), out.ScriptPubKey...),
			CreationHeight: height,
			Coinbase:       coinbase,
		}
	}
}
