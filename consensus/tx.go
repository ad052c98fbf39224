package consensus

import (
	"encoding/binary"

	"github.com/lomasson/raito/crypto"
)

// OutPoint references an output of a prior transaction.
type OutPoint struct {
	TxID [32]byte
	Vout uint32
}

type TxInput struct {
	PrevOut   OutPoint
	ScriptSig []byte
	Sequence  uint32
}

type TxOutput struct {
	Value        uint64
	ScriptPubKey []byte
}

type Transaction struct {
	Version  uint32
	Inputs   []TxInput
	Outputs  []TxOutput
	Locktime uint32
}

// coinbaseVout is the output index of the null outpoint a coinbase input
// references.
const coinbaseVout = ^uint32(0)

func isNullOutPoint(op OutPoint) bool {
	return op.TxID == ([32]byte{}) && op.Vout == coinbaseVout
}

// hasCoinbaseInput reports whether any input of tx references the null
// outpoint.
func hasCoinbaseInput(tx *Transaction) bool {
	for _, in := range tx.Inputs {
		if isNullOutPoint(in.PrevOut) {
			return true
		}
	}
	return false
}

// TxBytes serializes a transaction in canonical wire order: version (LE),
// input count, inputs (prev txid raw || vout LE || script || sequence LE),
// output count, outputs (value LE || script), locktime (LE).  Variable
// lengths use Bitcoin compact-size encoding.
func TxBytes(tx *Transaction) []byte {
	out := make([]byte, 0, 64)
	var tmp4 [4]byte
	var tmp8 [8]byte

	binary.LittleEndian.PutUint32(tmp4[:], tx.Version)
	out = append(out, tmp4[:]...)

	out = appendCompactSize(out, uint64(len(tx.Inputs)))
	for _, in := range tx.Inputs {
		out = append(out, in.PrevOut.TxID[:]...)
		binary.LittleEndian.PutUint32(tmp4[:], in.PrevOut.Vout)
		out = append(out, tmp4[:]...)
		out = appendCompactSize(out, uint64(len(in.ScriptSig)))
		out = append(out, in.ScriptSig...)
		binary.LittleEndian.PutUint32(tmp4[:], in.Sequence)
		out = append(out, tmp4[:]...)
	}

	out = appendCompactSize(out, uint64(len(tx.Outputs)))
	for _, o := range tx.Outputs {
		binary.LittleEndian.PutUint64(tmp8[:], o.Value)
		out = append(out, tmp8[:]...)
		out = appendCompactSize(out, uint64(len(o.ScriptPubKey)))
		out = append(out, o.ScriptPubKey...)
	}

	binary.LittleEndian.PutUint32(tmp4[:], tx.Locktime)
	out = append(out, tmp4[:]...)
	return out
}

// TxID computes the transaction identifier: double-SHA-256 over the
// canonical transaction bytes.
func TxID(p crypto.Provider, tx *Transaction) [32]byte {
	return p.DoubleSHA256(TxBytes(tx))
}

func appendCompactSize(out []byte, n uint64) []byte {
	switch {
	case n < 0xfd:
		return append(out, byte(n))
	case n <= 0xffff:
		var tmp [2]byte
		binary.LittleEndian.PutUint16(tmp[:], uint16(n))
		return append(append(out, 0xfd), tmp[:]...)
	case n <= 0xffff_ffff:
		var tmp [4]byte
		binary.LittleEndian.PutUint32(tmp[:], uint32(n))
		return append(append(out, 0xfe), tmp[:]...)
	default:
		var tmp [8]byte
		binary.LittleEndian.PutUint64(tmp[:], n)
		return append(append(out, 0xff), tmp[:]...)
	}
}
