package consensus

import "math/bits"

// checkCoinbaseStructure enforces the positional rules: the first
// transaction must be the block's only coinbase, shaped as exactly one input
// spending the null outpoint.
func checkCoinbaseStructure(txs []*Transaction) error {
	if len(txs) == 0 {
		return cerr(BLOCK_ERR_COINBASE_MISSING, "block carries no transactions")
	}
	cb := txs[0]
	if !hasCoinbaseInput(cb) {
		return cerr(BLOCK_ERR_COINBASE_MISSING, "first transaction does not spend the null outpoint")
	}
	if len(cb.Inputs) != 1 {
		return cerrf(BLOCK_ERR_COINBASE_INPUT_INVALID, "coinbase has %d inputs, want 1", len(cb.Inputs))
	}
	for i := 1; i < len(txs); i++ {
		if hasCoinbaseInput(txs[i]) {
			return cerrf(BLOCK_ERR_COINBASE_MISPLACED, "null-outpoint input in transaction %d", i)
		}
	}
	return nil
}

// checkCoinbaseValue enforces sum(coinbase outputs) <= subsidy + fees.
// Underpay is permitted; the miner forfeits the difference.  Sums are carried
// in 128 bits so the bound itself cannot wrap.
func checkCoinbaseValue(cb *Transaction, height uint32, totalFees uint64) error {
	var sumHi, sumLo uint64
	for _, out := range cb.Outputs {
		var carry uint64
		sumLo, carry = bits.Add64(sumLo, out.Value, 0)
		sumHi, _ = bits.Add64(sumHi, 0, carry)
	}

	limitLo, carry := bits.Add64(BlockSubsidy(height), totalFees, 0)
	limitHi := carry

	if sumHi > limitHi || (sumHi == limitHi && sumLo > limitLo) {
		return cerrf(BLOCK_ERR_COINBASE_OVERPAY,
			"height %d: coinbase outputs exceed subsidy %d + fees %d", height, BlockSubsidy(height), totalFees)
	}
	return nil
}
