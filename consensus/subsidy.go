package consensus

const (
	// HalvingInterval is the number of blocks between subsidy halvings.
	HalvingInterval = 210_000

	// InitialSubsidy is the height-0 block subsidy in satoshis.
	InitialSubsidy = 50 * 100_000_000

	// maxHalvings is where the right shift would zero out anyway; past it
	// the subsidy is pinned to zero so the shift width stays defined.
	maxHalvings = 64
)

// BlockSubsidy returns the newly mintable subsidy for a block at the given
// height, in satoshis.
func BlockSubsidy(height uint32) uint64 {
	halvings := height / HalvingInterval
	if halvings >= maxHalvings {
		return 0
	}
	return uint64(InitialSubsidy) >> halvings
}
