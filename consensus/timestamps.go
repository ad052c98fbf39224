package consensus

import "sort"

// TimestampWindow is the number of prior block timestamps that feed the
// median-time-past rule.
const TimestampWindow = 11

// medianTimePast returns the median of the populated timestamp slots and
// false when no blocks have been applied yet.  Below TimestampWindow applied
// blocks only the populated prefix participates; the ring is keyed by
// height mod TimestampWindow, so at low heights the prefix is slots
// 0..height-1.
func medianTimePast(height uint32, window [TimestampWindow]uint32) (uint32, bool) {
	n := int(height)
	if n > TimestampWindow {
		n = TimestampWindow
	}
	if n == 0 {
		return 0, false
	}
	buf := make([]uint32, n)
	copy(buf, window[:n])
	sort.Slice(buf, func(i, j int) bool { return buf[i] < buf[j] })
	return buf[(n-1)/2], true
}

// insertTimestamp records the timestamp of the block applied at height into
// its ring slot.
func insertTimestamp(window *[TimestampWindow]uint32, height uint32, ts uint32) {
	window[height%TimestampWindow] = ts
}
