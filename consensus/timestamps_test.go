package consensus

import "testing"

func TestMedianTimePast_EmptyWindow(t *testing.T) {
	var window [TimestampWindow]uint32
	if _, ok := medianTimePast(0, window); ok {
		t.Fatalf("expected no median before any block is applied")
	}
}

func TestMedianTimePast_PartialWindow(t *testing.T) {
	var window [TimestampWindow]uint32
	window[0] = 100
	window[1] = 300
	window[2] = 200

	median, ok := medianTimePast(3, window)
	if !ok {
		t.Fatalf("expected a median at height 3")
	}
	if median != 200 {
		t.Fatalf("median mismatch: got=%d want=200", median)
	}

	// Even count: the lower middle element.
	window[3] = 400
	median, ok = medianTimePast(4, window)
	if !ok || median != 200 {
		t.Fatalf("median mismatch: got=%d want=200", median)
	}
}

func TestMedianTimePast_FullWindow(t *testing.T) {
	var window [TimestampWindow]uint32
	for i := range window {
		window[i] = uint32(1000 + i*10)
	}
	median, ok := medianTimePast(5000, window)
	if !ok {
		t.Fatalf("expected a median on a full window")
	}
	if median != 1050 {
		t.Fatalf("median mismatch: got=%d want=1050", median)
	}
}

func TestInsertTimestamp_RingRotation(t *testing.T) {
	var window [TimestampWindow]uint32
	for h := uint32(0); h < 25; h++ {
		insertTimestamp(&window, h, 1000+h)
	}
	// Height 24 lands in slot 24 mod 11 = 2.
	if window[2] != 1024 {
		t.Fatalf("slot 2: got=%d want=1024", window[2])
	}
	// The window holds the timestamps of heights 14..24.
	for h := uint32(14); h <= 24; h++ {
		if window[h%TimestampWindow] != 1000+h {
			t.Fatalf("slot %d: got=%d want=%d", h%TimestampWindow, window[h%TimestampWindow], 1000+h)
		}
	}
}
