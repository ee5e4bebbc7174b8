package predictor

import "testing"

func TestCounter_InitWeaklyTaken(t *testing.T) {
	// WHAT: Every counter starts at 2 (weakly taken).
	// WHY: Fresh tables must predict taken with low confidence so the
	// first contrary outcome flips the prediction after one more miss.
	table := NewCounterTable(128)

	for i := uint32(0); i < 128; i++ {
		if v := table.value(i); v != counterWeakTaken {
			t.Errorf("counter %d = %d, want %d", i, v, counterWeakTaken)
		}
		if !table.Read(i) {
			t.Errorf("counter %d should predict taken at init", i)
		}
	}
}

func TestCounter_SaturatesHigh(t *testing.T) {
	table := NewCounterTable(128)

	for n := 0; n < 10; n++ {
		table.Increment(7)
	}
	if v := table.value(7); v != counterMax {
		t.Errorf("counter = %d after 10 increments, want %d (saturated)", v, counterMax)
	}
}

func TestCounter_SaturatesLow(t *testing.T) {
	table := NewCounterTable(128)

	for n := 0; n < 10; n++ {
		table.Decrement(7)
	}
	if v := table.value(7); v != counterMin {
		t.Errorf("counter = %d after 10 decrements, want %d (saturated)", v, counterMin)
	}
}

func TestCounter_NeverLeavesRange(t *testing.T) {
	// WHAT: Arbitrary increment/decrement interleavings keep the value
	// in [0, 3].
	// WHY: A wrapping counter would flip a strong prediction to its
	// opposite extreme on a single update.
	table := NewCounterTable(16)

	seq := []bool{true, true, true, true, false, true, false, false,
		false, false, false, true, true, false, true, true, true, true}
	for _, up := range seq {
		if up {
			table.Increment(3)
		} else {
			table.Decrement(3)
		}
		if v := table.value(3); v > counterMax {
			t.Fatalf("counter left range: %d", v)
		}
	}
}

func TestCounter_ThresholdProperty(t *testing.T) {
	// Read is true exactly for values 2 and 3.
	table := NewCounterTable(16)

	for v := uint8(0); v <= counterMax; v++ {
		table.store(0, v)
		want := v >= counterWeakTaken
		if got := table.Read(0); got != want {
			t.Errorf("Read with counter=%d: got %v, want %v", v, got, want)
		}
	}
}

func TestCounter_UpdateTouchesOnlyTarget(t *testing.T) {
	// WHAT: Updating one counter leaves its byte-mates alone.
	// WHY: Four counters share a byte; a sloppy read-modify-write would
	// corrupt the three neighbors.
	table := NewCounterTable(16)

	table.Increment(5) // shares a byte with counters 4, 6, 7
	for i := uint32(4); i < 8; i++ {
		want := uint8(counterWeakTaken)
		if i == 5 {
			want = counterWeakTaken + 1
		}
		if v := table.value(i); v != want {
			t.Errorf("counter %d = %d, want %d", i, v, want)
		}
	}
}

func TestCounter_OutOfRangeIndexPanics(t *testing.T) {
	table := NewCounterTable(128)

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on out-of-range index")
		}
	}()
	table.Read(128)
}
