package digest

import "testing"

func TestWindowMinimizerDedupsRepeatedMinimum(t *testing.T) {
	// AAAA repeated: every k-mer hashes identically, so the left-most
	// tie-break makes each window's minimizer its first k-mer. That
	// position advances by one per window, so each of the 9-3+1 = 7
	// windows reports a new position and none is reported twice.
	seq := []byte("AAAAAAAAAAAA")
	d, err := Construct(SchemeWindowMinimizer, seq, 4, 0, MinimizedCanonical, Params{Window: 3})
	if err != nil {
		t.Fatal(err)
	}
	count := 0
	var first int64 = -1
	for {
		ok, err := d.RollNextMinimizer()
		if err != nil {
			t.Fatal(err)
		}
		if !ok {
			break
		}
		if first == -1 {
			first = d.GetPos()
		}
		count++
	}
	if count != 7 {
		t.Fatalf("expected exactly 7 minimizers, one per window, got %d", count)
	}
	if first != 0 {
		t.Fatalf("expected left-most tie-break at pos 0, got %d", first)
	}
}

func TestWindowMinimizerCoversEveryWindow(t *testing.T) {
	seq := []byte("ACGTACGTTGCACGTA")
	k, w := 4, 3
	d, err := Construct(SchemeWindowMinimizer, seq, k, 0, MinimizedCanonical, Params{Window: w})
	if err != nil {
		t.Fatal(err)
	}
	var positions []int64
	for {
		ok, err := d.RollNextMinimizer()
		if err != nil {
			t.Fatal(err)
		}
		if !ok {
			break
		}
		positions = append(positions, d.GetPos())
	}
	if len(positions) == 0 {
		t.Fatal("expected at least one minimizer")
	}
	for i := 1; i < len(positions); i++ {
		if positions[i] <= positions[i-1] {
			t.Fatalf("minimizer positions must strictly increase: %v", positions)
		}
	}
	lastKmerPos := int64(len(seq) - k)
	if positions[len(positions)-1] > lastKmerPos {
		t.Fatalf("minimizer position %d exceeds last k-mer position %d", positions[len(positions)-1], lastKmerPos)
	}
	// Every window of w consecutive k-mers must contain a reported position.
	nKmers := len(seq) - k + 1
	for start := 0; start+w <= nKmers; start++ {
		covered := false
		for _, p := range positions {
			if p >= int64(start) && p < int64(start+w) {
				covered = true
				break
			}
		}
		if !covered {
			t.Fatalf("window starting at %d contains no minimizer: %v", start, positions)
		}
	}
}

func TestWindowMinimizerResetsAcrossAmbiguity(t *testing.T) {
	seq := []byte("ACGTACGTNACGTACGT")
	d, err := Construct(SchemeWindowMinimizer, seq, 4, 0, MinimizedCanonical, Params{Window: 3})
	if err != nil {
		t.Fatal(err)
	}
	count := 0
	before, after := false, false
	for {
		ok, err := d.RollNextMinimizer()
		if err != nil {
			t.Fatal(err)
		}
		if !ok {
			break
		}
		count++
		// The N sits at index 8.
		if d.GetPos() < 8 {
			before = true
		} else if d.GetPos() > 8 {
			after = true
		}
	}
	if count == 0 {
		t.Fatal("expected minimizers both before and after the ambiguous base")
	}
	if !before || !after {
		t.Fatalf("expected minimizers both before and after the ambiguous base, got before=%v after=%v", before, after)
	}
}
