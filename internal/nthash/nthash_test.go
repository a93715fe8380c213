package nthash

import "testing"

func TestRollForwardMatchesInitial(t *testing.T) {
	seq := []byte("ACGTACGTTGCA")
	k := 5
	fh := InitialForward(seq[:k])
	for i := 1; i+k <= len(seq); i++ {
		fh = RollForward(fh, seq[i-1], seq[i+k-1], uint(k))
		want := InitialForward(seq[i : i+k])
		if fh != want {
			t.Fatalf("roll forward at i=%d: got %x want %x", i, fh, want)
		}
	}
}

func TestRollReverseMatchesInitial(t *testing.T) {
	seq := []byte("ACGTACGTTGCA")
	k := 5
	rh := InitialReverse(seq[:k])
	for i := 1; i+k <= len(seq); i++ {
		rh = RollReverse(rh, seq[i-1], seq[i+k-1], uint(k))
		want := InitialReverse(seq[i : i+k])
		if rh != want {
			t.Fatalf("roll reverse at i=%d: got %x want %x", i, rh, want)
		}
	}
}

func TestCanonicalIsMin(t *testing.T) {
	if Canonical(5, 9) != 5 {
		t.Fatal("expected smaller forward hash")
	}
	if Canonical(9, 5) != 5 {
		t.Fatal("expected smaller reverse hash")
	}
}

func TestIsACTG(t *testing.T) {
	for _, b := range []byte("ACGTacgt") {
		if !IsACTG(b) {
			t.Fatalf("%q should be a valid base", b)
		}
	}
	for _, b := range []byte("NRYnxZ ") {
		if IsACTG(b) {
			t.Fatalf("%q should not be a valid base", b)
		}
	}
}
