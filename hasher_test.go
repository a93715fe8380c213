package digest

import (
	"math/rand"
	"testing"
)

func randomACTG(n int, r *rand.Rand) []byte {
	const bases = "ACGT"
	out := make([]byte, n)
	for i := range out {
		out[i] = bases[r.Intn(4)]
	}
	return out
}

// rollAllCanonical drives h to validity and collects every (pos,
// canonical hash) pair until the sequence is exhausted.
func rollAllCanonical(t *testing.T, h *Hasher) []posHash {
	t.Helper()
	var got []posHash
	for {
		ok, err := h.RollOne()
		if err != nil {
			return got
		}
		if ok {
			got = append(got, posHash{h.GetPos(), h.GetCanonicalHash()})
		}
	}
}

func TestHasherDeterministic(t *testing.T) {
	seq := randomACTG(200, rand.New(rand.NewSource(1)))
	h1, err := NewHasher(11, MinimizedCanonical)
	if err != nil {
		t.Fatal(err)
	}
	if err := h1.NewSeq(seq, 0); err != nil {
		t.Fatal(err)
	}
	h2, err := NewHasher(11, MinimizedCanonical)
	if err != nil {
		t.Fatal(err)
	}
	if err := h2.NewSeq(seq, 0); err != nil {
		t.Fatal(err)
	}
	a := rollAllCanonical(t, h1)
	b := rollAllCanonical(t, h2)
	if len(a) != len(b) {
		t.Fatalf("length mismatch: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("mismatch at %d: %+v vs %+v", i, a[i], b[i])
		}
	}
}

// TestAppendEquivalence is Testable Property 3: digesting a sequence in
// one piece must produce the same (pos, hash) stream as digesting it
// split across an AppendSeq boundary, for every split point at or past
// k (NewSeq needs at least k bytes in the first chunk).
func TestAppendEquivalence(t *testing.T) {
	seq := randomACTG(97, rand.New(rand.NewSource(7)))
	k := 13

	whole, err := NewHasher(k, MinimizedCanonical)
	if err != nil {
		t.Fatal(err)
	}
	if err := whole.NewSeq(seq, 0); err != nil {
		t.Fatal(err)
	}
	want := rollAllCanonical(t, whole)

	for split := k; split < len(seq); split++ {
		split := split
		t.Run("", func(t *testing.T) {
			h, err := NewHasher(k, MinimizedCanonical)
			if err != nil {
				t.Fatal(err)
			}
			if err := h.NewSeq(seq[:split], 0); err != nil {
				t.Fatal(err)
			}
			var got []posHash
			for {
				ok, err := h.RollOne()
				if err != nil {
					if err := h.AppendSeq(seq[split:]); err != nil {
						t.Fatalf("append at split=%d: %v", split, err)
					}
					continue
				}
				if ok {
					got = append(got, posHash{h.GetPos(), h.GetCanonicalHash()})
				}
				if h.GetLen() == int64(len(seq)) {
					break
				}
			}
			if len(got) != len(want) {
				t.Fatalf("split=%d: length mismatch: %d vs %d", split, len(got), len(want))
			}
			for i := range got {
				if got[i] != want[i] {
					t.Fatalf("split=%d: mismatch at %d: %+v vs %+v", split, i, got[i], want[i])
				}
			}
		})
	}
}

func TestHasherAmbiguousBaseBlackout(t *testing.T) {
	seq := []byte("ACGTNACGTACGT")
	h, err := NewHasher(4, MinimizedCanonical)
	if err != nil {
		t.Fatal(err)
	}
	if err := h.NewSeq(seq, 0); err != nil {
		t.Fatal(err)
	}
	// First window ACGT is immediately valid.
	if !h.GetIsValidHash() {
		t.Fatal("expected initial window to be valid")
	}
	// The first RollOne reports the window NewSeq already found.
	if ok, err := h.RollOne(); err != nil || !ok || h.GetPos() != 0 {
		t.Fatalf("expected first RollOne to report the window at pos 0, got ok=%v err=%v pos=%d", ok, err, h.GetPos())
	}
	// Roll onto the N: window becomes invalid.
	ok, err := h.RollOne()
	if err != nil {
		t.Fatal(err)
	}
	if ok || h.GetIsValidHash() {
		t.Fatal("expected window to go invalid at N")
	}
	// It takes k consecutive ACTG bytes after the N to become valid again.
	validAgainAt := -1
	for i := 0; i < 20; i++ {
		ok, err := h.RollOne()
		if err != nil {
			break
		}
		if ok {
			validAgainAt = i
			break
		}
	}
	if validAgainAt == -1 {
		t.Fatal("hasher never revalidated")
	}
}

func TestConstructionErrors(t *testing.T) {
	if _, err := NewHasher(0, MinimizedCanonical); err == nil {
		t.Fatal("expected error for k=0")
	}
	h, err := NewHasher(5, MinimizedCanonical)
	if err != nil {
		t.Fatal(err)
	}
	if err := h.NewSeq([]byte("ACGT"), 0); err == nil {
		t.Fatal("expected error: seq shorter than k")
	}
}

func TestAppendSeqNotRolledTillEnd(t *testing.T) {
	h, err := NewHasher(4, MinimizedCanonical)
	if err != nil {
		t.Fatal(err)
	}
	if err := h.NewSeq([]byte("ACGTACGT"), 0); err != nil {
		t.Fatal(err)
	}
	if err := h.AppendSeq([]byte("ACGT")); err == nil {
		t.Fatal("expected ErrNotRolledTillEnd before consuming current buffer")
	}
}
