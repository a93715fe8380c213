package digest

import "github.com/twotwotwo/sorts"

// PosHashSlice is a slice of reported (position, hash) minimizers, sortable
// by hash then position -- the order a compact index groups records in.
type PosHashSlice []posHash

func (s PosHashSlice) Len() int { return len(s) }

func (s PosHashSlice) Swap(i, j int) { s[i], s[j] = s[j], s[i] }

func (s PosHashSlice) Less(i, j int) bool {
	if s[i].hash != s[j].hash {
		return s[i].hash < s[j].hash
	}
	return s[i].pos < s[j].pos
}

// SortByHash sorts records by hash (then position on ties) using
// twotwotwo/sorts' parallel sort.Interface-compatible Quicksort, the same
// library the teacher uses for large uint64 slices (kmer-sort.go).
func SortByHash(records []posHash) {
	sorts.Quicksort(PosHashSlice(records))
}

// NewPosHash exposes posHash construction to callers outside the
// package (e.g. cmd/digest) building up a slice to sort or index.
func NewPosHash(pos int64, hash uint64) posHash {
	return posHash{pos: pos, hash: hash}
}

// Pos and Hash accessors let external packages read posHash fields
// without exporting the struct itself.
func (p posHash) Pos() int64   { return p.pos }
func (p posHash) Hash() uint64 { return p.hash }
