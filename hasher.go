package digest

import (
	"github.com/kmertools/digest/internal/nthash"
)

// MinimizedHash selects which of the forward, reverse-complement, or
// canonical hash a Hasher treats as "the" hash for minimizer selection
// (§3, §6). GetForwardHash/GetReverseHash/GetCanonicalHash always
// return all three regardless of this setting.
type MinimizedHash int

const (
	MinimizedCanonical MinimizedHash = iota
	MinimizedForward
	MinimizedReverse
)

func (m MinimizedHash) valid() bool {
	return m == MinimizedCanonical || m == MinimizedForward || m == MinimizedReverse
}

// Hasher maintains a rolling ntHash over a DNA sequence that may arrive
// in more than one chunk (§4.1). It tracks its own validity: a run of
// non-ACTG bytes invalidates the current window, and k consecutive ACTG
// bytes are required to find (or re-find) one.
//
// A Hasher is not safe for concurrent use; see §5.
type Hasher struct {
	k          int
	minimizedH MinimizedHash

	buf []byte
	end int // index of the next unread byte in buf

	carry *byteRing // bytes of a settled window orphaned by an AppendSeq
	scan  *byteRing // accumulating run of ACTG bytes while hunting for a window

	cursor int64 // global index of the next unconsumed byte
	pos    int64 // global start of the current window, meaningful iff valid
	valid  bool

	// pending is true when NewSeq's own scan already found a valid
	// window before returning. The first RollOne call after NewSeq
	// reports that window instead of rolling past it -- without this,
	// the window NewSeq found would never reach a caller.
	pending bool

	fhash, rhash, chash uint64
}

// NewHasher constructs a Hasher for k-mers of length k with no sequence
// loaded yet; call NewSeq before rolling.
func NewHasher(k int, minimizedH MinimizedHash) (*Hasher, error) {
	if k <= 0 {
		return nil, badConstruction("k must be positive")
	}
	if !minimizedH.valid() {
		return nil, badConstruction("minimizedH out of range")
	}
	return &Hasher{
		k:          k,
		minimizedH: minimizedH,
		carry:      newByteRing(k),
		scan:       newByteRing(k),
	}, nil
}

// NewSeq resets the Hasher onto a fresh buffer, starting the search for
// a valid window at seq[pos:] (§4.1, §4.6). pos+k must not exceed
// len(seq). Any previously loaded sequence and carryover state is
// discarded.
func (h *Hasher) NewSeq(seq []byte, pos int) error {
	if pos < 0 || pos+h.k > len(seq) {
		return badConstruction("pos leaves fewer than k bytes in seq")
	}
	h.buf = seq
	h.end = pos
	h.cursor = int64(pos)
	h.pos = 0
	h.valid = false
	h.carry.Reset()
	h.scan.Reset()
	for !h.valid && h.end < len(h.buf) {
		if _, err := h.rollScanning(); err != nil {
			return err
		}
	}
	h.pending = h.valid
	return nil
}

// AppendSeq replaces the current buffer with seq, preserving whatever
// carryover a settled window needs to keep rolling across the seam
// (§4.6). It fails with ErrNotRolledTillEnd if the current buffer still
// has unconsumed bytes and there is no pending carryover.
func (h *Hasher) AppendSeq(seq []byte) error {
	if h.end < len(h.buf) && h.carry.Len() == 0 {
		return ErrNotRolledTillEnd
	}
	if h.valid {
		need := h.k - h.carry.Len()
		if need > h.end {
			need = h.end
		}
		for i := h.end - need; i < h.end; i++ {
			h.carry.PushBack(h.buf[i])
		}
	}
	h.buf = seq
	h.end = 0
	return nil
}

// RollOne advances the Hasher by one base and reports whether the
// window is valid afterward. It fails with ErrOutOfRange if the
// current buffer is exhausted.
//
// If NewSeq already found a valid window while searching for the first
// one, the first call after NewSeq reports that window as-is rather
// than rolling past it.
func (h *Hasher) RollOne() (bool, error) {
	if h.pending {
		h.pending = false
		return true, nil
	}
	if h.valid {
		return h.rollValid()
	}
	return h.rollScanning()
}

func (h *Hasher) rollValid() (bool, error) {
	if h.end >= len(h.buf) {
		return false, ErrOutOfRange
	}
	var outgoing byte
	if h.carry.Len() > 0 {
		outgoing, _ = h.carry.PopFront()
	} else {
		outgoing = h.buf[h.end-h.k]
	}
	incoming := h.buf[h.end]
	h.end++
	h.cursor++

	if !nthash.IsACTG(incoming) {
		h.valid = false
		h.carry.Reset()
		h.scan.Reset()
		return false, nil
	}

	h.fhash = nthash.RollForward(h.fhash, outgoing, incoming, uint(h.k))
	h.rhash = nthash.RollReverse(h.rhash, outgoing, incoming, uint(h.k))
	h.chash = nthash.Canonical(h.fhash, h.rhash)
	h.pos++
	return true, nil
}

func (h *Hasher) rollScanning() (bool, error) {
	if h.end >= len(h.buf) {
		return false, ErrOutOfRange
	}
	b := h.buf[h.end]
	h.end++
	h.cursor++

	if !nthash.IsACTG(b) {
		h.scan.Reset()
		return false, nil
	}
	h.scan.PushBack(b)
	if h.scan.Len() < h.k {
		return false, nil
	}

	kmer := h.scan.Drain()
	h.fhash = nthash.InitialForward(kmer)
	h.rhash = nthash.InitialReverse(kmer)
	h.chash = nthash.Canonical(h.fhash, h.rhash)
	h.pos = h.cursor - int64(h.k)
	h.valid = true
	return true, nil
}

// SelectedHash returns the hash chosen by minimizedH; it is only
// meaningful when GetIsValidHash is true.
func (h *Hasher) SelectedHash() uint64 {
	switch h.minimizedH {
	case MinimizedForward:
		return h.fhash
	case MinimizedReverse:
		return h.rhash
	default:
		return h.chash
	}
}

func (h *Hasher) GetPos() int64                { return h.pos }
func (h *Hasher) GetForwardHash() uint64       { return h.fhash }
func (h *Hasher) GetReverseHash() uint64       { return h.rhash }
func (h *Hasher) GetCanonicalHash() uint64     { return h.chash }
func (h *Hasher) GetIsValidHash() bool         { return h.valid }
func (h *Hasher) GetK() int                    { return h.k }
func (h *Hasher) GetMinimizedH() MinimizedHash { return h.minimizedH }

// GetLen returns the number of bytes consumed from the cumulative
// sequence so far, across all appends.
func (h *Hasher) GetLen() int64 { return h.cursor }
