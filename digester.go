// Package digest implements streaming k-mer minimizer selection over DNA
// sequences: a rolling ntHash digester (Hasher) wrapped by one of three
// selection schemes (ModMinimizer, WindowMinimizer, Syncmer), all driven
// through the common Digester interface so a caller can swap schemes
// without touching its feeding loop.
package digest

import "errors"

// Scheme names a minimizer selection strategy for Construct.
type Scheme int

const (
	SchemeModMinimizer Scheme = iota
	SchemeWindowMinimizer
	SchemeSyncmer
)

// SyncmerOffset names where, within a k-mer's W small-mers, the minimum
// small-mer hash must sit for the k-mer to be reported as a syncmer
// (§4.5, Open Question 3).
type SyncmerOffset int

const (
	SyncmerOffsetFirst SyncmerOffset = iota
	SyncmerOffsetLast
	SyncmerOffsetEither
)

// Params bundles the scheme-specific knobs Construct needs; only the
// fields relevant to the chosen Scheme are read.
type Params struct {
	// Modulus is ModMinimizer's selection modulus M (§4.3). A k-mer is
	// reported when its selected hash is divisible by Modulus.
	Modulus uint64

	// Window is WindowMinimizer's large window W, in k-mers (§4.4).
	// Syncmer does not read it; its small-mer length is SmallK.
	Window int

	// SmallK is Syncmer's small-mer length s; its window is derived as
	// W = k-s+1 (§4.5).
	SmallK int
	Offset SyncmerOffset
}

// Digester is the common surface every minimizer scheme exposes over a
// Hasher (§6). RollOne advances the underlying hash by a single base;
// RollNextMinimizer advances until the next minimizer is found or the
// sequence is exhausted.
type Digester interface {
	NewSeq(seq []byte, pos int) error
	AppendSeq(seq []byte) error

	RollOne() (bool, error)
	RollNextMinimizer() (bool, error)
	RollNextNMinimizers(limit int) ([]int64, error)

	GetPos() int64
	GetForwardHash() uint64
	GetReverseHash() uint64
	GetCanonicalHash() uint64
	GetIsValidHash() bool
	GetK() int
	GetLen() int64
	GetMinimizedH() MinimizedHash
}

// Construct builds a Digester for the requested scheme over seq,
// starting the search for a valid k-mer window at seq[pos:] (§6).
func Construct(scheme Scheme, seq []byte, k, pos int, minimizedH MinimizedHash, params Params) (Digester, error) {
	switch scheme {
	case SchemeModMinimizer:
		if params.Modulus == 0 {
			return nil, badConstruction("modulus must be positive")
		}
		h, err := NewHasher(k, minimizedH)
		if err != nil {
			return nil, err
		}
		if err := h.NewSeq(seq, pos); err != nil {
			return nil, err
		}
		return &ModMinimizer{h: h, modulus: params.Modulus}, nil

	case SchemeWindowMinimizer:
		if params.Window <= 0 {
			return nil, badConstruction("window must be positive")
		}
		h, err := NewHasher(k, minimizedH)
		if err != nil {
			return nil, err
		}
		if err := h.NewSeq(seq, pos); err != nil {
			return nil, err
		}
		return &WindowMinimizer{h: h, w: params.Window, deque: newMonoDeque(params.Window)}, nil

	case SchemeSyncmer:
		if params.SmallK <= 0 || params.SmallK >= k {
			return nil, badConstruction("small-mer length must be in (0, k)")
		}
		outer, err := NewHasher(k, minimizedH)
		if err != nil {
			return nil, err
		}
		inner, err := NewHasher(params.SmallK, minimizedH)
		if err != nil {
			return nil, err
		}
		if err := outer.NewSeq(seq, pos); err != nil {
			return nil, err
		}
		if err := inner.NewSeq(seq, pos); err != nil {
			return nil, err
		}
		w := k - params.SmallK + 1
		return &Syncmer{
			outer:  outer,
			inner:  inner,
			w:      w,
			offset: params.Offset,
			deque:  newMonoDeque(w),
		}, nil

	default:
		return nil, badConstruction("unknown scheme")
	}
}

// rollNextNMinimizers is shared by every Digester implementation: it
// repeatedly calls rollNext until it fails, the stream ends, or limit
// positions have been collected.
func rollNextNMinimizers(rollNext func() (bool, error), getPos func() int64, limit int) ([]int64, error) {
	if limit < 0 {
		return nil, errors.New("digest: limit must be non-negative")
	}
	positions := make([]int64, 0, limit)
	for len(positions) < limit {
		ok, err := rollNext()
		if err != nil {
			return positions, err
		}
		if !ok {
			break
		}
		positions = append(positions, getPos())
	}
	return positions, nil
}
