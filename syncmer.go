package digest

import "errors"

// outerRecord is one outer k-mer's position and hashes, held in
// Syncmer.pending until its small-mer window is fully known.
type outerRecord struct {
	pos                 int64
	fhash, rhash, chash uint64
}

// Syncmer reports a k-mer when the minimum hash among its W = k-s+1
// overlapping s-mers ("small-mers") sits at a configured offset within
// the k-mer -- first, last, or either end (§4.5).
//
// It drives two Hashers in lockstep over the same underlying sequence:
// outer (length k) gates overall validity, inner (length s) supplies the
// small-mer hashes. Because outer only validates after k consecutive
// ACTG bytes -- a strict superset of inner's s -- inner is guaranteed
// already valid whenever outer is.
//
// outer and inner both advance one base per roll, so at any step their
// reported positions are numerically equal. But the inner window of w
// small-mers that has just become complete belongs to the outer k-mer
// that started w-1 positions ago, not the one outer currently sits on:
// pending queues up outer's own (pos, hashes) since the last reset so
// the k-mer whose small-mer window just completed can be recovered once
// pending reaches length w.
type Syncmer struct {
	outer, inner *Hasher
	w            int
	offset       SyncmerOffset
	deque        *monoDeque
	pending      []outerRecord
	reported     outerRecord
}

func (s *Syncmer) NewSeq(seq []byte, pos int) error {
	s.deque.Reset()
	s.pending = s.pending[:0]
	if err := s.outer.NewSeq(seq, pos); err != nil {
		return err
	}
	return s.inner.NewSeq(seq, pos)
}

func (s *Syncmer) AppendSeq(seq []byte) error {
	if err := s.outer.AppendSeq(seq); err != nil {
		return err
	}
	return s.inner.AppendSeq(seq)
}

// RollOne advances both the outer k-mer hash and the inner small-mer
// hash by one base, reporting the outer k-mer's validity, and queues
// outer's (pos, hashes) onto pending for RollNextMinimizer to resolve.
func (s *Syncmer) RollOne() (bool, error) {
	ok, err := s.outer.RollOne()
	if err != nil {
		return false, err
	}
	if _, innerErr := s.inner.RollOne(); innerErr != nil {
		return false, innerErr
	}
	if !ok {
		s.deque.Reset()
		s.pending = s.pending[:0]
		return false, nil
	}
	s.deque.Push(s.inner.GetPos(), s.inner.SelectedHash())
	s.pending = append(s.pending, outerRecord{
		pos:   s.outer.GetPos(),
		fhash: s.outer.GetForwardHash(),
		rhash: s.outer.GetReverseHash(),
		chash: s.outer.GetCanonicalHash(),
	})
	return true, nil
}

// GetPos, GetForwardHash, GetReverseHash, and GetCanonicalHash describe
// the k-mer last reported by RollNextMinimizer, not outer's live cursor
// (which by then has already rolled w-1 bases past it).
func (s *Syncmer) GetPos() int64                { return s.reported.pos }
func (s *Syncmer) GetForwardHash() uint64       { return s.reported.fhash }
func (s *Syncmer) GetReverseHash() uint64       { return s.reported.rhash }
func (s *Syncmer) GetCanonicalHash() uint64     { return s.reported.chash }
func (s *Syncmer) GetIsValidHash() bool         { return s.outer.GetIsValidHash() }
func (s *Syncmer) GetK() int                    { return s.outer.GetK() }
func (s *Syncmer) GetLen() int64                { return s.outer.GetLen() }
func (s *Syncmer) GetMinimizedH() MinimizedHash { return s.outer.GetMinimizedH() }

// matchesOffset reports whether innerPos -- the position of the minimum
// small-mer among the w small-mers belonging to the outer k-mer at
// outerPos -- sits at the configured offset within that k-mer.
func (s *Syncmer) matchesOffset(innerPos, outerPos int64) bool {
	offset := innerPos - outerPos
	switch s.offset {
	case SyncmerOffsetFirst:
		return offset == 0
	case SyncmerOffsetLast:
		return offset == int64(s.w-1)
	default: // SyncmerOffsetEither
		return offset == 0 || offset == int64(s.w-1)
	}
}

// RollNextMinimizer advances until an outer k-mer's minimum small-mer
// sits at the configured offset, or the sequence is exhausted. The
// k-mer under test each iteration is pending's oldest entry: the inner
// small-mer window needed to judge it only completes w-1 rolls after
// outer itself reported that position.
func (s *Syncmer) RollNextMinimizer() (bool, error) {
	for {
		ok, err := s.RollOne()
		if err != nil {
			if errors.Is(err, ErrOutOfRange) {
				return false, nil
			}
			return false, err
		}
		if !ok {
			continue
		}
		if len(s.pending) < s.w {
			continue
		}
		rec := s.pending[0]
		s.pending = s.pending[1:]

		front, present := s.deque.Front()
		if !present {
			continue
		}
		if s.matchesOffset(front.pos, rec.pos) {
			s.reported = rec
			return true, nil
		}
	}
}

func (s *Syncmer) RollNextNMinimizers(limit int) ([]int64, error) {
	return rollNextNMinimizers(s.RollNextMinimizer, s.GetPos, limit)
}
