package digest

import "errors"

// WindowMinimizer reports the minimum-hash k-mer within every trailing
// window of W consecutive k-mers (§4.4). Successive windows sharing the
// same minimum are reported once: a minimizer is only emitted when it
// differs from the last one emitted.
type WindowMinimizer struct {
	h     *Hasher
	w     int
	deque *monoDeque

	validRun    int
	hasEmitted  bool
	lastEmitted int64
}

func (m *WindowMinimizer) NewSeq(seq []byte, pos int) error {
	m.deque.Reset()
	m.validRun = 0
	m.hasEmitted = false
	return m.h.NewSeq(seq, pos)
}

func (m *WindowMinimizer) AppendSeq(seq []byte) error { return m.h.AppendSeq(seq) }
func (m *WindowMinimizer) RollOne() (bool, error)     { return m.h.RollOne() }

// GetPos returns the position of the minimizer last reported by
// RollNextMinimizer, not the underlying Hasher's current cursor.
func (m *WindowMinimizer) GetPos() int64                { return m.lastEmitted }
func (m *WindowMinimizer) GetForwardHash() uint64       { return m.h.GetForwardHash() }
func (m *WindowMinimizer) GetReverseHash() uint64       { return m.h.GetReverseHash() }
func (m *WindowMinimizer) GetCanonicalHash() uint64     { return m.h.GetCanonicalHash() }
func (m *WindowMinimizer) GetIsValidHash() bool         { return m.h.GetIsValidHash() }
func (m *WindowMinimizer) GetK() int                    { return m.h.GetK() }
func (m *WindowMinimizer) GetLen() int64                { return m.h.GetLen() }
func (m *WindowMinimizer) GetMinimizedH() MinimizedHash { return m.h.GetMinimizedH() }

// RollNextMinimizer advances until the trailing W-window's minimum
// changes from the last one reported, or the sequence is exhausted. An
// ambiguous base resets the window: a new contiguous run of W valid
// k-mers must accumulate before the next minimizer is reported.
func (m *WindowMinimizer) RollNextMinimizer() (bool, error) {
	for {
		ok, err := m.h.RollOne()
		if err != nil {
			if errors.Is(err, ErrOutOfRange) {
				return false, nil
			}
			return false, err
		}
		if !ok {
			m.deque.Reset()
			m.validRun = 0
			continue
		}

		pos := m.h.GetPos()
		m.deque.Push(pos, m.h.SelectedHash())
		m.validRun++
		if m.validRun < m.w {
			continue
		}

		front, _ := m.deque.Front()
		if m.hasEmitted && front.pos == m.lastEmitted {
			continue
		}
		m.lastEmitted = front.pos
		m.hasEmitted = true
		return true, nil
	}
}

func (m *WindowMinimizer) RollNextNMinimizers(limit int) ([]int64, error) {
	return rollNextNMinimizers(m.RollNextMinimizer, m.GetPos, limit)
}
