package digest

import "errors"

// ModMinimizer reports every k-mer whose selected hash is divisible by
// a fixed modulus M (§4.3). It has no window to maintain: each k-mer is
// judged independently, so density is driven purely by choice of M.
type ModMinimizer struct {
	h       *Hasher
	modulus uint64
}

func (m *ModMinimizer) NewSeq(seq []byte, pos int) error { return m.h.NewSeq(seq, pos) }
func (m *ModMinimizer) AppendSeq(seq []byte) error       { return m.h.AppendSeq(seq) }
func (m *ModMinimizer) RollOne() (bool, error)           { return m.h.RollOne() }

func (m *ModMinimizer) GetPos() int64                { return m.h.GetPos() }
func (m *ModMinimizer) GetForwardHash() uint64       { return m.h.GetForwardHash() }
func (m *ModMinimizer) GetReverseHash() uint64       { return m.h.GetReverseHash() }
func (m *ModMinimizer) GetCanonicalHash() uint64     { return m.h.GetCanonicalHash() }
func (m *ModMinimizer) GetIsValidHash() bool         { return m.h.GetIsValidHash() }
func (m *ModMinimizer) GetK() int                    { return m.h.GetK() }
func (m *ModMinimizer) GetLen() int64                { return m.h.GetLen() }
func (m *ModMinimizer) GetMinimizedH() MinimizedHash { return m.h.GetMinimizedH() }

// RollNextMinimizer advances until a k-mer satisfies hash % modulus == 0,
// or the sequence is exhausted.
func (m *ModMinimizer) RollNextMinimizer() (bool, error) {
	for {
		ok, err := m.h.RollOne()
		if err != nil {
			if errors.Is(err, ErrOutOfRange) {
				return false, nil
			}
			return false, err
		}
		if !ok {
			continue
		}
		if m.h.SelectedHash()%m.modulus == 0 {
			return true, nil
		}
	}
}

func (m *ModMinimizer) RollNextNMinimizers(limit int) ([]int64, error) {
	return rollNextNMinimizers(m.RollNextMinimizer, m.GetPos, limit)
}
