package digest

import "fmt"

// ErrBadConstruction means k is 0, pos leaves fewer than k bytes in seq,
// minimizedH is out of range, or a scheme parameter (modulus, window,
// small-mer size) is invalid.
var ErrBadConstruction = fmt.Errorf("digest: bad construction")

// ErrNotRolledTillEnd means AppendSeq was called before the cursor
// consumed the current buffer.
var ErrNotRolledTillEnd = fmt.Errorf("digest: not rolled till end of current sequence")

// ErrOutOfRange means RollOne was called after every byte of the
// current buffer had been consumed. Bytes still held as carryover do
// not prevent it: they only ever leave the window.
var ErrOutOfRange = fmt.Errorf("digest: roll past end of sequence")

// ConstructionError wraps ErrBadConstruction with the offending detail.
type ConstructionError struct {
	Reason string
}

func (e *ConstructionError) Error() string {
	return fmt.Sprintf("%s: %s", ErrBadConstruction, e.Reason)
}

func (e *ConstructionError) Unwrap() error { return ErrBadConstruction }

func badConstruction(reason string) error {
	return &ConstructionError{Reason: reason}
}
