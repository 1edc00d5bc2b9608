package bitvec

import (
	"errors"
	"fmt"
)

// ErrIndexOutOfRange is matched by every IndexError.
var ErrIndexOutOfRange = errors.New("bitvec: index out of range")

// IndexError is the panic value of operations whose position precondition is violated.
type IndexError struct {
	Op    string
	Index uint64
	Len   uint64
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("bitvec: %s: index %d out of range for length %d", e.Op, e.Index, e.Len)
}

func (e *IndexError) Is(target error) bool {
	return target == ErrIndexOutOfRange
}
