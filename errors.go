package wavelettrie

import (
	"errors"
	"fmt"
)

var (
	ErrPrefixConflict     = errors.New("wavelettrie: sequences are not prefix-free")
	ErrInvariantViolation = errors.New("wavelettrie: structural invariant violated")
	ErrIndexOutOfRange    = errors.New("wavelettrie: index out of range")
	ErrCorrupt            = errors.New("wavelettrie: corrupt encoding")
)

// ConflictReason tells which way a prefix conflict goes.
type ConflictReason int

const (
	// SequenceIsPrefix means the new sequence is a prefix of a stored one.
	SequenceIsPrefix ConflictReason = iota
	// StoredIsPrefix means a stored sequence is a prefix of the new one.
	StoredIsPrefix
)

func (r ConflictReason) String() string {
	switch r {
	case SequenceIsPrefix:
		return "sequence is a prefix of a stored sequence"
	case StoredIsPrefix:
		return "a stored sequence is a prefix of the sequence"
	default:
		return fmt.Sprintf("ConflictReason(%d)", int(r))
	}
}

// PrefixConflictError is returned when a sequence would break prefix-freeness.
// The trie is left unchanged.
type PrefixConflictError struct {
	Index  uint64 // occurrence index at the conflicting node
	Depth  int
	Reason ConflictReason
}

func (e *PrefixConflictError) Error() string {
	return fmt.Sprintf("wavelettrie: %s (depth %d, index %d)", e.Reason, e.Depth, e.Index)
}

func (e *PrefixConflictError) Is(target error) bool {
	return target == ErrPrefixConflict
}

// InvariantError is the panic value raised when routing reaches a missing child.
// It signals a defect in the trie, never bad input.
type InvariantError struct {
	Depth int
	Index uint64
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("wavelettrie: child missing at depth %d, index %d", e.Depth, e.Index)
}

func (e *InvariantError) Is(target error) bool {
	return target == ErrInvariantViolation
}

// IndexError is returned by Insert for an index past Len.
type IndexError struct {
	Index uint64
	Len   uint64
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("wavelettrie: index %d out of range for %d occurrences", e.Index, e.Len)
}

func (e *IndexError) Is(target error) bool {
	return target == ErrIndexOutOfRange
}
