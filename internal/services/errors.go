package services

import (
	"errors"
	"fmt"
)

// Every error kind is distinguishable by the caller via errors.Is or
// errors.As, so the presentation layer can render an accurate message.
var (
	ErrProposalNotFound = errors.New("proposal not found")
	ErrProposalClosed   = errors.New("proposal is not open for voting")
	ErrDuplicateVote    = errors.New("voter has already voted on this proposal")
	ErrInvalidChoice    = errors.New("choice is not among the proposal's choices")
	ErrAlreadyClosed    = errors.New("proposal is not active")
)

// ValidationError reports malformed input on proposal creation or vote
// casting. It is never recovered from automatically.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// StorageError wraps a failure of the persistence collaborator. The core
// never retries these; retry policy belongs to the caller.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage failure in %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func storageError(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}
