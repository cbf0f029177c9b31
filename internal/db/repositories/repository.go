package repositories

import (
	"errors"

	"github.com/go-pg/pg/v10"
)

var (
	// ErrNotFound is returned when no record matches the given key.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when an insert would violate a uniqueness
	// constraint, such as a second vote from the same voter on a proposal.
	ErrDuplicate = errors.New("record already exists")
)

type repository struct {
	db *pg.DB
}
