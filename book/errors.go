package book

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation is the parent of every input validation failure
	ErrValidation = errors.New("invalid book")

	ErrMissingName              = fmt.Errorf("%w: name is required", ErrValidation)
	ErrReadPageExceedsPageCount = fmt.Errorf("%w: readPage must not be greater than pageCount", ErrValidation)

	// ErrNotFound is returned by repositories and the service when no book has the id
	ErrNotFound = errors.New("book not found")

	// ErrInsertFailed means the store accepted an insert but the book cannot be read back
	ErrInsertFailed = errors.New("book was not stored")
)
