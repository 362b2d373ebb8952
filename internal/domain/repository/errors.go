package repository

import "errors"

// ErrDuplicateKey is returned by Create when a unique column already holds the value.
var ErrDuplicateKey = errors.New("duplicate key")
