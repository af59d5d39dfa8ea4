package repository

import "errors"

// ErrNotFound indicates the requested record does not exist in its collection.
var ErrNotFound = errors.New("record not found")

// ErrDuplicate indicates a record violating a uniqueness rule already exists.
var ErrDuplicate = errors.New("duplicate record")
