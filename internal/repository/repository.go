// Package repository holds what storage implementations share.
package repository

import "errors"

// ErrDuplicate is returned when a unique constraint rejects an insert
var ErrDuplicate = errors.New("duplicate record")
