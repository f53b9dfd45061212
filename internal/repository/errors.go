// internal/repository/errors.go
package repository

import "errors"

// ErrNotFound is returned by repositories when a row does not exist.
// Services translate it into the domain-specific error code.
var ErrNotFound = errors.New("record not found")
