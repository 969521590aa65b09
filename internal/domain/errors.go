package domain

import "errors"

// ErrNotFound is returned when a leftover or grocery item does not exist for
// the requesting user.
var ErrNotFound = errors.New("not found")
