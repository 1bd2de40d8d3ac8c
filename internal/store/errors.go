package store

import "errors"

// ErrNotFound is returned by get/update/delete operations addressed by an
// id that does not exist in the row store.
var ErrNotFound = errors.New("store: row not found")
