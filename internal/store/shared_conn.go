package store

import (
	"database/sql"
	"fmt"
	"sync/atomic"
)

// SharedConn is a reference-counted handle around the physical
// connection(s) backing a database directory. Coordinator holds the
// initial reference; a caller can Acquire further ones. The underlying
// connections close when the last reference is Released. Track and
// Crate handles do not Acquire references of their own.
type SharedConn struct {
	Music       *sql.DB
	Performance *sql.DB // nil for the single-file layout

	refs atomic.Int64
}

// NewSharedConn wraps music (and, for the two-file layout, performance)
// with an initial reference count of one.
func NewSharedConn(music, performance *sql.DB) *SharedConn {
	c := &SharedConn{Music: music, Performance: performance}
	c.refs.Store(1)
	return c
}

// Acquire adds one reference and returns c, for chaining at handle
// construction time.
func (c *SharedConn) Acquire() *SharedConn {
	c.refs.Add(1)
	return c
}

// Release drops one reference, closing the underlying connection(s)
// once the count reaches zero.
func (c *SharedConn) Release() error {
	if c.refs.Add(-1) > 0 {
		return nil
	}
	var err error
	if c.Performance != nil {
		if closeErr := c.Performance.Close(); closeErr != nil {
			err = fmt.Errorf("store: close performance database: %w", closeErr)
		}
	}
	if closeErr := c.Music.Close(); closeErr != nil && err == nil {
		err = fmt.Errorf("store: close music database: %w", closeErr)
	}
	return err
}
