package store

import (
	"context"
	"database/sql"
	"fmt"
)

// Coordinator runs transactions that may touch both physical databases
// of the two-file layout as a single logical unit. It attaches the
// performance database to the music connection once, at construction
// time, rather than per transaction: the music *sql.DB is pinned to a
// single underlying connection (see Open) so the attachment persists
// for the life of the database, matching the "one owned connection"
// resource model of §5.
//
// For the single-file layout there is nothing to attach; Coordinator
// degenerates to running transactions directly against the one
// connection.
type Coordinator struct {
	conn *SharedConn
}

// Open attaches performance (if non-nil) to music under the alias
// "perf" and returns a Coordinator over both, wrapped in a SharedConn
// with an initial reference count of one. Per open question (iii) in
// the design notes, music is attached/opened before performance.
func Open(ctx context.Context, music, performance *sql.DB, performancePath string) (*Coordinator, error) {
	music.SetMaxOpenConns(1)
	if performance != nil {
		if _, err := music.ExecContext(ctx, `ATTACH DATABASE ? AS perf`, performancePath); err != nil {
			return nil, fmt.Errorf("store: attach performance database: %w", err)
		}
	}
	return &Coordinator{conn: NewSharedConn(music, performance)}, nil
}

// BeginTx starts one transaction spanning both physical databases (or
// the single one, for the single-file layout). Every store in this
// package can run unmodified against the returned *sql.Tx because table
// names are unqualified and unambiguous across the main and attached
// schemas.
func (c *Coordinator) BeginTx(ctx context.Context) (*sql.Tx, error) {
	tx, err := c.conn.Music.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("store: begin transaction: %w", err)
	}
	return tx, nil
}

// TwoFile reports whether this coordinator spans two physical
// databases.
func (c *Coordinator) TwoFile() bool {
	return c.conn.Performance != nil
}

// Conn returns the coordinator's underlying shared connection. Callers
// that need to outlive the coordinator (e.g. a handle held independently
// of the database value) can Acquire a reference from it.
func (c *Coordinator) Conn() *SharedConn {
	return c.conn
}

// Close releases the coordinator's reference to the underlying
// connection(s), closing them once no other reference remains.
func (c *Coordinator) Close() error {
	return c.conn.Release()
}
