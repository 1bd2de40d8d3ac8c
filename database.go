// Package enginedb reads and writes the on-disk music-library databases
// used by the Engine family of DJ hardware and software: track metadata,
// analysis data (beat grids, hot cues, loops, waveforms), and crates.
//
// A Database is opened with Open or Create against a directory holding
// either the two-file Engine v1 layout or the single-file Engine v2
// layout. Track and Crate are lightweight handles back into that
// database; they stay valid for as long as the underlying row exists and
// the Database they came from is open.
package enginedb

import (
	"context"

	"github.com/enginecrate/enginedb/internal/enginedb"
	"github.com/enginecrate/enginedb/internal/model"
	"github.com/enginecrate/enginedb/internal/schema"
)

// Database is a handle to an opened Engine library directory. The
// underlying connection(s) are owned by this value; call Close when
// done with it. Track and Crate handles obtained from a Database do not
// keep it alive on their own — Go has no destructors to drive reference
// counting, so lifetime here is explicit rather than refcounted (see
// DESIGN.md for the source's reference-counted handle model this
// replaces).
type Database struct {
	svc *enginedb.Service
}

// Open opens the database at dir if it already holds the files the
// latest known schema version expects, or creates a fresh one there
// otherwise. created reports which branch was taken.
func Open(ctx context.Context, dir string) (db *Database, created bool, err error) {
	svc, created, err := enginedb.CreateOrLoad(ctx, dir, schema.ResolveLatest())
	if err != nil {
		return nil, false, err
	}
	return &Database{svc: svc}, created, nil
}

// Close releases the underlying connection(s). The Database and any
// handles obtained from it must not be used afterward.
func (db *Database) Close() error {
	return db.svc.Close()
}

// UUID is the database's identity, stable across opens.
func (db *Database) UUID() string {
	return db.svc.UUID
}

// Tx is a scoped transaction guard. Commit flushes; Rollback discards.
// Nothing ends a guard automatically: one that is never committed or
// rolled back keeps its transaction open. Nested transactions on the
// same Database fail with ErrAlreadyInTransaction.
type Tx struct {
	inner *enginedb.Tx
}

// BeginTransaction acquires the database's single-writer guard.
func (db *Database) BeginTransaction(ctx context.Context) (*Tx, error) {
	inner, err := db.svc.BeginTransaction(ctx)
	if err != nil {
		return nil, err
	}
	return &Tx{inner: inner}, nil
}

// Commit flushes the transaction.
func (tx *Tx) Commit() error { return tx.inner.Commit() }

// Rollback discards the transaction.
func (tx *Tx) Rollback() error { return tx.inner.Rollback() }

func innerTx(tx *Tx) *enginedb.Tx {
	if tx == nil {
		return nil
	}
	return tx.inner
}

// Tracks returns a handle for every track in the database.
func (db *Database) Tracks(ctx context.Context, tx *Tx) ([]*Track, error) {
	ids, err := db.svc.Tracks(ctx, innerTx(tx))
	if err != nil {
		return nil, err
	}
	return trackHandles(db, ids), nil
}

// TracksByRelativePath returns a handle for every track whose relative
// path matches relativePath.
func (db *Database) TracksByRelativePath(ctx context.Context, tx *Tx, relativePath string) ([]*Track, error) {
	ids, err := db.svc.TracksByRelativePath(ctx, innerTx(tx), relativePath)
	if err != nil {
		return nil, err
	}
	return trackHandles(db, ids), nil
}

// TrackByID returns a handle for track id, failing with ErrNotFound if
// it does not exist.
func (db *Database) TrackByID(ctx context.Context, tx *Tx, id int64) (*Track, error) {
	if _, err := db.svc.TrackByID(ctx, innerTx(tx), id); err != nil {
		return nil, err
	}
	return &Track{db: db, id: id}, nil
}

// CreateTrack persists snapshot as a new track and returns a handle to it.
func (db *Database) CreateTrack(ctx context.Context, tx *Tx, snapshot model.TrackSnapshot) (*Track, error) {
	id, err := db.svc.CreateTrack(ctx, innerTx(tx), snapshot)
	if err != nil {
		return nil, err
	}
	return &Track{db: db, id: id}, nil
}

// Crates returns a handle for every crate in the database.
func (db *Database) Crates(ctx context.Context, tx *Tx) ([]*Crate, error) {
	ids, err := db.svc.Crates(ctx, innerTx(tx))
	if err != nil {
		return nil, err
	}
	return crateHandles(db, ids), nil
}

// RootCrates returns a handle for every crate whose parent is itself.
func (db *Database) RootCrates(ctx context.Context, tx *Tx) ([]*Crate, error) {
	ids, err := db.svc.RootCrates(ctx, innerTx(tx))
	if err != nil {
		return nil, err
	}
	return crateHandles(db, ids), nil
}

// CrateByID returns a handle for crate id, failing with ErrNotFound if it
// does not exist.
func (db *Database) CrateByID(ctx context.Context, tx *Tx, id int64) (*Crate, error) {
	if _, err := db.svc.CrateByID(ctx, innerTx(tx), id); err != nil {
		return nil, err
	}
	return &Crate{db: db, id: id}, nil
}

// CreateRootCrate creates a crate named name with no parent other than
// itself and returns a handle to it. Fails with CrateInvalidNameError if
// name is empty or contains ';'.
func (db *Database) CreateRootCrate(ctx context.Context, tx *Tx, name string) (*Crate, error) {
	id, err := db.svc.CreateRootCrate(ctx, innerTx(tx), name)
	if err != nil {
		return nil, err
	}
	return &Crate{db: db, id: id}, nil
}

func trackHandles(db *Database, ids []int64) []*Track {
	tracks := make([]*Track, len(ids))
	for i, id := range ids {
		tracks[i] = &Track{db: db, id: id}
	}
	return tracks
}

func crateHandles(db *Database, ids []int64) []*Crate {
	crates := make([]*Crate, len(ids))
	for i, id := range ids {
		crates[i] = &Crate{db: db, id: id}
	}
	return crates
}
