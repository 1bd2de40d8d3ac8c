// Package enginedb is the database service: crate and track operations
// composed from internal/store row stores and internal/mapping
// conversions, under a single-writer transaction guard.
package enginedb

import (
	"errors"
	"fmt"
)

// ErrAlreadyInTransaction is returned by BeginTransaction when a
// transaction is already open on this Service; nested transactions are
// not supported.
var ErrAlreadyInTransaction = errors.New("enginedb: already in transaction")

// ErrTrackDeleted is returned when a Track handle is used after its
// underlying row has been removed.
var ErrTrackDeleted = errors.New("enginedb: track deleted")

// ErrCrateInvalidName is returned when a crate name is empty or
// contains a semicolon.
type ErrCrateInvalidName struct {
	Name string
}

func (e *ErrCrateInvalidName) Error() string {
	return fmt.Sprintf("enginedb: invalid crate name %q", e.Name)
}

// CrateDatabaseInconsistencyError reports a broken invariant in the
// crate tables (e.g. a crate row with no CrateParentList entry).
type CrateDatabaseInconsistencyError struct {
	Msg string
	ID  int64
}

func (e *CrateDatabaseInconsistencyError) Error() string {
	return fmt.Sprintf("enginedb: crate database inconsistency at id %d: %s", e.ID, e.Msg)
}

// TrackDatabaseInconsistencyError reports a broken invariant in the
// track tables (e.g. a Track row with no matching PerformanceData row).
type TrackDatabaseInconsistencyError struct {
	Msg string
	ID  int64
}

func (e *TrackDatabaseInconsistencyError) Error() string {
	return fmt.Sprintf("enginedb: track database inconsistency at id %d: %s", e.ID, e.Msg)
}

// SchemaMismatchError reports that Verify found a deviation between the
// expected and actual on-disk schema.
type SchemaMismatchError struct {
	Expected string
	Found    string
}

func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("enginedb: schema mismatch: expected %s, found %s", e.Expected, e.Found)
}

// UnknownVersionError reports that an opened database's version triple
// is not in the schema registry.
type UnknownVersionError struct {
	Version string
}

func (e *UnknownVersionError) Error() string {
	return fmt.Sprintf("enginedb: unknown schema version %s", e.Version)
}

// StorageError wraps an underlying SQL engine error that has no more
// specific kind.
type StorageError struct {
	Underlying error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("enginedb: storage error: %v", e.Underlying)
}

func (e *StorageError) Unwrap() error {
	return e.Underlying
}
