package enginedb

import (
	"github.com/enginecrate/enginedb/internal/enginedb"
	"github.com/enginecrate/enginedb/internal/mapping"
	"github.com/enginecrate/enginedb/internal/store"
)

// Re-exported error kinds (spec §7). Callers type-switch or errors.As
// against these without reaching into internal packages.

// ErrAlreadyInTransaction is returned by (*Database).BeginTransaction
// when a transaction is already open on that database.
var ErrAlreadyInTransaction = enginedb.ErrAlreadyInTransaction

// ErrTrackDeleted is returned when a Track handle is used after its
// underlying row has been removed.
var ErrTrackDeleted = enginedb.ErrTrackDeleted

// ErrNotFound is returned when a lookup by id finds no row.
var ErrNotFound = store.ErrNotFound

// CrateInvalidNameError reports an empty or semicolon-containing crate name.
type CrateInvalidNameError = enginedb.ErrCrateInvalidName

// CrateDatabaseInconsistencyError reports a broken invariant in the crate tables.
type CrateDatabaseInconsistencyError = enginedb.CrateDatabaseInconsistencyError

// TrackDatabaseInconsistencyError reports a broken invariant in the track tables.
type TrackDatabaseInconsistencyError = enginedb.TrackDatabaseInconsistencyError

// InvalidTrackSnapshotError reports a snapshot that cannot be mapped to a
// persisted row: empty relative_path, no extension, or (on update) an id
// mismatch.
type InvalidTrackSnapshotError = mapping.InvalidTrackSnapshotError

// SchemaMismatchError reports that verification found a deviation between
// the expected and actual on-disk schema.
type SchemaMismatchError = enginedb.SchemaMismatchError

// UnknownVersionError reports that an opened database's version triple is
// not in the schema registry.
type UnknownVersionError = enginedb.UnknownVersionError

// StorageError wraps an underlying SQL engine error with no more specific
// kind.
type StorageError = enginedb.StorageError
