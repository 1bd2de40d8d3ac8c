package enginedb

import (
	"context"
	"database/sql"

	"github.com/enginecrate/enginedb/internal/mapping"
	"github.com/enginecrate/enginedb/internal/model"
	"github.com/enginecrate/enginedb/internal/store"
)

// wrapStorage normalizes an error returned from inside withTx: known
// error kinds (mapping errors, sentinel not-found) pass through
// unchanged; anything else is an unrecognized SQL engine failure and
// gets wrapped as StorageError.
func wrapStorage(err error) error {
	if err == nil {
		return nil
	}
	switch err.(type) {
	case *mapping.InvalidTrackSnapshotError,
		*ErrCrateInvalidName,
		*CrateDatabaseInconsistencyError,
		*TrackDatabaseInconsistencyError,
		*SchemaMismatchError,
		*UnknownVersionError,
		*StorageError:
		return err
	}
	if err == store.ErrNotFound || err == ErrAlreadyInTransaction || err == ErrTrackDeleted {
		return err
	}
	return &StorageError{Underlying: err}
}

// Tracks returns the ids of every track.
func (s *Service) Tracks(ctx context.Context, tx *Tx) ([]int64, error) {
	var ids []int64
	err := s.withTx(ctx, tx, func(t *sql.Tx) error {
		var err error
		ids, err = store.NewTrackStore(t).AllIDs(ctx)
		return err
	})
	return ids, wrapStorage(err)
}

// TracksByRelativePath returns the ids of tracks whose relative path
// matches relativePath.
func (s *Service) TracksByRelativePath(ctx context.Context, tx *Tx, relativePath string) ([]int64, error) {
	var ids []int64
	err := s.withTx(ctx, tx, func(t *sql.Tx) error {
		var err error
		ids, err = store.NewTrackStore(t).ByRelativePath(ctx, relativePath)
		return err
	})
	return ids, wrapStorage(err)
}

// TrackByID loads the snapshot for id.
func (s *Service) TrackByID(ctx context.Context, tx *Tx, id int64) (model.TrackSnapshot, error) {
	var snapshot model.TrackSnapshot
	err := s.withTx(ctx, tx, func(t *sql.Tx) error {
		trackRow, err := store.NewTrackStore(t).Get(ctx, id)
		if err != nil {
			return err
		}
		perfRow, err := store.NewPerformanceDataStore(t).Get(ctx, id)
		if err != nil {
			return &TrackDatabaseInconsistencyError{Msg: "track row has no matching performance data row", ID: id}
		}
		snapshot, err = mapping.FromRows(trackRow, perfRow)
		return err
	})
	return snapshot, wrapStorage(err)
}

// CreateTrack persists snapshot as a new track and returns its
// assigned id. A locally created track (snapshot.ImportInfo == nil)
// self-references as its own origin, set here once the id is known.
func (s *Service) CreateTrack(ctx context.Context, tx *Tx, snapshot model.TrackSnapshot) (int64, error) {
	var id int64
	err := s.withTx(ctx, tx, func(t *sql.Tx) error {
		trackRow, perfRow, err := mapping.ToRows(snapshot, s.UUID)
		if err != nil {
			return err
		}

		tracks := store.NewTrackStore(t)
		id, err = tracks.Add(ctx, trackRow)
		if err != nil {
			return err
		}

		if snapshot.ImportInfo == nil {
			trackRow.ID = id
			trackRow.OriginTrackID = id
			if err := tracks.Update(ctx, trackRow); err != nil {
				return err
			}
		}

		perfRow.ID = id
		return store.NewPerformanceDataStore(t).Add(ctx, perfRow)
	})
	if err != nil {
		return 0, wrapStorage(err)
	}
	return id, nil
}

// RemoveTrack deletes the track id. Cascades to crate-track membership
// and performance data are the schema's (and this call's) responsibility.
func (s *Service) RemoveTrack(ctx context.Context, tx *Tx, id int64) error {
	err := s.withTx(ctx, tx, func(t *sql.Tx) error {
		if err := store.NewTrackStore(t).Delete(ctx, id); err != nil {
			return err
		}
		if err := store.NewPerformanceDataStore(t).Delete(ctx, id); err != nil && err != store.ErrNotFound {
			return err
		}
		return nil
	})
	return wrapStorage(err)
}
