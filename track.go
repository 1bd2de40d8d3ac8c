package enginedb

import (
	"context"

	"github.com/enginecrate/enginedb/internal/model"
)

// Track is a handle to one persisted track row. It stays valid for as
// long as the row exists; use IsValid to check after a concurrent
// deletion might have happened.
type Track struct {
	db *Database
	id int64
}

// ID is the track's assigned row id.
func (t *Track) ID() int64 { return t.id }

// Snapshot reads the track's current state.
func (t *Track) Snapshot(ctx context.Context, tx *Tx) (model.TrackSnapshot, error) {
	return t.db.svc.TrackByID(ctx, innerTx(tx), t.id)
}

// IsValid reports whether the track still exists, by looking it up by id.
func (t *Track) IsValid(ctx context.Context) bool {
	_, err := t.db.svc.TrackByID(ctx, nil, t.id)
	return err == nil
}

// Remove deletes the track. Crate membership referencing it is cleaned
// up by the schema's cascades (or, for the two-file layout's performance
// data, by this call directly).
func (t *Track) Remove(ctx context.Context, tx *Tx) error {
	return t.db.svc.RemoveTrack(ctx, innerTx(tx), t.id)
}
