package store

import (
	"context"
	"fmt"
)

// CrateTrackListStore is the row store for CrateTrackList: ordered
// track membership within a crate.
type CrateTrackListStore struct {
	db DBTX
}

// NewCrateTrackListStore builds a CrateTrackListStore over db.
func NewCrateTrackListStore(db DBTX) *CrateTrackListStore {
	return &CrateTrackListStore{db: db}
}

// TrackIDsByCrate returns the track ids in crateID, ordered by position.
func (s *CrateTrackListStore) TrackIDsByCrate(ctx context.Context, crateID int64) ([]int64, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT trackId FROM CrateTrackList WHERE crateId = ? ORDER BY position`, crateID)
	if err != nil {
		return nil, fmt.Errorf("store: tracks of crate %d: %w", crateID, err)
	}
	defer rows.Close()
	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("store: scan crate track id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Count returns the number of tracks in crateID.
func (s *CrateTrackListStore) Count(ctx context.Context, crateID int64) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM CrateTrackList WHERE crateId = ?`, crateID).Scan(&count); err != nil {
		return 0, fmt.Errorf("store: count tracks of crate %d: %w", crateID, err)
	}
	return count, nil
}

// Add appends trackID to crateID at position.
func (s *CrateTrackListStore) Add(ctx context.Context, crateID, trackID int64, position int64) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO CrateTrackList (crateId, trackId, position) VALUES (?, ?, ?)`, crateID, trackID, position)
	if err != nil {
		return fmt.Errorf("store: add track %d to crate %d: %w", trackID, crateID, err)
	}
	return nil
}

// Remove deletes the membership row for (crateID, trackID).
func (s *CrateTrackListStore) Remove(ctx context.Context, crateID, trackID int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM CrateTrackList WHERE crateId = ? AND trackId = ?`, crateID, trackID)
	if err != nil {
		return fmt.Errorf("store: remove track %d from crate %d: %w", trackID, crateID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
