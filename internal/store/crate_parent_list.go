package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// CrateParentListStore is the row store for CrateParentList. Every crate
// has exactly one row keyed by its own id; a root crate's parent is
// itself.
type CrateParentListStore struct {
	db DBTX
}

// NewCrateParentListStore builds a CrateParentListStore over db.
func NewCrateParentListStore(db DBTX) *CrateParentListStore {
	return &CrateParentListStore{db: db}
}

// ParentOf returns the parent crate id of originID.
func (s *CrateParentListStore) ParentOf(ctx context.Context, originID int64) (int64, error) {
	var parentID int64
	err := s.db.QueryRowContext(ctx, `SELECT crateParentId FROM CrateParentList WHERE crateOriginId = ?`, originID).Scan(&parentID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("store: parent of crate %d: %w", originID, err)
	}
	return parentID, nil
}

// SetParent inserts or replaces the CrateParentList row for originID.
// Passing originID as parentID marks originID as a root crate.
func (s *CrateParentListStore) SetParent(ctx context.Context, originID, parentID int64) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO CrateParentList (crateOriginId, crateParentId) VALUES (?, ?)
		ON CONFLICT (crateOriginId) DO UPDATE SET crateParentId = excluded.crateParentId`, originID, parentID)
	if err != nil {
		return fmt.Errorf("store: set parent of crate %d: %w", originID, err)
	}
	return nil
}

// RootIDs returns the ids of every crate whose parent is itself.
func (s *CrateParentListStore) RootIDs(ctx context.Context) ([]int64, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT crateOriginId FROM CrateParentList WHERE crateOriginId = crateParentId ORDER BY crateOriginId`)
	if err != nil {
		return nil, fmt.Errorf("store: list root crates: %w", err)
	}
	defer rows.Close()
	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("store: scan root crate id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Delete removes the CrateParentList row for originID.
func (s *CrateParentListStore) Delete(ctx context.Context, originID int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM CrateParentList WHERE crateOriginId = ?`, originID)
	if err != nil {
		return fmt.Errorf("store: delete parent of crate %d: %w", originID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
