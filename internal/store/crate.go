package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// CrateRow is one Crate. Pre-v1.9.1 this is a concrete auto-increment
// table row; from v1.9.1 it is a row of the view over List filtered to
// type = 1.
type CrateRow struct {
	ID   int64
	Name string
}

// CrateStore is the row store for Crate. Its insert strategy depends on
// whether the open schema has forked Crate into a view over List: the
// registry (internal/schema) tells the caller which to construct via
// IsView.
type CrateStore struct {
	db     DBTX
	IsView bool
}

// NewCrateStore builds a CrateStore over db. isView selects the v1.9.1+
// List-view id assignment strategy (MAX(id)+1 over List, computed by
// Add before the insert because the view has no AUTOINCREMENT of its
// own) instead of plain auto-increment.
func NewCrateStore(db DBTX, isView bool) *CrateStore {
	return &CrateStore{db: db, IsView: isView}
}

// Exists reports whether id names a Crate row.
func (s *CrateStore) Exists(ctx context.Context, id int64) (bool, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM Crate WHERE id = ?`, id).Scan(&count); err != nil {
		return false, fmt.Errorf("store: crate exists: %w", err)
	}
	return count > 0, nil
}

// Get returns the Crate row for id.
func (s *CrateStore) Get(ctx context.Context, id int64) (CrateRow, error) {
	var row CrateRow
	err := s.db.QueryRowContext(ctx, `SELECT id, name FROM Crate WHERE id = ?`, id).Scan(&row.ID, &row.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return CrateRow{}, ErrNotFound
	}
	if err != nil {
		return CrateRow{}, fmt.Errorf("store: get crate %d: %w", id, err)
	}
	return row, nil
}

// AllIDs returns every Crate id.
func (s *CrateStore) AllIDs(ctx context.Context) ([]int64, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id FROM Crate ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("store: list crate ids: %w", err)
	}
	defer rows.Close()
	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("store: scan crate id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Add inserts a new Crate row, ignoring row.ID, and returns the
// assigned id.
func (s *CrateStore) Add(ctx context.Context, row CrateRow) (int64, error) {
	if !s.IsView {
		res, err := s.db.ExecContext(ctx, `INSERT INTO Crate (name) VALUES (?)`, row.Name)
		if err != nil {
			return 0, fmt.Errorf("store: add crate: %w", err)
		}
		return res.LastInsertId()
	}

	var maxID sql.NullInt64
	if err := s.db.QueryRowContext(ctx, `SELECT MAX(id) FROM List`).Scan(&maxID); err != nil {
		return 0, fmt.Errorf("store: compute next list id: %w", err)
	}
	nextID := maxID.Int64 + 1

	if _, err := s.db.ExecContext(ctx, `INSERT INTO Crate (id, name) VALUES (?, ?)`, nextID, row.Name); err != nil {
		return 0, fmt.Errorf("store: add crate (list-backed): %w", err)
	}
	return nextID, nil
}

// Update renames the Crate row identified by row.ID.
func (s *CrateStore) Update(ctx context.Context, row CrateRow) error {
	res, err := s.db.ExecContext(ctx, `UPDATE Crate SET name = ? WHERE id = ?`, row.Name, row.ID)
	if err != nil {
		return fmt.Errorf("store: update crate %d: %w", row.ID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the Crate row for id. The schema's cascades remove its
// CrateParentList and CrateTrackList rows, including the CrateParentList
// rows of crates whose parent it was; those child crates themselves are
// not deleted.
func (s *CrateStore) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM Crate WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("store: delete crate %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
