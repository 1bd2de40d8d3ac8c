package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// NoAlbumArtID is the sentinel AlbumArt.id meaning "no art attached".
const NoAlbumArtID int64 = 1

// AlbumArtRow is one row of the AlbumArt table.
type AlbumArtRow struct {
	ID        int64
	Hash      *string
	ImageData []byte
}

// AlbumArtStore is the row store for AlbumArt.
type AlbumArtStore struct {
	db DBTX
}

// NewAlbumArtStore builds an AlbumArtStore over db.
func NewAlbumArtStore(db DBTX) *AlbumArtStore {
	return &AlbumArtStore{db: db}
}

// Exists reports whether id names an AlbumArt row.
func (s *AlbumArtStore) Exists(ctx context.Context, id int64) (bool, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM AlbumArt WHERE id = ?`, id).Scan(&count); err != nil {
		return false, fmt.Errorf("store: album art exists: %w", err)
	}
	return count > 0, nil
}

// Get returns the AlbumArt row for id.
func (s *AlbumArtStore) Get(ctx context.Context, id int64) (AlbumArtRow, error) {
	var (
		row  AlbumArtRow
		hash sql.NullString
	)
	err := s.db.QueryRowContext(ctx, `SELECT id, hash, imageData FROM AlbumArt WHERE id = ?`, id).
		Scan(&row.ID, &hash, &row.ImageData)
	if errors.Is(err, sql.ErrNoRows) {
		return AlbumArtRow{}, ErrNotFound
	}
	if err != nil {
		return AlbumArtRow{}, fmt.Errorf("store: get album art %d: %w", id, err)
	}
	row.Hash = optionalString(hash)
	return row, nil
}

// Add inserts a new AlbumArt row, ignoring row.ID, and returns the
// assigned id.
func (s *AlbumArtStore) Add(ctx context.Context, row AlbumArtRow) (int64, error) {
	res, err := s.db.ExecContext(ctx, `INSERT INTO AlbumArt (hash, imageData) VALUES (?, ?)`, nullString(row.Hash), row.ImageData)
	if err != nil {
		return 0, fmt.Errorf("store: add album art: %w", err)
	}
	return res.LastInsertId()
}

// Delete removes the AlbumArt row for id.
func (s *AlbumArtStore) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM AlbumArt WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("store: delete album art %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
