package store

import (
	"context"
	"fmt"
)

// InformationRow is the single-row Information table carried by every
// physical database file: the database's uuid and the schema version it
// claims to implement.
type InformationRow struct {
	ID                 int64
	UUID               string
	SchemaVersionMajor int
	SchemaVersionMinor int
	SchemaVersionPatch int
}

// InformationStore reads and updates the single Information row.
type InformationStore struct {
	db DBTX
}

// NewInformationStore builds an InformationStore over db.
func NewInformationStore(db DBTX) *InformationStore {
	return &InformationStore{db: db}
}

// Get returns the one Information row in the database.
func (s *InformationStore) Get(ctx context.Context) (InformationRow, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id, uuid, schemaVersionMajor, schemaVersionMinor, schemaVersionPatch FROM Information LIMIT 1`)
	var out InformationRow
	if err := row.Scan(&out.ID, &out.UUID, &out.SchemaVersionMajor, &out.SchemaVersionMinor, &out.SchemaVersionPatch); err != nil {
		return InformationRow{}, fmt.Errorf("store: get information: %w", err)
	}
	return out, nil
}

// UpdateVersion rewrites the schema version columns of the one
// Information row. The schema registry's upgrades do not call it: their
// migration scripts update Information themselves.
func (s *InformationStore) UpdateVersion(ctx context.Context, major, minor, patch int) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE Information SET schemaVersionMajor = ?, schemaVersionMinor = ?, schemaVersionPatch = ?`,
		major, minor, patch,
	)
	if err != nil {
		return fmt.Errorf("store: update information version: %w", err)
	}
	return nil
}
