package enginedb

import (
	"context"
	"database/sql"
	"strings"

	"github.com/enginecrate/enginedb/internal/store"
)

// Crates returns the ids of every crate.
func (s *Service) Crates(ctx context.Context, tx *Tx) ([]int64, error) {
	var ids []int64
	err := s.withTx(ctx, tx, func(t *sql.Tx) error {
		var err error
		ids, err = store.NewCrateStore(t, s.Version.CrateIsView).AllIDs(ctx)
		return err
	})
	return ids, wrapStorage(err)
}

// RootCrates returns the ids of every crate whose parent is itself.
func (s *Service) RootCrates(ctx context.Context, tx *Tx) ([]int64, error) {
	var ids []int64
	err := s.withTx(ctx, tx, func(t *sql.Tx) error {
		var err error
		ids, err = store.NewCrateParentListStore(t).RootIDs(ctx)
		return err
	})
	return ids, wrapStorage(err)
}

// CrateByID returns the row (id and name) of crate id.
func (s *Service) CrateByID(ctx context.Context, tx *Tx, id int64) (store.CrateRow, error) {
	var row store.CrateRow
	err := s.withTx(ctx, tx, func(t *sql.Tx) error {
		var err error
		row, err = store.NewCrateStore(t, s.Version.CrateIsView).Get(ctx, id)
		return err
	})
	return row, wrapStorage(err)
}

// validateCrateName rejects the empty name and any name containing a
// semicolon, the separator the original format reserves for encoding
// crate paths.
func validateCrateName(name string) error {
	if name == "" || strings.Contains(name, ";") {
		return &ErrCrateInvalidName{Name: name}
	}
	return nil
}

// CreateRootCrate creates a new crate named name with no parent other
// than itself and returns its assigned id.
func (s *Service) CreateRootCrate(ctx context.Context, tx *Tx, name string) (int64, error) {
	if err := validateCrateName(name); err != nil {
		return 0, err
	}

	var id int64
	err := s.withTx(ctx, tx, func(t *sql.Tx) error {
		var err error
		id, err = store.NewCrateStore(t, s.Version.CrateIsView).Add(ctx, store.CrateRow{Name: name})
		if err != nil {
			return err
		}
		return store.NewCrateParentListStore(t).SetParent(ctx, id, id)
	})
	if err != nil {
		return 0, wrapStorage(err)
	}
	return id, nil
}

// RemoveCrate deletes crate id. CrateParentList and CrateTrackList rows
// referencing it are cleaned up by schema cascades.
func (s *Service) RemoveCrate(ctx context.Context, tx *Tx, id int64) error {
	err := s.withTx(ctx, tx, func(t *sql.Tx) error {
		return store.NewCrateStore(t, s.Version.CrateIsView).Delete(ctx, id)
	})
	return wrapStorage(err)
}
