package enginedb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/enginecrate/enginedb/internal/schema"
	"github.com/enginecrate/enginedb/internal/store"

	_ "modernc.org/sqlite"
)

// Service is the database service: the opened connection(s), the
// resolved schema version, and the single-writer transaction guard.
type Service struct {
	Dir     string
	Version schema.Version
	UUID    string

	coord *store.Coordinator

	mu            sync.Mutex
	inTransaction bool
}

// CreateOrLoad opens dir if it already contains the files version
// expects, or creates a fresh database there otherwise. created reports
// which branch was taken.
func CreateOrLoad(ctx context.Context, dir string, version schema.Version) (svc *Service, created bool, err error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, false, fmt.Errorf("enginedb: create database directory: %w", err)
	}

	exists := true
	for _, role := range version.Files {
		if _, statErr := os.Stat(filepath.Join(dir, role.FileName)); statErr != nil {
			exists = false
			break
		}
	}

	var databaseUUID string
	if !exists {
		databaseUUID, err = schema.Create(dir, version)
		if err != nil {
			return nil, false, err
		}
		created = true
	} else {
		databaseUUID, err = verifyOrUpgrade(dir, version)
		if err != nil {
			return nil, false, err
		}
	}

	coord, err := openCoordinator(ctx, dir, version)
	if err != nil {
		return nil, false, err
	}

	return &Service{Dir: dir, Version: version, UUID: databaseUUID, coord: coord}, created, nil
}

// verifyOrUpgrade brings an existing database directory to target,
// returning its uuid. It reads the triple actually on disk rather than
// assuming the directory already matches target: an on-disk triple the
// registry doesn't recognise fails with UnknownVersionError (spec.md
// §4.3's "an unknown existing database fails with unknown_version"); a
// recognised but older triple is driven forward with schema.UpgradeTo
// before the final schema.Verify against target.
func verifyOrUpgrade(dir string, target schema.Version) (string, error) {
	onDisk, err := readOnDiskTriple(dir)
	if err != nil {
		return "", err
	}

	current, err := schema.Lookup(onDisk)
	if err != nil {
		var unknown *schema.ErrUnknownVersion
		if errors.As(err, &unknown) {
			return "", &UnknownVersionError{Version: onDisk.String()}
		}
		return "", err
	}

	if current.Triple != target.Triple {
		if err := schema.UpgradeTo(dir, current.Triple, target); err != nil {
			return "", &StorageError{Underlying: err}
		}
	}

	if err := schema.Verify(dir, target); err != nil {
		var mismatch *schema.MismatchError
		if errors.As(err, &mismatch) {
			return "", &SchemaMismatchError{Expected: target.Triple.String(), Found: mismatch.Detail}
		}
		return "", err
	}

	return readUUID(dir, target)
}

// readOnDiskTriple determines the schema triple a database directory
// actually carries, independent of any target version: a two-file
// layout is identified by p.db's presence alongside m.db, each file's
// own Information row supplying its version component.
func readOnDiskTriple(dir string) (schema.Triple, error) {
	musicVersion, err := readFileVersion(filepath.Join(dir, "m.db"))
	if err != nil {
		return schema.Triple{}, err
	}

	perfPath := filepath.Join(dir, "p.db")
	if _, statErr := os.Stat(perfPath); statErr != nil {
		return schema.Triple{EngineVersion: 2, MusicVersion: musicVersion, PerformanceVersion: musicVersion}, nil
	}

	performanceVersion, err := readFileVersion(perfPath)
	if err != nil {
		return schema.Triple{}, err
	}
	return schema.Triple{EngineVersion: 1, MusicVersion: musicVersion, PerformanceVersion: performanceVersion}, nil
}

func readFileVersion(path string) (string, error) {
	db, err := openDBFile(path)
	if err != nil {
		return "", err
	}
	defer db.Close()
	row, err := store.NewInformationStore(db).Get(context.Background())
	if err != nil {
		return "", &StorageError{Underlying: err}
	}
	return fmt.Sprintf("%d.%d.%d", row.SchemaVersionMajor, row.SchemaVersionMinor, row.SchemaVersionPatch), nil
}

func readUUID(dir string, version schema.Version) (string, error) {
	primary := version.Files[0]
	db, err := openDBFile(filepath.Join(dir, primary.FileName))
	if err != nil {
		return "", err
	}
	defer db.Close()
	row, err := store.NewInformationStore(db).Get(context.Background())
	if err != nil {
		return "", &StorageError{Underlying: err}
	}
	return row.UUID, nil
}

func openDBFile(path string) (*sql.DB, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("enginedb: resolve path: %w", err)
	}
	dsn := fmt.Sprintf("file:%s?_pragma=foreign_keys(ON)", filepath.ToSlash(absPath))
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("enginedb: open %s: %w", path, err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enginedb: enable foreign keys on %s: %w", path, err)
	}
	return db, nil
}

func openCoordinator(ctx context.Context, dir string, version schema.Version) (*store.Coordinator, error) {
	if len(version.Files) == 1 {
		db, err := openDBFile(filepath.Join(dir, version.Files[0].FileName))
		if err != nil {
			return nil, err
		}
		return store.Open(ctx, db, nil, "")
	}

	music, err := openDBFile(filepath.Join(dir, version.Files[0].FileName))
	if err != nil {
		return nil, err
	}
	performancePath, err := filepath.Abs(filepath.Join(dir, version.Files[1].FileName))
	if err != nil {
		return nil, fmt.Errorf("enginedb: resolve performance path: %w", err)
	}
	performance, err := openDBFile(filepath.Join(dir, version.Files[1].FileName))
	if err != nil {
		return nil, err
	}
	return store.Open(ctx, music, performance, filepath.ToSlash(performancePath))
}

// Close releases the underlying connection(s).
func (s *Service) Close() error {
	return s.coord.Close()
}

// Tx is the transaction guard returned by BeginTransaction. Commit or
// Rollback ends it; once either has run, further calls to either are
// no-ops that return nil.
type Tx struct {
	svc *Service
	tx  *sql.Tx
	done bool
}

// BeginTransaction starts a single-writer transaction. Calling it again
// before the first guard is committed or rolled back fails with
// ErrAlreadyInTransaction.
func (s *Service) BeginTransaction(ctx context.Context) (*Tx, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inTransaction {
		return nil, ErrAlreadyInTransaction
	}
	tx, err := s.coord.BeginTx(ctx)
	if err != nil {
		return nil, &StorageError{Underlying: err}
	}
	s.inTransaction = true
	return &Tx{svc: s, tx: tx}, nil
}

// Commit flushes the transaction.
func (t *Tx) Commit() error {
	if t.done {
		return nil
	}
	t.done = true
	t.svc.mu.Lock()
	t.svc.inTransaction = false
	t.svc.mu.Unlock()
	if err := t.tx.Commit(); err != nil {
		return &StorageError{Underlying: err}
	}
	return nil
}

// Rollback discards the transaction.
func (t *Tx) Rollback() error {
	if t.done {
		return nil
	}
	t.done = true
	t.svc.mu.Lock()
	t.svc.inTransaction = false
	t.svc.mu.Unlock()
	if err := t.tx.Rollback(); err != nil {
		return &StorageError{Underlying: err}
	}
	return nil
}

// withTx runs fn under tx if the caller already holds a guard,
// otherwise opens and commits/rolls back a new one. This is how the
// service's composite operations satisfy "use a transaction when more
// than one statement mutates state" (spec.md §4.6) while still letting
// callers compose through an existing guard.
func (s *Service) withTx(ctx context.Context, tx *Tx, fn func(*sql.Tx) error) error {
	if tx != nil {
		return fn(tx.tx)
	}

	guard, err := s.BeginTransaction(ctx)
	if err != nil {
		return err
	}
	if err := fn(guard.tx); err != nil {
		_ = guard.Rollback()
		return err
	}
	return guard.Commit()
}
