package schema

import (
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/google/uuid"

	// Registers the "sqlite" driver with database/sql.
	_ "modernc.org/sqlite"
)

func openFile(dir, fileName string) (*sql.DB, error) {
	path := filepath.Join(dir, fileName)
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("schema: resolve path: %w", err)
	}
	dsn := fmt.Sprintf("file:%s?_pragma=foreign_keys(ON)", filepath.ToSlash(absPath))
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("schema: open %s: %w", fileName, err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("schema: enable foreign keys on %s: %w", fileName, err)
	}
	return db, nil
}

func applyMigrations(db *sql.DB, role FileRole) error {
	driver, err := sqlite.WithInstance(db, &sqlite.Config{})
	if err != nil {
		return fmt.Errorf("schema: migrate driver for %s: %w", role.Name, err)
	}

	source, err := iofs.New(role.MigrationsFS, role.MigrationsSubdir)
	if err != nil {
		return fmt.Errorf("schema: load migrations for %s: %w", role.Name, err)
	}
	defer func() {
		_ = source.Close()
	}()

	migrator, err := migrate.NewWithInstance("iofs", source, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("schema: migrator for %s: %w", role.Name, err)
	}

	if err := migrator.Migrate(role.TargetStep); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("schema: migrate %s to step %d: %w", role.Name, role.TargetStep, err)
	}
	return nil
}

func seedInformation(db *sql.DB, databaseUUID, versionStr string) error {
	major, minor, patch, err := parseSemver(versionStr)
	if err != nil {
		return err
	}
	_, err = db.Exec(
		`INSERT INTO Information (uuid, schemaVersionMajor, schemaVersionMinor, schemaVersionPatch) VALUES (?, ?, ?, ?)`,
		databaseUUID, major, minor, patch,
	)
	if err != nil {
		return fmt.Errorf("schema: seed Information row: %w", err)
	}
	return nil
}

// Create builds a brand new database directory at version, generating a
// fresh database UUID shared by every physical file it creates.
func Create(dir string, version Version) (string, error) {
	databaseUUID := uuid.NewString()
	for _, role := range version.Files {
		db, err := openFile(dir, role.FileName)
		if err != nil {
			return "", err
		}
		err = applyMigrations(db, role)
		if err == nil {
			err = seedInformation(db, databaseUUID, role.versionField(version.Triple))
		}
		closeErr := db.Close()
		if err != nil {
			return "", err
		}
		if closeErr != nil {
			return "", fmt.Errorf("schema: close %s after create: %w", role.FileName, closeErr)
		}
	}
	return databaseUUID, nil
}

// UpgradeTo steps every physical file in dir forward from current to
// target, applying each intermediate version's migrations in order.
// It does not reseed Information; the version-bump is carried by the
// migration scripts themselves.
func UpgradeTo(dir string, current Triple, target Version) error {
	path, err := UpgradePath(current)
	if err != nil {
		return err
	}
	for _, step := range path {
		for _, role := range step.Files {
			db, err := openFile(dir, role.FileName)
			if err != nil {
				return err
			}
			err = applyMigrations(db, role)
			closeErr := db.Close()
			if err != nil {
				return err
			}
			if closeErr != nil {
				return fmt.Errorf("schema: close %s during upgrade: %w", role.FileName, closeErr)
			}
		}
		if step.Triple == target.Triple {
			return nil
		}
	}
	return fmt.Errorf("schema: upgrade from %s never reaches target %s", current, target.Triple)
}
