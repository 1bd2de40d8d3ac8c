package schema

import (
	"database/sql"
	"fmt"
)

// MismatchError describes one way a database file failed to match its
// claimed schema version.
type MismatchError struct {
	File   string
	Detail string
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("schema: %s: %s", e.File, e.Detail)
}

// Verify checks that every physical file version expects actually
// exists in dir and carries the expected tables, views, columns,
// indexes and triggers. It does not check row data.
func Verify(dir string, version Version) error {
	for _, role := range version.Files {
		db, err := openFile(dir, role.FileName)
		if err != nil {
			return err
		}
		err = verifyFile(db, role)
		closeErr := db.Close()
		if err != nil {
			return err
		}
		if closeErr != nil {
			return fmt.Errorf("schema: close %s after verify: %w", role.FileName, closeErr)
		}
	}
	return nil
}

func verifyFile(db *sql.DB, role FileRole) error {
	for table, columns := range role.Expected.Tables {
		if err := verifyColumns(db, role.FileName, "table", table, columns); err != nil {
			return err
		}
	}
	for view, columns := range role.Expected.Views {
		if err := verifyColumns(db, role.FileName, "view", view, columns); err != nil {
			return err
		}
	}
	for _, index := range role.Expected.Indexes {
		if err := verifyObjectExists(db, role.FileName, "index", index); err != nil {
			return err
		}
	}
	for _, trigger := range role.Expected.Triggers {
		if err := verifyObjectExists(db, role.FileName, "trigger", trigger); err != nil {
			return err
		}
	}
	return nil
}

func verifyObjectExists(db *sql.DB, fileName, objType, name string) error {
	var count int
	err := db.QueryRow(`SELECT count(*) FROM sqlite_master WHERE type = ? AND name = ?`, objType, name).Scan(&count)
	if err != nil {
		return fmt.Errorf("schema: query sqlite_master for %s: %w", name, err)
	}
	if count == 0 {
		return &MismatchError{File: fileName, Detail: fmt.Sprintf("missing %s %q", objType, name)}
	}
	return nil
}

func verifyColumns(db *sql.DB, fileName, objType, name string, want []string) error {
	if err := verifyObjectExists(db, fileName, objType, name); err != nil {
		return err
	}

	rows, err := db.Query(fmt.Sprintf(`PRAGMA table_info(%q)`, name))
	if err != nil {
		return fmt.Errorf("schema: table_info(%s): %w", name, err)
	}
	defer rows.Close()

	got := make(map[string]bool)
	for rows.Next() {
		var (
			cid        int
			colName    string
			colType    sql.NullString
			notNull    int
			defaultVal sql.NullString
			pk         int
		)
		if err := rows.Scan(&cid, &colName, &colType, &notNull, &defaultVal, &pk); err != nil {
			return fmt.Errorf("schema: scan table_info(%s): %w", name, err)
		}
		got[colName] = true
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("schema: iterate table_info(%s): %w", name, err)
	}

	for _, col := range want {
		if !got[col] {
			return &MismatchError{File: fileName, Detail: fmt.Sprintf("%s %q missing column %q", objType, name, col)}
		}
	}
	return nil
}
