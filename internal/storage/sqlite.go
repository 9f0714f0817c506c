package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/contacts/pkg/types"
)

type sqliteCodec struct{}

// write builds a fresh database in a temp file beside path and renames it
// into place once every row is committed.
func (sqliteCodec) write(path string, snap Snapshot) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".contacts-*.db.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	tmp.Close()

	if err := fillDatabase(tmpName, snap); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

func fillDatabase(dbPath string, snap Snapshot) (err error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() {
		if cerr := db.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("closing database: %w", cerr)
		}
	}()

	for _, stmt := range append(append([]string{}, schemaDDL...), indexDDL...) {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("creating schema: %w", err)
		}
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning write transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`INSERT INTO snapshot (version) VALUES (?)`, snap.Version); err != nil {
		return fmt.Errorf("writing version: %w", err)
	}

	contactStmt, err := tx.Prepare(`INSERT INTO contacts (contact_id, position, name) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing contact insert: %w", err)
	}
	defer contactStmt.Close()

	fieldStmt, err := tx.Prepare(`INSERT INTO contact_fields (contact_id, ordinal, tag, value) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing field insert: %w", err)
	}
	defer fieldStmt.Close()

	for pos, c := range snap.Contacts {
		name := ""
		if len(c.Fields) > 0 {
			name = c.Fields[0].Value
		}
		if _, err := contactStmt.Exec(c.ID, pos, name); err != nil {
			return fmt.Errorf("writing contact %q: %w", name, err)
		}
		for i, f := range c.Fields {
			if _, err := fieldStmt.Exec(c.ID, i, f.Tag, f.Value); err != nil {
				return fmt.Errorf("writing field %q of %q: %w", f.Tag, name, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing write transaction: %w", err)
	}
	return nil
}

// read loads a snapshot from a database file. A missing file is reported
// before opening so that sql.Open does not create an empty database.
func (sqliteCodec) read(path string) (Snapshot, error) {
	if _, err := os.Stat(path); err != nil {
		return Snapshot{}, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return Snapshot{}, fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	var snap Snapshot
	if err := db.QueryRow(`SELECT version FROM snapshot`).Scan(&snap.Version); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Snapshot{}, fmt.Errorf("%w: no version row", types.ErrMalformedSnapshot)
		}
		return Snapshot{}, fmt.Errorf("%w: %v", types.ErrMalformedSnapshot, err)
	}

	rows, err := db.Query(`SELECT c.contact_id, f.tag, f.value
FROM contacts c
JOIN contact_fields f ON f.contact_id = c.contact_id
ORDER BY c.position, f.ordinal`)
	if err != nil {
		return Snapshot{}, fmt.Errorf("%w: %v", types.ErrMalformedSnapshot, err)
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		var f Field
		if err := rows.Scan(&id, &f.Tag, &f.Value); err != nil {
			return Snapshot{}, fmt.Errorf("scanning field: %w", err)
		}
		n := len(snap.Contacts)
		if n == 0 || snap.Contacts[n-1].ID != id {
			snap.Contacts = append(snap.Contacts, Contact{ID: id})
			n++
		}
		snap.Contacts[n-1].Fields = append(snap.Contacts[n-1].Fields, f)
	}
	if err := rows.Err(); err != nil {
		return Snapshot{}, fmt.Errorf("reading fields: %w", err)
	}
	return snap, nil
}
