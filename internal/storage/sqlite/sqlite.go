// Package sqlite provides a SQLite-backed implementation of the
// storage.Storage interface using Go's standard database/sql package.
//
// WHY SQLite?
// ───────────
// SQLite runs inside the process: no network, no separate server, nothing
// to install beyond the driver. With the default path ":memory:" the
// database lives only as long as the process, which matches the address
// book's session lifetime while still exercising a real SQL schema.
//
// The blank import below registers the sqlite3 driver with database/sql.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/aanand-mishra/contacts-api/internal/config"
	"github.com/aanand-mishra/contacts-api/internal/storage"
	"github.com/aanand-mishra/contacts-api/internal/types"

	// Blank import: side-effect only (registers the "sqlite3" driver).
	_ "github.com/mattn/go-sqlite3"
)

// SQLite is the concrete implementation of storage.Storage.
type SQLite struct {
	Db *sql.DB
}

var _ storage.Storage = (*SQLite)(nil)

// New opens the SQLite database at cfg.Storage.Path and creates the
// contacts and phones tables if they do not already exist.
func New(cfg *config.Config) (*SQLite, error) {
	db, err := sql.Open("sqlite3", cfg.Storage.Path)
	if err != nil {
		return nil, fmt.Errorf("sqlite.New: open db: %w", err)
	}

	// An in-memory SQLite database belongs to ONE connection. If the pool
	// opened a second connection it would see a second, empty database.
	// A single connection also serialises writers, which SQLite wants
	// anyway.
	db.SetMaxOpenConns(1)

	// Schema:
	//   contacts.id      : row id; its order IS the insertion order
	//   contacts.name    : unique key of the address book
	//   contacts.birthday: DD.MM.YYYY, or '' when unset
	//   phones.id        : row id; its order is the phone order
	//   phones.contact_id: owning contact
	//   phones.number    : 10-digit phone
	for _, ddl := range []string{
		`CREATE TABLE IF NOT EXISTS contacts (
			id       INTEGER PRIMARY KEY AUTOINCREMENT,
			name     TEXT    NOT NULL UNIQUE,
			birthday TEXT    NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS phones (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			contact_id INTEGER NOT NULL REFERENCES contacts(id),
			number     TEXT    NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS phones_contact_id ON phones (contact_id)`,
	} {
		if _, err := db.Exec(ddl); err != nil {
			db.Close()
			return nil, fmt.Errorf("sqlite.New: create schema: %w", err)
		}
	}

	return &SQLite{Db: db}, nil
}

// Close releases the database. For ":memory:" this discards every contact.
func (s *SQLite) Close() error {
	return s.Db.Close()
}

// ─────────────────────────────────────────────────────────────────────────────
// AddContact upserts the contact row and rewrites its phones inside one
// transaction.
//
// WHY UPSERT INSTEAD OF DELETE + INSERT?
// ──────────────────────────────────────
// "INSERT ... ON CONFLICT(name) DO UPDATE" keeps the existing row id, and
// the row id is what GetContacts orders by. An overwritten contact
// therefore keeps its place in the list, like the in-memory backend.
// ─────────────────────────────────────────────────────────────────────────────
func (s *SQLite) AddContact(record *types.Record) error {
	tx, err := s.Db.Begin()
	if err != nil {
		return fmt.Errorf("AddContact: begin: %w", err)
	}
	// Rollback after a successful Commit is a no-op returning ErrTxDone.
	defer tx.Rollback()

	name := record.Name().String()

	_, err = tx.Exec(
		`INSERT INTO contacts (name, birthday) VALUES (?, ?)
		 ON CONFLICT(name) DO UPDATE SET birthday = excluded.birthday`,
		name, record.Birthday().String(),
	)
	if err != nil {
		return fmt.Errorf("AddContact: upsert contact: %w", err)
	}

	var id int64
	if err := tx.QueryRow("SELECT id FROM contacts WHERE name = ?", name).Scan(&id); err != nil {
		return fmt.Errorf("AddContact: select id: %w", err)
	}

	// Overwrite, not merge: the old phones go away.
	if _, err := tx.Exec("DELETE FROM phones WHERE contact_id = ?", id); err != nil {
		return fmt.Errorf("AddContact: clear phones: %w", err)
	}

	stmt, err := tx.Prepare("INSERT INTO phones (contact_id, number) VALUES (?, ?)")
	if err != nil {
		return fmt.Errorf("AddContact: prepare: %w", err)
	}
	defer stmt.Close()

	for _, p := range record.Phones() {
		if _, err := stmt.Exec(id, p.String()); err != nil {
			return fmt.Errorf("AddContact: insert phone: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("AddContact: commit: %w", err)
	}
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// GetContactByName reads one contact row, then its phones in row-id order.
// ─────────────────────────────────────────────────────────────────────────────
func (s *SQLite) GetContactByName(name string) (*types.Record, error) {
	var (
		id       int64
		birthday string
	)
	err := s.Db.QueryRow(
		"SELECT id, birthday FROM contacts WHERE name = ? LIMIT 1", name,
	).Scan(&id, &birthday)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, types.ContactNotFound(name)
		}
		return nil, fmt.Errorf("GetContactByName: scan: %w", err)
	}

	phones, err := s.queryPhones("SELECT contact_id, number FROM phones WHERE contact_id = ? ORDER BY id", id)
	if err != nil {
		return nil, fmt.Errorf("GetContactByName: %w", err)
	}

	return buildRecord(name, birthday, phones[id])
}

// ─────────────────────────────────────────────────────────────────────────────
// GetContacts returns every contact ordered by row id (insertion order).
//
// The pool holds a single connection, so the contacts cursor must be
// CLOSED before the phones query runs; nesting the two would block
// forever waiting for a second connection.
// ─────────────────────────────────────────────────────────────────────────────
func (s *SQLite) GetContacts() ([]*types.Record, error) {
	rows, err := s.queryContacts()
	if err != nil {
		return nil, fmt.Errorf("GetContacts: %w", err)
	}

	phones, err := s.queryPhones("SELECT contact_id, number FROM phones ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("GetContacts: %w", err)
	}

	contacts := make([]*types.Record, 0, len(rows))
	for _, r := range rows {
		record, err := buildRecord(r.name, r.birthday, phones[r.id])
		if err != nil {
			return nil, err
		}
		contacts = append(contacts, record)
	}
	return contacts, nil
}

type contactRow struct {
	id       int64
	name     string
	birthday string
}

func (s *SQLite) queryContacts() ([]contactRow, error) {
	rows, err := s.Db.Query("SELECT id, name, birthday FROM contacts ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("query contacts: %w", err)
	}
	defer rows.Close()

	var out []contactRow
	for rows.Next() {
		var r contactRow
		if err := rows.Scan(&r.id, &r.name, &r.birthday); err != nil {
			return nil, fmt.Errorf("scan contact: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("contacts iteration: %w", err)
	}
	return out, nil
}

// queryPhones groups phone numbers by contact id, preserving row order.
func (s *SQLite) queryPhones(query string, args ...any) (map[int64][]string, error) {
	rows, err := s.Db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query phones: %w", err)
	}
	defer rows.Close()

	phones := make(map[int64][]string)
	for rows.Next() {
		var (
			contactID int64
			number    string
		)
		if err := rows.Scan(&contactID, &number); err != nil {
			return nil, fmt.Errorf("scan phone: %w", err)
		}
		phones[contactID] = append(phones[contactID], number)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("phones iteration: %w", err)
	}
	return phones, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// DeleteContactByName removes the contact and its phones.
// ─────────────────────────────────────────────────────────────────────────────
func (s *SQLite) DeleteContactByName(name string) error {
	tx, err := s.Db.Begin()
	if err != nil {
		return fmt.Errorf("DeleteContactByName: begin: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		"DELETE FROM phones WHERE contact_id IN (SELECT id FROM contacts WHERE name = ?)", name,
	)
	if err != nil {
		return fmt.Errorf("DeleteContactByName: delete phones: %w", err)
	}

	result, err := tx.Exec("DELETE FROM contacts WHERE name = ?", name)
	if err != nil {
		return fmt.Errorf("DeleteContactByName: delete contact: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("DeleteContactByName: rows affected: %w", err)
	}
	if n == 0 {
		return types.ContactNotFound(name)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("DeleteContactByName: commit: %w", err)
	}
	return nil
}

// buildRecord turns stored columns back into a validated Record. Stored
// values were validated on the way in, so an error here means the
// database was edited by hand.
func buildRecord(name, birthday string, phones []string) (*types.Record, error) {
	record, err := types.NewRecord(name)
	if err != nil {
		return nil, fmt.Errorf("sqlite: stored contact %q: %w", name, err)
	}
	for _, p := range phones {
		if err := record.AddPhone(p); err != nil {
			return nil, fmt.Errorf("sqlite: stored contact %q: %w", name, err)
		}
	}
	if err := record.SetBirthday(birthday); err != nil {
		return nil, fmt.Errorf("sqlite: stored contact %q: %w", name, err)
	}
	return record, nil
}
