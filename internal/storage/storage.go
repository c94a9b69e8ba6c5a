// Package storage defines the Storage interface: the contact store that
// every backend (in-memory, SQLite) must satisfy.
//
// WHY AN INTERFACE?
// ─────────────────
// The address book and the HTTP handlers should not know which backend
// holds the contacts. By depending only on this interface:
//
//   - Switching backends = set storage.driver in the config. Zero handler
//     changes.
//
//   - Writing tests = every backend runs the same conformance suite
//     (package storagetest).
package storage

import "github.com/aanand-mishra/contacts-api/internal/types"

// Storage is the contact store contract. Contacts are keyed by name.
//
// Backends return CLONES: a record handed out by GetContactByName or
// GetContacts is a snapshot, and changing it has no effect until it is
// passed back to AddContact.
type Storage interface {
	// AddContact inserts the record under its name. If a contact with the
	// same name exists it is REPLACED (phones and birthday included, no
	// merge) and keeps its original position in GetContacts.
	AddContact(record *types.Record) error

	// GetContactByName returns the contact or a *types.NotFoundError.
	GetContactByName(name string) (*types.Record, error)

	// GetContacts returns every contact in insertion order.
	// Returns an empty slice (not nil) when the store is empty.
	GetContacts() ([]*types.Record, error)

	// DeleteContactByName removes the contact or returns a
	// *types.NotFoundError if there is none.
	DeleteContactByName(name string) error
}
