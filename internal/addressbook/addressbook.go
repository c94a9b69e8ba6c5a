// Package addressbook is the session object of the contact directory. It
// owns one storage.Storage for its whole lifetime and exposes the
// operations the presentation layer calls:
//
//	CreateContact  GetContact   ListContacts  DeleteContact
//	SetBirthday    GetBirthday  UpcomingBirthdays
//	AddPhone       EditPhone    RemovePhone   FindPhone
//
// Errors from the core (*types.ValidationError, *types.NotFoundError) are
// returned unmodified so callers can branch with errors.Is.
package addressbook

import (
	"log/slog"
	"sync"
	"time"

	"github.com/aanand-mishra/contacts-api/internal/birthdays"
	"github.com/aanand-mishra/contacts-api/internal/storage"
	"github.com/aanand-mishra/contacts-api/internal/types"
)

// Book is created once per session (New) and discarded at its end.
// Nothing is persisted beyond what the chosen storage backend keeps.
//
// Every mutation is a read-modify-write against the store
// (get -> change the snapshot -> AddContact). mu serialises those so two
// concurrent HTTP requests editing the same contact cannot lose an update.
type Book struct {
	store storage.Storage
	log   *slog.Logger
	mu    sync.Mutex
}

func New(store storage.Storage, log *slog.Logger) *Book {
	if log == nil {
		log = slog.Default()
	}
	return &Book{store: store, log: log}
}

// Option configures a contact at creation time.
type Option func(*types.Record) error

// WithPhone adds raw as a phone of the new contact.
func WithPhone(raw string) Option {
	return func(r *types.Record) error { return r.AddPhone(raw) }
}

// WithBirthday sets the new contact's birthday.
func WithBirthday(raw string) Option {
	return func(r *types.Record) error { return r.SetBirthday(raw) }
}

// CreateContact builds a record named name, applies opts and stores it.
// All options are validated before the store is touched. An existing
// contact with the same name is REPLACED.
func (b *Book) CreateContact(name string, opts ...Option) (*types.Record, error) {
	record, err := types.NewRecord(name)
	if err != nil {
		return nil, err
	}
	for _, opt := range opts {
		if err := opt(record); err != nil {
			return nil, err
		}
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.store.AddContact(record); err != nil {
		return nil, err
	}
	b.log.Debug("contact stored", slog.String("name", name))
	return record.Clone(), nil
}

func (b *Book) GetContact(name string) (*types.Record, error) {
	return b.store.GetContactByName(name)
}

// ListContacts returns all contacts in insertion order; an empty book
// yields an empty slice.
func (b *Book) ListContacts() ([]*types.Record, error) {
	return b.store.GetContacts()
}

func (b *Book) DeleteContact(name string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.store.DeleteContactByName(name); err != nil {
		return err
	}
	b.log.Debug("contact deleted", slog.String("name", name))
	return nil
}

func (b *Book) SetBirthday(name, raw string) error {
	return b.update(name, func(r *types.Record) error {
		return r.SetBirthday(raw)
	})
}

// GetBirthday returns the contact's birthday; the zero Birthday when none
// is set.
func (b *Book) GetBirthday(name string) (types.Birthday, error) {
	record, err := b.store.GetContactByName(name)
	if err != nil {
		return types.Birthday{}, err
	}
	return record.Birthday(), nil
}

// UpcomingBirthdays lists contacts whose birthday is later this month
// (or today). See package birthdays for the exact window.
func (b *Book) UpcomingBirthdays(today time.Time) ([]birthdays.Entry, error) {
	return birthdays.Upcoming(b.store, today)
}

func (b *Book) AddPhone(name, raw string) error {
	return b.update(name, func(r *types.Record) error {
		return r.AddPhone(raw)
	})
}

func (b *Book) EditPhone(name, oldRaw, newRaw string) error {
	return b.update(name, func(r *types.Record) error {
		return r.EditPhone(oldRaw, newRaw)
	})
}

// RemovePhone removes every occurrence of raw. A phone the contact does
// not have is not an error; a missing contact is.
func (b *Book) RemovePhone(name, raw string) error {
	return b.update(name, func(r *types.Record) error {
		r.RemovePhone(raw)
		return nil
	})
}

func (b *Book) FindPhone(name, raw string) (types.Phone, error) {
	record, err := b.store.GetContactByName(name)
	if err != nil {
		return "", err
	}
	return record.FindPhone(raw)
}

// update loads a snapshot of the contact, applies fn and saves the result.
// If fn fails nothing is written, so the stored contact is unchanged.
func (b *Book) update(name string, fn func(*types.Record) error) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	record, err := b.store.GetContactByName(name)
	if err != nil {
		return err
	}
	if err := fn(record); err != nil {
		return err
	}
	if err := b.store.AddContact(record); err != nil {
		return err
	}
	b.log.Debug("contact updated", slog.String("name", name))
	return nil
}
