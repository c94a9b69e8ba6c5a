package types

import (
	"fmt"
	"slices"
	"strings"
)

// UnsetBirthday is what String prints in place of a missing birthday.
const UnsetBirthday = "unset"

// Record is one contact: an immutable Name, an ordered list of phones
// (insertion order, duplicates allowed) and at most one Birthday.
//
// Every mutating method validates its input BEFORE touching the record,
// so a failed call never leaves the record half-updated.
type Record struct {
	name     Name
	phones   []Phone
	birthday Birthday
}

// NewRecord creates a record with no phones and no birthday.
// The name cannot be changed afterwards; renaming is delete + re-add.
func NewRecord(name string) (*Record, error) {
	n, err := ParseName(name)
	if err != nil {
		return nil, err
	}
	return &Record{name: n, phones: make([]Phone, 0)}, nil
}

func (r *Record) Name() Name { return r.name }

// Phones returns a copy of the phone list, safe for the caller to modify.
func (r *Record) Phones() []Phone { return slices.Clone(r.phones) }

func (r *Record) Birthday() Birthday { return r.birthday }

// AddPhone validates raw and appends it. Empty input means "no phone" and
// leaves the record unchanged.
func (r *Record) AddPhone(raw string) error {
	p, err := ParsePhone(raw)
	if err != nil {
		return err
	}
	if p == "" {
		return nil
	}
	r.phones = append(r.phones, p)
	return nil
}

// RemovePhone drops every phone equal to raw. Nothing matching is not an
// error.
func (r *Record) RemovePhone(raw string) {
	r.phones = slices.DeleteFunc(r.phones, func(p Phone) bool {
		return string(p) == raw
	})
}

// EditPhone replaces oldRaw with newRaw.
//
// ORDER MATTERS:
//  1. oldRaw must exist          -> *NotFoundError otherwise
//  2. newRaw must be valid       -> *ValidationError otherwise
//  3. only then remove + append
//
// Because both checks run first, an invalid newRaw leaves the old phone
// in place.
func (r *Record) EditPhone(oldRaw, newRaw string) error {
	if _, err := r.FindPhone(oldRaw); err != nil {
		return err
	}
	p, err := ParsePhone(newRaw)
	if err != nil {
		return err
	}
	r.RemovePhone(oldRaw)
	if p != "" {
		r.phones = append(r.phones, p)
	}
	return nil
}

// FindPhone returns the stored phone equal to raw.
func (r *Record) FindPhone(raw string) (Phone, error) {
	for _, p := range r.phones {
		if string(p) == raw {
			return p, nil
		}
	}
	return "", &NotFoundError{Kind: KindPhone, Key: raw}
}

// SetBirthday validates raw and overwrites the birthday. Empty input
// clears it.
func (r *Record) SetBirthday(raw string) error {
	b, err := ParseBirthday(raw)
	if err != nil {
		return err
	}
	r.birthday = b
	return nil
}

// Clone returns a deep copy. Stores hand out clones so that a caller
// holding a record cannot change stored state without saving it back.
func (r *Record) Clone() *Record {
	return &Record{
		name:     r.name,
		phones:   slices.Clone(r.phones),
		birthday: r.birthday,
	}
}

// String renders the record on one line:
//
//	Contact name: Alice, phones: 0501234567; 0931112233, birthday: 05.03.2000
func (r *Record) String() string {
	phones := make([]string, len(r.phones))
	for i, p := range r.phones {
		phones[i] = string(p)
	}
	birthday := r.birthday.String()
	if r.birthday.IsZero() {
		birthday = UnsetBirthday
	}
	return fmt.Sprintf("Contact name: %s, phones: %s, birthday: %s",
		r.name, strings.Join(phones, "; "), birthday)
}
