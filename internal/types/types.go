// Package types holds all shared data structures (models) used across
// the application: the validated field values (Name, Phone, Birthday),
// the Record that groups them into one contact, and the two error kinds
// every other package reports with.
//
// Keeping them in one place prevents import cycles: handlers, storage
// backends and the birthday query can all import types without depending
// on each other.
package types

import (
	"errors"
	"fmt"
)

// Sentinel errors. Callers test for an error KIND with errors.Is:
//
//	if errors.Is(err, types.ErrNotFound) { ... }
//
// The concrete *ValidationError / *NotFoundError values carry the details
// (which field, which key) and match these sentinels through their Is
// methods.
var (
	ErrInvalid  = errors.New("invalid value")
	ErrNotFound = errors.New("not found")
)

// ValidationError is returned when raw text does not satisfy a field's
// format rule. It is always produced before any Record is mutated.
type ValidationError struct {
	Field  string // "name", "phone" or "birthday"
	Value  string // the rejected raw input
	Reason string // human-readable rule, e.g. "must be 10 digits"
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}

// Is makes errors.Is(err, ErrInvalid) true for every *ValidationError.
func (e *ValidationError) Is(target error) bool { return target == ErrInvalid }

// NotFound kinds.
const (
	KindContact = "contact"
	KindPhone   = "phone"
)

// NotFoundError is returned when a contact name or a phone value is absent
// from its container.
type NotFoundError struct {
	Kind string // KindContact or KindPhone
	Key  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.Key)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// ContactNotFound builds the NotFoundError every store returns for a
// missing name.
func ContactNotFound(name string) error {
	return &NotFoundError{Kind: KindContact, Key: name}
}
