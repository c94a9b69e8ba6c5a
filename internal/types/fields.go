package types

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// BirthdayLayout is the only accepted textual date format (DD.MM.YYYY),
// written in Go's reference-time notation.
const BirthdayLayout = "02.01.2006"

// dayMonthLayout renders the DD.MM form used by the birthday query.
const dayMonthLayout = "02.01"

// validate is shared by all constructors. A *validator.Validate caches
// rule parsing internally and is safe for concurrent use.
var validate = validator.New()

// ─────────────────────────────────────────────────────────────────────────────
// Name is a contact's display name and the unique key of the store.
// ─────────────────────────────────────────────────────────────────────────────
type Name string

// ParseName rejects empty and whitespace-only input. The name is stored
// exactly as given; no trimming or case folding happens, so "Alice" and
// "alice" are two different contacts.
func ParseName(raw string) (Name, error) {
	if strings.TrimSpace(raw) == "" {
		return "", &ValidationError{Field: "name", Value: raw, Reason: "must not be empty"}
	}
	return Name(raw), nil
}

func (n Name) String() string { return string(n) }

// ─────────────────────────────────────────────────────────────────────────────
// Phone is a 10-digit phone number. The empty Phone means "no phone".
//
// The rule is expressed as validator tags:
//
//	len=10  exactly ten characters
//	number  only the ASCII digits 0-9 (no sign, no decimal point)
//
// ─────────────────────────────────────────────────────────────────────────────
type Phone string

const phoneRule = "len=10,number"

// ParsePhone validates raw and returns it as a Phone. Empty input is
// permitted and yields the empty Phone with a nil error.
func ParsePhone(raw string) (Phone, error) {
	if raw == "" {
		return "", nil
	}
	if err := validate.Var(raw, phoneRule); err != nil {
		return "", &ValidationError{Field: "phone", Value: raw, Reason: "must be exactly 10 digits"}
	}
	return Phone(raw), nil
}

func (p Phone) String() string { return string(p) }

// ─────────────────────────────────────────────────────────────────────────────
// Birthday is a calendar date. The zero Birthday means "no birthday set".
//
// Only DD.MM.YYYY is accepted, with a two-digit day, a two-digit month and
// a four-digit year, and the triple must be a real date: "31.02.2020",
// "00.01.2000" and "1.1.2000" are all rejected. The validator's datetime
// rule runs time.Parse with the layout, which enforces both widths and
// day-of-month ranges.
// ─────────────────────────────────────────────────────────────────────────────
type Birthday struct {
	date time.Time
	set  bool
}

const birthdayRule = "datetime=" + BirthdayLayout

// ParseBirthday validates raw and returns the parsed date. Empty input is
// permitted and yields the zero Birthday with a nil error.
func ParseBirthday(raw string) (Birthday, error) {
	if raw == "" {
		return Birthday{}, nil
	}
	if err := validate.Var(raw, birthdayRule); err != nil {
		return Birthday{}, &ValidationError{Field: "birthday", Value: raw, Reason: "must be a real date in DD.MM.YYYY format"}
	}
	date, err := time.Parse(BirthdayLayout, raw)
	if err != nil {
		return Birthday{}, &ValidationError{Field: "birthday", Value: raw, Reason: err.Error()}
	}
	return Birthday{date: date, set: true}, nil
}

// IsZero reports whether no birthday is set.
func (b Birthday) IsZero() bool { return !b.set }

func (b Birthday) Day() int { return b.date.Day() }

func (b Birthday) Month() time.Month { return b.date.Month() }

func (b Birthday) Year() int { return b.date.Year() }

// Time returns the date at midnight UTC.
func (b Birthday) Time() time.Time { return b.date }

// Equal reports whether both values are unset or hold the same date.
func (b Birthday) Equal(o Birthday) bool {
	return b.set == o.set && b.date.Equal(o.date)
}

// String renders DD.MM.YYYY, or "" for the zero Birthday.
func (b Birthday) String() string {
	if b.IsZero() {
		return ""
	}
	return b.date.Format(BirthdayLayout)
}

// DayMonth renders DD.MM, or "" for the zero Birthday.
func (b Birthday) DayMonth() string {
	if b.IsZero() {
		return ""
	}
	return b.date.Format(dayMonthLayout)
}
