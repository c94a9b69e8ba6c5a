// Package birthdays answers "whose birthday falls in the current window?".
//
// THE WINDOW
// ──────────
// A contact is selected when its birthday is in the SAME MONTH as today
// and on a day-of-month greater than or equal to today's:
//
//	today 01.03  birthday 05.03  -> selected
//	today 06.03  birthday 05.03  -> not selected (already passed)
//	today 28.02  birthday 02.03  -> not selected (next month)
//
// It is not a rolling "next N days" window and never wraps into the next
// month or year.
package birthdays

import (
	"fmt"
	"time"

	"github.com/aanand-mishra/contacts-api/internal/storage"
	"github.com/aanand-mishra/contacts-api/internal/types"
)

// Entry is one match: the contact's name and its birthday as DD.MM.
type Entry struct {
	Name string `json:"name"`
	Date string `json:"date"`
}

// InWindow reports whether b falls in the window that starts on today.
// An unset birthday is never in the window.
func InWindow(b types.Birthday, today time.Time) bool {
	if b.IsZero() {
		return false
	}
	return b.Month() == today.Month() && b.Day() >= today.Day()
}

// Upcoming scans the store in its iteration order and returns every
// contact whose birthday is in the window. Contacts without a birthday
// are skipped. The result is never nil and is not sorted by date.
func Upcoming(store storage.Storage, today time.Time) ([]Entry, error) {
	records, err := store.GetContacts()
	if err != nil {
		return nil, fmt.Errorf("birthdays.Upcoming: %w", err)
	}
	return Filter(records, today), nil
}

// Filter applies the window to an already-loaded list of records.
func Filter(records []*types.Record, today time.Time) []Entry {
	entries := make([]Entry, 0)
	for _, r := range records {
		b := r.Birthday()
		if !InWindow(b, today) {
			continue
		}
		entries = append(entries, Entry{Name: r.Name().String(), Date: b.DayMonth()})
	}
	return entries
}
