// Package storagetest is a conformance suite for storage.Storage. Each
// backend's tests call Run with a constructor for a fresh, empty store.
package storagetest

import (
	"errors"
	"slices"
	"testing"

	"github.com/aanand-mishra/contacts-api/internal/storage"
	"github.com/aanand-mishra/contacts-api/internal/types"
)

// Run executes every conformance test against stores built by newStore.
func Run(t *testing.T, newStore func(t *testing.T) storage.Storage) {
	tests := []struct {
		name string
		fn   func(t *testing.T, s storage.Storage)
	}{
		{"EmptyList", testEmptyList},
		{"AddAndGet", testAddAndGet},
		{"ListInsertionOrder", testListInsertionOrder},
		{"OverwriteReplaces", testOverwriteReplaces},
		{"OverwriteKeepsPosition", testOverwriteKeepsPosition},
		{"GetMissing", testGetMissing},
		{"Delete", testDelete},
		{"DeleteMissing", testDeleteMissing},
		{"ReturnsSnapshots", testReturnsSnapshots},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.fn(t, newStore(t))
		})
	}
}

// Record builds a record for tests, failing t on invalid input.
func Record(t *testing.T, name, birthday string, phones ...string) *types.Record {
	t.Helper()
	r, err := types.NewRecord(name)
	if err != nil {
		t.Fatalf("NewRecord(%q): %v", name, err)
	}
	for _, p := range phones {
		if err := r.AddPhone(p); err != nil {
			t.Fatalf("AddPhone(%q): %v", p, err)
		}
	}
	if err := r.SetBirthday(birthday); err != nil {
		t.Fatalf("SetBirthday(%q): %v", birthday, err)
	}
	return r
}

func names(t *testing.T, s storage.Storage) []string {
	t.Helper()
	records, err := s.GetContacts()
	if err != nil {
		t.Fatalf("GetContacts: %v", err)
	}
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.Name().String())
	}
	return out
}

func phones(r *types.Record) []string {
	out := make([]string, 0)
	for _, p := range r.Phones() {
		out = append(out, p.String())
	}
	return out
}

func add(t *testing.T, s storage.Storage, r *types.Record) {
	t.Helper()
	if err := s.AddContact(r); err != nil {
		t.Fatalf("AddContact(%s): %v", r.Name(), err)
	}
}

func testEmptyList(t *testing.T, s storage.Storage) {
	records, err := s.GetContacts()
	if err != nil {
		t.Fatalf("GetContacts: %v", err)
	}
	if records == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(records) != 0 {
		t.Fatalf("expected no contacts, got %d", len(records))
	}
}

func testAddAndGet(t *testing.T, s storage.Storage) {
	add(t, s, Record(t, "Alice", "05.03.2000", "1111111111", "2222222222"))

	got, err := s.GetContactByName("Alice")
	if err != nil {
		t.Fatalf("GetContactByName: %v", err)
	}
	if got.Name() != "Alice" {
		t.Fatalf("name = %q", got.Name())
	}
	if p := phones(got); !slices.Equal(p, []string{"1111111111", "2222222222"}) {
		t.Fatalf("phones = %v", p)
	}
	if b := got.Birthday().String(); b != "05.03.2000" {
		t.Fatalf("birthday = %q", b)
	}
}

func testListInsertionOrder(t *testing.T, s storage.Storage) {
	add(t, s, Record(t, "Zed", ""))
	add(t, s, Record(t, "Alice", ""))
	add(t, s, Record(t, "Mallory", ""))

	want := []string{"Zed", "Alice", "Mallory"}
	if got := names(t, s); !slices.Equal(got, want) {
		t.Fatalf("names = %v, want %v", got, want)
	}
}

func testOverwriteReplaces(t *testing.T, s storage.Storage) {
	add(t, s, Record(t, "Alice", "05.03.2000", "1111111111"))
	add(t, s, Record(t, "Alice", "", "2222222222"))

	got, err := s.GetContactByName("Alice")
	if err != nil {
		t.Fatalf("GetContactByName: %v", err)
	}
	if p := phones(got); !slices.Equal(p, []string{"2222222222"}) {
		t.Fatalf("first record's phones survived overwrite: %v", p)
	}
	if !got.Birthday().IsZero() {
		t.Fatalf("first record's birthday survived overwrite: %s", got.Birthday())
	}
	if n := names(t, s); len(n) != 1 {
		t.Fatalf("expected one contact, got %v", n)
	}
}

func testOverwriteKeepsPosition(t *testing.T, s storage.Storage) {
	add(t, s, Record(t, "Alice", ""))
	add(t, s, Record(t, "Bob", ""))
	add(t, s, Record(t, "Alice", "", "1111111111"))

	want := []string{"Alice", "Bob"}
	if got := names(t, s); !slices.Equal(got, want) {
		t.Fatalf("names = %v, want %v", got, want)
	}
}

func testGetMissing(t *testing.T, s storage.Storage) {
	_, err := s.GetContactByName("Nobody")
	if !errors.Is(err, types.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	var nf *types.NotFoundError
	if !errors.As(err, &nf) || nf.Kind != types.KindContact || nf.Key != "Nobody" {
		t.Fatalf("unexpected error %#v", err)
	}
}

func testDelete(t *testing.T, s storage.Storage) {
	add(t, s, Record(t, "Alice", "", "1111111111"))
	add(t, s, Record(t, "Bob", ""))
	add(t, s, Record(t, "Carol", ""))

	if err := s.DeleteContactByName("Alice"); err != nil {
		t.Fatalf("DeleteContactByName: %v", err)
	}
	if _, err := s.GetContactByName("Alice"); !errors.Is(err, types.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if got := names(t, s); !slices.Equal(got, []string{"Bob", "Carol"}) {
		t.Fatalf("names = %v", got)
	}

	// re-adding after delete starts clean and goes to the end
	add(t, s, Record(t, "Alice", ""))
	got, err := s.GetContactByName("Alice")
	if err != nil {
		t.Fatalf("GetContactByName: %v", err)
	}
	if p := phones(got); len(p) != 0 {
		t.Fatalf("deleted contact's phones came back: %v", p)
	}
	if n := names(t, s); !slices.Equal(n, []string{"Bob", "Carol", "Alice"}) {
		t.Fatalf("names = %v", n)
	}
	if _, err := s.GetContactByName("Carol"); err != nil {
		t.Fatalf("GetContactByName(Carol) after delete: %v", err)
	}
}

func testDeleteMissing(t *testing.T, s storage.Storage) {
	if err := s.DeleteContactByName("Nobody"); !errors.Is(err, types.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func testReturnsSnapshots(t *testing.T, s storage.Storage) {
	add(t, s, Record(t, "Alice", "", "1111111111"))

	got, err := s.GetContactByName("Alice")
	if err != nil {
		t.Fatalf("GetContactByName: %v", err)
	}
	if err := got.AddPhone("2222222222"); err != nil {
		t.Fatalf("AddPhone: %v", err)
	}

	listed, err := s.GetContacts()
	if err != nil {
		t.Fatalf("GetContacts: %v", err)
	}

	again, err := s.GetContactByName("Alice")
	if err != nil {
		t.Fatalf("GetContactByName: %v", err)
	}
	if p := phones(again); !slices.Equal(p, []string{"1111111111"}) {
		t.Fatalf("unsaved change leaked into store: %v", p)
	}

	// a later write does not change an earlier listing
	add(t, s, Record(t, "Bob", ""))
	if len(listed) != 1 {
		t.Fatalf("listing changed after write: %d records", len(listed))
	}
}
