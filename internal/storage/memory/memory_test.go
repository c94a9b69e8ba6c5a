package memory

import (
	"testing"

	"github.com/aanand-mishra/contacts-api/internal/storage"
	"github.com/aanand-mishra/contacts-api/internal/storage/storagetest"
)

func TestMemoryConformance(t *testing.T) {
	storagetest.Run(t, func(t *testing.T) storage.Storage {
		return New()
	})
}

func TestMemoryDeleteReindexes(t *testing.T) {
	m := New()
	for _, name := range []string{"a", "b", "c", "d"} {
		if err := m.AddContact(storagetest.Record(t, name, "")); err != nil {
			t.Fatalf("AddContact: %v", err)
		}
	}
	if err := m.DeleteContactByName("b"); err != nil {
		t.Fatalf("DeleteContactByName: %v", err)
	}
	for name, want := range map[string]int{"a": 0, "c": 1, "d": 2} {
		if got := m.index[name]; got != want {
			t.Fatalf("index[%q] = %d, want %d", name, got, want)
		}
		if m.names[want] != name || m.records[want].Name().String() != name {
			t.Fatalf("position %d holds %q", want, m.names[want])
		}
	}
}
