package birthdays

import (
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/aanand-mishra/contacts-api/internal/storage"
	"github.com/aanand-mishra/contacts-api/internal/storage/memory"
	"github.com/aanand-mishra/contacts-api/internal/storage/storagetest"
	"github.com/aanand-mishra/contacts-api/internal/types"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

func storeWith(t *testing.T, records ...*types.Record) storage.Storage {
	t.Helper()
	s := memory.New()
	for _, r := range records {
		if err := s.AddContact(r); err != nil {
			t.Fatalf("AddContact: %v", err)
		}
	}
	return s
}

func TestUpcomingSameMonthDayForward(t *testing.T) {
	s := storeWith(t, storagetest.Record(t, "Alice", "05.03.2000"))

	got, err := Upcoming(s, day(2026, time.March, 1))
	if err != nil {
		t.Fatalf("Upcoming: %v", err)
	}
	want := []Entry{{Name: "Alice", Date: "05.03"}}
	if !slices.Equal(got, want) {
		t.Fatalf("Upcoming = %v, want %v", got, want)
	}

	got, err = Upcoming(s, day(2026, time.March, 6))
	if err != nil {
		t.Fatalf("Upcoming: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil result once the day has passed, got %#v", got)
	}
}

func TestUpcomingWindow(t *testing.T) {
	tests := []struct {
		name     string
		birthday string
		today    time.Time
		want     bool
	}{
		{name: "same day", birthday: "05.03.2000", today: day(2026, time.March, 5), want: true},
		{name: "later this month", birthday: "31.03.1990", today: day(2026, time.March, 1), want: true},
		{name: "earlier this month", birthday: "04.03.2000", today: day(2026, time.March, 5), want: false},
		{name: "next month does not wrap", birthday: "02.04.2000", today: day(2026, time.March, 30), want: false},
		{name: "new year does not wrap", birthday: "01.01.2000", today: day(2026, time.December, 31), want: false},
		{name: "previous month", birthday: "28.02.2000", today: day(2026, time.March, 1), want: false},
		{name: "leap day in a leap month", birthday: "29.02.2000", today: day(2024, time.February, 20), want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := types.ParseBirthday(tt.birthday)
			if err != nil {
				t.Fatalf("ParseBirthday: %v", err)
			}
			if got := InWindow(b, tt.today); got != tt.want {
				t.Fatalf("InWindow(%s, %s) = %v, want %v", tt.birthday, tt.today.Format("02.01"), got, tt.want)
			}
		})
	}
}

func TestUpcomingSkipsUnsetAndKeepsStoreOrder(t *testing.T) {
	s := storeWith(t,
		storagetest.Record(t, "Zed", "20.03.1980"),
		storagetest.Record(t, "NoBirthday", ""),
		storagetest.Record(t, "Alice", "10.03.2000"),
		storagetest.Record(t, "Bob", "10.04.2000"),
	)

	got, err := Upcoming(s, day(2026, time.March, 10))
	if err != nil {
		t.Fatalf("Upcoming: %v", err)
	}
	want := []Entry{{Name: "Zed", Date: "20.03"}, {Name: "Alice", Date: "10.03"}}
	if !slices.Equal(got, want) {
		t.Fatalf("Upcoming = %v, want %v", got, want)
	}
}

type failingStore struct{ storage.Storage }

func (failingStore) GetContacts() ([]*types.Record, error) {
	return nil, errors.New("disk on fire")
}

func TestUpcomingPropagatesStoreErrors(t *testing.T) {
	if _, err := Upcoming(failingStore{}, day(2026, time.March, 1)); err == nil {
		t.Fatal("expected error")
	}
}
