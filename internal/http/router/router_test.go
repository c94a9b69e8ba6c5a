package router

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/aanand-mishra/contacts-api/internal/addressbook"
	"github.com/aanand-mishra/contacts-api/internal/birthdays"
	"github.com/aanand-mishra/contacts-api/internal/http/handlers/contact"
	"github.com/aanand-mishra/contacts-api/internal/storage/memory"
	"github.com/aanand-mishra/contacts-api/internal/utils/response"
)

func newServer(t *testing.T, today time.Time) *httptest.Server {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	book := addressbook.New(memory.New(), log)
	srv := httptest.NewServer(New(book, log, func() time.Time { return today }))
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, srv *httptest.Server, method, path, body string, out any) int {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, srv.URL+path, r)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	resp, err := srv.Client().Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("%s %s: decode: %v", method, path, err)
		}
	}
	return resp.StatusCode
}

func TestLiveness(t *testing.T) {
	srv := newServer(t, time.Now())
	if code := do(t, srv, http.MethodGet, "/liveness", "", nil); code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
}

func TestCreateAndGetContact(t *testing.T) {
	srv := newServer(t, time.Now())

	var created contact.Contact
	code := do(t, srv, http.MethodPost, "/api/contacts",
		`{"name":"Alice","phones":["1111111111"],"birthday":"05.03.2000"}`, &created)
	if code != http.StatusCreated {
		t.Fatalf("create status = %d", code)
	}
	if created.Name != "Alice" || created.Birthday != "05.03.2000" || !slices.Equal(created.Phones, []string{"1111111111"}) {
		t.Fatalf("created = %+v", created)
	}

	var got contact.Contact
	if code := do(t, srv, http.MethodGet, "/api/contacts/Alice", "", &got); code != http.StatusOK {
		t.Fatalf("get status = %d", code)
	}
	want := "Contact name: Alice, phones: 1111111111, birthday: 05.03.2000"
	if got.Summary != want {
		t.Fatalf("summary = %q, want %q", got.Summary, want)
	}
}

func TestCreateContactErrors(t *testing.T) {
	srv := newServer(t, time.Now())

	tests := []struct {
		name string
		body string
	}{
		{name: "empty body", body: ""},
		{name: "malformed json", body: `{"name":`},
		{name: "missing name", body: `{"phones":["1111111111"]}`},
		{name: "bad phone", body: `{"name":"Alice","phones":["123"]}`},
		{name: "bad birthday", body: `{"name":"Alice","birthday":"31.02.2020"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var resp response.Response
			code := do(t, srv, http.MethodPost, "/api/contacts", tt.body, &resp)
			if code != http.StatusBadRequest {
				t.Fatalf("status = %d", code)
			}
			if resp.Status != response.StatusError || resp.Error == "" {
				t.Fatalf("response = %+v", resp)
			}
		})
	}

	var list []contact.Contact
	do(t, srv, http.MethodGet, "/api/contacts", "", &list)
	if len(list) != 0 {
		t.Fatalf("failed creates stored contacts: %+v", list)
	}
}

func TestListContacts(t *testing.T) {
	srv := newServer(t, time.Now())

	var list []contact.Contact
	if code := do(t, srv, http.MethodGet, "/api/contacts", "", &list); code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	if list == nil || len(list) != 0 {
		t.Fatalf("expected [], got %#v", list)
	}

	do(t, srv, http.MethodPost, "/api/contacts", `{"name":"Bob"}`, nil)
	do(t, srv, http.MethodPost, "/api/contacts", `{"name":"Alice"}`, nil)

	do(t, srv, http.MethodGet, "/api/contacts", "", &list)
	var names []string
	for _, c := range list {
		names = append(names, c.Name)
	}
	if !slices.Equal(names, []string{"Bob", "Alice"}) {
		t.Fatalf("names = %v", names)
	}
}

func TestNotFound(t *testing.T) {
	srv := newServer(t, time.Now())
	do(t, srv, http.MethodPost, "/api/contacts", `{"name":"Alice","phones":["1111111111"]}`, nil)

	for _, tc := range []struct{ method, path, body string }{
		{http.MethodGet, "/api/contacts/Nobody", ""},
		{http.MethodDelete, "/api/contacts/Nobody", ""},
		{http.MethodGet, "/api/contacts/Nobody/birthday", ""},
		{http.MethodPut, "/api/contacts/Nobody/birthday", `{"birthday":"05.03.2000"}`},
		{http.MethodPost, "/api/contacts/Nobody/phones", `{"phone":"1111111111"}`},
		{http.MethodGet, "/api/contacts/Alice/phones/9999999999", ""},
		{http.MethodPut, "/api/contacts/Alice/phones/9999999999", `{"phone":"2222222222"}`},
	} {
		var resp response.Response
		if code := do(t, srv, tc.method, tc.path, tc.body, &resp); code != http.StatusNotFound {
			t.Fatalf("%s %s: status = %d (%+v)", tc.method, tc.path, code, resp)
		}
	}
}

func TestDeleteContact(t *testing.T) {
	srv := newServer(t, time.Now())
	do(t, srv, http.MethodPost, "/api/contacts", `{"name":"Alice"}`, nil)

	var resp response.Response
	if code := do(t, srv, http.MethodDelete, "/api/contacts/Alice", "", &resp); code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	if resp.Status != response.StatusOK {
		t.Fatalf("response = %+v", resp)
	}
	if code := do(t, srv, http.MethodGet, "/api/contacts/Alice", "", nil); code != http.StatusNotFound {
		t.Fatalf("status after delete = %d", code)
	}
}

func TestBirthdayRoutes(t *testing.T) {
	srv := newServer(t, time.Now())
	do(t, srv, http.MethodPost, "/api/contacts", `{"name":"Alice"}`, nil)

	var bd contact.BirthdayResponse
	do(t, srv, http.MethodGet, "/api/contacts/Alice/birthday", "", &bd)
	if bd.Birthday != "unset" {
		t.Fatalf("birthday = %q", bd.Birthday)
	}

	if code := do(t, srv, http.MethodPut, "/api/contacts/Alice/birthday", `{"birthday":"1.1.2000"}`, nil); code != http.StatusBadRequest {
		t.Fatalf("bad birthday status = %d", code)
	}

	var c contact.Contact
	if code := do(t, srv, http.MethodPut, "/api/contacts/Alice/birthday", `{"birthday":"05.03.2000"}`, &c); code != http.StatusOK {
		t.Fatalf("set birthday status = %d", code)
	}
	if c.Birthday != "05.03.2000" {
		t.Fatalf("contact = %+v", c)
	}

	do(t, srv, http.MethodGet, "/api/contacts/Alice/birthday", "", &bd)
	if bd.Birthday != "05.03.2000" {
		t.Fatalf("birthday = %q", bd.Birthday)
	}
}

func TestPhoneRoutes(t *testing.T) {
	srv := newServer(t, time.Now())
	do(t, srv, http.MethodPost, "/api/contacts", `{"name":"Alice"}`, nil)

	var c contact.Contact
	if code := do(t, srv, http.MethodPost, "/api/contacts/Alice/phones", `{"phone":"1111111111"}`, &c); code != http.StatusCreated {
		t.Fatalf("add status = %d", code)
	}
	if code := do(t, srv, http.MethodPost, "/api/contacts/Alice/phones", `{"phone":"12345"}`, nil); code != http.StatusBadRequest {
		t.Fatalf("bad phone status = %d", code)
	}

	var p contact.PhoneResponse
	if code := do(t, srv, http.MethodGet, "/api/contacts/Alice/phones/1111111111", "", &p); code != http.StatusOK {
		t.Fatalf("find status = %d", code)
	}
	if p.Phone != "1111111111" {
		t.Fatalf("phone = %+v", p)
	}

	// invalid replacement: 400 and the old number stays
	if code := do(t, srv, http.MethodPut, "/api/contacts/Alice/phones/1111111111", `{"phone":"abc"}`, nil); code != http.StatusBadRequest {
		t.Fatalf("bad edit status = %d", code)
	}
	do(t, srv, http.MethodGet, "/api/contacts/Alice", "", &c)
	if !slices.Equal(c.Phones, []string{"1111111111"}) {
		t.Fatalf("phones after failed edit = %v", c.Phones)
	}

	if code := do(t, srv, http.MethodPut, "/api/contacts/Alice/phones/1111111111", `{"phone":"2222222222"}`, &c); code != http.StatusOK {
		t.Fatalf("edit status = %d", code)
	}
	if !slices.Equal(c.Phones, []string{"2222222222"}) {
		t.Fatalf("phones = %v", c.Phones)
	}

	// removing an absent number is a no-op
	if code := do(t, srv, http.MethodDelete, "/api/contacts/Alice/phones/9999999999", "", &c); code != http.StatusOK {
		t.Fatalf("remove absent status = %d", code)
	}
	if code := do(t, srv, http.MethodDelete, "/api/contacts/Alice/phones/2222222222", "", &c); code != http.StatusOK {
		t.Fatalf("remove status = %d", code)
	}
	if len(c.Phones) != 0 {
		t.Fatalf("phones = %v", c.Phones)
	}
}

func TestUpcomingBirthdays(t *testing.T) {
	srv := newServer(t, time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC))
	do(t, srv, http.MethodPost, "/api/contacts", `{"name":"Alice","birthday":"05.03.2000"}`, nil)
	do(t, srv, http.MethodPost, "/api/contacts", `{"name":"Bob","birthday":"05.04.2000"}`, nil)
	do(t, srv, http.MethodPost, "/api/contacts", `{"name":"Carol"}`, nil)

	var entries []birthdays.Entry
	if code := do(t, srv, http.MethodGet, "/api/birthdays/upcoming", "", &entries); code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	if !slices.Equal(entries, []birthdays.Entry{{Name: "Alice", Date: "05.03"}}) {
		t.Fatalf("entries = %v", entries)
	}

	do(t, srv, http.MethodGet, "/api/birthdays/upcoming?today=06.03.2026", "", &entries)
	if entries == nil || len(entries) != 0 {
		t.Fatalf("expected [], got %#v", entries)
	}

	if code := do(t, srv, http.MethodGet, "/api/birthdays/upcoming?today=2026-03-01", "", nil); code != http.StatusBadRequest {
		t.Fatalf("bad today status = %d", code)
	}
}

func TestRequestIDHeader(t *testing.T) {
	srv := newServer(t, time.Now())
	resp, err := srv.Client().Get(srv.URL + "/api/contacts")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	resp.Body.Close()
	if resp.Header.Get("X-Request-Id") == "" {
		t.Fatal("missing X-Request-Id header")
	}
}
