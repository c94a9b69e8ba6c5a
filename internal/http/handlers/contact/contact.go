// Package contact contains all HTTP handlers related to the Contact resource.
//
// HANDLER PATTERN USED HERE: THE CLOSURE / FACTORY PATTERN
// ──────────────────────────────────────────────────────────
// Go's router expects handler functions with the signature:
//
//	func(http.ResponseWriter, *http.Request)
//
// To inject the address book we use a factory that accepts it and returns
// a function with exactly that signature:
//
//	router.HandleFunc("POST /api/contacts", contact.New(book))
//	//                                       ^^^^^^^^^^^^^^^^
//	//                      New(book) is called ONCE at startup.
//	//                      The returned func runs on EVERY request.
//
// The handlers only translate HTTP <-> address book calls. Validation of
// phones and dates happens in the core; handlers turn its errors into
// status codes through response.Error.
package contact

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/aanand-mishra/contacts-api/internal/addressbook"
	"github.com/aanand-mishra/contacts-api/internal/types"
	"github.com/aanand-mishra/contacts-api/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ─────────────────────────────────────────────────────────────────────────────
// Request and response bodies
// ─────────────────────────────────────────────────────────────────────────────

// CreateRequest is the body of POST /api/contacts. Phones and birthday
// are optional.
type CreateRequest struct {
	Name     string   `json:"name"     validate:"required"`
	Phones   []string `json:"phones"`
	Birthday string   `json:"birthday"`
}

// PhoneRequest is the body of POST .../phones and PUT .../phones/{phone}.
type PhoneRequest struct {
	Phone string `json:"phone" validate:"required"`
}

// BirthdayRequest is the body of PUT .../birthday.
type BirthdayRequest struct {
	Birthday string `json:"birthday" validate:"required"`
}

// Contact is how a record is rendered to clients.
type Contact struct {
	Name     string   `json:"name"`
	Phones   []string `json:"phones"`
	Birthday string   `json:"birthday,omitempty"`
	Summary  string   `json:"summary"`
}

// BirthdayResponse is the body of GET .../birthday.
type BirthdayResponse struct {
	Name     string `json:"name"`
	Birthday string `json:"birthday"`
}

// PhoneResponse is the body of GET .../phones/{phone}.
type PhoneResponse struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

func toContact(r *types.Record) Contact {
	phones := make([]string, 0)
	for _, p := range r.Phones() {
		phones = append(phones, p.String())
	}
	return Contact{
		Name:     r.Name().String(),
		Phones:   phones,
		Birthday: r.Birthday().String(),
		Summary:  r.String(),
	}
}

// decodeBody reads JSON into v and runs its validate:"..." tags.
// On failure it writes the 400 response itself and returns false.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		response.WriteJSON(w, http.StatusBadRequest,
			response.GeneralError(errors.New("request body is empty")))
		return false
	}
	if err != nil {
		response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
		return false
	}

	if err := validate.Struct(v); err != nil {
		var validateErrs validator.ValidationErrors
		if errors.As(err, &validateErrs) {
			response.WriteJSON(w, http.StatusBadRequest, response.ValidationError(validateErrs))
			return false
		}
		response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
		return false
	}
	return true
}

// fail logs err and writes the matching error response.
func fail(w http.ResponseWriter, msg string, err error, attrs ...any) {
	status := response.StatusFor(err)
	attrs = append(attrs, slog.String("error", err.Error()), slog.Int("status", status))
	if status >= http.StatusInternalServerError {
		slog.Error(msg, attrs...)
	} else {
		slog.Warn(msg, attrs...)
	}
	response.Error(w, err)
}

// writeContact re-reads the contact so the client sees what is stored.
func writeContact(w http.ResponseWriter, book *addressbook.Book, name string, status int) {
	record, err := book.GetContact(name)
	if err != nil {
		fail(w, "error reading contact", err, slog.String("name", name))
		return
	}
	response.WriteJSON(w, status, toContact(record))
}

// ─────────────────────────────────────────────────────────────────────────────
// New handles POST /api/contacts
//
// Request body (JSON):
//
//	{ "name": "Alice", "phones": ["0501234567"], "birthday": "05.03.2000" }
//
// Success response (201 Created): the stored contact.
// An existing contact with the same name is replaced.
//
// Error responses:
//
//	400 Bad Request  - empty body, malformed JSON, missing name,
//	                   bad phone or bad date
// ─────────────────────────────────────────────────────────────────────────────
func New(book *addressbook.Book) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("creating a contact")

		var req CreateRequest
		if !decodeBody(w, r, &req) {
			return
		}

		opts := make([]addressbook.Option, 0, len(req.Phones)+1)
		for _, p := range req.Phones {
			opts = append(opts, addressbook.WithPhone(p))
		}
		opts = append(opts, addressbook.WithBirthday(req.Birthday))

		record, err := book.CreateContact(req.Name, opts...)
		if err != nil {
			fail(w, "error creating contact", err, slog.String("name", req.Name))
			return
		}

		slog.Info("contact created", slog.String("name", req.Name))
		response.WriteJSON(w, http.StatusCreated, toContact(record))
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// GetList handles GET /api/contacts
// Returns every contact in insertion order; [] (not null) when empty.
// ─────────────────────────────────────────────────────────────────────────────
func GetList(book *addressbook.Book) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("listing contacts")

		records, err := book.ListContacts()
		if err != nil {
			fail(w, "error listing contacts", err)
			return
		}

		contacts := make([]Contact, 0, len(records))
		for _, record := range records {
			contacts = append(contacts, toContact(record))
		}
		response.WriteJSON(w, http.StatusOK, contacts)
	}
}

// GetByName handles GET /api/contacts/{name}
func GetByName(book *addressbook.Book) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := r.PathValue("name")
		slog.Info("getting a contact", slog.String("name", name))

		writeContact(w, book, name, http.StatusOK)
	}
}

// Delete handles DELETE /api/contacts/{name}
//
// Success response (200 OK):
//
//	{ "status": "ok" }
func Delete(book *addressbook.Book) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := r.PathValue("name")
		slog.Info("deleting a contact", slog.String("name", name))

		if err := book.DeleteContact(name); err != nil {
			fail(w, "error deleting contact", err, slog.String("name", name))
			return
		}

		slog.Info("contact deleted", slog.String("name", name))
		response.WriteJSON(w, http.StatusOK, response.OK())
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// GetBirthday handles GET /api/contacts/{name}/birthday
//
//	{ "name": "Alice", "birthday": "05.03.2000" }
//
// A contact without a birthday reports "unset".
// ─────────────────────────────────────────────────────────────────────────────
func GetBirthday(book *addressbook.Book) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := r.PathValue("name")
		slog.Info("getting a birthday", slog.String("name", name))

		bd, err := book.GetBirthday(name)
		if err != nil {
			fail(w, "error getting birthday", err, slog.String("name", name))
			return
		}

		rendered := bd.String()
		if bd.IsZero() {
			rendered = types.UnsetBirthday
		}
		response.WriteJSON(w, http.StatusOK, BirthdayResponse{Name: name, Birthday: rendered})
	}
}

// SetBirthday handles PUT /api/contacts/{name}/birthday
//
//	{ "birthday": "05.03.2000" }
func SetBirthday(book *addressbook.Book) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := r.PathValue("name")
		slog.Info("setting a birthday", slog.String("name", name))

		var req BirthdayRequest
		if !decodeBody(w, r, &req) {
			return
		}

		if err := book.SetBirthday(name, req.Birthday); err != nil {
			fail(w, "error setting birthday", err, slog.String("name", name))
			return
		}

		writeContact(w, book, name, http.StatusOK)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Phones
//
//	POST   /api/contacts/{name}/phones          { "phone": "0501234567" }
//	GET    /api/contacts/{name}/phones/{phone}
//	PUT    /api/contacts/{name}/phones/{phone}  { "phone": "0931112233" }
//	DELETE /api/contacts/{name}/phones/{phone}
//
// ─────────────────────────────────────────────────────────────────────────────

// AddPhone handles POST /api/contacts/{name}/phones
func AddPhone(book *addressbook.Book) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := r.PathValue("name")
		slog.Info("adding a phone", slog.String("name", name))

		var req PhoneRequest
		if !decodeBody(w, r, &req) {
			return
		}

		if err := book.AddPhone(name, req.Phone); err != nil {
			fail(w, "error adding phone", err, slog.String("name", name))
			return
		}

		writeContact(w, book, name, http.StatusCreated)
	}
}

// FindPhone handles GET /api/contacts/{name}/phones/{phone}
func FindPhone(book *addressbook.Book) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name, phone := r.PathValue("name"), r.PathValue("phone")
		slog.Info("finding a phone", slog.String("name", name), slog.String("phone", phone))

		p, err := book.FindPhone(name, phone)
		if err != nil {
			fail(w, "error finding phone", err, slog.String("name", name))
			return
		}

		response.WriteJSON(w, http.StatusOK, PhoneResponse{Name: name, Phone: p.String()})
	}
}

// EditPhone handles PUT /api/contacts/{name}/phones/{phone}
// The {phone} path segment is the number being replaced.
func EditPhone(book *addressbook.Book) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name, old := r.PathValue("name"), r.PathValue("phone")
		slog.Info("editing a phone", slog.String("name", name), slog.String("phone", old))

		var req PhoneRequest
		if !decodeBody(w, r, &req) {
			return
		}

		if err := book.EditPhone(name, old, req.Phone); err != nil {
			fail(w, "error editing phone", err, slog.String("name", name))
			return
		}

		writeContact(w, book, name, http.StatusOK)
	}
}

// RemovePhone handles DELETE /api/contacts/{name}/phones/{phone}
// Removing a number the contact does not have still returns 200.
func RemovePhone(book *addressbook.Book) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name, phone := r.PathValue("name"), r.PathValue("phone")
		slog.Info("removing a phone", slog.String("name", name), slog.String("phone", phone))

		if err := book.RemovePhone(name, phone); err != nil {
			fail(w, "error removing phone", err, slog.String("name", name))
			return
		}

		writeContact(w, book, name, http.StatusOK)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Upcoming handles GET /api/birthdays/upcoming[?today=DD.MM.YYYY]
//
// Without ?today the current date from now() is used. The response is a
// JSON array of { "name": "Alice", "date": "05.03" }, in contact order.
//
// now is injected so tests can pin the date.
// ─────────────────────────────────────────────────────────────────────────────
func Upcoming(book *addressbook.Book, now func() time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		today := now()
		if raw := r.URL.Query().Get("today"); raw != "" {
			parsed, err := types.ParseBirthday(raw)
			if err != nil || parsed.IsZero() {
				fail(w, "invalid today parameter", &types.ValidationError{
					Field: "today", Value: raw, Reason: "must be a real date in DD.MM.YYYY format",
				})
				return
			}
			today = parsed.Time()
		}
		slog.Info("listing upcoming birthdays", slog.String("today", today.Format(types.BirthdayLayout)))

		entries, err := book.UpcomingBirthdays(today)
		if err != nil {
			fail(w, "error listing upcoming birthdays", err)
			return
		}
		response.WriteJSON(w, http.StatusOK, entries)
	}
}
