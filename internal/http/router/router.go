// Package router builds the complete HTTP handler: every route of the
// contacts API, wrapped in the request-id, access-log and recover
// middleware.
package router

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aanand-mishra/contacts-api/internal/addressbook"
	"github.com/aanand-mishra/contacts-api/internal/http/handlers/contact"
	"github.com/aanand-mishra/contacts-api/internal/http/middleware"
)

// New registers the routes below on a fresh ServeMux.
//
// Route table:
//
//	GET    /liveness                            -> 200, empty body
//	POST   /api/contacts                        -> create (or replace) a contact
//	GET    /api/contacts                        -> list contacts
//	GET    /api/contacts/{name}                 -> get one contact
//	DELETE /api/contacts/{name}                 -> delete a contact
//	GET    /api/contacts/{name}/birthday        -> show birthday
//	PUT    /api/contacts/{name}/birthday        -> set birthday
//	POST   /api/contacts/{name}/phones          -> add a phone
//	GET    /api/contacts/{name}/phones/{phone}  -> find a phone
//	PUT    /api/contacts/{name}/phones/{phone}  -> replace a phone
//	DELETE /api/contacts/{name}/phones/{phone}  -> remove a phone
//	GET    /api/birthdays/upcoming              -> birthdays later this month
//
// now supplies "today" for the upcoming-birthdays route; pass time.Now.
func New(book *addressbook.Book, log *slog.Logger, now func() time.Time) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /liveness", func(http.ResponseWriter, *http.Request) {})

	mux.HandleFunc("POST /api/contacts", contact.New(book))
	mux.HandleFunc("GET /api/contacts", contact.GetList(book))
	mux.HandleFunc("GET /api/contacts/{name}", contact.GetByName(book))
	mux.HandleFunc("DELETE /api/contacts/{name}", contact.Delete(book))

	mux.HandleFunc("GET /api/contacts/{name}/birthday", contact.GetBirthday(book))
	mux.HandleFunc("PUT /api/contacts/{name}/birthday", contact.SetBirthday(book))

	mux.HandleFunc("POST /api/contacts/{name}/phones", contact.AddPhone(book))
	mux.HandleFunc("GET /api/contacts/{name}/phones/{phone}", contact.FindPhone(book))
	mux.HandleFunc("PUT /api/contacts/{name}/phones/{phone}", contact.EditPhone(book))
	mux.HandleFunc("DELETE /api/contacts/{name}/phones/{phone}", contact.RemovePhone(book))

	mux.HandleFunc("GET /api/birthdays/upcoming", contact.Upcoming(book, now))

	// Outermost first: the request id must exist before the access log
	// and the recover handler read it.
	var h http.Handler = mux
	h = middleware.Recover(log)(h)
	h = middleware.AccessLog(log)(h)
	h = middleware.RequestID(h)
	return h
}
