package web

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mmynk/konta/internal/middleware"
	"github.com/mmynk/konta/internal/models"
)

// page is the data passed to every template.
type page struct {
	Title    string
	Username string
	Error    string
	Notice   string
	Next     string
	Form     url.Values

	Members   []*models.Member
	Member    *models.Member
	Bills     []*models.Bill
	Bill      *models.Bill
	Events    []*models.LogEntry
	TotalDebt decimal.Decimal
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, name string, p *page) {
	p.Username = middleware.GetUsername(r.Context())
	if p.Form == nil {
		p.Form = url.Values{}
	}

	var b strings.Builder
	if err := s.templates.ExecuteTemplate(&b, name, p); err != nil {
		s.logger.ErrorContext(r.Context(), "Template execution failed",
			"template", name, "request_id", RequestID(r.Context()), "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(b.String()))
}

// errorStatus maps a ledger error kind to an HTTP status and a message
// safe to show the user.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, models.ErrValidation):
		return http.StatusUnprocessableEntity, detail(err, models.ErrValidation)
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound, "Not found."
	case errors.Is(err, models.ErrDivisionUndefined):
		return http.StatusConflict, "Add a member before adding bills."
	default:
		return http.StatusInternalServerError, "Something went wrong. Nothing was changed."
	}
}

// detail strips the operation and kind prefixes from a wrapped error.
func detail(err, kind error) string {
	msg := err.Error()
	if i := strings.LastIndex(msg, kind.Error()+": "); i >= 0 {
		msg = msg[i+len(kind.Error())+2:]
	}
	if msg == "" {
		return "Invalid input."
	}
	return strings.ToUpper(msg[:1]) + msg[1:] + "."
}

// fail renders the error page, or re-renders a form page when the failure
// is a rejected input.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error, name string, p *page) {
	status, msg := errorStatus(err)
	if status == http.StatusInternalServerError {
		s.logger.ErrorContext(r.Context(), "Request failed",
			"request_id", RequestID(r.Context()), "url", r.URL.Path, "error", err)
	}
	if name == "" || status == http.StatusNotFound || status == http.StatusInternalServerError {
		s.render(w, r, status, "error.html", &page{Title: http.StatusText(status), Error: msg})
		return
	}
	p.Error = msg
	s.render(w, r, status, name, p)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	members, err := s.ledger.Members(r.Context())
	if err != nil {
		s.fail(w, r, err, "", nil)
		return
	}
	bills, err := s.ledger.Bills(r.Context())
	if err != nil {
		s.fail(w, r, err, "", nil)
		return
	}
	events, err := s.ledger.Events(r.Context(), 10)
	if err != nil {
		s.fail(w, r, err, "", nil)
		return
	}

	total := decimal.Zero
	for _, m := range members {
		total = total.Add(m.Debt)
	}
	s.render(w, r, http.StatusOK, "index.html", &page{
		Title:     "Household",
		Members:   members,
		Bills:     bills,
		Events:    events,
		TotalDebt: total,
	})
}

func (s *Server) handleLog(w http.ResponseWriter, r *http.Request) {
	events, err := s.ledger.Events(r.Context(), -1)
	if err != nil {
		s.fail(w, r, err, "", nil)
		return
	}
	s.render(w, r, http.StatusOK, "log.html", &page{Title: "Event log", Events: events})
}

// handleNotify redirects the browser to a mailto: URI holding this month's summary.
func (s *Server) handleNotify(w http.ResponseWriter, r *http.Request) {
	summary, err := s.ledger.Summary(r.Context(), s.now())
	if err != nil {
		s.fail(w, r, err, "", nil)
		return
	}
	http.Redirect(w, r, summary.MailtoURI(), http.StatusSeeOther)
}
