package web

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mmynk/konta/internal/models"
	"github.com/mmynk/konta/internal/money"
)

// formAmount parses an amount form field, reporting bad input as a
// validation error.
func formAmount(field, value string, optional bool) (decimal.Decimal, error) {
	parse := money.Parse
	if optional {
		parse = money.ParseOrZero
	}
	d, err := parse(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s is not a valid amount", models.ErrValidation, field)
	}
	return d, nil
}

func (s *Server) membersPage(r *http.Request, p *page) error {
	members, err := s.ledger.Members(r.Context())
	if err != nil {
		return err
	}
	p.Title = "Members"
	p.Members = members
	return nil
}

func (s *Server) handleMembers(w http.ResponseWriter, r *http.Request) {
	p := &page{}
	if err := s.membersPage(r, p); err != nil {
		s.fail(w, r, err, "", nil)
		return
	}
	s.render(w, r, http.StatusOK, "members.html", p)
}

func (s *Server) handleAddMember(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	name := strings.TrimSpace(r.PostForm.Get("name"))
	mail := strings.TrimSpace(r.PostForm.Get("mail"))

	initial, err := formAmount("initial debt", r.PostForm.Get("initial_debt"), true)
	if err == nil {
		_, err = s.ledger.AddMember(r.Context(), name, mail, initial)
	}
	if err != nil {
		p := &page{Form: r.PostForm}
		if lerr := s.membersPage(r, p); lerr != nil {
			s.fail(w, r, lerr, "", nil)
			return
		}
		s.fail(w, r, err, "members.html", p)
		return
	}
	http.Redirect(w, r, "/members", http.StatusSeeOther)
}

func (s *Server) handleEditMemberPage(w http.ResponseWriter, r *http.Request) {
	m, err := s.ledger.Member(r.Context(), r.PathValue("id"))
	if err != nil {
		s.fail(w, r, err, "", nil)
		return
	}
	s.render(w, r, http.StatusOK, "member_edit.html", &page{
		Title:  "Edit " + m.Name,
		Member: m,
		Form:   map[string][]string{"name": {m.Name}, "mail": {m.Mail}},
	})
}

func (s *Server) handleEditMember(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	id := r.PathValue("id")
	name := strings.TrimSpace(r.PostForm.Get("name"))
	mail := strings.TrimSpace(r.PostForm.Get("mail"))

	if _, err := s.ledger.UpdateMember(r.Context(), id, name, mail); err != nil {
		m, gerr := s.ledger.Member(r.Context(), id)
		if gerr != nil {
			s.fail(w, r, gerr, "", nil)
			return
		}
		s.fail(w, r, err, "member_edit.html", &page{Title: "Edit " + m.Name, Member: m, Form: r.PostForm})
		return
	}
	http.Redirect(w, r, "/members", http.StatusSeeOther)
}

func (s *Server) handleDeleteMember(w http.ResponseWriter, r *http.Request) {
	if err := s.ledger.RemoveMember(r.Context(), r.PathValue("id")); err != nil {
		s.fail(w, r, err, "", nil)
		return
	}
	http.Redirect(w, r, "/members", http.StatusSeeOther)
}

func (s *Server) handlePayPage(w http.ResponseWriter, r *http.Request) {
	m, err := s.ledger.Member(r.Context(), r.PathValue("id"))
	if err != nil {
		s.fail(w, r, err, "", nil)
		return
	}
	s.render(w, r, http.StatusOK, "pay.html", &page{Title: m.Name + " pays", Member: m})
}

func (s *Server) handlePay(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	id := r.PathValue("id")

	amount, err := formAmount("amount", r.PostForm.Get("amount"), false)
	if err == nil {
		_, err = s.ledger.Pay(r.Context(), id, amount)
	}
	if err != nil {
		m, gerr := s.ledger.Member(r.Context(), id)
		if gerr != nil {
			s.fail(w, r, gerr, "", nil)
			return
		}
		s.fail(w, r, err, "pay.html", &page{Title: m.Name + " pays", Member: m, Form: r.PostForm})
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handlePayAllPage(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "pay.html", &page{Title: "Everyone pays"})
}

func (s *Server) handlePayAll(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	amount, err := formAmount("amount", r.PostForm.Get("amount"), false)
	if err == nil {
		_, err = s.ledger.PayAll(r.Context(), amount)
	}
	if err != nil {
		s.fail(w, r, err, "pay.html", &page{Title: "Everyone pays", Form: r.PostForm})
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
