package web

import (
	"net/http"
	"strings"
)

func (s *Server) billsPage(r *http.Request, p *page) error {
	bills, err := s.ledger.Bills(r.Context())
	if err != nil {
		return err
	}
	members, err := s.ledger.Members(r.Context())
	if err != nil {
		return err
	}
	p.Title = "Bills"
	p.Bills = bills
	p.Members = members
	return nil
}

func (s *Server) handleBills(w http.ResponseWriter, r *http.Request) {
	p := &page{}
	if err := s.billsPage(r, p); err != nil {
		s.fail(w, r, err, "", nil)
		return
	}
	s.render(w, r, http.StatusOK, "bills.html", p)
}

func (s *Server) handleAddBill(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	description := strings.TrimSpace(r.PostForm.Get("description"))

	amount, err := formAmount("amount", r.PostForm.Get("amount"), false)
	if err == nil {
		_, err = s.ledger.AddBill(r.Context(), description, amount)
	}
	if err != nil {
		p := &page{Form: r.PostForm}
		if lerr := s.billsPage(r, p); lerr != nil {
			s.fail(w, r, lerr, "", nil)
			return
		}
		s.fail(w, r, err, "bills.html", p)
		return
	}
	http.Redirect(w, r, "/bills", http.StatusSeeOther)
}

func (s *Server) handleEditBillPage(w http.ResponseWriter, r *http.Request) {
	b, err := s.ledger.Bill(r.Context(), r.PathValue("id"))
	if err != nil {
		s.fail(w, r, err, "", nil)
		return
	}
	s.render(w, r, http.StatusOK, "bill_edit.html", &page{
		Title: "Edit " + b.Description,
		Bill:  b,
		Form:  map[string][]string{"description": {b.Description}, "amount": {b.Amount.String()}},
	})
}

func (s *Server) handleEditBill(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	id := r.PathValue("id")
	description := strings.TrimSpace(r.PostForm.Get("description"))

	amount, err := formAmount("amount", r.PostForm.Get("amount"), false)
	if err == nil {
		_, err = s.ledger.UpdateBill(r.Context(), id, description, amount)
	}
	if err != nil {
		b, gerr := s.ledger.Bill(r.Context(), id)
		if gerr != nil {
			s.fail(w, r, gerr, "", nil)
			return
		}
		s.fail(w, r, err, "bill_edit.html", &page{Title: "Edit " + b.Description, Bill: b, Form: r.PostForm})
		return
	}
	http.Redirect(w, r, "/bills", http.StatusSeeOther)
}

func (s *Server) handleDeleteBill(w http.ResponseWriter, r *http.Request) {
	if err := s.ledger.DeleteBill(r.Context(), r.PathValue("id")); err != nil {
		s.fail(w, r, err, "", nil)
		return
	}
	http.Redirect(w, r, "/bills", http.StatusSeeOther)
}
