package service

import (
	"context"
	"fmt"
	"time"

	"connectrpc.com/connect"
	"github.com/shopspring/decimal"

	"github.com/mmynk/konta/internal/ledger"
	"github.com/mmynk/konta/internal/models"
	"github.com/mmynk/konta/internal/notify"
	"github.com/mmynk/konta/pkg/api"
)

var _ api.LedgerServiceHandler = (*LedgerService)(nil)

// LedgerService implements the LedgerService RPC interface on top of ledger.Ledger.
type LedgerService struct {
	ledger *ledger.Ledger
	now    func() time.Time
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(l *ledger.Ledger) *LedgerService {
	return &LedgerService{ledger: l, now: time.Now}
}

// ListMembers returns every member and the household total.
func (s *LedgerService) ListMembers(ctx context.Context, req *connect.Request[api.ListMembersRequest]) (*connect.Response[api.ListMembersResponse], error) {
	members, err := s.ledger.Members(ctx)
	if err != nil {
		return nil, connectError(err)
	}

	total := decimal.Zero
	for _, m := range members {
		total = total.Add(m.Debt)
	}

	return connect.NewResponse(&api.ListMembersResponse{
		Members:   toAPIMembers(members),
		TotalDebt: total.String(),
	}), nil
}

// AddMember adds a member with an optional initial debt.
func (s *LedgerService) AddMember(ctx context.Context, req *connect.Request[api.AddMemberRequest]) (*connect.Response[api.AddMemberResponse], error) {
	initial := decimal.Zero
	if req.Msg.InitialDebt != "" {
		var err error
		if initial, err = parseAmount("initial_debt", req.Msg.InitialDebt); err != nil {
			return nil, err
		}
	}

	m, err := s.ledger.AddMember(ctx, req.Msg.Name, req.Msg.Mail, initial)
	if err != nil {
		return nil, connectError(err)
	}
	return connect.NewResponse(&api.AddMemberResponse{Member: toAPIMember(m)}), nil
}

// UpdateMember changes a member's name and mail.
func (s *LedgerService) UpdateMember(ctx context.Context, req *connect.Request[api.UpdateMemberRequest]) (*connect.Response[api.UpdateMemberResponse], error) {
	m, err := s.ledger.UpdateMember(ctx, req.Msg.ID, req.Msg.Name, req.Msg.Mail)
	if err != nil {
		return nil, connectError(err)
	}
	return connect.NewResponse(&api.UpdateMemberResponse{Member: toAPIMember(m)}), nil
}

// RemoveMember deletes a member.
func (s *LedgerService) RemoveMember(ctx context.Context, req *connect.Request[api.RemoveMemberRequest]) (*connect.Response[api.RemoveMemberResponse], error) {
	if err := s.ledger.RemoveMember(ctx, req.Msg.ID); err != nil {
		return nil, connectError(err)
	}
	return connect.NewResponse(&api.RemoveMemberResponse{}), nil
}

// Pay records a payment by one member.
func (s *LedgerService) Pay(ctx context.Context, req *connect.Request[api.PayRequest]) (*connect.Response[api.PayResponse], error) {
	amount, err := parseAmount("amount", req.Msg.Amount)
	if err != nil {
		return nil, err
	}

	m, err := s.ledger.Pay(ctx, req.Msg.MemberID, amount)
	if err != nil {
		return nil, connectError(err)
	}
	return connect.NewResponse(&api.PayResponse{Member: toAPIMember(m)}), nil
}

// PayAll records the same payment by every member.
func (s *LedgerService) PayAll(ctx context.Context, req *connect.Request[api.PayAllRequest]) (*connect.Response[api.PayAllResponse], error) {
	amount, err := parseAmount("amount", req.Msg.Amount)
	if err != nil {
		return nil, err
	}

	members, err := s.ledger.PayAll(ctx, amount)
	if err != nil {
		return nil, connectError(err)
	}
	return connect.NewResponse(&api.PayAllResponse{Members: toAPIMembers(members)}), nil
}

// ListBills returns every bill, newest first.
func (s *LedgerService) ListBills(ctx context.Context, req *connect.Request[api.ListBillsRequest]) (*connect.Response[api.ListBillsResponse], error) {
	bills, err := s.ledger.Bills(ctx)
	if err != nil {
		return nil, connectError(err)
	}

	out := make([]*api.Bill, len(bills))
	for i, b := range bills {
		out[i] = toAPIBill(b)
	}
	return connect.NewResponse(&api.ListBillsResponse{Bills: out}), nil
}

// AddBill charges a new bill to every member.
func (s *LedgerService) AddBill(ctx context.Context, req *connect.Request[api.AddBillRequest]) (*connect.Response[api.AddBillResponse], error) {
	amount, err := parseAmount("amount", req.Msg.Amount)
	if err != nil {
		return nil, err
	}

	b, err := s.ledger.AddBill(ctx, req.Msg.Description, amount)
	if err != nil {
		return nil, connectError(err)
	}
	return connect.NewResponse(&api.AddBillResponse{Bill: toAPIBill(b)}), nil
}

// UpdateBill changes a bill's description and amount.
func (s *LedgerService) UpdateBill(ctx context.Context, req *connect.Request[api.UpdateBillRequest]) (*connect.Response[api.UpdateBillResponse], error) {
	amount, err := parseAmount("amount", req.Msg.Amount)
	if err != nil {
		return nil, err
	}

	b, err := s.ledger.UpdateBill(ctx, req.Msg.ID, req.Msg.Description, amount)
	if err != nil {
		return nil, connectError(err)
	}
	return connect.NewResponse(&api.UpdateBillResponse{Bill: toAPIBill(b)}), nil
}

// DeleteBill reverses and deletes a bill.
func (s *LedgerService) DeleteBill(ctx context.Context, req *connect.Request[api.DeleteBillRequest]) (*connect.Response[api.DeleteBillResponse], error) {
	if err := s.ledger.DeleteBill(ctx, req.Msg.ID); err != nil {
		return nil, connectError(err)
	}
	return connect.NewResponse(&api.DeleteBillResponse{}), nil
}

// ListEvents returns the newest event log entries first.
func (s *LedgerService) ListEvents(ctx context.Context, req *connect.Request[api.ListEventsRequest]) (*connect.Response[api.ListEventsResponse], error) {
	if req.Msg.Limit < 0 {
		return nil, connect.NewError(connect.CodeInvalidArgument,
			fmt.Errorf("%w: limit must not be negative", models.ErrValidation))
	}

	entries, err := s.ledger.Events(ctx, req.Msg.Limit)
	if err != nil {
		return nil, connectError(err)
	}

	out := make([]*api.Event, len(entries))
	for i, e := range entries {
		out[i] = toAPIEvent(e)
	}
	return connect.NewResponse(&api.ListEventsResponse{Events: out}), nil
}

// Summary builds the monthly summary and its mailto: URI.
func (s *LedgerService) Summary(ctx context.Context, req *connect.Request[api.SummaryRequest]) (*connect.Response[api.SummaryResponse], error) {
	now := s.now()
	year, month := now.Year(), now.Month()
	if req.Msg.Year != 0 {
		year = req.Msg.Year
	}
	if req.Msg.Month != 0 {
		if req.Msg.Month < 1 || req.Msg.Month > 12 {
			return nil, connect.NewError(connect.CodeInvalidArgument,
				fmt.Errorf("%w: month must be between 1 and 12", models.ErrValidation))
		}
		month = time.Month(req.Msg.Month)
	}

	members, err := s.ledger.Members(ctx)
	if err != nil {
		return nil, connectError(err)
	}

	summary := notify.BuildSummary(members, month, year)
	recipients := summary.Recipients
	if recipients == nil {
		recipients = []string{}
	}
	return connect.NewResponse(&api.SummaryResponse{
		Recipients: recipients,
		Subject:    summary.Subject,
		Body:       summary.Body,
		MailtoURI:  summary.MailtoURI(),
	}), nil
}
