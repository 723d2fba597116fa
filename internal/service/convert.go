package service

import (
	"errors"
	"fmt"
	"log/slog"

	"connectrpc.com/connect"
	"github.com/shopspring/decimal"

	"github.com/mmynk/konta/internal/models"
	"github.com/mmynk/konta/internal/money"
	"github.com/mmynk/konta/pkg/api"
)

// connectError maps a ledger error kind to a Connect error code.
func connectError(err error) error {
	switch {
	case errors.Is(err, models.ErrValidation):
		return connect.NewError(connect.CodeInvalidArgument, err)
	case errors.Is(err, models.ErrNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, models.ErrDivisionUndefined):
		return connect.NewError(connect.CodeFailedPrecondition, err)
	case errors.Is(err, models.ErrAuth):
		return connect.NewError(connect.CodeUnauthenticated, err)
	default:
		// Storage details stay in the server log.
		slog.Error("Internal error", "error", err)
		return connect.NewError(connect.CodeInternal, errors.New("internal error"))
	}
}

// parseAmount parses a required amount field.
func parseAmount(field, s string) (decimal.Decimal, error) {
	d, err := money.Parse(s)
	if err != nil {
		return decimal.Zero, connect.NewError(connect.CodeInvalidArgument,
			fmt.Errorf("%w: %s: %q is not a valid amount", models.ErrValidation, field, s))
	}
	return d, nil
}

func toAPIMember(m *models.Member) *api.Member {
	return &api.Member{
		ID:        m.ID,
		Name:      m.Name,
		Mail:      m.Mail,
		Debt:      m.Debt.String(),
		CreatedAt: m.CreatedAt,
	}
}

func toAPIMembers(members []*models.Member) []*api.Member {
	out := make([]*api.Member, len(members))
	for i, m := range members {
		out[i] = toAPIMember(m)
	}
	return out
}

func toAPIBill(b *models.Bill) *api.Bill {
	return &api.Bill{
		ID:          b.ID,
		Description: b.Description,
		Amount:      b.Amount.String(),
		MemberCount: b.MemberCount,
		CreatedAt:   b.CreatedAt,
	}
}

func toAPIEvent(e *models.LogEntry) *api.Event {
	ev := &api.Event{
		ID:          e.ID,
		Kind:        string(e.Kind),
		EntityID:    e.EntityID,
		Description: e.Description,
		CreatedAt:   e.CreatedAt,
	}
	if e.Amount.Valid {
		ev.Amount = e.Amount.Decimal.String()
	}
	return ev
}
