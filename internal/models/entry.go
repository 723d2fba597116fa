package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryKind identifies the action a log entry records.
type EntryKind string

const (
	KindPayment       EntryKind = "payment"
	KindPaymentAll    EntryKind = "payment_all"
	KindBillAdded     EntryKind = "bill_added"
	KindBillUpdated   EntryKind = "bill_updated"
	KindBillDeleted   EntryKind = "bill_deleted"
	KindMemberAdded   EntryKind = "member_added"
	KindMemberUpdated EntryKind = "member_updated"
	KindMemberDeleted EntryKind = "member_deleted"
)

// Valid reports whether k is one of the known kinds.
func (k EntryKind) Valid() bool {
	switch k {
	case KindPayment, KindPaymentAll,
		KindBillAdded, KindBillUpdated, KindBillDeleted,
		KindMemberAdded, KindMemberUpdated, KindMemberDeleted:
		return true
	}
	return false
}

// LogEntry is one immutable row of the event log.
type LogEntry struct {
	// ID is the unique identifier for the entry (UUID format).
	ID string

	// Kind is the recorded action.
	Kind EntryKind

	// EntityID references the member or bill the action touched.
	// Empty for actions on every member (KindPaymentAll).
	EntityID string

	// Amount is the money moved by the action, when there is one.
	Amount decimal.NullDecimal

	// Description is the human-readable text shown in the history page.
	Description string

	// CreatedAt is when the action was committed.
	CreatedAt time.Time
}
