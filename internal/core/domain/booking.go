package domain

import (
	"time"

	"github.com/google/uuid"
)

type PaymentStatus string

const (
	PaymentUnpaid              PaymentStatus = "unpaid"
	PaymentPendingVerification PaymentStatus = "pending_verification"
	PaymentPaid                PaymentStatus = "paid"
	PaymentRefunded            PaymentStatus = "refunded"
)

type RecurringPattern string

const (
	PatternWeekly   RecurringPattern = "weekly"
	PatternBiweekly RecurringPattern = "biweekly"
	PatternMonthly  RecurringPattern = "monthly"
)

type Booking struct {
	ID           uuid.UUID
	CustomerName string
	ServiceType  string
	Status       BookingStatus
	TotalPrice   float64

	PaymentStatus PaymentStatus
	PaymentMethod string
	AmountPaid    float64
	PaymentDate   *time.Time

	Date      time.Time
	StartTime string
	EndTime   string

	// Exactly one of StaffID or TeamID is set, or neither when unassigned.
	StaffID *uuid.UUID
	TeamID  *uuid.UUID

	IsRecurring       bool
	RecurringGroupID  *uuid.UUID
	RecurringSequence int
	RecurringPattern  RecurringPattern

	DeletedAt *time.Time
	DeletedBy *uuid.UUID

	CreatedAt time.Time
	UpdatedAt time.Time
}

// InGroup reports whether the booking is a member of a recurring group.
func (b *Booking) InGroup() bool {
	return b.IsRecurring && b.RecurringGroupID != nil
}

// IsDeleted reports whether the booking has been archived (soft-deleted).
func (b *Booking) IsDeleted() bool {
	return b.DeletedAt != nil
}

// MaterialChange reports whether the fields relevant to an open detail view
// differ between two versions of the same booking. The realtime feed delivers
// every column change; resynchronizing the selected record on irrelevant ones
// causes UI jitter, so only status and payment fields count.
func MaterialChange(old, updated Booking) bool {
	if old.Status != updated.Status {
		return true
	}
	if old.PaymentStatus != updated.PaymentStatus {
		return true
	}
	if old.PaymentMethod != updated.PaymentMethod {
		return true
	}
	return !equalTimePtr(old.PaymentDate, updated.PaymentDate)
}

func equalTimePtr(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

// PendingStatusChange is the transient confirmation staged between a status
// change request and the operator confirming or cancelling it.
type PendingStatusChange struct {
	BookingID uuid.UUID
	From      BookingStatus
	To        BookingStatus
}

// Message returns the operator confirmation prompt for the staged change.
func (p PendingStatusChange) Message() string {
	return TransitionMessage(p.From, p.To)
}

// PaymentUpdate carries the payment fields written in one logical update
// across a booking or a whole recurring group.
type PaymentUpdate struct {
	Status     PaymentStatus
	Method     string
	AmountPaid float64
	PaidAt     time.Time
}
