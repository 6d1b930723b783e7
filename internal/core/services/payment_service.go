package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/okairos/servibook/internal/core/domain"
	"github.com/okairos/servibook/internal/core/ports"
)

// PaymentService reconciles payment state across single bookings and recurring
// groups. A recurring series is invoiced as one payment from the customer, so
// payment fields always propagate to every active member of the group; a
// partial-series payment state would be meaningless to the business process.
type PaymentService struct {
	repo  ports.BookingRepository
	cache ports.CacheStore
	log   *zap.Logger
}

func NewPaymentService(repo ports.BookingRepository, cache ports.CacheStore, log *zap.Logger) *PaymentService {
	return &PaymentService{repo: repo, cache: cache, log: log}
}

// MarkAsPaid records a payment against the booking, or against its entire
// recurring group, and returns the number of bookings affected.
func (s *PaymentService) MarkAsPaid(ctx context.Context, bookingID uuid.UUID, method string) (int64, error) {
	b, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return 0, fmt.Errorf("load booking %s: %w", bookingID, err)
	}

	upd := domain.PaymentUpdate{
		Status:     domain.PaymentPaid,
		Method:     method,
		AmountPaid: b.TotalPrice,
		PaidAt:     time.Now(),
	}
	return s.apply(ctx, b, upd, "mark_paid")
}

// VerifyPayment moves a pending-verification payment to paid, with the same
// group-versus-single branching as MarkAsPaid.
func (s *PaymentService) VerifyPayment(ctx context.Context, bookingID uuid.UUID) (int64, error) {
	b, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return 0, fmt.Errorf("load booking %s: %w", bookingID, err)
	}
	if b.PaymentStatus != domain.PaymentPendingVerification {
		return 0, fmt.Errorf("booking %s payment is %q, not pending verification", bookingID, b.PaymentStatus)
	}

	upd := domain.PaymentUpdate{
		Status:     domain.PaymentPaid,
		Method:     b.PaymentMethod,
		AmountPaid: b.TotalPrice,
		PaidAt:     time.Now(),
	}
	return s.apply(ctx, b, upd, "verify_payment")
}

// MarkAsRefunded flips the booking, or its whole group, to refunded. The paid
// amount is kept on the record for bookkeeping.
func (s *PaymentService) MarkAsRefunded(ctx context.Context, bookingID uuid.UUID) (int64, error) {
	b, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return 0, fmt.Errorf("load booking %s: %w", bookingID, err)
	}

	upd := domain.PaymentUpdate{
		Status:     domain.PaymentRefunded,
		Method:     b.PaymentMethod,
		AmountPaid: b.AmountPaid,
		PaidAt:     time.Now(),
	}
	return s.apply(ctx, b, upd, "mark_refunded")
}

// apply writes the payment fields through the repository, scoped to the whole
// recurring group when the booking belongs to one, then brings cached copies
// up to date. The cache is only touched after the write succeeds.
func (s *PaymentService) apply(ctx context.Context, b *domain.Booking, upd domain.PaymentUpdate, op string) (int64, error) {
	var (
		count int64
		err   error
	)
	if b.InGroup() {
		count, err = s.repo.UpdatePayment(ctx, upd,
			ports.ByGroupID{GroupID: *b.RecurringGroupID}, ports.ActiveOnly{})
	} else {
		count, err = s.repo.UpdatePayment(ctx, upd, ports.ByID{ID: b.ID})
	}
	if err != nil {
		s.log.Error("payment update failed",
			zap.String("op", op),
			zap.String("booking_id", b.ID.String()),
			zap.Error(err))
		return 0, fmt.Errorf("%s booking %s: %w", op, b.ID, err)
	}

	applyFields := func(cached domain.Booking) domain.Booking {
		cached.PaymentStatus = upd.Status
		cached.PaymentMethod = upd.Method
		cached.AmountPaid = upd.AmountPaid
		paidAt := upd.PaidAt
		cached.PaymentDate = &paidAt
		return cached
	}
	if s.cache != nil {
		if b.InGroup() {
			updateCachedGroup(s.cache, *b.RecurringGroupID, applyFields)
		} else {
			updateCachedBooking(s.cache, b.ID, applyFields)
		}
	}

	s.log.Info("payment updated",
		zap.String("op", op),
		zap.String("booking_id", b.ID.String()),
		zap.Int64("affected", count))
	return count, nil
}
