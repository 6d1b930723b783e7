package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/okairos/servibook/internal/core/domain"
	"github.com/okairos/servibook/internal/core/ports"
)

// LifecycleService orchestrates booking status changes: it validates requests
// against the transition table, stages a confirmation, applies the change
// optimistically to the shared cache, writes through the repository and rolls
// the cache back when the write fails.
//
// At most one change is staged at a time; requesting another replaces it.
type LifecycleService struct {
	repo  ports.BookingRepository
	cache ports.CacheStore
	pub   ports.EventPublisher
	log   *zap.Logger

	mu       sync.Mutex
	pending  *domain.PendingStatusChange
	selected *domain.Booking
}

func NewLifecycleService(repo ports.BookingRepository, cache ports.CacheStore, pub ports.EventPublisher, log *zap.Logger) *LifecycleService {
	return &LifecycleService{
		repo:  repo,
		cache: cache,
		pub:   pub,
		log:   log,
	}
}

// RequestStatusChange stages a status change for operator confirmation.
// Requesting the current status is a no-op; a pair missing from the transition
// table is rejected and nothing is staged.
func (s *LifecycleService) RequestStatusChange(bookingID uuid.UUID, from, to domain.BookingStatus) error {
	if from == to {
		return nil
	}
	if !from.CanTransitionTo(to) {
		return &domain.InvalidTransitionError{From: from, To: to}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = &domain.PendingStatusChange{BookingID: bookingID, From: from, To: to}
	return nil
}

// PendingChange returns a copy of the staged change, or nil.
func (s *LifecycleService) PendingChange() *domain.PendingStatusChange {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending == nil {
		return nil
	}
	p := *s.pending
	return &p
}

// CancelStatusChange discards the staged change without touching anything.
func (s *LifecycleService) CancelStatusChange() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = nil
}

// ConfirmStatusChange applies the staged change. The cache is mutated first so
// the UI reflects the new status immediately; if the repository write then
// fails, every cache entry and the selected booking are restored from the
// pre-update snapshot and the failure is surfaced.
func (s *LifecycleService) ConfirmStatusChange(ctx context.Context) error {
	s.mu.Lock()
	p := s.pending
	if p == nil {
		s.mu.Unlock()
		return domain.ErrNoPendingChange
	}
	s.pending = nil

	snap := s.cache.Snapshot()
	prevSelected := s.selected

	updateCachedBooking(s.cache, p.BookingID, func(b domain.Booking) domain.Booking {
		b.Status = p.To
		return b
	})
	if s.selected != nil && s.selected.ID == p.BookingID {
		b := *s.selected
		b.Status = p.To
		s.selected = &b
	}
	s.mu.Unlock()

	if err := s.repo.UpdateStatus(ctx, p.BookingID, p.To); err != nil {
		s.mu.Lock()
		s.cache.Restore(snap)
		s.selected = prevSelected
		s.mu.Unlock()

		s.log.Error("status change write failed, cache rolled back",
			zap.String("booking_id", p.BookingID.String()),
			zap.String("from", string(p.From)),
			zap.String("to", string(p.To)),
			zap.Error(err))
		return fmt.Errorf("update booking %s status: %w", p.BookingID, err)
	}

	s.log.Info("booking status changed",
		zap.String("booking_id", p.BookingID.String()),
		zap.String("from", string(p.From)),
		zap.String("to", string(p.To)))

	s.publishChange(ctx, p.BookingID)
	return nil
}

// publishChange emits the updated row on the change feed so other sessions
// converge. Best effort: a publish failure is logged, never surfaced.
func (s *LifecycleService) publishChange(ctx context.Context, id uuid.UUID) {
	if s.pub == nil {
		return
	}
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.log.Warn("skipping change publish, readback failed",
			zap.String("booking_id", id.String()), zap.Error(err))
		return
	}
	if err := s.pub.PublishChange(ctx, ports.ChangeEvent{Table: "bookings", Booking: *b}); err != nil {
		s.log.Warn("change publish failed",
			zap.String("booking_id", id.String()), zap.Error(err))
	}
}

// SelectBooking sets the booking open in the detail view. Pass nil to clear.
func (s *LifecycleService) SelectBooking(b *domain.Booking) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if b == nil {
		s.selected = nil
		return
	}
	cp := *b
	s.selected = &cp
}

// Selected returns a copy of the booking open in the detail view, or nil.
func (s *LifecycleService) Selected() *domain.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selected == nil {
		return nil
	}
	cp := *s.selected
	return &cp
}

// SyncSelected resynchronizes the selected booking from a feed update. The
// record is only replaced when a materially relevant field changed; returns
// whether a resync happened.
func (s *LifecycleService) SyncSelected(updated domain.Booking) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selected == nil || s.selected.ID != updated.ID {
		return false
	}
	if !domain.MaterialChange(*s.selected, updated) {
		return false
	}
	cp := updated
	s.selected = &cp
	return true
}
