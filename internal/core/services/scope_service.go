package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/okairos/servibook/internal/core/domain"
	"github.com/okairos/servibook/internal/core/ports"
)

// ScopeService resolves a user-chosen scope over a recurring series into a
// concrete set of booking ids and drives archive, delete and restore across
// it. Batch operations are best effort per item: one failing member never
// aborts its siblings, and the result reports how many actually succeeded.
type ScopeService struct {
	repo ports.BookingRepository
	log  *zap.Logger
}

func NewScopeService(repo ports.BookingRepository, log *zap.Logger) *ScopeService {
	return &ScopeService{repo: repo, log: log}
}

// ResolveScope maps (booking, scope) to the affected booking ids. Multi
// scopes exclude soft-deleted members and require group membership.
func (s *ScopeService) ResolveScope(ctx context.Context, b domain.Booking, scope domain.RecurringScope) ([]uuid.UUID, error) {
	if !scope.IsValid() {
		return nil, domain.ErrUnknownScope
	}
	if scope == domain.ScopeThisOnly {
		return []uuid.UUID{b.ID}, nil
	}
	if b.RecurringGroupID == nil {
		return nil, domain.ErrUngroupedScope
	}

	members, err := s.repo.Find(ctx, ports.ByGroupID{GroupID: *b.RecurringGroupID}, ports.ActiveOnly{})
	if err != nil {
		return nil, err
	}

	var ids []uuid.UUID
	for _, m := range members {
		if scope == domain.ScopeThisAndFuture && m.RecurringSequence < b.RecurringSequence {
			continue
		}
		ids = append(ids, m.ID)
	}
	return ids, nil
}

// ArchiveScope soft-deletes every booking the scope resolves to.
func (s *ScopeService) ArchiveScope(ctx context.Context, b domain.Booking, scope domain.RecurringScope, deletedBy uuid.UUID) (domain.BatchResult, error) {
	ids, err := s.ResolveScope(ctx, b, scope)
	if err != nil {
		return domain.BatchResult{}, err
	}

	now := time.Now()
	return s.forEach(ids, "archive", func(id uuid.UUID) error {
		return s.repo.Archive(ctx, id, deletedBy, now)
	}), nil
}

// DeleteScope permanently removes every booking the scope resolves to. This is
// the administrative delete path; everything else goes through ArchiveScope.
func (s *ScopeService) DeleteScope(ctx context.Context, b domain.Booking, scope domain.RecurringScope) (domain.BatchResult, error) {
	ids, err := s.ResolveScope(ctx, b, scope)
	if err != nil {
		return domain.BatchResult{}, err
	}

	return s.forEach(ids, "delete", func(id uuid.UUID) error {
		return s.repo.Delete(ctx, id)
	}), nil
}

// ArchiveScopeByID is ArchiveScope for callers holding only the booking id.
func (s *ScopeService) ArchiveScopeByID(ctx context.Context, bookingID uuid.UUID, scope domain.RecurringScope, deletedBy uuid.UUID) (domain.BatchResult, error) {
	b, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return domain.BatchResult{}, err
	}
	return s.ArchiveScope(ctx, *b, scope, deletedBy)
}

// DeleteScopeByID is DeleteScope for callers holding only the booking id.
func (s *ScopeService) DeleteScopeByID(ctx context.Context, bookingID uuid.UUID, scope domain.RecurringScope) (domain.BatchResult, error) {
	b, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return domain.BatchResult{}, err
	}
	return s.DeleteScope(ctx, *b, scope)
}

// RestoreBookings un-archives the given ids, mirroring ArchiveScope.
func (s *ScopeService) RestoreBookings(ctx context.Context, ids []uuid.UUID) domain.BatchResult {
	return s.forEach(ids, "restore", func(id uuid.UUID) error {
		return s.repo.Restore(ctx, id)
	})
}

// forEach runs op over each id sequentially, recording failures instead of
// aborting. Each item is awaited on its own so a failure cannot corrupt state
// shared with the next.
func (s *ScopeService) forEach(ids []uuid.UUID, op string, fn func(uuid.UUID) error) domain.BatchResult {
	res := domain.BatchResult{Requested: len(ids)}
	for _, id := range ids {
		if err := fn(id); err != nil {
			res.FailedIDs = append(res.FailedIDs, id)
			s.log.Warn("scope item failed",
				zap.String("op", op),
				zap.String("booking_id", id.String()),
				zap.Error(err))
			continue
		}
		res.Succeeded++
	}
	if res.Partial() || res.AllFailed() {
		s.log.Warn("scope operation finished with failures",
			zap.String("op", op),
			zap.Int("requested", res.Requested),
			zap.Int("succeeded", res.Succeeded))
	}
	return res
}
