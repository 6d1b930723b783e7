package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/okairos/servibook/internal/core/domain"
)

// Filter is a typed predicate the persistence adapter translates into its own
// query language. The set is closed; adapters switch over the concrete types.
type Filter interface {
	filter()
}

type ByID struct{ ID uuid.UUID }

type ByIDIn struct{ IDs []uuid.UUID }

type ByGroupID struct{ GroupID uuid.UUID }

type WithStatusIn struct{ Statuses []domain.BookingStatus }

type WithPaymentStatus struct{ Status domain.PaymentStatus }

// ActiveOnly excludes soft-deleted rows.
type ActiveOnly struct{}

func (ByID) filter()              {}
func (ByIDIn) filter()            {}
func (ByGroupID) filter()         {}
func (WithStatusIn) filter()      {}
func (WithPaymentStatus) filter() {}
func (ActiveOnly) filter()        {}

// BookingRepository is the persistence collaborator. Row visibility and access
// control are enforced behind it; the core performs no authorization of its own.
type BookingRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
	Find(ctx context.Context, filters ...Filter) ([]domain.Booking, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.BookingStatus) error
	// UpdatePayment applies the payment fields to every row matching the
	// filters in one logical update and returns the number of rows touched.
	UpdatePayment(ctx context.Context, upd domain.PaymentUpdate, filters ...Filter) (int64, error)
	// Archive soft-deletes one row; Restore reverses it. Delete removes the
	// row permanently and is reserved for the administrative delete path.
	Archive(ctx context.Context, id uuid.UUID, deletedBy uuid.UUID, at time.Time) error
	Restore(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// Snapshot is an opaque copy of the whole cache taken before an optimistic
// mutation, sufficient to restore every entry touched by a failed write.
type Snapshot map[string]any

// CacheStore is the shared client-side cache of booking query results. It is
// written both by the lifecycle manager's optimistic updates and by the
// realtime feed, with last-writer-wins semantics and visible rollback.
type CacheStore interface {
	Read(key string) (any, bool)
	Write(key string, value any)
	Invalidate(key string)
	Keys() []string
	Snapshot() Snapshot
	Restore(snap Snapshot)
}

// ChangeEvent is one row-change notification from the persistence collaborator.
type ChangeEvent struct {
	Table   string
	Booking domain.Booking
}

// ChangeFeed is the push-based change-notification stream. The channel closes
// when the subscription context is cancelled.
type ChangeFeed interface {
	Subscribe(ctx context.Context, table string) (<-chan ChangeEvent, error)
}

// EventPublisher emits lifecycle events (status changes, payment updates) so
// other processes watching the feed converge on the same state.
type EventPublisher interface {
	PublishChange(ctx context.Context, event ChangeEvent) error
}
