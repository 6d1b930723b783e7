package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/okairos/servibook/internal/core/domain"
	"github.com/okairos/servibook/internal/core/ports"
)

// FeedSync consumes the persistence collaborator's change stream and folds row
// updates into the shared cache. The feed can overwrite the same records the
// lifecycle manager mutates optimistically; both sides write whole rows, so
// last writer wins.
type FeedSync struct {
	feed      ports.ChangeFeed
	cache     ports.CacheStore
	lifecycle *LifecycleService
	log       *zap.Logger
}

func NewFeedSync(feed ports.ChangeFeed, cache ports.CacheStore, lifecycle *LifecycleService, log *zap.Logger) *FeedSync {
	return &FeedSync{feed: feed, cache: cache, lifecycle: lifecycle, log: log}
}

// Run subscribes to the bookings table and applies deliveries until the
// context is cancelled.
func (f *FeedSync) Run(ctx context.Context) error {
	ch, err := f.feed.Subscribe(ctx, "bookings")
	if err != nil {
		return err
	}

	f.log.Info("realtime feed consumer started")
	for ev := range ch {
		f.Apply(ev.Booking)
	}
	f.log.Info("realtime feed consumer stopped")
	return ctx.Err()
}

// Apply folds one row update into the cache and, when the row is the booking
// open in the detail view, resynchronizes it if a material field changed.
func (f *FeedSync) Apply(updated domain.Booking) {
	updateCachedBooking(f.cache, updated.ID, func(domain.Booking) domain.Booking {
		return updated
	})

	if f.lifecycle != nil && f.lifecycle.SyncSelected(updated) {
		f.log.Debug("selected booking resynchronized",
			zap.String("booking_id", updated.ID.String()))
	}
}
