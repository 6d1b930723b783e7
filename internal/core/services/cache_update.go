package services

import (
	"github.com/google/uuid"

	"github.com/okairos/servibook/internal/core/domain"
	"github.com/okairos/servibook/internal/core/ports"
)

// updateCachedWhere rewrites every cached booking matching the predicate.
// Cached values are either full query results ([]domain.Booking) or point
// reads; anything else is left alone.
func updateCachedWhere(cache ports.CacheStore, match func(domain.Booking) bool, apply func(domain.Booking) domain.Booking) {
	for _, key := range cache.Keys() {
		v, ok := cache.Read(key)
		if !ok {
			continue
		}
		switch vv := v.(type) {
		case []domain.Booking:
			changed := false
			out := make([]domain.Booking, len(vv))
			copy(out, vv)
			for i := range out {
				if match(out[i]) {
					out[i] = apply(out[i])
					changed = true
				}
			}
			if changed {
				cache.Write(key, out)
			}
		case *domain.Booking:
			if match(*vv) {
				b := apply(*vv)
				cache.Write(key, &b)
			}
		case domain.Booking:
			if match(vv) {
				cache.Write(key, apply(vv))
			}
		}
	}
}

// updateCachedBooking rewrites every cached copy of one booking.
func updateCachedBooking(cache ports.CacheStore, id uuid.UUID, apply func(domain.Booking) domain.Booking) {
	updateCachedWhere(cache, func(b domain.Booking) bool { return b.ID == id }, apply)
}

// updateCachedGroup rewrites every cached member of one recurring group.
func updateCachedGroup(cache ports.CacheStore, groupID uuid.UUID, apply func(domain.Booking) domain.Booking) {
	updateCachedWhere(cache, func(b domain.Booking) bool {
		return b.RecurringGroupID != nil && *b.RecurringGroupID == groupID
	}, apply)
}
