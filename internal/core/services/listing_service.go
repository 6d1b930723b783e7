package services

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/okairos/servibook/internal/core/domain"
	"github.com/okairos/servibook/internal/core/ports"
)

// ActiveListKey is the cache key for the active-bookings query result. The
// lifecycle manager and the feed rewrite entries under this key in place.
const ActiveListKey = "bookings:active"

// CombinedItem is one row of the merged view: a whole recurring group or a
// standalone booking, never both.
type CombinedItem struct {
	Group   *domain.RecurringGroup
	Booking *domain.Booking
}

// Date returns the scheduling date the item sorts by: a group sorts by its
// first member.
func (i CombinedItem) Date() time.Time {
	if i.Group != nil {
		if len(i.Group.Bookings) > 0 {
			return i.Group.Bookings[0].Date
		}
		return time.Time{}
	}
	return i.Booking.Date
}

func (i CombinedItem) sortID() string {
	if i.Group != nil {
		return i.Group.GroupID.String()
	}
	return i.Booking.ID.String()
}

// ListingService builds the merged, paginated view of recurring groups and
// standalone bookings. Query results are served from the shared cache so the
// view stays consistent with optimistic updates and feed deliveries.
type ListingService struct {
	repo  ports.BookingRepository
	cache ports.CacheStore
	log   *zap.Logger
}

func NewListingService(repo ports.BookingRepository, cache ports.CacheStore, log *zap.Logger) *ListingService {
	return &ListingService{repo: repo, cache: cache, log: log}
}

// CombinedList returns one page of the merged view, loading active bookings
// through the cache.
func (s *ListingService) CombinedList(ctx context.Context, page, pageSize int) (Page[CombinedItem], error) {
	bookings, err := s.activeBookings(ctx)
	if err != nil {
		return Page[CombinedItem]{}, err
	}
	return Paginate(BuildCombinedList(bookings), page, pageSize), nil
}

func (s *ListingService) activeBookings(ctx context.Context) ([]domain.Booking, error) {
	if v, ok := s.cache.Read(ActiveListKey); ok {
		if bs, ok := v.([]domain.Booking); ok {
			return bs, nil
		}
	}

	bs, err := s.repo.Find(ctx, ports.ActiveOnly{})
	if err != nil {
		return nil, err
	}
	s.cache.Write(ActiveListKey, bs)
	s.log.Debug("active bookings cached", zap.Int("count", len(bs)))
	return bs, nil
}

// BuildCombinedList partitions the bookings and merges groups and standalone
// records into one list sorted by date ascending, with a stable id tie-break.
func BuildCombinedList(bookings []domain.Booking) []CombinedItem {
	grouped := domain.GroupBookings(bookings)

	items := make([]CombinedItem, 0, len(grouped.Groups)+len(grouped.Standalone))
	for i := range grouped.Groups {
		items = append(items, CombinedItem{Group: &grouped.Groups[i]})
	}
	for i := range grouped.Standalone {
		items = append(items, CombinedItem{Booking: &grouped.Standalone[i]})
	}

	sort.SliceStable(items, func(i, j int) bool {
		di, dj := items[i].Date(), items[j].Date()
		if !di.Equal(dj) {
			return di.Before(dj)
		}
		return items[i].sortID() < items[j].sortID()
	})
	return items
}
