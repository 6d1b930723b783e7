package services_test

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/okairos/servibook/internal/adapter/cache"
	"github.com/okairos/servibook/internal/core/domain"
	"github.com/okairos/servibook/internal/core/ports"
	"github.com/okairos/servibook/internal/core/ports/mocks"
	"github.com/okairos/servibook/internal/core/services"
)

func day(d int) time.Time {
	return time.Date(2025, 6, d, 0, 0, 0, 0, time.UTC)
}

func TestBuildCombinedList_MergesAndSortsByDate(t *testing.T) {
	groupID := uuid.New()
	members := seriesOf(groupID, 2)
	members[0].Date = day(10)
	members[1].Date = day(17)

	early := domain.Booking{ID: uuid.New(), Date: day(3), Status: domain.StatusPending}
	late := domain.Booking{ID: uuid.New(), Date: day(20), Status: domain.StatusPending}

	items := services.BuildCombinedList([]domain.Booking{late, members[1], early, members[0]})

	require.Len(t, items, 3)
	assert.Equal(t, early.ID, items[0].Booking.ID)
	require.NotNil(t, items[1].Group, "group sorts by its first member's date")
	assert.Equal(t, groupID, items[1].Group.GroupID)
	assert.Equal(t, late.ID, items[2].Booking.ID)
}

func TestCombinedList_ServesFromCacheAfterFirstLoad(t *testing.T) {
	mockRepo := mocks.NewBookingRepository(t)
	store := cache.NewMemoryCache()
	svc := services.NewListingService(mockRepo, store, zap.NewNop())

	bookings := []domain.Booking{
		{ID: uuid.New(), Date: day(1), Status: domain.StatusPending},
		{ID: uuid.New(), Date: day(2), Status: domain.StatusConfirmed},
	}
	mockRepo.On("Find", mock.Anything, ports.ActiveOnly{}).Return(bookings, nil).Once()

	first, err := svc.CombinedList(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 2, first.Total)

	// Second call must hit the cache; the Once() expectation above fails the
	// test if the repository is queried again.
	second, err := svc.CombinedList(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 2, second.Total)
}

func TestPaginate(t *testing.T) {
	items := make([]int, 25)
	for i := range items {
		items[i] = i
	}

	t.Run("middle page", func(t *testing.T) {
		p := services.Paginate(items, 2, 10)
		assert.Equal(t, []int{10, 11, 12, 13, 14, 15, 16, 17, 18, 19}, p.Items)
		assert.True(t, p.HasNext)
		assert.True(t, p.HasPrev)
		assert.Equal(t, 25, p.Total)
	})

	t.Run("last partial page", func(t *testing.T) {
		p := services.Paginate(items, 3, 10)
		assert.Len(t, p.Items, 5)
		assert.False(t, p.HasNext)
	})

	t.Run("page past the end is empty", func(t *testing.T) {
		p := services.Paginate(items, 9, 10)
		assert.Empty(t, p.Items)
		assert.False(t, p.HasNext)
		assert.True(t, p.HasPrev)
	})

	t.Run("huge page does not overflow", func(t *testing.T) {
		p := services.Paginate(items, math.MaxInt, 20)
		assert.Empty(t, p.Items)
		assert.False(t, p.HasNext)
		assert.True(t, p.HasPrev)
		assert.Equal(t, 25, p.Total)
	})

	t.Run("huge page size returns everything", func(t *testing.T) {
		p := services.Paginate(items, 1, math.MaxInt)
		assert.Len(t, p.Items, 25)
		assert.False(t, p.HasNext)
	})

	t.Run("defaults on bad input", func(t *testing.T) {
		p := services.Paginate(items, 0, -1)
		assert.Equal(t, 1, p.Page)
		assert.Equal(t, 20, p.PageSize)
		assert.Len(t, p.Items, 20)
	})
}
