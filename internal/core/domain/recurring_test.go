package domain_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okairos/servibook/internal/core/domain"
)

func recurringBooking(groupID uuid.UUID, seq int, status domain.BookingStatus) domain.Booking {
	return domain.Booking{
		ID:                uuid.New(),
		Status:            status,
		IsRecurring:       true,
		RecurringGroupID:  &groupID,
		RecurringSequence: seq,
		RecurringPattern:  domain.PatternWeekly,
	}
}

func TestGroupBookings_Partition(t *testing.T) {
	g1 := uuid.New()
	g2 := uuid.New()

	input := []domain.Booking{
		recurringBooking(g1, 2, domain.StatusConfirmed),
		{ID: uuid.New(), Status: domain.StatusPending},
		recurringBooking(g1, 1, domain.StatusCompleted),
		recurringBooking(g2, 1, domain.StatusCancelled),
		{ID: uuid.New(), Status: domain.StatusCompleted},
		recurringBooking(g1, 3, domain.StatusPending),
	}

	got := domain.GroupBookings(input)

	require.Len(t, got.Groups, 2)
	require.Len(t, got.Standalone, 2)

	// Every input id lands in exactly one bucket, no duplicates.
	seen := make(map[uuid.UUID]int)
	for _, g := range got.Groups {
		for _, b := range g.Bookings {
			seen[b.ID]++
		}
	}
	for _, b := range got.Standalone {
		seen[b.ID]++
	}
	assert.Len(t, seen, len(input))
	for id, n := range seen {
		assert.Equal(t, 1, n, "booking %s appears %d times", id, n)
	}
}

func TestGroupBookings_MembersOrderedBySequence(t *testing.T) {
	g1 := uuid.New()
	got := domain.GroupBookings([]domain.Booking{
		recurringBooking(g1, 3, domain.StatusPending),
		recurringBooking(g1, 1, domain.StatusCompleted),
		recurringBooking(g1, 2, domain.StatusConfirmed),
	})

	require.Len(t, got.Groups, 1)
	seqs := make([]int, 0, 3)
	for _, b := range got.Groups[0].Bookings {
		seqs = append(seqs, b.RecurringSequence)
	}
	assert.Equal(t, []int{1, 2, 3}, seqs)
	assert.Equal(t, domain.PatternWeekly, got.Groups[0].Pattern)
}

func TestGroupBookings_Counts(t *testing.T) {
	g1 := uuid.New()
	got := domain.GroupBookings([]domain.Booking{
		recurringBooking(g1, 1, domain.StatusCompleted),
		recurringBooking(g1, 2, domain.StatusCompleted),
		recurringBooking(g1, 3, domain.StatusConfirmed),
		recurringBooking(g1, 4, domain.StatusPending),
		recurringBooking(g1, 5, domain.StatusCancelled),
		recurringBooking(g1, 6, domain.StatusNoShow),
		recurringBooking(g1, 7, domain.StatusInProgress),
	})

	require.Len(t, got.Groups, 1)
	counts := got.Groups[0].Counts
	assert.Equal(t, 2, counts.Completed)
	assert.Equal(t, 1, counts.Confirmed)
	assert.Equal(t, 1, counts.Pending)
	assert.Equal(t, 1, counts.Cancelled)
	assert.Equal(t, 1, counts.NoShow)
	assert.Equal(t, 1, counts.InProgress)
	assert.Equal(t, 2, counts.Upcoming, "upcoming = pending + confirmed")
}

func TestGroupBookings_FullyTerminalGroupStillReported(t *testing.T) {
	g1 := uuid.New()
	got := domain.GroupBookings([]domain.Booking{
		recurringBooking(g1, 1, domain.StatusCancelled),
		recurringBooking(g1, 2, domain.StatusCancelled),
	})

	require.Len(t, got.Groups, 1, "a group with no active members is still reported")
	assert.Equal(t, 0, got.Groups[0].Counts.Upcoming)
	assert.Equal(t, 2, got.Groups[0].Counts.Cancelled)
}

func TestGroupBookings_RecurringFlagWithoutGroupIDIsStandalone(t *testing.T) {
	got := domain.GroupBookings([]domain.Booking{
		{ID: uuid.New(), IsRecurring: true, Status: domain.StatusPending},
	})

	assert.Empty(t, got.Groups)
	assert.Len(t, got.Standalone, 1)
}

func TestFilterGroupMembers_EmptyGroupStillReported(t *testing.T) {
	g1 := uuid.New()
	grouped := domain.GroupBookings([]domain.Booking{
		recurringBooking(g1, 1, domain.StatusCancelled),
		recurringBooking(g1, 2, domain.StatusCompleted),
		{ID: uuid.New(), Status: domain.StatusCancelled},
	})

	onlyUpcoming := func(b domain.Booking) bool {
		return b.Status == domain.StatusPending || b.Status == domain.StatusConfirmed
	}
	filtered := domain.FilterGroupMembers(grouped, onlyUpcoming)

	require.Len(t, filtered.Groups, 1, "group survives even with every member filtered out")
	assert.Empty(t, filtered.Groups[0].Bookings)
	assert.Equal(t, domain.StatusCounts{}, filtered.Groups[0].Counts)
	assert.Empty(t, filtered.Standalone, "filtered standalone bookings are dropped")
}

func TestMaterialChange(t *testing.T) {
	base := domain.Booking{ID: uuid.New(), Status: domain.StatusPending, PaymentStatus: domain.PaymentUnpaid}

	t.Run("status change is material", func(t *testing.T) {
		updated := base
		updated.Status = domain.StatusConfirmed
		assert.True(t, domain.MaterialChange(base, updated))
	})

	t.Run("payment fields are material", func(t *testing.T) {
		updated := base
		updated.PaymentStatus = domain.PaymentPaid
		assert.True(t, domain.MaterialChange(base, updated))

		updated = base
		updated.PaymentMethod = "cash"
		assert.True(t, domain.MaterialChange(base, updated))
	})

	t.Run("irrelevant fields are not", func(t *testing.T) {
		updated := base
		updated.CustomerName = "renamed"
		updated.TotalPrice = 99
		assert.False(t, domain.MaterialChange(base, updated))
	})
}
