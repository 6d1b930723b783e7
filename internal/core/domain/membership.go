package domain

import (
	"time"

	"github.com/google/uuid"
)

// MembershipPeriod records the interval a staff member belonged to a team.
// Revenue and ratings earned by a team are attributed to whoever was a member
// on the booking date, so historical figures survive team changes.
type MembershipPeriod struct {
	TeamID   uuid.UUID
	StaffID  uuid.UUID
	JoinedAt time.Time
	LeftAt   *time.Time
}

// Covers reports whether the period was active on the given date.
func (p MembershipPeriod) Covers(date time.Time) bool {
	if date.Before(p.JoinedAt) {
		return false
	}
	return p.LeftAt == nil || date.Before(*p.LeftAt)
}

// AttributeRevenue splits booking revenue per staff member. Bookings assigned
// directly to a staff member credit that member in full; team bookings split
// the amount evenly among members whose period covers the booking date.
// Unassigned bookings and team bookings with no active members contribute
// nothing. Only paid bookings count.
func AttributeRevenue(bookings []Booking, periods []MembershipPeriod) map[uuid.UUID]float64 {
	out := make(map[uuid.UUID]float64)

	for _, b := range bookings {
		if b.PaymentStatus != PaymentPaid {
			continue
		}

		if b.StaffID != nil {
			out[*b.StaffID] += b.AmountPaid
			continue
		}
		if b.TeamID == nil {
			continue
		}

		var members []uuid.UUID
		for _, p := range periods {
			if p.TeamID == *b.TeamID && p.Covers(b.Date) {
				members = append(members, p.StaffID)
			}
		}
		if len(members) == 0 {
			continue
		}
		share := b.AmountPaid / float64(len(members))
		for _, id := range members {
			out[id] += share
		}
	}

	return out
}
