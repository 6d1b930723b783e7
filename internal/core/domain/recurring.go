package domain

import (
	"sort"

	"github.com/google/uuid"
)

// RecurringScope is the breadth of a group-wide archive or delete operation.
type RecurringScope string

const (
	ScopeThisOnly      RecurringScope = "this_only"
	ScopeThisAndFuture RecurringScope = "this_and_future"
	ScopeAll           RecurringScope = "all"
)

func (s RecurringScope) IsValid() bool {
	switch s {
	case ScopeThisOnly, ScopeThisAndFuture, ScopeAll:
		return true
	}
	return false
}

// StatusCounts aggregates member statuses for one recurring group. Upcoming is
// a derived bucket: members not yet resolved into a run or a terminal outcome.
type StatusCounts struct {
	Pending    int
	Confirmed  int
	InProgress int
	Completed  int
	Cancelled  int
	NoShow     int
	Upcoming   int
}

// RecurringGroup is a derived view over the bookings sharing a group id. It is
// recomputed from the booking set on every read and never stored, so it cannot
// drift from its members.
type RecurringGroup struct {
	GroupID  uuid.UUID
	Pattern  RecurringPattern
	Bookings []Booking
	Counts   StatusCounts
}

// GroupedBookings is the result of partitioning a flat booking list.
type GroupedBookings struct {
	Groups     []RecurringGroup
	Standalone []Booking
}

// GroupBookings partitions bookings into recurring groups and standalone
// records. A booking joins a group iff it is flagged recurring and carries a
// group id; everything else is standalone. Group members are ordered by
// sequence.
func GroupBookings(bookings []Booking) GroupedBookings {
	byGroup := make(map[uuid.UUID][]Booking)
	var order []uuid.UUID
	var standalone []Booking

	for _, b := range bookings {
		if b.InGroup() {
			gid := *b.RecurringGroupID
			if _, seen := byGroup[gid]; !seen {
				order = append(order, gid)
			}
			byGroup[gid] = append(byGroup[gid], b)
		} else {
			standalone = append(standalone, b)
		}
	}

	groups := make([]RecurringGroup, 0, len(order))
	for _, gid := range order {
		members := byGroup[gid]
		sort.SliceStable(members, func(i, j int) bool {
			return members[i].RecurringSequence < members[j].RecurringSequence
		})

		g := RecurringGroup{GroupID: gid, Bookings: members, Counts: countStatuses(members)}
		if len(members) > 0 {
			g.Pattern = members[0].RecurringPattern
		}
		groups = append(groups, g)
	}

	return GroupedBookings{Groups: groups, Standalone: standalone}
}

// FilterGroupMembers applies a status-style filter to an already-partitioned
// set. Standalone bookings that fail the predicate are dropped, but a group
// whose members are all filtered out is kept with zero counts, so callers can
// tell "empty due to filter" from "never existed".
func FilterGroupMembers(g GroupedBookings, keep func(Booking) bool) GroupedBookings {
	out := GroupedBookings{Groups: make([]RecurringGroup, 0, len(g.Groups))}

	for _, grp := range g.Groups {
		var members []Booking
		for _, b := range grp.Bookings {
			if keep(b) {
				members = append(members, b)
			}
		}
		out.Groups = append(out.Groups, RecurringGroup{
			GroupID:  grp.GroupID,
			Pattern:  grp.Pattern,
			Bookings: members,
			Counts:   countStatuses(members),
		})
	}

	for _, b := range g.Standalone {
		if keep(b) {
			out.Standalone = append(out.Standalone, b)
		}
	}
	return out
}

func countStatuses(members []Booking) StatusCounts {
	var c StatusCounts
	for _, m := range members {
		switch m.Status {
		case StatusPending:
			c.Pending++
		case StatusConfirmed:
			c.Confirmed++
		case StatusInProgress:
			c.InProgress++
		case StatusCompleted:
			c.Completed++
		case StatusCancelled:
			c.Cancelled++
		case StatusNoShow:
			c.NoShow++
		}
	}
	c.Upcoming = c.Pending + c.Confirmed
	return c
}
