package domain

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	// ErrNoPendingChange is returned when confirm is called with nothing staged.
	ErrNoPendingChange = errors.New("no status change staged")

	// ErrUngroupedScope is returned when a multi-booking scope is requested on
	// a booking that does not belong to a recurring group.
	ErrUngroupedScope = errors.New("booking has no recurring group")

	// ErrUnknownScope is returned for a scope value outside the known set.
	ErrUnknownScope = errors.New("unknown recurring scope")

	// ErrBookingNotFound is returned by repositories for point reads that
	// match no row.
	ErrBookingNotFound = errors.New("booking not found")
)

// InvalidTransitionError rejects a status change pair not present in the
// transition table. It is raised before anything is staged or written.
type InvalidTransitionError struct {
	From BookingStatus
	To   BookingStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid status transition from %q to %q", e.From, e.To)
}

// BatchResult reports the outcome of a best-effort per-item operation across a
// resolved scope. succeeded < requested is a partial success, not a failure;
// callers must surface it as a warning.
type BatchResult struct {
	Requested int
	Succeeded int
	FailedIDs []uuid.UUID
}

// Partial reports whether some but not all items failed.
func (r BatchResult) Partial() bool {
	return r.Succeeded > 0 && r.Succeeded < r.Requested
}

// AllFailed reports whether no item succeeded.
func (r BatchResult) AllFailed() bool {
	return r.Requested > 0 && r.Succeeded == 0
}
