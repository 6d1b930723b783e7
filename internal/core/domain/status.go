package domain

// BookingStatus represents the current state of a booking in its lifecycle.
type BookingStatus string

const (
	StatusPending    BookingStatus = "pending"
	StatusConfirmed  BookingStatus = "confirmed"
	StatusInProgress BookingStatus = "in_progress"
	StatusCompleted  BookingStatus = "completed"
	StatusCancelled  BookingStatus = "cancelled"
	StatusNoShow     BookingStatus = "no_show"
)

// validTransitions defines the state machine for booking status changes.
// completed, cancelled and no_show are terminal.
var validTransitions = map[BookingStatus][]BookingStatus{
	StatusPending:    {StatusConfirmed, StatusCancelled},
	StatusConfirmed:  {StatusInProgress, StatusCancelled, StatusNoShow},
	StatusInProgress: {StatusCompleted, StatusCancelled},
	StatusCompleted:  {},
	StatusCancelled:  {},
	StatusNoShow:     {},
}

// IsValid returns true if the status is a recognized booking status.
func (s BookingStatus) IsValid() bool {
	_, exists := validTransitions[s]
	return exists
}

// IsTerminal returns true if no further transitions are possible from this status.
func (s BookingStatus) IsTerminal() bool {
	allowed, exists := validTransitions[s]
	return exists && len(allowed) == 0
}

// CanTransitionTo returns true if a transition from this status to the target is allowed.
func (s BookingStatus) CanTransitionTo(target BookingStatus) bool {
	for _, t := range validTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

// ValidTransitions returns the statuses reachable from the given status.
// An unknown status has no valid transitions.
func ValidTransitions(s BookingStatus) []BookingStatus {
	allowed := validTransitions[s]
	out := make([]BookingStatus, len(allowed))
	copy(out, allowed)
	return out
}

// AvailableStatuses returns the current status followed by every status it can
// transition to. The current status always comes first even though staying put
// is not itself a transition; status pickers render the list as-is.
func AvailableStatuses(s BookingStatus) []BookingStatus {
	return append([]BookingStatus{s}, ValidTransitions(s)...)
}

const irreversibleWarning = "This action cannot be undone."

// transitionMessages holds the operator confirmation prompt per transition.
// Transitions into cancelled or no_show must keep the irreversible wording in
// sync with the terminal states of validTransitions.
var transitionMessages = map[BookingStatus]map[BookingStatus]string{
	StatusPending: {
		StatusConfirmed: "Confirm this booking?",
		StatusCancelled: "Cancel this booking? " + irreversibleWarning,
	},
	StatusConfirmed: {
		StatusInProgress: "Mark this booking as in progress?",
		StatusCancelled:  "Cancel this booking? " + irreversibleWarning,
		StatusNoShow:     "Mark this booking as a no-show? " + irreversibleWarning,
	},
	StatusInProgress: {
		StatusCompleted: "Mark this booking as completed?",
		StatusCancelled: "Cancel this booking? " + irreversibleWarning,
	},
}

// TransitionMessage returns the confirmation prompt for a status change, or an
// empty string when the pair is not a valid transition.
func TransitionMessage(from, to BookingStatus) string {
	return transitionMessages[from][to]
}
