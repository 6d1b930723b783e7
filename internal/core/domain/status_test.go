package domain_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/okairos/servibook/internal/core/domain"
)

func TestValidTransitions_Table(t *testing.T) {
	cases := []struct {
		from    domain.BookingStatus
		allowed []domain.BookingStatus
	}{
		{domain.StatusPending, []domain.BookingStatus{domain.StatusConfirmed, domain.StatusCancelled}},
		{domain.StatusConfirmed, []domain.BookingStatus{domain.StatusInProgress, domain.StatusCancelled, domain.StatusNoShow}},
		{domain.StatusInProgress, []domain.BookingStatus{domain.StatusCompleted, domain.StatusCancelled}},
		{domain.StatusCompleted, nil},
		{domain.StatusCancelled, nil},
		{domain.StatusNoShow, nil},
	}

	for _, tc := range cases {
		t.Run(string(tc.from), func(t *testing.T) {
			got := domain.ValidTransitions(tc.from)
			assert.ElementsMatch(t, tc.allowed, got)
			for _, to := range tc.allowed {
				assert.True(t, tc.from.CanTransitionTo(to))
			}
		})
	}
}

func TestCanTransitionTo_RejectsSelfAndSkips(t *testing.T) {
	// Same-status pairs are never in the table.
	for _, s := range []domain.BookingStatus{
		domain.StatusPending, domain.StatusConfirmed, domain.StatusInProgress,
		domain.StatusCompleted, domain.StatusCancelled, domain.StatusNoShow,
	} {
		assert.False(t, s.CanTransitionTo(s), "self transition for %s", s)
	}

	// One-step skips are rejected too.
	assert.False(t, domain.StatusPending.CanTransitionTo(domain.StatusCompleted))
	assert.False(t, domain.StatusPending.CanTransitionTo(domain.StatusInProgress))
	assert.False(t, domain.StatusConfirmed.CanTransitionTo(domain.StatusCompleted))
}

func TestUnknownStatus_HasNoTransitions(t *testing.T) {
	unknown := domain.BookingStatus("archived")

	assert.False(t, unknown.IsValid())
	assert.Empty(t, domain.ValidTransitions(unknown))
	assert.False(t, unknown.CanTransitionTo(domain.StatusConfirmed))
	// Unknown is permissive, not an error: available statuses still lead with it.
	assert.Equal(t, []domain.BookingStatus{unknown}, domain.AvailableStatuses(unknown))
}

func TestAvailableStatuses_CurrentFirst(t *testing.T) {
	for _, s := range []domain.BookingStatus{
		domain.StatusPending, domain.StatusConfirmed, domain.StatusInProgress,
		domain.StatusCompleted, domain.StatusCancelled, domain.StatusNoShow,
	} {
		got := domain.AvailableStatuses(s)
		assert.Equal(t, s, got[0], "current status must come first")
		assert.Len(t, got, 1+len(domain.ValidTransitions(s)))
	}
}

func TestIsTerminal(t *testing.T) {
	assert.True(t, domain.StatusCompleted.IsTerminal())
	assert.True(t, domain.StatusCancelled.IsTerminal())
	assert.True(t, domain.StatusNoShow.IsTerminal())
	assert.False(t, domain.StatusPending.IsTerminal())
	assert.False(t, domain.BookingStatus("archived").IsTerminal(), "unknown status is not terminal")
}

func TestTransitionMessages_IrreversibleWording(t *testing.T) {
	// Every valid transition into a destructive terminal state warns the
	// operator; the message table must stay in sync with the transition table.
	for _, from := range []domain.BookingStatus{
		domain.StatusPending, domain.StatusConfirmed, domain.StatusInProgress,
	} {
		for _, to := range domain.ValidTransitions(from) {
			msg := domain.TransitionMessage(from, to)
			assert.NotEmpty(t, msg, "missing message for %s -> %s", from, to)

			if to == domain.StatusCancelled || to == domain.StatusNoShow {
				assert.True(t, strings.Contains(msg, "cannot be undone"),
					"%s -> %s must warn about irreversibility", from, to)
			}
		}
	}

	assert.Empty(t, domain.TransitionMessage(domain.StatusPending, domain.StatusCompleted),
		"invalid transitions have no message")
}
