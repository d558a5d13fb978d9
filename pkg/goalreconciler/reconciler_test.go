package goalreconciler

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bdewet/goalops/pkg/ledger"
)

func TestDetermineDirection(t *testing.T) {
	goal := ledger.Goal{ID: "g1", LinkedAccountID: "A"}

	assert.Equal(t, Outgoing, DetermineDirection(goal, "A", "B"))
	assert.Equal(t, Incoming, DetermineDirection(goal, "B", "A"))

	// the linked account is neither endpoint
	assert.Equal(t, Outgoing, DetermineDirection(goal, "B", "C"))

	// beneficiary payment: no destination account
	assert.Equal(t, Outgoing, DetermineDirection(goal, "A", ""))
	assert.Equal(t, Outgoing, DetermineDirection(goal, "B", ""))
}

func TestDetermineDirectionUnlinkedGoal(t *testing.T) {
	goal := ledger.Goal{ID: "g1"}

	// an unlinked goal always reads as outgoing so its balance can't be
	// inflated by a transfer it doesn't own
	assert.Equal(t, Outgoing, DetermineDirection(goal, "A", "B"))
	assert.Equal(t, Outgoing, DetermineDirection(goal, "", ""))
}

func TestApplyTransferOutgoing(t *testing.T) {
	goal := ledger.Goal{ID: "g1", Name: "Emergency fund", Target: 1000, Saved: 100, LinkedAccountID: "A"}

	updated, err := ApplyTransfer(goal, 40, Outgoing)
	assert.NoError(t, err)
	assert.Equal(t, 60.0, updated.Saved)

	// everything else is untouched
	assert.Equal(t, goal.Name, updated.Name)
	assert.Equal(t, goal.Target, updated.Target)
	assert.Equal(t, goal.LinkedAccountID, updated.LinkedAccountID)
}

func TestApplyTransferIncoming(t *testing.T) {
	goal := ledger.Goal{ID: "g1", Saved: 20, LinkedAccountID: "A"}

	updated, err := ApplyTransfer(goal, 500, Incoming)
	assert.NoError(t, err)
	assert.Equal(t, 520.0, updated.Saved)
}

func TestApplyTransferClampsAtZero(t *testing.T) {
	goal := ledger.Goal{ID: "g1", Saved: 30}

	updated, err := ApplyTransfer(goal, 1000, Outgoing)
	assert.NoError(t, err)
	assert.Equal(t, 0.0, updated.Saved)
}

func TestApplyTransferRejectsNonPositiveAmounts(t *testing.T) {
	goal := ledger.Goal{ID: "g1", Saved: 30}

	updated, err := ApplyTransfer(goal, 0, Incoming)
	assert.ErrorIs(t, err, ErrInvalidAmount)
	assert.Equal(t, goal, updated)

	updated, err = ApplyTransfer(goal, -5, Outgoing)
	assert.ErrorIs(t, err, ErrInvalidAmount)
	assert.Equal(t, goal, updated)
}

func TestApplyTransferIsNotIdempotent(t *testing.T) {
	goal := ledger.Goal{ID: "g1", Saved: 100, LinkedAccountID: "A"}

	// applying the same outcome twice moves the balance twice; dedup is the
	// caller's problem
	once, err := ApplyTransfer(goal, 25, Incoming)
	assert.NoError(t, err)
	twice, err := ApplyTransfer(once, 25, Incoming)
	assert.NoError(t, err)

	assert.Equal(t, 125.0, once.Saved)
	assert.Equal(t, 150.0, twice.Saved)
}

func TestApplyOutcome(t *testing.T) {
	goal := ledger.Goal{ID: "g1", Saved: 100, Target: 1000, LinkedAccountID: "A"}
	outcome := ledger.TransferOutcome{SourceAccountID: "A", DestinationAccountID: "B", Amount: 40}

	updated, direction, err := ApplyOutcome(goal, outcome)
	assert.NoError(t, err)
	assert.Equal(t, Outgoing, direction)
	assert.Equal(t, 60.0, updated.Saved)
}

func TestDirectionString(t *testing.T) {
	assert.Equal(t, "outgoing", Outgoing.String())
	assert.Equal(t, "incoming", Incoming.String())
}
