// Package goalreconciler decides whether an executed transfer moved money
// into or out of a goal's linked account and adjusts the goal's saved
// balance. It performs no I/O; persisting the updated goal is the caller's
// job, as is making sure each transfer outcome is applied at most once.
package goalreconciler

import (
	"errors"
	"math"

	"github.com/bdewet/goalops/pkg/ledger"
)

type Direction int

const (
	Outgoing Direction = iota
	Incoming
)

func (d Direction) String() string {
	if d == Incoming {
		return "incoming"
	}

	return "outgoing"
}

var ErrInvalidAmount = errors.New("transfer amount must be positive")

// DetermineDirection compares the transfer endpoints against the goal's
// linked account. A goal without a linked account, or whose account is
// neither endpoint, defaults to Outgoing so a stray transfer can never
// inflate a balance it doesn't own. Total: every input yields a direction.
func DetermineDirection(goal ledger.Goal, sourceAccountID, destinationAccountID string) Direction {
	if goal.LinkedAccountID == "" {
		return Outgoing
	}

	if sourceAccountID == goal.LinkedAccountID {
		return Outgoing
	}

	if destinationAccountID == goal.LinkedAccountID {
		return Incoming
	}

	return Outgoing
}

// ApplyTransfer returns a copy of the goal with the saved balance adjusted by
// the transfer amount in the given direction, clamped at zero. Non-positive
// amounts are a contract violation and leave the goal unchanged.
//
// Applying the same outcome twice moves the balance twice; there is no
// built-in deduplication.
func ApplyTransfer(goal ledger.Goal, amount float64, direction Direction) (ledger.Goal, error) {
	if amount <= 0 {
		return goal, ErrInvalidAmount
	}

	delta := amount
	if direction == Outgoing {
		delta = -amount
	}

	goal.Saved = math.Max(0, goal.Saved+delta)

	return goal, nil
}

// ApplyOutcome reconciles a full transfer outcome against a goal.
func ApplyOutcome(goal ledger.Goal, outcome ledger.TransferOutcome) (ledger.Goal, Direction, error) {
	direction := DetermineDirection(goal, outcome.SourceAccountID, outcome.DestinationAccountID)
	updated, err := ApplyTransfer(goal, outcome.Amount, direction)

	return updated, direction, err
}
