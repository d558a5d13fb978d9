// Package goalrunner holds the goal-facing tasks: executing a transfer and
// reconciling it against a linked goal, and listing goals with progress.
package goalrunner

import (
	"errors"
	"fmt"

	"k8s.io/klog"

	"github.com/bdewet/goalops/internal/bankclient"
	"github.com/bdewet/goalops/internal/goalstore"
	"github.com/bdewet/goalops/pkg/config"
	"github.com/bdewet/goalops/pkg/goalreconciler"
)

// TransferRunner executes one transfer (account to account, or to a saved
// beneficiary) and, when a goal is named, reconciles the goal's saved
// balance. Each run applies the outcome exactly once; re-running the task
// for the same transfer moves the balance again.
type TransferRunner struct {
	SourceAccountID      string
	DestinationAccountID string
	BeneficiaryID        string
	Amount               float64
	MyReference          string
	TheirReference       string
	GoalID               string
}

func (r TransferRunner) Run() error {
	if r.Amount <= 0 {
		return goalreconciler.ErrInvalidAmount
	}

	if r.SourceAccountID == "" {
		return errors.New("a source account is required")
	}

	if (r.DestinationAccountID == "") == (r.BeneficiaryID == "") {
		return errors.New("exactly one of a destination account or a beneficiary is required")
	}

	bank := bankclient.New(
		config.CurrentBankingConfig().Endpoint,
		config.CurrentBankingSecrets().ClientID,
		config.CurrentBankingSecrets().ClientSecret,
		config.CurrentBankingSecrets().APIKey,
	)

	var result bankclient.TransferResult
	var err error

	if r.BeneficiaryID != "" {
		result, err = bank.PayBeneficiary(r.SourceAccountID, r.BeneficiaryID, r.Amount, r.MyReference, r.TheirReference)
	} else {
		result, err = bank.Transfer(r.SourceAccountID, r.DestinationAccountID, r.Amount, r.MyReference, r.TheirReference)
	}

	// only a definitive success or accepted outcome may touch goal balances
	if err != nil {
		if errors.Is(err, bankclient.ErrTransferTimedOut) {
			return fmt.Errorf("transfer outcome unknown, goal left untouched: %w", err)
		}

		return err
	}

	klog.Infof("Transfer of %.2f from %s completed with status %s\n", r.Amount, r.SourceAccountID, result.Status)

	if r.GoalID == "" {
		return nil
	}

	store, err := goalstore.Open()
	if err != nil {
		return err
	}

	return reconcileGoal(store, r.GoalID, result)
}

func reconcileGoal(store goalstore.Store, goalID string, result bankclient.TransferResult) error {
	goal, err := store.Goal(goalID)
	if err != nil {
		return err
	}

	updated, direction, err := goalreconciler.ApplyOutcome(goal, result.Outcome)
	if err != nil {
		return err
	}

	err = store.UpdateSaved(goal.ID, updated.Saved)
	if err != nil {
		return err
	}

	klog.Infof("Updated goal %q: %s %.2f, new total %.2f (%.0f%% of target)\n",
		goal.Name, direction, result.Outcome.Amount, updated.Saved, updated.Progress()*100)

	return nil
}

// ListGoalsRunner prints every goal in the store with its progress.
type ListGoalsRunner struct{}

func (ListGoalsRunner) Run() error {
	store, err := goalstore.Open()
	if err != nil {
		return err
	}

	goals, err := store.List()
	if err != nil {
		return err
	}

	for _, goal := range goals {
		tracked := ""
		if goal.IsTracked {
			tracked = " [tracked]"
		}

		// the listing is the task's output: ids and progress go to stdout,
		// klog keeps diagnostics on stderr
		fmt.Printf("%s: %.2f / %.2f (%.0f%%)%s\n", goal.Name, goal.Saved, goal.Target, goal.Progress()*100, tracked)
	}

	klog.Infof("Listed %d goals\n", len(goals))

	return nil
}

// ListBeneficiariesRunner prints the saved beneficiaries so the transfer
// task's -beneficiary id can be picked off the list.
type ListBeneficiariesRunner struct{}

func (ListBeneficiariesRunner) Run() error {
	bank := bankclient.New(
		config.CurrentBankingConfig().Endpoint,
		config.CurrentBankingSecrets().ClientID,
		config.CurrentBankingSecrets().ClientSecret,
		config.CurrentBankingSecrets().APIKey,
	)

	beneficiaries, err := bank.ListBeneficiaries()
	if err != nil {
		return err
	}

	for _, beneficiary := range beneficiaries {
		fmt.Printf("%s: %s (%s)\n", beneficiary.BeneficiaryID, beneficiary.Name, beneficiary.AccountNumber)
	}

	klog.Infof("Listed %d beneficiaries\n", len(beneficiaries))

	return nil
}
