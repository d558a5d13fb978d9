package txsource

import (
	"fmt"
	"time"

	"github.com/davidsteinsland/ynab-go/ynab"

	"github.com/bdewet/goalops/pkg/ledger"
)

const milliunitsPerUnit = 1000.0

// YnabSource adapts a YNAB budget into a transaction source. YNAB reports
// signed milliunit amounts with no direction field, so amounts are folded
// into the unsigned-magnitude + CREDIT/DEBIT convention here, at the
// boundary.
type YnabSource struct {
	client   *ynab.Client
	budgetID string
}

func NewYnabSource(accessToken, budgetID string) *YnabSource {
	return &YnabSource{
		client:   ynab.NewDefaultClient(accessToken),
		budgetID: budgetID,
	}
}

func (s *YnabSource) ListTransactions(accountID string, from, to time.Time) ([]ledger.Transaction, error) {
	details, err := s.client.TransactionsService.List(s.budgetID)
	if err != nil {
		return nil, fmt.Errorf("Error getting ynab transactions: %s", err.Error())
	}

	transactions := []ledger.Transaction{}

	for i := range details {
		if details[i].AccountId != accountID {
			continue
		}

		date, err := time.Parse(ledger.DateLayout, details[i].Date)
		if err != nil || date.Before(from) || date.After(to) {
			continue
		}

		transactions = append(transactions, normalize(details[i]))
	}

	return transactions, nil
}

func normalize(detail ynab.TransactionDetail) ledger.Transaction {
	amount := float64(detail.Amount) / milliunitsPerUnit

	direction := ledger.TypeCredit
	if amount < 0 {
		direction = ledger.TypeDebit
		amount = -amount
	}

	return ledger.Transaction{
		ID:              detail.Id,
		AccountID:       detail.AccountId,
		Type:            direction,
		Description:     detail.PayeeName,
		Amount:          amount,
		TransactionDate: detail.Date,
	}
}
