package txsource

import (
	"testing"

	"github.com/davidsteinsland/ynab-go/ynab"
	"github.com/stretchr/testify/assert"

	"github.com/bdewet/goalops/pkg/ledger"
)

func TestNormalizeDebit(t *testing.T) {
	detail := ynab.TransactionDetail{
		PayeeName: "Checkers",
	}
	detail.Id = "t1"
	detail.AccountId = "a1"
	detail.Date = "2025-08-02"
	detail.Amount = -149500

	transaction := normalize(detail)

	assert.Equal(t, ledger.TypeDebit, transaction.Type)
	assert.Equal(t, 149.5, transaction.Amount)
	assert.Equal(t, "Checkers", transaction.Description)
	assert.Equal(t, "2025-08-02", transaction.TransactionDate)
}

func TestNormalizeCredit(t *testing.T) {
	detail := ynab.TransactionDetail{
		PayeeName: "Employer",
	}
	detail.Id = "t2"
	detail.AccountId = "a1"
	detail.Date = "2025-08-25"
	detail.Amount = 5000000

	transaction := normalize(detail)

	assert.Equal(t, ledger.TypeCredit, transaction.Type)
	assert.Equal(t, 5000.0, transaction.Amount)
}
