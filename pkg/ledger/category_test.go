package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategoryLookup(t *testing.T) {
	categories := DefaultCategoryMap()

	assert.Equal(t, "Shopping", categories.Category("CardPurchases"))
	assert.Equal(t, "Shopping", categories.Category("cardpurchases"))
	assert.Equal(t, "Instant Payments", categories.Category("PayShap"))
	assert.Equal(t, "Subscriptions & Bills", categories.Category("DEBITORDERS"))
	assert.Equal(t, "Bank Fees", categories.Category("FeesAndInterest"))
	assert.Equal(t, "Cash Withdrawals", categories.Category("ATMWithdrawals"))
	assert.Equal(t, "Transfers & Payments", categories.Category("OnlineBankingPayments"))
}

func TestCategoryLookupFallsBackToOther(t *testing.T) {
	categories := DefaultCategoryMap()

	assert.Equal(t, CategoryOther, categories.Category("VASTransactions"))
	assert.Equal(t, CategoryOther, categories.Category(""))
}

func TestDefaultCategoryMapReturnsCopies(t *testing.T) {
	categories := DefaultCategoryMap()
	categories["cardpurchases"] = "Groceries"

	assert.Equal(t, "Shopping", DefaultCategoryMap().Category("CardPurchases"))
}
