package ledger

import "strings"

// CategoryOther is the fallback for transaction types with no mapping.
const CategoryOther = "Other"

// CategoryMap maps a bank transaction type to a display spending category.
// Lookups are case-insensitive; keys must be stored lower case.
type CategoryMap map[string]string

// DefaultCategoryMap returns a fresh copy of the built-in categorization
// policy so callers can extend it without affecting other engines.
func DefaultCategoryMap() CategoryMap {
	return CategoryMap{
		"cardpurchases":         "Shopping",
		"atmwithdrawals":        "Cash Withdrawals",
		"onlinebankingpayments": "Transfers & Payments",
		"payshap":               "Instant Payments",
		"debitorders":           "Subscriptions & Bills",
		"feesandinterest":       "Bank Fees",
	}
}

func (m CategoryMap) Category(transactionType string) string {
	if category, ok := m[strings.ToLower(transactionType)]; ok {
		return category
	}

	return CategoryOther
}
