package replay

import (
	"time"

	"github.com/bdewet/goalops/pkg/ledger"
)

// CategoryBucket aggregates the debit transactions sharing one spending
// category.
type CategoryBucket struct {
	Category     string
	Amount       float64
	Count        int
	Percentage   float64
	Transactions []ledger.Transaction
}

type VendorSummary struct {
	Vendor string
	Count  int
	Amount float64
}

// SpendingPattern holds the busiest and quietest spending days of the month,
// formatted for display ("Monday, Aug 4"). Both are empty when the month had
// no dated debit transactions.
type SpendingPattern struct {
	PeakDay  string
	QuietDay string
}

type FinancialHealth struct {
	Status  string
	Message string
}

// HealthForSavingsRate classifies a savings rate (percentage) into one of
// four tiers.
func HealthForSavingsRate(rate float64) FinancialHealth {
	switch {
	case rate > 20:
		return FinancialHealth{Status: "Excellent", Message: "You're building wealth"}
	case rate > 10:
		return FinancialHealth{Status: "Good", Message: "Keep up the good work"}
	case rate > 0:
		return FinancialHealth{Status: "Fair", Message: "Room for improvement"}
	default:
		return FinancialHealth{Status: "Needs Attention", Message: "Consider reducing expenses"}
	}
}

// MonthlyReport is the one-shot analytics output for a calendar month. It is
// a plain value: building it twice from the same batch yields the same
// report.
type MonthlyReport struct {
	Month time.Month
	Year  int

	TotalIncome  float64
	TotalExpense float64
	NetIncome    float64
	SavingsRate  float64

	Categories         []CategoryBucket
	BiggestExpense     *ledger.Transaction
	MostFrequentVendor *VendorSummary
	Pattern            SpendingPattern
	AverageExpense     float64
	WeekdaySpend       float64
	WeekendSpend       float64
	Health             FinancialHealth
}

// TopCategory returns the highest-spend category, or empty when the month
// had no categorized expenses.
func (r MonthlyReport) TopCategory() string {
	if len(r.Categories) == 0 {
		return ""
	}

	return r.Categories[0].Category
}
