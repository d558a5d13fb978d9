// Package replay turns a month's worth of bank transactions into a
// retrospective analytics report: totals, savings rate, category breakdown,
// outliers, temporal spending patterns and a financial-health tier. All
// computations are pure functions over the batch; transactions with an
// unrecognized direction marker or an unparsable date are silently excluded
// from the aggregates they cannot contribute to.
package replay

import (
	"sort"
	"time"

	"github.com/bdewet/goalops/pkg/ledger"
)

const displayDayLayout = "Monday, Jan 2"

// Engine computes monthly reports with an injected categorization policy.
type Engine struct {
	categories ledger.CategoryMap
}

// NewEngine returns an engine using the given category map, falling back to
// the built-in policy when nil.
func NewEngine(categories ledger.CategoryMap) *Engine {
	if categories == nil {
		categories = ledger.DefaultCategoryMap()
	}

	return &Engine{categories: categories}
}

// BuildReport computes the full monthly report for a transaction batch.
func (e *Engine) BuildReport(month time.Month, year int, transactions []ledger.Transaction) MonthlyReport {
	income, expense := Totals(transactions)
	net := income - expense
	rate := savingsRate(income, net)
	debits := debitTransactions(transactions)

	weekday, weekend := WeekdaySplit(debits)

	return MonthlyReport{
		Month:              month,
		Year:               year,
		TotalIncome:        income,
		TotalExpense:       expense,
		NetIncome:          net,
		SavingsRate:        rate,
		Categories:         e.CategoryBreakdown(debits),
		BiggestExpense:     BiggestExpense(debits),
		MostFrequentVendor: MostFrequentVendor(debits),
		Pattern:            DailyPattern(debits),
		AverageExpense:     AverageExpense(debits),
		WeekdaySpend:       weekday,
		WeekendSpend:       weekend,
		Health:             HealthForSavingsRate(rate),
	}
}

// Totals sums credit and debit amounts separately. Transactions without a
// recognized direction marker count toward neither.
func Totals(transactions []ledger.Transaction) (income, expense float64) {
	for _, t := range transactions {
		switch {
		case t.IsCredit():
			income += t.Amount
		case t.IsDebit():
			expense += t.Amount
		}
	}

	return income, expense
}

func savingsRate(income, net float64) float64 {
	if income <= 0 {
		return 0
	}

	return net / income * 100
}

func debitTransactions(transactions []ledger.Transaction) []ledger.Transaction {
	debits := make([]ledger.Transaction, 0, len(transactions))

	for _, t := range transactions {
		if t.IsDebit() {
			debits = append(debits, t)
		}
	}

	return debits
}

// CategoryBreakdown groups debit transactions by mapped category and ranks
// the buckets by amount, highest first. Equal amounts order by label so the
// ranking is stable across runs.
func (e *Engine) CategoryBreakdown(debits []ledger.Transaction) []CategoryBucket {
	var totalExpense float64
	buckets := map[string]*CategoryBucket{}
	order := []string{}

	for _, t := range debits {
		category := e.categories.Category(t.TransactionType)

		bucket, ok := buckets[category]
		if !ok {
			bucket = &CategoryBucket{Category: category}
			buckets[category] = bucket
			order = append(order, category)
		}

		bucket.Amount += t.Amount
		bucket.Count++
		bucket.Transactions = append(bucket.Transactions, t)
		totalExpense += t.Amount
	}

	ranked := make([]CategoryBucket, 0, len(order))

	for _, category := range order {
		bucket := *buckets[category]
		if totalExpense > 0 {
			bucket.Percentage = bucket.Amount / totalExpense * 100
		}

		ranked = append(ranked, bucket)
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Amount != ranked[j].Amount {
			return ranked[i].Amount > ranked[j].Amount
		}

		return ranked[i].Category < ranked[j].Category
	})

	return ranked
}

// BiggestExpense returns the debit transaction with the largest amount, the
// first-encountered one on ties, or nil for an empty batch.
func BiggestExpense(debits []ledger.Transaction) *ledger.Transaction {
	var biggest *ledger.Transaction

	for i := range debits {
		if biggest == nil || debits[i].Amount > biggest.Amount {
			biggest = &debits[i]
		}
	}

	if biggest == nil {
		return nil
	}

	found := *biggest

	return &found
}

// MostFrequentVendor groups debits by raw description. No normalization:
// "Woolworths #123" and "Woolworths #456" are distinct vendors. Ties on
// count go to the vendor seen first.
func MostFrequentVendor(debits []ledger.Transaction) *VendorSummary {
	vendors := map[string]*VendorSummary{}
	order := []string{}

	for _, t := range debits {
		summary, ok := vendors[t.Description]
		if !ok {
			summary = &VendorSummary{Vendor: t.Description}
			vendors[t.Description] = summary
			order = append(order, t.Description)
		}

		summary.Count++
		summary.Amount += t.Amount
	}

	var top *VendorSummary

	for _, vendor := range order {
		if top == nil || vendors[vendor].Count > top.Count {
			top = vendors[vendor]
		}
	}

	if top == nil {
		return nil
	}

	found := *top

	return &found
}

// DailyPattern finds the peak and quietest spending days among days that had
// at least one dated debit transaction.
func DailyPattern(debits []ledger.Transaction) SpendingPattern {
	daily := map[string]float64{}

	for _, t := range debits {
		if _, err := t.Date(); err != nil {
			continue
		}

		daily[t.TransactionDate] += t.Amount
	}

	if len(daily) == 0 {
		return SpendingPattern{}
	}

	days := make([]string, 0, len(daily))
	for day := range daily {
		days = append(days, day)
	}

	sort.Strings(days)

	peak, quiet := days[0], days[0]

	for _, day := range days[1:] {
		if daily[day] > daily[peak] {
			peak = day
		}

		if daily[day] < daily[quiet] {
			quiet = day
		}
	}

	return SpendingPattern{
		PeakDay:  formatDay(peak),
		QuietDay: formatDay(quiet),
	}
}

func formatDay(day string) string {
	t, err := time.Parse(ledger.DateLayout, day)
	if err != nil {
		return day
	}

	return t.Format(displayDayLayout)
}

// AverageExpense is the mean debit transaction size, 0 for an empty batch.
func AverageExpense(debits []ledger.Transaction) float64 {
	if len(debits) == 0 {
		return 0
	}

	var total float64
	for _, t := range debits {
		total += t.Amount
	}

	return total / float64(len(debits))
}

// WeekdaySplit buckets debit amounts into weekday and weekend spend.
// Transactions with unparsable dates are excluded.
func WeekdaySplit(debits []ledger.Transaction) (weekday, weekend float64) {
	for _, t := range debits {
		date, err := t.Date()
		if err != nil {
			continue
		}

		switch date.Weekday() {
		case time.Saturday, time.Sunday:
			weekend += t.Amount
		default:
			weekday += t.Amount
		}
	}

	return weekday, weekend
}
