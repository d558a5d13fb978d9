package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/bdewet/goalops/pkg/ledger"
	"github.com/bdewet/goalops/pkg/replay"
)

// Renders a replay report from a JSON transaction batch without touching the
// bank, influx or postgres. Useful for eyeballing categorization changes.
func main() {
	file := flag.String("file", "./transactions.json", "JSON file with an array of transactions")
	month := flag.Int("month", int(time.Now().Month()), "report month (1-12)")
	year := flag.Int("year", time.Now().Year(), "report year")

	flag.Parse()

	raw, err := os.ReadFile(*file)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	transactions := []ledger.Transaction{}

	err = json.Unmarshal(raw, &transactions)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	engine := replay.NewEngine(nil)
	report := engine.BuildReport(time.Month(*month), *year, transactions)

	fmt.Printf("%s %d\n", report.Month, report.Year)
	fmt.Printf("income %.2f, expense %.2f, net %.2f, savings rate %.1f%%\n",
		report.TotalIncome, report.TotalExpense, report.NetIncome, report.SavingsRate)
	fmt.Printf("health: %s (%s)\n", report.Health.Status, report.Health.Message)

	for _, bucket := range report.Categories {
		fmt.Printf("  %-22s %10.2f  %3d txns  %5.1f%%\n", bucket.Category, bucket.Amount, bucket.Count, bucket.Percentage)
	}

	if report.BiggestExpense != nil {
		fmt.Printf("biggest expense: %s (%.2f)\n", report.BiggestExpense.Description, report.BiggestExpense.Amount)
	}

	if report.MostFrequentVendor != nil {
		fmt.Printf("top vendor: %s (%d visits, %.2f)\n",
			report.MostFrequentVendor.Vendor, report.MostFrequentVendor.Count, report.MostFrequentVendor.Amount)
	}

	if report.Pattern.PeakDay != "" {
		fmt.Printf("peak day %s, quiet day %s\n", report.Pattern.PeakDay, report.Pattern.QuietDay)
	}

	fmt.Printf("average expense %.2f, weekday %.2f vs weekend %.2f\n",
		report.AverageExpense, report.WeekdaySpend, report.WeekendSpend)
}
