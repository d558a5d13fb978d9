// Package replayrunner wires the monthly replay together: it fans out
// transaction fetches across the configured accounts, runs the analytics
// engine over the combined batch, and persists the report to influx and
// postgres for dashboards.
package replayrunner

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"k8s.io/klog"

	"github.com/bdewet/goalops/internal/bankclient"
	"github.com/bdewet/goalops/internal/influxhelper"
	"github.com/bdewet/goalops/internal/postgresutils"
	"github.com/bdewet/goalops/internal/txsource"
	"github.com/bdewet/goalops/pkg/config"
	"github.com/bdewet/goalops/pkg/ledger"
	"github.com/bdewet/goalops/pkg/replay"
)

// MonthlyReplayRunner runs the replay for one calendar month. Zero Month and
// Year resolve to the previous month, which is what a cron schedule wants.
type MonthlyReplayRunner struct {
	Month int
	Year  int
}

func (r MonthlyReplayRunner) Run() error {
	month, year := r.window()
	from, to := monthBounds(month, year)

	source, err := newSource()
	if err != nil {
		return err
	}

	transactions, err := fetchTransactions(source, config.CurrentBankingConfig().Accounts, from, to)
	if err != nil {
		return err
	}

	klog.Infof("Building %s %d replay from %d transactions across %d accounts\n",
		month, year, len(transactions), len(config.CurrentBankingConfig().Accounts))

	engine := replay.NewEngine(categoryMap())
	report := engine.BuildReport(month, year, transactions)

	err = writeReportToInflux(report)
	if err != nil {
		return err
	}

	err = writeReportToSQL(report)
	if err != nil {
		return err
	}

	klog.Infof("Replay for %s %d: income %.2f, expense %.2f, savings rate %.1f%%, health %s\n",
		report.Month, report.Year, report.TotalIncome, report.TotalExpense, report.SavingsRate, report.Health.Status)

	return nil
}

func (r MonthlyReplayRunner) window() (time.Month, int) {
	if r.Month >= 1 && r.Month <= 12 && r.Year > 0 {
		return time.Month(r.Month), r.Year
	}

	previous := time.Now().UTC().AddDate(0, -1, 0)

	return previous.Month(), previous.Year()
}

func monthBounds(month time.Month, year int) (time.Time, time.Time) {
	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, -1)

	return from, to
}

func newSource() (txsource.Source, error) {
	cfg := config.CurrentReplayConfig()

	switch cfg.Source {
	case "", "bank":
		return bankclient.New(
			config.CurrentBankingConfig().Endpoint,
			config.CurrentBankingSecrets().ClientID,
			config.CurrentBankingSecrets().ClientSecret,
			config.CurrentBankingSecrets().APIKey,
		), nil
	case "ynab":
		return txsource.NewYnabSource(config.CurrentYnabSecrets().YnabAccessToken, cfg.YnabBudgetID), nil
	default:
		return nil, fmt.Errorf("unknown replay source: %s", cfg.Source)
	}
}

func fetchTransactions(source txsource.Source, accounts []config.WatchedAccount, from, to time.Time) ([]ledger.Transaction, error) {
	wg := sync.WaitGroup{}
	mutex := sync.Mutex{}

	transactions := []ledger.Transaction{}

	var fetchErr error = nil

	for _, account := range accounts {
		wg.Add(1)

		go func(account config.WatchedAccount) {
			defer wg.Done()

			batch, err := source.ListTransactions(account.ID, from, to)

			mutex.Lock()
			defer mutex.Unlock()

			if err != nil {
				fetchErr = fmt.Errorf("fetching transactions for account %s: %w", account.Name, err)
				return
			}

			transactions = append(transactions, batch...)
		}(account)
	}

	wg.Wait()

	if fetchErr != nil {
		return nil, fetchErr
	}

	return transactions, nil
}

// categoryMap merges configured overrides on top of the built-in policy.
func categoryMap() ledger.CategoryMap {
	categories := ledger.DefaultCategoryMap()

	for transactionType, category := range config.CurrentReplayConfig().Categories {
		categories[strings.ToLower(transactionType)] = category
	}

	return categories
}

func writeReportToSQL(report replay.MonthlyReport) error {
	db, err := postgresutils.CreatePostgresClient(config.CurrentReplayConfig().SQL.Database)
	if err != nil {
		return fmt.Errorf("Error connecting to postgres DB: %s", err)
	}
	defer db.Close()

	return upsertReport(db, report)
}

func writeReportToInflux(report replay.MonthlyReport) error {
	influxClient, err := influxhelper.CreateInfluxClient()
	if err != nil {
		return fmt.Errorf("Error creating InfluxDB Client: %s", err.Error())
	}
	defer influxClient.Close()

	err = influxhelper.CreateDatabase(influxClient, config.CurrentReplayConfig().Influx.Database)
	if err != nil {
		return fmt.Errorf("Error creating DB: %s", err.Error())
	}

	return replaceReportPoints(influxClient, report)
}
