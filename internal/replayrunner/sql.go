package replayrunner

import (
	"context"
	"fmt"
	"time"

	"github.com/uptrace/bun"
	"k8s.io/klog"

	"github.com/bdewet/goalops/internal/postgresutils"
	"github.com/bdewet/goalops/pkg/replay"
)

type SQLMonthlyReport struct {
	bun.BaseModel  `bun:"table:monthly_reports"`
	ID             int64  `bun:",pk,autoincrement"`
	Key            string `bun:",pk,unique"`
	Month          time.Time
	TotalIncome    float64
	TotalExpense   float64
	NetIncome      float64
	SavingsRate    float64
	AverageExpense float64
	WeekdaySpend   float64
	WeekendSpend   float64
	TopCategory    string
	TopVendor      string
	PeakDay        string
	QuietDay       string
	HealthStatus   string
	UpdatedAt      time.Time
}

func upsertReport(db *bun.DB, report replay.MonthlyReport) error {
	model := (*SQLMonthlyReport)(nil)

	_, err := db.NewCreateTable().Model(model).IfNotExists().Exec(context.Background())
	if err != nil {
		return fmt.Errorf("Error creating table: %s", err)
	}

	month := time.Date(report.Year, report.Month, 1, 0, 0, 0, 0, time.UTC)

	row := SQLMonthlyReport{
		Key:            month.Format("2006-01"),
		Month:          month,
		TotalIncome:    report.TotalIncome,
		TotalExpense:   report.TotalExpense,
		NetIncome:      report.NetIncome,
		SavingsRate:    report.SavingsRate,
		AverageExpense: report.AverageExpense,
		WeekdaySpend:   report.WeekdaySpend,
		WeekendSpend:   report.WeekendSpend,
		TopCategory:    report.TopCategory(),
		PeakDay:        report.Pattern.PeakDay,
		QuietDay:       report.Pattern.QuietDay,
		HealthStatus:   report.Health.Status,
		UpdatedAt:      time.Now(),
	}

	if report.MostFrequentVendor != nil {
		row.TopVendor = report.MostFrequentVendor.Vendor
	}

	_, err = db.NewInsert().
		Model(&row).
		On("CONFLICT (key) DO UPDATE").
		Set(postgresutils.TableSetString(db, model, "id", "key")).
		Exec(context.Background())
	if err != nil {
		return fmt.Errorf("error writing report to sql: %w", err)
	}

	klog.Infof("Wrote %s report row to sql\n", row.Key)

	return nil
}
