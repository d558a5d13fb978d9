package replayrunner

import (
	"fmt"
	"time"

	influx "github.com/influxdata/influxdb/client/v2"
	"k8s.io/klog"

	"github.com/bdewet/goalops/internal/influxhelper"
	"github.com/bdewet/goalops/pkg/config"
	"github.com/bdewet/goalops/pkg/replay"
)

// replaceReportPoints clears the month's existing series before writing.
// The summary and category points carry mutable tags (health, top vendor),
// so a plain rewrite after the data changed would stack new series next to
// the stale ones and dashboards would double count the month.
func replaceReportPoints(influxClient influx.Client, report replay.MonthlyReport) error {
	database := config.CurrentReplayConfig().Influx.Database
	measurement := config.CurrentReplayConfig().Influx.Measurement

	for _, m := range []string{measurement, measurement + "_categories"} {
		err := influxhelper.DropSeries(influxClient, database, m, "month", reportMonthTag(report))
		if err != nil {
			return fmt.Errorf("Error clearing report points for %s: %s", reportMonthTag(report), err.Error())
		}
	}

	return writeReportPoints(influxClient, report)
}

func writeReportPoints(influxClient influx.Client, report replay.MonthlyReport) error {
	bp, err := influx.NewBatchPoints(influx.BatchPointsConfig{
		Database:  config.CurrentReplayConfig().Influx.Database,
		Precision: "h",
	})
	if err != nil {
		return fmt.Errorf("Error creating batch points: %s", err.Error())
	}

	points, err := reportPoints(report, config.CurrentReplayConfig().Influx.Measurement)
	if err != nil {
		return err
	}

	bp.AddPoints(points)

	err = influxClient.Write(bp)
	if err != nil {
		return fmt.Errorf("Error writing report to influx: %s", err.Error())
	}

	klog.Infof("Wrote %d report points to influx measurement %s\n", len(points), config.CurrentReplayConfig().Influx.Measurement)

	return nil
}

func reportMonthTag(report replay.MonthlyReport) string {
	return time.Date(report.Year, report.Month, 1, 0, 0, 0, 0, time.UTC).Format("2006-01")
}

// reportPoints flattens a monthly report into one summary point plus one
// point per category bucket, all timestamped at the start of the month.
func reportPoints(report replay.MonthlyReport, measurement string) ([]*influx.Point, error) {
	timestamp := time.Date(report.Year, report.Month, 1, 0, 0, 0, 0, time.UTC)
	monthTag := reportMonthTag(report)

	summaryFields := map[string]interface{}{
		"total_income":    report.TotalIncome,
		"total_expense":   report.TotalExpense,
		"net_income":      report.NetIncome,
		"savings_rate":    report.SavingsRate,
		"average_expense": report.AverageExpense,
		"weekday_spend":   report.WeekdaySpend,
		"weekend_spend":   report.WeekendSpend,
	}

	summaryTags := map[string]string{
		"month":  monthTag,
		"health": report.Health.Status,
	}

	if report.BiggestExpense != nil {
		summaryFields["biggest_expense"] = report.BiggestExpense.Amount
		summaryTags["biggest_expense_vendor"] = report.BiggestExpense.Description
	}

	if report.MostFrequentVendor != nil {
		summaryFields["top_vendor_count"] = report.MostFrequentVendor.Count
		summaryTags["top_vendor"] = report.MostFrequentVendor.Vendor
	}

	summary, err := influx.NewPoint(measurement, summaryTags, summaryFields, timestamp)
	if err != nil {
		return nil, fmt.Errorf("Error adding new point: %s", err.Error())
	}

	points := []*influx.Point{summary}

	for _, bucket := range report.Categories {
		pt, err := influx.NewPoint(
			measurement+"_categories",
			map[string]string{
				"month":    monthTag,
				"category": bucket.Category,
			},
			map[string]interface{}{
				"amount":     bucket.Amount,
				"count":      bucket.Count,
				"percentage": bucket.Percentage,
			},
			timestamp,
		)
		if err != nil {
			return nil, fmt.Errorf("Error adding new point: %s", err.Error())
		}

		points = append(points, pt)
	}

	return points, nil
}
