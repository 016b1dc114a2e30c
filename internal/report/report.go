// Package report renders the audit outputs: the human-readable performance
// summary and the daily/hourly CSV series that external charting consumes.
// No currency conversion and no image rendering happens here.
package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"trade-audit/internal/types"
)

const (
	summaryFile = "performance_summary.txt"
	dailyFile   = "daily_series.csv"
	hourlyFile  = "hourly_series.csv"
)

// Write renders all report artifacts into dir and returns the path of the
// text summary.
func Write(dir string, res *types.AuditResult, currency string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	if err := writeDailySeries(filepath.Join(dir, dailyFile), res.Daily); err != nil {
		return "", err
	}
	if err := writeHourlySeries(filepath.Join(dir, hourlyFile), res.Hourly); err != nil {
		return "", err
	}
	summaryPath := filepath.Join(dir, summaryFile)
	if err := writeSummary(summaryPath, res, currency); err != nil {
		return "", err
	}
	return summaryPath, nil
}

func writeSummary(path string, res *types.AuditResult, currency string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	m := res.Metrics
	meta := res.Meta
	rule := strings.Repeat("=", 66)
	thin := strings.Repeat("-", 66)

	fmt.Fprintln(f, rule)
	fmt.Fprintln(f, " TRADING PERFORMANCE AUDIT REPORT")
	fmt.Fprintln(f, rule)
	fmt.Fprintf(f, "Audit Date:       %s\n", time.Now().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(f, "Data Source:      %s\n", meta.Source)
	fmt.Fprintf(f, "Total Executions: %d\n", meta.TotalExecutions)
	fmt.Fprintf(f, "Dropped Rows:     %d\n", meta.DroppedRows)
	fmt.Fprintf(f, "Segments:         %s\n\n", strings.Join(meta.Segments, ", "))

	fmt.Fprintln(f, thin)
	fmt.Fprintln(f, " KEY PERFORMANCE METRICS")
	fmt.Fprintln(f, thin)
	fmt.Fprintf(f, "Net Profit (Realized):  %s %.2f\n", currency, m.NetProfit)
	fmt.Fprintf(f, "Profit Factor:          %.2f\n", m.ProfitFactor)
	fmt.Fprintf(f, "Daily Win Rate:         %.1f%%\n", m.WinRate)
	fmt.Fprintf(f, "Risk/Reward Ratio:      1 : %.2f\n", m.RiskReward)
	fmt.Fprintf(f, "Max Drawdown:           %s %.0f\n\n", currency, m.MaxDrawdown)

	fmt.Fprintln(f, thin)
	fmt.Fprintln(f, " AVERAGE TRADE STATISTICS")
	fmt.Fprintln(f, thin)
	fmt.Fprintf(f, "Avg Daily Win:          %s %.2f\n", currency, m.AvgDailyWin)
	fmt.Fprintf(f, "Avg Daily Loss:         %s %.2f\n\n", currency, m.AvgDailyLoss)

	fmt.Fprintln(f, rule)
	return nil
}

func writeDailySeries(path string, daily []types.DailyRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"date", "pnl", "cumulative", "peak", "drawdown"}); err != nil {
		return err
	}
	for _, d := range daily {
		rec := []string{
			d.Date.Format("2006-01-02"),
			fmt.Sprintf("%.2f", d.PnL),
			fmt.Sprintf("%.2f", d.Cumulative),
			fmt.Sprintf("%.2f", d.Peak),
			fmt.Sprintf("%.2f", d.Drawdown),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func writeHourlySeries(path string, hourly []types.HourlyRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"hour", "pnl"}); err != nil {
		return err
	}
	for _, h := range hourly {
		if err := w.Write([]string{strconv.Itoa(h.Hour), fmt.Sprintf("%.2f", h.PnL)}); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
