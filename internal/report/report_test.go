package report

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"trade-audit/internal/types"
)

func sampleResult() *types.AuditResult {
	ist := time.FixedZone("IST", 19800)
	day1 := time.Date(2025, 8, 1, 0, 0, 0, 0, ist)
	day2 := time.Date(2025, 8, 2, 0, 0, 0, 0, ist)
	return &types.AuditResult{
		Daily: []types.DailyRecord{
			{Date: day1, PnL: 100, Cumulative: 100, Peak: 100, Drawdown: 0},
			{Date: day2, PnL: -50, Cumulative: 50, Peak: 100, Drawdown: -50},
		},
		Hourly: []types.HourlyRecord{
			{Hour: 10, PnL: 100},
			{Hour: 14, PnL: -50},
		},
		Metrics: types.Metrics{
			NetProfit:    50,
			MaxDrawdown:  -50,
			WinRate:      50,
			ProfitFactor: 2,
			AvgDailyWin:  100,
			AvgDailyLoss: 50,
			RiskReward:   2,
		},
		Meta: types.LedgerMeta{
			Source:          "trade_ledger.csv",
			TotalExecutions: 4,
			Segments:        []string{"Equity"},
			DroppedRows:     1,
		},
	}
}

func TestWriteProducesAllArtifacts(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "audit_results")

	summaryPath, err := Write(dir, sampleResult(), "INR")
	if err != nil {
		t.Fatalf("Write returned error: %v", err)
	}
	if filepath.Base(summaryPath) != "performance_summary.txt" {
		t.Errorf("unexpected summary path %s", summaryPath)
	}
	for _, name := range []string{"performance_summary.txt", "daily_series.csv", "hourly_series.csv"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("missing artifact %s: %v", name, err)
		}
	}
}

func TestSummaryContent(t *testing.T) {
	dir := t.TempDir()
	summaryPath, err := Write(dir, sampleResult(), "INR")
	if err != nil {
		t.Fatalf("Write returned error: %v", err)
	}
	b, err := os.ReadFile(summaryPath)
	if err != nil {
		t.Fatal(err)
	}
	text := string(b)

	for _, want := range []string{
		"TRADING PERFORMANCE AUDIT REPORT",
		"Data Source:      trade_ledger.csv",
		"Total Executions: 4",
		"Segments:         Equity",
		"Net Profit (Realized):  INR 50.00",
		"Profit Factor:          2.00",
		"Daily Win Rate:         50.0%",
		"Risk/Reward Ratio:      1 : 2.00",
		"Max Drawdown:           INR -50",
		"Avg Daily Win:          INR 100.00",
		"Avg Daily Loss:         INR 50.00",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("summary missing %q\n---\n%s", want, text)
		}
	}
}

func TestDailySeriesContent(t *testing.T) {
	dir := t.TempDir()
	if _, err := Write(dir, sampleResult(), "INR"); err != nil {
		t.Fatalf("Write returned error: %v", err)
	}

	f, err := os.Open(filepath.Join(dir, "daily_series.csv"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	recs, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(recs))
	}
	if recs[0][0] != "date" || recs[0][4] != "drawdown" {
		t.Errorf("unexpected header %v", recs[0])
	}
	if recs[1][0] != "2025-08-01" || recs[1][1] != "100.00" {
		t.Errorf("unexpected first row %v", recs[1])
	}
	if recs[2][4] != "-50.00" {
		t.Errorf("unexpected drawdown cell %v", recs[2])
	}
}

func TestHourlySeriesContent(t *testing.T) {
	dir := t.TempDir()
	if _, err := Write(dir, sampleResult(), "INR"); err != nil {
		t.Fatalf("Write returned error: %v", err)
	}

	f, err := os.Open(filepath.Join(dir, "hourly_series.csv"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	recs, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(recs))
	}
	if recs[1][0] != "10" || recs[1][1] != "100.00" {
		t.Errorf("unexpected hourly row %v", recs[1])
	}
}
