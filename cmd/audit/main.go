package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"trade-audit/internal/engine"
	"trade-audit/internal/engine/engineobs"
	"trade-audit/internal/ledger"
	"trade-audit/internal/ledger/csvfile"
	"trade-audit/internal/logger"
	"trade-audit/internal/report"
	"trade-audit/internal/stats"
	"trade-audit/internal/store"
	"trade-audit/internal/trace"
	"trade-audit/internal/types"
)

func main() {
	ctx := context.Background()

	if err := initializeSystem(); err != nil {
		fmt.Fprintf(os.Stderr, "startup failed: %v\n", err)
		os.Exit(1)
	}
	defer trace.Shutdown(ctx)

	cfg, err := store.LoadConfig("config.yaml")
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to load config", err)
		os.Exit(1)
	}

	if err := run(ctx, cfg); err != nil {
		switch {
		case errors.Is(err, csvfile.ErrLedgerNotFound):
			logger.Error(ctx, "No input found: place the ledger export where the audit can see it", "error", err, "file", cfg.Ledger.FileName, "search_dirs", cfg.Ledger.SearchDirs)
		case errors.Is(err, engine.ErrCorruptQueue):
			logger.Error(ctx, "Internal defect while matching, please report this", "error", err)
		default:
			logger.ErrorWithErr(ctx, "Audit failed", err)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *store.Config) error {
	ctx, span := trace.StartSpan(ctx, "audit.Run")
	defer span.End()

	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	src, err := buildSource(cfg, loc)
	if err != nil {
		return err
	}

	rows, meta, err := src.Rows(ctx)
	if err != nil {
		return err
	}

	execs, drops, err := ledger.Normalize(ctx, rows, ledger.Options{
		TradedStatus: cfg.Ledger.TradedStatus,
		Location:     loc,
	})
	if errors.Is(err, ledger.ErrNoUsableData) {
		logger.Warn(ctx, "Input found but nothing to analyze: every row was filtered or malformed",
			"rows", len(rows), "filtered", drops.Filtered, "malformed", drops.Malformed)
		return nil
	}
	if err != nil {
		return err
	}
	meta.DroppedRows = drops.Total()
	logger.Info(ctx, "Executions normalized", "executions", len(execs), "filtered", drops.Filtered, "malformed", drops.Malformed)

	matcher := engineobs.Wrap(engine.New())
	closed, err := matcher.Match(ctx, execs)
	if err != nil {
		return err
	}

	daily, err := stats.Aggregate(closed, loc)
	if errors.Is(err, stats.ErrNoTradesClosed) {
		logger.Warn(ctx, "Input found but nothing to analyze: no positions were ever closed", "executions", len(execs))
		return nil
	}
	if err != nil {
		return err
	}

	res := &types.AuditResult{
		Daily:   daily,
		Hourly:  stats.HourlyBreakdown(closed, loc),
		Metrics: stats.Compute(daily, closed),
		Closed:  closed,
		Meta:    meta,
	}

	summaryPath, err := report.Write(cfg.Output.Dir, res, cfg.Output.Currency)
	if err != nil {
		return err
	}

	logger.Info(ctx, "Audit complete",
		"report", summaryPath,
		"days", len(res.Daily),
		"closed_trades", len(res.Closed),
		"net_profit", res.Metrics.NetProfit,
		"max_drawdown", res.Metrics.MaxDrawdown,
		"win_rate", res.Metrics.WinRate,
		"profit_factor", res.Metrics.ProfitFactor,
	)
	return nil
}
