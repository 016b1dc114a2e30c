package ledger

import (
	"context"
	"errors"
	"testing"
	"time"

	"trade-audit/internal/types"
)

func opts() Options {
	return Options{TradedStatus: "Traded", Location: time.FixedZone("IST", 19800)}
}

func row(name, side, qty, price, date, clock, status string) types.RawRow {
	return types.RawRow{Name: name, Side: side, Qty: qty, Price: price, Date: date, Time: clock, Status: status}
}

func TestNormalizeSortsChronologically(t *testing.T) {
	rows := []types.RawRow{
		row("X", "SELL", "5", "110", "02-08-2025", "10:00:00", "Traded"),
		row("X", "BUY", "5", "100", "01-08-2025", "15:25:00", "Traded"),
		row("X", "BUY", "5", "101", "02-08-2025", "09:15:00", "Traded"),
	}
	execs, drops, err := Normalize(context.Background(), rows, opts())
	if err != nil {
		t.Fatalf("Normalize returned error: %v", err)
	}
	if drops.Total() != 0 {
		t.Errorf("expected no drops, got %+v", drops)
	}
	if len(execs) != 3 {
		t.Fatalf("expected 3 executions, got %d", len(execs))
	}
	for i := 1; i < len(execs); i++ {
		if execs[i].At.Before(execs[i-1].At) {
			t.Errorf("executions out of order at %d: %v before %v", i, execs[i].At, execs[i-1].At)
		}
	}
	if execs[0].Price != 100 {
		t.Errorf("expected the day-1 buy first, got price %v", execs[0].Price)
	}
}

func TestNormalizeStableTieBreak(t *testing.T) {
	// Identical instants keep input order: the ledger has no finer key.
	rows := []types.RawRow{
		row("X", "BUY", "1", "100", "01-08-2025", "09:15:00", "Traded"),
		row("X", "BUY", "2", "100", "01-08-2025", "09:15:00", "Traded"),
		row("X", "BUY", "3", "100", "01-08-2025", "09:15:00", "Traded"),
	}
	execs, _, err := Normalize(context.Background(), rows, opts())
	if err != nil {
		t.Fatalf("Normalize returned error: %v", err)
	}
	for i, want := range []float64{1, 2, 3} {
		if execs[i].Qty != want {
			t.Errorf("tie order broken at %d: expected qty %v, got %v", i, want, execs[i].Qty)
		}
	}
}

func TestNormalizeFiltersNonTradedStatus(t *testing.T) {
	rows := []types.RawRow{
		row("X", "BUY", "5", "100", "01-08-2025", "09:15:00", "Traded"),
		row("X", "BUY", "5", "100", "01-08-2025", "09:16:00", "Cancelled"),
		row("X", "BUY", "5", "100", "01-08-2025", "09:17:00", "Rejected"),
	}
	execs, drops, err := Normalize(context.Background(), rows, opts())
	if err != nil {
		t.Fatalf("Normalize returned error: %v", err)
	}
	if len(execs) != 1 {
		t.Errorf("expected 1 execution, got %d", len(execs))
	}
	if drops.Filtered != 2 {
		t.Errorf("expected 2 filtered rows, got %d", drops.Filtered)
	}
}

func TestNormalizeDropsMalformedRows(t *testing.T) {
	rows := []types.RawRow{
		row("X", "BUY", "5", "100", "01-08-2025", "09:15:00", "Traded"),
		row("X", "HOLD", "5", "100", "01-08-2025", "09:16:00", "Traded"),
		row("X", "BUY", "-5", "100", "01-08-2025", "09:17:00", "Traded"),
		row("X", "BUY", "5", "0", "01-08-2025", "09:18:00", "Traded"),
		row("X", "BUY", "5", "100", "not-a-date", "09:19:00", "Traded"),
		row("", "BUY", "5", "100", "01-08-2025", "09:20:00", "Traded"),
	}
	execs, drops, err := Normalize(context.Background(), rows, opts())
	if err != nil {
		t.Fatalf("Normalize returned error: %v", err)
	}
	if len(execs) != 1 {
		t.Errorf("expected 1 surviving execution, got %d", len(execs))
	}
	if drops.Malformed != 5 {
		t.Errorf("expected 5 malformed drops, got %d", drops.Malformed)
	}
}

func TestNormalizeSideCaseInsensitive(t *testing.T) {
	rows := []types.RawRow{
		row("X", " buy ", "5", "100", "01-08-2025", "09:15:00", ""),
		row("X", "Sell", "5", "110", "01-08-2025", "09:16:00", ""),
	}
	execs, _, err := Normalize(context.Background(), rows, opts())
	if err != nil {
		t.Fatalf("Normalize returned error: %v", err)
	}
	if execs[0].Side != types.SideBuy || execs[1].Side != types.SideSell {
		t.Errorf("side parsing failed: %v / %v", execs[0].Side, execs[1].Side)
	}
}

func TestNormalizeDayFirstDates(t *testing.T) {
	rows := []types.RawRow{
		row("X", "BUY", "5", "100", "02-01-2026", "09:15:00", "Traded"),
	}
	execs, _, err := Normalize(context.Background(), rows, opts())
	if err != nil {
		t.Fatalf("Normalize returned error: %v", err)
	}
	at := execs[0].At
	if at.Day() != 2 || at.Month() != time.January || at.Year() != 2026 {
		t.Errorf("day-first parse failed, got %v", at)
	}
}

func TestNormalizeEmptyInput(t *testing.T) {
	_, _, err := Normalize(context.Background(), nil, opts())
	if !errors.Is(err, ErrNoUsableData) {
		t.Fatalf("expected ErrNoUsableData, got %v", err)
	}

	rows := []types.RawRow{
		row("X", "BUY", "junk", "100", "01-08-2025", "09:15:00", "Traded"),
	}
	_, drops, err := Normalize(context.Background(), rows, opts())
	if !errors.Is(err, ErrNoUsableData) {
		t.Fatalf("expected ErrNoUsableData when every row is malformed, got %v", err)
	}
	if drops.Malformed != 1 {
		t.Errorf("drops must still be reported, got %+v", drops)
	}
}
