// Package ledger turns raw broker rows into a clean, chronologically ordered
// execution stream. Row-level problems drop the row and are counted; only a
// batch with nothing usable at all is an error.
package ledger

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"strings"
	"time"

	"trade-audit/internal/logger"
	"trade-audit/internal/types"
)

// ErrNoUsableData means the ledger was loaded but every row was filtered out
// or failed to parse. It is a valid empty outcome, not an input failure.
var ErrNoUsableData = errors.New("ledger: no usable rows")

type Options struct {
	// TradedStatus is the Status value that marks an actually executed fill.
	// Rows with a different non-empty status (cancelled, rejected, pending)
	// are skipped. Rows without a status column pass through.
	TradedStatus string
	Location     *time.Location
}

// DropStats accounts for rows that never reached the matcher.
type DropStats struct {
	Filtered  int // status other than TradedStatus
	Malformed int // unparseable side, qty, price or timestamp
}

func (d DropStats) Total() int { return d.Filtered + d.Malformed }

// Date layouts seen in broker exports, day-first per the ledger contract.
var dateLayouts = []string{"02-01-2006", "02/01/2006", "2006-01-02"}

// Normalize filters, parses and sorts raw rows into executions. The sort is
// stable: rows sharing an instant keep their input order, the only ordering
// key the ledger provides.
func Normalize(ctx context.Context, rows []types.RawRow, opts Options) ([]types.Execution, DropStats, error) {
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}

	var stats DropStats
	execs := make([]types.Execution, 0, len(rows))
	for i, row := range rows {
		if row.Status != "" && opts.TradedStatus != "" && !strings.EqualFold(strings.TrimSpace(row.Status), opts.TradedStatus) {
			stats.Filtered++
			continue
		}

		ex, err := parseRow(row, loc)
		if err != nil {
			stats.Malformed++
			logger.Debug(ctx, "Dropping malformed ledger row", "row", i, "error", err)
			continue
		}
		execs = append(execs, ex)
	}

	if len(execs) == 0 {
		return nil, stats, ErrNoUsableData
	}

	sort.SliceStable(execs, func(i, j int) bool {
		return execs[i].At.Before(execs[j].At)
	})
	return execs, stats, nil
}

func parseRow(row types.RawRow, loc *time.Location) (types.Execution, error) {
	side, ok := types.ParseSide(row.Side)
	if !ok {
		return types.Execution{}, errors.New("unknown side " + strconv.Quote(row.Side))
	}

	qty, err := strconv.ParseFloat(strings.TrimSpace(row.Qty), 64)
	if err != nil || qty <= 0 {
		return types.Execution{}, errors.New("invalid quantity " + strconv.Quote(row.Qty))
	}

	price, err := strconv.ParseFloat(strings.TrimSpace(row.Price), 64)
	if err != nil || price <= 0 {
		return types.Execution{}, errors.New("invalid price " + strconv.Quote(row.Price))
	}

	name := strings.TrimSpace(row.Name)
	if name == "" {
		return types.Execution{}, errors.New("missing instrument name")
	}

	at, err := parseInstant(row.Date, row.Time, loc)
	if err != nil {
		return types.Execution{}, err
	}

	return types.Execution{
		Instrument: name,
		Side:       side,
		Qty:        qty,
		Price:      price,
		At:         at,
	}, nil
}

func parseInstant(date, clock string, loc *time.Location) (time.Time, error) {
	date = strings.TrimSpace(date)
	clock = strings.TrimSpace(clock)
	if clock == "" {
		clock = "00:00:00"
	}
	for _, layout := range dateLayouts {
		if at, err := time.ParseInLocation(layout+" 15:04:05", date+" "+clock, loc); err == nil {
			return at, nil
		}
	}
	return time.Time{}, errors.New("unparseable instant " + strconv.Quote(date+" "+clock))
}
