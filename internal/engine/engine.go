// Package engine pairs opening and closing executions per instrument in
// strict FIFO order and computes the realized P&L of every match.
package engine

import (
	"context"
	"errors"
	"fmt"

	"trade-audit/internal/interfaces"
	"trade-audit/internal/logger"
	"trade-audit/internal/types"
)

// ErrCorruptQueue signals an internal invariant violation in an open-lot
// queue (non-positive remaining quantity or mixed sides). It indicates a bug
// upstream, never bad input data.
var ErrCorruptQueue = errors.New("engine: open-lot queue corrupted")

type openLot struct {
	side      types.Side
	remaining float64
	entry     float64
}

// Engine holds one audit run's per-instrument open-lot queues. It is owned
// by a single invocation of Match and must not be shared.
type Engine struct {
	books map[string][]openLot
}

var _ interfaces.Matcher = (*Engine)(nil)

func New() *Engine {
	return &Engine{books: map[string][]openLot{}}
}

// Match consumes executions in the order given. Sorted input is a hard
// precondition: out-of-order input silently produces wrong matches, which is
// why the normalizer's sort is load-bearing.
func (e *Engine) Match(ctx context.Context, execs []types.Execution) ([]types.ClosedTrade, error) {
	closed := make([]types.ClosedTrade, 0, len(execs))

	for _, ex := range execs {
		q := e.books[ex.Instrument]
		remaining := ex.Qty

		for remaining > 0 && len(q) > 0 && q[0].side != ex.Side {
			if q[0].remaining <= 0 {
				return nil, fmt.Errorf("%w: instrument %s has a lot with remaining %v", ErrCorruptQueue, ex.Instrument, q[0].remaining)
			}

			match := min(remaining, q[0].remaining)
			var pnl float64
			if ex.Side == types.SideSell {
				// Closing a long.
				pnl = (ex.Price - q[0].entry) * match
			} else {
				// Closing a short.
				pnl = (q[0].entry - ex.Price) * match
			}
			closed = append(closed, types.ClosedTrade{At: ex.At, PnL: pnl})

			remaining -= match
			q[0].remaining -= match
			if q[0].remaining == 0 {
				q = q[1:]
			}
		}

		if remaining > 0 {
			// The queue is empty or its front is same-side; either way every
			// lot left in it must share the incoming side, so the remainder
			// opens a new lot at the back.
			for _, lot := range q {
				if lot.side != ex.Side {
					return nil, fmt.Errorf("%w: instrument %s holds mixed sides", ErrCorruptQueue, ex.Instrument)
				}
			}
			q = append(q, openLot{side: ex.Side, remaining: remaining, entry: ex.Price})
		}
		e.books[ex.Instrument] = q
	}

	e.logOpenExposure(ctx)
	logger.Debug(ctx, "FIFO matching finished", "executions", len(execs), "closed_trades", len(closed))
	return closed, nil
}

// OpenLots reports how many unmatched lots remain per instrument. Their
// mark-to-market value is deliberately not computed.
func (e *Engine) OpenLots() map[string]int {
	out := make(map[string]int, len(e.books))
	for name, q := range e.books {
		if len(q) > 0 {
			out[name] = len(q)
		}
	}
	return out
}

// OpenQty returns the total unmatched quantity still resting for an
// instrument.
func (e *Engine) OpenQty(instrument string) float64 {
	var qty float64
	for _, lot := range e.books[instrument] {
		qty += lot.remaining
	}
	return qty
}

func (e *Engine) logOpenExposure(ctx context.Context) {
	for name, q := range e.books {
		if len(q) == 0 {
			continue
		}
		var qty float64
		for _, lot := range q {
			qty += lot.remaining
		}
		logger.Debug(ctx, "Position still open after audit window", "instrument", name, "lots", len(q), "open_qty", qty, "side", string(q[0].side))
	}
}

func min(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
