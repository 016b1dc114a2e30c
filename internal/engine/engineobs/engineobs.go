package engineobs

import (
	"context"
	"time"

	"trade-audit/internal/interfaces"
	"trade-audit/internal/logger"
	"trade-audit/internal/trace"
	"trade-audit/internal/types"
)

type observableMatcher struct {
	matcher interfaces.Matcher
}

var _ interfaces.Matcher = (*observableMatcher)(nil)

func Wrap(m interfaces.Matcher) interfaces.Matcher {
	return &observableMatcher{
		matcher: m,
	}
}

func (om *observableMatcher) Match(ctx context.Context, execs []types.Execution) ([]types.ClosedTrade, error) {
	ctx, span := trace.StartSpan(ctx, "engine.Match")
	defer span.End()

	start := time.Now()

	logger.Info(ctx, "Matching buy/sell executions (FIFO)",
		"executions", len(execs),
	)

	closed, err := om.matcher.Match(ctx, execs)
	if err != nil {
		logger.ErrorWithErr(ctx, "FIFO matching failed", err,
			"executions", len(execs),
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return nil, err
	}

	logger.Info(ctx, "FIFO matching completed",
		"executions", len(execs),
		"closed_trades", len(closed),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return closed, nil
}
