package interfaces

import (
	"context"

	"trade-audit/internal/types"
)

// Matcher consumes chronologically ordered executions and emits the closed
// trades they realize. Ordering is the caller's responsibility.
type Matcher interface {
	Match(ctx context.Context, execs []types.Execution) ([]types.ClosedTrade, error)
}
