package interfaces

import (
	"context"

	"trade-audit/internal/types"
)

// Source delivers the raw ledger rows for one audit run.
type Source interface {
	Rows(ctx context.Context) ([]types.RawRow, types.LedgerMeta, error)
}
