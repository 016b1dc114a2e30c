package sourceobs

import (
	"context"
	"time"

	"trade-audit/internal/interfaces"
	"trade-audit/internal/logger"
	"trade-audit/internal/trace"
	"trade-audit/internal/types"
)

type observableSource struct {
	source interfaces.Source
}

var _ interfaces.Source = (*observableSource)(nil)

func Wrap(s interfaces.Source) interfaces.Source {
	return &observableSource{
		source: s,
	}
}

func (o *observableSource) Rows(ctx context.Context) ([]types.RawRow, types.LedgerMeta, error) {
	ctx, span := trace.StartSpan(ctx, "source.Rows")
	defer span.End()

	start := time.Now()

	rows, meta, err := o.source.Rows(ctx)
	if err != nil {
		logger.ErrorWithErr(ctx, "Ledger source failed", err,
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return nil, meta, err
	}

	logger.Info(ctx, "Ledger loaded",
		"source", meta.Source,
		"rows", len(rows),
		"segments", meta.Segments,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return rows, meta, nil
}
