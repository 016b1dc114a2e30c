// Package csvfile loads the trade ledger from a broker CSV export, looking
// in the usual drop locations when no explicit path is configured.
package csvfile

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/gocarina/gocsv"

	"trade-audit/internal/interfaces"
	"trade-audit/internal/logger"
	"trade-audit/internal/types"
)

// ErrLedgerNotFound means no ledger file exists at any candidate location.
// Fatal to the run: there is nothing to audit.
var ErrLedgerNotFound = errors.New("csvfile: trade ledger not found")

type Params struct {
	// Path, when set, is used as-is and the search dirs are ignored.
	Path       string
	FileName   string
	SearchDirs []string
}

type Source struct {
	p Params
}

var _ interfaces.Source = (*Source)(nil)

func New(p Params) *Source {
	return &Source{p: p}
}

func (s *Source) Rows(ctx context.Context) ([]types.RawRow, types.LedgerMeta, error) {
	path, err := s.locate()
	if err != nil {
		return nil, types.LedgerMeta{}, err
	}
	logger.Info(ctx, "Found ledger", "path", path)

	f, err := os.Open(path)
	if err != nil {
		return nil, types.LedgerMeta{}, fmt.Errorf("csvfile: open %s: %w", path, err)
	}
	defer f.Close()

	var rows []types.RawRow
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return nil, types.LedgerMeta{}, fmt.Errorf("csvfile: decode %s: %w", path, err)
	}

	meta := types.LedgerMeta{
		Source:          filepath.Base(path),
		TotalExecutions: len(rows),
		Segments:        segmentLabels(rows),
	}
	return rows, meta, nil
}

func (s *Source) locate() (string, error) {
	if s.p.Path != "" {
		if _, err := os.Stat(s.p.Path); err != nil {
			return "", fmt.Errorf("%w: %s", ErrLedgerNotFound, s.p.Path)
		}
		return s.p.Path, nil
	}
	for _, dir := range s.p.SearchDirs {
		candidate := filepath.Join(dir, s.p.FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%w: %s not present in %v", ErrLedgerNotFound, s.p.FileName, s.p.SearchDirs)
}

func segmentLabels(rows []types.RawRow) []string {
	seen := map[string]bool{}
	for _, row := range rows {
		if row.Segment != "" {
			seen[row.Segment] = true
		}
	}
	if len(seen) == 0 {
		// Exports without a Segment column are plain equity ledgers.
		return []string{"Equity"}
	}
	labels := make([]string, 0, len(seen))
	for label := range seen {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}
