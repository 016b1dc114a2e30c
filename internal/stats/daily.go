// Package stats derives the daily P&L series and the summary performance
// metrics from the closed-trade stream. Everything here is a pure function
// over finished inputs.
package stats

import (
	"errors"
	"sort"
	"time"

	"trade-audit/internal/types"
)

// ErrNoTradesClosed means every execution opened a position and nothing was
// ever closed against it. A valid outcome, distinct from bad input.
var ErrNoTradesClosed = errors.New("stats: no trades closed")

// Aggregate groups closed trades by trading day and derives the cumulative
// equity, running peak and drawdown series. Days come out strictly
// increasing; drawdown is always <= 0.
func Aggregate(closed []types.ClosedTrade, loc *time.Location) ([]types.DailyRecord, error) {
	if len(closed) == 0 {
		return nil, ErrNoTradesClosed
	}
	if loc == nil {
		loc = time.UTC
	}

	byDay := map[time.Time]float64{}
	for _, ct := range closed {
		byDay[day(ct.At, loc)] += ct.PnL
	}

	days := make([]time.Time, 0, len(byDay))
	for d := range byDay {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	daily := make([]types.DailyRecord, 0, len(days))
	var cumulative, peak float64
	for i, d := range days {
		cumulative += byDay[d]
		if i == 0 || cumulative > peak {
			peak = cumulative
		}
		daily = append(daily, types.DailyRecord{
			Date:       d,
			PnL:        byDay[d],
			Cumulative: cumulative,
			Peak:       peak,
			Drawdown:   cumulative - peak,
		})
	}
	return daily, nil
}

// HourlyBreakdown buckets realized P&L by the hour the closing fill landed,
// the time-of-day efficiency view of the original dashboard. Hours without
// closures are omitted.
func HourlyBreakdown(closed []types.ClosedTrade, loc *time.Location) []types.HourlyRecord {
	if loc == nil {
		loc = time.UTC
	}
	byHour := map[int]float64{}
	for _, ct := range closed {
		byHour[ct.At.In(loc).Hour()] += ct.PnL
	}

	hours := make([]int, 0, len(byHour))
	for h := range byHour {
		hours = append(hours, h)
	}
	sort.Ints(hours)

	out := make([]types.HourlyRecord, 0, len(hours))
	for _, h := range hours {
		out = append(out, types.HourlyRecord{Hour: h, PnL: byHour[h]})
	}
	return out
}

func day(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}
