package stats

import (
	"math"

	"trade-audit/internal/types"
)

// Compute derives the summary metrics from the finished daily series and the
// individual closed trades. Callers must not invoke it with an empty daily
// series; Aggregate already rejects that case.
//
// The zero-denominator guards are policy, not accident: profit factor is 0
// with no losing trades, risk/reward is 0 with no losing days, win rate is
// over the day count. None of these may become NaN or an error.
func Compute(daily []types.DailyRecord, closed []types.ClosedTrade) types.Metrics {
	var m types.Metrics

	var winDays, lossDays int
	var winSum, lossSum float64
	for _, d := range daily {
		m.NetProfit += d.PnL
		if d.Drawdown < m.MaxDrawdown {
			m.MaxDrawdown = d.Drawdown
		}
		if d.PnL > 0 {
			winDays++
			winSum += d.PnL
		} else {
			// Flat days count as losing days, as the original audit did.
			lossDays++
			lossSum += d.PnL
		}
	}

	if len(daily) > 0 {
		m.WinRate = float64(winDays) / float64(len(daily)) * 100
	}
	if winDays > 0 {
		m.AvgDailyWin = winSum / float64(winDays)
	}
	if lossDays > 0 {
		m.AvgDailyLoss = math.Abs(lossSum / float64(lossDays))
	}
	if m.AvgDailyLoss != 0 {
		m.RiskReward = m.AvgDailyWin / m.AvgDailyLoss
	}

	var grossWin, grossLoss float64
	for _, ct := range closed {
		if ct.PnL > 0 {
			grossWin += ct.PnL
		} else if ct.PnL < 0 {
			grossLoss += -ct.PnL
		}
	}
	if grossLoss != 0 {
		m.ProfitFactor = grossWin / grossLoss
	}

	return m
}
