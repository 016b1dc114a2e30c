package types

import (
	"strings"
	"time"
)

type Side string

const (
	SideBuy  Side = "BUY"
	SideSell Side = "SELL"
)

// ParseSide normalizes the ledger's Buy/Sell column. Case and surrounding
// whitespace vary between broker exports.
func ParseSide(s string) (Side, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "BUY":
		return SideBuy, true
	case "SELL":
		return SideSell, true
	}
	return "", false
}

// RawRow is one ledger line exactly as a source delivered it, before any
// validation. All fields are text so a single bad cell drops one row, not
// the whole batch. Tags follow the Dhan trade-history export headers.
type RawRow struct {
	Name    string `csv:"Name"`
	Side    string `csv:"Buy/Sell"`
	Qty     string `csv:"Quantity/Lot"`
	Price   string `csv:"Trade Price"`
	Date    string `csv:"Date"`
	Time    string `csv:"Time"`
	Status  string `csv:"Status"`
	Segment string `csv:"Segment"`
}

// Execution is a validated fill, ready for matching. Immutable once the
// normalizer emits it.
type Execution struct {
	Instrument string    `json:"instrument"`
	Side       Side      `json:"side"`
	Qty        float64   `json:"qty"`
	Price      float64   `json:"price"`
	At         time.Time `json:"at"`
}

// ClosedTrade is one FIFO match between an incoming execution and a resting
// lot. At is the closing execution's instant; the trading day and hour views
// are derived from it downstream.
type ClosedTrade struct {
	At  time.Time `json:"at"`
	PnL float64   `json:"pnl"`
}

type DailyRecord struct {
	Date       time.Time `json:"date"`
	PnL        float64   `json:"pnl"`
	Cumulative float64   `json:"cumulative"`
	Peak       float64   `json:"peak"`
	Drawdown   float64   `json:"drawdown"`
}

type HourlyRecord struct {
	Hour int     `json:"hour"`
	PnL  float64 `json:"pnl"`
}

type Metrics struct {
	NetProfit    float64 `json:"net_profit"`
	MaxDrawdown  float64 `json:"max_drawdown"`
	WinRate      float64 `json:"win_rate"`
	ProfitFactor float64 `json:"profit_factor"`
	AvgDailyWin  float64 `json:"avg_daily_win"`
	AvgDailyLoss float64 `json:"avg_daily_loss"`
	RiskReward   float64 `json:"risk_reward"`
}

// LedgerMeta carries input metadata through the pipeline unmodified so the
// report can state what was audited.
type LedgerMeta struct {
	Source          string   `json:"source"`
	TotalExecutions int      `json:"total_executions"`
	Segments        []string `json:"segments"`
	DroppedRows     int      `json:"dropped_rows"`
}

type AuditResult struct {
	Daily   []DailyRecord  `json:"daily"`
	Hourly  []HourlyRecord `json:"hourly"`
	Metrics Metrics        `json:"metrics"`
	Closed  []ClosedTrade  `json:"closed"`
	Meta    LedgerMeta     `json:"meta"`
}
