package trades

import (
	"bytes"
	"math"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/spf13/cast"
)

const (
	FilterTotal = "total"
	FilterLong  = "long"
	FilterShort = "short"

	SideLong  = "LONG"
	SideShort = "SHORT"

	defaultStrategy = "Signals"
)

// Float 兼容 JSON 数字、数字字符串和 "Infinity"，null 解析为 NaN。
// 编码时按同样规则输出，非有限值可以往返保留。
type Float float64

func (f *Float) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = Float(math.NaN())
		return nil
	}
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	v, err := cast.ToFloat64E(raw)
	if err != nil {
		*f = Float(math.NaN())
		return nil
	}
	*f = Float(v)
	return nil
}

func (f Float) MarshalJSON() ([]byte, error) {
	v := float64(f)
	switch {
	case math.IsNaN(v):
		return []byte("null"), nil
	case math.IsInf(v, 1):
		return []byte(`"Infinity"`), nil
	case math.IsInf(v, -1):
		return []byte(`"-Infinity"`), nil
	}
	return json.Marshal(v)
}

func (f Float) Float64() float64 {
	return float64(f)
}

// Stats 是某个方向（全部/多/空）的汇总指标，百分比字段单位为 %
type Stats struct {
	WinRate                Float `json:"win_rate"`
	TotalTrades            int   `json:"total_trades"`
	AvgWin                 Float `json:"avg_win"`
	AvgLoss                Float `json:"avg_loss"`
	AvgPositionSizePercent Float `json:"avg_position_size_percent"`
	AvgDuration            Float `json:"avg_duration"` // 小时
	SharpeRatio            Float `json:"sharpe_ratio"`
	CalmarRatio            Float `json:"calmar_ratio"`
	MaxProfit              Float `json:"max_profit"`
	MaxDrawdown            Float `json:"max_drawdown"`
	MaxConsecutiveWins     int   `json:"max_consecutive_wins"`
	MaxConsecutiveLosses   int   `json:"max_consecutive_losses"`
	KellyCriterion         Float `json:"kelly_criterion"`
	ReturnsMean            Float `json:"returns_mean"`
	ReturnsSkew            Float `json:"returns_skew"`
	EquityWeightedReturn   Float `json:"equity_weighted_return"` // 小数
}

type Trade struct {
	TradeId                   string  `json:"trade_id"`
	Symbol                    string  `json:"symbol"`
	PositionSide              string  `json:"position_side"`
	TimestampEntry            string  `json:"timestamp_entry"`
	TimestampExit             string  `json:"timestamp_exit"`
	PnlPercentage             float64 `json:"pnl_percentage"`
	PositionSizePercentEquity float64 `json:"position_size_percent_equity"`
	MinPnl                    float64 `json:"min_pnl"`
	MaxPnl                    float64 `json:"max_pnl"`
	DurationHours             float64 `json:"duration_hours"`
}

func (t Trade) IsLong() bool {
	return strings.EqualFold(t.PositionSide, SideLong)
}

func (t Trade) IsShort() bool {
	return strings.EqualFold(t.PositionSide, SideShort)
}

// ExitTime 解析平仓时间，无时区的时间按 UTC 处理
func (t Trade) ExitTime() (time.Time, bool) {
	if t.TimestampExit == "" {
		return time.Time{}, false
	}
	ts, err := cast.ToTimeInDefaultLocationE(t.TimestampExit, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return ts.UTC(), true
}

// Metrics 对应 trading_metrics.json
type Metrics struct {
	LastUpdated      string                      `json:"last_updated"`
	Strategies       map[string]map[string]Stats `json:"strategies"`
	IndividualTrades []Trade                     `json:"individual_trades"`
}

// Stats 返回 Signals 策略下的指标，filter 为空时取 total
func (m *Metrics) Stats(filter string) (Stats, bool) {
	if m == nil {
		return Stats{}, false
	}
	if filter == "" {
		filter = FilterTotal
	}
	strategy, ok := m.Strategies[defaultStrategy]
	if !ok {
		return Stats{}, false
	}
	s, ok := strategy[strings.ToLower(filter)]
	return s, ok
}
