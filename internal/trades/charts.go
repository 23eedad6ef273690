package trades

import (
	"fmt"
	"math"
	"sort"
	"time"
)

const labelLayout = "02/01/2006"

type EquityCurve struct {
	Labels []string  `json:"labels"`
	Data   []float64 `json:"data"` // 累计权益增长，%
}

// BuildEquityCurve 按平仓时间排序，起点为首笔平仓前一天的 0%，
// 每笔交易对权益的贡献为 pnl_percentage * position_size_percent_equity / 100
func BuildEquityCurve(trades []Trade) EquityCurve {
	curve := EquityCurve{Labels: []string{}, Data: []float64{}}

	type exited struct {
		at    time.Time
		trade Trade
	}
	rows := make([]exited, 0, len(trades))
	for _, t := range trades {
		at, ok := t.ExitTime()
		if !ok {
			continue
		}
		rows = append(rows, exited{at: at, trade: t})
	}
	if len(rows) == 0 {
		return curve
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].at.Before(rows[j].at)
	})

	curve.Labels = append(curve.Labels, rows[0].at.AddDate(0, 0, -1).Format(labelLayout))
	curve.Data = append(curve.Data, 0)

	var cumulative float64
	for _, r := range rows {
		cumulative += r.trade.PnlPercentage * r.trade.PositionSizePercentEquity / 100
		curve.Labels = append(curve.Labels, r.at.Format(labelLayout))
		curve.Data = append(curve.Data, cumulative)
	}
	return curve
}

type RiskRewardPoint struct {
	X       float64 `json:"x"` // MAE，min_pnl
	Y       float64 `json:"y"` // MFE，max_pnl
	Pnl     float64 `json:"pnl"`
	Symbol  string  `json:"symbol"`
	TradeId string  `json:"trade_id"`
	Side    string  `json:"side"`
	Color   string  `json:"color"`
}

type RiskReward struct {
	Long  []RiskRewardPoint `json:"long"`
	Short []RiskRewardPoint `json:"short"`
	MinX  float64           `json:"min_x"` // 已乘 1.1 的坐标范围
	MaxY  float64           `json:"max_y"`
}

// PnLColor 按最终收益分档着色，从深红到深绿
func PnLColor(pnl float64) string {
	switch {
	case pnl <= -5:
		return "#dc2626"
	case pnl <= -2.5:
		return "#f87171"
	case pnl < 0:
		return "#fca5a5"
	case pnl == 0:
		return "#6b7280"
	case pnl <= 2.5:
		return "#86efac"
	case pnl <= 5:
		return "#4ade80"
	default:
		return "#16a34a"
	}
}

func BuildRiskReward(trades []Trade) RiskReward {
	rr := RiskReward{Long: []RiskRewardPoint{}, Short: []RiskRewardPoint{}}
	if len(trades) == 0 {
		return rr
	}
	minX, maxY := math.Inf(1), math.Inf(-1)
	for _, t := range trades {
		p := RiskRewardPoint{
			X:       t.MinPnl,
			Y:       t.MaxPnl,
			Pnl:     t.PnlPercentage,
			Symbol:  t.Symbol,
			TradeId: t.TradeId,
			Side:    t.PositionSide,
			Color:   PnLColor(t.PnlPercentage),
		}
		// 非 LONG 的都归到空头
		if t.IsLong() {
			rr.Long = append(rr.Long, p)
		} else {
			rr.Short = append(rr.Short, p)
		}
		minX = math.Min(minX, t.MinPnl)
		maxY = math.Max(maxY, t.MaxPnl)
	}
	rr.MinX = minX * 1.1
	rr.MaxY = maxY * 1.1
	return rr
}

type Histogram struct {
	Bins      []string  `json:"bins"`
	All       []int     `json:"all"`
	Long      []int     `json:"long"`
	Short     []int     `json:"short"`
	MeanAll   *float64  `json:"mean_all"`
	MeanLong  *float64  `json:"mean_long"`
	MeanShort *float64  `json:"mean_short"`
	Edges     []float64 `json:"edges"` // len(Bins)+1
}

// BuildPnLHistogram 0.1% 宽度的收益分布
func BuildPnLHistogram(trades []Trade) Histogram {
	return buildHistogram(trades, func(t Trade) float64 { return t.PnlPercentage }, 0.1, 10, 1)
}

// BuildDurationHistogram 1 小时宽度的持仓时长分布
func BuildDurationHistogram(trades []Trade) Histogram {
	return buildHistogram(trades, func(t Trade) float64 { return t.DurationHours }, 1, 1, 0)
}

// buildHistogram 起点为 floor(min*scale)/scale，区间数为 ceil((max-起点)/size)，至少一个
func buildHistogram(trades []Trade, value func(Trade) float64, size, scale float64, labelDecimals int) Histogram {
	h := Histogram{Bins: []string{}, All: []int{}, Long: []int{}, Short: []int{}, Edges: []float64{}}

	var all, long, short []float64
	for _, t := range trades {
		v := value(t)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		all = append(all, v)
		switch {
		case t.IsLong():
			long = append(long, v)
		case t.IsShort():
			short = append(short, v)
		}
	}
	if len(all) == 0 {
		return h
	}

	lo, hi := all[0], all[0]
	for _, v := range all[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	start := math.Floor(lo*scale) / scale
	n := int(math.Ceil((hi - start) / size))
	if n < 1 {
		n = 1
	}

	// 区间左闭右开，超出两端的浮点误差归到首尾区间，因此最后一个区间包含右端点
	binOf := func(v float64) int {
		for i := 0; i < n-1; i++ {
			if v < start+float64(i+1)*size {
				return i
			}
		}
		return n - 1
	}
	h.All = make([]int, n)
	h.Long = make([]int, n)
	h.Short = make([]int, n)
	for _, v := range all {
		h.All[binOf(v)]++
	}
	for _, v := range long {
		h.Long[binOf(v)]++
	}
	for _, v := range short {
		h.Short[binOf(v)]++
	}
	for i := 0; i < n; i++ {
		from := start + float64(i)*size
		h.Bins = append(h.Bins, fmt.Sprintf("%.*f", labelDecimals, from))
		h.Edges = append(h.Edges, from)
	}
	h.Edges = append(h.Edges, start+float64(n)*size)

	h.MeanAll = mean(all)
	h.MeanLong = mean(long)
	h.MeanShort = mean(short)
	return h
}

func mean(values []float64) *float64 {
	if len(values) == 0 {
		return nil
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	m := sum / float64(len(values))
	return &m
}

// Charts 前端四张图需要的全部数据
type Charts struct {
	Equity     EquityCurve `json:"equity"`
	RiskReward RiskReward  `json:"risk_reward"`
	Pnl        Histogram   `json:"pnl_distribution"`
	Duration   Histogram   `json:"duration_distribution"`
}

func BuildCharts(trades []Trade) Charts {
	return Charts{
		Equity:     BuildEquityCurve(trades),
		RiskReward: BuildRiskReward(trades),
		Pnl:        BuildPnLHistogram(trades),
		Duration:   BuildDurationHistogram(trades),
	}
}
