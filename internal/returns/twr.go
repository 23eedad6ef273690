package returns

import (
	"math"
	"time"
)

// Engine 收益计算的可调参数，零值使用 DefaultTolerance
type Engine struct {
	Tolerance time.Duration
}

func NewEngine(tolerance time.Duration) *Engine {
	return &Engine{Tolerance: tolerance}
}

func (e *Engine) tolerance() time.Duration {
	if e == nil || e.Tolerance <= 0 {
		return DefaultTolerance
	}
	return e.Tolerance
}

// TrimToFundedStart 去掉 vault 注资之前记录的样本。
//
// 保留部分从第一个满足条件的账户价值样本开始：值为正，且净充值（账户价值减匹配的 PnL）
// 为正或者根本没有匹配的 PnL。没有 PnL 时取第一个正值样本，PnL 历史原样返回。
// 输入或裁剪后的样本少于两个时 ok 为 false。
func (e *Engine) TrimToFundedStart(s Series) (Series, bool) {
	if len(s.AccountValue) < 2 {
		return Series{}, false
	}

	start := -1
	if !s.HasPnl() {
		for i, p := range s.AccountValue {
			if p.Value > 0 {
				start = i
				break
			}
		}
	} else {
		m := NewMatcher(s.Pnl, e.tolerance())
		for i, p := range s.AccountValue {
			pnl, matched := m.MatchNearest(p.Timestamp)
			if p.Value <= 0 {
				continue
			}
			if !matched || p.Value-pnl.Value > 0 {
				start = i
				break
			}
		}
	}

	if start < 0 || len(s.AccountValue)-start < 2 {
		return Series{}, false
	}
	return Series{AccountValue: s.AccountValue[start:], Pnl: s.Pnl}, true
}

// FlowAdjustedReturnPct 逐区间扣除外部资金流后连乘各区间收益，
// 充值和提现不会被算成业绩。
//
// 相邻样本 prev/curr 都匹配到 PnL 时：
//
//	flow        = netDeposits(curr) - netDeposits(prev)
//	adjustedEnd = curr - flow
//	r           = adjustedEnd/prev - 1
//
// 任一端没有匹配 PnL 的区间直接跳过，不按持平计算。
// 账户价值或 PnL 样本少于两个，或可用区间少于两个时 ok 为 false。
func (e *Engine) FlowAdjustedReturnPct(s Series) (float64, bool) {
	if len(s.AccountValue) < 2 || len(s.Pnl) < 2 {
		return 0, false
	}

	type sample struct {
		value   float64
		net     float64
		matched bool
	}
	m := NewMatcher(s.Pnl, e.tolerance())
	samples := make([]sample, len(s.AccountValue))
	for i, p := range s.AccountValue {
		pnl, ok := m.MatchNearest(p.Timestamp)
		if !ok || !p.valid() || !pnl.valid() {
			continue
		}
		samples[i] = sample{value: p.Value, net: p.Value - pnl.Value, matched: true}
	}

	growth := 1.0
	valid := 0
	for i := 1; i < len(samples); i++ {
		prev, curr := samples[i-1], samples[i]
		if !prev.matched || !curr.matched || prev.value <= 0 {
			continue
		}
		flow := curr.net - prev.net
		r := (curr.value-flow)/prev.value - 1
		if math.IsNaN(r) || math.IsInf(r, 0) {
			continue
		}
		growth *= 1 + r
		valid++
	}
	if valid < 2 {
		return 0, false
	}
	pct := (growth - 1) * 100
	if math.IsNaN(pct) || math.IsInf(pct, 0) {
		return 0, false
	}
	return pct, true
}

// PeriodReturnPct 先裁剪序列再计算资金调整收益
func (e *Engine) PeriodReturnPct(s Series) (float64, bool) {
	trimmed, ok := e.TrimToFundedStart(s)
	if !ok {
		return 0, false
	}
	return e.FlowAdjustedReturnPct(trimmed)
}

var defaultEngine = &Engine{Tolerance: DefaultTolerance}

func TrimToFundedStart(s Series) (Series, bool) {
	return defaultEngine.TrimToFundedStart(s)
}

func FlowAdjustedReturnPct(s Series) (float64, bool) {
	return defaultEngine.FlowAdjustedReturnPct(s)
}
