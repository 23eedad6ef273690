package returns

import "math"

// FollowerEquity 旧版估算只用到跟投者记录里的这两个字段
type FollowerEquity struct {
	VaultEquity float64
	AllTimePnl  float64
}

// LegacyReturnPct 旧版跟投者权益估算：全部历史 PnL 除以成本（权益减 PnL）。
// 不考虑资金进出的时点，只作为可选的兜底。
//
// Deprecated: 使用 Engine.Compute；仅在 TWR 不可用且开启兜底时才会用到。
func LegacyReturnPct(followers []FollowerEquity) (float64, bool) {
	var pnl, basis float64
	for _, f := range followers {
		cost := f.VaultEquity - f.AllTimePnl
		if cost <= 0 || math.IsNaN(cost) || math.IsInf(cost, 0) || math.IsNaN(f.AllTimePnl) {
			continue
		}
		pnl += f.AllTimePnl
		basis += cost
	}
	if basis <= 0 {
		return 0, false
	}
	return pnl / basis * 100, true
}

// WithLegacyFallback 开启兜底时用旧版估算补上不可用的结果，
// 已有的 TWR 结果不会被替换
func WithLegacyFallback(r ReturnResult, followers []FollowerEquity, enabled bool) ReturnResult {
	if !enabled || r.Available() {
		return r
	}
	pct, ok := LegacyReturnPct(followers)
	if !ok {
		return r
	}
	r.PeriodReturnPct = floatPtr(pct)
	r.Source = SourceLegacy
	r.fillProjection()
	return r
}
