package returns

const (
	SourceTWR    = "twr"
	SourceLegacy = "legacy"
)

// ReturnResult 展示层需要的一个区间的全部收益数据。
// 指针为 nil 表示不可用，必须按不可用展示，不能当成 0。
type ReturnResult struct {
	PeriodReturnPct    *float64        `json:"periodReturnPct"`
	MonthlyBreakdown   []MonthlyReturn `json:"monthlyBreakdown"`
	AvgMonthlyPct      *float64        `json:"avgMonthlyPct"`
	ProjectedAnnualPct *float64        `json:"projectedAnnualPct"`
	DaysActive         int             `json:"daysActive"`
	Source             string          `json:"source,omitempty"`
}

func (r ReturnResult) Available() bool {
	return r.PeriodReturnPct != nil
}

// Compute 对一条序列依次做裁剪、资金调整收益、月度拆分和年化预估
func (e *Engine) Compute(s Series, daysActive int) ReturnResult {
	res := ReturnResult{
		DaysActive:       daysActive,
		MonthlyBreakdown: []MonthlyReturn{},
	}

	trimmed, ok := e.TrimToFundedStart(s)
	if !ok {
		return res
	}
	if pct, ok := e.FlowAdjustedReturnPct(trimmed); ok {
		res.PeriodReturnPct = floatPtr(pct)
		res.Source = SourceTWR
	}
	if months := e.MonthlyBreakdown(trimmed); months != nil {
		res.MonthlyBreakdown = months
	}
	res.fillProjection()
	return res
}

func (r *ReturnResult) fillProjection() {
	r.AvgMonthlyPct, r.ProjectedAnnualPct = nil, nil
	if avg, ok := AvgMonthlyPct(r.PeriodReturnPct, r.DaysActive); ok {
		r.AvgMonthlyPct = floatPtr(avg)
	}
	if annual, ok := ProjectAnnualPct(r.PeriodReturnPct, r.DaysActive); ok {
		r.ProjectedAnnualPct = floatPtr(annual)
	}
}
