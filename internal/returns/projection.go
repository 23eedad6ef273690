package returns

import (
	"math"
	"time"
)

const (
	daysPerMonth   = 30
	monthsPerYear  = 12
	millisInOneDay = int64(24 * time.Hour / time.Millisecond)
)

// AvgMonthlyPct 按 30 天一个月把区间收益线性摊平
func AvgMonthlyPct(periodReturnPct *float64, daysActive int) (float64, bool) {
	if periodReturnPct == nil || daysActive <= 0 {
		return 0, false
	}
	v := *periodReturnPct / float64(daysActive) * daysPerMonth
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// ProjectAnnualPct 月均收益线性外推到十二个月，不做复利
func ProjectAnnualPct(periodReturnPct *float64, daysActive int) (float64, bool) {
	avg, ok := AvgMonthlyPct(periodReturnPct, daysActive)
	if !ok {
		return 0, false
	}
	return avg * monthsPerYear, true
}

// DaysActive 从 start 起经过的完整 UTC 天数，不会为负
func DaysActive(now, start time.Time) int {
	diff := now.UTC().UnixMilli() - start.UTC().UnixMilli()
	if diff <= 0 {
		return 0
	}
	return int(diff / millisInOneDay)
}
