package returns

import "time"

// MonthlyReturn 一个 UTC 自然月的资金调整收益。
// Month 从 0 开始（0 = 一月），数据不足时 ReturnPct 为 nil。
type MonthlyReturn struct {
	Year      int      `json:"year"`
	Month     int      `json:"month"`
	ReturnPct *float64 `json:"returnPct"`
}

func (m MonthlyReturn) Start() time.Time {
	return time.Date(m.Year, time.Month(m.Month+1), 1, 0, 0, 0, 0, time.UTC)
}

// Label 形如 "2025-10"
func (m MonthlyReturn) Label() string {
	return m.Start().Format("2006-01")
}

// MonthlyBreakdown 从第一个到最后一个账户价值样本，按时间顺序每个自然月输出一条，
// 没有样本的月份也输出。每个月先单独裁掉注资前的部分再计算收益。
func (e *Engine) MonthlyBreakdown(s Series) []MonthlyReturn {
	first, ok := s.First()
	if !ok {
		return nil
	}
	last, _ := s.Last()

	cursor := monthStart(first.Time())
	end := monthStart(last.Time())

	var out []MonthlyReturn
	for !cursor.After(end) {
		next := cursor.AddDate(0, 1, 0)
		entry := MonthlyReturn{Year: cursor.Year(), Month: int(cursor.Month()) - 1}

		window := s.between(cursor.UnixMilli(), next.UnixMilli())
		if len(window) >= 2 {
			if pct, ok := e.PeriodReturnPct(Series{AccountValue: window, Pnl: s.Pnl}); ok {
				entry.ReturnPct = floatPtr(pct)
			}
		}
		out = append(out, entry)
		cursor = next
	}
	return out
}

func MonthlyBreakdown(s Series) []MonthlyReturn {
	return defaultEngine.MonthlyBreakdown(s)
}

func monthStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func floatPtr(v float64) *float64 {
	return &v
}
