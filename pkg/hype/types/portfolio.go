package types

import "time"

// portfolio 接口返回的周期标签
const (
	WindowDay         = "day"
	WindowWeek        = "week"
	WindowMonth       = "month"
	WindowAllTime     = "allTime"
	WindowPerpDay     = "perpDay"
	WindowPerpWeek    = "perpWeek"
	WindowPerpMonth   = "perpMonth"
	WindowPerpAllTime = "perpAllTime"
)

type DataPoint struct {
	Time  time.Time
	Value float64
}

func (p DataPoint) Millis() int64 {
	return p.Time.UnixMilli()
}

type PeriodData struct {
	AccountValue []DataPoint // 净值曲线，按时间升序
	Pnl          []DataPoint // 累计盈亏曲线，按时间升序
	Vlm          float64     // 成交量
}

// Portfolio 按周期标签保存净值与盈亏历史，保留接口返回的顺序
type Portfolio struct {
	Labels  []string
	Windows map[string]PeriodData
}

func (p *Portfolio) Window(label string) (PeriodData, bool) {
	if p == nil || p.Windows == nil {
		return PeriodData{}, false
	}
	pd, ok := p.Windows[label]
	return pd, ok
}

func (p *Portfolio) Set(label string, pd PeriodData) {
	if p.Windows == nil {
		p.Windows = make(map[string]PeriodData)
	}
	if _, exists := p.Windows[label]; !exists {
		p.Labels = append(p.Labels, label)
	}
	p.Windows[label] = pd
}
