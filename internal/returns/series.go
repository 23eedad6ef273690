// Package returns 根据账户价值和 PnL 历史还原交易表现，
// 用资金调整的时间加权收益抵消充值和提现的影响。
package returns

import (
	"math"
	"sort"
	"time"
)

// DefaultTolerance 账户价值样本与配对 PnL 样本之间允许的最大时间差，
// 经验值，可按 Engine 调整
const DefaultTolerance = 15 * time.Minute

// TimePoint 账户价值或累计 PnL 的一次观测
type TimePoint struct {
	Timestamp int64   `json:"t"` // unix millis
	Value     float64 `json:"v"`
}

func (p TimePoint) Time() time.Time {
	return time.UnixMilli(p.Timestamp).UTC()
}

func (p TimePoint) valid() bool {
	return !math.IsNaN(p.Value) && !math.IsInf(p.Value, 0)
}

// Series 账户价值历史和可选的 PnL 历史，均按时间升序
type Series struct {
	AccountValue []TimePoint `json:"accountValue"`
	Pnl          []TimePoint `json:"pnl,omitempty"`
}

// NewSeries 去掉非有限值样本并对两条历史做稳定排序，
// 时间戳相同的保持原有顺序
func NewSeries(accountValue, pnl []TimePoint) Series {
	s := Series{AccountValue: clean(accountValue)}
	if pnl != nil {
		s.Pnl = clean(pnl)
	}
	return s
}

func clean(points []TimePoint) []TimePoint {
	out := make([]TimePoint, 0, len(points))
	for _, p := range points {
		if p.valid() {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp < out[j].Timestamp
	})
	return out
}

func (s Series) Len() int {
	return len(s.AccountValue)
}

func (s Series) HasPnl() bool {
	return len(s.Pnl) > 0
}

// First / Last 首尾账户价值样本，序列为空时 ok 为 false
func (s Series) First() (TimePoint, bool) {
	if len(s.AccountValue) == 0 {
		return TimePoint{}, false
	}
	return s.AccountValue[0], true
}

func (s Series) Last() (TimePoint, bool) {
	if len(s.AccountValue) == 0 {
		return TimePoint{}, false
	}
	return s.AccountValue[len(s.AccountValue)-1], true
}

// between 返回 [from, to) 内的账户价值样本
func (s Series) between(from, to int64) []TimePoint {
	lo := sort.Search(len(s.AccountValue), func(i int) bool {
		return s.AccountValue[i].Timestamp >= from
	})
	hi := sort.Search(len(s.AccountValue), func(i int) bool {
		return s.AccountValue[i].Timestamp >= to
	})
	return s.AccountValue[lo:hi]
}
