package returns

import "time"

// Matcher 为递增的目标时间在有序切片里找最近的点。
// 前向指针在多次调用间保留，整轮扫描摊还 O(n)。
// 目标时间必须单调不减，不能并发使用。
type Matcher struct {
	points    []TimePoint
	idx       int
	tolerance int64
}

func NewMatcher(points []TimePoint, tolerance time.Duration) *Matcher {
	return &Matcher{
		points:    points,
		tolerance: tolerance.Milliseconds(),
	}
}

// MatchNearest 把指针推进到 target 之后，再在指针和它的后继之间取更近的一个，
// 距离超过容差的不算匹配
func (m *Matcher) MatchNearest(target int64) (TimePoint, bool) {
	n := len(m.points)
	if n == 0 {
		return TimePoint{}, false
	}
	for m.idx+1 < n && m.points[m.idx+1].Timestamp <= target {
		m.idx++
	}

	best := m.points[m.idx]
	bestDelta := absDelta(best.Timestamp, target)
	if m.idx+1 < n {
		next := m.points[m.idx+1]
		if d := absDelta(next.Timestamp, target); d < bestDelta {
			best, bestDelta = next, d
		}
	}
	if bestDelta > m.tolerance {
		return TimePoint{}, false
	}
	return best, true
}

func absDelta(a, b int64) int64 {
	if a > b {
		return a - b
	}
	return b - a
}
