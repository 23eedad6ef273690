package returns

import (
	"math/rand"
	"sort"
	"testing"
	"time"
)

func TestMatcher_PicksCloserCandidate(t *testing.T) {
	points := []TimePoint{
		{Timestamp: 0, Value: 1},
		{Timestamp: 10 * 60_000, Value: 2},
		{Timestamp: 60 * 60_000, Value: 3},
	}
	m := NewMatcher(points, 15*time.Minute)

	cases := []struct {
		target int64
		want   float64
		ok     bool
	}{
		{target: 4 * 60_000, want: 1, ok: true},
		{target: 6 * 60_000, want: 2, ok: true},
		{target: 30 * 60_000, ok: false}, // 20 minutes from both neighbours
		{target: 50 * 60_000, want: 3, ok: true},
		{target: 80 * 60_000, ok: false},
	}
	for _, c := range cases {
		got, ok := m.MatchNearest(c.target)
		if ok != c.ok {
			t.Fatalf("target %d: ok=%v, want %v", c.target, ok, c.ok)
		}
		if ok && got.Value != c.want {
			t.Errorf("target %d: matched %v, want %v", c.target, got.Value, c.want)
		}
	}
}

func TestMatcher_EmptyPoints(t *testing.T) {
	m := NewMatcher(nil, DefaultTolerance)
	if _, ok := m.MatchNearest(123); ok {
		t.Fatal("expected no match on empty input")
	}
}

func TestMatcher_MonotonicTargets(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	var points []TimePoint
	var ts int64
	for i := 0; i < 500; i++ {
		ts += int64(r.Intn(30)) * 60_000
		points = append(points, TimePoint{Timestamp: ts, Value: float64(i)})
	}
	targets := make([]int64, 300)
	for i := range targets {
		targets[i] = int64(r.Intn(int(ts)))
	}
	sort.Slice(targets, func(i, j int) bool { return targets[i] < targets[j] })

	m := NewMatcher(points, time.Hour)
	last := int64(-1)
	for _, target := range targets {
		got, ok := m.MatchNearest(target)
		if !ok {
			continue
		}
		if got.Timestamp < last {
			t.Fatalf("matched timestamp went backwards: %d after %d", got.Timestamp, last)
		}
		last = got.Timestamp
	}
}

func TestMatcher_AgreesWithFullScan(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	var points []TimePoint
	var ts int64
	for i := 0; i < 200; i++ {
		ts += 1 + int64(r.Intn(40))*60_000
		points = append(points, TimePoint{Timestamp: ts, Value: float64(i)})
	}
	tol := 15 * time.Minute
	m := NewMatcher(points, tol)
	for target := int64(0); target < ts; target += 7 * 60_000 {
		got, ok := m.MatchNearest(target)

		best := int64(-1)
		for _, p := range points {
			d := absDelta(p.Timestamp, target)
			if best < 0 || d < best {
				best = d
			}
		}
		wantOK := best <= tol.Milliseconds()
		if ok != wantOK {
			t.Fatalf("target %d: ok=%v want %v", target, ok, wantOK)
		}
		if ok && absDelta(got.Timestamp, target) != best {
			t.Fatalf("target %d: delta %d, nearest is %d", target, absDelta(got.Timestamp, target), best)
		}
	}
}
