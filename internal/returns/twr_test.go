package returns

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2025, time.October, 2, 0, 0, 0, 0, time.UTC)

// at 返回 base 之后 h 小时的时间戳
func at(h float64) int64 {
	return base.Add(time.Duration(h * float64(time.Hour))).UnixMilli()
}

func pts(pairs ...float64) []TimePoint {
	out := make([]TimePoint, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, TimePoint{Timestamp: at(pairs[i]), Value: pairs[i+1]})
	}
	return out
}

func TestFlowAdjustedReturnPct_RequiresTwoPoints(t *testing.T) {
	_, ok := FlowAdjustedReturnPct(Series{AccountValue: pts(0, 100), Pnl: pts(0, 0, 1, 1)})
	assert.False(t, ok)

	_, ok = FlowAdjustedReturnPct(Series{AccountValue: pts(0, 100, 1, 110, 2, 120), Pnl: pts(0, 0)})
	assert.False(t, ok)

	_, ok = FlowAdjustedReturnPct(Series{})
	assert.False(t, ok)
}

func TestFlowAdjustedReturnPct_CompoundsWithoutFlows(t *testing.T) {
	s := Series{
		AccountValue: pts(0, 100, 1, 110, 2, 99),
		Pnl:          pts(0, 0, 1, 10, 2, -1),
	}
	pct, ok := FlowAdjustedReturnPct(s)
	require.True(t, ok)
	assert.InDelta(t, -1.0, pct, 1e-9)
}

func TestFlowAdjustedReturnPct_NeutralizesDeposit(t *testing.T) {
	withDeposit := Series{
		AccountValue: pts(0, 100, 1, 110, 2, 610),
		Pnl:          pts(0, 0, 1, 10, 2, 10),
	}
	noDeposit := Series{
		AccountValue: pts(0, 100, 1, 110, 2, 110),
		Pnl:          pts(0, 0, 1, 10, 2, 10),
	}
	a, ok := FlowAdjustedReturnPct(withDeposit)
	require.True(t, ok)
	b, ok := FlowAdjustedReturnPct(noDeposit)
	require.True(t, ok)
	assert.InDelta(t, 10.0, a, 1e-9)
	assert.InDelta(t, b, a, 1e-9)
}

func TestFlowAdjustedReturnPct_NeutralizesWithdrawal(t *testing.T) {
	s := Series{
		AccountValue: pts(0, 1000, 1, 1100, 2, 600, 3, 660),
		Pnl:          pts(0, 0, 1, 100, 2, 100, 3, 160),
	}
	pct, ok := FlowAdjustedReturnPct(s)
	require.True(t, ok)
	// 1.10 * 1.00 * 1.10
	assert.InDelta(t, 21.0, pct, 1e-9)
}

func TestFlowAdjustedReturnPct_ZeroFlowEqualsSimpleRatio(t *testing.T) {
	values := []float64{100, 105, 98, 101.5, 120}
	var av, pnl []TimePoint
	for i, v := range values {
		av = append(av, TimePoint{Timestamp: at(float64(i)), Value: v})
		pnl = append(pnl, TimePoint{Timestamp: at(float64(i)) + 60_000, Value: v - 100})
	}
	pct, ok := FlowAdjustedReturnPct(Series{AccountValue: av, Pnl: pnl})
	require.True(t, ok)
	assert.InDelta(t, (120.0/100.0-1)*100, pct, 1e-9)
}

func TestFlowAdjustedReturnPct_SkipsUnmatchedIntervals(t *testing.T) {
	s := Series{
		// h=2 的 999 样本在容差内没有 PnL，不能影响结果
		AccountValue: pts(0, 100, 1, 110, 2, 999, 3, 121, 4, 133.1),
		Pnl:          pts(0, 0, 1, 10, 3, 21, 4, 33.1),
	}
	pct, ok := FlowAdjustedReturnPct(s)
	require.True(t, ok)
	assert.InDelta(t, 21.0, pct, 1e-9)
}

func TestFlowAdjustedReturnPct_SingleValidIntervalIsUnavailable(t *testing.T) {
	s := Series{
		AccountValue: pts(0, 100, 1, 110, 2, 120),
		Pnl:          pts(0, 0, 1, 10, 5, 20),
	}
	_, ok := FlowAdjustedReturnPct(s)
	assert.False(t, ok)
}

func TestFlowAdjustedReturnPct_SkipsNonPositivePrevious(t *testing.T) {
	s := Series{
		AccountValue: pts(0, 0, 1, 100, 2, 110, 3, 121),
		Pnl:          pts(0, 0, 1, 0, 2, 10, 3, 21),
	}
	pct, ok := FlowAdjustedReturnPct(s)
	require.True(t, ok)
	assert.InDelta(t, 21.0, pct, 1e-9)
}

func TestFlowAdjustedReturnPct_CustomTolerance(t *testing.T) {
	s := Series{
		AccountValue: pts(0, 100, 1, 110, 2, 121),
		Pnl:          pts(0.25, 0, 1.25, 10, 2.25, 21), // 15 minutes off
	}
	_, ok := NewEngine(10 * time.Minute).FlowAdjustedReturnPct(s)
	assert.False(t, ok)

	pct, ok := NewEngine(20 * time.Minute).FlowAdjustedReturnPct(s)
	require.True(t, ok)
	assert.InDelta(t, 21.0, pct, 1e-9)
}

func TestTrimToFundedStart(t *testing.T) {
	tests := []struct {
		name      string
		series    Series
		wantOK    bool
		wantFirst float64
		wantLen   int
	}{
		{
			name: "leading zeros and zero net deposits",
			series: Series{
				AccountValue: pts(0, 0, 1, 5, 2, 100, 3, 110),
				Pnl:          pts(0, 0, 1, 5, 2, 5, 3, 15),
			},
			wantOK:    true,
			wantFirst: 100,
			wantLen:   2,
		},
		{
			name: "no pnl falls back to first positive",
			series: Series{
				AccountValue: pts(0, 0, 1, -3, 2, 10, 3, 20),
			},
			wantOK:    true,
			wantFirst: 10,
			wantLen:   2,
		},
		{
			name: "unmatched positive sample starts the series",
			series: Series{
				AccountValue: pts(0, 50, 1, 60, 2, 70),
				Pnl:          pts(10, 0, 11, 1),
			},
			wantOK:    true,
			wantFirst: 50,
			wantLen:   3,
		},
		{
			name:   "fewer than two points",
			series: Series{AccountValue: pts(0, 100)},
			wantOK: false,
		},
		{
			name:   "never funded",
			series: Series{AccountValue: pts(0, 0, 1, 0, 2, 0)},
			wantOK: false,
		},
		{
			name:   "funded only on the last sample",
			series: Series{AccountValue: pts(0, 0, 1, 0, 2, 10)},
			wantOK: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := TrimToFundedStart(tt.series)
			require.Equal(t, tt.wantOK, ok)
			if !ok {
				assert.Equal(t, 0, got.Len())
				return
			}
			first, _ := got.First()
			assert.Equal(t, tt.wantFirst, first.Value)
			assert.Equal(t, tt.wantLen, got.Len())
			assert.Equal(t, tt.series.Pnl, got.Pnl)
		})
	}
}

func TestTrimToFundedStart_Idempotent(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for i := 0; i < 200; i++ {
		n := 2 + r.Intn(20)
		var av, pnl []TimePoint
		for j := 0; j < n; j++ {
			v := float64(r.Intn(5)) * 50 // zeros show up often
			p := float64(r.Intn(3)) * 50
			av = append(av, TimePoint{Timestamp: at(float64(j)), Value: v})
			if r.Intn(4) > 0 {
				pnl = append(pnl, TimePoint{Timestamp: at(float64(j)) + int64(r.Intn(20))*60_000, Value: p})
			}
		}
		s := NewSeries(av, pnl)

		once, ok1 := TrimToFundedStart(s)
		twice, ok2 := TrimToFundedStart(once)
		require.Equal(t, ok1, ok2, "case %d", i)
		if ok1 {
			assert.Equal(t, once, twice, "case %d", i)
		}
	}
}

func TestNewSeries_DropsInvalidAndSorts(t *testing.T) {
	s := NewSeries([]TimePoint{
		{Timestamp: at(2), Value: 3},
		{Timestamp: at(0), Value: 1},
		{Timestamp: at(1), Value: math.NaN()},
	}, nil)
	require.Equal(t, 2, s.Len())
	assert.Equal(t, 1.0, s.AccountValue[0].Value)
	assert.Equal(t, 3.0, s.AccountValue[1].Value)
	assert.False(t, s.HasPnl())
}
