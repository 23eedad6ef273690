package service

import (
	"github.com/shopspring/decimal"

	"vaultdash/internal/model"
)

var (
	defaultAmount = decimal.NewFromInt(1000)
	minAmount     = decimal.NewFromInt(1)
	maxAmount     = decimal.NewFromInt(1_000_000)
	hundred       = decimal.NewFromInt(100)
	monthsPerYear = decimal.NewFromInt(12)
	daysPerYear   = decimal.NewFromInt(365)
)

// ClampAmount 金额 <= 0 时使用默认 1000，并限制在 [1, 1000000]
func ClampAmount(amount float64) decimal.Decimal {
	d := decimal.NewFromFloat(amount)
	if !d.IsPositive() {
		return defaultAmount
	}
	if d.LessThan(minAmount) {
		return minAmount
	}
	if d.GreaterThan(maxAmount) {
		return maxAmount
	}
	return d
}

// APRProjection 按 APR（小数）线性估算年、月、日收益，保留两位小数
func APRProjection(amount float64, apr float64) model.APRProjection {
	a := ClampAmount(amount)
	rate := decimal.NewFromFloat(apr)
	annual := a.Mul(rate)
	return model.APRProjection{
		Amount:  a,
		Apr:     rate.Mul(hundred).Round(2),
		Annual:  annual.Round(2),
		Monthly: annual.Div(monthsPerYear).Round(2),
		Daily:   annual.Div(daysPerYear).Round(2),
	}
}

// TimeMachine 假设在起始日投入 amount，按累计收益率计算当前价值，
// 并按月均收益率线性外推 1/6/12 个月后的收益
func TimeMachine(amount float64, snapshot *model.VaultSnapshot) model.TimeMachine {
	a := ClampAmount(amount)
	r := snapshot.Returns()
	tm := model.TimeMachine{
		Amount:     a,
		DaysActive: r.DaysActive,
	}
	if r.PeriodReturnPct == nil {
		return tm
	}

	earned := a.Mul(decimal.NewFromFloat(*r.PeriodReturnPct)).Div(hundred).Round(2)
	value := a.Add(earned)
	tm.Earned = &earned
	tm.Value = &value

	if r.AvgMonthlyPct == nil {
		return tm
	}
	monthly := value.Mul(decimal.NewFromFloat(*r.AvgMonthlyPct)).Div(hundred)
	oneMonth := monthly.Round(2)
	sixMonths := monthly.Mul(decimal.NewFromInt(6)).Round(2)
	oneYear := monthly.Mul(monthsPerYear).Round(2)
	tm.OneMonth = &oneMonth
	tm.SixMonths = &sixMonths
	tm.OneYear = &oneYear
	return tm
}

func Calculator(amount float64, snapshot *model.VaultSnapshot) model.CalculatorRes {
	var apr float64
	if snapshot != nil {
		apr = snapshot.Apr
	}
	return model.CalculatorRes{
		APR:         APRProjection(amount, apr),
		TimeMachine: TimeMachine(amount, snapshot),
	}
}
