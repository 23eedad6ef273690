package model

import "github.com/shopspring/decimal"

type CalculatorReq struct {
	Amount float64 `form:"amount" binding:"omitempty,gte=0,lte=1000000"`
}

// APRProjection 按 APR 线性估算的收益
type APRProjection struct {
	Amount  decimal.Decimal `json:"amount"`
	Apr     decimal.Decimal `json:"apr"`
	Annual  decimal.Decimal `json:"annual"`
	Monthly decimal.Decimal `json:"monthly"`
	Daily   decimal.Decimal `json:"daily"`
}

// TimeMachine 假设在起始日投入 Amount，按已实现的收益率推算；收益率缺失时各字段为 nil
type TimeMachine struct {
	Amount     decimal.Decimal  `json:"amount"`
	DaysActive int              `json:"days_active"`
	Earned     *decimal.Decimal `json:"earned"`
	Value      *decimal.Decimal `json:"value"`
	OneMonth   *decimal.Decimal `json:"one_month"`
	SixMonths  *decimal.Decimal `json:"six_months"`
	OneYear    *decimal.Decimal `json:"one_year"`
}

type CalculatorRes struct {
	APR         APRProjection `json:"apr"`
	TimeMachine TimeMachine   `json:"time_machine"`
}
