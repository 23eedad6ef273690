package model

import "vaultdash/internal/trades"

type TradeStatsReq struct {
	Filter string `form:"filter" binding:"omitempty,oneof=total long short"`
}

type TradeStatsRes struct {
	Filter      string       `json:"filter"`
	LastUpdated string       `json:"last_updated"`
	Stats       trades.Stats `json:"stats"`
}
