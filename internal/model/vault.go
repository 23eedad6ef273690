package model

import (
	"time"

	"vaultdash/internal/returns"
)

// VaultSnapshot 一次刷新的计算结果，生成后不再修改，按指针在各消费方之间共享
type VaultSnapshot struct {
	Id            int64     `json:"id,string"`
	VaultAddress  string    `json:"vault_address"`
	Name          string    `json:"name"`
	Leader        string    `json:"leader"`
	Apr           float64   `json:"apr"`            // 小数，接口原值
	Capital       float64   `json:"capital"`        // allTime 最新净值
	TotalEquity   float64   `json:"total_equity"`   // 跟投者权益之和
	FollowerCount int       `json:"follower_count"` // 跟投人数
	IsClosed      bool      `json:"is_closed"`
	UpdatedAt     time.Time `json:"updated_at"`

	AllTime          returns.ReturnResult `json:"all_time"`
	Last30dReturnPct *float64             `json:"last_30d_return_pct"`

	// 图表用的净值曲线（已裁剪到开始有资金的位置）
	AccountValue []returns.TimePoint `json:"account_value"`
}

// Returns 同 AllTime，nil 安全
func (s *VaultSnapshot) Returns() returns.ReturnResult {
	if s == nil {
		return returns.ReturnResult{MonthlyBreakdown: []returns.MonthlyReturn{}}
	}
	return s.AllTime
}

type VaultSummaryRes struct {
	Snapshot *VaultSnapshot    `json:"snapshot"`
	Display  VaultDisplay      `json:"display"`
	Labels   map[string]string `json:"labels"`
}

// VaultDisplay 格式化好的展示字符串，缺失的值为 "N/A"
type VaultDisplay struct {
	Capital          string `json:"capital"`
	Apr              string `json:"apr"`
	PeriodReturn     string `json:"period_return"`
	Last30dReturn    string `json:"last_30d_return"`
	AvgMonthlyReturn string `json:"avg_monthly_return"`
	ProjectedAnnual  string `json:"projected_annual"`
	DaysActive       string `json:"days_active"`
	UnavailableNote  string `json:"unavailable_note,omitempty"`
	Source           string `json:"source,omitempty"`
}

type MonthlyRow struct {
	Label     string   `json:"label"`
	Year      int      `json:"year"`
	Month     int      `json:"month"`
	ReturnPct *float64 `json:"return_pct"`
	Display   string   `json:"display"`
}

type VaultHistoryReq struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=500"`
}

type VaultHistoryItem struct {
	Id               int64     `json:"id,string"`
	Capital          float64   `json:"capital"`
	Apr              float64   `json:"apr"`
	PeriodReturnPct  *float64  `json:"period_return_pct"`
	Last30dReturnPct *float64  `json:"last_30d_return_pct"`
	Source           string    `json:"source"`
	CreatedAt        time.Time `json:"created_at"`
}
