package entity

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/plugin/soft_delete"
)

// VaultSnapshot 每次刷新后落库的 vault 收益快照
type VaultSnapshot struct {
	Id           int64  `gorm:"primaryKey;autoIncrement:false;column:id" json:"id"` // snowflake
	VaultAddress string `gorm:"size:64;not null;index:idx_vault_created,priority:1;column:vault_address;comment:vault地址" json:"vault_address"`
	Name         string `gorm:"size:128;column:name;comment:vault名称" json:"name"`

	Capital       float64 `gorm:"column:capital;comment:最新净值" json:"capital"`
	Apr           float64 `gorm:"column:apr;comment:接口APR" json:"apr"`
	TotalEquity   float64 `gorm:"column:total_equity;comment:跟投者权益之和" json:"total_equity"`
	FollowerCount int     `gorm:"column:follower_count;comment:跟投人数" json:"follower_count"`

	// 收益数据，NULL 表示数据不足
	PeriodReturnPct    *float64       `gorm:"column:period_return_pct;comment:累计收益率" json:"period_return_pct"`
	Last30dReturnPct   *float64       `gorm:"column:last_30d_return_pct;comment:近30天收益率" json:"last_30d_return_pct"`
	AvgMonthlyPct      *float64       `gorm:"column:avg_monthly_pct;comment:月均收益率" json:"avg_monthly_pct"`
	ProjectedAnnualPct *float64       `gorm:"column:projected_annual_pct;comment:年化估算" json:"projected_annual_pct"`
	DaysActive         int            `gorm:"column:days_active;comment:运行天数" json:"days_active"`
	Source             string         `gorm:"size:16;column:source;comment:twr/legacy" json:"source"`
	Monthly            datatypes.JSON `gorm:"column:monthly;type:json;comment:月度收益" json:"monthly"`

	CreatedAt time.Time             `gorm:"autoCreateTime;index:idx_vault_created,priority:2;column:created_at" json:"created_at"`
	IsDel     soft_delete.DeletedAt `gorm:"softDelete:flag;column:is_del" json:"-"`
}

// TableName 可以显式指定表名
func (VaultSnapshot) TableName() string {
	return "vault_snapshot"
}
