package types

// VaultDetails 是 vaultDetails 接口的解析结果
type VaultDetails struct {
	Name          string
	VaultAddress  string
	Leader        string
	Description   string
	Apr           float64 // 小数，0.25 表示 25%
	IsClosed      bool
	AllowDeposits bool
	Followers     []Follower
	Portfolio     Portfolio
}

type Follower struct {
	User          string  `json:"user"`
	VaultEquity   float64 `json:"vaultEquity"`
	Pnl           float64 `json:"pnl"`
	AllTimePnl    float64 `json:"allTimePnl"`
	DaysFollowing int     `json:"daysFollowing"`
}

// TotalEquity 所有跟投者权益之和
func (v *VaultDetails) TotalEquity() float64 {
	var total float64
	for _, f := range v.Followers {
		total += f.VaultEquity
	}
	return total
}
