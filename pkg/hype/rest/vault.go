package rest

import (
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-json"
	"github.com/spf13/cast"

	"vaultdash/pkg/hype/types"
)

type rawFollower struct {
	User          string      `json:"user"`
	VaultEquity   interface{} `json:"vaultEquity"`
	Pnl           interface{} `json:"pnl"`
	AllTimePnl    interface{} `json:"allTimePnl"`
	DaysFollowing interface{} `json:"daysFollowing"`
}

type rawVaultDetails struct {
	Name          string          `json:"name"`
	VaultAddress  string          `json:"vaultAddress"`
	Leader        string          `json:"leader"`
	Description   string          `json:"description"`
	Apr           interface{}     `json:"apr"`
	IsClosed      bool            `json:"isClosed"`
	AllowDeposits bool            `json:"allowDeposits"`
	Followers     []rawFollower   `json:"followers"`
	Portfolio     json.RawMessage `json:"portfolio"`
}

// VaultDetails 获取 vault 的基本信息、跟投者列表和 portfolio 各周期的净值/盈亏历史
func (rest *HyperliquidRestClient) VaultDetails(ctx context.Context, vaultAddress string) (*types.VaultDetails, error) {
	params := map[string]interface{}{
		"vaultAddress": strings.ToLower(vaultAddress),
	}
	var raw rawVaultDetails
	if err := rest.doRequestWithContext(ctx, infoEndpoint, "vaultDetails", params, &raw); err != nil {
		return nil, err
	}

	portfolio, err := parsePortfolio(raw.Portfolio)
	if err != nil {
		return nil, err
	}

	details := &types.VaultDetails{
		Name:          raw.Name,
		VaultAddress:  raw.VaultAddress,
		Leader:        raw.Leader,
		Description:   raw.Description,
		Apr:           toFloat(raw.Apr),
		IsClosed:      raw.IsClosed,
		AllowDeposits: raw.AllowDeposits,
		Portfolio:     *portfolio,
	}
	if details.VaultAddress == "" {
		details.VaultAddress = strings.ToLower(vaultAddress)
	}
	for _, f := range raw.Followers {
		details.Followers = append(details.Followers, types.Follower{
			User:          f.User,
			VaultEquity:   toFloat(f.VaultEquity),
			Pnl:           toFloat(f.Pnl),
			AllTimePnl:    toFloat(f.AllTimePnl),
			DaysFollowing: cast.ToInt(f.DaysFollowing),
		})
	}
	return details, nil
}

// Portfolio 账户持仓分析接口（type: "portfolio"），返回各周期的净值和盈亏历史
func (rest *HyperliquidRestClient) Portfolio(ctx context.Context, user string) (*types.Portfolio, error) {
	params := map[string]interface{}{
		"user": strings.ToLower(user),
	}
	var raw json.RawMessage
	if err := rest.doRequestWithContext(ctx, infoEndpoint, "portfolio", params, &raw); err != nil {
		return nil, err
	}
	portfolio, err := parsePortfolio(raw)
	if err != nil {
		return nil, fmt.Errorf("portfolio %s: %w", user, err)
	}
	return portfolio, nil
}
