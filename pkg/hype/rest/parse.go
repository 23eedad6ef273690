package rest

import (
	"bytes"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/goccy/go-json"
	"github.com/spf13/cast"

	"vaultdash/pkg/hype/types"
)

// parsePortfolio 解析 [[label, {accountValueHistory, pnlHistory, vlm}], ...]
// 结构不对的条目直接跳过，无法解析或非有限的样本丢弃，历史按时间稳定排序
func parsePortfolio(data []byte) (*types.Portfolio, error) {
	result := &types.Portfolio{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return result, nil
	}

	var raw [][]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode portfolio: %w", err)
	}

	for _, entry := range raw {
		if len(entry) != 2 {
			continue
		}
		var label string
		if err := json.Unmarshal(entry[0], &label); err != nil || label == "" {
			continue
		}
		var detail struct {
			AccountValueHistory [][]interface{} `json:"accountValueHistory"`
			PnlHistory          [][]interface{} `json:"pnlHistory"`
			Vlm                 interface{}     `json:"vlm"`
		}
		if err := json.Unmarshal(entry[1], &detail); err != nil {
			continue
		}

		result.Set(label, types.PeriodData{
			AccountValue: parseHistory(detail.AccountValueHistory),
			Pnl:          parseHistory(detail.PnlHistory),
			Vlm:          toFloat(detail.Vlm),
		})
	}
	return result, nil
}

func parseHistory(rows [][]interface{}) []types.DataPoint {
	points := make([]types.DataPoint, 0, len(rows))
	for _, row := range rows {
		if len(row) != 2 {
			continue
		}
		ts, err := cast.ToInt64E(row[0])
		if err != nil || ts <= 0 {
			continue
		}
		val, err := cast.ToFloat64E(row[1])
		if err != nil || math.IsNaN(val) || math.IsInf(val, 0) {
			continue
		}
		points = append(points, types.DataPoint{Time: time.UnixMilli(ts).UTC(), Value: val})
	}
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Time.Before(points[j].Time)
	})
	return points
}

// toFloat 数字或数字字符串转 float64，解析失败或非有限值返回 0
func toFloat(v interface{}) float64 {
	f, err := cast.ToFloat64E(v)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
