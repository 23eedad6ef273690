package vault

import (
	"github.com/gin-gonic/gin"

	"vaultdash/internal/model"
	"vaultdash/internal/trades"
	"vaultdash/pkg/errors"
	"vaultdash/pkg/errors/ecode"
	"vaultdash/pkg/response"
)

func (h *Handler) TradeStatsGet() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var req model.TradeStatsReq
		if err := ctx.ShouldBindQuery(&req); err != nil {
			response.JSON(ctx, validateErr(ctx, err), nil)
			return
		}
		if req.Filter == "" {
			req.Filter = trades.FilterTotal
		}
		m, err := h.service.TradeMetrics(ctx.Request.Context())
		if err != nil {
			response.JSON(ctx, err, nil)
			return
		}
		stats, ok := m.Stats(req.Filter)
		if !ok {
			response.JSON(ctx, errors.WithCode(ecode.NotFoundErr, "no stats for filter %s", req.Filter), nil)
			return
		}
		response.JSON(ctx, nil, &model.TradeStatsRes{
			Filter:      req.Filter,
			LastUpdated: m.LastUpdated,
			Stats:       stats,
		})
	}
}

// TradeChartsGet 资金曲线、风险收益散点和两张分布图
func (h *Handler) TradeChartsGet() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		m, err := h.service.TradeMetrics(ctx.Request.Context())
		if err != nil {
			response.JSON(ctx, err, nil)
			return
		}
		response.JSON(ctx, nil, trades.BuildCharts(m.IndividualTrades))
	}
}
