package vault

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"vaultdash/internal/consts"
	"vaultdash/internal/format"
	"vaultdash/internal/i18n"
	"vaultdash/internal/model"
	"vaultdash/internal/returns"
	"vaultdash/internal/service"
	"vaultdash/pkg/errors"
	"vaultdash/pkg/errors/ecode"
	"vaultdash/pkg/response"
	"vaultdash/pkg/validator"
)

type Handler struct {
	service *service.VaultService
}

func NewHandler(service *service.VaultService) *Handler {
	return &Handler{
		service: service,
	}
}

func language(ctx *gin.Context) string {
	if lang := ctx.GetString(consts.Language); lang != "" {
		return lang
	}
	return i18n.English
}

func validateErr(ctx *gin.Context, err error) error {
	return errors.WithCode(ecode.ValidateErr, "%s", validator.Translate(err, language(ctx)))
}

func (h *Handler) latest() (*model.VaultSnapshot, error) {
	snapshot, ok := h.service.Latest()
	if !ok {
		return nil, errors.WithCode(ecode.VaultUnavailable, "")
	}
	return snapshot, nil
}

// VaultSummaryGet 最新快照 + 按语言格式化好的展示字段
func (h *Handler) VaultSummaryGet() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		snapshot, err := h.latest()
		if err != nil {
			response.JSON(ctx, err, nil)
			return
		}
		lang := language(ctx)
		response.JSON(ctx, nil, &model.VaultSummaryRes{
			Snapshot: snapshot,
			Display:  display(snapshot, lang),
			Labels:   i18n.Labels(lang),
		})
	}
}

func display(s *model.VaultSnapshot, lang string) model.VaultDisplay {
	f := format.New(lang)
	r := s.Returns()
	d := model.VaultDisplay{
		Capital:          f.USD(s.Capital),
		Apr:              f.Percent(s.Apr * 100),
		PeriodReturn:     f.OptionalPercent(r.PeriodReturnPct),
		Last30dReturn:    f.OptionalPercent(s.Last30dReturnPct),
		AvgMonthlyReturn: f.OptionalPercent(r.AvgMonthlyPct),
		ProjectedAnnual:  f.OptionalPercent(r.ProjectedAnnualPct),
		DaysActive:       strconv.Itoa(r.DaysActive),
		Source:           r.Source,
	}
	switch {
	case !r.Available():
		d.UnavailableNote = i18n.T(lang, "stats.return.unavailable")
	case r.Source == returns.SourceLegacy:
		d.UnavailableNote = i18n.T(lang, "stats.return.legacy")
	}
	return d
}

func (h *Handler) VaultReturnsGet() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		snapshot, err := h.latest()
		if err != nil {
			response.JSON(ctx, err, nil)
			return
		}
		response.JSON(ctx, nil, snapshot.Returns())
	}
}

// VaultMonthlyGet 月度收益表，没有数据的月份显示 N/A
func (h *Handler) VaultMonthlyGet() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		snapshot, err := h.latest()
		if err != nil {
			response.JSON(ctx, err, nil)
			return
		}
		f := format.New(language(ctx))
		months := snapshot.Returns().MonthlyBreakdown
		rows := make([]*model.MonthlyRow, 0, len(months))
		for _, m := range months {
			rows = append(rows, &model.MonthlyRow{
				Label:     m.Label(),
				Year:      m.Year,
				Month:     m.Month,
				ReturnPct: m.ReturnPct,
				Display:   f.OptionalPercent(m.ReturnPct),
			})
		}
		response.JSON(ctx, nil, rows)
	}
}

func (h *Handler) VaultHistoryGet() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var req model.VaultHistoryReq
		if err := ctx.ShouldBindQuery(&req); err != nil {
			response.JSON(ctx, validateErr(ctx, err), nil)
			return
		}
		res, err := h.service.History(ctx.Request.Context(), req.Limit)
		if err != nil {
			response.JSON(ctx, err, nil)
			return
		}
		response.JSON(ctx, nil, res)
	}
}

// VaultRefresh 手动触发一次刷新
func (h *Handler) VaultRefresh() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		snapshot, err := h.service.Refresh(ctx.Request.Context())
		if err != nil {
			response.JSON(ctx, err, nil)
			return
		}
		response.JSON(ctx, nil, snapshot)
	}
}

func (h *Handler) CalculatorGet() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var req model.CalculatorReq
		if err := ctx.ShouldBindQuery(&req); err != nil {
			response.JSON(ctx, validateErr(ctx, err), nil)
			return
		}
		snapshot, err := h.latest()
		if err != nil {
			response.JSON(ctx, err, nil)
			return
		}
		response.JSON(ctx, nil, service.Calculator(req.Amount, snapshot))
	}
}

// I18nGet 返回某个语言的完整文案表
func (h *Handler) I18nGet() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		lang := ctx.Param("lang")
		if !i18n.Supported(lang) {
			response.JSON(ctx, errors.WithCode(ecode.NotFoundErr, "unsupported language %q", lang), nil)
			return
		}
		response.JSON(ctx, nil, i18n.Labels(lang))
	}
}
