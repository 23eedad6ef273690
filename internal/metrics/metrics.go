package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RefreshTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "vault_refresh_total",
		Help: "Vault refreshes by result",
	}, []string{"result"})
	RefreshDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "vault_refresh_duration_seconds",
		Help:    "Fetch plus compute time of one refresh",
		Buckets: prometheus.ExponentialBuckets(0.05, 2, 10),
	})
	PayloadCache = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "vault_payload_cache_total",
		Help: "Payload cache lookups by result",
	}, []string{"result"})
	LastRefreshTimestamp = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "vault_last_refresh_timestamp_seconds",
		Help: "Unix time of the last successful refresh",
	})

	CapitalUSD = prometheus.NewGauge(prometheus.GaugeOpts{Name: "vault_capital_usd", Help: "Latest account value"})
	Followers  = prometheus.NewGauge(prometheus.GaugeOpts{Name: "vault_followers", Help: "Follower count"})
	ReturnPct  = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "vault_return_pct",
		Help: "Return figures in percent; absent figures are not exported",
	}, []string{"kind"})
	ReturnAvailable = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "vault_return_available",
		Help: "1 when the all-time return could be computed",
	})
	Subscribers = prometheus.NewGauge(prometheus.GaugeOpts{Name: "vault_ws_subscribers", Help: "Open snapshot subscriptions"})
)

// 收益指标的 kind 标签
const (
	KindPeriod          = "period"
	KindLast30d         = "last_30d"
	KindAvgMonthly      = "avg_monthly"
	KindProjectedAnnual = "projected_annual"
)

// ObserveReturn 导出一个收益值，nil 时删除对应序列，避免把缺失当成 0
func ObserveReturn(kind string, v *float64) {
	if v == nil {
		ReturnPct.DeleteLabelValues(kind)
		return
	}
	ReturnPct.WithLabelValues(kind).Set(*v)
}

func Init() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		RefreshTotal, RefreshDuration, PayloadCache, LastRefreshTimestamp,
		CapitalUSD, Followers, ReturnPct, ReturnAvailable, Subscribers,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})
}
