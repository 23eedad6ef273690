package service

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"

	"vaultdash/internal/consts"
	"vaultdash/internal/dao"
	"vaultdash/internal/metrics"
	"vaultdash/internal/model"
	"vaultdash/internal/model/entity"
	"vaultdash/internal/returns"
	"vaultdash/internal/trades"
	"vaultdash/pkg/cache"
	"vaultdash/pkg/errors"
	"vaultdash/pkg/errors/ecode"
	"vaultdash/pkg/hype/types"
	"vaultdash/pkg/idgen"
	"vaultdash/pkg/logger"
)

// VaultFetcher 拉取 vault 原始数据，rest.HyperliquidRestClient 实现了该接口
type VaultFetcher interface {
	VaultDetails(ctx context.Context, vaultAddress string) (*types.VaultDetails, error)
}

// Recorder 记录每次计算出的快照
type Recorder interface {
	Record(v any) error
}

type VaultServiceOptions struct {
	VaultAddress   string
	MatchTolerance time.Duration
	StartDate      time.Time
	LegacyFallback bool
	CacheTTL       time.Duration
	TradesFile     string
	HistoryKeep    int // 数据库最多保留的快照条数，<=0 不清理
}

type Option func(*VaultService)

func WithStore(store cache.Store) Option {
	return func(s *VaultService) { s.store = store }
}

func WithDao(d dao.VaultDao) Option {
	return func(s *VaultService) { s.dao = d }
}

func WithRecorder(r Recorder) Option {
	return func(s *VaultService) { s.recorder = r }
}

func WithClock(now func() time.Time) Option {
	return func(s *VaultService) { s.now = now }
}

const subscriberBuffer = 4

type VaultService struct {
	client   VaultFetcher
	opts     VaultServiceOptions
	engine   *returns.Engine
	store    cache.Store
	dao      dao.VaultDao
	recorder Recorder
	now      func() time.Time

	// 刷新串行执行
	refreshMu sync.Mutex
	latest    atomic.Pointer[model.VaultSnapshot]
	trades    atomic.Pointer[trades.Metrics]

	subMu   sync.Mutex
	subs    map[int]chan *model.VaultSnapshot
	nextSub int
}

func NewVaultService(client VaultFetcher, opts VaultServiceOptions, options ...Option) *VaultService {
	opts.VaultAddress = strings.ToLower(opts.VaultAddress)
	if opts.StartDate.IsZero() {
		opts.StartDate = time.Date(2025, time.October, 1, 0, 0, 0, 0, time.UTC)
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = consts.RedisExpDefault
	}
	s := &VaultService{
		client: client,
		opts:   opts,
		engine: returns.NewEngine(opts.MatchTolerance),
		store:  cache.NewMemoryStore(0, opts.CacheTTL),
		now:    time.Now,
		subs:   make(map[int]chan *model.VaultSnapshot),
	}
	for _, o := range options {
		o(s)
	}
	return s
}

// Refresh 拉取数据、计算收益并发布新的快照。
// 只有拉取失败会返回错误，落库、记录、指标的失败只打日志。
func (s *VaultService) Refresh(ctx context.Context) (*model.VaultSnapshot, error) {
	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()

	begin := time.Now()
	details, err := s.loadDetails(ctx)
	if err != nil {
		metrics.RefreshTotal.WithLabelValues("error").Inc()
		logger.Errorf("VaultService 拉取 vault 数据失败: %v", err)
		return nil, errors.Wrap(err, ecode.VaultUnavailable, "vault data unavailable")
	}

	snapshot := s.buildSnapshot(details, s.now())
	s.latest.Store(snapshot)
	s.publish(snapshot)

	metrics.RefreshTotal.WithLabelValues("ok").Inc()
	metrics.RefreshDuration.Observe(time.Since(begin).Seconds())
	s.observe(snapshot)
	s.persist(ctx, snapshot)
	if s.recorder != nil {
		if err := s.recorder.Record(snapshot); err != nil {
			logger.Warnf("VaultService 记录快照失败: %v", err)
		}
	}
	return snapshot, nil
}

// loadDetails 先查缓存，缓存缺失或异常时请求接口并回写
func (s *VaultService) loadDetails(ctx context.Context) (*types.VaultDetails, error) {
	key := consts.VaultDetailsPrefix + s.opts.VaultAddress
	if s.store != nil {
		data, err := s.store.Get(ctx, key)
		switch {
		case err == nil:
			var details types.VaultDetails
			if err := json.Unmarshal(data, &details); err == nil {
				metrics.PayloadCache.WithLabelValues("hit").Inc()
				return &details, nil
			}
			logger.Warnf("VaultService 缓存数据解析失败, key=%s", key)
			metrics.PayloadCache.WithLabelValues("error").Inc()
		case errors.Is(err, cache.ErrMiss):
			metrics.PayloadCache.WithLabelValues("miss").Inc()
		default:
			logger.Errorf("缓存连接异常: %v", err)
			metrics.PayloadCache.WithLabelValues("error").Inc()
		}
	}

	details, err := s.client.VaultDetails(ctx, s.opts.VaultAddress)
	if err != nil {
		return nil, err
	}
	if s.store != nil {
		data, err := json.Marshal(details)
		if err != nil {
			logger.Errorf("VaultService 序列化缓存失败: %v", err)
			return details, nil
		}
		if err := s.store.Set(ctx, key, data, s.opts.CacheTTL); err != nil {
			logger.Errorf("VaultService 存储缓存失败: %v", err)
		}
	}
	return details, nil
}

func (s *VaultService) buildSnapshot(details *types.VaultDetails, now time.Time) *model.VaultSnapshot {
	allTime, _ := details.Portfolio.Window(types.WindowAllTime)
	series := toSeries(allTime)

	result := s.engine.Compute(series, returns.DaysActive(now, s.opts.StartDate))
	result = returns.WithLegacyFallback(result, followerEquities(details.Followers), s.opts.LegacyFallback)

	snapshot := &model.VaultSnapshot{
		Id:            idgen.NextId(),
		VaultAddress:  strings.ToLower(details.VaultAddress),
		Name:          details.Name,
		Leader:        details.Leader,
		Apr:           details.Apr,
		TotalEquity:   details.TotalEquity(),
		FollowerCount: len(details.Followers),
		IsClosed:      details.IsClosed,
		UpdatedAt:     now.UTC(),
		AllTime:       result,
	}
	if snapshot.VaultAddress == "" {
		snapshot.VaultAddress = s.opts.VaultAddress
	}
	if last, ok := series.Last(); ok {
		snapshot.Capital = last.Value
	}
	if trimmed, ok := s.engine.TrimToFundedStart(series); ok {
		snapshot.AccountValue = trimmed.AccountValue
	} else {
		snapshot.AccountValue = series.AccountValue
	}

	if month, ok := details.Portfolio.Window(types.WindowMonth); ok {
		if pct, ok := s.engine.PeriodReturnPct(toSeries(month)); ok {
			snapshot.Last30dReturnPct = &pct
		}
	}
	return snapshot
}

func toSeries(pd types.PeriodData) returns.Series {
	av := make([]returns.TimePoint, 0, len(pd.AccountValue))
	for _, p := range pd.AccountValue {
		av = append(av, returns.TimePoint{Timestamp: p.Millis(), Value: p.Value})
	}
	var pnl []returns.TimePoint
	if len(pd.Pnl) > 0 {
		pnl = make([]returns.TimePoint, 0, len(pd.Pnl))
		for _, p := range pd.Pnl {
			pnl = append(pnl, returns.TimePoint{Timestamp: p.Millis(), Value: p.Value})
		}
	}
	return returns.NewSeries(av, pnl)
}

func followerEquities(followers []types.Follower) []returns.FollowerEquity {
	out := make([]returns.FollowerEquity, 0, len(followers))
	for _, f := range followers {
		out = append(out, returns.FollowerEquity{VaultEquity: f.VaultEquity, AllTimePnl: f.AllTimePnl})
	}
	return out
}

func (s *VaultService) observe(snapshot *model.VaultSnapshot) {
	r := snapshot.AllTime
	metrics.LastRefreshTimestamp.Set(float64(snapshot.UpdatedAt.Unix()))
	metrics.CapitalUSD.Set(snapshot.Capital)
	metrics.Followers.Set(float64(snapshot.FollowerCount))
	metrics.ObserveReturn(metrics.KindPeriod, r.PeriodReturnPct)
	metrics.ObserveReturn(metrics.KindLast30d, snapshot.Last30dReturnPct)
	metrics.ObserveReturn(metrics.KindAvgMonthly, r.AvgMonthlyPct)
	metrics.ObserveReturn(metrics.KindProjectedAnnual, r.ProjectedAnnualPct)
	if r.Available() {
		metrics.ReturnAvailable.Set(1)
	} else {
		metrics.ReturnAvailable.Set(0)
	}
}

func (s *VaultService) persist(ctx context.Context, snapshot *model.VaultSnapshot) {
	if s.dao == nil {
		return
	}
	monthly, err := json.Marshal(snapshot.AllTime.MonthlyBreakdown)
	if err != nil {
		logger.Errorf("VaultService 序列化月度收益失败: %v", err)
		return
	}
	r := snapshot.AllTime
	row := &entity.VaultSnapshot{
		Id:                 snapshot.Id,
		VaultAddress:       snapshot.VaultAddress,
		Name:               snapshot.Name,
		Capital:            snapshot.Capital,
		Apr:                snapshot.Apr,
		TotalEquity:        snapshot.TotalEquity,
		FollowerCount:      snapshot.FollowerCount,
		PeriodReturnPct:    r.PeriodReturnPct,
		Last30dReturnPct:   snapshot.Last30dReturnPct,
		AvgMonthlyPct:      r.AvgMonthlyPct,
		ProjectedAnnualPct: r.ProjectedAnnualPct,
		DaysActive:         r.DaysActive,
		Source:             r.Source,
		Monthly:            datatypes.JSON(monthly),
		CreatedAt:          snapshot.UpdatedAt,
	}
	if err := s.dao.SnapshotCreate(ctx, row); err != nil {
		logger.Errorf("VaultService 快照落库失败: %v", err)
		return
	}
	if s.opts.HistoryKeep > 0 {
		if n, err := s.dao.SnapshotPrune(ctx, snapshot.VaultAddress, s.opts.HistoryKeep); err != nil {
			logger.Warnf("VaultService 清理历史快照失败: %v", err)
		} else if n > 0 {
			logger.Debugf("VaultService 清理历史快照 %d 条", n)
		}
	}
}

// Latest 最近一次成功刷新的快照
func (s *VaultService) Latest() (*model.VaultSnapshot, bool) {
	snapshot := s.latest.Load()
	return snapshot, snapshot != nil
}

// Subscribe 订阅新快照，订阅时如果已有快照会先推送一次；返回的函数用于取消订阅
func (s *VaultService) Subscribe() (<-chan *model.VaultSnapshot, func()) {
	ch := make(chan *model.VaultSnapshot, subscriberBuffer)
	if snapshot := s.latest.Load(); snapshot != nil {
		ch <- snapshot
	}

	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = ch
	metrics.Subscribers.Set(float64(len(s.subs)))
	s.subMu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.subMu.Lock()
			delete(s.subs, id)
			metrics.Subscribers.Set(float64(len(s.subs)))
			s.subMu.Unlock()
			close(ch)
		})
	}
}

// publish 非阻塞推送，消费慢的订阅者直接丢弃本次快照
func (s *VaultService) publish(snapshot *model.VaultSnapshot) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	for id, ch := range s.subs {
		select {
		case ch <- snapshot:
		default:
			logger.Debugf("VaultService 订阅者 %d 消费过慢，丢弃快照", id)
		}
	}
}

// StartUpdater 立即刷新一次，之后按 interval 定时刷新，ctx 结束后退出
func (s *VaultService) StartUpdater(ctx context.Context, interval time.Duration) {
	go func() {
		s.update(ctx)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				logger.Infof("VaultService updater stopped")
				return
			case <-ticker.C:
				s.update(ctx)
			}
		}
	}()
}

// update 并发刷新 vault 数据和交易记录，两者互不影响
func (s *VaultService) update(ctx context.Context) {
	var g errgroup.Group
	g.Go(func() error {
		_, err := s.Refresh(ctx)
		return err
	})
	g.Go(func() error {
		_, err := s.ReloadTrades()
		return err
	})
	if err := g.Wait(); err != nil {
		logger.Warnf("VaultService update: %v", err)
	}
}

// History 数据库里最近的快照，未启用数据库时返回 NotFound
func (s *VaultService) History(ctx context.Context, limit int) ([]*model.VaultHistoryItem, error) {
	if s.dao == nil {
		return nil, errors.WithCode(ecode.NotFoundErr, "snapshot history is disabled")
	}
	rows, err := s.dao.SnapshotList(ctx, s.opts.VaultAddress, limit)
	if err != nil {
		return nil, errors.Wrap(err, ecode.Unknown, "query snapshot history failed")
	}
	items := make([]*model.VaultHistoryItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, &model.VaultHistoryItem{
			Id:               row.Id,
			Capital:          row.Capital,
			Apr:              row.Apr,
			PeriodReturnPct:  row.PeriodReturnPct,
			Last30dReturnPct: row.Last30dReturnPct,
			Source:           row.Source,
			CreatedAt:        row.CreatedAt,
		})
	}
	return items, nil
}

// ReloadTrades 重新读取交易记录文件
func (s *VaultService) ReloadTrades() (*trades.Metrics, error) {
	if s.opts.TradesFile == "" {
		return nil, nil
	}
	m, err := trades.Load(s.opts.TradesFile)
	if err != nil {
		return nil, errors.Wrap(err, ecode.TradesUnavailable, "trade metrics unavailable")
	}
	s.trades.Store(m)
	return m, nil
}

// TradeMetrics 返回已加载的交易记录，还没加载过时同步读取一次
func (s *VaultService) TradeMetrics(_ context.Context) (*trades.Metrics, error) {
	if m := s.trades.Load(); m != nil {
		return m, nil
	}
	m, err := s.ReloadTrades()
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, errors.WithCode(ecode.TradesUnavailable, "trade metrics file is not configured")
	}
	return m, nil
}
