package conf

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

// 配置加载（vault 地址、数据源、缓存等）

type HyperliquidConfig struct {
	ApiURL       string        `yaml:"api-url" validate:"required,url"`
	VaultAddress string        `yaml:"vault-address" validate:"required,startswith=0x,len=42"`
	Timeout      time.Duration `yaml:"timeout"`
	MaxRetries   int           `yaml:"max-retries" validate:"gte=1,lte=10"`
	BackoffBase  time.Duration `yaml:"backoff-base"`
}

type ReturnsConfig struct {
	// PnL 与净值样本的匹配窗口，经验值，默认 15 分钟
	MatchTolerance time.Duration `yaml:"match-tolerance" validate:"gt=0"`
	// 起始日期，用于计算运行天数（YYYY-MM-DD，UTC）
	StartDate string `yaml:"start-date" validate:"required,datetime=2006-01-02"`
	// TWR 无结果时是否退回旧的 follower 权益口径
	LegacyFallback bool `yaml:"legacy-fallback"`
}

type RefreshConfig struct {
	Interval time.Duration `yaml:"interval" validate:"gte=10s"`
	CacheTTL time.Duration `yaml:"cache-ttl"`
}

type ServerConfig struct {
	StaticDir   string `yaml:"static-dir"`
	MetricsPath string `yaml:"metrics-path"`
}

type TradesConfig struct {
	MetricsFile string `yaml:"metrics-file"`
}

type RecorderConfig struct {
	Path string `yaml:"path"`
}

type Db struct {
	Enabled  bool   `yaml:"enabled"`
	DbName   string `yaml:"dbname"`
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	// 每个 vault 保留的快照条数，<=0 不清理
	HistoryKeep int `yaml:"history-keep"`
}

type LogConfig struct {
	Level      string `yaml:"level" validate:"omitempty,oneof=debug info warn error"`
	FileName   string `yaml:"file-name"`
	TimeFormat string `yaml:"time-format"`
	MaxSize    int    `yaml:"max-size"`
	MaxBackups int    `yaml:"max-backups"`
	MaxAge     int    `yaml:"max-age"`
	Compress   bool   `yaml:"compress"`
	LocalTime  bool   `yaml:"local-time"`
	Console    bool   `yaml:"console"`
}

// RedisConfig is used to configure redis
type RedisConfig struct {
	Enabled      bool   `yaml:"enabled"`
	Addr         string `yaml:"address"`
	Password     string `yaml:"password"`
	Db           int    `yaml:"db"`
	PoolSize     int    `yaml:"pool-size"`
	MinIdleConns int    `yaml:"min-idle-conns"`
	IdleTimeout  int    `yaml:"idle-timeout"`
}

type Config struct {
	AppName      string `yaml:"app_name" validate:"required"`
	Listen       string `yaml:"listen" validate:"required"`
	Mode         string `yaml:"mode" validate:"omitempty,oneof=debug release test"`
	Language     string `yaml:"language" validate:"omitempty,oneof=en fr"`
	MaxPingCount int    `yaml:"max-ping-count"`
	NodeId       int64  `yaml:"node-id" validate:"gte=0,lte=1023"` // snowflake 节点号

	Hyperliquid HyperliquidConfig `yaml:"hyperliquid"`
	Returns     ReturnsConfig     `yaml:"returns"`
	Refresh     RefreshConfig     `yaml:"refresh"`
	Server      ServerConfig      `yaml:"server"`
	Trades      TradesConfig      `yaml:"trades"`
	Recorder    RecorderConfig    `yaml:"recorder"`
	Db          `yaml:"database"`
	Log         LogConfig   `yaml:"log"`
	Redis       RedisConfig `yaml:"redis"`
}

var AppConfig Config

// LoadConfig 读取 yaml，叠加 .env 与环境变量，补默认值并校验
func LoadConfig(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("Read config file error %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return err
	}
	AppConfig = *cfg
	return nil
}

// Parse 解析配置内容，不修改全局 AppConfig
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("Unmarshal config yaml error: %w", err)
	}
	// .env 不存在时忽略
	_ = godotenv.Load()
	cfg.applyEnv()
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("VAULT_ADDRESS"); v != "" {
		c.Hyperliquid.VaultAddress = v
	}
	if v := os.Getenv("HYPERLIQUID_API_URL"); v != "" {
		c.Hyperliquid.ApiURL = v
	}

	dbUser := os.Getenv("DB_USER")
	dbPass := os.Getenv("DB_PASSWORD")
	dbHost := os.Getenv("DB_HOST")
	if dbUser != "" && dbPass != "" && dbHost != "" {
		c.Username = dbUser
		c.Db.Password = dbPass
		c.Host = dbHost
		if v := os.Getenv("DB_PORT"); v != "" {
			c.Port = v
		}
		if v := os.Getenv("DB_NAME"); v != "" {
			c.DbName = v
		}
	}

	redisHost := os.Getenv("REDIS_HOST")
	redisPort := os.Getenv("REDIS_PORT")
	if redisHost != "" && redisPort != "" {
		c.Redis.Addr = fmt.Sprintf("%s:%s", redisHost, redisPort)
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		c.Redis.Password = v
	}
	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Redis.Db = n
		}
	}
}

func (c *Config) applyDefaults() {
	if c.AppName == "" {
		c.AppName = "vaultdash"
	}
	if c.Listen == "" {
		c.Listen = ":8000"
	}
	if c.Language == "" {
		c.Language = "en"
	}
	if c.MaxPingCount == 0 {
		c.MaxPingCount = 10
	}
	if c.Hyperliquid.ApiURL == "" {
		c.Hyperliquid.ApiURL = "https://api.hyperliquid.xyz"
	}
	if c.Hyperliquid.Timeout == 0 {
		c.Hyperliquid.Timeout = 15 * time.Second
	}
	if c.Hyperliquid.MaxRetries == 0 {
		c.Hyperliquid.MaxRetries = 5
	}
	if c.Hyperliquid.BackoffBase == 0 {
		c.Hyperliquid.BackoffBase = 2 * time.Second
	}
	c.Hyperliquid.VaultAddress = strings.ToLower(strings.TrimSpace(c.Hyperliquid.VaultAddress))
	if c.Returns.MatchTolerance == 0 {
		c.Returns.MatchTolerance = 15 * time.Minute
	}
	if c.Returns.StartDate == "" {
		c.Returns.StartDate = "2025-10-01"
	}
	if c.Refresh.Interval == 0 {
		c.Refresh.Interval = time.Minute
	}
	if c.Refresh.CacheTTL == 0 {
		c.Refresh.CacheTTL = 30 * time.Second
	}
	if c.Server.MetricsPath == "" {
		c.Server.MetricsPath = "/metrics"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

var validate = validator.New()

// Validate 校验所有字段，一次性返回全部错误
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	var all error
	for _, fe := range verrs {
		all = multierr.Append(all, fmt.Errorf("config %s: failed on '%s' (value %v)", fe.Namespace(), fe.Tag(), fe.Value()))
	}
	return all
}

// StartTime 起始日期（UTC 零点）
func (c ReturnsConfig) StartTime() time.Time {
	t, err := time.ParseInLocation("2006-01-02", c.StartDate, time.UTC)
	if err != nil {
		return time.Date(2025, time.October, 1, 0, 0, 0, 0, time.UTC)
	}
	return t
}
