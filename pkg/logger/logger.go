package logger

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/natefinch/lumberjack"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"vaultdash/conf"
)

var (
	mu      sync.RWMutex
	base    *zap.Logger
	sugared *zap.SugaredLogger
)

func init() {
	l, _ := zap.NewDevelopment(zap.AddCallerSkip(1))
	setLogger(l)
}

func setLogger(l *zap.Logger) {
	mu.Lock()
	defer mu.Unlock()
	base = l
	sugared = l.Sugar()
}

// InitLogger 根据配置初始化全局日志：文件按 lumberjack 切割，可选同时输出到控制台
func InitLogger(cfg *conf.LogConfig, appName string) {
	level := zapcore.InfoLevel
	if cfg.Level != "" {
		if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
			level = zapcore.InfoLevel
		}
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "time"
	if cfg.TimeFormat != "" {
		encCfg.EncodeTime = zapcore.TimeEncoderOfLayout(cfg.TimeFormat)
	} else {
		encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	}

	var cores []zapcore.Core
	if cfg.FileName != "" {
		_ = os.MkdirAll(filepath.Dir(cfg.FileName), 0755)
		writer := &lumberjack.Logger{
			Filename:   cfg.FileName,
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge,
			Compress:   cfg.Compress,
			LocalTime:  cfg.LocalTime,
		}
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), zapcore.AddSync(writer), level))
	}
	if cfg.Console || len(cores) == 0 {
		consoleCfg := encCfg
		consoleCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		cores = append(cores, zapcore.NewCore(zapcore.NewConsoleEncoder(consoleCfg), zapcore.Lock(os.Stdout), level))
	}

	l := zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddCallerSkip(1))
	if appName != "" {
		l = l.With(zap.String("app", appName))
	}
	setLogger(l)
}

// Default 返回底层 zap.Logger，给需要结构化字段的组件使用
func Default() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return base
}

func sugar() *zap.SugaredLogger {
	mu.RLock()
	defer mu.RUnlock()
	return sugared
}

// Pair 构造一个日志字段
func Pair(key string, val interface{}) zap.Field {
	return zap.Any(key, val)
}

func Sync() {
	_ = Default().Sync()
}

func Debug(msg string, fields ...zap.Field) { Default().Debug(msg, fields...) }
func Info(msg string, fields ...zap.Field)  { Default().Info(msg, fields...) }
func Warn(msg string, fields ...zap.Field)  { Default().Warn(msg, fields...) }
func Error(msg string, fields ...zap.Field) { Default().Error(msg, fields...) }
func Fatal(msg string, fields ...zap.Field) { Default().Fatal(msg, fields...) }

func Debugf(template string, args ...interface{}) { sugar().Debugf(template, args...) }
func Infof(template string, args ...interface{})  { sugar().Infof(template, args...) }
func Warnf(template string, args ...interface{})  { sugar().Warnf(template, args...) }
func Errorf(template string, args ...interface{}) { sugar().Errorf(template, args...) }
func Fatalf(template string, args ...interface{}) { sugar().Fatalf(template, args...) }
