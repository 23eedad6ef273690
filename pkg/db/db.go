package db

import (
	"fmt"
	"sync"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"vaultdash/conf"
)

var (
	DB   *gorm.DB
	once sync.Once
)

type Config struct {
	User      string
	Password  string
	Host      string
	Port      string
	DBName    string
	Charset   string // optional
	Loc       string // optional
	ParseTime bool   // optional
}

func NewConfig(c conf.Db) Config {
	return Config{
		User:      c.Username,
		Password:  c.Password,
		Host:      c.Host,
		Port:      c.Port,
		DBName:    c.DbName,
		Charset:   "utf8mb4",
		Loc:       "UTC",
		ParseTime: true,
	}
}

func (cfg Config) DSN() string {
	charset := cfg.Charset
	if charset == "" {
		charset = "utf8mb4"
	}
	loc := cfg.Loc
	if loc == "" {
		loc = "UTC"
	}
	host := cfg.Host
	if cfg.Port != "" {
		host = host + ":" + cfg.Port
	}
	return fmt.Sprintf(
		"%s:%s@tcp(%s)/%s?charset=%s&parseTime=%t&loc=%s",
		cfg.User, cfg.Password, host, cfg.DBName, charset, cfg.ParseTime, loc,
	)
}

// Init 打开数据库连接并设置连接池，只会初始化一次
func Init(cfg Config, models ...interface{}) (*gorm.DB, error) {
	var initErr error
	once.Do(func() {
		conn, err := gorm.Open(mysql.Open(cfg.DSN()), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Warn),
		})
		if err != nil {
			initErr = fmt.Errorf("failed to connect to database: %w", err)
			return
		}

		sqlDB, err := conn.DB()
		if err != nil {
			initErr = err
			return
		}
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(100)
		sqlDB.SetConnMaxLifetime(time.Hour)

		if len(models) > 0 {
			if err := conn.AutoMigrate(models...); err != nil {
				initErr = fmt.Errorf("auto migrate: %w", err)
				return
			}
		}
		DB = conn
	})
	if initErr != nil {
		return nil, initErr
	}
	if DB == nil {
		return nil, fmt.Errorf("database init failed earlier")
	}
	return DB, nil
}

func Close() {
	if DB == nil {
		return
	}
	if sqlDB, err := DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
