package database

import (
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/d60-Lab/board-api/config"
	"github.com/d60-Lab/board-api/pkg/logger"
)

// 进程内 sqlite；连接只有一个，关闭即丢数据
const memoryDSN = ":memory:"

type gormWriter struct{}

func (gormWriter) Printf(format string, args ...any) { logger.Sugar.Infof(format, args...) }

func gormLogLevel(level string) gormlogger.LogLevel {
	switch level {
	case "error":
		return gormlogger.Error
	case "warn":
		return gormlogger.Warn
	case "info":
		return gormlogger.Info
	default:
		return gormlogger.Silent
	}
}

// InitDB 打开 sqlite 内存库
func InitDB(cfg *config.Config) (*gorm.DB, error) {
	gormConfig := &gorm.Config{
		Logger: gormlogger.New(gormWriter{}, gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  gormLogLevel(cfg.Store.LogLevel),
			IgnoreRecordNotFoundError: true,
		}),
	}

	db, err := gorm.Open(sqlite.Open(memoryDSN), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}
	// 每个新连接都是一个空库，必须固定为单连接
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(0)
	sqlDB.SetConnMaxIdleTime(0)

	return db, nil
}
