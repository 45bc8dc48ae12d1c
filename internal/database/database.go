package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/drdeuce/health-agent/internal/config"
	"github.com/drdeuce/health-agent/internal/model"
)

const pingTimeout = 5 * time.Second

// DB Postgres 连接封装，持久化用户、健康记录与会话数据
type DB struct {
	*gorm.DB
}

// New 建立连接、调整连接池并完成自动迁移
func New(cfg *config.Config) (*DB, error) {
	logLevel := gormlogger.Silent
	if cfg.App.Debug {
		logLevel = gormlogger.Info
	}

	db, err := gorm.Open(postgres.Open(cfg.Database.GetDSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel),
		NowFunc: func() time.Time {
			return time.Now().Local()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("unwrap sql.DB: %w", err)
	}
	tunePool(sqlDB, cfg.Database)

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	if err := db.AutoMigrate(model.AllModels...); err != nil {
		return nil, fmt.Errorf("auto migrate: %w", err)
	}

	return &DB{DB: db}, nil
}

// tunePool 应用配置的连接池参数
func tunePool(sqlDB *sql.DB, cfg config.DatabaseConfig) {
	open, idle, lifetime := poolSettings(cfg)
	sqlDB.SetMaxOpenConns(open)
	sqlDB.SetMaxIdleConns(idle)
	sqlDB.SetConnMaxLifetime(lifetime)
}

// poolSettings 解析连接池参数，未配置的项取保守默认值
func poolSettings(cfg config.DatabaseConfig) (open, idle int, lifetime time.Duration) {
	open, idle = cfg.MaxOpenConns, cfg.MaxIdleConns
	if open <= 0 {
		open = 20
	}
	if idle <= 0 {
		idle = 5
	}
	seconds := cfg.MaxLifetime
	if seconds <= 0 {
		seconds = 300
	}
	return open, idle, time.Duration(seconds) * time.Second
}

// Close 关闭底层连接池
func (db *DB) Close() error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Ping 健康检查探测数据库连通性
func (db *DB) Ping(ctx context.Context) error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
