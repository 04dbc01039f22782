package database

import (
	"fmt"
	"strings"

	"financials/config"
	"financials/models"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Init 初始化数据库连接并迁移表结构
func Init(cfg *config.Config, log *zap.Logger) error {
	db, err := Open(&cfg.Database, cfg.Server.Mode)
	if err != nil {
		return err
	}
	DB = db

	log.Info("数据库初始化成功",
		zap.String("driver", cfg.Database.Driver),
		zap.String("dbname", cfg.Database.DBName))
	return nil
}

// Open 按驱动类型打开连接、设置连接池并自动迁移
func Open(cfg *config.DatabaseConfig, mode string) (*gorm.DB, error) {
	dialector, err := dialectorFor(cfg)
	if err != nil {
		return nil, err
	}

	level := logger.Warn
	if mode == "debug" {
		level = logger.Info
	}
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(level),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	// 获取底层 *sql.DB 连接池配置
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if driverName(cfg) == "sqlite" {
		// 内存库每个连接都是独立的数据库
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxIdleConns(10)  // 最大空闲连接数
		sqlDB.SetMaxOpenConns(100) // 最大打开连接数
	}

	if err := Migrate(db); err != nil {
		return nil, fmt.Errorf("迁移数据库失败: %w", err)
	}
	return db, nil
}

// Migrate 自动迁移数据库表
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Property{},
		&models.Expense{},
		&models.Unit{},
	)
}

func driverName(cfg *config.DatabaseConfig) string {
	d := strings.ToLower(strings.TrimSpace(cfg.Driver))
	if d == "" {
		return "mysql"
	}
	return d
}

func dialectorFor(cfg *config.DatabaseConfig) (gorm.Dialector, error) {
	switch driverName(cfg) {
	case "mysql":
		// 构建 MySQL DSN 连接字符串
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=%s&parseTime=True&loc=Local",
			cfg.Username,
			cfg.Password,
			cfg.Host,
			cfg.Port,
			cfg.DBName,
			cfg.Charset,
		)
		return mysql.Open(dsn), nil
	case "postgres":
		dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			cfg.Host,
			cfg.Port,
			cfg.Username,
			cfg.Password,
			cfg.DBName,
			cfg.SSLMode,
		)
		return postgres.Open(dsn), nil
	case "sqlite":
		path := cfg.Path
		if path == "" {
			path = "financials.db"
		}
		return sqlite.Open(path), nil
	}
	return nil, fmt.Errorf("不支持的数据库驱动: %s", cfg.Driver)
}

// GetDB 获取数据库连接
func GetDB() *gorm.DB {
	return DB
}
