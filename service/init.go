/*
 * @module service/init
 * @description 服务初始化模块，负责审计数据库连接、数据集服务装配与启动加载
 * @architecture 分层架构 - 服务层
 * @documentReference dev_docs/dashboard_requirements.md
 * @stateFlow 应用启动时执行初始化流程：数据库 -> 迁移 -> 服务装配 -> 启动加载 -> 重载触发器
 * @rules 启动加载失败不终止进程，由读请求触发惰性重试；审计数据库优先使用DATABASE_URL指向的Postgres，否则回退本地SQLite
 * @dependencies gorm.io/gorm, gorm.io/driver/postgres, gorm.io/driver/sqlite
 * @refs main.go, api/routes.go
 */

package service

import (
	"log"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"restaurant-dashboard-service/service/analytics"
	"restaurant-dashboard-service/service/cache"
	"restaurant-dashboard-service/service/dataset"
	"restaurant-dashboard-service/service/imputation"
	"restaurant-dashboard-service/service/models"
)

var (
	// DB 审计数据库连接
	DB *gorm.DB
	// GlobalDatasetService 数据集加载服务
	GlobalDatasetService *dataset.Service
	// GlobalAnalyticsService 数据分析服务
	GlobalAnalyticsService *analytics.Service
	// GlobalResponseCache 可选的分析结果响应缓存，未配置Redis时为nil
	GlobalResponseCache *cache.ResponseCache
	// GlobalWatcher 数据集重载触发器
	GlobalWatcher *dataset.Watcher
)

func init() {
	initDatabase()
	runMigrations()
	initServices()
}

// initDatabase 初始化审计数据库连接
func initDatabase() {
	var err error
	if databaseURL := os.Getenv("DATABASE_URL"); databaseURL != "" {
		DB, err = gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
	} else {
		dbPath := getEnvWithDefault("DB_PATH", "dashboard.db")
		DB, err = gorm.Open(sqlite.Open(dbPath), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
	}

	if err != nil {
		log.Fatalf("审计数据库连接失败: %v", err)
	}
	log.Println("审计数据库连接成功")
}

// runMigrations 运行数据库迁移
func runMigrations() {
	if err := DB.AutoMigrate(&models.DatasetLoadRecord{}); err != nil {
		log.Fatalf("审计表迁移失败: %v", err)
	}
}

// initServices 装配服务实例并执行启动加载
func initServices() {
	csvPath := getEnvWithDefault("CSV_PATH", "zomato.csv")

	store := dataset.NewStore()
	imputer := imputation.NewImputer(nil)
	GlobalDatasetService = dataset.NewService(store, imputer, DB, csvPath)
	GlobalAnalyticsService = analytics.NewService()

	var err error
	GlobalResponseCache, err = cache.NewResponseCache()
	if err != nil {
		// 缓存只是加速读路径，初始化失败降级为直接计算
		log.Printf("响应缓存初始化失败，已禁用: %v", err)
		GlobalResponseCache = nil
	}

	// 启动加载失败不致命：文件可能尚未就位，读请求会触发惰性重试
	if _, err := GlobalDatasetService.Reload("startup"); err != nil {
		log.Printf("启动加载数据集失败: %v", err)
	}

	if getEnvWithDefault("WATCH_CSV", "true") == "true" {
		GlobalWatcher = dataset.NewWatcher(GlobalDatasetService)
		if err := GlobalWatcher.Start(os.Getenv("RELOAD_CRON")); err != nil {
			log.Printf("启动数据集重载触发器失败: %v", err)
		}
	}
}

// getEnvWithDefault 获取环境变量，如果不存在则返回默认值
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
