/*
 * @module testutil/test_helper
 * @description 测试工具和辅助函数
 * @architecture 测试基础设施 - 提供测试通用工具和数据工厂
 * @documentReference dev_docs/test_plan.md
 * @stateFlow 测试环境初始化 -> 测试数据创建 -> 测试执行 -> 清理资源
 * @rules 提供可重用的测试工具，确保测试环境的一致性
 * @dependencies gorm, sqlite, testify
 * @refs service/models
 */

package testutil

import (
	"fmt"
	"net/http"
	"net/http/httptest"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"restaurant-dashboard-service/service/models"
)

// TestDB 测试数据库配置
type TestDB struct {
	DB *gorm.DB
}

// NewTestDB 创建内存SQLite测试数据库并迁移审计表
func NewTestDB() *TestDB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		panic(fmt.Sprintf("failed to connect test database: %v", err))
	}

	if err := db.AutoMigrate(&models.DatasetLoadRecord{}); err != nil {
		panic(fmt.Sprintf("failed to migrate test database: %v", err))
	}

	return &TestDB{DB: db}
}

// Close 关闭测试数据库连接
func (t *TestDB) Close() {
	if sqlDB, err := t.DB.DB(); err == nil {
		sqlDB.Close()
	}
}

// SampleRestaurants 创建一组覆盖常见筛选场景的餐厅测试数据
func SampleRestaurants() []models.Restaurant {
	return []models.Restaurant{
		{Name: "Spice Garden", City: "Delhi", Cuisines: "North Indian, Chinese", Rating: 4.6, Votes: 1200, AverageCost: 800, PriceRange: 3, HasTableBooking: true, HasOnlineDelivery: true},
		{Name: "Cafe Mocha", City: "Delhi", Cuisines: "Cafe, Italian", Rating: 4.1, Votes: 560, AverageCost: 600, PriceRange: 2, HasOnlineDelivery: true, IsDeliveringNow: true},
		{Name: "Biryani House", City: "Hyderabad", Cuisines: "Biryani, North Indian", Rating: 3.8, Votes: 2100, AverageCost: 400, PriceRange: 1, HasOnlineDelivery: true},
		{Name: "Sea Breeze", City: "Mumbai", Cuisines: "Seafood", Rating: 3.2, Votes: 330, AverageCost: 1200, PriceRange: 4, HasTableBooking: true},
		{Name: "Corner Dhaba", City: "Delhi", Cuisines: "North Indian", Rating: 0, Votes: 12, AverageCost: 0, PriceRange: 1},
	}
}

// FullyMissingMask 构建指定行数的掩码表，eligible下标处三个原始服务字段全缺失
func FullyMissingMask(total int, eligible ...int) []models.ServiceMask {
	mask := make([]models.ServiceMask, total)
	for _, idx := range eligible {
		mask[idx] = models.ServiceMask{
			TableBookingMissing:   true,
			OnlineDeliveryMissing: true,
			DeliveringNowMissing:  true,
		}
	}
	return mask
}

// ExecuteRequest 对给定handler执行HTTP请求并返回响应记录器
func ExecuteRequest(handler http.Handler, method, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}
