/*
 * @module service/analytics/analytics_service_test
 * @description 数据分析服务单元测试，覆盖筛选语义、汇总统计与各类图表聚合
 * @architecture 测试层
 * @documentReference dev_docs/test_plan.md
 * @stateFlow 构造样本行集 -> 执行聚合 -> 验证标签与数值
 * @rules 聚合计算不得修改输入行集
 * @dependencies testing, stretchr/testify, testutil
 */

package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restaurant-dashboard-service/service/models"
	"restaurant-dashboard-service/testutil"
)

func TestFilterByCity(t *testing.T) {
	svc := NewService()
	rows := testutil.SampleRestaurants()

	filtered := svc.Filter(rows, models.FilterParams{City: "Delhi"})
	require.Len(t, filtered, 3)
	for _, r := range filtered {
		assert.Equal(t, "Delhi", r.City)
	}

	// "all"等价于不过滤
	assert.Len(t, svc.Filter(rows, models.FilterParams{City: "all"}), len(rows))
}

func TestFilterByPriceRangeAndRating(t *testing.T) {
	svc := NewService()
	rows := testutil.SampleRestaurants()

	assert.Len(t, svc.Filter(rows, models.FilterParams{PriceRange: 1}), 2)
	assert.Len(t, svc.Filter(rows, models.FilterParams{MinRating: 4.0}), 2)
	assert.Len(t, svc.Filter(rows, models.FilterParams{City: "Delhi", MinRating: 4.0}), 2)
}

func TestFilterBySearch(t *testing.T) {
	svc := NewService()
	rows := testutil.SampleRestaurants()

	// 搜索对名称/菜系/城市做大小写不敏感的子串匹配
	assert.Len(t, svc.Filter(rows, models.FilterParams{Search: "BIRYANI"}), 1)
	assert.Len(t, svc.Filter(rows, models.FilterParams{Search: "north indian"}), 3)
	assert.Len(t, svc.Filter(rows, models.FilterParams{Search: "mumbai"}), 1)
	assert.Empty(t, svc.Filter(rows, models.FilterParams{Search: "nowhere"}))
}

func TestStats(t *testing.T) {
	svc := NewService()
	stats := svc.Stats(testutil.SampleRestaurants())

	assert.Equal(t, 5, stats.TotalRestaurants)
	assert.Equal(t, 3, stats.UniqueCities)
	// 未评分行不计入均值：(4.6+4.1+3.8+3.2)/4 = 3.925 -> 3.9
	assert.Equal(t, 3.9, stats.AvgRating)
}

func TestStatsEmptyRows(t *testing.T) {
	svc := NewService()
	stats := svc.Stats(nil)

	assert.Zero(t, stats.TotalRestaurants)
	assert.Zero(t, stats.AvgRating)
	assert.Zero(t, stats.UniqueCities)
}

func TestRatingDistribution(t *testing.T) {
	svc := NewService()
	data := svc.RatingDistribution(testutil.SampleRestaurants())

	require.Equal(t, []string{
		"Excellent (4.5+)",
		"Very Good (4.0-4.4)",
		"Good (3.5-3.9)",
		"Average (3.0-3.4)",
		"Poor (<3.0)",
	}, data.Labels)
	assert.Equal(t, []float64{1, 1, 1, 1, 1}, data.Values)
}

func TestTopCities(t *testing.T) {
	svc := NewService()
	data := svc.TopCities(testutil.SampleRestaurants())

	require.Len(t, data.Labels, 3)
	assert.Equal(t, "Delhi", data.Labels[0])
	assert.Equal(t, 3.0, data.Values[0])
	// 数量相同按名称升序，输出稳定
	assert.Equal(t, []string{"Delhi", "Hyderabad", "Mumbai"}, data.Labels)
}

func TestPriceDistribution(t *testing.T) {
	svc := NewService()
	data := svc.PriceDistribution(testutil.SampleRestaurants())

	assert.Equal(t, []string{"Budget", "Affordable", "Mid-range", "Expensive"}, data.Labels)
	assert.Equal(t, []float64{2, 1, 1, 1}, data.Values)
}

func TestPopularCuisines(t *testing.T) {
	svc := NewService()
	data := svc.PopularCuisines(testutil.SampleRestaurants())

	require.NotEmpty(t, data.Labels)
	assert.Equal(t, "North Indian", data.Labels[0])
	assert.Equal(t, 3.0, data.Values[0])
}

func TestServiceAvailability(t *testing.T) {
	svc := NewService()
	data := svc.ServiceAvailability(testutil.SampleRestaurants())

	assert.Equal(t, []string{"Table Booking", "Online Delivery", "Currently Delivering"}, data.Labels)
	assert.Equal(t, []float64{2, 3, 1}, data.Values)
}

func TestCostByCity(t *testing.T) {
	svc := NewService()
	data, err := svc.CostByCity(testutil.SampleRestaurants())
	require.NoError(t, err)

	// 均价降序：Mumbai 1200、Delhi (800+600)/2=700、Hyderabad 400；零消费行不参与
	assert.Equal(t, []string{"Mumbai", "Delhi", "Hyderabad"}, data.Labels)
	assert.Equal(t, []float64{1200, 700, 400}, data.Values)
}

func TestCostByCityEmpty(t *testing.T) {
	svc := NewService()

	data, err := svc.CostByCity(nil)
	require.NoError(t, err)
	assert.Empty(t, data.Labels)

	// 所有行消费为0时同样输出空结果
	data, err = svc.CostByCity([]models.Restaurant{{Name: "Free Food", City: "Delhi"}})
	require.NoError(t, err)
	assert.Empty(t, data.Labels)
}

func TestInsights(t *testing.T) {
	svc := NewService()
	insights := svc.Insights(testutil.SampleRestaurants())

	require.Len(t, insights, 3)
	assert.Equal(t, "highlight", insights[0].Type)
	assert.Contains(t, insights[0].Content, "Spice Garden")
	assert.Equal(t, "info", insights[1].Type)
	assert.Contains(t, insights[1].Content, "Mumbai")
	assert.Equal(t, "trend", insights[2].Type)
	assert.Contains(t, insights[2].Content, "North Indian")
}

func TestInsightsEmptyRows(t *testing.T) {
	svc := NewService()
	assert.Empty(t, svc.Insights(nil))
}

func TestCities(t *testing.T) {
	svc := NewService()
	cities := svc.Cities(testutil.SampleRestaurants())
	assert.Equal(t, []string{"Delhi", "Hyderabad", "Mumbai"}, cities)
}
