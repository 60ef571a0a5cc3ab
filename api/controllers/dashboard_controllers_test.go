/*
 * @module api/controllers/dashboard_controllers_test
 * @description 仪表盘控制器单元测试
 * @architecture 测试层
 * @documentReference dev_docs/test_plan.md
 * @stateFlow 注入数据集快照 -> 请求构建 -> 响应验证
 * @rules 测试通过交换全局数据集快照构造场景，不依赖外部文件
 * @dependencies testing, net/http/httptest, stretchr/testify
 */

package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restaurant-dashboard-service/service"
	"restaurant-dashboard-service/service/dataset"
	"restaurant-dashboard-service/testutil"
)

// swapTestSnapshot 注入测试快照并在测试结束后恢复原状态
func swapTestSnapshot(t *testing.T) *dataset.Snapshot {
	t.Helper()
	previous := service.GlobalDatasetService.Store().Current()
	snap := &dataset.Snapshot{
		Version:  "test-version",
		LoadedAt: time.Now(),
		Rows:     testutil.SampleRestaurants(),
	}
	service.GlobalDatasetService.Store().Swap(snap)
	t.Cleanup(func() {
		service.GlobalDatasetService.Store().Swap(previous)
	})
	return snap
}

func decodeAPIResponse(t *testing.T, w *httptest.ResponseRecorder) APIResponse {
	t.Helper()
	var response APIResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	return response
}

func TestHealthReportsDatasetStatus(t *testing.T) {
	snap := swapTestSnapshot(t)
	controller := NewHealthController()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	controller.Health(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response HealthResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, "ok", response.Status)
	assert.True(t, response.DataLoaded)
	assert.Equal(t, len(snap.Rows), response.RestaurantCount)
	assert.Equal(t, snap.Version, response.DatasetVersion)
}

func TestReadyWithoutDataset(t *testing.T) {
	previous := service.GlobalDatasetService.Store().Current()
	service.GlobalDatasetService.Store().Swap(nil)
	t.Cleanup(func() {
		service.GlobalDatasetService.Store().Swap(previous)
	})

	controller := NewHealthController()
	req := httptest.NewRequest(http.MethodGet, "/ready", nil)
	w := httptest.NewRecorder()
	controller.Ready(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestGetDataWithFilters(t *testing.T) {
	swapTestSnapshot(t)
	controller := NewRestaurantController()

	req := httptest.NewRequest(http.MethodGet, "/api/data?city=Delhi&min_rating=4.0", nil)
	w := httptest.NewRecorder()
	controller.GetData(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	response := decodeAPIResponse(t, w)
	assert.Equal(t, 0, response.Status)

	rows, ok := response.Data.([]interface{})
	require.True(t, ok, "响应数据应该是数组类型")
	assert.Len(t, rows, 2)
}

func TestGetCities(t *testing.T) {
	swapTestSnapshot(t)
	controller := NewRestaurantController()

	req := httptest.NewRequest(http.MethodGet, "/api/filters/cities", nil)
	w := httptest.NewRecorder()
	controller.GetCities(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	response := decodeAPIResponse(t, w)

	cities, ok := response.Data.([]interface{})
	require.True(t, ok)
	assert.Equal(t, []interface{}{"Delhi", "Hyderabad", "Mumbai"}, cities)
}

func TestGetStats(t *testing.T) {
	swapTestSnapshot(t)
	controller := NewAnalyticsController()

	req := httptest.NewRequest(http.MethodGet, "/api/stats", nil)
	w := httptest.NewRecorder()
	controller.GetStats(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	response := decodeAPIResponse(t, w)
	assert.Equal(t, 0, response.Status)

	data, ok := response.Data.(map[string]interface{})
	require.True(t, ok, "响应数据应该是map类型")
	assert.EqualValues(t, 5, data["total_restaurants"])
	assert.EqualValues(t, 3, data["unique_cities"])
	assert.InDelta(t, 3.9, data["avg_rating"], 1e-9)
}

func TestGetStatsFiltered(t *testing.T) {
	swapTestSnapshot(t)
	controller := NewAnalyticsController()

	req := httptest.NewRequest(http.MethodGet, "/api/stats?city=Delhi", nil)
	w := httptest.NewRecorder()
	controller.GetStats(w, req)

	response := decodeAPIResponse(t, w)
	data, ok := response.Data.(map[string]interface{})
	require.True(t, ok)
	assert.EqualValues(t, 3, data["total_restaurants"])
	assert.EqualValues(t, 1, data["unique_cities"])
}

func TestGetRatingDistribution(t *testing.T) {
	swapTestSnapshot(t)
	controller := NewAnalyticsController()

	req := httptest.NewRequest(http.MethodGet, "/api/analytics/rating-distribution", nil)
	w := httptest.NewRecorder()
	controller.GetRatingDistribution(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	response := decodeAPIResponse(t, w)

	data, ok := response.Data.(map[string]interface{})
	require.True(t, ok)
	labels, ok := data["labels"].([]interface{})
	require.True(t, ok)
	assert.Len(t, labels, 5)
	assert.Equal(t, "Excellent (4.5+)", labels[0])
}

func TestGetServicesBreakdown(t *testing.T) {
	swapTestSnapshot(t)
	controller := NewAnalyticsController()

	req := httptest.NewRequest(http.MethodGet, "/api/analytics/services", nil)
	w := httptest.NewRecorder()
	controller.GetServices(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	response := decodeAPIResponse(t, w)

	data, ok := response.Data.(map[string]interface{})
	require.True(t, ok)
	values, ok := data["values"].([]interface{})
	require.True(t, ok)
	assert.Equal(t, []interface{}{2.0, 3.0, 1.0}, values)
}

func TestGetInsights(t *testing.T) {
	swapTestSnapshot(t)
	controller := NewAnalyticsController()

	req := httptest.NewRequest(http.MethodGet, "/api/insights", nil)
	w := httptest.NewRecorder()
	controller.GetInsights(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	response := decodeAPIResponse(t, w)

	insights, ok := response.Data.([]interface{})
	require.True(t, ok)
	assert.Len(t, insights, 3)
}
