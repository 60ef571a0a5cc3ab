/*
 * @module api/controllers/restaurant_controller
 * @description 餐厅数据控制器，提供筛选后的餐厅列表与筛选项数据
 * @architecture MVC架构 - 控制器层
 * @documentReference dev_docs/dashboard_requirements.md
 * @stateFlow HTTP请求处理流程：解析筛选参数 -> 惰性确保数据集已加载 -> 过滤 -> 响应
 * @rules 数据集未加载且惰性加载失败时返回500，统一错误响应格式
 * @dependencies restaurant-dashboard-service/service, github.com/spf13/cast
 * @refs api/routes.go
 */

package controllers

import (
	"net/http"

	"github.com/spf13/cast"

	"restaurant-dashboard-service/service"
	"restaurant-dashboard-service/service/dataset"
	"restaurant-dashboard-service/service/models"
)

// RestaurantController 餐厅数据控制器
type RestaurantController struct{}

// NewRestaurantController 创建餐厅数据控制器实例
func NewRestaurantController() *RestaurantController {
	return &RestaurantController{}
}

// parseFilterParams 从查询字符串解析筛选参数，"all"等价于不过滤
func parseFilterParams(r *http.Request) models.FilterParams {
	q := r.URL.Query()
	f := models.FilterParams{
		City:   q.Get("city"),
		Search: q.Get("search"),
	}
	if v := q.Get("price_range"); v != "" && v != "all" {
		f.PriceRange = cast.ToInt(v)
	}
	if v := q.Get("min_rating"); v != "" {
		f.MinRating = cast.ToFloat64(v)
	}
	return f
}

// currentSnapshot 确保数据集已加载并返回当前快照
func currentSnapshot() (*dataset.Snapshot, error) {
	if err := service.GlobalDatasetService.EnsureLoaded(); err != nil {
		return nil, err
	}
	return service.GlobalDatasetService.Store().Current(), nil
}

// GetData 获取筛选后的餐厅数据
// @Summary 获取餐厅数据
// @Description 按城市/价格区间/最低评分/搜索词筛选餐厅列表
// @Tags 餐厅数据
// @Produce json
// @Param city query string false "城市，all表示全部"
// @Param price_range query int false "价格区间 1-4"
// @Param min_rating query number false "最低评分"
// @Param search query string false "搜索词"
// @Success 200 {object} APIResponse
// @Failure 500 {object} APIResponse
// @Router /api/data [get]
func (c *RestaurantController) GetData(w http.ResponseWriter, r *http.Request) {
	snap, err := currentSnapshot()
	if err != nil {
		renderError(w, r, http.StatusInternalServerError, "数据未加载: "+err.Error())
		return
	}

	rows := service.GlobalAnalyticsService.Filter(snap.Rows, parseFilterParams(r))
	renderSuccess(w, r, rows)
}

// GetCities 获取城市筛选项
// @Summary 获取城市列表
// @Description 返回排序后的城市去重列表，供筛选下拉框使用
// @Tags 餐厅数据
// @Produce json
// @Success 200 {object} APIResponse
// @Failure 500 {object} APIResponse
// @Router /api/filters/cities [get]
func (c *RestaurantController) GetCities(w http.ResponseWriter, r *http.Request) {
	snap, err := currentSnapshot()
	if err != nil {
		renderError(w, r, http.StatusInternalServerError, "数据未加载: "+err.Error())
		return
	}

	renderSuccess(w, r, service.GlobalAnalyticsService.Cities(snap.Rows))
}
