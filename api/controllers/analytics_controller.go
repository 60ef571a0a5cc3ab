/*
 * @module api/controllers/analytics_controller
 * @description 数据分析控制器，提供汇总统计、图表聚合数据与洞察
 * @architecture MVC架构 - 控制器层
 * @documentReference dev_docs/dashboard_requirements.md
 * @stateFlow 解析筛选参数 -> 查询响应缓存 -> 未命中则聚合计算并回填缓存
 * @rules 缓存键绑定数据集版本，重载后自动失效；缓存不可用时直接计算
 * @dependencies restaurant-dashboard-service/service, github.com/go-chi/render
 * @refs api/routes.go, service/analytics/analytics_service.go
 */

package controllers

import (
	"encoding/json"
	"net/http"

	"restaurant-dashboard-service/service"
	"restaurant-dashboard-service/service/cache"
	"restaurant-dashboard-service/service/models"
)

// AnalyticsController 数据分析控制器
type AnalyticsController struct{}

// NewAnalyticsController 创建数据分析控制器实例
func NewAnalyticsController() *AnalyticsController {
	return &AnalyticsController{}
}

// respondCached 分析端点的公共处理流程：缓存查询、聚合计算、缓存回填
func (c *AnalyticsController) respondCached(w http.ResponseWriter, r *http.Request, endpoint string,
	build func(rows []models.Restaurant) (interface{}, error)) {
	snap, err := currentSnapshot()
	if err != nil {
		renderError(w, r, http.StatusInternalServerError, "数据未加载: "+err.Error())
		return
	}

	filter := parseFilterParams(r)
	key := cache.BuildKey(snap.Version, endpoint, filter)
	if payload, ok := service.GlobalResponseCache.Get(r.Context(), key); ok {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Write(payload)
		return
	}

	rows := service.GlobalAnalyticsService.Filter(snap.Rows, filter)
	data, err := build(rows)
	if err != nil {
		renderError(w, r, http.StatusInternalServerError, "聚合计算失败: "+err.Error())
		return
	}

	response := APIResponse{Status: 0, Msg: "操作成功", Data: data}
	payload, err := json.Marshal(response)
	if err != nil {
		renderError(w, r, http.StatusInternalServerError, "响应序列化失败: "+err.Error())
		return
	}
	service.GlobalResponseCache.Set(r.Context(), key, payload)

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Write(payload)
}

// GetStats 获取汇总统计
// @Summary 汇总统计
// @Description 筛选后的餐厅总数、平均评分、城市数
// @Tags 数据分析
// @Produce json
// @Success 200 {object} APIResponse
// @Router /api/stats [get]
func (c *AnalyticsController) GetStats(w http.ResponseWriter, r *http.Request) {
	c.respondCached(w, r, "stats", func(rows []models.Restaurant) (interface{}, error) {
		return service.GlobalAnalyticsService.Stats(rows), nil
	})
}

// GetRatingDistribution 获取评分分布
// @Summary 评分分布
// @Tags 数据分析
// @Produce json
// @Success 200 {object} APIResponse
// @Router /api/analytics/rating-distribution [get]
func (c *AnalyticsController) GetRatingDistribution(w http.ResponseWriter, r *http.Request) {
	c.respondCached(w, r, "rating-distribution", func(rows []models.Restaurant) (interface{}, error) {
		return service.GlobalAnalyticsService.RatingDistribution(rows), nil
	})
}

// GetTopCities 获取餐厅数最多的城市排行
// @Summary 城市排行
// @Tags 数据分析
// @Produce json
// @Success 200 {object} APIResponse
// @Router /api/analytics/top-cities [get]
func (c *AnalyticsController) GetTopCities(w http.ResponseWriter, r *http.Request) {
	c.respondCached(w, r, "top-cities", func(rows []models.Restaurant) (interface{}, error) {
		return service.GlobalAnalyticsService.TopCities(rows), nil
	})
}

// GetPriceDistribution 获取价格区间分布
// @Summary 价格区间分布
// @Tags 数据分析
// @Produce json
// @Success 200 {object} APIResponse
// @Router /api/analytics/price-distribution [get]
func (c *AnalyticsController) GetPriceDistribution(w http.ResponseWriter, r *http.Request) {
	c.respondCached(w, r, "price-distribution", func(rows []models.Restaurant) (interface{}, error) {
		return service.GlobalAnalyticsService.PriceDistribution(rows), nil
	})
}

// GetPopularCuisines 获取热门菜系排行
// @Summary 热门菜系
// @Tags 数据分析
// @Produce json
// @Success 200 {object} APIResponse
// @Router /api/analytics/popular-cuisines [get]
func (c *AnalyticsController) GetPopularCuisines(w http.ResponseWriter, r *http.Request) {
	c.respondCached(w, r, "popular-cuisines", func(rows []models.Restaurant) (interface{}, error) {
		return service.GlobalAnalyticsService.PopularCuisines(rows), nil
	})
}

// GetServices 获取服务可用性统计
// @Summary 服务可用性
// @Tags 数据分析
// @Produce json
// @Success 200 {object} APIResponse
// @Router /api/analytics/services [get]
func (c *AnalyticsController) GetServices(w http.ResponseWriter, r *http.Request) {
	c.respondCached(w, r, "services", func(rows []models.Restaurant) (interface{}, error) {
		return service.GlobalAnalyticsService.ServiceAvailability(rows), nil
	})
}

// GetCostByCity 获取各城市两人均价排行
// @Summary 城市均价排行
// @Tags 数据分析
// @Produce json
// @Success 200 {object} APIResponse
// @Router /api/analytics/cost-by-city [get]
func (c *AnalyticsController) GetCostByCity(w http.ResponseWriter, r *http.Request) {
	c.respondCached(w, r, "cost-by-city", func(rows []models.Restaurant) (interface{}, error) {
		return service.GlobalAnalyticsService.CostByCity(rows)
	})
}

// GetInsights 获取数据洞察
// @Summary 数据洞察
// @Description 最高评分餐厅、消费最高城市、最热门菜系
// @Tags 数据分析
// @Produce json
// @Success 200 {object} APIResponse
// @Router /api/insights [get]
func (c *AnalyticsController) GetInsights(w http.ResponseWriter, r *http.Request) {
	c.respondCached(w, r, "insights", func(rows []models.Restaurant) (interface{}, error) {
		return service.GlobalAnalyticsService.Insights(rows), nil
	})
}
