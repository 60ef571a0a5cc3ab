/*
 * @module api/routes
 * @description API路由配置模块，负责初始化和配置所有HTTP路由
 * @architecture RESTful API架构
 * @documentReference dev_docs/dashboard_requirements.md
 * @stateFlow 无状态HTTP请求处理
 * @rules 遵循RESTful API设计规范，统一错误处理和响应格式
 * @dependencies github.com/go-chi/chi/v5, github.com/go-chi/cors, github.com/go-chi/render
 * @refs api/controllers
 */

package api

import (
	"restaurant-dashboard-service/api/controllers"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/render"
)

// InitRoute 初始化所有API路由
func InitRoute(r *chi.Mux) {
	// 基础中间件
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(render.SetContentType(render.ContentTypeJSON))

	// CORS配置
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// 健康检查
	healthController := controllers.NewHealthController()
	r.Get("/health", healthController.Health)
	r.Get("/ready", healthController.Ready)

	restaurantController := controllers.NewRestaurantController()
	analyticsController := controllers.NewAnalyticsController()
	datasetController := controllers.NewDatasetController()

	r.Route("/api", func(r chi.Router) {
		// 餐厅数据与筛选项
		r.Get("/data", restaurantController.GetData)
		r.Get("/filters/cities", restaurantController.GetCities)

		// 汇总统计与洞察
		r.Get("/stats", analyticsController.GetStats)
		r.Get("/insights", analyticsController.GetInsights)

		// 图表聚合数据
		r.Route("/analytics", func(r chi.Router) {
			r.Get("/rating-distribution", analyticsController.GetRatingDistribution)
			r.Get("/top-cities", analyticsController.GetTopCities)
			r.Get("/price-distribution", analyticsController.GetPriceDistribution)
			r.Get("/popular-cuisines", analyticsController.GetPopularCuisines)
			r.Get("/services", analyticsController.GetServices)
			r.Get("/cost-by-city", analyticsController.GetCostByCity)
		})

		// 数据集管理，GET保留用于兼容旧版仪表盘前端
		r.Post("/reload-data", datasetController.Reload)
		r.Get("/reload-data", datasetController.Reload)
	})
}
