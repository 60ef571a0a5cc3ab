/*
 * @module api/controllers/health_controller
 * @description 健康检查控制器，提供服务健康状态与数据集加载状态检查
 * @architecture MVC架构 - 控制器层
 * @documentReference dev_docs/dashboard_requirements.md
 * @stateFlow HTTP请求处理流程
 * @rules 健康检查始终返回200；就绪检查在数据集未加载时返回503
 * @dependencies restaurant-dashboard-service/service, github.com/go-chi/render
 * @refs api/routes.go
 */

package controllers

import (
	"net/http"
	"time"

	"github.com/go-chi/render"

	"restaurant-dashboard-service/service"
)

// HealthController 健康检查控制器
type HealthController struct{}

// NewHealthController 创建健康检查控制器实例
func NewHealthController() *HealthController {
	return &HealthController{}
}

// HealthResponse 健康检查响应结构
type HealthResponse struct {
	Status          string    `json:"status" example:"ok"`
	Timestamp       time.Time `json:"timestamp" example:"2024-01-01T00:00:00Z"`
	Version         string    `json:"version" example:"1.0.0"`
	Service         string    `json:"service" example:"restaurant-dashboard-service"`
	DataLoaded      bool      `json:"data_loaded"`
	CSVFileExists   bool      `json:"csv_file_exists"`
	RestaurantCount int       `json:"restaurant_count"`
	DatasetVersion  string    `json:"dataset_version,omitempty"`
}

// buildStatus 汇总当前数据集状态
func (c *HealthController) buildStatus(status string) HealthResponse {
	response := HealthResponse{
		Status:        status,
		Timestamp:     time.Now(),
		Version:       "1.0.0",
		Service:       "restaurant-dashboard-service",
		CSVFileExists: service.GlobalDatasetService.SourceExists(),
	}

	if snap := service.GlobalDatasetService.Store().Current(); snap != nil {
		response.DataLoaded = true
		response.RestaurantCount = len(snap.Rows)
		response.DatasetVersion = snap.Version
	}
	return response
}

// Health 健康检查
// @Summary 健康检查
// @Description 检查服务健康状态与数据集加载情况
// @Tags 系统
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func (c *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, c.buildStatus("ok"))
}

// Ready 就绪检查
// @Summary 就绪检查
// @Description 检查服务是否就绪，数据集未加载时返回503
// @Tags 系统
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /ready [get]
func (c *HealthController) Ready(w http.ResponseWriter, r *http.Request) {
	response := c.buildStatus("ready")
	if !response.DataLoaded {
		response.Status = "not_ready"
		render.Status(r, http.StatusServiceUnavailable)
	}
	render.JSON(w, r, response)
}
