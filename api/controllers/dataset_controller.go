/*
 * @module api/controllers/dataset_controller
 * @description 数据集管理控制器，提供手动重载与加载状态查询
 * @architecture MVC架构 - 控制器层
 * @documentReference dev_docs/dashboard_requirements.md
 * @stateFlow 接收重载请求 -> 同步执行完整加载流水线 -> 返回详细状态
 * @rules 重载是同步操作，新快照完整构建后才对读请求可见；失败返回500并附状态详情
 * @dependencies restaurant-dashboard-service/service, github.com/go-chi/render
 * @refs api/routes.go, service/dataset/dataset_service.go
 */

package controllers

import (
	"net/http"

	"github.com/go-chi/render"

	"restaurant-dashboard-service/service"
)

// DatasetController 数据集管理控制器
type DatasetController struct{}

// NewDatasetController 创建数据集管理控制器实例
func NewDatasetController() *DatasetController {
	return &DatasetController{}
}

// ReloadStatusResponse 重载结果详情
type ReloadStatusResponse struct {
	ReloadAttempted  bool   `json:"reload_attempted"`
	ReloadSuccessful bool   `json:"reload_successful"`
	DataLoaded       bool   `json:"data_loaded"`
	CSVFileExists    bool   `json:"csv_file_exists"`
	RestaurantCount  int    `json:"restaurant_count"`
	DatasetVersion   string `json:"dataset_version,omitempty"`
	Error            string `json:"error,omitempty"`
}

// Reload 手动重载数据集
// @Summary 重载数据集
// @Description 重新执行加载、清洗与插补流水线并发布新快照
// @Tags 数据集
// @Produce json
// @Success 200 {object} APIResponse
// @Failure 500 {object} APIResponse
// @Router /api/reload-data [post]
func (c *DatasetController) Reload(w http.ResponseWriter, r *http.Request) {
	status := ReloadStatusResponse{
		ReloadAttempted: true,
		CSVFileExists:   service.GlobalDatasetService.SourceExists(),
	}

	snap, err := service.GlobalDatasetService.Reload("manual")
	if err != nil {
		status.Error = err.Error()
		// 重载失败时旧快照仍然可用
		if current := service.GlobalDatasetService.Store().Current(); current != nil {
			status.DataLoaded = true
			status.RestaurantCount = len(current.Rows)
			status.DatasetVersion = current.Version
		}
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, APIResponse{Status: http.StatusInternalServerError, Msg: "数据集重载失败", Data: status})
		return
	}

	status.ReloadSuccessful = true
	status.DataLoaded = true
	status.RestaurantCount = len(snap.Rows)
	status.DatasetVersion = snap.Version
	renderSuccess(w, r, status)
}
