/*
 * @module api/controllers/dataset_controller_test
 * @description 数据集管理控制器单元测试
 * @architecture 测试层
 * @documentReference dev_docs/test_plan.md
 * @stateFlow 请求构建 -> 同步重载 -> 响应验证
 * @rules 源文件缺失时重载必须失败并保留旧快照
 * @dependencies testing, net/http/httptest, stretchr/testify
 */

package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReloadFailsWhenSourceMissing(t *testing.T) {
	// 测试工作目录下不存在zomato.csv，重载应失败并返回详细状态
	snap := swapTestSnapshot(t)
	controller := NewDatasetController()

	req := httptest.NewRequest(http.MethodPost, "/api/reload-data", nil)
	w := httptest.NewRecorder()
	controller.Reload(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	response := decodeAPIResponse(t, w)
	assert.Equal(t, http.StatusInternalServerError, response.Status)

	data, ok := response.Data.(map[string]interface{})
	require.True(t, ok, "响应数据应该是map类型")
	assert.Equal(t, true, data["reload_attempted"])
	assert.Equal(t, false, data["reload_successful"])
	// 旧快照仍然可用
	assert.Equal(t, true, data["data_loaded"])
	assert.EqualValues(t, len(snap.Rows), data["restaurant_count"])
}
