/*
 * @module service/dataset/store_test
 * @description 数据集句柄单元测试，验证原子交换与后写者胜语义
 * @architecture 测试层
 * @documentReference dev_docs/test_plan.md
 * @stateFlow 空容器 -> 交换快照 -> 再次交换 -> 验证引用
 * @rules 读方拿到的始终是完整快照引用
 * @dependencies testing, stretchr/testify
 */

package dataset

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"restaurant-dashboard-service/service/models"
)

func TestStoreInitiallyEmpty(t *testing.T) {
	store := NewStore()
	assert.Nil(t, store.Current())
	assert.False(t, store.Loaded())
}

func TestStoreSwapLastWriterWins(t *testing.T) {
	store := NewStore()

	first := &Snapshot{Version: "v1", LoadedAt: time.Now(), Rows: []models.Restaurant{{Name: "A", City: "Delhi"}}}
	store.Swap(first)
	assert.True(t, store.Loaded())
	assert.Same(t, first, store.Current())

	second := &Snapshot{Version: "v2", LoadedAt: time.Now()}
	store.Swap(second)
	assert.Same(t, second, store.Current())

	// 旧快照不受新快照发布影响，慢读方仍可安全使用
	assert.Equal(t, "v1", first.Version)
	assert.Len(t, first.Rows, 1)
}
