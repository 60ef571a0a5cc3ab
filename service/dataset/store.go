/*
 * @module service/dataset/store
 * @description 进程级数据集句柄，通过原子引用交换发布完整构建好的数据集快照
 * @architecture 分层架构 - 数据访问层
 * @documentReference dev_docs/dashboard_requirements.md
 * @stateFlow 加载流水线构建新快照 -> 原子交换 -> 读请求获取当前快照
 * @rules 读写不加锁，后写者胜；读方永远拿到完整快照，不会观察到插补中间态
 * @refs service/dataset/dataset_service.go
 */

package dataset

import (
	"sync/atomic"
	"time"

	"restaurant-dashboard-service/service/models"
)

// Snapshot 一次加载产出的不可变数据集快照
// 发布之后各字段不再修改，读方可以无锁安全访问
type Snapshot struct {
	Version      string              `json:"version"`       // 快照版本号
	SourcePath   string              `json:"source_path"`   // 源CSV路径
	Encoding     string              `json:"encoding"`      // 实际成功的字符编码
	LoadedAt     time.Time           `json:"loaded_at"`     // 加载完成时间
	EligibleRows int                 `json:"eligible_rows"` // 参与插补的行数
	Rows         []models.Restaurant `json:"-"`             // 清洗并插补完成的行表
}

// Store 可交换的数据集引用容器
type Store struct {
	current atomic.Pointer[Snapshot]
}

// NewStore 创建空的数据集容器
func NewStore() *Store {
	return &Store{}
}

// Current 获取当前数据集快照，尚未加载成功时返回nil
func (s *Store) Current() *Snapshot {
	return s.current.Load()
}

// Swap 用新快照替换当前引用，仅在新数据集完整构建（清洗+插补）之后调用
func (s *Store) Swap(snap *Snapshot) {
	s.current.Store(snap)
}

// Loaded 判断是否已有可用数据集
func (s *Store) Loaded() bool {
	return s.current.Load() != nil
}
