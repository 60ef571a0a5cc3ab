/*
 * @module service/dataset/dataset_service
 * @description 数据集加载服务，串联CSV加载、清洗、缺失服务插补、快照发布与审计落库
 * @architecture 分层架构 - 服务层
 * @documentReference dev_docs/dashboard_requirements.md
 * @stateFlow 加载CSV -> 采集掩码 -> 插补 -> 构建快照 -> 原子发布 -> 写审计/更新指标
 * @rules 新快照必须完整构建后才发布；并发重载不加锁，后写者胜；审计失败只记日志不阻断加载
 * @dependencies gorm.io/gorm, github.com/google/uuid
 * @refs api/controllers/dataset_controller.go, service/imputation/imputer.go
 */

package dataset

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"restaurant-dashboard-service/service/imputation"
	"restaurant-dashboard-service/service/models"
)

// Service 数据集加载服务
type Service struct {
	store   *Store
	imputer *imputation.Imputer
	db      *gorm.DB
	csvPath string
}

// NewService 创建数据集加载服务实例
func NewService(store *Store, imputer *imputation.Imputer, db *gorm.DB, csvPath string) *Service {
	return &Service{
		store:   store,
		imputer: imputer,
		db:      db,
		csvPath: csvPath,
	}
}

// SourcePath 返回源CSV路径
func (s *Service) SourcePath() string {
	return s.csvPath
}

// SourceExists 判断源CSV文件是否存在
func (s *Service) SourceExists() bool {
	_, err := os.Stat(s.csvPath)
	return err == nil
}

// Store 返回数据集容器
func (s *Service) Store() *Store {
	return s.store
}

// Reload 执行一次完整的数据集加载并发布新快照
//
// 插补在工作副本上进行，读方在发布之前始终看到上一个完整快照；
// 并发调用各自构建快照后交换引用，后写者胜。
func (s *Service) Reload(trigger string) (*Snapshot, error) {
	start := time.Now()
	log.Printf("开始加载餐厅数据集: path=%s trigger=%s", s.csvPath, trigger)

	result, err := Load(s.csvPath)
	if err != nil {
		s.finishLoad(nil, nil, trigger, start, err)
		return nil, err
	}

	imputed, err := s.imputer.Impute(result.Rows, result.Mask)
	if err != nil {
		err = fmt.Errorf("服务字段插补失败: %w", err)
		s.finishLoad(nil, result, trigger, start, err)
		return nil, err
	}

	snap := &Snapshot{
		Version:      uuid.New().String(),
		SourcePath:   s.csvPath,
		Encoding:     result.Encoding,
		LoadedAt:     time.Now(),
		EligibleRows: imputed,
		Rows:         result.Rows,
	}
	s.store.Swap(snap)

	s.finishLoad(snap, result, trigger, start, nil)
	log.Printf("数据集加载完成: version=%s rows=%d imputed=%d encoding=%s 耗时=%v",
		snap.Version, len(snap.Rows), imputed, result.Encoding, time.Since(start))

	return snap, nil
}

// EnsureLoaded 确保存在可用数据集，未加载时触发一次惰性加载
func (s *Service) EnsureLoaded() error {
	if s.store.Loaded() {
		return nil
	}
	_, err := s.Reload("lazy")
	return err
}

// finishLoad 统一收尾：更新指标并写入审计记录
func (s *Service) finishLoad(snap *Snapshot, result *LoadResult, trigger string, start time.Time, loadErr error) {
	elapsed := time.Since(start)
	loadDuration.Observe(elapsed.Seconds())

	record := models.DatasetLoadRecord{
		SourcePath: s.csvPath,
		Trigger:    trigger,
		DurationMs: elapsed.Milliseconds(),
		Success:    loadErr == nil,
	}

	if loadErr != nil {
		loadsTotal.WithLabelValues("failure", trigger).Inc()
		record.ErrorMessage = loadErr.Error()
	} else {
		loadsTotal.WithLabelValues("success", trigger).Inc()
		loadedRowsGauge.Set(float64(len(snap.Rows)))
		imputedRowsGauge.Set(float64(snap.EligibleRows))
		record.Version = snap.Version
		record.Encoding = snap.Encoding
		record.RowCount = len(snap.Rows)
		record.EligibleRows = snap.EligibleRows
		record.ImputedRows = snap.EligibleRows
	}
	if result != nil {
		record.DroppedRows = result.DroppedRows
	}

	if s.db == nil {
		return
	}
	if err := s.db.Create(&record).Error; err != nil {
		log.Printf("写入数据集加载审计记录失败: %v", err)
	}
}
