/*
 * @module service/models/load_audit
 * @description 数据集加载审计模型，记录每次加载/重载的结果与插补规模
 * @architecture 分层架构 - 数据模型层
 * @documentReference dev_docs/dashboard_requirements.md
 * @stateFlow 每次数据集加载尝试写入一条审计记录
 * @rules 审计记录只追加不修改，加载失败同样落库
 * @dependencies gorm.io/gorm
 * @refs service/dataset/dataset_service.go
 */

package models

import "time"

// DatasetLoadRecord 数据集加载审计记录
type DatasetLoadRecord struct {
	ID           uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	Version      string    `json:"version" gorm:"type:varchar(36);index"` // 本次加载生成的数据集版本号
	SourcePath   string    `json:"source_path" gorm:"size:500"`           // 源CSV路径
	Trigger      string    `json:"trigger" gorm:"size:20"`                // 触发方式：startup/manual/watch/cron/lazy
	Encoding     string    `json:"encoding" gorm:"size:20"`               // 实际成功的字符编码
	RowCount     int       `json:"row_count"`                             // 清洗后的行数
	DroppedRows  int       `json:"dropped_rows"`                          // 因缺失餐厅名被丢弃的行数
	EligibleRows int       `json:"eligible_rows"`                         // 三个原始服务字段全缺失的行数
	ImputedRows  int       `json:"imputed_rows"`                          // 实际执行插补的行数
	DurationMs   int64     `json:"duration_ms"`                           // 加载耗时（毫秒）
	Success      bool      `json:"success"`                               // 是否成功
	ErrorMessage string    `json:"error_message" gorm:"size:1000"`        // 失败原因
	CreatedAt    time.Time `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName 指定审计表名
func (DatasetLoadRecord) TableName() string {
	return "dataset_load_records"
}
