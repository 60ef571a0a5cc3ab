/*
 * @module service/dataset/metrics
 * @description 数据集加载流水线的Prometheus指标定义
 * @architecture 分层架构 - 可观测性
 * @documentReference dev_docs/dashboard_requirements.md
 * @stateFlow 指标随包初始化注册到默认Registry，由/metrics端点暴露
 * @rules 指标只在加载流水线内更新
 * @dependencies github.com/prometheus/client_golang
 * @refs main.go, service/dataset/dataset_service.go
 */

package dataset

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// loadsTotal 数据集加载次数，按结果与触发方式区分
	loadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dataset_loads_total",
		Help: "数据集加载次数",
	}, []string{"result", "trigger"})

	// loadedRowsGauge 当前快照的行数
	loadedRowsGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "dataset_loaded_rows",
		Help: "当前数据集快照的餐厅行数",
	})

	// imputedRowsGauge 当前快照中被插补的行数
	imputedRowsGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "dataset_imputed_rows",
		Help: "当前数据集快照中服务字段被插补的行数",
	})

	// loadDuration 加载耗时分布
	loadDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "dataset_load_duration_seconds",
		Help:    "数据集加载耗时（秒）",
		Buckets: prometheus.DefBuckets,
	})
)
