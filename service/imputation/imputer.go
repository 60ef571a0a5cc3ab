/*
 * @module service/imputation/imputer
 * @description 服务字段缺失值插补器：按城市经验概率对订座/外卖两个布尔列做伯努利采样填充
 * @architecture 分层架构 - 数据处理层，数据集加载流水线中的独立阶段
 * @documentReference dev_docs/dashboard_requirements.md
 * @stateFlow 计算城市概率 -> 计算全局兜底概率 -> 筛选候选行 -> 逐行独立采样 -> 原地写回
 * @rules 仅三个原始服务字段全缺失的行参与插补；IsDeliveringNow及其他列保持不变
 * @dependencies math/rand
 * @refs service/dataset/dataset_service.go, service/models/restaurant.go
 */

package imputation

import (
	"errors"
	"fmt"
	"math/rand"

	"restaurant-dashboard-service/service/models"
)

// ErrRowMaskMismatch 行表与掩码表下标空间不一致，属于输入契约错误
var ErrRowMaskMismatch = errors.New("餐厅表与掩码表行数不一致")

// RandSource 均匀随机数来源，取值范围[0,1)
// 生产环境使用进程级随机源，测试注入确定性序列以隔离采样逻辑
type RandSource interface {
	Float64() float64
}

// processRandSource 进程级随机源，不做种子固定，连续两次插补不保证结果一致
type processRandSource struct{}

func (processRandSource) Float64() float64 { return rand.Float64() }

// serviceProbability 某一分组下两个服务属性的经验概率
type serviceProbability struct {
	Booking  float64 // 支持订座的比例
	Delivery float64 // 支持在线外卖的比例
	Defined  bool    // 分组内是否存在可计算均值的行
}

// Imputer 缺失服务数据插补器
type Imputer struct {
	rand RandSource
}

// NewImputer 创建插补器实例，src为nil时使用进程级随机源
func NewImputer(src RandSource) *Imputer {
	if src == nil {
		src = processRandSource{}
	}
	return &Imputer{rand: src}
}

// Impute 对候选行的订座/外卖布尔列做概率插补，原地修改rows并返回插补行数
//
// 城市概率基于当前表中已强制转换后的布尔列计算（候选行此时已被默认为false，
// 同样计入均值）；城市概率不可用时按属性独立回退到全局均值。
// 每个候选行的两个属性各做一次独立的伯努利试验：draw < p 则置true。
func (im *Imputer) Impute(rows []models.Restaurant, mask []models.ServiceMask) (int, error) {
	if len(rows) != len(mask) {
		return 0, fmt.Errorf("%w: rows=%d mask=%d", ErrRowMaskMismatch, len(rows), len(mask))
	}
	if len(rows) == 0 {
		return 0, nil
	}

	cityProbs := cityProbabilities(rows)
	global := globalProbability(rows)

	imputed := 0
	for i := range rows {
		if !mask[i].AllMissing() {
			continue
		}

		probBooking := global.Booking
		probDelivery := global.Delivery
		if p, ok := cityProbs[rows[i].City]; ok && p.Defined {
			probBooking = p.Booking
			probDelivery = p.Delivery
		}

		rows[i].HasTableBooking = im.rand.Float64() < probBooking
		rows[i].HasOnlineDelivery = im.rand.Float64() < probDelivery
		imputed++
	}

	return imputed, nil
}

// cityProbabilities 按城市分组计算两个服务属性的经验均值
func cityProbabilities(rows []models.Restaurant) map[string]serviceProbability {
	type counter struct {
		total, booking, delivery int
	}
	counters := make(map[string]*counter)
	for i := range rows {
		c := counters[rows[i].City]
		if c == nil {
			c = &counter{}
			counters[rows[i].City] = c
		}
		c.total++
		if rows[i].HasTableBooking {
			c.booking++
		}
		if rows[i].HasOnlineDelivery {
			c.delivery++
		}
	}

	probs := make(map[string]serviceProbability, len(counters))
	for city, c := range counters {
		if c.total == 0 {
			probs[city] = serviceProbability{}
			continue
		}
		probs[city] = serviceProbability{
			Booking:  float64(c.booking) / float64(c.total),
			Delivery: float64(c.delivery) / float64(c.total),
			Defined:  true,
		}
	}
	return probs
}

// globalProbability 计算全表范围的服务属性均值，空表时概率为0以保证采样始终良定义
func globalProbability(rows []models.Restaurant) serviceProbability {
	if len(rows) == 0 {
		return serviceProbability{}
	}
	booking, delivery := 0, 0
	for i := range rows {
		if rows[i].HasTableBooking {
			booking++
		}
		if rows[i].HasOnlineDelivery {
			delivery++
		}
	}
	return serviceProbability{
		Booking:  float64(booking) / float64(len(rows)),
		Delivery: float64(delivery) / float64(len(rows)),
		Defined:  true,
	}
}
