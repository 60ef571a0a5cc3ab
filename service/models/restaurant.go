/*
 * @module service/models/restaurant
 * @description 餐厅数据模型定义，包括餐厅行记录、原始服务字段缺失掩码、筛选参数等核心实体
 * @architecture 分层架构 - 数据模型层
 * @documentReference dev_docs/dashboard_requirements.md
 * @stateFlow 数据集加载生命周期内的内存实体，不做持久化
 * @rules 服务布尔列在清洗阶段统一从原始字符串列强制转换，缺失值按"No"处理
 * @refs service/dataset, service/imputation, service/analytics
 */

package models

import "strings"

// Restaurant 餐厅行记录，一行对应源CSV中的一条餐厅数据
type Restaurant struct {
	Name              string  `json:"name"`          // 餐厅名称
	City              string  `json:"city"`          // 所在城市，缺失时为"Unknown"
	Cuisines          string  `json:"cuisines"`      // 菜系，逗号分隔
	Rating            float64 `json:"rating"`        // 综合评分，0表示未评分
	Votes             int     `json:"votes"`         // 评价数
	AverageCost       float64 `json:"cost"`          // 两人均价
	PriceRange        int     `json:"price_range"`   // 价格区间 1-4
	HasTableBooking   bool    `json:"has_booking"`   // 是否支持订座
	HasOnlineDelivery bool    `json:"has_delivery"`  // 是否支持在线外卖
	IsDeliveringNow   bool    `json:"is_delivering"` // 当前是否在配送，插补过程不触碰该列
}

// ServiceMask 原始服务字段缺失掩码，在布尔强制转换之前采集
// 行下标与清洗后的餐厅表一一对应
type ServiceMask struct {
	TableBookingMissing   bool // 原始"Has Table booking"列是否缺失
	OnlineDeliveryMissing bool // 原始"Has Online delivery"列是否缺失
	DeliveringNowMissing  bool // 原始"Is delivering now"列是否缺失
}

// AllMissing 判断三个原始服务字段是否全部缺失
// 只有全缺失的行才是插补候选：任何一个字段有显式取值（哪怕是"No"）都视为负面证据而非缺失
func (m ServiceMask) AllMissing() bool {
	return m.TableBookingMissing && m.OnlineDeliveryMissing && m.DeliveringNowMissing
}

// FilterParams 数据查询的筛选参数，各读取接口共用
type FilterParams struct {
	City       string  `json:"city"`        // 城市精确匹配，空值或"all"表示不过滤
	PriceRange int     `json:"price_range"` // 价格区间，0表示不过滤
	MinRating  float64 `json:"min_rating"`  // 最低评分
	Search     string  `json:"search"`      // 搜索词，对名称/菜系/城市做小写子串匹配
}

// Matches 判断一条餐厅记录是否满足筛选条件
func (f FilterParams) Matches(r *Restaurant) bool {
	if f.City != "" && f.City != "all" && r.City != f.City {
		return false
	}
	if f.PriceRange != 0 && r.PriceRange != f.PriceRange {
		return false
	}
	if f.MinRating > 0 && r.Rating < f.MinRating {
		return false
	}
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(r.Name), needle) &&
			!strings.Contains(strings.ToLower(r.Cuisines), needle) &&
			!strings.Contains(strings.ToLower(r.City), needle) {
			return false
		}
	}
	return true
}

// IsEmpty 判断是否为无条件筛选
func (f FilterParams) IsEmpty() bool {
	return (f.City == "" || f.City == "all") && f.PriceRange == 0 && f.MinRating == 0 && f.Search == ""
}
