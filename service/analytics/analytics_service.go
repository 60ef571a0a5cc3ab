/*
 * @module service/analytics/analytics_service
 * @description 餐厅数据分析服务，提供筛选、汇总统计与各类图表聚合数据
 * @architecture 分层架构 - 服务层，对数据集快照做无状态只读计算
 * @documentReference dev_docs/dashboard_requirements.md
 * @stateFlow 筛选行集 -> 聚合计算 -> 输出图表友好的标签/数值结构
 * @rules 所有计算基于传入的行切片，不修改数据集快照
 * @dependencies github.com/go-gota/gota/dataframe
 * @refs api/controllers/analytics_controller.go, service/dataset/store.go
 */

package analytics

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/go-gota/gota/dataframe"

	"restaurant-dashboard-service/service/models"
)

// 图表聚合的展示规模约定
const (
	topCityLimit     = 10
	topCuisineLimit  = 8
	costByCityLimit  = 8
	insightCostLimit = 1
)

// priceRangeLabels 价格区间的展示名
var priceRangeLabels = map[int]string{
	1: "Budget",
	2: "Affordable",
	3: "Mid-range",
	4: "Expensive",
}

// Stats 汇总统计
type Stats struct {
	TotalRestaurants int     `json:"total_restaurants"` // 筛选后的餐厅总数
	AvgRating        float64 `json:"avg_rating"`        // 有评分餐厅的平均评分，保留一位小数
	UniqueCities     int     `json:"unique_cities"`     // 城市数
}

// ChartData 图表友好的标签/数值对
type ChartData struct {
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}

// Insight 洞察条目
type Insight struct {
	Type    string `json:"type"`    // highlight/info/trend
	Title   string `json:"title"`   // 标题
	Content string `json:"content"` // 描述文本
}

// Service 数据分析服务
type Service struct{}

// NewService 创建数据分析服务实例
func NewService() *Service {
	return &Service{}
}

// Filter 按筛选参数过滤行集
func (s *Service) Filter(rows []models.Restaurant, f models.FilterParams) []models.Restaurant {
	if f.IsEmpty() {
		return rows
	}
	filtered := make([]models.Restaurant, 0, len(rows))
	for i := range rows {
		if f.Matches(&rows[i]) {
			filtered = append(filtered, rows[i])
		}
	}
	return filtered
}

// Stats 计算汇总统计
func (s *Service) Stats(rows []models.Restaurant) Stats {
	cities := make(map[string]struct{})
	ratedSum, ratedCount := 0.0, 0
	for i := range rows {
		cities[rows[i].City] = struct{}{}
		if rows[i].Rating > 0 {
			ratedSum += rows[i].Rating
			ratedCount++
		}
	}

	avg := 0.0
	if ratedCount > 0 {
		avg = math.Round(ratedSum/float64(ratedCount)*10) / 10
	}

	return Stats{
		TotalRestaurants: len(rows),
		AvgRating:        avg,
		UniqueCities:     len(cities),
	}
}

// RatingDistribution 评分分布，固定五个评分段
func (s *Service) RatingDistribution(rows []models.Restaurant) ChartData {
	bands := []struct {
		label    string
		min, max float64 // [min, max)，max为0表示无上界
	}{
		{"Excellent (4.5+)", 4.5, 0},
		{"Very Good (4.0-4.4)", 4.0, 4.5},
		{"Good (3.5-3.9)", 3.5, 4.0},
		{"Average (3.0-3.4)", 3.0, 3.5},
		{"Poor (<3.0)", 0, 3.0},
	}

	data := ChartData{Labels: make([]string, 0, len(bands)), Values: make([]float64, 0, len(bands))}
	for _, band := range bands {
		count := 0
		for i := range rows {
			r := rows[i].Rating
			if r >= band.min && (band.max == 0 || r < band.max) {
				count++
			}
		}
		data.Labels = append(data.Labels, band.label)
		data.Values = append(data.Values, float64(count))
	}
	return data
}

// TopCities 餐厅数最多的城市排行
func (s *Service) TopCities(rows []models.Restaurant) ChartData {
	counts := make(map[string]int)
	for i := range rows {
		counts[rows[i].City]++
	}
	return topCounts(counts, topCityLimit)
}

// PriceDistribution 价格区间分布，按区间升序，只输出出现过的区间
func (s *Service) PriceDistribution(rows []models.Restaurant) ChartData {
	counts := make(map[int]int)
	for i := range rows {
		counts[rows[i].PriceRange]++
	}

	ranges := make([]int, 0, len(counts))
	for r := range counts {
		ranges = append(ranges, r)
	}
	sort.Ints(ranges)

	data := ChartData{}
	for _, r := range ranges {
		label, ok := priceRangeLabels[r]
		if !ok {
			label = fmt.Sprintf("Range %d", r)
		}
		data.Labels = append(data.Labels, label)
		data.Values = append(data.Values, float64(counts[r]))
	}
	return data
}

// PopularCuisines 热门菜系排行，菜系列表按逗号拆分后逐项计数
func (s *Service) PopularCuisines(rows []models.Restaurant) ChartData {
	counts := cuisineCounts(rows)
	return topCounts(counts, topCuisineLimit)
}

// ServiceAvailability 三类服务的可用餐厅数
func (s *Service) ServiceAvailability(rows []models.Restaurant) ChartData {
	booking, delivery, delivering := 0, 0, 0
	for i := range rows {
		if rows[i].HasTableBooking {
			booking++
		}
		if rows[i].HasOnlineDelivery {
			delivery++
		}
		if rows[i].IsDeliveringNow {
			delivering++
		}
	}
	return ChartData{
		Labels: []string{"Table Booking", "Online Delivery", "Currently Delivering"},
		Values: []float64{float64(booking), float64(delivery), float64(delivering)},
	}
}

// CostByCity 各城市两人均价排行，分组均值通过dataframe计算
func (s *Service) CostByCity(rows []models.Restaurant) (ChartData, error) {
	withCost := make([]models.Restaurant, 0, len(rows))
	for i := range rows {
		if rows[i].AverageCost > 0 {
			withCost = append(withCost, rows[i])
		}
	}
	if len(withCost) == 0 {
		return ChartData{}, nil
	}

	df := dataframe.LoadStructs(withCost)
	if df.Err != nil {
		return ChartData{}, fmt.Errorf("构建dataframe失败: %w", df.Err)
	}

	agg := df.GroupBy("City").Aggregation(
		[]dataframe.AggregationType{dataframe.Aggregation_MEAN},
		[]string{"AverageCost"},
	)
	if agg.Err != nil {
		return ChartData{}, fmt.Errorf("分组均值计算失败: %w", agg.Err)
	}

	sorted := agg.Arrange(dataframe.RevSort("AverageCost_MEAN"))
	if sorted.Err != nil {
		return ChartData{}, fmt.Errorf("分组结果排序失败: %w", sorted.Err)
	}

	limit := sorted.Nrow()
	if limit > costByCityLimit {
		limit = costByCityLimit
	}

	data := ChartData{Labels: make([]string, 0, limit), Values: make([]float64, 0, limit)}
	cityCol := sorted.Col("City")
	costCol := sorted.Col("AverageCost_MEAN")
	for i := 0; i < limit; i++ {
		data.Labels = append(data.Labels, cityCol.Elem(i).String())
		data.Values = append(data.Values, math.Round(costCol.Elem(i).Float()*100)/100)
	}
	return data, nil
}

// Insights 生成洞察条目：最高评分餐厅、消费最高城市、最热门菜系
func (s *Service) Insights(rows []models.Restaurant) []Insight {
	insights := make([]Insight, 0, 3)
	if len(rows) == 0 {
		return insights
	}

	top := &rows[0]
	for i := range rows {
		if rows[i].Rating > top.Rating {
			top = &rows[i]
		}
	}
	insights = append(insights, Insight{
		Type:    "highlight",
		Title:   "Highest Rated Restaurant",
		Content: fmt.Sprintf("%s in %s with %.1f rating", top.Name, top.City, top.Rating),
	})

	costByCity, err := s.CostByCity(rows)
	if err == nil && len(costByCity.Labels) >= insightCostLimit {
		insights = append(insights, Insight{
			Type:    "info",
			Title:   "Most Expensive City",
			Content: fmt.Sprintf("%s with average cost of ₹%.0f for two", costByCity.Labels[0], costByCity.Values[0]),
		})
	}

	cuisines := topCounts(cuisineCounts(rows), 1)
	if len(cuisines.Labels) > 0 {
		insights = append(insights, Insight{
			Type:    "trend",
			Title:   "Most Popular Cuisine",
			Content: fmt.Sprintf("%s appears in %.0f restaurants", cuisines.Labels[0], cuisines.Values[0]),
		})
	}

	return insights
}

// Cities 返回排序后的城市去重列表，供筛选下拉框使用
func (s *Service) Cities(rows []models.Restaurant) []string {
	seen := make(map[string]struct{})
	cities := make([]string, 0)
	for i := range rows {
		if _, ok := seen[rows[i].City]; ok {
			continue
		}
		seen[rows[i].City] = struct{}{}
		cities = append(cities, rows[i].City)
	}
	sort.Strings(cities)
	return cities
}

// cuisineCounts 拆分逗号分隔的菜系列表并逐项计数
func cuisineCounts(rows []models.Restaurant) map[string]int {
	counts := make(map[string]int)
	for i := range rows {
		for _, cuisine := range strings.Split(rows[i].Cuisines, ",") {
			cuisine = strings.TrimSpace(cuisine)
			if cuisine == "" {
				continue
			}
			counts[cuisine]++
		}
	}
	return counts
}

// topCounts 计数排行：数量降序，数量相同按名称升序保证输出稳定
func topCounts(counts map[string]int, limit int) ChartData {
	type entry struct {
		name  string
		count int
	}
	entries := make([]entry, 0, len(counts))
	for name, count := range counts {
		entries = append(entries, entry{name, count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].name < entries[j].name
	})

	if len(entries) > limit {
		entries = entries[:limit]
	}

	data := ChartData{Labels: make([]string, 0, len(entries)), Values: make([]float64, 0, len(entries))}
	for _, e := range entries {
		data.Labels = append(data.Labels, e.name)
		data.Values = append(data.Values, float64(e.count))
	}
	return data
}
