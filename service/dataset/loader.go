/*
 * @module service/dataset/loader
 * @description 餐厅CSV数据加载器，负责多编码尝试解码、表头定位、数据清洗和原始服务字段掩码采集
 * @architecture 分层架构 - 数据接入层
 * @documentReference dev_docs/dashboard_requirements.md
 * @stateFlow 读取文件 -> 按编码依次尝试解码解析 -> 清洗行数据 -> 采集服务字段掩码
 * @rules 缺失餐厅名的行直接丢弃；数值列强制转换失败按0处理；服务列掩码必须在布尔转换前采集
 * @dependencies golang.org/x/text/encoding/charmap, golang.org/x/text/transform, github.com/spf13/cast
 * @refs service/dataset/dataset_service.go, service/models/restaurant.go
 */

package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cast"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"restaurant-dashboard-service/service/models"
)

// 源CSV的列名约定，沿用Zomato数据集的表头
const (
	colName           = "Restaurant Name"
	colCity           = "City"
	colCuisines       = "Cuisines"
	colRating         = "Aggregate rating"
	colVotes          = "Votes"
	colAverageCost    = "Average Cost for two"
	colPriceRange     = "Price range"
	colTableBooking   = "Has Table booking"
	colOnlineDelivery = "Has Online delivery"
	colDeliveringNow  = "Is delivering now"
)

// encodingCandidate 候选字符编码，nil表示按UTF-8直接校验
type encodingCandidate struct {
	name string
	enc  encoding.Encoding
}

// 按顺序依次尝试的编码，第一个能解码且可解析的编码胜出
var encodingCandidates = []encodingCandidate{
	{"latin-1", charmap.ISO8859_1},
	{"utf-8", nil},
	{"cp1252", charmap.Windows1252},
}

// LoadResult 加载与清洗的产出：清洗后的行表、同下标空间的掩码表及加载统计
type LoadResult struct {
	Rows        []models.Restaurant
	Mask        []models.ServiceMask
	Encoding    string // 实际成功的编码名
	DroppedRows int    // 因缺失餐厅名被丢弃的行数
}

// Load 读取并清洗餐厅CSV文件
//
// 掩码表在服务列布尔转换之前采集：只有这样才能区分"原始缺失"与"显式No"，
// 后者是负面证据，不参与后续插补。
func Load(path string) (*LoadResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取CSV文件失败: %w", err)
	}

	var lastErr error
	for _, candidate := range encodingCandidates {
		text, err := decodeWith(data, candidate)
		if err != nil {
			lastErr = err
			continue
		}

		result, err := parseAndClean(text)
		if err != nil {
			lastErr = err
			continue
		}

		result.Encoding = candidate.name
		return result, nil
	}

	return nil, fmt.Errorf("所有候选编码均解析失败: %w", lastErr)
}

// decodeWith 用指定编码将原始字节解码为UTF-8文本
func decodeWith(data []byte, candidate encodingCandidate) (string, error) {
	if candidate.enc == nil {
		if !utf8.Valid(data) {
			return "", fmt.Errorf("内容不是合法的UTF-8")
		}
		return string(data), nil
	}

	decoded, _, err := transform.Bytes(candidate.enc.NewDecoder(), data)
	if err != nil {
		return "", fmt.Errorf("%s解码失败: %w", candidate.name, err)
	}
	return string(decoded), nil
}

// parseAndClean 解析CSV文本并执行清洗规则
func parseAndClean(text string) (*LoadResult, error) {
	reader := csv.NewReader(strings.NewReader(text))
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("CSV解析失败: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("CSV内容为空")
	}

	header := records[0]
	columns := make(map[string]int, len(header))
	for i, h := range header {
		columns[strings.TrimSpace(h)] = i
	}
	// 餐厅名与城市是清洗规则的前置条件，缺列快速失败而不是带病降级
	for _, required := range []string{colName, colCity} {
		if _, ok := columns[required]; !ok {
			return nil, fmt.Errorf("缺少必需列: %s", required)
		}
	}

	result := &LoadResult{
		Rows: make([]models.Restaurant, 0, len(records)-1),
		Mask: make([]models.ServiceMask, 0, len(records)-1),
	}

	for _, record := range records[1:] {
		name := fieldAt(record, columns, colName)
		if isMissing(name) {
			result.DroppedRows++
			continue
		}

		rawBooking := fieldAt(record, columns, colTableBooking)
		rawDelivery := fieldAt(record, columns, colOnlineDelivery)
		rawDelivering := fieldAt(record, columns, colDeliveringNow)

		result.Mask = append(result.Mask, models.ServiceMask{
			TableBookingMissing:   isMissing(rawBooking),
			OnlineDeliveryMissing: isMissing(rawDelivery),
			DeliveringNowMissing:  isMissing(rawDelivering),
		})

		result.Rows = append(result.Rows, models.Restaurant{
			Name:              name,
			City:              defaultIfMissing(fieldAt(record, columns, colCity), "Unknown"),
			Cuisines:          defaultIfMissing(fieldAt(record, columns, colCuisines), "Unknown"),
			Rating:            cast.ToFloat64(fieldAt(record, columns, colRating)),
			Votes:             cast.ToInt(fieldAt(record, columns, colVotes)),
			AverageCost:       cast.ToFloat64(fieldAt(record, columns, colAverageCost)),
			PriceRange:        cast.ToInt(fieldAt(record, columns, colPriceRange)),
			HasTableBooking:   toServiceFlag(rawBooking),
			HasOnlineDelivery: toServiceFlag(rawDelivery),
			IsDeliveringNow:   toServiceFlag(rawDelivering),
		})
	}

	return result, nil
}

// fieldAt 取某行指定列的字段值，列不存在或行长度不足时视为缺失
func fieldAt(record []string, columns map[string]int, col string) string {
	idx, ok := columns[col]
	if !ok || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}

// isMissing 判断原始字段值是否缺失
func isMissing(v string) bool {
	return v == "" || strings.EqualFold(v, "nan")
}

// defaultIfMissing 缺失值回填默认值
func defaultIfMissing(v, def string) string {
	if isMissing(v) {
		return def
	}
	return v
}

// toServiceFlag 服务列布尔强制转换，缺失值按"No"处理
func toServiceFlag(v string) bool {
	return strings.EqualFold(v, "yes")
}
