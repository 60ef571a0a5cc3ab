/*
 * @module service/cache/redis_cache
 * @description 基于Redis的分析结果响应缓存，缓存键绑定数据集版本实现重载后自动失效
 * @architecture 工具层 - 可选的读路径加速
 * @documentReference dev_docs/dashboard_requirements.md
 * @stateFlow 按版本+端点+筛选参数构建键 -> 命中直接返回 -> 未命中计算后回填
 * @rules 未配置REDIS_URL时缓存整体关闭；缓存故障只降级为直接计算，不影响请求结果
 * @dependencies github.com/go-redis/redis/v8
 * @refs api/controllers/analytics_controller.go, service/init.go
 */

package cache

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/go-redis/redis/v8"

	"restaurant-dashboard-service/service/models"
)

// 缓存条目的存活时间，重载通过版本号换键失效，TTL只负责清理旧版本残留
const defaultTTL = 10 * time.Minute

// ResponseCache 分析结果响应缓存
type ResponseCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewResponseCache 根据REDIS_URL环境变量创建响应缓存
// 未配置时返回nil（缓存关闭），配置错误或连接失败返回错误
func NewResponseCache() (*ResponseCache, error) {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		return nil, nil
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("解析REDIS_URL失败: %w", err)
	}

	client := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis连接失败: %w", err)
	}

	log.Printf("分析结果响应缓存已启用: addr=%s", opts.Addr)
	return &ResponseCache{client: client, ttl: defaultTTL}, nil
}

// BuildKey 构建缓存键：数据集版本 + 端点 + 筛选参数
func BuildKey(version, endpoint string, f models.FilterParams) string {
	return fmt.Sprintf("dashboard:%s:%s:city=%s&price=%d&rating=%g&search=%s",
		version, endpoint, f.City, f.PriceRange, f.MinRating, f.Search)
}

// Get 读取缓存的响应负载
func (c *ResponseCache) Get(ctx context.Context, key string) ([]byte, bool) {
	if c == nil {
		return nil, false
	}
	payload, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("读取响应缓存失败: %v", err)
		}
		return nil, false
	}
	return payload, true
}

// Set 写入响应负载，失败只记日志
func (c *ResponseCache) Set(ctx context.Context, key string, payload []byte) {
	if c == nil {
		return
	}
	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		log.Printf("写入响应缓存失败: %v", err)
	}
}
