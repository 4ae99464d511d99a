package similarity

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strconv"
	"time"

	"resume-screening-go/internal/config"
	"resume-screening-go/internal/constants"
	"resume-screening-go/internal/logger"

	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"
)

// CachedCalculator 在底层计算器之上增加Redis得分缓存
// 同一文本对的相似度在TTL内只计算一次；缓存故障降级为直接计算
type CachedCalculator struct {
	inner  Calculator
	client *redis.Client
	ttl    time.Duration
}

// NewCachedCalculator 创建带Redis缓存的相似度计算器
func NewCachedCalculator(inner Calculator, cfg *config.RedisConfig) (*CachedCalculator, error) {
	if cfg == nil {
		return nil, fmt.Errorf("redis配置不能为空")
	}
	if cfg.Address == "" {
		return nil, fmt.Errorf("redis地址不能为空")
	}

	opt := &redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,

		// 连接池设置
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,

		// 超时设置
		DialTimeout:  cfg.DialTimeout(),
		ReadTimeout:  cfg.ReadTimeout(),
		WriteTimeout: cfg.WriteTimeout(),
	}

	client := redis.NewClient(opt)

	// 添加OpenTelemetry钩子, 记录所有Redis操作
	if cfg.EnableTracing {
		if err := redisotel.InstrumentTracing(client); err != nil {
			return nil, fmt.Errorf("redis链路追踪初始化失败: %w", err)
		}
	}

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("redis连接失败: %w", err)
	}

	ttl := cfg.ScoreCacheTTL()
	if ttl <= 0 {
		ttl = constants.DefaultSimilarityCacheTTL
	}

	return &CachedCalculator{
		inner:  inner,
		client: client,
		ttl:    ttl,
	}, nil
}

// Encode 向量本身不缓存，直接透传
func (c *CachedCalculator) Encode(ctx context.Context, text string) ([]float64, error) {
	return c.inner.Encode(ctx, text)
}

// ComputeSimilarity 先查缓存，未命中时计算并回写
func (c *CachedCalculator) ComputeSimilarity(ctx context.Context, text1, text2 string) (float64, error) {
	key := c.cacheKey(text1, text2)

	val, err := c.client.Get(ctx, key).Result()
	if err == nil {
		if score, parseErr := strconv.ParseFloat(val, 64); parseErr == nil {
			return score, nil
		}
		// 缓存值损坏，当作未命中处理
		logger.Warn().Str("key", key).Str("value", val).Msg("相似度缓存值无法解析，忽略")
	} else if err != redis.Nil {
		logger.Warn().Err(err).Str("key", key).Msg("相似度缓存读取失败，降级为直接计算")
	}

	score, err := c.inner.ComputeSimilarity(ctx, text1, text2)
	if err != nil {
		return 0, err
	}

	if setErr := c.client.Set(ctx, key, strconv.FormatFloat(score, 'f', -1, 64), c.ttl).Err(); setErr != nil {
		logger.Warn().Err(setErr).Str("key", key).Msg("相似度缓存写入失败")
	}

	return score, nil
}

// Close 关闭Redis连接
func (c *CachedCalculator) Close() error {
	return c.client.Close()
}

// cacheKey 对两段文本取MD5组成缓存键，避免将原文写入Redis
func (c *CachedCalculator) cacheKey(text1, text2 string) string {
	h1 := md5.Sum([]byte(text1))
	h2 := md5.Sum([]byte(text2))
	return fmt.Sprintf(constants.KeySimilarityScore, hex.EncodeToString(h1[:]), hex.EncodeToString(h2[:]))
}
