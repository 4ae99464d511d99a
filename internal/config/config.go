package config

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrWeightsInvalid 评分权重校验失败时返回的基础错误
var ErrWeightsInvalid = fmt.Errorf("评分权重之和必须为1.0")

// Config 应用程序配置
type Config struct {
	// 服务器配置
	Server ServerConfig `yaml:"server"`

	// Tika服务器配置
	Tika TikaConfig `yaml:"tika"`

	// 相似度计算配置
	Similarity SimilarityConfig `yaml:"similarity"`

	// Redis配置（相似度得分缓存，可选）
	Redis RedisConfig `yaml:"redis"`

	// 评分模型配置
	Scoring ScoringConfig `yaml:"scoring"`

	// 日志配置
	Logger LoggerConfig `yaml:"logger"`
}

// ServerConfig 定义服务器配置
type ServerConfig struct {
	Address  string `yaml:"address"`   // 例如 ":8080" or "0.0.0.0:8080"
	APIKey   string `yaml:"api_key"`   // 可选，设置后启用keyauth中间件
	MaxFiles int    `yaml:"max_files"` // 单次请求最多简历份数
	Workers  int    `yaml:"workers"`   // 批量打分的并发worker数，1为串行
}

// TikaConfig Tika服务器配置结构
type TikaConfig struct {
	ServerURL string `yaml:"server_url"`      // Tika服务器URL
	Timeout   int    `yaml:"timeout_seconds"` // 超时时间(秒)
}

// SimilarityConfig 相似度提供方配置
type SimilarityConfig struct {
	// Provider 取值 "dashscope" 或 "static"（确定性桩实现，用于测试和离线运行）
	Provider string `yaml:"provider"`
	// StaticScore static provider固定返回的相似度
	StaticScore float64         `yaml:"static_score"`
	Embedding   EmbeddingConfig `yaml:"embedding"`
}

// EmbeddingConfig Embedding服务配置 (OpenAI兼容接口)
type EmbeddingConfig struct {
	APIKey     string `yaml:"api_key"`
	Model      string `yaml:"model"`
	Dimensions int    `yaml:"dimensions"`
	BaseURL    string `yaml:"base_url"`
	Timeout    int    `yaml:"timeout_seconds"` // HTTP超时(秒)
}

// RedisConfig holds configuration for Redis
type RedisConfig struct {
	Enabled  bool   `yaml:"enabled"` // 是否启用相似度缓存
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	// 连接池设置
	PoolSize     int `yaml:"pool_size"`      // 连接池大小
	MinIdleConns int `yaml:"min_idle_conns"` // 最小空闲连接数
	// 超时设置
	DialTimeoutSeconds  int `yaml:"dial_timeout_seconds"`  // 连接超时(秒)
	ReadTimeoutSeconds  int `yaml:"read_timeout_seconds"`  // 读取超时(秒)
	WriteTimeoutSeconds int `yaml:"write_timeout_seconds"` // 写入超时(秒)
	// 缓存过期时间(小时)
	ScoreCacheExpireHours int `yaml:"score_cache_expire_hours"`
	// 是否挂载OpenTelemetry追踪钩子
	EnableTracing bool `yaml:"enable_tracing"`
}

// ScoringConfig 评分模型配置：权重、阈值和经验评分参数
type ScoringConfig struct {
	Weights    Weights    `yaml:"weights"`
	Thresholds Thresholds `yaml:"thresholds"`
	Experience Experience `yaml:"experience"`
	// DegreeBoost 学位等价加成分值
	DegreeBoost float64 `yaml:"degree_boost"`
}

// Weights 四个子分数的权重，总和必须为1.0（容差0.01）
type Weights struct {
	General    float64 `yaml:"general"`
	Skills     float64 `yaml:"skills"`
	Experience float64 `yaml:"experience"`
	Education  float64 `yaml:"education"`
}

// Sum 返回权重之和
func (w Weights) Sum() float64 {
	return w.General + w.Skills + w.Experience + w.Education
}

// Thresholds 各类别判定"强匹配"的加权分数阈值（严格大于才算强匹配）
type Thresholds struct {
	General    float64 `yaml:"general"`
	Skills     float64 `yaml:"skills"`
	Experience float64 `yaml:"experience"`
	Education  float64 `yaml:"education"`
}

// Experience 经验评分参数
type Experience struct {
	// MaxScalingFactor 简历年限/要求年限的比值上限
	MaxScalingFactor float64 `yaml:"max_scaling_factor"`
	// NoRequirementScore 岗位未提出年限要求时的满分比值
	NoRequirementScore float64 `yaml:"no_requirement_score"`
}

// LoggerConfig 日志配置
type LoggerConfig struct {
	Level        string `yaml:"level"`         // debug, info, warn, error
	Format       string `yaml:"format"`        // json, pretty
	TimeFormat   string `yaml:"time_format"`   // 时间格式
	ReportCaller bool   `yaml:"report_caller"` // 是否报告调用位置
}

// LoadConfig 从文件加载配置
// 未指定路径时按常见位置查找；找不到文件则使用默认配置（便于测试环境运行）
func LoadConfig(configPath string) (*Config, error) {
	if configPath == "" {
		searchPaths := []string{
			"config.yaml",
			"./config.yaml",
			"../config.yaml",
			filepath.Join(os.Getenv("HOME"), ".resume-screening", "config.yaml"),
		}

		if execPath, err := os.Executable(); err == nil {
			execDir := filepath.Dir(execPath)
			searchPaths = append(searchPaths, filepath.Join(execDir, "config.yaml"))
		}

		for _, path := range searchPaths {
			if _, err := os.Stat(path); err == nil {
				configPath = path
				break
			}
		}

		// 仍找不到配置文件时返回默认配置，由启动方决定是否接受
		if configPath == "" {
			cfg := DefaultConfig()
			applyEnvOverrides(cfg)
			return cfg, cfg.Validate()
		}
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}

	applyEnvOverrides(cfg)
	applyDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyEnvOverrides 从环境变量覆盖敏感配置（如果存在）
func applyEnvOverrides(cfg *Config) {
	if envKey := os.Getenv("DASHSCOPE_API_KEY"); envKey != "" {
		cfg.Similarity.Embedding.APIKey = envKey
	}
	if envURL := os.Getenv("DASHSCOPE_EMBEDDING_URL"); envURL != "" {
		cfg.Similarity.Embedding.BaseURL = envURL
	}
	if envKey := os.Getenv("SERVER_API_KEY"); envKey != "" {
		cfg.Server.APIKey = envKey
	}
	if envProvider := os.Getenv("SIMILARITY_PROVIDER"); envProvider != "" {
		cfg.Similarity.Provider = strings.ToLower(envProvider)
	}
}

// applyDefaults 对解析后留空的字段补默认值
func applyDefaults(cfg *Config) {
	def := DefaultConfig()
	if cfg.Server.Address == "" {
		cfg.Server.Address = def.Server.Address
	}
	if cfg.Server.MaxFiles <= 0 {
		cfg.Server.MaxFiles = def.Server.MaxFiles
	}
	if cfg.Server.Workers <= 0 {
		cfg.Server.Workers = def.Server.Workers
	}
	if cfg.Tika.ServerURL == "" {
		cfg.Tika.ServerURL = def.Tika.ServerURL
	}
	if cfg.Tika.Timeout <= 0 {
		cfg.Tika.Timeout = def.Tika.Timeout
	}
	if cfg.Similarity.Provider == "" {
		cfg.Similarity.Provider = def.Similarity.Provider
	}
	if cfg.Similarity.StaticScore == 0 {
		cfg.Similarity.StaticScore = def.Similarity.StaticScore
	}
	if cfg.Similarity.Embedding.Model == "" {
		cfg.Similarity.Embedding.Model = def.Similarity.Embedding.Model
	}
	if cfg.Similarity.Embedding.Dimensions == 0 {
		cfg.Similarity.Embedding.Dimensions = def.Similarity.Embedding.Dimensions
	}
	if cfg.Similarity.Embedding.BaseURL == "" {
		cfg.Similarity.Embedding.BaseURL = def.Similarity.Embedding.BaseURL
	}
	if cfg.Similarity.Embedding.Timeout <= 0 {
		cfg.Similarity.Embedding.Timeout = def.Similarity.Embedding.Timeout
	}
	if cfg.Redis.ScoreCacheExpireHours <= 0 {
		cfg.Redis.ScoreCacheExpireHours = def.Redis.ScoreCacheExpireHours
	}
	if cfg.Scoring.Experience.MaxScalingFactor == 0 {
		cfg.Scoring.Experience.MaxScalingFactor = def.Scoring.Experience.MaxScalingFactor
	}
	if cfg.Scoring.Experience.NoRequirementScore == 0 {
		cfg.Scoring.Experience.NoRequirementScore = def.Scoring.Experience.NoRequirementScore
	}
	if cfg.Scoring.DegreeBoost == 0 {
		cfg.Scoring.DegreeBoost = def.Scoring.DegreeBoost
	}
}

// Validate 校验配置的关键不变量
// 权重之和偏离1.0超过容差属于致命错误，进程不应继续启动
func (c *Config) Validate() error {
	if sum := c.Scoring.Weights.Sum(); math.Abs(sum-1.0) > 0.01 {
		return fmt.Errorf("%w: 当前为 %.4f", ErrWeightsInvalid, sum)
	}
	if c.Scoring.Experience.MaxScalingFactor <= 0 {
		return fmt.Errorf("经验比值上限必须为正数: %.2f", c.Scoring.Experience.MaxScalingFactor)
	}
	switch c.Similarity.Provider {
	case "dashscope", "static":
	default:
		return fmt.Errorf("未知的相似度提供方: %s", c.Similarity.Provider)
	}
	return nil
}

// DefaultConfig 创建一个默认配置
func DefaultConfig() *Config {
	cfg := &Config{}

	cfg.Server.Address = ":8080"
	cfg.Server.MaxFiles = 10
	cfg.Server.Workers = 4

	// Tika默认配置
	cfg.Tika.ServerURL = "http://localhost:9998"
	cfg.Tika.Timeout = 60

	// 相似度默认配置
	cfg.Similarity.Provider = "dashscope"
	cfg.Similarity.StaticScore = 0.8
	cfg.Similarity.Embedding.Model = "text-embedding-v3"
	cfg.Similarity.Embedding.Dimensions = 1024
	cfg.Similarity.Embedding.BaseURL = "https://dashscope.aliyuncs.com/compatible-mode/v1/embeddings"
	cfg.Similarity.Embedding.Timeout = 30

	// Redis默认配置（缓存默认关闭）
	cfg.Redis.Enabled = false
	cfg.Redis.Address = "localhost:6379"
	cfg.Redis.PoolSize = 10
	cfg.Redis.MinIdleConns = 2
	cfg.Redis.DialTimeoutSeconds = 5
	cfg.Redis.ReadTimeoutSeconds = 3
	cfg.Redis.WriteTimeoutSeconds = 3
	cfg.Redis.ScoreCacheExpireHours = 24

	// 评分默认配置
	cfg.Scoring.Weights = Weights{
		General:    0.10,
		Skills:     0.40,
		Experience: 0.30,
		Education:  0.20,
	}
	cfg.Scoring.Thresholds = Thresholds{
		General:    7,
		Skills:     30,
		Experience: 20,
		Education:  12,
	}
	cfg.Scoring.Experience = Experience{
		MaxScalingFactor:   1.5,
		NoRequirementScore: 1.0,
	}
	cfg.Scoring.DegreeBoost = 0.5

	// 日志默认配置
	cfg.Logger.Level = "info"
	cfg.Logger.Format = "pretty"
	cfg.Logger.TimeFormat = "2006-01-02 15:04:05"
	cfg.Logger.ReportCaller = true

	return cfg
}

// DialTimeout Redis连接超时
func (r RedisConfig) DialTimeout() time.Duration {
	return time.Duration(r.DialTimeoutSeconds) * time.Second
}

// ReadTimeout Redis读取超时
func (r RedisConfig) ReadTimeout() time.Duration {
	return time.Duration(r.ReadTimeoutSeconds) * time.Second
}

// WriteTimeout Redis写入超时
func (r RedisConfig) WriteTimeout() time.Duration {
	return time.Duration(r.WriteTimeoutSeconds) * time.Second
}

// ScoreCacheTTL 相似度得分缓存过期时间
func (r RedisConfig) ScoreCacheTTL() time.Duration {
	return time.Duration(r.ScoreCacheExpireHours) * time.Hour
}
