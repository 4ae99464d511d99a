package constants

import "time"

const (
	// 上传校验相关常量
	DefaultMaxFiles = 10               // 单次请求最多简历份数
	MaxFileSize     = 10 * 1024 * 1024 // 单个简历文件上限 10MB
	MaxRequestBody  = 50 * 1024 * 1024 // 整个请求体上限 50MB
	MinUsableText   = 50               // 提取文本可用的最小长度

	// 岗位字段长度上限
	MaxJobDescriptionLen = 10000
	MaxJobSkillsLen      = 5000
	MaxJobExperienceLen  = 2000
	MaxJobEducationLen   = 2000
)

// Redis Key 常量
// 命名规范: app:{module}:{entity}:{unique_id}
const (
	// KeySimilarityScore 相似度得分缓存 (STRING)
	// 格式: app:similarity:score:{md5(text1)}:{md5(text2)}
	KeySimilarityScore = "app:similarity:score:%s:%s"

	// DefaultSimilarityCacheTTL 相似度缓存默认过期时间
	DefaultSimilarityCacheTTL = 24 * time.Hour
)
