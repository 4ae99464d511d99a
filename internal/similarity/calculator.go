// Package similarity 提供文本相似度计算：
// 向量化由Embedding服务完成，相似度为余弦相似度
package similarity

import (
	"context"
	"fmt"
	"math"
)

// Calculator 相似度计算器接口
type Calculator interface {
	// Encode 将文本转换为向量
	Encode(ctx context.Context, text string) ([]float64, error)
	// ComputeSimilarity 计算两段文本的余弦相似度
	ComputeSimilarity(ctx context.Context, text1, text2 string) (float64, error)
}

// CosineSimilarity 计算两个向量的余弦相似度
// 维度不一致返回错误；零向量的相似度定义为0
func CosineSimilarity(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("向量维度不一致: %d != %d", len(a), len(b))
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0, nil
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB)), nil
}

// Warmup 触发一次计算以建立连接并提前暴露配置错误
func Warmup(ctx context.Context, calc Calculator) error {
	if _, err := calc.ComputeSimilarity(ctx, "warmup", "warmup"); err != nil {
		return fmt.Errorf("相似度计算器预热失败: %w", err)
	}
	return nil
}
