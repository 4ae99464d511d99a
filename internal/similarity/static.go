package similarity

import "context"

// StaticCalculator 确定性的桩实现，用于测试和无Embedding服务的离线运行
// 向量和相似度都是固定值
type StaticCalculator struct {
	Score float64
}

// NewStaticCalculator 创建固定得分的计算器，score<=0时使用0.8
func NewStaticCalculator(score float64) *StaticCalculator {
	if score <= 0 {
		score = 0.8
	}
	return &StaticCalculator{Score: score}
}

// Encode 返回固定向量
func (s *StaticCalculator) Encode(_ context.Context, _ string) ([]float64, error) {
	return []float64{0.1, 0.2, 0.3, 0.4}, nil
}

// ComputeSimilarity 返回固定相似度
func (s *StaticCalculator) ComputeSimilarity(_ context.Context, _, _ string) (float64, error) {
	return s.Score, nil
}
