// Package scoring 实现简历与岗位要求的加权评分模型：
// 综合/技能/经验/教育四个维度，加权后合成总分并生成文字说明
package scoring

import (
	"context"
	"fmt"
	"math"
	"strings"

	"resume-screening-go/internal/config"
	"resume-screening-go/internal/extractor"
	"resume-screening-go/internal/similarity"
	"resume-screening-go/internal/types"
)

// Breakdown 评分明细，所有分数为加权后的百分制数值，保留两位小数
type Breakdown struct {
	Total      float64 // 总分，等于四个子分数之和
	Skills     float64
	Experience float64
	Education  float64
	General    float64
}

// Input 参与评分的简历侧数据
type Input struct {
	// ResumeText 清洗并脱敏后的简历全文
	ResumeText string
	// MatchedSkills 与岗位要求匹配上的技能，逗号分隔
	MatchedSkills string
	// Education 命中的教育关键词，逗号分隔
	Education string
	// ExperienceYears 估算的工作年限
	ExperienceYears int
}

// Scorer 持有评分配置与相似度计算器
type Scorer struct {
	cfg  config.ScoringConfig
	calc similarity.Calculator
}

// NewScorer 创建评分器
func NewScorer(cfg config.ScoringConfig, calc similarity.Calculator) *Scorer {
	return &Scorer{cfg: cfg, calc: calc}
}

// Score 计算一份简历对一个岗位的评分明细
func (s *Scorer) Score(ctx context.Context, input Input, job types.JobRequirement) (Breakdown, error) {
	generalSim, err := s.calc.ComputeSimilarity(ctx, input.ResumeText, job.Description)
	if err != nil {
		return Breakdown{}, fmt.Errorf("计算综合相似度失败: %w", err)
	}
	generalScore := generalSim * s.cfg.Weights.General * 100

	skillsSim, err := s.calc.ComputeSimilarity(ctx, input.MatchedSkills, job.Skills)
	if err != nil {
		return Breakdown{}, fmt.Errorf("计算技能相似度失败: %w", err)
	}
	skillsScore := skillsSim * s.cfg.Weights.Skills * 100

	experienceSim, err := s.calc.ComputeSimilarity(ctx, input.ResumeText, job.Experience)
	if err != nil {
		return Breakdown{}, fmt.Errorf("计算经验相似度失败: %w", err)
	}
	experienceScore := s.ComputeExperienceScore(input.ExperienceYears, job.Experience, experienceSim) *
		s.cfg.Weights.Experience * 100

	educationSim, err := s.QualificationSimilarity(ctx, input.Education, job.Education)
	if err != nil {
		return Breakdown{}, fmt.Errorf("计算教育相似度失败: %w", err)
	}
	educationScore := educationSim * s.cfg.Weights.Education * 100

	totalScore := skillsScore + experienceScore + educationScore + generalScore

	return Breakdown{
		Total:      round2(totalScore),
		Skills:     round2(skillsScore),
		Experience: round2(experienceScore),
		Education:  round2(educationScore),
		General:    round2(generalScore),
	}, nil
}

// QualificationSimilarity 学历匹配度：文本相似度加上学位等价加成，上限1.0
// 简历侧按", "拆分出专业条目，条目出现在等价表中且对应岗位专业
// 出现在岗位要求里时加成一次
func (s *Scorer) QualificationSimilarity(ctx context.Context, resumeEducation, jobEducation string) (float64, error) {
	score, err := s.calc.ComputeSimilarity(ctx, resumeEducation, jobEducation)
	if err != nil {
		return 0, err
	}

	for _, degree := range strings.Split(resumeEducation, ", ") {
		for key, equivalents := range extractor.DegreeEquivalents {
			for _, equivalent := range equivalents {
				if degree == equivalent && strings.Contains(jobEducation, key) {
					score += s.cfg.DegreeBoost
				}
			}
		}
	}

	return math.Min(score, 1.0), nil
}

// ComputeExperienceScore 合成经验得分：年限比值与文本相似度相乘
// 岗位未提出年限要求时比值取满分；比值上限为MaxScalingFactor
func (s *Scorer) ComputeExperienceScore(resumeYears int, jobExperience string, similarityScore float64) float64 {
	jobYears := extractor.ExtractExperience(jobExperience)

	var numScore float64
	if jobYears == 0 {
		numScore = s.cfg.Experience.NoRequirementScore
	} else {
		numScore = math.Min(float64(resumeYears)/float64(jobYears), s.cfg.Experience.MaxScalingFactor)
	}

	return numScore * similarityScore
}

// GenerateExplanation 根据评分明细生成各维度的文字说明
// 子分数严格大于对应阈值才算强匹配
func (s *Scorer) GenerateExplanation(b Breakdown) string {
	parts := make([]string, 0, 4)

	if b.Skills > s.cfg.Thresholds.Skills {
		parts = append(parts, "SS: strong skill.")
	} else {
		parts = append(parts, "SS: lacks some required skills.")
	}

	if b.Experience > s.cfg.Thresholds.Experience {
		parts = append(parts, "EX: relevant work experience.")
	} else {
		parts = append(parts, "EX: less experience.")
	}

	if b.Education > s.cfg.Thresholds.Education {
		parts = append(parts, "ED: meets the required qualifications.")
	} else {
		parts = append(parts, "ED: does not fully meet the qualifications.")
	}

	if b.General > s.cfg.Thresholds.General {
		parts = append(parts, "GS: aligns well.")
	} else {
		parts = append(parts, "GS: does not strongly align.")
	}

	return strings.Join(parts, " ")
}

// round2 四舍五入保留两位小数
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
