// Package screening 编排简历筛选流水线：
// 文本处理、实体抽取、评分和排序
package screening

import (
	"context"
	"sort"
	"strings"
	"sync"

	"resume-screening-go/internal/config"
	"resume-screening-go/internal/extractor"
	"resume-screening-go/internal/logger"
	"resume-screening-go/internal/scoring"
	"resume-screening-go/internal/similarity"
	"resume-screening-go/internal/textproc"
	"resume-screening-go/internal/types"
)

// Screener 简历筛选器
type Screener struct {
	scorer  *scoring.Scorer
	workers int
}

// NewScreener 创建简历筛选器
// workers 控制批量打分的并发度，小于1时按1处理
func NewScreener(cfg *config.Config, calc similarity.Calculator) *Screener {
	workers := cfg.Server.Workers
	if workers < 1 {
		workers = 1
	}
	return &Screener{
		scorer:  scoring.NewScorer(cfg.Scoring, calc),
		workers: workers,
	}
}

// ScoreResume 对单份简历完成抽取和评分
func (s *Screener) ScoreResume(ctx context.Context, doc types.ResumeDocument, job types.JobRequirement) (types.ResumeResult, error) {
	entities := extractor.ExtractEntities(doc.Text)
	matchedSkills := extractor.FilterSkills(entities.Skills, job.Skills)
	resumeText := textproc.RemoveSensitiveInfo(textproc.CleanText(doc.Text))

	input := scoring.Input{
		ResumeText:      resumeText,
		MatchedSkills:   strings.Join(matchedSkills, ", "),
		Education:       strings.Join(entities.Education, ", "),
		ExperienceYears: entities.ExperienceYears,
	}

	breakdown, err := s.scorer.Score(ctx, input, job)
	if err != nil {
		return types.ResumeResult{}, NewScoreError(doc.Filename, err.Error())
	}

	logger.Info().
		Str("filename", doc.Filename).
		Float64("total_score", breakdown.Total).
		Int("matched_skills", len(matchedSkills)).
		Msg("简历评分完成")

	return types.ResumeResult{
		Filename:        doc.Filename,
		Skills:          strings.Join(entities.Skills, ", "),
		Education:       input.Education,
		Experience:      entities.ExperienceYears,
		RSkills:         input.MatchedSkills,
		Explanation:     s.scorer.GenerateExplanation(breakdown),
		TotalScore:      breakdown.Total,
		SkillsScore:     breakdown.Skills,
		ExperienceScore: breakdown.Experience,
		EducationScore:  breakdown.Education,
		GeneralScore:    breakdown.General,
	}, nil
}

// RankResumes 批量评分并按总分降序排序
// 单份简历失败不影响其余简历；总分相同的保持输入顺序
func (s *Screener) RankResumes(ctx context.Context, docs []types.ResumeDocument, job types.JobRequirement) ([]types.ResumeResult, []types.DocumentFailure) {
	type outcome struct {
		result types.ResumeResult
		err    error
	}

	jobs := make(chan int)
	outputs := make([]outcome, len(docs))

	var wg sync.WaitGroup
	workers := s.workers
	if workers > len(docs) {
		workers = len(docs)
	}

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				result, err := s.ScoreResume(ctx, docs[i], job)
				outputs[i] = outcome{result: result, err: err}
			}
		}()
	}

	for i := range docs {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	var results []types.ResumeResult
	var failures []types.DocumentFailure
	for i, out := range outputs {
		if out.err != nil {
			logger.Error().
				Err(out.err).
				Str("filename", docs[i].Filename).
				Msg("简历处理失败")
			failures = append(failures, types.DocumentFailure{
				Filename: docs[i].Filename,
				Error:    out.err.Error(),
			})
			continue
		}
		results = append(results, out.result)
	}

	// 稳定排序：总分相同的保持输入顺序
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].TotalScore > results[j].TotalScore
	})

	return results, failures
}
