// Package types 定义服务各层共享的数据结构
package types

// JobRequirement 岗位要求，来自筛选请求的表单字段
type JobRequirement struct {
	Description string `json:"job_description"` // 岗位描述
	Skills      string `json:"skills"`          // 要求技能，逗号分隔
	Experience  string `json:"experience"`      // 经验要求描述
	Education   string `json:"education"`       // 学历/专业要求描述
}

// ResumeDocument 一份已完成文本提取的简历
type ResumeDocument struct {
	Filename string
	Text     string
}

// ResumeResult 单份简历的评分结果
type ResumeResult struct {
	Filename string `json:"filename"`
	// 命中的技能与教育关键词，逗号分隔
	Skills    string `json:"skills"`
	Education string `json:"education"`
	// 估算的工作年限
	Experience int `json:"experience"`
	// 与岗位要求匹配上的技能，逗号分隔
	RSkills string `json:"r_skills"`
	// 各维度匹配情况的文字说明
	Explanation string `json:"explanation"`
	// 加权分数：总分及技能/经验/教育/综合四个子分数
	TotalScore      float64 `json:"ts"`
	SkillsScore     float64 `json:"ss"`
	ExperienceScore float64 `json:"ex"`
	EducationScore  float64 `json:"ed"`
	GeneralScore    float64 `json:"ge"`
}

// DocumentFailure 单份简历处理失败的记录
type DocumentFailure struct {
	Filename string `json:"filename"`
	Error    string `json:"error"`
}

// RankResponse 批量筛选的响应：成功结果与失败记录分开返回
type RankResponse struct {
	Success        bool              `json:"success"`
	BatchID        string            `json:"batch_id,omitempty"`
	TotalProcessed int               `json:"total_processed"`
	TotalFailed    int               `json:"total_failed"`
	Results        []ResumeResult    `json:"results"`
	Errors         []DocumentFailure `json:"errors,omitempty"`
}

// ErrorResponse 请求级错误的响应体
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
