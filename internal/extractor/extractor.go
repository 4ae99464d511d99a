// Package extractor 从简历文本中抽取技能、教育背景和工作年限
package extractor

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"resume-screening-go/internal/textproc"
)

const monthNames = `Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Sept|Oct|Nov|Dec|` +
	`January|February|March|April|May|June|July|August|September|October|November|December`

var (
	// 显式年限声明，例如 "5 years of experience"、"3+ years"
	explicitYearsPattern = regexp.MustCompile(`(\d+)\s*(?:\+|-)?\s*years?`)

	// 年份区间模式：纯年份、月/年、月份名+年份三种写法
	yearRangePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(\b\d{4}\b)\s*[-to]+\s*(\b\d{4}\b|\bcurrent\b|\bpresent\b)`),
		regexp.MustCompile(`(?i)(\d{2}/\d{4})\s*[-–to]+\s*(\d{2}/\d{2}/\d{4}|\d{2}/\d{4}|\bcurrent\b|\bpresent\b)`),
		regexp.MustCompile(`(?i)(\b(?:` + monthNames + `)\s+\d{4})\s*[-to]+\s*(\b(?:` + monthNames + `)\s+\d{4}|\bcurrent\b|\bpresent\b)`),
	}

	fourDigitPattern = regexp.MustCompile(`\d{4}`)
	ongoingPattern   = regexp.MustCompile(`(?i)current|present`)
	workSectionWords = regexp.MustCompile(`work|experience`)
	educationWord    = regexp.MustCompile(`education`)
)

// Entities 从一份简历中抽取出的结构化信息
type Entities struct {
	Skills          []string // 命中的技能词表条目（小写，词表顺序）
	Education       []string // 命中的教育关键词条目（小写，词表顺序）
	ExperienceYears int      // 估算的工作年限
}

// yearRange 左闭右闭的年份区间
type yearRange struct {
	start int
	end   int
}

// ExtractEntities 抽取简历中的技能、教育背景和工作年限
// 技能和教育在清洗后的文本上做子串匹配；年限在未清洗的小写原文上提取，
// 因为清洗会破坏 "2015 - 2020" 这类日期写法
func ExtractEntities(text string) Entities {
	rawText := strings.ToLower(text)
	cleaned := textproc.CleanText(rawText)

	var skills []string
	for _, skill := range skillDataset {
		if strings.Contains(cleaned, strings.ToLower(skill)) {
			skills = append(skills, strings.ToLower(skill))
		}
	}

	var education []string
	for _, edu := range educationKeywords {
		if strings.Contains(cleaned, strings.ToLower(edu)) {
			education = append(education, strings.ToLower(edu))
		}
	}

	return Entities{
		Skills:          skills,
		Education:       education,
		ExperienceYears: ExtractExperience(rawText),
	}
}

// FilterSkills 求简历技能与岗位技能要求的交集
// 岗位技能按", "分隔后去除首尾空白，匹配为精确相等
func FilterSkills(applicantSkills []string, jobSkills string) []string {
	required := make(map[string]struct{})
	for _, item := range strings.Split(jobSkills, ", ") {
		required[strings.TrimSpace(item)] = struct{}{}
	}

	var matched []string
	for _, skill := range applicantSkills {
		if _, ok := required[skill]; ok {
			matched = append(matched, skill)
		}
	}
	return matched
}

// ExtractExperience 估算文本中的工作年限
// 显式声明（如 "5 years of experience"）优先，取最大值；
// 否则聚合日期区间，并剔除教育经历对应的区间后合并求和
func ExtractExperience(text string) int {
	matches := explicitYearsPattern.FindAllStringSubmatch(text, -1)
	if len(matches) > 0 {
		maxYears := 0
		for _, m := range matches {
			if n, err := strconv.Atoi(m[1]); err == nil && n > maxYears {
				maxYears = n
			}
		}
		return maxYears
	}

	educationYears := getYears(getEducationText(text))
	allYears := getYears(text)

	eduSet := make(map[yearRange]struct{}, len(educationYears))
	for _, r := range educationYears {
		eduSet[r] = struct{}{}
	}

	var workYears []yearRange
	for _, r := range allYears {
		if _, ok := eduSet[r]; !ok {
			workYears = append(workYears, r)
		}
	}

	return mergeAndSum(workYears)
}

// getYears 提取文本中所有合法的年份区间
// "current"/"present" 解析为当前年份；起始年晚于结束年的区间丢弃
func getYears(text string) []yearRange {
	currentYear := time.Now().Year()

	var years []yearRange
	for _, pattern := range yearRangePatterns {
		for _, m := range pattern.FindAllStringSubmatch(text, -1) {
			startStr, endStr := m[1], m[2]

			startMatch := fourDigitPattern.FindString(startStr)
			if startMatch == "" {
				continue
			}
			startYear, err := strconv.Atoi(startMatch)
			if err != nil {
				continue
			}

			var endYear int
			if ongoingPattern.MatchString(endStr) {
				endYear = currentYear
			} else {
				endMatch := fourDigitPattern.FindString(endStr)
				if endMatch == "" {
					continue
				}
				endYear, err = strconv.Atoi(endMatch)
				if err != nil {
					continue
				}
			}

			if startYear <= endYear {
				years = append(years, yearRange{start: startYear, end: endYear})
			}
		}
	}

	return years
}

// mergeAndSum 合并重叠区间后累计总年限
func mergeAndSum(years []yearRange) int {
	if len(years) == 0 {
		return 0
	}

	sort.Slice(years, func(i, j int) bool {
		if years[i].start != years[j].start {
			return years[i].start < years[j].start
		}
		return years[i].end < years[j].end
	})

	total := 0
	currentStart, currentEnd := years[0].start, years[0].end
	for _, r := range years[1:] {
		if r.start <= currentEnd {
			if r.end > currentEnd {
				currentEnd = r.end
			}
		} else {
			total += currentEnd - currentStart
			currentStart, currentEnd = r.start, r.end
		}
	}
	total += currentEnd - currentStart

	return total
}

// getEducationText 截取教育背景段落
// 从第一个 "education" 到其后的 "work"/"experience" 为止；
// 找不到工作段落时从最后一个 "education" 取到文本末尾
func getEducationText(text string) string {
	text = textproc.FixBrokenWords(text)

	eduIdx := strings.Index(text, "education")
	if eduIdx == -1 {
		return ""
	}

	if loc := workSectionWords.FindStringIndex(text[eduIdx:]); loc != nil {
		return text[eduIdx : eduIdx+loc[0]]
	}

	locs := educationWord.FindAllStringIndex(text, -1)
	lastEduIdx := locs[len(locs)-1][0]
	if lastEduIdx != eduIdx {
		return text[lastEduIdx:]
	}
	return text[eduIdx:]
}
