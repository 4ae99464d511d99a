// Package textproc 提供简历文本的规范化处理：
// 清洗、敏感信息去除和PDF提取产生的断词修复
package textproc

import (
	"regexp"
	"strings"
)

var (
	specialCharsPattern = regexp.MustCompile(`[^a-zA-Z0-9\s]`)
	whitespacePattern   = regexp.MustCompile(`\s+`)
	letterNumberPattern = regexp.MustCompile(`([a-zA-Z])(\d)`)
	numberLetterPattern = regexp.MustCompile(`(\d)([a-zA-Z])`)
	// 短月份形式在前，与评分结果的历史行为保持一致（leftmost-first匹配）
	monthPattern = regexp.MustCompile(`(?i)(\w)(Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Sept|Oct|Nov|Dec|` +
		`January|February|March|April|May|June|July|August|September|October|November|December)`)
)

// biasKeywords 简历打分前需要移除的潜在偏见词汇（整词匹配，不区分大小写）
var biasKeywords = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bmale\b`),
	regexp.MustCompile(`(?i)\bfemale\b`),
	regexp.MustCompile(`(?i)\bblack\b`),
	regexp.MustCompile(`(?i)\bwhite\b`),
	regexp.MustCompile(`(?i)\basian\b`),
	regexp.MustCompile(`(?i)\bafrican\b`),
	regexp.MustCompile(`(?i)\bhispanic\b`),
	regexp.MustCompile(`(?i)\bmarried\b`),
	regexp.MustCompile(`(?i)\bsingle\b`),
}

// CleanText 清洗提取出的文本：转小写、去特殊字符、去停用词
// 空输入或仅空白的输入返回空字符串
func CleanText(text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}

	text = strings.ToLower(text)
	text = specialCharsPattern.ReplaceAllString(text, "")

	words := strings.Fields(text)
	kept := words[:0]
	for _, w := range words {
		if _, ok := stopWords[w]; !ok {
			kept = append(kept, w)
		}
	}
	return strings.Join(kept, " ")
}

// RemoveSensitiveInfo 移除简历中的偏见相关词汇
// 基础实现；更高精度可以考虑NER，但当前词表足以覆盖常见情形
func RemoveSensitiveInfo(text string) string {
	if text == "" {
		return ""
	}

	for _, p := range biasKeywords {
		text = p.ReplaceAllString(text, " ")
	}

	return strings.TrimSpace(whitespacePattern.ReplaceAllString(text, " "))
}

// FixBrokenWords 修复PDF提取造成的粘连词并压缩多余空白
// 在字母和数字之间、数字和字母之间以及月份名称之前补空格，
// 例如 "september2011" -> "september 2011"，"2011newbrunswick" -> "2011 newbrunswick"
func FixBrokenWords(text string) string {
	if text == "" {
		return ""
	}

	text = strings.TrimSpace(whitespacePattern.ReplaceAllString(text, " "))
	text = letterNumberPattern.ReplaceAllString(text, "$1 $2")
	text = numberLetterPattern.ReplaceAllString(text, "$1 $2")
	text = monthPattern.ReplaceAllString(text, "$1 $2")

	return text
}
