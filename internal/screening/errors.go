package screening

import (
	"errors"
	"fmt"
)

// 定义基础错误类型
var (
	ErrExtractTextFailed = errors.New("提取简历文本失败")
	ErrInsufficientText  = errors.New("简历文本内容不足")
	ErrScoreFailed       = errors.New("简历评分失败")
)

// DocumentError 包含详细错误信息的自定义错误
type DocumentError struct {
	Filename string
	Op       string
	BaseErr  error
	Detail   string
}

func (e *DocumentError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s (操作:%s, 文件:%s): %s", e.BaseErr, e.Op, e.Filename, e.Detail)
	}
	return fmt.Sprintf("%s (操作:%s, 文件:%s)", e.BaseErr, e.Op, e.Filename)
}

func (e *DocumentError) Unwrap() error {
	return e.BaseErr
}

// Is 实现 errors.Is 接口以支持错误比较
func (e *DocumentError) Is(target error) bool {
	return errors.Is(e.BaseErr, target)
}

// 错误构造函数
func NewExtractError(filename, detail string) error {
	return &DocumentError{
		Filename: filename,
		Op:       "extract",
		BaseErr:  ErrExtractTextFailed,
		Detail:   detail,
	}
}

func NewInsufficientTextError(filename string) error {
	return &DocumentError{
		Filename: filename,
		Op:       "extract",
		BaseErr:  ErrInsufficientText,
		Detail:   "可用文本少于最小长度",
	}
}

func NewScoreError(filename, detail string) error {
	return &DocumentError{
		Filename: filename,
		Op:       "score",
		BaseErr:  ErrScoreFailed,
		Detail:   detail,
	}
}
