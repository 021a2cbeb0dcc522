package processor

import (
	"errors"
	"fmt"
)

// 基础错误类型
var (
	ErrExtractTextFailed = errors.New("提取简历文本失败")
	ErrFileOpenFailed    = errors.New("打开简历文件失败")
	ErrUnsupportedFile   = errors.New("不支持的简历文件")
)

// ResumeParseError 包含详细信息的解析错误
type ResumeParseError struct {
	File    string
	Op      string
	BaseErr error
	Detail  string
}

func (e *ResumeParseError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s (操作:%s, 文件:%s): %s", e.BaseErr, e.Op, e.File, e.Detail)
	}
	return fmt.Sprintf("%s (操作:%s, 文件:%s)", e.BaseErr, e.Op, e.File)
}

func (e *ResumeParseError) Unwrap() error {
	return e.BaseErr
}

// Is 实现 errors.Is 接口以支持错误比较
func (e *ResumeParseError) Is(target error) bool {
	return errors.Is(e.BaseErr, target)
}

func NewExtractError(file, detail string) error {
	return &ResumeParseError{
		File:    file,
		Op:      "extract",
		BaseErr: ErrExtractTextFailed,
		Detail:  detail,
	}
}

func NewOpenError(file, detail string) error {
	return &ResumeParseError{
		File:    file,
		Op:      "open",
		BaseErr: ErrFileOpenFailed,
		Detail:  detail,
	}
}

func NewUnsupportedError(file, detail string) error {
	return &ResumeParseError{
		File:    file,
		Op:      "validate",
		BaseErr: ErrUnsupportedFile,
		Detail:  detail,
	}
}
