package tracing

import (
	"strings"
)

const (
	// DefaultMaxLength span 属性默认最大长度
	DefaultMaxLength = 200

	// MaxFilenameLength 上传文件名最大长度
	MaxFilenameLength = 100

	// MaxResumeLength 简历文本片段最大长度
	MaxResumeLength = 150
)

// piiKeys 属性名包含这些关键字时值需要掩码
var piiKeys = []string{"email", "phone", "name", "gender", "location", "address", "token", "password"}

// SafeAttributeValue 根据属性名决定掩码或截断
func SafeAttributeValue(name string, value string, maxLength int) string {
	lower := strings.ToLower(name)
	for _, key := range piiKeys {
		if strings.Contains(lower, key) {
			return MaskPII(value)
		}
	}
	return TruncateString(value, maxLength)
}

// MaskPII 对个人信息做掩码
//
//	jane.doe@example.com -> j*******@example.com
//	+919876543210        -> *********3210
//	Jane Doe             -> J******e
func MaskPII(value string) string {
	if value == "" {
		return ""
	}

	if at := strings.LastIndex(value, "@"); at > 0 {
		local := []rune(value[:at])
		return string(local[0]) + strings.Repeat("*", len(local)-1) + value[at:]
	}

	runes := []rune(value)
	n := len(runes)
	if isPhoneLike(value) && n > 4 {
		return strings.Repeat("*", n-4) + string(runes[n-4:])
	}

	switch {
	case n == 1:
		return "*"
	case n == 2:
		return string(runes[0]) + "*"
	default:
		return string(runes[0]) + strings.Repeat("*", n-2) + string(runes[n-1])
	}
}

func isPhoneLike(s string) bool {
	digits := 0
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == '+' || r == '-' || r == ' ' || r == '.':
		default:
			return false
		}
	}
	return digits >= 7
}

// TruncateString 超长时保留首尾，中间用 ... 连接
func TruncateString(s string, maxLength int) string {
	runes := []rune(s)
	if len(runes) <= maxLength {
		return s
	}
	if maxLength <= 3 {
		return string(runes[:maxLength])
	}

	half := (maxLength - 3) / 2
	if half < 1 {
		half = 1
	}
	return string(runes[:half]) + "..." + string(runes[len(runes)-half:])
}

// SafeFilename 截断上传文件名
func SafeFilename(name string) string {
	return TruncateString(name, MaxFilenameLength)
}

// SafeResumeContent 截断简历文本
func SafeResumeContent(content string) string {
	return TruncateString(content, MaxResumeLength)
}
