// Package extract 从简历纯文本中提取各个字段
//
// 每个函数只依赖输入文本，互不影响；未命中时返回字段默认值，从不返回错误。
package extract

import (
	"regexp"
	"strings"

	"resume-parser-go/internal/ner"
)

var (
	emailPattern = regexp.MustCompile(`[\w.-]+@[\w.-]+\.\w+`)
	phonePattern = regexp.MustCompile(`(?:\+?(?:91)?[-\s]?)?(?:\d{10}|\d{3}[-.\s]?\d{3}[-.\s]?\d{4}|\d{5}[-.\s]?\d{5})`)
	nonPhoneChar = regexp.MustCompile(`[^\d+]`)
)

// Name 逐行取文本前缀中第一个可信的 PERSON 实体
func Name(rec ner.Recognizer, text string, prefix int) string {
	return ner.FirstEntity(rec, text, ner.LabelPerson, prefix, cleanEntity)
}

// Location 逐行取文本前缀中第一个可信的 GPE 实体，未找到时为 "Unknown"
func Location(rec ner.Recognizer, text string, prefix int) string {
	if loc := ner.FirstEntity(rec, text, ner.LabelGPE, prefix, cleanEntity); loc != "" {
		return loc
	}
	return "Unknown"
}

// Email 返回第一个邮箱地址
func Email(text string) string {
	return emailPattern.FindString(text)
}

// Phone 返回第一个电话号码，格式为 +<国家码><号码>
func Phone(text string) string {
	m := phonePattern.FindString(text)
	if m == "" {
		return ""
	}
	return NormalizePhone(m)
}

// NormalizePhone 去掉除开头 '+' 以外的非数字字符，并补齐国家码
//
//	"98765 43210"    -> "+919876543210"
//	"91-9876543210"  -> "+919876543210"
//	"+1 415 555 0100" -> "+14155550100"
func NormalizePhone(raw string) string {
	clean := nonPhoneChar.ReplaceAllString(raw, "")
	if clean == "" {
		return ""
	}
	if strings.HasPrefix(clean, "+") {
		return "+" + strings.ReplaceAll(clean[1:], "+", "")
	}
	clean = strings.ReplaceAll(clean, "+", "")
	if len(clean) == 12 && strings.HasPrefix(clean, "91") {
		return "+" + clean
	}
	return "+91" + clean
}
