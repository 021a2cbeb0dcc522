package extract

import (
	"regexp"
	"strings"
)

var (
	genderLabelPattern = regexp.MustCompile(`\b(?:gender|sex)\s*[:\-]?\s*(male|female|m|f)\b`)
	malePattern        = regexp.MustCompile(`\bmale\b`)
	femalePattern      = regexp.MustCompile(`\bfemale\b`)
	hePattern          = regexp.MustCompile(`\b(?:he|him|his)\b`)
	shePattern         = regexp.MustCompile(`\b(?:she|her|hers)\b`)

	experiencePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(\d{1,2})\s*\+?\s*(?:years?|yrs?)\s+(?:of\s+)?(?:experience|exp)\b`),
		regexp.MustCompile(`experience\s*(?:of\s*)?[:\-]?\s*(\d{1,2})\s*\+?\s*(?:years?|yrs?)\b`),
		regexp.MustCompile(`(\d{1,2})\+\s*(?:years?|yrs?)\b`),
	}
)

var (
	skillKeywords    = newKeywordSet(skillVocabulary)
	languageKeywords = newKeywordSet(languageVocabulary)
)

// Gender 依次根据 "gender:" 标签、独立的 male/female、代词多数判断
// 无法判断时返回空串
func Gender(text string) string {
	lower := strings.ToLower(text)

	if v := firstGroup(genderLabelPattern, lower, ""); v != "" {
		if strings.HasPrefix(v, "f") {
			return "Female"
		}
		return "Male"
	}
	if malePattern.MatchString(lower) {
		return "Male"
	}
	if femalePattern.MatchString(lower) {
		return "Female"
	}

	he := len(hePattern.FindAllStringIndex(lower, -1))
	she := len(shePattern.FindAllStringIndex(lower, -1))
	switch {
	case he > she:
		return "Male"
	case she > he:
		return "Female"
	}
	return ""
}

// Skills 技能词表中出现的条目(小写，词表顺序)
func Skills(text string) []string {
	return skillKeywords.find(strings.ToLower(text))
}

// ProgrammingLanguages 编程语言词表中出现的条目(小写，词表顺序)
func ProgrammingLanguages(text string) []string {
	return languageKeywords.find(strings.ToLower(text))
}

// Experience 工作年限，例如 "3+ years"、"5 years of experience"
// 未提及时为 "0"
func Experience(text string) string {
	lower := strings.ToLower(text)
	for _, re := range experiencePatterns {
		if v := firstGroup(re, lower, ""); v != "" {
			return v
		}
	}
	return "0"
}
