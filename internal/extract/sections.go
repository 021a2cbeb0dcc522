package extract

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// 章节窗口内容少于该字符数时改用宽松的全文匹配
const minSectionLength = 50

var (
	projectSectionPattern = regexp.MustCompile(`(?s)(?:projects|project work|academic projects).{0,1000}`)
	projectFallbacks      = []*regexp.Regexp{
		regexp.MustCompile(`project(?:\s+title)?:\s*.{1,100}`),
		regexp.MustCompile(`developed\s+a\s+.{1,100}`),
		regexp.MustCompile(`implemented\s+a\s+.{1,100}`),
		regexp.MustCompile(`created\s+a\s+.{1,100}`),
	}

	internshipSectionPattern = regexp.MustCompile(`(?s)(?:internships|internship|work experience|professional experience).{0,500}`)
	internshipFallback       = regexp.MustCompile(`(?:intern(?:ship)?(?:\sat)?|worked at).{1,50}(?:company|organization|firm|corporation|inc|ltd)?`)
	internshipMention        = regexp.MustCompile(`\bintern(?:ship)?s?\b`)

	// 项目章节：从标题到下一个常见章节标题
	projectBlockPattern = regexp.MustCompile(`(?s)(?:projects?|work experience).+?(?:education|skills|achievements|certifications|languages)`)
)

var domainKeywords = newKeywordSet(domainVocabulary)

// maxInternshipCount 实习次数上限，超过视为误匹配
const maxInternshipCount = 10

// Projects 项目经历文本(小写)
// 先取各项目标题后 1000 字符的窗口，过短时改用 "developed a ..." 等句式
func Projects(text string) string {
	return windowed(strings.ToLower(text), projectSectionPattern, projectFallbacks)
}

// Internships 实习/工作经历文本(小写)，窗口为 500 字符
func Internships(text string) string {
	return windowed(strings.ToLower(text), internshipSectionPattern, []*regexp.Regexp{internshipFallback})
}

func windowed(lower string, section *regexp.Regexp, fallbacks []*regexp.Regexp) string {
	joined := strings.Join(section.FindAllString(lower, -1), " ")
	if utf8.RuneCountInString(joined) < minSectionLength {
		var matches []string
		for _, re := range fallbacks {
			matches = append(matches, re.FindAllString(lower, -1)...)
		}
		joined = strings.Join(matches, " ")
	}
	return strings.TrimSpace(joined)
}

// InternshipCount 统计 intern/internship 出现次数，最多计 10 次
func InternshipCount(text string) int {
	n := len(internshipMention.FindAllStringIndex(strings.ToLower(text), -1))
	return min(n, maxInternshipCount)
}

// ProjectDomains 项目涉及的领域，去重后按词表顺序返回展示名
// 找不到项目章节时在全文中匹配
func ProjectDomains(text string) []string {
	lower := strings.ToLower(text)
	scope := lower
	if block := projectBlockPattern.FindString(lower); block != "" {
		scope = block
	}

	seen := make(map[string]struct{})
	domains := []string{}
	for _, term := range domainKeywords.find(scope) {
		name := displayName(term)
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		domains = append(domains, name)
	}
	return domains
}
