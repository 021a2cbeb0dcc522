package extract

import (
	"strings"
	"unicode"
)

// 简历里常见的标签和标题词，模型经常把它们识别成人名或地名
var labelWords = []string{
	"name", "contact", "phone", "mobile", "mob", "tel", "telephone", "cell",
	"email", "e-mail", "mail", "address", "linkedin", "github", "portfolio", "website",
	"skills", "skill", "technical", "languages", "language", "tools", "technologies",
	"education", "qualification", "qualifications", "cgpa", "gpa", "percentage", "backlog", "backlogs",
	"experience", "projects", "project", "internship", "internships", "intern",
	"objective", "summary", "profile", "resume", "curriculum", "vitae", "cv",
	"gender", "sex", "male", "female", "dob", "date", "birth", "nationality",
	"certifications", "certification", "achievements", "hobbies", "interests",
	"declaration", "references", "personal", "details", "career", "work",
	"year", "passing", "university", "college", "institute", "school",
	"b.tech", "m.tech", "b.e", "m.e", "b.sc", "m.sc", "bca", "mca", "mba", "phd",
	"bachelor", "master", "degree", "engineering", "technology", "science",
}

// 同时也是常见人名的词条
var nameLikeTerms = map[string]struct{}{
	"ruby": {}, "julia": {}, "ada": {}, "pascal": {}, "swift": {}, "dart": {},
}

// entityStopWords 标签词 + 词表中长度不小于3的单词
var entityStopWords = buildEntityStopWords()

func buildEntityStopWords() map[string]struct{} {
	stop := make(map[string]struct{}, len(labelWords)+128)
	for _, w := range labelWords {
		stop[w] = struct{}{}
	}
	for _, vocab := range [][]string{skillVocabulary, languageVocabulary, domainVocabulary, branchVocabulary} {
		for _, term := range vocab {
			for _, w := range strings.Fields(term) {
				// 单字母、双字母词条(r, c, go, it)可能是姓名缩写，不作为停用词
				if _, name := nameLikeTerms[w]; len(w) >= 3 && !name {
					stop[w] = struct{}{}
				}
			}
		}
	}
	return stop
}

// cleanEntity 过滤模型误识别的实体
//
// 丢弃紧跟 ':' 的标签；去掉首尾的标签词/词表词后，
// 中间仍含停用词、数字或非字母开头的单词时整体丢弃。
func cleanEntity(entity, line string) string {
	if entity == "" || isLabel(entity, line) {
		return ""
	}

	words := strings.Fields(entity)
	for len(words) > 0 && isStopWord(words[0]) {
		words = words[1:]
	}
	for len(words) > 0 && isStopWord(words[len(words)-1]) {
		words = words[:len(words)-1]
	}
	if len(words) == 0 {
		return ""
	}
	for _, w := range words {
		if isStopWord(w) || !plausibleNameWord(w) {
			return ""
		}
	}
	return strings.Join(words, " ")
}

// isLabel 实体在行内出现且后面紧跟冒号
func isLabel(entity, line string) bool {
	idx := strings.Index(line, entity)
	if idx < 0 {
		return false
	}
	rest := strings.TrimLeft(line[idx+len(entity):], " \t")
	return strings.HasPrefix(rest, ":")
}

func isStopWord(w string) bool {
	_, ok := entityStopWords[strings.ToLower(strings.Trim(w, ".,;:|-"))]
	return ok
}

// plausibleNameWord 以字母开头，只含字母、点、连字符和撇号
func plausibleNameWord(w string) bool {
	for i, r := range w {
		switch {
		case unicode.IsLetter(r):
		case i > 0 && (r == '.' || r == '-' || r == '\''):
		default:
			return false
		}
	}
	return true
}
