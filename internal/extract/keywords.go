package extract

import (
	"regexp"
	"strings"
	"unicode"
)

// keywordSet 一组预编译的词表匹配器
//
// RE2 不支持环视，这里用显式的边界字符组代替 \b。
// c++、c#、node.js 这类词条首尾不是单词字符，\b 对它们无效；
// 左边界额外排除 '.' 和 '-'，使 "ph.d" 不命中 "d"，"objective-c" 不命中 "c"。
type keywordSet struct {
	terms    []string
	matchers []*regexp.Regexp
}

const (
	leftBoundary  = `(?:^|[^a-z0-9_+#.\-])`
	rightBoundary = `(?:[^a-z0-9_+#]|$)`
)

func newKeywordSet(terms []string) *keywordSet {
	ks := &keywordSet{
		terms:    terms,
		matchers: make([]*regexp.Regexp, len(terms)),
	}
	for i, term := range terms {
		ks.matchers[i] = keywordPattern(term)
	}
	return ks
}

func keywordPattern(term string) *regexp.Regexp {
	return regexp.MustCompile(leftBoundary + regexp.QuoteMeta(term) + rightBoundary)
}

// find 返回在小写文本中出现的词条，保持词表顺序
func (ks *keywordSet) find(lower string) []string {
	found := []string{}
	for i, m := range ks.matchers {
		if m.MatchString(lower) {
			found = append(found, ks.terms[i])
		}
	}
	return found
}

// displayName 词条的展示名
func displayName(term string) string {
	if name, ok := displayOverrides[term]; ok {
		return name
	}
	words := strings.Fields(term)
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
