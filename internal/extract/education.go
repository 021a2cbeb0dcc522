package extract

import (
	"regexp"
	"strconv"
	"strings"

	"resume-parser-go/internal/types"
)

var (
	yearLabeledPattern  = regexp.MustCompile(`(?:passing|pass|passed|graduate|graduation|batch|year).{1,20}(20\d\d)`)
	yearRangePattern    = regexp.MustCompile(`20\d\d(?:\s*-\s*20\d\d)?`)
	cgpaPattern         = regexp.MustCompile(`(?:cgpa|gpa).{1,5}?(\d+\.\d+|\d+)`)
	percentLabelPattern = regexp.MustCompile(`(?:percentage|percent)\b.{1,5}?(\d+\.\d+|\d+)`)
	barePercentPattern  = regexp.MustCompile(`(\d{2}(?:\.\d+)?)%`)
	eduBacklogPattern   = regexp.MustCompile(`(?:backlog|back).{1,10}?(\d+)`)
	eduLivePattern      = regexp.MustCompile(`(?:live\s+backlog|active\s+backlog|current\s+backlog).{1,10}?(\d+)`)
	degreePrefix        = `\b(?:b\.?tech|bachelors?|engineering|b\.?e\b).{1,20}?`
)

var (
	branchKeywords = newKeywordSet(branchVocabulary)
	// 学位关键字之后出现的专业优先
	branchAfterDegree = compileBranchAfterDegree(branchVocabulary)
)

func compileBranchAfterDegree(terms []string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(terms))
	for i, term := range terms {
		out[i] = regexp.MustCompile(degreePrefix + leftBoundary + regexp.QuoteMeta(term) + rightBoundary)
	}
	return out
}

// Education 提取毕业年份、专业、绩点和教育经历中的挂科数
func Education(text string) types.Education {
	lower := strings.ToLower(text)
	return types.Education{
		YearOfPassing:       yearOfPassing(lower),
		BranchOfEngineering: branch(lower),
		CGPA:                cgpa(lower),
		Backlogs:            firstGroup(eduBacklogPattern, lower, "0"),
		LiveBacklogs:        firstGroup(eduLivePattern, lower, "0"),
	}
}

// yearOfPassing 优先取带标签的年份，否则取第一个年份(区间取结束年)
func yearOfPassing(lower string) string {
	if y := firstGroup(yearLabeledPattern, lower, ""); y != "" {
		return y
	}
	m := yearRangePattern.FindString(lower)
	if m == "" {
		return ""
	}
	parts := strings.Split(m, "-")
	return strings.TrimSpace(parts[len(parts)-1])
}

func branch(lower string) string {
	for i, re := range branchAfterDegree {
		if re.MatchString(lower) {
			return displayName(branchVocabulary[i])
		}
	}
	if found := branchKeywords.find(lower); len(found) > 0 {
		return displayName(found[0])
	}
	return ""
}

// cgpa 依次尝试 cgpa/gpa、百分比标签、裸百分数(换算为十分制)
func cgpa(lower string) string {
	if v := firstGroup(cgpaPattern, lower, ""); v != "" {
		return v
	}
	if v := firstGroup(percentLabelPattern, lower, ""); v != "" {
		return v + "%"
	}
	if v := firstGroup(barePercentPattern, lower, ""); v != "" {
		p, err := strconv.ParseFloat(v, 64)
		if err == nil && p > 0 {
			return strconv.FormatFloat(min(10.0, p/10.0), 'f', 2, 64)
		}
	}
	return ""
}

// Backlogs 文档级挂科统计："N backlog(s)"、"N live backlog(s)"
func Backlogs(text string) types.Backlogs {
	lower := strings.ToLower(text)
	return types.Backlogs{
		Total: atoiOrZero(firstGroup(totalBacklogPattern, lower, "")),
		Live:  atoiOrZero(firstGroup(liveBacklogPattern, lower, "")),
	}
}

var (
	totalBacklogPattern = regexp.MustCompile(`(\d+)\s*(?:backlog|arrear)`)
	liveBacklogPattern  = regexp.MustCompile(`(\d+)\s*(?:live|current|active|pending)\s*(?:backlog|arrear)`)
)

func firstGroup(re *regexp.Regexp, s, def string) string {
	m := re.FindStringSubmatch(s)
	if len(m) < 2 || m[1] == "" {
		return def
	}
	return m[1]
}

func atoiOrZero(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
