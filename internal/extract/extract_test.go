package extract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-parser-go/internal/ner"
	"resume-parser-go/internal/types"
)

type stubRecognizer []ner.Entity

func (s stubRecognizer) Entities(string) []ner.Entity { return s }

func TestEmail(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"简单邮箱", "Contact: jane@example.com, Phone: 9876543210", "jane@example.com"},
		{"取第一个", "a.b-c@mail.co.in and x@y.org", "a.b-c@mail.co.in"},
		{"没有邮箱", "no contact details here", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Email(tt.text))
		})
	}
}

func TestPhone(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"十位号码补国家码", "Phone: 9876543210", "+919876543210"},
		{"带+91和连字符", "Mobile +91-9876543210", "+919876543210"},
		{"分段格式", "call 987-654-3210 now", "+919876543210"},
		{"十二位以91开头", "919876543210", "+919876543210"},
		{"五五分段带国家码", "Phone: +91 98765 43210", "+919876543210"},
		{"五五分段连字符", "Mobile: 98765-43210", "+919876543210"},
		{"91开头的十位号码", "9123456789", "+919123456789"},
		{"没有号码", "year 2023", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Phone(tt.text))
		})
	}
}

func TestNormalizePhone(t *testing.T) {
	assert.Equal(t, "+14155550100", NormalizePhone("+1 415 555 0100"))
	assert.Equal(t, "+919876543210", NormalizePhone(" 98765-43210"))
	assert.Equal(t, "", NormalizePhone(" - "))
}

func TestNameAndLocation(t *testing.T) {
	rec := stubRecognizer{
		{Text: "Pune", Label: ner.LabelGPE},
		{Text: " Jane Doe ", Label: ner.LabelPerson},
	}
	assert.Equal(t, "Jane Doe", Name(rec, "Jane Doe, Pune", 0))
	assert.Equal(t, "Pune", Location(rec, "Jane Doe, Pune", 0))

	// 没有实体时返回默认值，不报错
	assert.Equal(t, "", Name(stubRecognizer{}, "9876543210", 0))
	assert.Equal(t, "Unknown", Location(stubRecognizer{}, "9876543210", 0))
}

// lineStub 按行返回实体
type lineStub map[string][]ner.Entity

func (l lineStub) Entities(text string) []ner.Entity { return l[text] }

func TestNameSkipsLabelsAndVocabulary(t *testing.T) {
	rec := lineStub{
		"Contact: jane@example.com, Phone: 9876543210": {
			{Text: "Contact", Label: ner.LabelGPE},
			{Text: "Phone", Label: ner.LabelPerson},
		},
		"Skills: Python, Docker": {
			{Text: "Python", Label: ner.LabelPerson},
			{Text: "Docker", Label: ner.LabelGPE},
		},
		"Jane Doe Contact": {{Text: "Jane Doe Contact", Label: ner.LabelPerson}},
		"Lives in Pune":    {{Text: "Pune", Label: ner.LabelGPE}},
	}

	text := "Contact: jane@example.com, Phone: 9876543210\nSkills: Python, Docker"
	assert.Equal(t, "", Name(rec, text, 0))
	assert.Equal(t, "Unknown", Location(rec, text, 0))

	text = "Skills: Python, Docker\nJane Doe Contact\nLives in Pune"
	assert.Equal(t, "Jane Doe", Name(rec, text, 0), "去掉尾部的标签词")
	assert.Equal(t, "Pune", Location(rec, text, 0))
}

func TestCleanEntity(t *testing.T) {
	tests := []struct {
		name   string
		entity string
		line   string
		want   string
	}{
		{"普通姓名", "Jane Doe", "Jane Doe", "Jane Doe"},
		{"冒号前的标签", "Phone", "Phone: 9876543210", ""},
		{"冒号前有空格", "Contact", "Contact : x", ""},
		{"词表中的技能", "Python", "Python, Docker", ""},
		{"首部标签词", "Name Jane Doe", "Name Jane Doe", "Jane Doe"},
		{"中间夹着技能词", "Jane Python Doe", "Jane Python Doe", ""},
		{"含数字", "Jane 2024", "Jane 2024", ""},
		{"含邮箱", "jane@example.com", "jane@example.com", ""},
		{"像人名的语言名保留", "Ruby Sharma", "Ruby Sharma", "Ruby Sharma"},
		{"缩写与连字符", "A. Kumar-Rao", "A. Kumar-Rao", "A. Kumar-Rao"},
		{"全是标签词", "Contact Details", "Contact Details", ""},
		{"学位缩写", "B.Tech", "Degree B.Tech 2024", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cleanEntity(tt.entity, tt.line))
		})
	}
}

func TestGender(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"标签", "Gender: Female", "Female"},
		{"标签缩写", "Sex: M", "Male"},
		{"独立单词", "I am a male candidate", "Male"},
		{"female不误判为male", "Female candidate", "Female"},
		{"代词多数", "she led her team and her project shipped", "Female"},
		{"代词多数男性", "he built his first compiler", "Male"},
		{"单独字母不再判断", "Room M 12, Block F", ""},
		{"无信息", "Python developer", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Gender(tt.text))
		})
	}
}

func TestSkills(t *testing.T) {
	got := Skills("Skills: Python, Go, Docker, C++ and Node.js; git")
	assert.Equal(t, []string{"python", "c++", "go", "node.js", "docker", "git"}, got)

	none := Skills("nothing relevant")
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestSkillsWordBoundary(t *testing.T) {
	// "going" 不应命中 "go"，"javascript" 不应命中 "java"
	got := Skills("going forward with javascript")
	assert.Equal(t, []string{"javascript"}, got)
}

func TestProgrammingLanguages(t *testing.T) {
	got := ProgrammingLanguages("Languages: C, C++, Java, JavaScript, Objective-C, PL/SQL")
	assert.Equal(t, []string{"java", "javascript", "c++", "sql", "c", "objective-c", "pl/sql"}, got)

	assert.Empty(t, ProgrammingLanguages("Ph.D in physics"), "ph.d 不应命中 d")
}

func TestEducation(t *testing.T) {
	text := "B.Tech in Computer Science, XYZ Institute\nYear of passing: 2023\nCGPA: 8.75/10\nBacklogs: 2\nLive backlogs: 1\n"
	got := Education(text)
	assert.Equal(t, types.Education{
		YearOfPassing:       "2023",
		BranchOfEngineering: "Computer Science",
		CGPA:                "8.75",
		Backlogs:            "2",
		LiveBacklogs:        "1",
	}, got)
}

func TestEducationDefaults(t *testing.T) {
	got := Education("nothing useful")
	assert.Equal(t, types.Education{Backlogs: "0", LiveBacklogs: "0"}, got)
}

func TestYearOfPassingFallback(t *testing.T) {
	assert.Equal(t, "2022", Education("Studied at ABC (2018 - 2022)").YearOfPassing)
}

func TestBranch(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"B.E. (CSE) from VTU", "CSE"},
		{"B.Tech in Electronics. Worked on IT projects", "Electronics"},
		{"Department of Mechanical", "Mechanical"},
		{"working with the team", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Education(tt.text).BranchOfEngineering, "输入: %q", tt.text)
	}
}

func TestCGPAFallbacks(t *testing.T) {
	assert.Equal(t, "78.5%", Education("Percentage: 78.5").CGPA)
	assert.Equal(t, "8.50", Education("Scored 85% in class XII").CGPA)
	assert.Equal(t, "", Education("no grades").CGPA)
}

func TestBacklogs(t *testing.T) {
	assert.Equal(t, types.Backlogs{Total: 2, Live: 1}, Backlogs("2 backlogs, 1 live backlog"))
	assert.Equal(t, types.Backlogs{Total: 0, Live: 1}, Backlogs("1 live arrear"))
	assert.Equal(t, types.Backlogs{}, Backlogs("all clear"))
}

func TestProjects(t *testing.T) {
	text := "PROJECTS\nResume Parser: built a service that extracts fields from PDF resumes using Go and regex.\nEDUCATION\nB.Tech"
	got := Projects(text)
	assert.True(t, strings.HasPrefix(got, "projects"), got)
	assert.Contains(t, got, "resume parser")

	assert.Equal(t, "developed a chatbot for customer support", Projects("Developed a chatbot for customer support"))
	assert.Equal(t, "", Projects("Projects: none"))
}

func TestProjectsWindowIsBounded(t *testing.T) {
	text := "Projects " + strings.Repeat("x", 3000)
	assert.Len(t, Projects(text), len("projects")+1000)
}

func TestInternships(t *testing.T) {
	text := "Internship at Acme Corp as backend intern for 6 months working on APIs and data pipelines"
	assert.Equal(t, strings.ToLower(text), Internships(text))

	assert.Equal(t, "intern at acme", Internships("Intern at Acme"))
	assert.Equal(t, "", Internships("no work history"))
}

func TestInternshipCount(t *testing.T) {
	assert.Equal(t, 3, InternshipCount("Internship at A. Internship at B. Intern at C"))
	assert.Equal(t, 0, InternshipCount("internal tools"))
	assert.Equal(t, 10, InternshipCount(strings.Repeat("intern ", 15)))
}

func TestProjectDomains(t *testing.T) {
	text := "Projects\nBuilt a web app and an Android app with machine learning.\nSkills\nAWS"
	assert.Equal(t, []string{"Web", "Android", "Machine Learning"}, ProjectDomains(text))

	// 没有项目章节时在全文匹配
	assert.Equal(t, []string{"Cloud", "Security", "IoT"}, ProjectDomains("Worked on IoT and cloud security"))

	// "email" 中的 "ai" 不应命中
	got := ProjectDomains("email me")
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestExperience(t *testing.T) {
	assert.Equal(t, "3", Experience("3+ years of experience in backend"))
	assert.Equal(t, "5", Experience("Experience: 5 years"))
	assert.Equal(t, "10", Experience("10+ yrs"))
	assert.Equal(t, "0", Experience("fresher"))
}
