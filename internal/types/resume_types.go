package types

// Education 教育信息，所有字段均为字符串，未提取到时为默认值
type Education struct {
	YearOfPassing       string `json:"year_of_passing"`
	BranchOfEngineering string `json:"branch_of_engineering"`
	CGPA                string `json:"cgpa"`
	Backlogs            string `json:"backlogs"`      // 默认 "0"
	LiveBacklogs        string `json:"live_backlogs"` // 默认 "0"
}

// Backlogs 文档级挂科统计
type Backlogs struct {
	Total int `json:"total"`
	Live  int `json:"live"`
}

// ParsedResume 一次请求的解析结果，不落库
type ParsedResume struct {
	Name                 string    `json:"name"`
	Email                string    `json:"email"`
	Phone                string    `json:"phone"`
	Gender               string    `json:"gender"`
	Skills               []string  `json:"skills"`
	ProgrammingLanguages []string  `json:"programming_languages"`
	ProjectDomains       []string  `json:"project_domains"`
	Education            Education `json:"education"`
	Internships          string    `json:"internships"`
	InternshipCount      int       `json:"internship_count"`
	Projects             string    `json:"projects"`
	Backlogs             Backlogs  `json:"backlogs"`
	Experience           string    `json:"experience"` // 工作年限，默认 "0"
	Location             string    `json:"location"`   // 默认 "Unknown"
}

// NewParsedResume 返回所有字段均为默认值的解析结果
// 切片字段为非 nil 空切片，序列化后为 [] 而不是 null
func NewParsedResume() *ParsedResume {
	return &ParsedResume{
		Skills:               []string{},
		ProgrammingLanguages: []string{},
		ProjectDomains:       []string{},
		Education: Education{
			Backlogs:     "0",
			LiveBacklogs: "0",
		},
		Experience: "0",
		Location:   "Unknown",
	}
}

// ParseResponse 上传接口的统一响应
type ParseResponse struct {
	Success bool          `json:"success"`
	Message string        `json:"message,omitempty"`
	Error   string        `json:"error,omitempty"`
	Data    *ParsedResume `json:"data,omitempty"`
}

// HealthResponse 健康检查响应
type HealthResponse struct {
	Status string `json:"status"`
}
