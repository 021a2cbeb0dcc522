package extract

// 技能词表，结果按词表顺序输出
var skillVocabulary = []string{
	"python", "java", "javascript", "c++", "c#", "ruby", "php", "swift",
	"typescript", "kotlin", "go", "rust", "scala", "perl", "r", "matlab",
	"react", "angular", "vue", "node.js", "express", "django", "flask",
	"spring", "hibernate", "laravel", "asp.net", "rails",
	"mysql", "postgresql", "mongodb", "oracle", "sql server", "sqlite",
	"redis", "cassandra", "elasticsearch", "aws", "azure", "gcp",
	"docker", "kubernetes", "jenkins", "gitlab", "github", "terraform",
	"ansible", "hadoop", "spark", "kafka", "tensorflow", "pytorch",
	"scikit-learn", "pandas", "numpy", "tableau", "power bi", "excel",
	"html", "css", "sass", "less", "bootstrap", "jquery", "rest api",
	"graphql", "git", "svn", "linux", "unix", "bash", "powershell",
	"agile", "scrum", "kanban", "jira", "confluence",
}

// 编程语言词表
var languageVocabulary = []string{
	"python", "java", "javascript", "c++", "c#", "ruby", "php", "swift",
	"typescript", "kotlin", "go", "rust", "scala", "perl", "r", "matlab",
	"html", "css", "sql", "bash", "powershell", "c", "objective-c", "assembly",
	"cobol", "fortran", "haskell", "dart", "lua", "groovy", "vba",
	"abap", "pascal", "pl/sql", "ada", "d", "f#", "julia", "clojure",
}

// 项目领域词表
var domainVocabulary = []string{
	"web", "mobile", "desktop", "android", "ios", "machine learning", "ml",
	"artificial intelligence", "ai", "data science", "blockchain", "cloud",
	"aws", "azure", "devops", "security", "game", "iot", "embedded",
}

// 工程专业词表，顺序即优先级
var branchVocabulary = []string{
	"computer science", "cs", "cse", "information technology", "it",
	"electronics", "electrical", "ece", "eee", "mechanical", "mech",
	"civil", "chemical", "biotech", "biotechnology", "ai", "artificial intelligence",
	"machine learning", "data science", "aerospace", "mining",
}

// 缩写类条目的展示名，其余条目按单词首字母大写展示
var displayOverrides = map[string]string{
	"cs":  "CS",
	"cse": "CSE",
	"it":  "IT",
	"ece": "ECE",
	"eee": "EEE",
	"ai":  "AI",
	"ml":  "ML",
	"aws": "AWS",
	"ios": "iOS",
	"iot": "IoT",
}
