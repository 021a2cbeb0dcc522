package constants

// Redis Key 命名规范: app:{module}:{entity}:{unique_id}
const (
	// AppPrefix 所有Redis Key的统一应用前缀
	AppPrefix = "app"

	// ResumeModulePrefix 简历模块
	ResumeModulePrefix = "resume"

	// EntityParsed 解析结果实体
	EntityParsed = "parsed"

	// KeyParsedResume 解析结果缓存 (STRING, JSON)
	// 格式: app:resume:parsed:{fileMD5}
	KeyParsedResume = AppPrefix + ":" + ResumeModulePrefix + ":" + EntityParsed + ":%s"
)
