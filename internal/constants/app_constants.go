package constants

const (
	// ServiceName 服务名称，用于日志与追踪
	ServiceName = "resume-parser-go"

	// DefaultFormField 上传文件的 multipart 字段名
	DefaultFormField = "resume"

	// MaxRequestBodySize 默认请求体上限 16MB
	MaxRequestBodySize = 16 * 1024 * 1024

	// HeaderRequestID 请求ID响应头
	HeaderRequestID = "X-Request-ID"
)

// 接口返回给客户端的固定文案
const (
	MsgParseSuccess    = "Resume parsed successfully"
	MsgNoFilePart      = "No file part"
	MsgNoSelectedFile  = "No selected file"
	MsgFileNotAllowed  = "File type not allowed. Please upload a PDF, DOC, or DOCX file."
	MsgExtractFailed   = "Could not extract text from the PDF. The file might be corrupted or password protected."
	MsgUnsupportedFile = "This server can only parse PDF files. Please upload a PDF."
	MsgSaveFailed      = "Failed to save uploaded file"
	MsgInternalFailure = "Internal server error"
	MsgTooManyRequests = "Too many requests, please retry later"
)
