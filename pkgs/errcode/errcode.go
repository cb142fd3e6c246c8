package errcode

// 业务错误码定义
// 1xxxx 通用错误，2xxxx 用户相关，3xxxx 论文相关
const (
	Success             = 0
	InternalServerError = 10001
	ParamBindError      = 10002
	ParamValidateError  = 10003
	UnauthorizedError   = 10004
	ForbiddenError      = 10005

	UserAlreadyExists = 20001
	UserNotFound      = 20002
	PasswordError     = 20003

	PaperUploadFailed  = 30001
	PaperNotFound      = 30002
	PaperParseFailed   = 30003
	PaperListFailed    = 30004
	PaperDeleteFailed  = 30005
	PaperOCRFailed     = 30006
	RetrieveFailed     = 30007
	UnsupportedFile    = 30008
)
