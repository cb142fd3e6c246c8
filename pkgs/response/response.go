package response

import (
	"net/http"

	"paper-cloud/pkgs/errcode"

	"github.com/gin-gonic/gin"
)

// Response 统一响应结构
type Response struct {
	Code int         `json:"code"`
	Msg  string      `json:"msg"`
	Data interface{} `json:"data,omitempty"`
}

// PageData 分页数据
type PageData struct {
	List  interface{} `json:"list"`
	Total int64       `json:"total"`
}

// Success 成功响应
func Success(ctx *gin.Context, data interface{}) {
	ctx.JSON(http.StatusOK, Response{Code: errcode.Success, Msg: "success", Data: data})
}

// SuccessWithMessage 带自定义消息的成功响应
func SuccessWithMessage(ctx *gin.Context, msg string, data interface{}) {
	ctx.JSON(http.StatusOK, Response{Code: errcode.Success, Msg: msg, Data: data})
}

// PageSuccess 分页成功响应
func PageSuccess(ctx *gin.Context, list interface{}, total int64) {
	ctx.JSON(http.StatusOK, Response{
		Code: errcode.Success,
		Msg:  "success",
		Data: PageData{List: list, Total: total},
	})
}

// ParamError 参数错误
func ParamError(ctx *gin.Context, code int, msg string) {
	ctx.JSON(http.StatusBadRequest, Response{Code: code, Msg: msg})
}

// UnauthorizedError 未授权
func UnauthorizedError(ctx *gin.Context, code int, msg string) {
	ctx.JSON(http.StatusUnauthorized, Response{Code: code, Msg: msg})
}

// ForbiddenError 无权限
func ForbiddenError(ctx *gin.Context, code int, msg string) {
	ctx.JSON(http.StatusForbidden, Response{Code: code, Msg: msg})
}

// NotFoundError 资源不存在
func NotFoundError(ctx *gin.Context, code int, msg string) {
	ctx.JSON(http.StatusNotFound, Response{Code: code, Msg: msg})
}

// InternalError 服务器内部错误
func InternalError(ctx *gin.Context, code int, msg string) {
	ctx.JSON(http.StatusInternalServerError, Response{Code: code, Msg: msg})
}
