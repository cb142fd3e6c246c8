package middleware

import (
	"strings"

	"paper-cloud/internal/utils"
	"paper-cloud/pkgs/errcode"
	"paper-cloud/pkgs/response"

	"github.com/gin-gonic/gin"
)

// JWTAuth JWT鉴权中间件，校验通过后把用户ID写入上下文
func JWTAuth() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		authHeader := ctx.GetHeader("Authorization")
		if authHeader == "" {
			response.UnauthorizedError(ctx, errcode.UnauthorizedError, "缺少认证信息")
			ctx.Abort()
			return
		}

		// 格式: Bearer <token>
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.UnauthorizedError(ctx, errcode.UnauthorizedError, "认证信息格式错误")
			ctx.Abort()
			return
		}

		userID, err := utils.ParseToken(parts[1])
		if err != nil {
			response.UnauthorizedError(ctx, errcode.UnauthorizedError, "无效的token")
			ctx.Abort()
			return
		}

		ctx.Set("user_id", userID)
		ctx.Next()
	}
}
