package utils

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
)

// GetUserIDFromContext 从gin上下文中取出JWT中间件写入的用户ID
func GetUserIDFromContext(ctx *gin.Context) (uint, error) {
	value, exists := ctx.Get("user_id")
	if !exists {
		return 0, errors.New("上下文中没有用户ID")
	}

	userID, ok := value.(uint)
	if !ok {
		return 0, errors.New("用户ID类型错误")
	}
	return userID, nil
}

// ParsePaginationParams 解析分页参数，page默认1，page_size默认20（最大100）
func ParsePaginationParams(ctx *gin.Context) (int, int, error) {
	page := StringToInt(ctx.DefaultQuery("page", "1"))
	pageSize := StringToInt(ctx.DefaultQuery("page_size", "20"))

	if page <= 0 {
		return 0, 0, fmt.Errorf("page参数错误: %d", page)
	}
	if pageSize <= 0 || pageSize > 100 {
		return 0, 0, fmt.Errorf("page_size参数错误: %d", pageSize)
	}
	return page, pageSize, nil
}

// ValidateSortParameter 校验"field:order,field:order"形式的排序参数
func ValidateSortParameter(sort string, allowedFields []string) error {
	allowed := make(map[string]bool, len(allowedFields))
	for _, f := range allowedFields {
		allowed[f] = true
	}

	for _, clause := range strings.Split(sort, ",") {
		parts := strings.Split(clause, ":")
		if len(parts) != 2 {
			return fmt.Errorf("排序参数格式错误: %s", clause)
		}
		field, order := parts[0], parts[1]
		if !allowed[field] {
			return fmt.Errorf("不支持的排序字段: %s", field)
		}
		if order != "asc" && order != "desc" {
			return fmt.Errorf("不支持的排序方式: %s", order)
		}
	}
	return nil
}
