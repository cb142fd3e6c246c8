package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func testContext(t *testing.T, query string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctx, _ := gin.CreateTestContext(httptest.NewRecorder())
	ctx.Request = httptest.NewRequest("GET", "/?"+query, nil)
	return ctx
}

func TestParsePaginationParams(t *testing.T) {
	ctx := testContext(t, "page=2&page_size=50")
	page, pageSize, err := ParsePaginationParams(ctx)
	if err != nil {
		t.Fatalf("解析分页参数失败: %v", err)
	}
	if page != 2 || pageSize != 50 {
		t.Fatalf("分页参数错误: page=%d pageSize=%d", page, pageSize)
	}
}

func TestParsePaginationParamsDefaults(t *testing.T) {
	ctx := testContext(t, "")
	page, pageSize, err := ParsePaginationParams(ctx)
	if err != nil {
		t.Fatalf("默认分页参数失败: %v", err)
	}
	if page != 1 || pageSize != 20 {
		t.Fatalf("默认分页参数错误: page=%d pageSize=%d", page, pageSize)
	}
}

func TestParsePaginationParamsInvalid(t *testing.T) {
	cases := []string{"page=0", "page=-1", "page_size=0", "page_size=101", "page=abc"}
	for _, query := range cases {
		ctx := testContext(t, query)
		if _, _, err := ParsePaginationParams(ctx); err == nil {
			t.Errorf("参数 %q 应报错", query)
		}
	}
}

func TestValidateSortParameter(t *testing.T) {
	allowed := []string{"created_at", "title"}

	if err := ValidateSortParameter("created_at:desc", allowed); err != nil {
		t.Errorf("合法排序参数不应报错: %v", err)
	}
	if err := ValidateSortParameter("created_at:desc,title:asc", allowed); err != nil {
		t.Errorf("多字段排序不应报错: %v", err)
	}
	if err := ValidateSortParameter("password:asc", allowed); err == nil {
		t.Error("不在白名单的字段应报错")
	}
	if err := ValidateSortParameter("created_at:up", allowed); err == nil {
		t.Error("非法排序方式应报错")
	}
	if err := ValidateSortParameter("created_at", allowed); err == nil {
		t.Error("缺少排序方式应报错")
	}
}

func TestGetUserIDFromContext(t *testing.T) {
	ctx := testContext(t, "")

	if _, err := GetUserIDFromContext(ctx); err == nil {
		t.Error("未设置用户ID时应报错")
	}

	ctx.Set("user_id", uint(7))
	userID, err := GetUserIDFromContext(ctx)
	if err != nil {
		t.Fatalf("读取用户ID失败: %v", err)
	}
	if userID != 7 {
		t.Fatalf("用户ID错误: %d", userID)
	}
}
