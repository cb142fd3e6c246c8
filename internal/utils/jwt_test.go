package utils

import (
	"testing"

	"paper-cloud/config"
)

func TestTokenRoundTrip(t *testing.T) {
	config.AppConfigInstance.JWT.Secret = "test-secret"
	config.AppConfigInstance.JWT.ExpirationHours = 1

	token, err := GenerateToken(42)
	if err != nil {
		t.Fatalf("签发token失败: %v", err)
	}
	if token == "" {
		t.Fatal("token为空")
	}

	userID, err := ParseToken(token)
	if err != nil {
		t.Fatalf("解析token失败: %v", err)
	}
	if userID != 42 {
		t.Fatalf("用户ID不一致: %d", userID)
	}
}

func TestParseTokenInvalid(t *testing.T) {
	config.AppConfigInstance.JWT.Secret = "test-secret"

	if _, err := ParseToken("not-a-token"); err == nil {
		t.Fatal("非法token应报错")
	}
}

func TestParseTokenWrongSecret(t *testing.T) {
	config.AppConfigInstance.JWT.Secret = "secret-a"
	token, err := GenerateToken(7)
	if err != nil {
		t.Fatalf("签发token失败: %v", err)
	}

	// 密钥变化后旧token校验失败
	config.AppConfigInstance.JWT.Secret = "secret-b"
	if _, err := ParseToken(token); err == nil {
		t.Fatal("密钥不匹配的token应报错")
	}
}
