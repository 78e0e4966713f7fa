package middleware

import "testing"

func TestTokenPairRoundTrip(t *testing.T) {
	access, refresh, err := GenerateTokenPair("user_1", "a@b.com", true)
	if err != nil {
		t.Fatalf("生成 Token 失败: %v", err)
	}

	claims, err := ParseToken(access)
	if err != nil {
		t.Fatalf("解析 Access Token 失败: %v", err)
	}
	if claims.UserKey != "user_1" || claims.Email != "a@b.com" || !claims.PlatformAdmin {
		t.Errorf("claims = %+v", claims)
	}
	if claims.Subject != "access" {
		t.Errorf("subject = %s, want access", claims.Subject)
	}

	refreshClaims, err := ParseToken(refresh)
	if err != nil {
		t.Fatalf("解析 Refresh Token 失败: %v", err)
	}
	if refreshClaims.Subject != "refresh" {
		t.Errorf("subject = %s, want refresh", refreshClaims.Subject)
	}
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	if _, err := ParseToken("not-a-token"); err == nil {
		t.Error("非法 Token 应解析失败")
	}
}
