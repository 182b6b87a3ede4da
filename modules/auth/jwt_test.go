package auth

import (
	"testing"
	"time"
)

func testJWTConfig() JWTConfig {
	return JWTConfig{
		SecretKey:            "test-secret-key",
		AccessTokenDuration:  15 * time.Minute,
		RefreshTokenDuration: 7 * 24 * time.Hour,
		Issuer:               "test-issuer",
	}
}

func TestJWTManager_GenerateAndValidateAccessToken(t *testing.T) {
	manager := NewJWTManager(testJWTConfig())

	userID := "user-123"
	email := "test@example.com"

	token, err := manager.GenerateAccessToken(userID, email)
	if err != nil {
		t.Fatalf("GenerateAccessToken() error = %v", err)
	}
	if token == "" {
		t.Error("GenerateAccessToken() returned empty token")
	}

	claims, err := manager.ValidateAccessToken(token)
	if err != nil {
		t.Fatalf("ValidateAccessToken() error = %v", err)
	}

	if claims.UserID != userID {
		t.Errorf("claims.UserID = %v, want %v", claims.UserID, userID)
	}
	if claims.Email != email {
		t.Errorf("claims.Email = %v, want %v", claims.Email, email)
	}
	if claims.TokenType != "access" {
		t.Errorf("claims.TokenType = %v, want %v", claims.TokenType, "access")
	}
	if claims.ID == "" {
		t.Error("claims.ID (jti) should be set")
	}
}

func TestJWTManager_GenerateAndValidateRefreshToken(t *testing.T) {
	manager := NewJWTManager(testJWTConfig())

	token, err := manager.GenerateRefreshToken("user-456", "refresh@example.com")
	if err != nil {
		t.Fatalf("GenerateRefreshToken() error = %v", err)
	}

	claims, err := manager.ValidateRefreshToken(token)
	if err != nil {
		t.Fatalf("ValidateRefreshToken() error = %v", err)
	}

	if claims.UserID != "user-456" {
		t.Errorf("claims.UserID = %v, want user-456", claims.UserID)
	}
	if claims.TokenType != "refresh" {
		t.Errorf("claims.TokenType = %v, want refresh", claims.TokenType)
	}
}

func TestJWTManager_TokenIDsAreUnique(t *testing.T) {
	manager := NewJWTManager(testJWTConfig())

	token1, err := manager.GenerateAccessToken("user-123", "test@example.com")
	if err != nil {
		t.Fatalf("GenerateAccessToken() error = %v", err)
	}
	token2, err := manager.GenerateAccessToken("user-123", "test@example.com")
	if err != nil {
		t.Fatalf("GenerateAccessToken() error = %v", err)
	}

	claims1, err := manager.ValidateAccessToken(token1)
	if err != nil {
		t.Fatalf("ValidateAccessToken() error = %v", err)
	}
	claims2, err := manager.ValidateAccessToken(token2)
	if err != nil {
		t.Fatalf("ValidateAccessToken() error = %v", err)
	}

	// Each token gets its own jti so they can be revoked independently.
	if claims1.ID == claims2.ID {
		t.Error("tokens for the same user should carry distinct IDs")
	}
}

func TestJWTManager_AccessTokenCannotBeUsedAsRefresh(t *testing.T) {
	manager := NewJWTManager(testJWTConfig())

	accessToken, err := manager.GenerateAccessToken("user-123", "test@example.com")
	if err != nil {
		t.Fatalf("GenerateAccessToken() error = %v", err)
	}

	if _, err := manager.ValidateRefreshToken(accessToken); err != ErrInvalidToken {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestJWTManager_RefreshTokenCannotBeUsedAsAccess(t *testing.T) {
	manager := NewJWTManager(testJWTConfig())

	refreshToken, err := manager.GenerateRefreshToken("user-123", "test@example.com")
	if err != nil {
		t.Fatalf("GenerateRefreshToken() error = %v", err)
	}

	if _, err := manager.ValidateAccessToken(refreshToken); err != ErrInvalidToken {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestJWTManager_InvalidToken(t *testing.T) {
	manager := NewJWTManager(testJWTConfig())

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty token", token: ""},
		{name: "random string", token: "not.a.valid.token"},
		{name: "malformed jwt", token: "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9.invalid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := manager.ValidateToken(tt.token); err == nil {
				t.Error("ValidateToken() should return error for invalid token")
			}
		})
	}
}

func TestJWTManager_WrongSecretKey(t *testing.T) {
	config1 := testJWTConfig()
	config2 := testJWTConfig()
	config2.SecretKey = "another-secret-key"

	token, err := NewJWTManager(config1).GenerateAccessToken("user-123", "test@example.com")
	if err != nil {
		t.Fatalf("GenerateAccessToken() error = %v", err)
	}

	if _, err := NewJWTManager(config2).ValidateToken(token); err == nil {
		t.Error("ValidateToken() should fail with different secret key")
	}
}

func TestJWTManager_ExpiredToken(t *testing.T) {
	config := testJWTConfig()
	config.AccessTokenDuration = 1 * time.Millisecond
	manager := NewJWTManager(config)

	token, err := manager.GenerateAccessToken("user-123", "test@example.com")
	if err != nil {
		t.Fatalf("GenerateAccessToken() error = %v", err)
	}

	time.Sleep(10 * time.Millisecond)

	if _, err := manager.ValidateToken(token); err != ErrExpiredToken {
		t.Errorf("expected ErrExpiredToken, got %v", err)
	}
}

func TestJWTManager_AccessTokenDuration(t *testing.T) {
	config := testJWTConfig()
	config.AccessTokenDuration = 30 * time.Minute
	manager := NewJWTManager(config)

	if got := manager.AccessTokenDuration(); got != 30*60 {
		t.Errorf("AccessTokenDuration() = %v, want %v", got, 30*60)
	}
}
