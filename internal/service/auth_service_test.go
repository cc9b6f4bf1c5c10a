package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"creator-suite/backend/config"
	"creator-suite/backend/internal/dto"
	"creator-suite/backend/pkg/jwt"
)

// setupTestAuthService 基于测试账号 creator / s3cret 构造 AuthService。
// Login 路径不触达 Redis，黑名单相关逻辑由刷新/登出的集成环境覆盖。
func setupTestAuthService(t *testing.T) (AuthService, *jwt.Manager) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("生成密码哈希失败: %v", err)
	}

	cfg := &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:               "test-secret-at-least-16-chars",
			Username:                "creator",
			PasswordHash:            string(hash),
			AccessTokenTTL:          15 * time.Minute,
			RefreshTokenTTLDefault:  24 * time.Hour,
			RefreshTokenTTLRemember: 168 * time.Hour,
		},
	}
	jwtMgr := jwt.NewManager(&cfg.Auth)
	return NewAuthService(cfg, jwtMgr, nil, zap.NewNop()), jwtMgr
}

func TestAuthService_Login_Success(t *testing.T) {
	svc, jwtMgr := setupTestAuthService(t)

	result, err := svc.Login(context.Background(), &dto.LoginRequest{
		Username: "creator",
		Password: "s3cret",
	})
	if err != nil {
		t.Fatalf("Login 应成功: %v", err)
	}
	if result.AccessToken == "" || result.RefreshToken == "" {
		t.Fatal("应返回 Token 对")
	}
	if result.ExpiresIn != int64((15 * time.Minute).Seconds()) {
		t.Errorf("期望 expires_in=900，实际=%d", result.ExpiresIn)
	}

	claims, err := jwtMgr.ParseToken(result.AccessToken)
	if err != nil {
		t.Fatalf("AccessToken 应可解析: %v", err)
	}
	if claims.TokenType != "access" || claims.UserID != "creator" {
		t.Errorf("Claims 错误: %+v", claims)
	}

	refreshClaims, err := jwtMgr.ParseToken(result.RefreshToken)
	if err != nil {
		t.Fatalf("RefreshToken 应可解析: %v", err)
	}
	if refreshClaims.TokenType != "refresh" {
		t.Errorf("期望 refresh 类型，实际=%s", refreshClaims.TokenType)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc, _ := setupTestAuthService(t)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Username: "creator",
		Password: "wrong",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("期望 ErrInvalidCredentials，实际: %v", err)
	}
}

func TestAuthService_Login_WrongUsername(t *testing.T) {
	svc, _ := setupTestAuthService(t)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Username: "admin",
		Password: "s3cret",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("期望 ErrInvalidCredentials，实际: %v", err)
	}
}

func TestAuthService_Login_RememberMe(t *testing.T) {
	svc, jwtMgr := setupTestAuthService(t)

	result, err := svc.Login(context.Background(), &dto.LoginRequest{
		Username:   "creator",
		Password:   "s3cret",
		RememberMe: true,
	})
	if err != nil {
		t.Fatalf("Login 应成功: %v", err)
	}

	claims, _ := jwtMgr.ParseToken(result.RefreshToken)
	if !claims.RememberMe {
		t.Error("RefreshToken 应携带 remember_me 标记")
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl < 167*time.Hour {
		t.Errorf("remember_me 应使用长效期，实际剩余 %v", ttl)
	}
}
