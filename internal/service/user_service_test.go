package service

import (
	"errors"
	"testing"

	"gorm.io/gorm"

	"intergalactic/internal/config"
	"intergalactic/internal/dto"
)

func newTestUserService(db *gorm.DB) *UserService {
	return &UserService{db: db, logger: testLogger()}
}

// setupJWTConfig 登录签发令牌依赖全局JWT配置
func setupJWTConfig() {
	config.GlobalConfig = &config.Config{
		JWT: config.JWTConfig{
			SecretKey:            "test-secret-key",
			AccessExpireSeconds:  3600,
			RefreshExpireSeconds: 7200,
			Issuer:               "test",
		},
	}
}

func TestRegister(t *testing.T) {
	db := newTestDB(t)
	svc := newTestUserService(db)

	user, err := svc.Register(&dto.UserRegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "secret123",
	})
	if err != nil {
		t.Fatalf("注册失败: %v", err)
	}
	if user.Role != "user" || user.Status != 1 {
		t.Fatalf("新用户默认值不匹配: role=%s status=%d", user.Role, user.Status)
	}
	// 昵称缺省用用户名
	if user.Nickname != "alice" {
		t.Fatalf("昵称应默认为用户名，得到%q", user.Nickname)
	}
	if user.Password == "secret123" {
		t.Fatalf("密码不应明文存储")
	}

	// 用户名或邮箱占用
	if _, err := svc.Register(&dto.UserRegisterRequest{
		Username: "alice",
		Email:    "other@example.com",
		Password: "secret123",
	}); err == nil {
		t.Fatalf("重复用户名应被拒绝")
	}
	if _, err := svc.Register(&dto.UserRegisterRequest{
		Username: "bob",
		Email:    "alice@example.com",
		Password: "secret123",
	}); err == nil {
		t.Fatalf("重复邮箱应被拒绝")
	}
}

func TestLogin(t *testing.T) {
	setupJWTConfig()
	db := newTestDB(t)
	svc := newTestUserService(db)

	if _, err := svc.Register(&dto.UserRegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "secret123",
	}); err != nil {
		t.Fatalf("注册失败: %v", err)
	}

	resp, err := svc.Login(&dto.UserLoginRequest{Username: "alice", Password: "secret123"})
	if err != nil {
		t.Fatalf("登录失败: %v", err)
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Fatalf("登录后应签发令牌对")
	}
	if resp.User.Username != "alice" {
		t.Fatalf("用户信息不匹配: %q", resp.User.Username)
	}

	// 错误密码和不存在的用户返回同一个错误
	if _, err := svc.Login(&dto.UserLoginRequest{Username: "alice", Password: "wrong"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("期望ErrInvalidCredentials，得到: %v", err)
	}
	if _, err := svc.Login(&dto.UserLoginRequest{Username: "nobody", Password: "secret123"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("期望ErrInvalidCredentials，得到: %v", err)
	}
}

func TestLoginDisabledAccount(t *testing.T) {
	setupJWTConfig()
	db := newTestDB(t)
	svc := newTestUserService(db)

	user, err := svc.Register(&dto.UserRegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "secret123",
	})
	if err != nil {
		t.Fatalf("注册失败: %v", err)
	}
	if err := db.Model(user).Update("status", 0).Error; err != nil {
		t.Fatalf("禁用账号失败: %v", err)
	}

	if _, err := svc.Login(&dto.UserLoginRequest{Username: "alice", Password: "secret123"}); err == nil {
		t.Fatalf("禁用账号登录应被拒绝")
	}
}

func TestGetUserByID(t *testing.T) {
	db := newTestDB(t)
	svc := newTestUserService(db)

	seeded := seedUser(t, db, "alice")
	user, err := svc.GetByID(seeded.ID)
	if err != nil {
		t.Fatalf("获取用户失败: %v", err)
	}
	if user.Username != "alice" {
		t.Fatalf("用户名不匹配: %q", user.Username)
	}

	if _, err := svc.GetByID(9999); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("期望ErrUserNotFound，得到: %v", err)
	}
}
