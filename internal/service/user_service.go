package service

import (
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"intergalactic/internal/database"
	"intergalactic/internal/dto"
	"intergalactic/internal/logger"
	"intergalactic/internal/model"
	"intergalactic/pkg/auth"
)

var (
	userService     *UserService
	userServiceOnce sync.Once
)

// ErrInvalidCredentials 用户名或密码错误
var ErrInvalidCredentials = errors.New("用户名或密码错误")

// UserService 用户服务
type UserService struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// NewUserService 创建用户服务实例
func NewUserService() *UserService {
	userServiceOnce.Do(func() {
		userService = &UserService{
			db:     database.GetDB(),
			logger: logger.GetSugaredLogger(),
		}
	})
	return userService
}

// Register 用户注册
func (s *UserService) Register(req *dto.UserRegisterRequest) (*model.User, error) {
	var count int64
	if err := s.db.Model(&model.User{}).
		Where("username = ? OR email = ?", req.Username, req.Email).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, errors.New("用户名或邮箱已被占用")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	nickname := req.Nickname
	if nickname == "" {
		nickname = req.Username
	}

	user := &model.User{
		Username: req.Username,
		Email:    req.Email,
		Password: string(hash),
		Nickname: nickname,
		Role:     "user",
		Status:   1,
	}

	if err := s.db.Create(user).Error; err != nil {
		return nil, err
	}

	return user, nil
}

// Login 用户登录，成功后签发令牌对
func (s *UserService) Login(req *dto.UserLoginRequest) (*dto.UserLoginResponse, error) {
	var user model.User
	if err := s.db.Where("username = ?", req.Username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// 不向外暴露用户是否存在
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if user.Status == 0 {
		return nil, errors.New("账号已被禁用")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	pair, err := auth.GenerateTokenPair(user.ID, user.Role)
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(&user).Update("last_login_at", time.Now()).Error; err != nil {
		s.logger.Warnf("更新最后登录时间失败: %v", err)
	}

	return &dto.UserLoginResponse{
		User:         s.GenerateUserResponse(&user),
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresIn:    pair.ExpiresIn,
	}, nil
}

// GetByID 根据ID获取用户
func (s *UserService) GetByID(id uint) (*model.User, error) {
	var user model.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GenerateUserResponse 模型转响应DTO
func (s *UserService) GenerateUserResponse(user *model.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Avatar:    user.Avatar,
		Nickname:  user.Nickname,
		Bio:       user.Bio,
		Role:      user.Role,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
	}
}
