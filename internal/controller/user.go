package controller

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"intergalactic/internal/config"
	"intergalactic/internal/dto"
	"intergalactic/internal/logger"
	"intergalactic/internal/service"
	"intergalactic/pkg/auth"
	"intergalactic/pkg/response"
)

// UserApi 用户API控制器
type UserApi struct {
	logger        *zap.SugaredLogger
	userService   *service.UserService
	ratingService *service.RatingService
}

// NewUserApi 创建用户API实例
func NewUserApi() *UserApi {
	return &UserApi{
		logger:        logger.GetSugaredLogger(),
		userService:   service.NewUserService(),
		ratingService: service.NewRatingService(),
	}
}

// Register 用户注册
func (api *UserApi) Register(c *gin.Context) {
	var req dto.UserRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误", err)
		return
	}

	user, err := api.userService.Register(&req)
	if err != nil {
		api.logger.Warnf("用户注册失败: %v", err)
		response.BadRequest(c, err.Error(), err)
		return
	}

	response.Success(c, "注册成功", gin.H{
		"user": api.userService.GenerateUserResponse(user),
	})
}

// Login 用户登录
func (api *UserApi) Login(c *gin.Context) {
	var req dto.UserLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误", err)
		return
	}

	if config.GlobalConfig.Captcha.Enabled {
		if !captchaStore.Verify(req.CaptchaID, req.CaptchaCode, true) {
			response.BadRequest(c, "验证码错误", nil)
			return
		}
	}

	result, err := api.userService.Login(&req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.Unauthorized(c, err.Error(), err)
			return
		}
		api.logger.Warnf("用户登录失败: %v", err)
		response.Error(c, http.StatusInternalServerError, "登录失败", err)
		return
	}

	response.Success(c, "登录成功", result)
}

// RefreshToken 刷新访问令牌
func (api *UserApi) RefreshToken(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		response.Unauthorized(c, "请提供刷新令牌", nil)
		return
	}

	pair, err := auth.RefreshAccessToken(parts[1])
	if err != nil {
		response.Unauthorized(c, "刷新令牌失败", err)
		return
	}

	response.Success(c, "刷新成功", pair)
}

// Logout 用户登出，当前令牌进黑名单
func (api *UserApi) Logout(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && parts[0] == "Bearer" {
		if err := auth.RevokeToken(parts[1]); err != nil {
			api.logger.Warnf("撤销令牌失败: %v", err)
		}
	}
	response.Success(c, "登出成功", nil)
}

// GetMe 获取当前登录用户信息
func (api *UserApi) GetMe(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		response.Unauthorized(c, "未授权", err)
		return
	}
	api.detail(c, userID)
}

// GetUserDetail 获取用户详情
func (api *UserApi) GetUserDetail(c *gin.Context) {
	userID, err := parseIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, "无效的用户ID", err)
		return
	}
	api.detail(c, userID)
}

// detail 组装带作者综合评分的用户详情
func (api *UserApi) detail(c *gin.Context, userID uint) {
	user, err := api.userService.GetByID(userID)
	if err != nil {
		if service.IsNotFound(err) {
			response.NotFound(c, "用户不存在", err)
			return
		}
		api.logger.Errorf("获取用户信息失败: %v", err)
		response.Error(c, http.StatusInternalServerError, "获取用户信息失败", err)
		return
	}

	rating, err := api.ratingService.AverageAuthorRating(userID)
	if err != nil {
		api.logger.Warnf("获取作者评分失败: %v", err)
	}

	response.Success(c, "获取成功", dto.UserDetailResponse{
		UserResponse: api.userService.GenerateUserResponse(user),
		AuthorRating: rating,
	})
}

// RateAuthor 给作者评分
func (api *UserApi) RateAuthor(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		response.Unauthorized(c, "未授权", err)
		return
	}

	authorID, err := parseIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, "无效的用户ID", err)
		return
	}

	var req dto.RatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误", err)
		return
	}

	if err := api.ratingService.RateAuthor(userID, authorID, req.Rating); err != nil {
		if service.IsNotFound(err) {
			response.NotFound(c, "用户不存在", err)
			return
		}
		api.logger.Errorf("作者评分失败: %v", err)
		response.Error(c, http.StatusInternalServerError, "评分失败", err)
		return
	}

	average, err := api.ratingService.AverageAuthorRating(authorID)
	if err != nil {
		api.logger.Warnf("获取作者评分失败: %v", err)
	}

	response.Success(c, "评分成功", dto.AuthorRatingResponse{
		AuthorID: authorID,
		Average:  average,
	})
}

// GetAuthorRating 获取作者综合评分
func (api *UserApi) GetAuthorRating(c *gin.Context) {
	authorID, err := parseIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, "无效的用户ID", err)
		return
	}

	average, err := api.ratingService.AverageAuthorRating(authorID)
	if err != nil {
		api.logger.Errorf("获取作者评分失败: %v", err)
		response.Error(c, http.StatusInternalServerError, "获取评分失败", err)
		return
	}

	response.Success(c, "获取成功", dto.AuthorRatingResponse{
		AuthorID: authorID,
		Average:  average,
	})
}
