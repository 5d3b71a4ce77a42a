package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mojocn/base64Captcha"
	"go.uber.org/zap"

	"intergalactic/internal/config"
	"intergalactic/internal/logger"
	"intergalactic/pkg/response"
)

// captchaStore 验证码存储，登录时校验用
var captchaStore = base64Captcha.DefaultMemStore

// SystemApi 系统API控制器
type SystemApi struct {
	logger *zap.SugaredLogger
}

// NewSystemApi 创建系统API实例
func NewSystemApi() *SystemApi {
	return &SystemApi{
		logger: logger.GetSugaredLogger(),
	}
}

// CaptchaCreate 生成图形验证码
func (api *SystemApi) CaptchaCreate(c *gin.Context) {
	cfg := config.GlobalConfig.Captcha
	driver := base64Captcha.NewDriverDigit(
		cfg.ImgHeight,
		cfg.ImgWidth,
		cfg.KeyLong,
		0.7,
		70,
	)
	captcha := base64Captcha.NewCaptcha(driver, captchaStore)
	id, b64s, _, err := captcha.Generate()
	if err != nil {
		api.logger.Errorf("验证码生成失败: %v", err)
		response.Error(c, http.StatusInternalServerError, "验证码生成失败", err)
		return
	}

	response.Success(c, "获取成功", gin.H{
		"captcha_id": id,
		"pic_path":   b64s,
	})
}
