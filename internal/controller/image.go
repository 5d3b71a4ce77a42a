package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"intergalactic/internal/logger"
	"intergalactic/internal/service"
	"intergalactic/pkg/response"
)

// ImageApi 图片API控制器
type ImageApi struct {
	logger       *zap.SugaredLogger
	imageService *service.ImageService
}

// NewImageApi 创建图片API实例
func NewImageApi() *ImageApi {
	return &ImageApi{
		logger:       logger.GetSugaredLogger(),
		imageService: service.NewImageService(),
	}
}

// Upload 上传图片
func (api *ImageApi) Upload(c *gin.Context) {
	if _, err := getUserIDFromContext(c); err != nil {
		response.Unauthorized(c, "未授权", err)
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "请选择要上传的文件", err)
		return
	}

	result, err := api.imageService.Upload(file)
	if err != nil {
		api.logger.Warnf("图片上传失败: %v", err)
		response.Error(c, http.StatusInternalServerError, err.Error(), err)
		return
	}

	response.Success(c, "上传成功", result)
}
