package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"intergalactic/internal/dto"
	"intergalactic/internal/logger"
	"intergalactic/internal/service"
	"intergalactic/pkg/response"
)

// CategoryApi 分类API控制器
type CategoryApi struct {
	logger             *zap.SugaredLogger
	categoryService    *service.CategoryService
	publicationService *service.PublicationService
}

// NewCategoryApi 创建分类API实例
func NewCategoryApi() *CategoryApi {
	return &CategoryApi{
		logger:             logger.GetSugaredLogger(),
		categoryService:    service.NewCategoryService(),
		publicationService: service.NewPublicationService(),
	}
}

// List 获取启用的分类列表
func (api *CategoryApi) List(c *gin.Context) {
	result, err := api.categoryService.ListActive()
	if err != nil {
		api.logger.Errorf("获取分类列表失败: %v", err)
		response.Error(c, http.StatusInternalServerError, "获取分类列表失败", err)
		return
	}

	response.Success(c, "获取成功", result)
}

// Create 创建分类，仅管理员
func (api *CategoryApi) Create(c *gin.Context) {
	var req dto.CategoryCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误", err)
		return
	}

	category, err := api.categoryService.Create(&req)
	if err != nil {
		api.logger.Warnf("创建分类失败: %v", err)
		response.BadRequest(c, err.Error(), err)
		return
	}

	response.Success(c, "创建成功", gin.H{"id": category.ID})
}

// Update 更新分类，仅管理员
func (api *CategoryApi) Update(c *gin.Context) {
	categoryID, err := parseIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, "无效的分类ID", err)
		return
	}

	var req dto.CategoryUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误", err)
		return
	}

	if _, err := api.categoryService.Update(categoryID, &req); err != nil {
		if service.IsNotFound(err) {
			response.NotFound(c, "分类不存在", err)
			return
		}
		api.logger.Warnf("更新分类失败: %v", err)
		response.BadRequest(c, err.Error(), err)
		return
	}

	response.Success(c, "更新成功", nil)
}

// Publications 分类下的发布列表，最早在前
// 分类ID为0时表示不按分类过滤
func (api *CategoryApi) Publications(c *gin.Context) {
	categoryID, err := parseIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, "无效的分类ID", err)
		return
	}

	var req dto.PublicationListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "参数错误", err)
		return
	}

	result, err := api.publicationService.ByCategory(categoryID, &req)
	if err != nil {
		if service.IsNotFound(err) {
			response.NotFound(c, "分类不存在", err)
			return
		}
		api.logger.Errorf("获取分类发布列表失败: %v", err)
		response.Error(c, http.StatusInternalServerError, "获取发布列表失败", err)
		return
	}

	response.Success(c, "获取成功", result)
}
