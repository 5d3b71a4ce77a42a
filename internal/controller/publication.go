package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"intergalactic/internal/dto"
	"intergalactic/internal/logger"
	"intergalactic/internal/middleware"
	"intergalactic/internal/service"
	"intergalactic/pkg/response"
)

// PublicationApi 发布API控制器
type PublicationApi struct {
	logger             *zap.SugaredLogger
	publicationService *service.PublicationService
	reactionService    *service.ReactionService
	ratingService      *service.RatingService
	searchService      *service.SearchService
}

// NewPublicationApi 创建发布API实例
func NewPublicationApi() *PublicationApi {
	return &PublicationApi{
		logger:             logger.GetSugaredLogger(),
		publicationService: service.NewPublicationService(),
		reactionService:    service.NewReactionService(),
		ratingService:      service.NewRatingService(),
		searchService:      service.NewSearchService(),
	}
}

// Home 首页发布列表，最新在前
func (api *PublicationApi) Home(c *gin.Context) {
	var req dto.PublicationListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "参数错误", err)
		return
	}

	result, err := api.publicationService.Home(&req)
	if err != nil {
		api.logger.Errorf("获取发布列表失败: %v", err)
		response.Error(c, http.StatusInternalServerError, "获取发布列表失败", err)
		return
	}

	response.Success(c, "获取成功", result)
}

// Detail 发布详情
func (api *PublicationApi) Detail(c *gin.Context) {
	publicationID, err := parseIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, "无效的发布ID", err)
		return
	}

	var viewerID *uint
	if id, ok := middleware.GetUserID(c); ok {
		viewerID = &id
	}

	result, err := api.publicationService.GetByID(publicationID, viewerID)
	if err != nil {
		if service.IsNotFound(err) {
			response.NotFound(c, "发布不存在", err)
			return
		}
		api.logger.Errorf("获取发布详情失败: %v", err)
		response.Error(c, http.StatusInternalServerError, "获取发布详情失败", err)
		return
	}

	response.Success(c, "获取成功", result)
}

// Create 创建发布
func (api *PublicationApi) Create(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		response.Unauthorized(c, "未授权", err)
		return
	}

	var req dto.PublicationCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误", err)
		return
	}

	publication, err := api.publicationService.Create(userID, &req)
	if err != nil {
		if service.IsNotFound(err) {
			response.NotFound(c, "分类不存在", err)
			return
		}
		api.logger.Errorf("创建发布失败: %v", err)
		response.Error(c, http.StatusInternalServerError, "创建发布失败", err)
		return
	}

	response.Success(c, "创建成功", gin.H{
		"id":                 publication.ID,
		"on_moderator_check": publication.OnModeratorCheck,
	})
}

// Update 更新发布，仅作者本人
func (api *PublicationApi) Update(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		response.Unauthorized(c, "未授权", err)
		return
	}

	publicationID, err := parseIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, "无效的发布ID", err)
		return
	}

	var req dto.PublicationUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误", err)
		return
	}

	publication, err := api.publicationService.Update(publicationID, userID, &req)
	if err != nil {
		switch {
		case service.IsNotFound(err):
			response.NotFound(c, "发布不存在", err)
		case errors.Is(err, service.ErrNoPermission):
			response.Forbidden(c, "没有权限修改此发布", err)
		default:
			api.logger.Errorf("更新发布失败: %v", err)
			response.Error(c, http.StatusInternalServerError, "更新发布失败", err)
		}
		return
	}

	response.Success(c, "更新成功", gin.H{
		"id":                 publication.ID,
		"on_moderator_check": publication.OnModeratorCheck,
	})
}

// Delete 下架发布，作者或管理员
func (api *PublicationApi) Delete(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		response.Unauthorized(c, "未授权", err)
		return
	}

	publicationID, err := parseIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, "无效的发布ID", err)
		return
	}

	err = api.publicationService.Deactivate(publicationID, userID, middleware.IsAdmin(c))
	if err != nil {
		switch {
		case service.IsNotFound(err):
			response.NotFound(c, "发布不存在", err)
		case errors.Is(err, service.ErrNoPermission):
			response.Forbidden(c, "没有权限删除此发布", err)
		default:
			api.logger.Errorf("删除发布失败: %v", err)
			response.Error(c, http.StatusInternalServerError, "删除发布失败", err)
		}
		return
	}

	response.Success(c, "删除成功", nil)
}

// Like 点赞切换
func (api *PublicationApi) Like(c *gin.Context) {
	api.toggleReaction(c, api.reactionService.ToggleLike)
}

// Dislike 点踩切换
func (api *PublicationApi) Dislike(c *gin.Context) {
	api.toggleReaction(c, api.reactionService.ToggleDislike)
}

func (api *PublicationApi) toggleReaction(c *gin.Context, toggle func(senderID, publicationID uint) (*dto.ReactionToggleResponse, error)) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		response.Unauthorized(c, "未授权", err)
		return
	}

	publicationID, err := parseIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, "无效的发布ID", err)
		return
	}

	result, err := toggle(userID, publicationID)
	if err != nil {
		if service.IsNotFound(err) {
			response.NotFound(c, "发布不存在", err)
			return
		}
		api.logger.Errorf("反应切换失败: %v", err)
		response.Error(c, http.StatusInternalServerError, "操作失败", err)
		return
	}

	response.Success(c, "操作成功", result)
}

// Rate 给发布评分
func (api *PublicationApi) Rate(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		response.Unauthorized(c, "未授权", err)
		return
	}

	publicationID, err := parseIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, "无效的发布ID", err)
		return
	}

	var req dto.RatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误", err)
		return
	}

	if err := api.ratingService.RatePublication(userID, publicationID, req.Rating); err != nil {
		if service.IsNotFound(err) {
			response.NotFound(c, "发布不存在", err)
			return
		}
		api.logger.Errorf("发布评分失败: %v", err)
		response.Error(c, http.StatusInternalServerError, "评分失败", err)
		return
	}

	result, err := api.ratingService.PublicationRating(publicationID)
	if err != nil {
		api.logger.Errorf("获取发布评分失败: %v", err)
		response.Error(c, http.StatusInternalServerError, "获取评分失败", err)
		return
	}

	response.Success(c, "评分成功", result)
}

// GetRating 获取发布评分
func (api *PublicationApi) GetRating(c *gin.Context) {
	publicationID, err := parseIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, "无效的发布ID", err)
		return
	}

	result, err := api.ratingService.PublicationRating(publicationID)
	if err != nil {
		api.logger.Errorf("获取发布评分失败: %v", err)
		response.Error(c, http.StatusInternalServerError, "获取评分失败", err)
		return
	}

	response.Success(c, "获取成功", result)
}

// Search 全文搜索发布
func (api *PublicationApi) Search(c *gin.Context) {
	var req dto.PublicationSearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "参数错误", err)
		return
	}

	result, err := api.searchService.Search(&req)
	if err != nil {
		if errors.Is(err, service.ErrSearchUnavailable) {
			response.Error(c, http.StatusServiceUnavailable, "搜索服务未启用", err)
			return
		}
		api.logger.Errorf("搜索失败: %v", err)
		response.Error(c, http.StatusInternalServerError, "搜索失败", err)
		return
	}

	response.Success(c, "搜索成功", result)
}

// Moderate 审核发布，仅管理员
func (api *PublicationApi) Moderate(c *gin.Context) {
	publicationID, err := parseIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, "无效的发布ID", err)
		return
	}

	var req dto.ModerationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误", err)
		return
	}

	if err := api.publicationService.Moderate(publicationID, &req); err != nil {
		if service.IsNotFound(err) {
			response.NotFound(c, "发布不存在", err)
			return
		}
		api.logger.Errorf("审核发布失败: %v", err)
		response.Error(c, http.StatusInternalServerError, "审核失败", err)
		return
	}

	response.Success(c, "审核完成", nil)
}
