package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"intergalactic/internal/logger"
	"intergalactic/internal/service"
	"intergalactic/pkg/response"
)

// NotificationApi 通知API控制器
type NotificationApi struct {
	logger              *zap.SugaredLogger
	notificationService *service.NotificationService
}

// NewNotificationApi 创建通知API实例
func NewNotificationApi() *NotificationApi {
	return &NotificationApi{
		logger:              logger.GetSugaredLogger(),
		notificationService: service.NewNotificationService(),
	}
}

// Inbox 未读通知收件箱
func (api *NotificationApi) Inbox(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		response.Unauthorized(c, "未授权", err)
		return
	}

	result, err := api.notificationService.Inbox(userID)
	if err != nil {
		api.logger.Errorf("获取通知失败: %v", err)
		response.Error(c, http.StatusInternalServerError, "获取通知失败", err)
		return
	}

	response.Success(c, "获取成功", result)
}

// MarkReactionRead 标记反应通知已读
func (api *NotificationApi) MarkReactionRead(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		response.Unauthorized(c, "未授权", err)
		return
	}

	reactionID, err := parseIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, "无效的通知ID", err)
		return
	}

	if err := api.notificationService.MarkReactionRead(reactionID, userID); err != nil {
		api.handleMarkError(c, err)
		return
	}

	response.Success(c, "已标记为已读", nil)
}

// MarkCommentRead 标记评论通知已读
func (api *NotificationApi) MarkCommentRead(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		response.Unauthorized(c, "未授权", err)
		return
	}

	commentID, err := parseIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, "无效的通知ID", err)
		return
	}

	if err := api.notificationService.MarkCommentRead(commentID, userID); err != nil {
		api.handleMarkError(c, err)
		return
	}

	response.Success(c, "已标记为已读", nil)
}

func (api *NotificationApi) handleMarkError(c *gin.Context, err error) {
	switch {
	case service.IsNotFound(err):
		response.NotFound(c, "通知不存在", err)
	case errors.Is(err, service.ErrNoPermission):
		response.Forbidden(c, "没有权限操作此通知", err)
	default:
		api.logger.Errorf("标记已读失败: %v", err)
		response.Error(c, http.StatusInternalServerError, "标记已读失败", err)
	}
}
