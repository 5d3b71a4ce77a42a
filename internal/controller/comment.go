package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"intergalactic/internal/dto"
	"intergalactic/internal/logger"
	"intergalactic/internal/middleware"
	"intergalactic/internal/model"
	"intergalactic/internal/service"
	"intergalactic/pkg/response"
)

// CommentApi 评论API控制器
type CommentApi struct {
	logger         *zap.SugaredLogger
	commentService *service.CommentService
}

// NewCommentApi 创建评论API实例
func NewCommentApi() *CommentApi {
	return &CommentApi{
		logger:         logger.GetSugaredLogger(),
		commentService: service.NewCommentService(),
	}
}

// Create 发表评论
func (api *CommentApi) Create(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		response.Unauthorized(c, "未授权", err)
		return
	}

	var req dto.CommentCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误", err)
		return
	}

	comment, err := api.commentService.Create(userID, &req)
	if err != nil {
		api.handleCommentError(c, err, "发表评论失败")
		return
	}

	response.Success(c, "评论成功", toCommentResponse(comment))
}

// Reply 回复评论
func (api *CommentApi) Reply(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		response.Unauthorized(c, "未授权", err)
		return
	}

	var req dto.CommentReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误", err)
		return
	}

	comment, err := api.commentService.Reply(userID, &req)
	if err != nil {
		api.handleCommentError(c, err, "回复评论失败")
		return
	}

	response.Success(c, "回复成功", toCommentResponse(comment))
}

// List 发布下的评论列表，最早在前
func (api *CommentApi) List(c *gin.Context) {
	var req dto.CommentListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "参数错误", err)
		return
	}

	result, err := api.commentService.List(&req)
	if err != nil {
		api.logger.Errorf("获取评论列表失败: %v", err)
		response.Error(c, http.StatusInternalServerError, "获取评论列表失败", err)
		return
	}

	response.Success(c, "获取成功", result)
}

// Delete 删除评论，评论者本人或管理员
func (api *CommentApi) Delete(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		response.Unauthorized(c, "未授权", err)
		return
	}

	commentID, err := parseIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, "无效的评论ID", err)
		return
	}

	err = api.commentService.Delete(commentID, userID, middleware.IsAdmin(c))
	if err != nil {
		api.handleCommentError(c, err, "删除评论失败")
		return
	}

	response.Success(c, "删除成功", nil)
}

func (api *CommentApi) handleCommentError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrEmptyComment):
		response.BadRequest(c, "评论内容不能为空", err)
	case errors.Is(err, service.ErrNoPermission):
		response.Forbidden(c, "没有权限操作此评论", err)
	case service.IsNotFound(err):
		response.NotFound(c, "资源不存在", err)
	default:
		api.logger.Errorf("%s: %v", fallback, err)
		response.Error(c, http.StatusInternalServerError, fallback, err)
	}
}

func toCommentResponse(comment *model.Comment) dto.CommentResponse {
	return dto.CommentResponse{
		ID:            comment.ID,
		PublicationID: comment.PublicationID,
		UserID:        comment.UserID,
		UserName:      comment.User.Username,
		Content:       comment.Content,
		ParentID:      comment.ParentID,
		CreatedAt:     comment.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     comment.UpdatedAt.Format(time.RFC3339),
	}
}
