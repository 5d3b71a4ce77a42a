package service

import (
	"errors"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"intergalactic/internal/database"
	"intergalactic/internal/dto"
	"intergalactic/internal/logger"
	"intergalactic/internal/model"
)

var (
	commentService     *CommentService
	commentServiceOnce sync.Once
)

// CommentService 评论服务
type CommentService struct {
	db        *gorm.DB
	logger    *zap.SugaredLogger
	sensitive *SensitiveService
}

// NewCommentService 创建评论服务实例
func NewCommentService() *CommentService {
	commentServiceOnce.Do(func() {
		commentService = &CommentService{
			db:        database.GetDB(),
			logger:    logger.GetSugaredLogger(),
			sensitive: NewSensitiveService(),
		}
	})
	return commentService
}

// Create 创建评论
// 空白内容按校验错误拒绝，接收者固定为发布作者
func (s *CommentService) Create(userID uint, req *dto.CommentCreateRequest) (*model.Comment, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, ErrEmptyComment
	}

	var publication model.Publication
	if err := s.db.First(&publication, req.PublicationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPublicationNotFound
		}
		return nil, err
	}

	// 敏感词直接替换为星号
	if s.sensitive != nil {
		content = s.sensitive.Filter(content)
	}

	comment := &model.Comment{
		PublicationID: req.PublicationID,
		UserID:        userID,
		ReceiverID:    publication.AuthorID,
		Content:       content,
	}

	if err := s.db.Create(comment).Error; err != nil {
		return nil, err
	}

	return comment, nil
}

// Reply 回复评论
// 回复挂在父评论所属的发布下，接收者是父评论的作者
func (s *CommentService) Reply(userID uint, req *dto.CommentReplyRequest) (*model.Comment, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, ErrEmptyComment
	}

	var parent model.Comment
	if err := s.db.First(&parent, req.ParentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}

	if s.sensitive != nil {
		content = s.sensitive.Filter(content)
	}

	parentID := parent.ID
	comment := &model.Comment{
		PublicationID: parent.PublicationID,
		UserID:        userID,
		ReceiverID:    parent.UserID,
		Content:       content,
		ParentID:      &parentID,
	}

	if err := s.db.Create(comment).Error; err != nil {
		return nil, err
	}

	return comment, nil
}

// Delete 删除评论，作者本人或管理员可删
func (s *CommentService) Delete(commentID, userID uint, isAdmin bool) error {
	var comment model.Comment
	if err := s.db.First(&comment, commentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCommentNotFound
		}
		return err
	}

	if comment.UserID != userID && !isAdmin {
		return ErrNoPermission
	}

	return s.db.Delete(&comment).Error
}

// List 发布下的评论列表，按时间正序
func (s *CommentService) List(req *dto.CommentListRequest) (*dto.CommentListResponse, error) {
	if req.Page <= 0 {
		req.Page = 1
	}
	if req.PageSize <= 0 {
		req.PageSize = 20
	}

	var publication model.Publication
	if err := s.db.First(&publication, req.PublicationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPublicationNotFound
		}
		return nil, err
	}

	var total int64
	if err := s.db.Model(&model.Comment{}).
		Where("publication_id = ?", req.PublicationID).
		Count(&total).Error; err != nil {
		return nil, err
	}

	var comments []model.Comment
	if err := s.db.Preload("User").
		Where("publication_id = ?", req.PublicationID).
		Order("created_at ASC").
		Offset((req.Page - 1) * req.PageSize).
		Limit(req.PageSize).
		Find(&comments).Error; err != nil {
		return nil, err
	}

	list := make([]dto.CommentResponse, 0, len(comments))
	for _, c := range comments {
		list = append(list, dto.CommentResponse{
			ID:            c.ID,
			PublicationID: c.PublicationID,
			UserID:        c.UserID,
			UserName:      c.User.Username,
			Content:       c.Content,
			ParentID:      c.ParentID,
			CreatedAt:     c.CreatedAt.Format(time.RFC3339),
			UpdatedAt:     c.UpdatedAt.Format(time.RFC3339),
		})
	}

	return &dto.CommentListResponse{
		Total: total,
		List:  list,
	}, nil
}
