package service

import (
	"errors"
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
	notificationService     *NotificationService
	notificationServiceOnce sync.Once
)

// NotificationService 通知服务
// 反应和评论记录自身就是通知载体，未读状态用is_read标记
type NotificationService struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// NewNotificationService 创建通知服务实例
func NewNotificationService() *NotificationService {
	notificationServiceOnce.Do(func() {
		notificationService = &NotificationService{
			db:     database.GetDB(),
			logger: logger.GetSugaredLogger(),
		}
	})
	return notificationService
}

// UnreadReactions 用户收到的未读且仍然激活的反应
func (s *NotificationService) UnreadReactions(userID uint) ([]model.Reaction, error) {
	var reactions []model.Reaction
	err := s.db.Preload("Sender").Preload("Publication").
		Where("receiver_id = ? AND status = ? AND is_read = ?", userID, true, false).
		Order("updated_at DESC").
		Find(&reactions).Error
	return reactions, err
}

// UnreadComments 用户收到的未读评论
func (s *NotificationService) UnreadComments(userID uint) ([]model.Comment, error) {
	var comments []model.Comment
	err := s.db.Preload("User").
		Where("receiver_id = ? AND is_read = ? AND user_id != ?", userID, false, userID).
		Order("created_at DESC").
		Find(&comments).Error
	return comments, err
}

// Inbox 未读收件箱：反应和评论通知的汇总
func (s *NotificationService) Inbox(userID uint) (*dto.NotificationInboxResponse, error) {
	reactions, err := s.UnreadReactions(userID)
	if err != nil {
		return nil, err
	}
	comments, err := s.UnreadComments(userID)
	if err != nil {
		return nil, err
	}

	resp := &dto.NotificationInboxResponse{
		Reactions: make([]dto.NotificationReactionItem, 0, len(reactions)),
		Comments:  make([]dto.NotificationCommentItem, 0, len(comments)),
	}
	for _, r := range reactions {
		resp.Reactions = append(resp.Reactions, dto.NotificationReactionItem{
			ID:            r.ID,
			Kind:          r.Kind,
			SenderID:      r.SenderID,
			SenderName:    r.Sender.Username,
			PublicationID: r.PublicationID,
			Title:         r.Publication.Title,
			CreatedAt:     r.UpdatedAt.Format(time.RFC3339),
		})
	}
	for _, c := range comments {
		resp.Comments = append(resp.Comments, dto.NotificationCommentItem{
			ID:            c.ID,
			SenderID:      c.UserID,
			SenderName:    c.User.Username,
			PublicationID: c.PublicationID,
			Content:       c.Content,
			CreatedAt:     c.CreatedAt.Format(time.RFC3339),
		})
	}
	resp.Total = len(resp.Reactions) + len(resp.Comments)
	return resp, nil
}

// MarkReactionRead 将反应通知标记为已读
// 只有通知的接收者有权标记
func (s *NotificationService) MarkReactionRead(reactionID, userID uint) error {
	var reaction model.Reaction
	if err := s.db.First(&reaction, reactionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReactionNotFound
		}
		return err
	}

	if reaction.ReceiverID != userID {
		return ErrNoPermission
	}

	return s.db.Model(&reaction).Update("is_read", true).Error
}

// MarkCommentRead 将评论通知标记为已读
func (s *NotificationService) MarkCommentRead(commentID, userID uint) error {
	var comment model.Comment
	if err := s.db.First(&comment, commentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCommentNotFound
		}
		return err
	}

	if comment.ReceiverID != userID {
		return ErrNoPermission
	}

	return s.db.Model(&comment).Update("is_read", true).Error
}
