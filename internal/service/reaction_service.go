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
	"intergalactic/pkg/websocket"
)

var (
	reactionService     *ReactionService
	reactionServiceOnce sync.Once
)

// ReactionService 点赞/点踩服务
// 不变量：同一(sender, publication)至多有一种反应处于激活状态；
// 激活一种反应会把相反的激活反应置为未激活，记录本身从不删除
type ReactionService struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
	ws     *websocket.Manager
}

// NewReactionService 创建反应服务实例
func NewReactionService() *ReactionService {
	reactionServiceOnce.Do(func() {
		reactionService = &ReactionService{
			db:     database.GetDB(),
			logger: logger.GetSugaredLogger(),
			ws:     websocket.GetManager(),
		}
	})
	return reactionService
}

// ToggleLike 切换点赞状态
// 返回值表示本次激活是否清除了一个激活的点踩
func (s *ReactionService) ToggleLike(senderID, publicationID uint) (*dto.ReactionToggleResponse, error) {
	return s.toggle(senderID, publicationID, model.ReactionKindLike, model.ReactionKindDislike)
}

// ToggleDislike 切换点踩状态，与ToggleLike对称
func (s *ReactionService) ToggleDislike(senderID, publicationID uint) (*dto.ReactionToggleResponse, error) {
	return s.toggle(senderID, publicationID, model.ReactionKindDislike, model.ReactionKindLike)
}

// toggle 在单个事务内完成查找-翻转-互斥清除
// 查找和写入必须在同一事务中，否则同用户并发切换会产生重复行
func (s *ReactionService) toggle(senderID, publicationID uint, kind, opposite string) (*dto.ReactionToggleResponse, error) {
	// 检查发布是否存在
	var publication model.Publication
	if err := s.db.First(&publication, publicationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPublicationNotFound
		}
		return nil, err
	}

	// 检查发送者是否存在
	var sender model.User
	if err := s.db.First(&sender, senderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	var (
		changed   bool
		activated bool
		reaction  model.Reaction
	)

	err := s.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Where("sender_id = ? AND publication_id = ? AND kind = ?",
			senderID, publicationID, kind).First(&reaction)
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			// 没有记录时先建一条未激活的，再走统一的翻转路径
			reaction = model.Reaction{
				SenderID:      senderID,
				ReceiverID:    publication.AuthorID,
				PublicationID: publicationID,
				Kind:          kind,
				Status:        false,
			}
			if err := tx.Create(&reaction).Error; err != nil {
				return err
			}
		} else if result.Error != nil {
			return result.Error
		}

		if reaction.Status {
			// 激活 -> 取消
			if err := tx.Model(&reaction).Update("status", false).Error; err != nil {
				return err
			}
			reaction.Status = false
			return nil
		}

		// 取消 -> 激活：先清除激活状态的相反反应
		var opp model.Reaction
		result = tx.Where("sender_id = ? AND publication_id = ? AND kind = ? AND status = ?",
			senderID, publicationID, opposite, true).First(&opp)
		if result.Error == nil {
			if err := tx.Model(&opp).Update("status", false).Error; err != nil {
				return err
			}
			changed = true
		} else if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return result.Error
		}

		if err := tx.Model(&reaction).Updates(map[string]interface{}{
			"status":  true,
			"is_read": false,
		}).Error; err != nil {
			return err
		}
		reaction.Status = true
		activated = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	// 激活时实时推送给发布作者，给自己的发布点赞不通知
	if activated && senderID != publication.AuthorID && s.ws != nil {
		notice := dto.ReactionNotification{
			ID:            reaction.ID,
			Kind:          kind,
			SenderID:      senderID,
			SenderName:    sender.Username,
			PublicationID: publicationID,
			Title:         publication.Title,
			CreatedAt:     time.Now().Format(time.RFC3339),
		}
		if err := s.ws.SendToUser(publication.AuthorID, notice); err != nil {
			s.logger.Warnf("推送反应通知失败: %v", err)
		}
	}

	likeCount, err := s.CountLikes(publicationID)
	if err != nil {
		return nil, err
	}
	dislikeCount, err := s.CountDislikes(publicationID)
	if err != nil {
		return nil, err
	}

	return &dto.ReactionToggleResponse{
		Active:       reaction.Status,
		Changed:      changed,
		LikeCount:    likeCount,
		DislikeCount: dislikeCount,
	}, nil
}

// CountLikes 统计激活状态的点赞数
func (s *ReactionService) CountLikes(publicationID uint) (int64, error) {
	return s.countReactions(publicationID, model.ReactionKindLike)
}

// CountDislikes 统计激活状态的点踩数
func (s *ReactionService) CountDislikes(publicationID uint) (int64, error) {
	return s.countReactions(publicationID, model.ReactionKindDislike)
}

func (s *ReactionService) countReactions(publicationID uint, kind string) (int64, error) {
	var count int64
	err := s.db.Model(&model.Reaction{}).
		Where("publication_id = ? AND kind = ? AND status = ?", publicationID, kind, true).
		Count(&count).Error
	return count, err
}

// IsLiked 检查用户是否点赞了发布
func (s *ReactionService) IsLiked(userID, publicationID uint) (bool, error) {
	return s.hasActiveReaction(userID, publicationID, model.ReactionKindLike)
}

// IsDisliked 检查用户是否点踩了发布
func (s *ReactionService) IsDisliked(userID, publicationID uint) (bool, error) {
	return s.hasActiveReaction(userID, publicationID, model.ReactionKindDislike)
}

func (s *ReactionService) hasActiveReaction(userID, publicationID uint, kind string) (bool, error) {
	var count int64
	err := s.db.Model(&model.Reaction{}).
		Where("sender_id = ? AND publication_id = ? AND kind = ? AND status = ?",
			userID, publicationID, kind, true).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
