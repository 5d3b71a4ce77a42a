package service

import (
	"errors"
	"math"
	"sync"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"intergalactic/internal/database"
	"intergalactic/internal/dto"
	"intergalactic/internal/logger"
	"intergalactic/internal/model"
)

var (
	ratingService     *RatingService
	ratingServiceOnce sync.Once
)

// RatingService 评分服务
type RatingService struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// NewRatingService 创建评分服务实例
func NewRatingService() *RatingService {
	ratingServiceOnce.Do(func() {
		ratingService = &RatingService{
			db:     database.GetDB(),
			logger: logger.GetSugaredLogger(),
		}
	})
	return ratingService
}

// round2 保留两位小数，四舍五入
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// mean 算术平均，空集合返回0而不是NaN
func mean(values []int) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0
	for _, v := range values {
		sum += v
	}
	return float64(sum) / float64(len(values))
}

// RatePublication 给发布评分
// 每个用户对同一发布只保留一票，重复评分覆盖
func (s *RatingService) RatePublication(userID, publicationID uint, rating int) error {
	var publication model.Publication
	if err := s.db.First(&publication, publicationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPublicationNotFound
		}
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		var existing model.ArticleRating
		result := tx.Where("publication_id = ? AND user_id = ?", publicationID, userID).First(&existing)
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return tx.Create(&model.ArticleRating{
				PublicationID: publicationID,
				UserID:        userID,
				Rating:        rating,
			}).Error
		} else if result.Error != nil {
			return result.Error
		}
		return tx.Model(&existing).Update("rating", rating).Error
	})
}

// RateAuthor 给作者评分，覆盖语义与RatePublication一致
func (s *RatingService) RateAuthor(userID, authorID uint, rating int) error {
	var author model.User
	if err := s.db.First(&author, authorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		var existing model.AuthorRating
		result := tx.Where("author_id = ? AND user_id = ?", authorID, userID).First(&existing)
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return tx.Create(&model.AuthorRating{
				AuthorID: authorID,
				UserID:   userID,
				Rating:   rating,
			}).Error
		} else if result.Error != nil {
			return result.Error
		}
		return tx.Model(&existing).Update("rating", rating).Error
	})
}

// AveragePublicationRating 发布的平均评分
// 无人投票时为0.0，结果保留两位小数
func (s *RatingService) AveragePublicationRating(publicationID uint) (float64, error) {
	var ratings []int
	err := s.db.Model(&model.ArticleRating{}).
		Where("publication_id = ?", publicationID).
		Pluck("rating", &ratings).Error
	if err != nil {
		return 0, err
	}
	return round2(mean(ratings)), nil
}

// PublicationRating 发布评分及票数
func (s *RatingService) PublicationRating(publicationID uint) (*dto.PublicationRatingResponse, error) {
	var publication model.Publication
	if err := s.db.First(&publication, publicationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPublicationNotFound
		}
		return nil, err
	}

	average, err := s.AveragePublicationRating(publicationID)
	if err != nil {
		return nil, err
	}

	var votes int64
	if err := s.db.Model(&model.ArticleRating{}).
		Where("publication_id = ?", publicationID).
		Count(&votes).Error; err != nil {
		return nil, err
	}

	return &dto.PublicationRatingResponse{
		PublicationID: publicationID,
		Average:       average,
		Votes:         votes,
	}, nil
}

// AverageAuthorRating 作者综合评分
// 两个独立均值再取均值："直接给作者的评分"和"该作者所有发布的全部评分合并后的均值"，
// 任一集合为空时对应均值按0参与计算，只对最终结果保留两位小数
func (s *RatingService) AverageAuthorRating(authorID uint) (float64, error) {
	var direct []int
	err := s.db.Model(&model.AuthorRating{}).
		Where("author_id = ?", authorID).
		Pluck("rating", &direct).Error
	if err != nil {
		return 0, err
	}

	// 该作者所有发布的评分合并为一个集合求均值，而不是先按发布取均值再平均
	var pooled []int
	err = s.db.Model(&model.ArticleRating{}).
		Joins("JOIN publications ON publications.id = article_ratings.publication_id").
		Where("publications.author_id = ?", authorID).
		Pluck("article_ratings.rating", &pooled).Error
	if err != nil {
		return 0, err
	}

	return round2((mean(direct) + mean(pooled)) / 2), nil
}
