package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"intergalactic/internal/database"
	"intergalactic/internal/logger"
	"intergalactic/internal/model"
)

const viewKeyPrefix = "view:publication:"

var (
	viewService     *ViewService
	viewServiceOnce sync.Once
)

// ViewService 浏览量服务，热数据先进Redis，定时落库
type ViewService struct {
	db     *gorm.DB
	rdb    *redis.Client
	logger *zap.SugaredLogger
}

// NewViewService 创建浏览量服务实例
func NewViewService() *ViewService {
	viewServiceOnce.Do(func() {
		viewService = &ViewService{
			db:     database.GetDB(),
			rdb:    database.GetRedis(),
			logger: logger.GetSugaredLogger(),
		}
	})
	return viewService
}

// Increment 浏览量加一
func (s *ViewService) Increment(publicationID uint) {
	if s.rdb != nil {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		if err := s.rdb.Incr(ctx, viewKey(publicationID)).Err(); err == nil {
			return
		} else {
			s.logger.Warnf("Redis浏览量自增失败，降级直写数据库: %v", err)
		}
	}
	if err := s.incrementDB(publicationID, 1); err != nil {
		s.logger.Errorf("浏览量落库失败: id=%d, err=%v", publicationID, err)
	}
}

// Count 获取浏览量，数据库存量加Redis增量
func (s *ViewService) Count(publicationID uint) (int64, error) {
	var counter model.ViewCounter
	var total int64
	err := s.db.Where("publication_id = ?", publicationID).First(&counter).Error
	if err == nil {
		total = counter.Count
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, err
	}

	if s.rdb != nil {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		if delta, err := s.rdb.Get(ctx, viewKey(publicationID)).Int64(); err == nil {
			total += delta
		}
	}
	return total, nil
}

// Flush 将Redis中累积的浏览量批量写入数据库
func (s *ViewService) Flush() {
	if s.rdb == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	iter := s.rdb.Scan(ctx, 0, viewKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		raw, err := s.rdb.GetDel(ctx, key).Result()
		if err != nil {
			continue
		}
		delta, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || delta == 0 {
			continue
		}
		id, err := parseViewKey(key)
		if err != nil {
			continue
		}
		if err := s.incrementDB(id, delta); err != nil {
			s.logger.Errorf("浏览量落库失败: id=%d, delta=%d, err=%v", id, delta, err)
		}
	}
	if err := iter.Err(); err != nil {
		s.logger.Errorf("扫描浏览量键失败: %v", err)
	}
}

func (s *ViewService) incrementDB(publicationID uint, delta int64) error {
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "publication_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"count": gorm.Expr("count + ?", delta)}),
	}).Create(&model.ViewCounter{PublicationID: publicationID, Count: delta}).Error
}

func viewKey(publicationID uint) string {
	return fmt.Sprintf("%s%d", viewKeyPrefix, publicationID)
}

func parseViewKey(key string) (uint, error) {
	id, err := strconv.ParseUint(strings.TrimPrefix(key, viewKeyPrefix), 10, 64)
	return uint(id), err
}
