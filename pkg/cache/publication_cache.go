package cache

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// PublicationCacheService 发布缓存服务
// 布隆过滤器挡掉对不存在发布ID的查询，防止缓存穿透
type PublicationCacheService struct {
	cache       Cache
	bloomFilter BloomFilter
}

// NewPublicationCacheService 创建发布缓存服务
func NewPublicationCacheService(cache Cache, bloomFilter BloomFilter) *PublicationCacheService {
	return &PublicationCacheService{
		cache:       cache,
		bloomFilter: bloomFilter,
	}
}

// MayExist 发布ID是否可能存在
// 返回false时可以不查库直接按不存在处理
func (p *PublicationCacheService) MayExist(ctx context.Context, publicationID uint) (bool, error) {
	return p.bloomFilter.Test(ctx, strconv.FormatUint(uint64(publicationID), 10))
}

// GetPublicationDetail 获取发布详情缓存
func (p *PublicationCacheService) GetPublicationDetail(ctx context.Context, publicationID uint, dest interface{}) error {
	exists, err := p.MayExist(ctx, publicationID)
	if err != nil {
		return fmt.Errorf("检查布隆过滤器失败: %w", err)
	}
	if !exists {
		return redis.Nil
	}

	key := fmt.Sprintf(PublicationDetailKey, publicationID)
	return p.cache.GetJSON(ctx, key, dest)
}

// SetPublicationDetail 设置发布详情缓存
func (p *PublicationCacheService) SetPublicationDetail(ctx context.Context, publicationID uint, detail interface{}) error {
	if err := p.bloomFilter.Add(ctx, strconv.FormatUint(uint64(publicationID), 10)); err != nil {
		return fmt.Errorf("添加到布隆过滤器失败: %w", err)
	}

	key := fmt.Sprintf(PublicationDetailKey, publicationID)
	return p.cache.SetJSON(ctx, key, detail, PublicationDetailExpiration)
}

// DeletePublicationDetail 删除发布详情缓存，发布变更时调用
func (p *PublicationCacheService) DeletePublicationDetail(ctx context.Context, publicationID uint) error {
	key := fmt.Sprintf(PublicationDetailKey, publicationID)
	return p.cache.Delete(ctx, key)
}

// AddPublication 新建发布时登记到布隆过滤器
func (p *PublicationCacheService) AddPublication(ctx context.Context, publicationID uint) error {
	return p.bloomFilter.Add(ctx, strconv.FormatUint(uint64(publicationID), 10))
}

// BatchAddPublications 批量登记发布ID，启动预热时使用
func (p *PublicationCacheService) BatchAddPublications(ctx context.Context, publicationIDs []uint) error {
	elements := make([]string, len(publicationIDs))
	for i, id := range publicationIDs {
		elements[i] = strconv.FormatUint(uint64(id), 10)
	}
	return p.bloomFilter.BatchAdd(ctx, elements)
}
