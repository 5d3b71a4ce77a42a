package cache

import (
	"context"
	"time"
)

// Cache 缓存接口
type Cache interface {
	// Get 获取缓存
	Get(ctx context.Context, key string) (string, error)

	// Set 设置缓存
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error

	// Delete 删除缓存
	Delete(ctx context.Context, keys ...string) error

	// Exists 检查key是否存在
	Exists(ctx context.Context, keys ...string) (int64, error)

	// GetJSON 获取JSON格式的缓存并反序列化
	GetJSON(ctx context.Context, key string, dest interface{}) error

	// SetJSON 序列化为JSON并设置缓存
	SetJSON(ctx context.Context, key string, value interface{}, expiration time.Duration) error

	// Close 关闭连接
	Close() error
}

// 缓存键名常量
const (
	// PublicationDetailKey 发布详情
	PublicationDetailKey = "publication:detail:%d"

	// BloomFilterPublicationKey 发布存在性布隆过滤器
	BloomFilterPublicationKey = "bloom:publication:exists"
)

// 缓存过期时间常量
const (
	// PublicationDetailExpiration 发布详情缓存时间
	// 详情里带点赞/评论计数，过期时间短一些换取计数及时
	PublicationDetailExpiration = 5 * time.Minute

	// BloomFilterExpiration 布隆过滤器快照保存时间
	BloomFilterExpiration = 24 * time.Hour
)
