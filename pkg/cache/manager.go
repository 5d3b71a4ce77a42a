package cache

import (
	"context"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Manager 缓存管理器
type Manager struct {
	cache            Cache
	publicationCache *PublicationCacheService
	bloomFilter      BloomFilter
	mutex            sync.RWMutex
	initialized      bool
}

var (
	instance *Manager
	once     sync.Once
)

// GetManager 获取缓存管理器单例
func GetManager() *Manager {
	once.Do(func() {
		instance = &Manager{}
	})
	return instance
}

// Initialize 初始化缓存管理器并预热布隆过滤器
func (m *Manager) Initialize(redisClient *redis.Client, db *gorm.DB) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.initialized {
		return nil
	}

	m.cache = NewRedisCache(redisClient)
	m.bloomFilter = NewRedisBloomFilter(redisClient, BloomFilterPublicationKey, 1000000, 0.01)

	ctx := context.Background()
	if err := m.bloomFilter.LoadFromRedis(ctx); err != nil {
		return fmt.Errorf("加载布隆过滤器失败: %w", err)
	}

	m.publicationCache = NewPublicationCacheService(m.cache, m.bloomFilter)

	if err := warmUpPublicationFilter(ctx, m.publicationCache, db); err != nil {
		return fmt.Errorf("预热布隆过滤器失败: %w", err)
	}

	m.initialized = true
	return nil
}

// warmUpPublicationFilter 把库里已有的发布ID登记到布隆过滤器
func warmUpPublicationFilter(ctx context.Context, pc *PublicationCacheService, db *gorm.DB) error {
	var publicationIDs []uint
	if err := db.Table("publications").Pluck("id", &publicationIDs).Error; err != nil {
		return fmt.Errorf("读取发布ID失败: %w", err)
	}
	if len(publicationIDs) == 0 {
		return nil
	}
	return pc.BatchAddPublications(ctx, publicationIDs)
}

// GetCache 获取基础缓存接口
func (m *Manager) GetCache() Cache {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return m.cache
}

// GetPublicationCache 获取发布缓存服务，未初始化时返回nil
func (m *Manager) GetPublicationCache() *PublicationCacheService {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return m.publicationCache
}

// IsInitialized 检查是否已初始化
func (m *Manager) IsInitialized() bool {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return m.initialized
}

// Close 保存布隆过滤器快照，停服时调用
// 底层redis连接由database包统一管理，这里不关闭
func (m *Manager) Close() error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if !m.initialized {
		return nil
	}

	if err := m.bloomFilter.SaveToRedis(context.Background()); err != nil {
		return fmt.Errorf("保存布隆过滤器快照失败: %w", err)
	}

	m.initialized = false
	return nil
}
