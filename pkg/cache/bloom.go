package cache

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
	"github.com/redis/go-redis/v9"
)

// BloomFilter 布隆过滤器接口
// Test返回false时元素一定不存在，返回true时可能存在
type BloomFilter interface {
	// Add 添加元素
	Add(ctx context.Context, element string) error

	// Test 测试元素是否可能存在
	Test(ctx context.Context, element string) (bool, error)

	// BatchAdd 批量添加元素
	BatchAdd(ctx context.Context, elements []string) error

	// SaveToRedis 保存过滤器快照到Redis
	SaveToRedis(ctx context.Context) error

	// LoadFromRedis 从Redis加载过滤器快照
	LoadFromRedis(ctx context.Context) error
}

// RedisBloomFilter 内存布隆过滤器，快照持久化到Redis
type RedisBloomFilter struct {
	filter    *bloom.BloomFilter
	redisKey  string
	client    *redis.Client
	mutex     sync.RWMutex
	capacity  uint
	errorRate float64
}

// NewRedisBloomFilter 创建布隆过滤器实例
func NewRedisBloomFilter(client *redis.Client, redisKey string, capacity uint, errorRate float64) BloomFilter {
	return &RedisBloomFilter{
		filter:    bloom.NewWithEstimates(capacity, errorRate),
		redisKey:  redisKey,
		client:    client,
		capacity:  capacity,
		errorRate: errorRate,
	}
}

// Add 添加元素
func (bf *RedisBloomFilter) Add(ctx context.Context, element string) error {
	bf.mutex.Lock()
	defer bf.mutex.Unlock()

	bf.filter.AddString(element)
	return nil
}

// Test 测试元素是否可能存在
func (bf *RedisBloomFilter) Test(ctx context.Context, element string) (bool, error) {
	bf.mutex.RLock()
	defer bf.mutex.RUnlock()

	return bf.filter.TestString(element), nil
}

// BatchAdd 批量添加元素
func (bf *RedisBloomFilter) BatchAdd(ctx context.Context, elements []string) error {
	bf.mutex.Lock()
	defer bf.mutex.Unlock()

	for _, element := range elements {
		bf.filter.AddString(element)
	}
	return nil
}

// SaveToRedis 保存过滤器快照到Redis
func (bf *RedisBloomFilter) SaveToRedis(ctx context.Context) error {
	bf.mutex.RLock()
	defer bf.mutex.RUnlock()

	data, err := bf.filter.GobEncode()
	if err != nil {
		return fmt.Errorf("编码布隆过滤器失败: %w", err)
	}

	encoded := base64.StdEncoding.EncodeToString(data)
	return bf.client.Set(ctx, bf.redisKey, encoded, BloomFilterExpiration).Err()
}

// LoadFromRedis 从Redis加载过滤器快照
// 快照不存在时保留新建的空过滤器
func (bf *RedisBloomFilter) LoadFromRedis(ctx context.Context) error {
	bf.mutex.Lock()
	defer bf.mutex.Unlock()

	encoded, err := bf.client.Get(ctx, bf.redisKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			bf.filter = bloom.NewWithEstimates(bf.capacity, bf.errorRate)
			return nil
		}
		return fmt.Errorf("读取布隆过滤器快照失败: %w", err)
	}

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return fmt.Errorf("解码布隆过滤器快照失败: %w", err)
	}

	filter := &bloom.BloomFilter{}
	if err := filter.GobDecode(data); err != nil {
		return fmt.Errorf("反序列化布隆过滤器失败: %w", err)
	}

	bf.filter = filter
	return nil
}
