package cache

import (
	"context"
	"strconv"
	"testing"
)

func TestBloomFilterMembership(t *testing.T) {
	ctx := context.Background()
	bf := NewRedisBloomFilter(nil, BloomFilterPublicationKey, 1000, 0.01)

	if err := bf.Add(ctx, "42"); err != nil {
		t.Fatalf("添加元素失败: %v", err)
	}

	exists, err := bf.Test(ctx, "42")
	if err != nil {
		t.Fatalf("测试元素失败: %v", err)
	}
	if !exists {
		t.Fatalf("已添加的元素应返回可能存在")
	}

	// 返回false保证一定不存在
	exists, err = bf.Test(ctx, "99999")
	if err != nil {
		t.Fatalf("测试元素失败: %v", err)
	}
	if exists {
		t.Fatalf("未添加的元素不应命中")
	}
}

func TestBloomFilterBatchAdd(t *testing.T) {
	ctx := context.Background()
	bf := NewRedisBloomFilter(nil, BloomFilterPublicationKey, 1000, 0.01)

	elements := make([]string, 0, 100)
	for i := 1; i <= 100; i++ {
		elements = append(elements, strconv.Itoa(i))
	}
	if err := bf.BatchAdd(ctx, elements); err != nil {
		t.Fatalf("批量添加失败: %v", err)
	}

	for _, e := range elements {
		exists, err := bf.Test(ctx, e)
		if err != nil {
			t.Fatalf("测试元素失败: %v", err)
		}
		if !exists {
			t.Fatalf("批量添加的元素%s应返回可能存在", e)
		}
	}
}
