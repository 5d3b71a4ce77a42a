package model

import (
	"context"
	"fmt"
	"strings"

	"github.com/elastic/go-elasticsearch/v8"
	"gorm.io/gorm"
)

// ESModel 定义支持Elasticsearch操作的模型接口
type ESModel interface {
	ESIndexName() string
	ESMapping() string
}

// 支持ES的模型列表
var esModels = []ESModel{
	&ESPublication{},
}

// 需要自动迁移的模型列表
var models = []interface{}{
	&User{},
	&Category{},
	&Publication{},
	&Comment{},
	&Reaction{},
	&ArticleRating{},
	&AuthorRating{},
	&ViewCounter{},
}

// InitTables 初始化数据库表
func InitTables(db *gorm.DB) error {
	// 自动迁移表结构
	err := db.AutoMigrate(models...)
	if err != nil {
		return fmt.Errorf("自动迁移数据库表失败: %v", err)
	}
	return nil
}

// InitESIndices 初始化Elasticsearch索引
func InitESIndices(client *elasticsearch.Client) error {
	ctx := context.Background()

	for _, m := range esModels {
		indexName := m.ESIndexName()
		mapping := m.ESMapping()

		// 检查索引是否存在
		resp, err := client.Indices.Exists([]string{indexName})
		if err != nil {
			return fmt.Errorf("检查索引 %s 是否存在时出错: %v", indexName, err)
		}
		resp.Body.Close()

		// 如果索引不存在，则创建
		if resp.StatusCode == 404 {
			createResp, err := client.Indices.Create(
				indexName,
				client.Indices.Create.WithContext(ctx),
				client.Indices.Create.WithBody(strings.NewReader(mapping)),
			)
			if err != nil {
				return fmt.Errorf("创建索引 %s 失败: %v", indexName, err)
			}
			if createResp.IsError() {
				createResp.Body.Close()
				return fmt.Errorf("创建索引 %s 返回错误: %s", indexName, createResp.String())
			}
			createResp.Body.Close()
		}
	}

	return nil
}
