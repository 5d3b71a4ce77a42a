package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/spf13/cobra"

	"intergalactic/internal/database"
	"intergalactic/internal/model"
)

// searchCmd 搜索索引管理命令
var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "搜索索引管理命令",
}

// reindexCmd 全量重建搜索索引命令
var reindexCmd = &cobra.Command{
	Use:   "reindex",
	Short: "全量重建发布搜索索引",
	Long:  `把数据库中所有公开可见的发布批量写入Elasticsearch索引`,
	Run: func(cmd *cobra.Command, args []string) {
		reindexPublications()
	},
}

func init() {
	searchCmd.AddCommand(reindexCmd)
	rootCmd.AddCommand(searchCmd)
}

// reindexPublications 分批读取发布并批量写入索引
func reindexPublications() {
	if err := initializeSystem(); err != nil {
		fmt.Printf("系统初始化失败: %v\n", err)
		os.Exit(1)
	}

	es := database.GetES()
	if es == nil {
		fmt.Println("Elasticsearch未启用，无法重建索引")
		os.Exit(1)
	}

	db := database.GetDB()
	ctx := context.Background()
	indexName := model.ESPublication{}.ESIndexName()

	const batchSize = 200
	var lastID uint
	total := 0

	for {
		var publications []model.Publication
		err := db.Preload("Author").Preload("Category").
			Joins("JOIN categories ON categories.id = publications.category_id").
			Where("publications.id > ?", lastID).
			Where("publications.is_active = ? AND publications.on_moderator_check = ? AND categories.is_active = ?", true, false, true).
			Order("publications.id ASC").
			Limit(batchSize).
			Find(&publications).Error
		if err != nil {
			fmt.Printf("读取发布失败: %v\n", err)
			os.Exit(1)
		}
		if len(publications) == 0 {
			break
		}

		var buf bytes.Buffer
		for _, p := range publications {
			meta := fmt.Sprintf(`{"index":{"_index":"%s","_id":"%d"}}`, indexName, p.ID)
			buf.WriteString(meta)
			buf.WriteByte('\n')

			doc, err := json.Marshal(p.ToSearchDocument())
			if err != nil {
				fmt.Printf("序列化发布 %d 失败: %v\n", p.ID, err)
				os.Exit(1)
			}
			buf.Write(doc)
			buf.WriteByte('\n')
		}

		bulkReq := esapi.BulkRequest{
			Body:    &buf,
			Refresh: "false",
		}
		res, err := bulkReq.Do(ctx, es)
		if err != nil {
			fmt.Printf("批量写入索引失败: %v\n", err)
			os.Exit(1)
		}
		if res.IsError() {
			fmt.Printf("批量写入索引返回错误: %s\n", res.String())
			res.Body.Close()
			os.Exit(1)
		}
		res.Body.Close()

		total += len(publications)
		lastID = publications[len(publications)-1].ID
		fmt.Printf("已索引 %d 条发布\n", total)
	}

	fmt.Printf("索引重建完成，共 %d 条发布\n", total)
}
