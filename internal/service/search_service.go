package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"intergalactic/internal/database"
	"intergalactic/internal/dto"
	"intergalactic/internal/logger"
	"intergalactic/internal/model"
)

var (
	searchService     *SearchService
	searchServiceOnce sync.Once
)

// SearchService 全文搜索服务，依赖可选的Elasticsearch
type SearchService struct {
	es     *elasticsearch.Client
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// NewSearchService 创建搜索服务实例
func NewSearchService() *SearchService {
	searchServiceOnce.Do(func() {
		searchService = &SearchService{
			es:     database.GetES(),
			db:     database.GetDB(),
			logger: logger.GetSugaredLogger(),
		}
	})
	return searchService
}

// Enabled 搜索是否可用
func (s *SearchService) Enabled() bool {
	return s != nil && s.es != nil
}

// IndexPublication 同步单条发布到索引
// 只有公开可见的发布保留在索引中，其余一律删除
func (s *SearchService) IndexPublication(publicationID uint) error {
	if !s.Enabled() {
		return ErrSearchUnavailable
	}

	ctx := context.Background()
	docID := strconv.FormatUint(uint64(publicationID), 10)

	var publication model.Publication
	err := s.db.Preload("Author").Preload("Category").First(&publication, publicationID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return s.removeFromIndex(ctx, docID)
		}
		return err
	}

	visible := publication.IsActive && !publication.OnModeratorCheck && publication.Category.IsActive
	if !visible {
		return s.removeFromIndex(ctx, docID)
	}

	doc := publication.ToSearchDocument()
	jsonData, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	req := esapi.IndexRequest{
		Index:      doc.ESIndexName(),
		DocumentID: docID,
		Body:       strings.NewReader(string(jsonData)),
		Refresh:    "true",
	}
	res, err := req.Do(ctx, s.es)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("写入搜索索引失败: %s", res.String())
	}
	return nil
}

// removeFromIndex 从索引中删除文档，文档不存在不算错误
func (s *SearchService) removeFromIndex(ctx context.Context, docID string) error {
	req := esapi.DeleteRequest{
		Index:      model.ESPublication{}.ESIndexName(),
		DocumentID: docID,
		Refresh:    "true",
	}
	res, err := req.Do(ctx, s.es)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.IsError() && res.StatusCode != 404 {
		return fmt.Errorf("删除搜索文档失败: %s", res.String())
	}
	return nil
}

// Search 按关键词搜索发布
func (s *SearchService) Search(req *dto.PublicationSearchRequest) (*dto.PublicationListResponse, error) {
	if !s.Enabled() {
		return nil, ErrSearchUnavailable
	}

	page := req.Page
	if page < 1 {
		page = 1
	}
	pageSize := req.PageSize
	if pageSize < 1 {
		pageSize = 10
	}

	ctx := context.Background()
	var buf bytes.Buffer
	query := map[string]interface{}{
		"from": (page - 1) * pageSize,
		"size": pageSize,
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"must": []map[string]interface{}{
					{
						"multi_match": map[string]interface{}{
							"query":  req.Keyword,
							"fields": []string{"title^3", "short_desc^2", "text"},
							"type":   "best_fields",
						},
					},
				},
				"filter": []map[string]interface{}{
					{"term": map[string]interface{}{"is_active": true}},
				},
			},
		},
	}
	if err := json.NewEncoder(&buf).Encode(query); err != nil {
		return nil, err
	}

	res, err := s.es.Search(
		s.es.Search.WithContext(ctx),
		s.es.Search.WithIndex(model.ESPublication{}.ESIndexName()),
		s.es.Search.WithBody(&buf),
		s.es.Search.WithTrackTotalHits(true),
	)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("搜索请求失败: %s", res.String())
	}

	var result map[string]interface{}
	if err := json.NewDecoder(res.Body).Decode(&result); err != nil {
		return nil, err
	}

	total := int64(result["hits"].(map[string]interface{})["total"].(map[string]interface{})["value"].(float64))
	hits := result["hits"].(map[string]interface{})["hits"].([]interface{})

	ids := make([]uint, 0, len(hits))
	for _, hit := range hits {
		source := hit.(map[string]interface{})["_source"].(map[string]interface{})
		ids = append(ids, uint(source["publication_id"].(float64)))
	}

	if len(ids) == 0 {
		return &dto.PublicationListResponse{Total: 0, List: []dto.PublicationListItem{}}, nil
	}

	var publications []model.Publication
	if err := s.db.Preload("Author").Preload("Category").
		Where("id IN ?", ids).
		Find(&publications).Error; err != nil {
		return nil, err
	}

	// 按搜索得分顺序排列
	byID := make(map[uint]model.Publication, len(publications))
	for _, p := range publications {
		byID[p.ID] = p
	}
	items := make([]dto.PublicationListItem, 0, len(ids))
	for _, id := range ids {
		p, ok := byID[id]
		if !ok {
			continue
		}
		items = append(items, dto.PublicationListItem{
			ID:           p.ID,
			CategoryID:   p.CategoryID,
			CategoryName: p.Category.Name,
			AuthorID:     p.AuthorID,
			AuthorName:   p.Author.Username,
			Title:        p.Title,
			ShortDesc:    p.ShortDesc,
			Image:        p.Image,
			CreatedAt:    p.CreatedAt,
		})
	}

	return &dto.PublicationListResponse{Total: total, List: items}, nil
}
