package model

import "time"

// ESPublication 发布的Elasticsearch文档
type ESPublication struct {
	PublicationID uint      `json:"publication_id"`
	Title         string    `json:"title"`
	ShortDesc     string    `json:"short_desc"`
	Text          string    `json:"text"`
	CategoryID    uint      `json:"category_id"`
	CategoryName  string    `json:"category_name"`
	AuthorID      uint      `json:"author_id"`
	AuthorName    string    `json:"author_name"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
}

// ESIndexName 索引名
func (ESPublication) ESIndexName() string {
	return "publications"
}

// ESMapping 索引结构定义
func (ESPublication) ESMapping() string {
	return `{
  "mappings": {
    "properties": {
      "publication_id": { "type": "long" },
      "title":          { "type": "text" },
      "short_desc":     { "type": "text" },
      "text":           { "type": "text" },
      "category_id":    { "type": "long" },
      "category_name":  { "type": "keyword" },
      "author_id":      { "type": "long" },
      "author_name":    { "type": "keyword" },
      "is_active":      { "type": "boolean" },
      "created_at":     { "type": "date" }
    }
  }
}`
}

// ToSearchDocument 转换为搜索文档
func (p *Publication) ToSearchDocument() *ESPublication {
	return &ESPublication{
		PublicationID: p.ID,
		Title:         p.Title,
		ShortDesc:     p.ShortDesc,
		Text:          p.Text,
		CategoryID:    p.CategoryID,
		CategoryName:  p.Category.Name,
		AuthorID:      p.AuthorID,
		AuthorName:    p.Author.Username,
		IsActive:      p.IsActive,
		CreatedAt:     p.CreatedAt,
	}
}
