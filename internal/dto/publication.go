package dto

import "time"

// PublicationCreateRequest 创建发布请求
type PublicationCreateRequest struct {
	CategoryID uint   `json:"category_id" binding:"required"`
	Title      string `json:"title" binding:"required,max=128"`
	ShortDesc  string `json:"short_desc" binding:"omitempty,max=64"`
	Text       string `json:"text" binding:"required"`
	Image      string `json:"image" binding:"omitempty,max=255"`
}

// PublicationUpdateRequest 更新发布请求
type PublicationUpdateRequest struct {
	CategoryID uint   `json:"category_id" binding:"required"`
	Title      string `json:"title" binding:"required,max=128"`
	ShortDesc  string `json:"short_desc" binding:"omitempty,max=64"`
	Text       string `json:"text" binding:"required"`
	Image      string `json:"image" binding:"omitempty,max=255"`
}

// PublicationListRequest 发布列表请求
type PublicationListRequest struct {
	Page     int `form:"page" binding:"omitempty,min=1"`
	PageSize int `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// PublicationListItem 列表项
type PublicationListItem struct {
	ID           uint      `json:"id"`
	CategoryID   uint      `json:"category_id"`
	CategoryName string    `json:"category_name"`
	AuthorID     uint      `json:"author_id"`
	AuthorName   string    `json:"author_name"`
	Title        string    `json:"title"`
	ShortDesc    string    `json:"short_desc"`
	Image        string    `json:"image"`
	LikeCount    int64     `json:"like_count"`
	DislikeCount int64     `json:"dislike_count"`
	CommentCount int64     `json:"comment_count"`
	CreatedAt    time.Time `json:"created_at"`
}

// PublicationListResponse 发布列表响应
type PublicationListResponse struct {
	Total int64                 `json:"total"`
	List  []PublicationListItem `json:"list"`
}

// PublicationDetailResponse 发布详情响应
type PublicationDetailResponse struct {
	ID           uint      `json:"id"`
	CategoryID   uint      `json:"category_id"`
	CategoryName string    `json:"category_name"`
	AuthorID     uint      `json:"author_id"`
	AuthorName   string    `json:"author_name"`
	Title        string    `json:"title"`
	ShortDesc    string    `json:"short_desc"`
	Text         string    `json:"text"`
	HTML         string    `json:"html"`
	Image        string    `json:"image"`
	IsActive     bool      `json:"is_active"`
	OnModeration bool      `json:"on_moderation"`
	LikeCount    int64     `json:"like_count"`
	DislikeCount int64     `json:"dislike_count"`
	CommentCount int64     `json:"comment_count"`
	ViewCount    int64     `json:"view_count"`
	Rating       float64   `json:"rating"`
	IsLiked      bool      `json:"is_liked"`
	IsDisliked   bool      `json:"is_disliked"`
	CreatedAt    time.Time `json:"created_at"`
}

// ModerationRequest 审核请求
type ModerationRequest struct {
	Approve bool   `json:"approve"`
	Comment string `json:"comment" binding:"omitempty,max=2000"`
}

// PublicationSearchRequest 发布搜索请求
type PublicationSearchRequest struct {
	Keyword  string `form:"keyword" binding:"required,max=100"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}
