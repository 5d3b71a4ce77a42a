package dto

// CommentCreateRequest 创建评论请求
type CommentCreateRequest struct {
	PublicationID uint   `json:"publication_id" binding:"required"`
	Content       string `json:"content" binding:"required"`
}

// CommentReplyRequest 回复评论请求
type CommentReplyRequest struct {
	ParentID uint   `json:"parent_id" binding:"required"`
	Content  string `json:"content" binding:"required"`
}

// CommentListRequest 评论列表请求
type CommentListRequest struct {
	PublicationID uint `form:"publication_id" binding:"required"`
	Page          int  `form:"page" binding:"omitempty,min=1"`
	PageSize      int  `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// CommentResponse 评论响应
type CommentResponse struct {
	ID            uint   `json:"id"`
	PublicationID uint   `json:"publication_id"`
	UserID        uint   `json:"user_id"`
	UserName      string `json:"user_name"`
	Content       string `json:"content"`
	ParentID      *uint  `json:"parent_id"`
	CreatedAt     string `json:"created_at"`
	UpdatedAt     string `json:"updated_at"`
}

// CommentListResponse 评论列表响应
type CommentListResponse struct {
	Total int64             `json:"total"`
	List  []CommentResponse `json:"list"`
}
