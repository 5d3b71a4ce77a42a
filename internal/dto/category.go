package dto

// CategoryCreateRequest 创建分类请求
type CategoryCreateRequest struct {
	Name        string `json:"name" binding:"required,max=120"`
	Description string `json:"description" binding:"omitempty,max=500"`
}

// CategoryUpdateRequest 更新分类请求
type CategoryUpdateRequest struct {
	Name        string `json:"name" binding:"required,max=120"`
	Description string `json:"description" binding:"omitempty,max=500"`
	IsActive    *bool  `json:"is_active" binding:"required"`
}

// CategoryResponse 分类响应
type CategoryResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	IsActive    bool   `json:"is_active"`
	CreatedAt   string `json:"created_at"`
}

// CategoryListResponse 分类列表响应
type CategoryListResponse struct {
	Total int64              `json:"total"`
	List  []CategoryResponse `json:"list"`
}
