package dto

// RatingRequest 评分请求
type RatingRequest struct {
	Rating int `json:"rating" binding:"required,min=1,max=5"`
}

// PublicationRatingResponse 发布评分响应
type PublicationRatingResponse struct {
	PublicationID uint    `json:"publication_id"`
	Average       float64 `json:"average"`
	Votes         int64   `json:"votes"`
}

// AuthorRatingResponse 作者评分响应
type AuthorRatingResponse struct {
	AuthorID uint    `json:"author_id"`
	Average  float64 `json:"average"`
}
