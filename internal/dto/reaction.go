package dto

// ReactionToggleResponse 点赞/点踩切换响应
// Changed 表示本次操作是否顺带清除了相反的反应
type ReactionToggleResponse struct {
	Active       bool  `json:"active"`
	Changed      bool  `json:"changed"`
	LikeCount    int64 `json:"like_count"`
	DislikeCount int64 `json:"dislike_count"`
}

// ReactionNotification 推送给发布作者的反应通知
type ReactionNotification struct {
	ID            uint   `json:"id"`
	Kind          string `json:"kind"`
	SenderID      uint   `json:"sender_id"`
	SenderName    string `json:"sender_name"`
	PublicationID uint   `json:"publication_id"`
	Title         string `json:"title"`
	CreatedAt     string `json:"created_at"`
}
