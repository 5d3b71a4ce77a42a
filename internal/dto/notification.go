package dto

// NotificationReactionItem 未读反应通知项
type NotificationReactionItem struct {
	ID            uint   `json:"id"`
	Kind          string `json:"kind"`
	SenderID      uint   `json:"sender_id"`
	SenderName    string `json:"sender_name"`
	PublicationID uint   `json:"publication_id"`
	Title         string `json:"title"`
	CreatedAt     string `json:"created_at"`
}

// NotificationCommentItem 未读评论通知项
type NotificationCommentItem struct {
	ID            uint   `json:"id"`
	SenderID      uint   `json:"sender_id"`
	SenderName    string `json:"sender_name"`
	PublicationID uint   `json:"publication_id"`
	Content       string `json:"content"`
	CreatedAt     string `json:"created_at"`
}

// NotificationInboxResponse 未读收件箱响应
type NotificationInboxResponse struct {
	Reactions []NotificationReactionItem `json:"reactions"`
	Comments  []NotificationCommentItem  `json:"comments"`
	Total     int                        `json:"total"`
}
