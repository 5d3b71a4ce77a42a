package model

// Comment 评论模型
// ParentID 为空表示顶层评论，否则为一级回复
type Comment struct {
	Base
	PublicationID uint   `gorm:"type:int(11);not null;index" json:"publication_id"`
	UserID        uint   `gorm:"type:int(11);not null;index" json:"user_id"`
	ReceiverID    uint   `gorm:"type:int(11);not null;index" json:"receiver_id"`
	Content       string `gorm:"type:text;not null" json:"content"`
	ParentID      *uint  `gorm:"type:int(11);index" json:"parent_id"`
	IsRead        bool   `gorm:"not null;default:false;index" json:"is_read"`

	// 关联
	Publication Publication `gorm:"foreignKey:PublicationID" json:"publication,omitempty"`
	User        User        `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Receiver    User        `gorm:"foreignKey:ReceiverID" json:"receiver,omitempty"`
	Parent      *Comment    `gorm:"foreignKey:ParentID" json:"parent,omitempty"`
	Children    []*Comment  `gorm:"foreignKey:ParentID" json:"children,omitempty"`
}

// TableName 指定表名
func (Comment) TableName() string {
	return "comments"
}
