package model

// ReactionKind 反应类型
const (
	ReactionKindLike    = "like"
	ReactionKindDislike = "dislike"
)

// Reaction 点赞/点踩记录
// 同一(sender, publication, kind)至多一行，靠唯一索引兜底
// 记录只做状态翻转，从不删除，便于通知已读状态追踪
type Reaction struct {
	Base
	SenderID      uint   `gorm:"type:int(11);not null;uniqueIndex:uk_sender_pub_kind,priority:1" json:"sender_id"`
	PublicationID uint   `gorm:"type:int(11);not null;uniqueIndex:uk_sender_pub_kind,priority:2" json:"publication_id"`
	Kind          string `gorm:"type:varchar(10);not null;uniqueIndex:uk_sender_pub_kind,priority:3" json:"kind"`
	ReceiverID    uint   `gorm:"type:int(11);not null;index" json:"receiver_id"`
	Status        bool   `gorm:"not null;default:false;index" json:"status"`
	IsRead        bool   `gorm:"not null;default:false;index" json:"is_read"`

	// 关联
	Sender      User        `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
	Receiver    User        `gorm:"foreignKey:ReceiverID" json:"receiver,omitempty"`
	Publication Publication `gorm:"foreignKey:PublicationID" json:"publication,omitempty"`
}

// TableName 指定表名
func (Reaction) TableName() string {
	return "reactions"
}
