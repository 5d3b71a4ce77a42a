package model

// ArticleRating 发布评分
// 每个用户对同一发布只保留一票，重复投票覆盖原值
type ArticleRating struct {
	Base
	PublicationID uint `gorm:"type:int(11);not null;uniqueIndex:uk_pub_user,priority:1" json:"publication_id"`
	UserID        uint `gorm:"type:int(11);not null;uniqueIndex:uk_pub_user,priority:2" json:"user_id"`
	Rating        int  `gorm:"type:int(11);not null;default:0" json:"rating"`

	// 关联
	Publication Publication `gorm:"foreignKey:PublicationID" json:"publication,omitempty"`
	User        User        `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// TableName 指定表名
func (ArticleRating) TableName() string {
	return "article_ratings"
}

// AuthorRating 作者评分
type AuthorRating struct {
	Base
	AuthorID uint `gorm:"type:int(11);not null;uniqueIndex:uk_author_user,priority:1" json:"author_id"`
	UserID   uint `gorm:"type:int(11);not null;uniqueIndex:uk_author_user,priority:2" json:"user_id"`
	Rating   int  `gorm:"type:int(11);not null;default:0" json:"rating"`

	// 关联
	Author User `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	User   User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// TableName 指定表名
func (AuthorRating) TableName() string {
	return "author_ratings"
}
