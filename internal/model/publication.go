package model

// Publication 发布模型
// is_active=false 表示软下线，核心流程不做物理删除
// on_moderator_check=true 表示待审核，无论is_active如何都不出现在公开列表
type Publication struct {
	Base
	CategoryID       uint   `gorm:"type:int(11);not null;index" json:"category_id"`
	AuthorID         uint   `gorm:"type:int(11);not null;index" json:"author_id"`
	Title            string `gorm:"type:varchar(128);not null" json:"title"`
	ShortDesc        string `gorm:"type:varchar(64)" json:"short_desc"`
	Text             string `gorm:"type:longtext" json:"text"`
	Image            string `gorm:"type:varchar(255)" json:"image"`
	IsActive         bool   `gorm:"not null;default:true;index" json:"is_active"`
	OnModeratorCheck bool   `gorm:"not null;default:false;index" json:"on_moderator_check"`
	ModeratorRefuse  string `gorm:"type:text" json:"moderator_refuse"`

	// 关联
	Author   User     `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Category Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

// TableName 指定表名
func (Publication) TableName() string {
	return "publications"
}
