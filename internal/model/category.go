package model

// Category 发布分类模型
// 分类停用后，其下的发布在公开列表中不可见
type Category struct {
	Base
	Name        string `gorm:"type:varchar(120);not null;uniqueIndex" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	IsActive    bool   `gorm:"not null;default:true;index" json:"is_active"`

	// 关联
	Publications []*Publication `gorm:"foreignKey:CategoryID" json:"publications,omitempty"`
}

// TableName 指定表名
func (Category) TableName() string {
	return "categories"
}
