package model

// ViewCounter 发布浏览量
// 即时计数走Redis，定时任务批量落库到这张表
type ViewCounter struct {
	Base
	PublicationID uint  `gorm:"type:int(11);not null;uniqueIndex" json:"publication_id"`
	Count         int64 `gorm:"type:bigint;not null;default:0" json:"count"`
}

// TableName 指定表名
func (ViewCounter) TableName() string {
	return "view_counters"
}
