package service

import "errors"

// 服务层哨兵错误
// 查找失败必须显式向上传递，调用方区分"记录不存在"和"查询异常"
var (
	ErrUserNotFound        = errors.New("用户不存在")
	ErrCategoryNotFound    = errors.New("分类不存在")
	ErrPublicationNotFound = errors.New("发布不存在")
	ErrCommentNotFound     = errors.New("评论不存在")
	ErrReactionNotFound    = errors.New("反应记录不存在")
	ErrEmptyComment        = errors.New("评论内容不能为空")
	ErrNoPermission        = errors.New("没有权限执行此操作")
	ErrSearchUnavailable   = errors.New("搜索服务未启用")
)

// IsNotFound 判断是否为"记录不存在"类错误
func IsNotFound(err error) bool {
	return errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrCategoryNotFound) ||
		errors.Is(err, ErrPublicationNotFound) ||
		errors.Is(err, ErrCommentNotFound) ||
		errors.Is(err, ErrReactionNotFound)
}
