package markdown

import (
	"errors"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
	"github.com/russross/blackfriday"
)

// ErrEmptyContent 内容不能为空
var ErrEmptyContent = errors.New("内容不能为空")

var (
	policy     *bluemonday.Policy
	policyOnce sync.Once
)

// sanitizePolicy 延迟构建HTML净化策略
func sanitizePolicy() *bluemonday.Policy {
	policyOnce.Do(func() {
		p := bluemonday.UGCPolicy()
		p.AllowAttrs("class").OnElements("code", "pre")
		policy = p
	})
	return policy
}

// ToHTML 将Markdown内容转换为净化后的HTML
// 脚本标签、事件属性等在净化阶段全部移除
func ToHTML(content string) (string, error) {
	if strings.TrimSpace(content) == "" {
		return "", ErrEmptyContent
	}

	unsafe := blackfriday.MarkdownCommon([]byte(content))
	return string(sanitizePolicy().SanitizeBytes(unsafe)), nil
}

// Sanitize 仅做HTML净化，不做Markdown渲染
func Sanitize(html string) string {
	return sanitizePolicy().Sanitize(html)
}
