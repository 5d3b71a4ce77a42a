package service

import (
	"os"
	"sync"

	"github.com/importcjj/sensitive"
	"go.uber.org/zap"

	"intergalactic/internal/config"
	"intergalactic/internal/logger"
)

var (
	sensitiveService     *SensitiveService
	sensitiveServiceOnce sync.Once
)

// SensitiveService 敏感词服务
type SensitiveService struct {
	filter *sensitive.Filter
	logger *zap.SugaredLogger
}

// NewSensitiveService 创建敏感词服务实例，词库缺失时退化为直通
func NewSensitiveService() *SensitiveService {
	sensitiveServiceOnce.Do(func() {
		log := logger.GetSugaredLogger()
		svc := &SensitiveService{logger: log}

		dictPath := ""
		if config.GlobalConfig != nil {
			dictPath = config.GlobalConfig.Sensitive.DictPath
		}
		if dictPath == "" {
			sensitiveService = svc
			return
		}
		if _, err := os.Stat(dictPath); err != nil {
			log.Warnf("敏感词词库不可用，跳过过滤: %s, err=%v", dictPath, err)
			sensitiveService = svc
			return
		}

		filter := sensitive.New()
		if err := filter.LoadWordDict(dictPath); err != nil {
			log.Warnf("加载敏感词词库失败: %v", err)
		} else {
			svc.filter = filter
		}
		sensitiveService = svc
	})
	return sensitiveService
}

// ContainsSensitiveWord 判断文本是否命中敏感词
func (s *SensitiveService) ContainsSensitiveWord(text string) bool {
	if s == nil || s.filter == nil {
		return false
	}
	hit, _ := s.filter.FindIn(text)
	return hit
}

// Filter 将文本中的敏感词替换为星号
func (s *SensitiveService) Filter(text string) string {
	if s == nil || s.filter == nil {
		return text
	}
	return s.filter.Replace(text, '*')
}
