package service

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/zap"

	"intergalactic/internal/config"
	"intergalactic/internal/dto"
	"intergalactic/internal/logger"
	"intergalactic/pkg/storage"
)

var (
	imageService     *ImageService
	imageServiceOnce sync.Once
)

// ImageService 图片上传服务
type ImageService struct {
	store  storage.Storage
	node   *snowflake.Node
	logger *zap.SugaredLogger
}

// NewImageService 创建图片服务实例
func NewImageService() *ImageService {
	imageServiceOnce.Do(func() {
		log := logger.GetSugaredLogger()

		store, err := storage.New(&config.GlobalConfig.Storage)
		if err != nil {
			log.Errorf("初始化存储失败: %v", err)
		}

		machineID := config.GlobalConfig.App.MachineID
		if machineID <= 0 {
			machineID = 1
		}
		node, err := snowflake.NewNode(machineID)
		if err != nil {
			log.Errorf("初始化雪花节点失败: %v", err)
		}

		imageService = &ImageService{
			store:  store,
			node:   node,
			logger: log,
		}
	})
	return imageService
}

// Upload 上传图片，返回可访问的URL
func (s *ImageService) Upload(file *multipart.FileHeader) (*dto.ImageUploadResponse, error) {
	if s.store == nil {
		return nil, fmt.Errorf("存储未初始化")
	}
	if err := s.validate(file); err != nil {
		return nil, err
	}

	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("打开文件失败: %v", err)
	}
	defer src.Close()

	// 雪花ID做文件名，避免重名且不暴露原始文件名
	ext := strings.ToLower(filepath.Ext(file.Filename))
	name := fmt.Sprintf("%s%s", s.node.Generate().String(), ext)

	url, err := s.store.Save(context.Background(), name, src)
	if err != nil {
		return nil, fmt.Errorf("保存文件失败: %v", err)
	}

	return &dto.ImageUploadResponse{
		URL:  url,
		Name: name,
		Size: file.Size,
	}, nil
}

// validate 校验文件大小与类型
func (s *ImageService) validate(file *multipart.FileHeader) error {
	limit := config.GlobalConfig.Storage.Limit
	if limit.MaxSize > 0 && file.Size > limit.MaxSize {
		return fmt.Errorf("文件大小超过限制，最大允许 %d MB", limit.MaxSize/(1024*1024))
	}

	if len(limit.AllowTypes) > 0 {
		contentType := file.Header.Get("Content-Type")
		allowed := false
		for _, t := range limit.AllowTypes {
			if t == contentType {
				allowed = true
				break
			}
		}
		if !allowed {
			return fmt.Errorf("不支持的文件类型: %s", contentType)
		}
	}
	return nil
}
