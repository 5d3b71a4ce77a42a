package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"

	"github.com/tencentyun/cos-go-sdk-v5"

	"intergalactic/internal/config"
)

// Storage 文件存储接口
type Storage interface {
	// Save 保存文件，返回可访问的URL
	Save(ctx context.Context, name string, r io.Reader) (string, error)
	// Delete 删除文件
	Delete(ctx context.Context, name string) error
}

// New 根据配置创建存储实现
func New(cfg *config.StorageConfig) (Storage, error) {
	switch cfg.Type {
	case "cos":
		return NewCOSStorage(&cfg.COS)
	case "local", "":
		return NewLocalStorage(&cfg.Local)
	default:
		return nil, fmt.Errorf("未知的存储类型: %s", cfg.Type)
	}
}

// LocalStorage 本地磁盘存储
type LocalStorage struct {
	path      string
	urlPrefix string
}

// NewLocalStorage 创建本地存储实例
func NewLocalStorage(cfg *config.LocalStorage) (*LocalStorage, error) {
	if err := os.MkdirAll(cfg.Path, 0o755); err != nil {
		return nil, fmt.Errorf("创建上传目录失败: %v", err)
	}
	return &LocalStorage{path: cfg.Path, urlPrefix: cfg.URLPrefix}, nil
}

// Save 保存文件到本地磁盘
func (s *LocalStorage) Save(_ context.Context, name string, r io.Reader) (string, error) {
	dst := filepath.Join(s.path, name)
	f, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("创建文件失败: %v", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return "", fmt.Errorf("写入文件失败: %v", err)
	}
	return s.urlPrefix + "/" + name, nil
}

// Delete 删除本地文件
func (s *LocalStorage) Delete(_ context.Context, name string) error {
	return os.Remove(filepath.Join(s.path, name))
}

// COSStorage 腾讯云COS存储
type COSStorage struct {
	client    *cos.Client
	urlPrefix string
}

// NewCOSStorage 创建COS存储实例
func NewCOSStorage(cfg *config.COSStorage) (*COSStorage, error) {
	u, err := url.Parse(cfg.BucketURL)
	if err != nil {
		return nil, fmt.Errorf("解析COS桶地址失败: %v", err)
	}

	client := cos.NewClient(&cos.BaseURL{BucketURL: u}, &http.Client{
		Transport: &cos.AuthorizationTransport{
			SecretID:  cfg.SecretID,
			SecretKey: cfg.SecretKey,
		},
	})

	return &COSStorage{client: client, urlPrefix: cfg.URLPrefix}, nil
}

// Save 上传文件到COS
func (s *COSStorage) Save(ctx context.Context, name string, r io.Reader) (string, error) {
	if _, err := s.client.Object.Put(ctx, name, r, nil); err != nil {
		return "", fmt.Errorf("上传COS失败: %v", err)
	}
	return s.urlPrefix + "/" + name, nil
}

// Delete 从COS删除文件
func (s *COSStorage) Delete(ctx context.Context, name string) error {
	_, err := s.client.Object.Delete(ctx, name)
	return err
}
