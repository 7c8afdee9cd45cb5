package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/shabihhaider/waterbottle-admin/internal/config"
)

// LocalStore 本地磁盘存储
// 对象写入 local_dir 下，地址由 /files 静态路由对外提供。
type LocalStore struct {
	dir     string
	baseURL string
}

// NewLocalStore 创建本地存储
func NewLocalStore(cfg config.StorageConfig) (*LocalStore, error) {
	dir := strings.TrimSpace(cfg.LocalDir)
	if dir == "" {
		dir = "./data/files"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	baseURL := strings.TrimSpace(cfg.PublicBaseURL)
	if baseURL == "" {
		baseURL = "/files"
	}
	return &LocalStore{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

// Dir 返回本地存储根目录（用于静态路由挂载）
func (s *LocalStore) Dir() string {
	return s.dir
}

// Put 写入文件
func (s *LocalStore) Put(ctx context.Context, key string, data []byte, contentType string) error {
	path := filepath.Join(s.dir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// URL 返回静态路由地址
func (s *LocalStore) URL(ctx context.Context, key string) (string, error) {
	return fmt.Sprintf("%s/%s", s.baseURL, strings.TrimLeft(key, "/")), nil
}
