package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/shabihhaider/waterbottle-admin/internal/config"
)

// Store 生成文件存储接口
// Put 覆盖写入同名对象，URL 返回可下载地址。
type Store interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
	URL(ctx context.Context, key string) (string, error)
}

// New 根据配置创建存储实现
func New(cfg config.StorageConfig) (Store, error) {
	driver := strings.ToLower(strings.TrimSpace(cfg.Driver))
	switch driver {
	case "", "local":
		return NewLocalStore(cfg)
	case "s3", "minio":
		return NewS3Store(cfg)
	default:
		return nil, fmt.Errorf("不支持的存储驱动: %s", cfg.Driver)
	}
}
