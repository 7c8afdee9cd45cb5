package storage

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/shabihhaider/waterbottle-admin/internal/config"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const defaultPresignTTL = 15 * time.Minute

// S3Store S3 兼容对象存储（MinIO 驱动）
type S3Store struct {
	client          *minio.Client
	bucket          string
	prefix          string
	endpoint        string
	useSSL          bool
	presignTTL      time.Duration
	presignDisabled bool
}

// NewS3Store 创建对象存储
func NewS3Store(cfg config.StorageConfig) (*S3Store, error) {
	endpoint := strings.TrimSpace(cfg.S3Endpoint)
	if endpoint == "" {
		return nil, fmt.Errorf("缺少 s3_endpoint 配置")
	}

	lookup := minio.BucketLookupAuto
	if cfg.ForcePathStyle {
		lookup = minio.BucketLookupPath
	}
	client, err := minio.New(endpoint, &minio.Options{
		Creds:        credentials.NewStaticV4(cfg.S3AccessKey, cfg.S3SecretKey, ""),
		Secure:       cfg.S3UseSSL,
		Region:       cfg.S3Region,
		BucketLookup: lookup,
	})
	if err != nil {
		return nil, err
	}

	ttl := defaultPresignTTL
	if cfg.URLTTLMinutes > 0 {
		ttl = time.Duration(cfg.URLTTLMinutes) * time.Minute
	}

	return &S3Store{
		client:          client,
		bucket:          cfg.S3Bucket,
		prefix:          strings.Trim(cfg.S3PathPrefix, "/"),
		endpoint:        endpoint,
		useSSL:          cfg.S3UseSSL,
		presignTTL:      ttl,
		presignDisabled: cfg.PresignDisabled,
	}, nil
}

func (s *S3Store) objectName(key string) string {
	key = strings.TrimLeft(key, "/")
	if s.prefix == "" {
		return key
	}
	return s.prefix + "/" + key
}

// Put 上传对象
func (s *S3Store) Put(ctx context.Context, key string, data []byte, contentType string) error {
	reader := bytes.NewReader(data)
	_, err := s.client.PutObject(ctx, s.bucket, s.objectName(key), reader, int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	return err
}

// URL 返回对象下载地址
// 公有桶可关闭预签名直接拼接地址。
func (s *S3Store) URL(ctx context.Context, key string) (string, error) {
	name := s.objectName(key)
	if s.presignDisabled {
		scheme := "http"
		if s.useSSL {
			scheme = "https"
		}
		return fmt.Sprintf("%s://%s/%s/%s", scheme, s.endpoint, s.bucket, name), nil
	}

	presigned, err := s.client.PresignedGetObject(ctx, s.bucket, name, s.presignTTL, url.Values{})
	if err != nil {
		return "", err
	}
	return presigned.String(), nil
}
