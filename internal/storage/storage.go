// Package storage 上传文件（banner 图片等）的对象存储：本地磁盘或 Supabase Storage
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/gosimple/slug"

	"go-shop-admin/internal/core/config"
	"go-shop-admin/pkg/utils"
)

var ErrNotOwned = errors.New("storage: url not managed by this store")

type Storage interface {
	// Put 写入对象，返回可公开访问的 URL
	Put(ctx context.Context, key, contentType string, r io.Reader) (string, error)
	// Delete 按 Put 返回的 URL 删除；不属于本存储的 URL 返回 ErrNotOwned
	Delete(ctx context.Context, url string) error
	// Owns 判断 URL 是否由本存储签发
	Owns(url string) bool
	// Read 读取对象内容（Excel 导出嵌图用）
	Read(ctx context.Context, url string) ([]byte, error)
}

// New 按配置选择实现
func New(c config.Storage) (Storage, error) {
	switch c.Driver {
	case "", "local":
		return NewLocal(c.LocalDir, c.PublicURL)
	case "supabase":
		if c.SupabaseURL == "" || c.SupabaseKey == "" {
			return nil, errors.New("storage: supabase_url and supabase_key are required")
		}
		return NewSupabase(c.SupabaseURL, c.SupabaseKey, c.Bucket), nil
	default:
		return nil, fmt.Errorf("storage: unsupported driver %q", c.Driver)
	}
}

// ObjectKey banners/2026/10/summer-sale-<id>.png
func ObjectKey(folder, filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	base := slug.Make(strings.TrimSuffix(filename, path.Ext(filename)))
	if base == "" {
		base = "file"
	}
	if len(base) > 60 {
		base = strings.Trim(base[:60], "-")
	}
	return path.Join(folder, time.Now().Format("2006/01"), base+"-"+utils.NewID()[:8]+ext)
}
