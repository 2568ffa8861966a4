package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Local 存到本地目录，由 gin Static 对外提供
type Local struct {
	Dir       string
	PublicURL string // 例如 /uploads
}

func NewLocal(dir, publicURL string) (*Local, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: create dir: %w", err)
	}
	return &Local{Dir: dir, PublicURL: strings.TrimRight(publicURL, "/")}, nil
}

func (s *Local) Put(_ context.Context, key, _ string, r io.Reader) (string, error) {
	full := filepath.Join(s.Dir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", err
	}
	f, err := os.Create(full)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(full)
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return s.PublicURL + "/" + key, nil
}

func (s *Local) Owns(url string) bool {
	return url != "" && strings.HasPrefix(url, s.PublicURL+"/")
}

// path 防止 ../ 越出根目录
func (s *Local) path(url string) (string, error) {
	if !s.Owns(url) {
		return "", ErrNotOwned
	}
	key := strings.TrimPrefix(url, s.PublicURL+"/")
	full := filepath.Join(s.Dir, filepath.FromSlash(key))
	root, _ := filepath.Abs(s.Dir)
	abs, _ := filepath.Abs(full)
	if !strings.HasPrefix(abs, root+string(filepath.Separator)) {
		return "", ErrNotOwned
	}
	return full, nil
}

func (s *Local) Delete(_ context.Context, url string) error {
	p, err := s.path(url)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (s *Local) Read(_ context.Context, url string) ([]byte, error) {
	p, err := s.path(url)
	if err != nil {
		return nil, err
	}
	return os.ReadFile(p)
}
