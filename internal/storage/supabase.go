package storage

import (
	"context"
	"io"
	"net/url"
	"strings"

	supa "github.com/supabase-community/storage-go"
)

// Supabase 公共 bucket
type Supabase struct {
	client  *supa.Client
	baseURL string // https://xxx.supabase.co
	bucket  string
}

func NewSupabase(baseURL, key, bucket string) *Supabase {
	baseURL = strings.TrimRight(baseURL, "/")
	if bucket == "" {
		bucket = "uploads"
	}
	return &Supabase{
		client:  supa.NewClient(baseURL+"/storage/v1", key, nil),
		baseURL: baseURL,
		bucket:  bucket,
	}
}

func (s *Supabase) publicPrefix() string {
	return s.baseURL + "/storage/v1/object/public/" + s.bucket + "/"
}

func (s *Supabase) Put(_ context.Context, key, contentType string, r io.Reader) (string, error) {
	upsert := true
	opts := supa.FileOptions{ContentType: &contentType, Upsert: &upsert}
	if _, err := s.client.UploadFile(s.bucket, key, r, opts); err != nil {
		return "", err
	}
	return s.client.GetPublicUrl(s.bucket, key).SignedURL, nil
}

func (s *Supabase) Owns(u string) bool { return strings.HasPrefix(u, s.publicPrefix()) }

// objectPath 去掉公共前缀与 query
func (s *Supabase) objectPath(u string) (string, error) {
	if !s.Owns(u) {
		return "", ErrNotOwned
	}
	p := strings.TrimPrefix(u, s.publicPrefix())
	if i := strings.IndexByte(p, '?'); i >= 0 {
		p = p[:i]
	}
	if un, err := url.PathUnescape(p); err == nil {
		p = un
	}
	return p, nil
}

func (s *Supabase) Delete(_ context.Context, u string) error {
	p, err := s.objectPath(u)
	if err != nil {
		return err
	}
	_, err = s.client.RemoveFile(s.bucket, []string{p})
	return err
}

func (s *Supabase) Read(_ context.Context, u string) ([]byte, error) {
	p, err := s.objectPath(u)
	if err != nil {
		return nil, err
	}
	return s.client.DownloadFile(s.bucket, p)
}
